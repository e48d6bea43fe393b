package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity decoded from a session token.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
