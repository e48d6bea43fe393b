package models

import "time"

// Roles recognized by the shop. Anything else is treated as a plain user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
