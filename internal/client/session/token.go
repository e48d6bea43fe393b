package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/seedshop/internal/client/models"
)

// tokenClaims is the payload shape issued by the shop's auth endpoints.
// email and role are optional; sub carries the user id as decimal text.
type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeToken extracts the identity carried by a bearer token. The signature
// is not verified here: the server is the only party that acts on the token's
// authority, the client merely displays what it was issued.
//
// Total over its input: any structural problem yields ErrMalformedCredential,
// an expiry at or before now yields ErrExpiredCredential, and missing claims
// fall back to their defaults (id 0, empty email, role "user").
func DecodeToken(raw string, now time.Time) (models.User, error) {
	claims := &tokenClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(now) {
		return models.User{}, ErrExpiredCredential
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		id = 0
	}

	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}

	return models.User{ID: id, Email: claims.Email, Role: role}, nil
}
