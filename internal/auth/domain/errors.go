package domain

import (
	"github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidToken indicates a bearer token that failed parsing, signature or claim checks.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrInvalidRole indicates a token or request naming an unknown role.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)

// ParseRole returns the Role named by s or ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}
