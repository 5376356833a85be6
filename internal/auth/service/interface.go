// Package service issues and verifies the bearer tokens that identify requesters.
package service

import (
	"time"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
)

// TokenService issues and parses signed bearer tokens.
type TokenService interface {
	// Issue signs a token for principal that expires after ttl.
	Issue(principal authDomain.Principal, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Parse verifies token and returns the principal it names. Any failure is
	// reported as authDomain.ErrInvalidToken.
	Parse(token string) (*authDomain.Principal, error)
}
