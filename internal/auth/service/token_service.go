package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// MinSecretLength is the minimum HMAC secret length in bytes.
const MinSecretLength = 32

// ErrWeakSecret indicates a signing secret shorter than MinSecretLength.
var ErrWeakSecret = apperrors.Wrap(apperrors.ErrInvalidInput, "jwt secret must be at least 32 bytes")

// claims is the JWT payload. Subject carries the principal ID.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService with HS256-signed JWTs.
type jwtTokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Issue signs an HS256 token carrying sub, role, iss, iat and exp.
func (s *jwtTokenService) Issue(
	principal authDomain.Principal,
	ttl time.Duration,
) (string, time.Time, error) {
	if principal.ID == "" {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "principal id is required")
	}
	if _, err := authDomain.ParseRole(string(principal.Role)); err != nil {
		return "", time.Time{}, err
	}
	if ttl <= 0 {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "token ttl must be positive")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, algorithm, issuer and expiry, then maps the claims to a Principal.
func (s *jwtTokenService) Parse(token string) (*authDomain.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(
		token,
		&c,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	if c.Subject == "" {
		return nil, authDomain.ErrInvalidToken
	}
	role, err := authDomain.ParseRole(c.Role)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	return &authDomain.Principal{ID: c.Subject, Role: role}, nil
}

// NewTokenService creates a TokenService signing with secret and stamping issuer.
func NewTokenService(secret []byte, issuer string) (TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &jwtTokenService{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    time.Now,
	}, nil
}
