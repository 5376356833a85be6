package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestTokenService(t *testing.T, now time.Time) *jwtTokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, "storage-gateway")
	require.NoError(t, err)
	s := svc.(*jwtTokenService)
	s.now = func() time.Time { return now }
	return s
}

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService([]byte("short"), "issuer")
	assert.ErrorIs(t, err, ErrWeakSecret)

	svc, err := NewTokenService(testSecret, "issuer")
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTokenService_IssueAndParse(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, now)

	for _, principal := range []authDomain.Principal{
		{ID: "u1", Role: authDomain.RoleUser},
		{ID: "moderator-7", Role: authDomain.RoleAdmin},
	} {
		t.Run(principal.ID, func(t *testing.T) {
			token, expiresAt, err := svc.Issue(principal, time.Hour)
			require.NoError(t, err)
			assert.Equal(t, now.Add(time.Hour), expiresAt)
			assert.Equal(t, 2, strings.Count(token, "."))

			parsed, err := svc.Parse(token)
			require.NoError(t, err)
			assert.Equal(t, principal, *parsed)
		})
	}
}

func TestTokenService_Issue_Errors(t *testing.T) {
	svc := newTestTokenService(t, time.Now())

	tests := []struct {
		name      string
		principal authDomain.Principal
		ttl       time.Duration
	}{
		{"Error_EmptyID", authDomain.Principal{Role: authDomain.RoleUser}, time.Hour},
		{"Error_UnknownRole", authDomain.Principal{ID: "u1", Role: "root"}, time.Hour},
		{"Error_NonPositiveTTL", authDomain.Principal{ID: "u1", Role: authDomain.RoleUser}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Issue(tt.principal, tt.ttl)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestTokenService_Parse_Rejects(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, now)

	valid, _, err := svc.Issue(authDomain.Principal{ID: "u1", Role: authDomain.RoleUser}, time.Minute)
	require.NoError(t, err)

	sign := func(t *testing.T, method jwt.SigningMethod, key any, c jwt.Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}
	registered := func(sub, iss string, exp time.Time) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{Subject: sub, Issuer: iss, ExpiresAt: jwt.NewNumericDate(exp)}
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"Error_Garbage", func(t *testing.T) string { return "not-a-jwt" }},
		{"Error_TamperedSignature", func(t *testing.T) string { return valid[:len(valid)-2] + "xx" }},
		{"Error_OtherSecret", func(t *testing.T) string {
			c := claims{Role: "user", RegisteredClaims: registered("u1", "storage-gateway", now.Add(time.Hour))}
			return sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-00"), c)
		}},
		{"Error_AlgNone", func(t *testing.T) string {
			c := claims{Role: "admin", RegisteredClaims: registered("u1", "storage-gateway", now.Add(time.Hour))}
			return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, c)
		}},
		{"Error_HS512", func(t *testing.T) string {
			c := claims{Role: "user", RegisteredClaims: registered("u1", "storage-gateway", now.Add(time.Hour))}
			return sign(t, jwt.SigningMethodHS512, testSecret, c)
		}},
		{"Error_Expired", func(t *testing.T) string {
			c := claims{Role: "user", RegisteredClaims: registered("u1", "storage-gateway", now.Add(-time.Second))}
			return sign(t, jwt.SigningMethodHS256, testSecret, c)
		}},
		{"Error_NoExpiry", func(t *testing.T) string {
			c := claims{Role: "user", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "storage-gateway"}}
			return sign(t, jwt.SigningMethodHS256, testSecret, c)
		}},
		{"Error_WrongIssuer", func(t *testing.T) string {
			c := claims{Role: "user", RegisteredClaims: registered("u1", "elsewhere", now.Add(time.Hour))}
			return sign(t, jwt.SigningMethodHS256, testSecret, c)
		}},
		{"Error_EmptySubject", func(t *testing.T) string {
			c := claims{Role: "user", RegisteredClaims: registered("", "storage-gateway", now.Add(time.Hour))}
			return sign(t, jwt.SigningMethodHS256, testSecret, c)
		}},
		{"Error_UnknownRole", func(t *testing.T) string {
			c := claims{Role: "superuser", RegisteredClaims: registered("u1", "storage-gateway", now.Add(time.Hour))}
			return sign(t, jwt.SigningMethodHS256, testSecret, c)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := svc.Parse(tt.token(t))
			assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
			assert.Nil(t, principal)
		})
	}
}
