package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	authService "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/service"
)

// RunIssueToken signs a bearer token for subject with role, valid for ttl.
// Intended for operators and local testing; production tokens come from the identity service.
func RunIssueToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	subject string,
	role string,
	ttl time.Duration,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got: %s", ttl)
	}

	parsedRole, err := authDomain.ParseRole(role)
	if err != nil {
		return fmt.Errorf("invalid role %q: must be 'user' or 'admin'", role)
	}

	token, expiresAt, err := tokenService.Issue(authDomain.Principal{ID: subject, Role: parsedRole}, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("subject", subject),
		slog.String("role", string(parsedRole)),
		slog.Time("expires_at", expiresAt))

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"token":      token,
			"subject":    subject,
			"role":       parsedRole,
			"expires_at": expiresAt.UTC().Format(time.RFC3339),
		})
	}

	_, _ = fmt.Fprintln(writer, token)
	return nil
}
