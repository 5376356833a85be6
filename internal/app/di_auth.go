package app

import (
	"fmt"

	authHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/http"
	authRepository "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/repository"
	authService "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/service"
	authUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/usecase"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/database"
)

// TokenService returns the bearer token service.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		tokenService, err := authService.NewTokenService([]byte(c.config.JWTSecret), c.config.JWTIssuer)
		if err != nil {
			c.setInitError("tokenService", fmt.Errorf("failed to create token service: %w", err))
			return
		}
		c.tokenService = tokenService
	})
	if err := c.initError("tokenService"); err != nil {
		return nil, err
	}
	return c.tokenService, nil
}

// AuditLogRepository returns the audit log repository for the configured driver.
func (c *Container) AuditLogRepository() (authUseCase.AuditLogRepository, error) {
	c.auditLogRepositoryInit.Do(func() {
		repository, err := c.initAuditLogRepository()
		if err != nil {
			c.setInitError("auditLogRepository", err)
			return
		}
		c.auditLogRepository = repository
	})
	if err := c.initError("auditLogRepository"); err != nil {
		return nil, err
	}
	return c.auditLogRepository, nil
}

// AuditLogUseCase returns the audit log use case. Without a database it is a no-op.
func (c *Container) AuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	c.auditLogUseCaseInit.Do(func() {
		useCase, err := c.initAuditLogUseCase()
		if err != nil {
			c.setInitError("auditLogUseCase", err)
			return
		}
		c.auditLogUseCase = useCase
	})
	if err := c.initError("auditLogUseCase"); err != nil {
		return nil, err
	}
	return c.auditLogUseCase, nil
}

// AuditLogHandler returns the audit log HTTP handler.
func (c *Container) AuditLogHandler() (*authHTTP.AuditLogHandler, error) {
	c.auditLogHandlerInit.Do(func() {
		useCase, err := c.AuditLogUseCase()
		if err != nil {
			c.setInitError("auditLogHandler", fmt.Errorf("failed to get audit log use case for audit log handler: %w", err))
			return
		}
		c.auditLogHandler = authHTTP.NewAuditLogHandler(useCase, c.Logger())
	})
	if err := c.initError("auditLogHandler"); err != nil {
		return nil, err
	}
	return c.auditLogHandler, nil
}

// initAuditLogRepository selects the repository matching DB_DRIVER.
func (c *Container) initAuditLogRepository() (authUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}
	if db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return authRepository.NewPostgreSQLAuditLogRepository(db), nil
	case database.DriverMySQL:
		return authRepository.NewMySQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogUseCase creates the audit log use case, wrapped with metrics when enabled.
func (c *Container) initAuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log use case: %w", err)
	}

	var baseUseCase authUseCase.AuditLogUseCase
	if db == nil {
		baseUseCase = authUseCase.NewNoopAuditLogUseCase()
	} else {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for audit log use case: %w", err)
		}
		repository, err := c.AuditLogRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
		}
		baseUseCase = authUseCase.NewAuditLogUseCase(txManager, repository)
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for audit log use case: %w", err)
		}
		return authUseCase.NewAuditLogUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
