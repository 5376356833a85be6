// Package app provides the dependency injection container that assembles the gateway.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/http"
	authService "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/service"
	authUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/usecase"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/config"
	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	cryptoHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/http"
	cryptoService "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/service"
	cryptoUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/usecase"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/database"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/http"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/metrics"
	storageHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/http"
	storageService "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/service"
	storageUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/usecase"
)

// Container holds all application dependencies.
// Components are created on first access and cached, including their init errors.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	kmsService      cryptoService.KMSService
	kmsKeeper       cryptoDomain.KMSKeeper
	aeadManager     cryptoService.AEADManager
	envelopeEngine  cryptoService.Engine
	envelopeUseCase cryptoUseCase.EnvelopeUseCase
	envelopeHandler *cryptoHTTP.EnvelopeHandler

	// Storage
	storageProvider storageService.Provider
	ownershipGuard  *storageService.OwnershipGuard
	storageUseCase  storageUseCase.StorageUseCase
	storageHandler  *storageHTTP.StorageHandler

	// Auth and audit
	tokenService       authService.TokenService
	auditLogRepository authUseCase.AuditLogRepository
	auditLogUseCase    authUseCase.AuditLogUseCase
	auditLogHandler    *authHTTP.AuditLogHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                     sync.Mutex
	loggerInit             sync.Once
	dbInit                 sync.Once
	txManagerInit          sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	kmsServiceInit         sync.Once
	kmsKeeperInit          sync.Once
	aeadManagerInit        sync.Once
	envelopeEngineInit     sync.Once
	envelopeUseCaseInit    sync.Once
	envelopeHandlerInit    sync.Once
	storageProviderInit    sync.Once
	ownershipGuardInit     sync.Once
	storageUseCaseInit     sync.Once
	storageHandlerInit     sync.Once
	tokenServiceInit       sync.Once
	auditLogRepositoryInit sync.Once
	auditLogUseCaseInit    sync.Once
	auditLogHandlerInit    sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// setInitError records err under name so later calls return it again.
func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// initError returns the error recorded under name, if any.
func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the audit database connection, or nil when no driver is configured.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.setInitError("db", err)
			return
		}
		c.db = db
	})
	if err := c.initError("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager. Requires a configured database.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setInitError("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		if db == nil {
			c.setInitError("txManager", errors.New("database is not configured"))
			return
		}
		c.txManager = database.NewTxManager(db, database.WithIsolation(sql.LevelReadCommitted))
	})
	if err := c.initError("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProvider = provider
	})
	if err := c.initError("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setInitError("businessMetrics", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("businessMetrics", fmt.Errorf("failed to create business metrics: %w", err))
			return
		}
		c.businessMetrics = bm
	})
	if err := c.initError("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its routes mounted.
// ctx bounds background goroutines owned by the router.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer(ctx)
		if err != nil {
			c.setInitError("httpServer", err)
			return
		}
		c.httpServer = server
	})
	if err := c.initError("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setInitError("metricsServer", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err := c.initError("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown releases every initialized resource. Servers first, then stores.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if c.storageProvider != nil {
		if err := c.storageProvider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage provider close: %w", err))
		}
	}
	if c.kmsKeeper != nil {
		if err := c.kmsKeeper.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kms keeper close: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

// initLogger creates a JSON logger at the configured level. Unknown levels fall back to info.
func (c *Container) initLogger() *slog.Logger {
	var level slog.Level
	switch c.config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// initDB connects to the audit database. Returns nil without error when no driver is configured.
func (c *Container) initDB() (*sql.DB, error) {
	dbConfig := database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	}
	if !dbConfig.Enabled() {
		c.Logger().Warn("no database configured, access audit records will not be persisted")
		return nil, nil
	}

	db, err := database.Connect(context.Background(), dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer creates the API server and mounts every handler.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}
	storage, err := c.StorageUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage use case for http server: %w", err)
	}
	storageHandler, err := c.StorageHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage handler for http server: %w", err)
	}
	guard, err := c.OwnershipGuard()
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership guard for http server: %w", err)
	}
	envelopeHandler, err := c.EnvelopeHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope handler for http server: %w", err)
	}
	auditLogHandler, err := c.AuditLogHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log handler for http server: %w", err)
	}
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for http server: %w", err)
	}
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	handlers := http.Handlers{
		TokenService:     tokenService,
		Storage:          storageHandler,
		OwnershipGuard:   guard,
		Envelope:         envelopeHandler,
		AuditLog:         auditLogHandler,
		MetricsNamespace: c.config.MetricsNamespace,
	}
	if provider != nil {
		handlers.MeterProvider = provider.MeterProvider()
	}

	server := http.NewServer(db, storage, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(ctx, c.config, handlers)
	return server, nil
}
