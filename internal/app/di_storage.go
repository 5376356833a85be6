package app

import (
	"context"
	"fmt"

	"github.com/Synnly/gestion-projet-m2-sub003/internal/config"
	storageHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/http"
	storageService "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/service"
	storageUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/usecase"
)

// StorageProvider returns the configured object store.
func (c *Container) StorageProvider() (storageService.Provider, error) {
	c.storageProviderInit.Do(func() {
		provider, err := c.initStorageProvider()
		if err != nil {
			c.setInitError("storageProvider", err)
			return
		}
		c.storageProvider = provider
	})
	if err := c.initError("storageProvider"); err != nil {
		return nil, err
	}
	return c.storageProvider, nil
}

// OwnershipGuard returns the guard used by moderation routes.
func (c *Container) OwnershipGuard() (*storageService.OwnershipGuard, error) {
	c.ownershipGuardInit.Do(func() {
		provider, err := c.StorageProvider()
		if err != nil {
			c.setInitError("ownershipGuard", fmt.Errorf("failed to get storage provider for ownership guard: %w", err))
			return
		}
		c.ownershipGuard = storageService.NewOwnershipGuard(provider, c.Logger())
	})
	if err := c.initError("ownershipGuard"); err != nil {
		return nil, err
	}
	return c.ownershipGuard, nil
}

// StorageUseCase returns the storage use case.
func (c *Container) StorageUseCase() (storageUseCase.StorageUseCase, error) {
	c.storageUseCaseInit.Do(func() {
		useCase, err := c.initStorageUseCase()
		if err != nil {
			c.setInitError("storageUseCase", err)
			return
		}
		c.storageUseCase = useCase
	})
	if err := c.initError("storageUseCase"); err != nil {
		return nil, err
	}
	return c.storageUseCase, nil
}

// StorageHandler returns the storage HTTP handler.
func (c *Container) StorageHandler() (*storageHTTP.StorageHandler, error) {
	c.storageHandlerInit.Do(func() {
		useCase, err := c.StorageUseCase()
		if err != nil {
			c.setInitError("storageHandler", fmt.Errorf("failed to get storage use case for storage handler: %w", err))
			return
		}
		auditLogUseCase, err := c.AuditLogUseCase()
		if err != nil {
			c.setInitError("storageHandler", fmt.Errorf("failed to get audit log use case for storage handler: %w", err))
			return
		}
		c.storageHandler = storageHTTP.NewStorageHandler(useCase, auditLogUseCase, c.Logger())
	})
	if err := c.initError("storageHandler"); err != nil {
		return nil, err
	}
	return c.storageHandler, nil
}

// initStorageProvider builds the provider selected by STORAGE_PROVIDER.
func (c *Container) initStorageProvider() (storageService.Provider, error) {
	logger := c.Logger()

	switch c.config.StorageProvider {
	case config.StorageProviderMinio:
		client, err := storageService.NewMinioClient(storageService.MinioConfig{
			Endpoint:  c.config.StorageEndpoint,
			Port:      c.config.StoragePort,
			UseSSL:    c.config.StorageUseSSL,
			AccessKey: c.config.StorageAccessKey,
			SecretKey: c.config.StorageSecretKey,
			Bucket:    c.config.StorageBucket,
			Region:    c.config.StorageRegion,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return storageService.NewMinioProvider(client, c.config.StorageBucket, logger), nil

	case config.StorageProviderBlob:
		bucket, err := storageService.OpenBlobBucket(context.Background(), c.config.StorageBlobURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open blob bucket: %w", err)
		}
		return storageService.NewBlobProvider(bucket, logger), nil

	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", c.config.StorageProvider)
	}
}

// initStorageUseCase creates the storage use case, wrapped with metrics when enabled.
func (c *Container) initStorageUseCase() (storageUseCase.StorageUseCase, error) {
	provider, err := c.StorageProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage provider for storage use case: %w", err)
	}

	baseUseCase := storageUseCase.NewStorageUseCase(provider, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for storage use case: %w", err)
		}
		return storageUseCase.NewStorageUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
