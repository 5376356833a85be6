package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	cryptoHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/http"
	cryptoService "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/service"
	cryptoUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/usecase"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper that unwraps MASTER_KEY, or nil when KMS_KEY_URI is unset.
func (c *Container) KMSKeeper() (cryptoDomain.KMSKeeper, error) {
	c.kmsKeeperInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}
		keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			c.setInitError("kmsKeeper", err)
			return
		}
		c.kmsKeeper = keeper
	})
	if err := c.initError("kmsKeeper"); err != nil {
		return nil, err
	}
	return c.kmsKeeper, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// EnvelopeEngine returns the envelope encryption engine.
func (c *Container) EnvelopeEngine() (cryptoService.Engine, error) {
	c.envelopeEngineInit.Do(func() {
		engine, err := c.initEnvelopeEngine()
		if err != nil {
			c.setInitError("envelopeEngine", err)
			return
		}
		c.envelopeEngine = engine
	})
	if err := c.initError("envelopeEngine"); err != nil {
		return nil, err
	}
	return c.envelopeEngine, nil
}

// EnvelopeUseCase returns the envelope use case.
func (c *Container) EnvelopeUseCase() (cryptoUseCase.EnvelopeUseCase, error) {
	c.envelopeUseCaseInit.Do(func() {
		useCase, err := c.initEnvelopeUseCase()
		if err != nil {
			c.setInitError("envelopeUseCase", err)
			return
		}
		c.envelopeUseCase = useCase
	})
	if err := c.initError("envelopeUseCase"); err != nil {
		return nil, err
	}
	return c.envelopeUseCase, nil
}

// EnvelopeHandler returns the envelope HTTP handler.
func (c *Container) EnvelopeHandler() (*cryptoHTTP.EnvelopeHandler, error) {
	c.envelopeHandlerInit.Do(func() {
		useCase, err := c.EnvelopeUseCase()
		if err != nil {
			c.setInitError("envelopeHandler", fmt.Errorf("failed to get envelope use case for envelope handler: %w", err))
			return
		}
		c.envelopeHandler = cryptoHTTP.NewEnvelopeHandler(useCase, c.Logger())
	})
	if err := c.initError("envelopeHandler"); err != nil {
		return nil, err
	}
	return c.envelopeHandler, nil
}

// RotateMasterKey resolves encoded the same way as MASTER_KEY at startup and
// installs it in the running engine. Payloads sealed under the previous key
// no longer decrypt.
func (c *Container) RotateMasterKey(ctx context.Context, encoded string) error {
	engine, err := c.EnvelopeEngine()
	if err != nil {
		return fmt.Errorf("failed to get envelope engine for rotation: %w", err)
	}
	keeper, err := c.KMSKeeper()
	if err != nil {
		return fmt.Errorf("failed to get kms keeper for rotation: %w", err)
	}

	key, err := cryptoDomain.LoadMasterKey(ctx, encoded, keeper)
	if err != nil {
		return fmt.Errorf("failed to load rotated master key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	return engine.RotateMasterKey(key)
}

// initEnvelopeEngine loads MASTER_KEY, unwrapping it through KMS when configured.
// Outside production an unset or unusable key yields an ephemeral engine.
func (c *Container) initEnvelopeEngine() (cryptoService.Engine, error) {
	var masterKey []byte
	if c.config.MasterKey != "" {
		keeper, err := c.KMSKeeper()
		if err != nil {
			return nil, fmt.Errorf("failed to get kms keeper for envelope engine: %w", err)
		}
		masterKey, err = cryptoDomain.LoadMasterKey(context.Background(), c.config.MasterKey, keeper)
		switch {
		case err != nil && c.config.IsProduction():
			return nil, fmt.Errorf("failed to load master key: %w", err)
		case err != nil:
			c.Logger().Warn("ignoring unusable MASTER_KEY outside production", slog.Any("error", err))
			masterKey = nil
		default:
			defer cryptoDomain.Zero(masterKey)
		}
	}

	engine, err := cryptoService.NewEnvelopeEngine(
		masterKey,
		c.config.IsProduction(),
		c.AEADManager(),
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create envelope engine: %w", err)
	}
	return engine, nil
}

// initEnvelopeUseCase creates the envelope use case, wrapped with metrics when enabled.
func (c *Container) initEnvelopeUseCase() (cryptoUseCase.EnvelopeUseCase, error) {
	engine, err := c.EnvelopeEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope engine for envelope use case: %w", err)
	}

	baseUseCase := cryptoUseCase.NewEnvelopeUseCase(engine, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for envelope use case: %w", err)
		}
		return cryptoUseCase.NewEnvelopeUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
