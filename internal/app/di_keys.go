package app

import (
	"fmt"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	keysService "github.com/allisson/anonymizer/internal/keys/service"
	keysUseCase "github.com/allisson/anonymizer/internal/keys/usecase"
)

// KMSService returns the gocloud keeper opener.
func (c *Container) KMSService() keysService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = keysService.NewKMSService()
	})
	return c.kmsService
}

// KeyStore returns the file-backed key store.
func (c *Container) KeyStore() keysService.KeyStore {
	c.keyStoreInit.Do(func() {
		c.keyStore = keysService.NewFileKeyStore(c.Logger())
	})
	return c.keyStore
}

// KeyProvider returns the key provider, wrapped with metrics when enabled.
func (c *Container) KeyProvider() (keysUseCase.KeyProvider, error) {
	return resolve(c, &c.keyProviderInit, "keyProvider", &c.keyProvider, c.initKeyProvider)
}

// Secret returns the anonymization secret for the configured key mode and data
// directory. It is obtained once per container.
func (c *Container) Secret() (keysDomain.Secret, error) {
	return resolve(c, &c.secretInit, "secret", &c.secret, c.initSecret)
}

// initKeyProvider creates the key provider with its store and remote factory.
func (c *Container) initKeyProvider() (keysUseCase.KeyProvider, error) {
	baseProvider := keysUseCase.NewKeyProvider(
		c.KeyStore(),
		c.config.RemoteKeyConfig(),
		keysService.NewDataKeyServiceFactory(c.KMSService()),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for key provider: %w", err)
		}
		return keysUseCase.NewKeyProviderWithMetrics(baseProvider, businessMetrics), nil
	}

	return baseProvider, nil
}

// initSecret obtains the secret through the key provider.
func (c *Container) initSecret() (keysDomain.Secret, error) {
	provider, err := c.KeyProvider()
	if err != nil {
		return keysDomain.Secret{}, fmt.Errorf("failed to get key provider: %w", err)
	}

	secret, err := provider.ObtainSecret(c.ctx, c.config.KeyMode, c.config.DataDir)
	if err != nil {
		return keysDomain.Secret{}, fmt.Errorf("failed to obtain secret: %w", err)
	}
	return secret, nil
}
