package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"path/filepath"

	apperrors "github.com/allisson/anonymizer/internal/errors"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	keysService "github.com/allisson/anonymizer/internal/keys/service"
)

type keyProvider struct {
	store   keysService.KeyStore
	remote  keysDomain.RemoteConfig
	factory keysService.DataKeyServiceFactory
	logger  *slog.Logger
}

// NewKeyProvider creates a KeyProvider. remote and factory are only consulted in
// remote mode; factory may be nil when remote mode is never used.
func NewKeyProvider(
	store keysService.KeyStore,
	remote keysDomain.RemoteConfig,
	factory keysService.DataKeyServiceFactory,
	logger *slog.Logger,
) KeyProvider {
	return &keyProvider{
		store:   store,
		remote:  remote,
		factory: factory,
		logger:  logger,
	}
}

// ObtainSecret dispatches on mode.
func (k *keyProvider) ObtainSecret(ctx context.Context, mode string, dataDir string) (keysDomain.Secret, error) {
	m, err := keysDomain.ParseMode(mode)
	if err != nil {
		return keysDomain.Secret{}, err
	}

	if abs, err := filepath.Abs(dataDir); err == nil {
		dataDir = abs
	}

	switch m {
	case keysDomain.ModeRemote:
		return k.obtainRemote(ctx, dataDir)
	default:
		return k.obtainLocal(dataDir)
	}
}

// obtainLocal loads {dataDir}/secret_key.bin or creates it on first use.
func (k *keyProvider) obtainLocal(dataDir string) (keysDomain.Secret, error) {
	path := filepath.Join(dataDir, keysDomain.LocalKeyFile)

	raw, err := k.store.Load(path)
	if err == nil {
		defer keysDomain.Zero(raw)
		secret, err := keysDomain.NewSecret(raw)
		if err != nil {
			return keysDomain.Secret{}, fmt.Errorf("local key file %s: %w", path, err)
		}
		k.logger.Debug("loaded local secret", slog.String("path", path), slog.Any("secret", secret))
		return secret, nil
	}
	if !apperrors.Is(err, keysDomain.ErrKeyFileNotFound) {
		return keysDomain.Secret{}, err
	}

	raw = make([]byte, keysDomain.SecretSize)
	defer keysDomain.Zero(raw)
	if _, err := rand.Read(raw); err != nil {
		return keysDomain.Secret{}, fmt.Errorf("failed to generate secret: %w", err)
	}

	if err := k.store.Save(path, raw); err != nil {
		return keysDomain.Secret{}, err
	}

	secret, err := keysDomain.NewSecret(raw)
	if err != nil {
		return keysDomain.Secret{}, err
	}

	k.logger.Info("generated local secret", slog.String("path", path), slog.Any("secret", secret))
	return secret, nil
}

// obtainRemote unwraps {dataDir}/kms_data_key.bin, or requests a new data key and
// persists only its ciphertext. The plaintext is never cached at rest, so every call
// with a cached blob costs one remote round trip.
func (k *keyProvider) obtainRemote(ctx context.Context, dataDir string) (keysDomain.Secret, error) {
	if err := k.remote.Validate(); err != nil {
		return keysDomain.Secret{}, err
	}
	if k.factory == nil {
		return keysDomain.Secret{}, keysDomain.ErrRemoteServiceNotConfigured
	}

	svc, closeFn, err := k.factory(ctx, k.remote)
	if err != nil {
		return keysDomain.Secret{}, err
	}
	defer func() {
		if closeErr := closeFn(); closeErr != nil {
			k.logger.Warn("failed to close data key service", slog.Any("error", closeErr))
		}
	}()

	path := filepath.Join(dataDir, keysDomain.RemoteKeyFile)

	blob, err := k.store.Load(path)
	if err == nil {
		plaintext, err := svc.Decrypt(ctx, blob)
		if err != nil {
			return keysDomain.Secret{}, err
		}
		defer keysDomain.Zero(plaintext)

		secret, err := keysDomain.NewSecret(plaintext)
		if err != nil {
			return keysDomain.Secret{}, fmt.Errorf("decrypted data key: %w", err)
		}
		k.logger.Debug("unwrapped remote data key", slog.String("path", path), slog.Any("secret", secret))
		return secret, nil
	}
	if !apperrors.Is(err, keysDomain.ErrKeyFileNotFound) {
		return keysDomain.Secret{}, err
	}

	dataKey, err := svc.GenerateDataKey(ctx)
	if err != nil {
		return keysDomain.Secret{}, err
	}
	defer keysDomain.Zero(dataKey.Plaintext)

	secret, err := keysDomain.NewSecret(dataKey.Plaintext)
	if err != nil {
		return keysDomain.Secret{}, fmt.Errorf("generated data key: %w", err)
	}

	if err := k.store.Save(path, dataKey.Ciphertext); err != nil {
		return keysDomain.Secret{}, err
	}

	k.logger.Info("generated remote data key", slog.String("path", path), slog.Any("secret", secret))
	return secret, nil
}
