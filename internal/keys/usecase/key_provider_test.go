package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/anonymizer/internal/errors"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	keysService "github.com/allisson/anonymizer/internal/keys/service"
)

// countingKeyStore records how many times each path was written.
type countingKeyStore struct {
	next   keysService.KeyStore
	writes map[string]int
}

func newCountingKeyStore() *countingKeyStore {
	return &countingKeyStore{
		next:   keysService.NewFileKeyStore(discardLogger()),
		writes: make(map[string]int),
	}
}

func (c *countingKeyStore) Load(path string) ([]byte, error) {
	return c.next.Load(path)
}

func (c *countingKeyStore) Save(path string, data []byte) error {
	c.writes[path]++
	return c.next.Save(path, data)
}

type mockDataKeyService struct {
	mock.Mock
}

func (m *mockDataKeyService) GenerateDataKey(ctx context.Context) (*keysService.DataKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysService.DataKey), args.Error(1)
}

func (m *mockDataKeyService) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// The provider zeroes plaintext buffers, so hand out a copy each call.
	return append([]byte(nil), args.Get(0).([]byte)...), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticFactory(svc keysService.DataKeyService) keysService.DataKeyServiceFactory {
	return func(ctx context.Context, cfg keysDomain.RemoteConfig) (keysService.DataKeyService, func() error, error) {
		return svc, func() error { return nil }, nil
	}
}

var testRemote = keysDomain.RemoteConfig{Region: "us-east-1", KeyID: "alias/telemetry"}

func TestKeyProvider_UnknownMode(t *testing.T) {
	provider := NewKeyProvider(newCountingKeyStore(), testRemote, nil, discardLogger())

	for _, mode := range []string{"", "dev", "aws", "hash"} {
		_, err := provider.ObtainSecret(context.Background(), mode, t.TempDir())
		assert.ErrorIs(t, err, keysDomain.ErrUnknownKeyMode)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	}
}

func TestKeyProvider_Local(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_GeneratesOnFirstCall", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "data")
		store := newCountingKeyStore()
		provider := NewKeyProvider(store, keysDomain.RemoteConfig{}, nil, discardLogger())

		secret, err := provider.ObtainSecret(ctx, "local", dataDir)
		require.NoError(t, err)
		assert.Len(t, secret.Hex(), 64)

		raw, err := os.ReadFile(filepath.Join(dataDir, keysDomain.LocalKeyFile))
		require.NoError(t, err)
		assert.Equal(t, secret.Bytes(), raw)
	})

	t.Run("Success_IdempotentWithSingleWrite", func(t *testing.T) {
		dataDir := t.TempDir()
		store := newCountingKeyStore()
		provider := NewKeyProvider(store, keysDomain.RemoteConfig{}, nil, discardLogger())

		first, err := provider.ObtainSecret(ctx, "local", dataDir)
		require.NoError(t, err)
		second, err := provider.ObtainSecret(ctx, "local", dataDir)
		require.NoError(t, err)

		assert.Equal(t, first.Hex(), second.Hex())
		assert.Equal(t, 1, store.writes[filepath.Join(dataDir, keysDomain.LocalKeyFile)])
	})

	t.Run("Success_DistinctDirectoriesDistinctSecrets", func(t *testing.T) {
		provider := NewKeyProvider(newCountingKeyStore(), keysDomain.RemoteConfig{}, nil, discardLogger())

		first, err := provider.ObtainSecret(ctx, "local", t.TempDir())
		require.NoError(t, err)
		second, err := provider.ObtainSecret(ctx, "local", t.TempDir())
		require.NoError(t, err)

		assert.NotEqual(t, first.Hex(), second.Hex())
	})

	t.Run("Error_WrongSizeIsIntegrityError", func(t *testing.T) {
		dataDir := t.TempDir()
		path := filepath.Join(dataDir, keysDomain.LocalKeyFile)
		require.NoError(t, os.WriteFile(path, []byte("too short"), 0o600))

		store := newCountingKeyStore()
		provider := NewKeyProvider(store, keysDomain.RemoteConfig{}, nil, discardLogger())

		_, err := provider.ObtainSecret(ctx, "local", dataDir)
		assert.ErrorIs(t, err, keysDomain.ErrInvalidKeySize)
		assert.True(t, apperrors.Is(err, apperrors.ErrIntegrity))

		// The corrupted file must not be silently replaced.
		assert.Zero(t, store.writes[path])
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("too short"), raw)
	})
}

func TestKeyProvider_Remote(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_MissingRegion", func(t *testing.T) {
		provider := NewKeyProvider(
			newCountingKeyStore(),
			keysDomain.RemoteConfig{KeyID: "alias/telemetry"},
			staticFactory(&mockDataKeyService{}),
			discardLogger(),
		)

		_, err := provider.ObtainSecret(ctx, "remote", t.TempDir())
		assert.ErrorIs(t, err, keysDomain.ErrRemoteRegionNotSet)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("Error_MissingKeyID", func(t *testing.T) {
		provider := NewKeyProvider(
			newCountingKeyStore(),
			keysDomain.RemoteConfig{Region: "us-east-1"},
			staticFactory(&mockDataKeyService{}),
			discardLogger(),
		)

		_, err := provider.ObtainSecret(ctx, "remote", t.TempDir())
		assert.ErrorIs(t, err, keysDomain.ErrRemoteKeyIDNotSet)
	})

	t.Run("Error_NoFactory", func(t *testing.T) {
		provider := NewKeyProvider(newCountingKeyStore(), testRemote, nil, discardLogger())

		_, err := provider.ObtainSecret(ctx, "remote", t.TempDir())
		assert.ErrorIs(t, err, keysDomain.ErrRemoteServiceNotConfigured)
	})

	t.Run("Success_GeneratesAndPersistsCiphertextOnly", func(t *testing.T) {
		dataDir := t.TempDir()
		plaintext := make([]byte, 32)
		_, err := rand.Read(plaintext)
		require.NoError(t, err)
		expected := append([]byte(nil), plaintext...)

		svc := &mockDataKeyService{}
		svc.On("GenerateDataKey", mock.Anything).Return(&keysService.DataKey{
			Plaintext:  plaintext,
			Ciphertext: []byte("wrapped-blob"),
		}, nil).Once()

		store := newCountingKeyStore()
		provider := NewKeyProvider(store, testRemote, staticFactory(svc), discardLogger())

		secret, err := provider.ObtainSecret(ctx, "remote", dataDir)
		require.NoError(t, err)
		assert.Equal(t, expected, secret.Bytes())

		onDisk, err := os.ReadFile(filepath.Join(dataDir, keysDomain.RemoteKeyFile))
		require.NoError(t, err)
		assert.Equal(t, []byte("wrapped-blob"), onDisk)

		_, err = os.Stat(filepath.Join(dataDir, keysDomain.LocalKeyFile))
		assert.True(t, os.IsNotExist(err))
		svc.AssertExpectations(t)
	})

	t.Run("Success_CachedBlobUnwrappedEveryCall", func(t *testing.T) {
		dataDir := t.TempDir()
		path := filepath.Join(dataDir, keysDomain.RemoteKeyFile)
		require.NoError(t, os.WriteFile(path, []byte("wrapped-blob"), 0o600))

		key := make([]byte, 32)
		key[0] = 0x42

		svc := &mockDataKeyService{}
		svc.On("Decrypt", mock.Anything, []byte("wrapped-blob")).Return(key, nil).Twice()

		store := newCountingKeyStore()
		provider := NewKeyProvider(store, testRemote, staticFactory(svc), discardLogger())

		first, err := provider.ObtainSecret(ctx, "remote", dataDir)
		require.NoError(t, err)
		second, err := provider.ObtainSecret(ctx, "remote", dataDir)
		require.NoError(t, err)

		assert.Equal(t, first.Hex(), second.Hex())
		assert.Zero(t, store.writes[path])
		svc.AssertNumberOfCalls(t, "Decrypt", 2)
		svc.AssertNotCalled(t, "GenerateDataKey", mock.Anything)
	})

	t.Run("Error_UnwrappedKeyWrongSize", func(t *testing.T) {
		dataDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, keysDomain.RemoteKeyFile), []byte("blob"), 0o600))

		svc := &mockDataKeyService{}
		svc.On("Decrypt", mock.Anything, []byte("blob")).Return(make([]byte, 16), nil).Once()

		provider := NewKeyProvider(newCountingKeyStore(), testRemote, staticFactory(svc), discardLogger())

		_, err := provider.ObtainSecret(ctx, "remote", dataDir)
		assert.ErrorIs(t, err, keysDomain.ErrInvalidKeySize)
		assert.True(t, apperrors.Is(err, apperrors.ErrIntegrity))
	})

	t.Run("Error_GeneratedKeyWrongSizeNotPersisted", func(t *testing.T) {
		dataDir := t.TempDir()
		svc := &mockDataKeyService{}
		svc.On("GenerateDataKey", mock.Anything).Return(&keysService.DataKey{
			Plaintext:  make([]byte, 24),
			Ciphertext: []byte("blob"),
		}, nil).Once()

		store := newCountingKeyStore()
		provider := NewKeyProvider(store, testRemote, staticFactory(svc), discardLogger())

		_, err := provider.ObtainSecret(ctx, "remote", dataDir)
		assert.ErrorIs(t, err, keysDomain.ErrInvalidKeySize)
		assert.Zero(t, store.writes[filepath.Join(dataDir, keysDomain.RemoteKeyFile)])
	})

	t.Run("Error_RemoteFailurePropagates", func(t *testing.T) {
		svc := &mockDataKeyService{}
		svc.On("GenerateDataKey", mock.Anything).Return(nil, errors.New("throttled")).Once()

		provider := NewKeyProvider(newCountingKeyStore(), testRemote, staticFactory(svc), discardLogger())

		_, err := provider.ObtainSecret(ctx, "remote", t.TempDir())
		assert.ErrorContains(t, err, "throttled")
	})

	t.Run("Error_FactoryFailurePropagates", func(t *testing.T) {
		factory := func(ctx context.Context, cfg keysDomain.RemoteConfig) (keysService.DataKeyService, func() error, error) {
			return nil, nil, errors.New("no credentials")
		}
		provider := NewKeyProvider(newCountingKeyStore(), testRemote, factory, discardLogger())

		_, err := provider.ObtainSecret(ctx, "remote", t.TempDir())
		assert.ErrorContains(t, err, "no credentials")
	})
}

func TestKeyProvider_RemoteWithLocalSecretsKeeper(t *testing.T) {
	ctx := context.Background()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	remote := keysDomain.RemoteConfig{
		Region: "us-east-1",
		KeyID:  "base64key://" + base64.URLEncoding.EncodeToString(key),
	}
	provider := NewKeyProvider(
		newCountingKeyStore(),
		remote,
		keysService.NewDataKeyServiceFactory(keysService.NewKMSService()),
		discardLogger(),
	)

	dataDir := t.TempDir()
	first, err := provider.ObtainSecret(ctx, "remote", dataDir)
	require.NoError(t, err)
	second, err := provider.ObtainSecret(ctx, "remote", dataDir)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	blob, err := os.ReadFile(filepath.Join(dataDir, keysDomain.RemoteKeyFile))
	require.NoError(t, err)
	assert.NotContains(t, string(blob), string(first.Bytes()))
}
