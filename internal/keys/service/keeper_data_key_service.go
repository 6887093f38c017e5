package service

import (
	"context"
	"crypto/rand"
	"fmt"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// keeperDataKeyService implements envelope data keys on top of a gocloud keeper:
// the data key is generated locally and wrapped by the keeper.
type keeperDataKeyService struct {
	keeper KMSKeeper
}

// NewKeeperDataKeyService returns a DataKeyService that wraps data keys with keeper.
func NewKeeperDataKeyService(keeper KMSKeeper) DataKeyService {
	return &keeperDataKeyService{keeper: keeper}
}

// GenerateDataKey generates 32 random bytes and wraps them with the keeper.
func (k *keeperDataKeyService) GenerateDataKey(ctx context.Context) (*DataKey, error) {
	plaintext := make([]byte, keysDomain.SecretSize)
	if _, err := rand.Read(plaintext); err != nil {
		return nil, fmt.Errorf("failed to generate data key: %w", err)
	}

	ciphertext, err := k.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		keysDomain.Zero(plaintext)
		return nil, fmt.Errorf("failed to wrap data key: %w", err)
	}

	return &DataKey{Plaintext: plaintext, Ciphertext: ciphertext}, nil
}

// Decrypt unwraps a data key with the keeper.
func (k *keeperDataKeyService) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	plaintext, err := k.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap data key: %w", err)
	}
	return plaintext, nil
}
