package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"
)

// KMSAPI is the part of the AWS KMS client used for envelope data keys.
type KMSAPI interface {
	GenerateDataKey(
		ctx context.Context,
		params *kms.GenerateDataKeyInput,
		optFns ...func(*kms.Options),
	) (*kms.GenerateDataKeyOutput, error)
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

type awsDataKeyService struct {
	client KMSAPI
	keyID  string
}

// NewAWSDataKeyService wraps a KMS client bound to keyID.
func NewAWSDataKeyService(client KMSAPI, keyID string) DataKeyService {
	return &awsDataKeyService{client: client, keyID: keyID}
}

// NewAWSDataKeyServiceFromRegion loads the default AWS credential chain for region
// and returns a DataKeyService backed by the KMS key keyID.
func NewAWSDataKeyServiceFromRegion(ctx context.Context, region, keyID string) (DataKeyService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewAWSDataKeyService(kms.NewFromConfig(cfg), keyID), nil
}

// GenerateDataKey calls GenerateDataKey with KeySpec AES_256.
func (a *awsDataKeyService) GenerateDataKey(ctx context.Context) (*DataKey, error) {
	out, err := a.client.GenerateDataKey(ctx, &kms.GenerateDataKeyInput{
		KeyId:   aws.String(a.keyID),
		KeySpec: types.DataKeySpecAes256,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate kms data key: %w", err)
	}
	return &DataKey{Plaintext: out.Plaintext, Ciphertext: out.CiphertextBlob}, nil
}

// Decrypt unwraps a CiphertextBlob.
func (a *awsDataKeyService) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	out, err := a.client.Decrypt(ctx, &kms.DecryptInput{
		CiphertextBlob: ciphertext,
		KeyId:          aws.String(a.keyID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt kms data key: %w", err)
	}
	return out.Plaintext, nil
}
