package service

import (
	"context"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// DataKeyServiceFactory builds the remote capability once the remote settings
// have been validated.
type DataKeyServiceFactory func(ctx context.Context, cfg keysDomain.RemoteConfig) (DataKeyService, func() error, error)

// NewDataKeyServiceFactory returns the default factory. Key identifiers that look
// like URIs open a gocloud keeper; anything else is treated as an AWS KMS key id,
// ARN or alias in cfg.Region. The returned close function releases the keeper.
func NewDataKeyServiceFactory(kmsService KMSService) DataKeyServiceFactory {
	return func(ctx context.Context, cfg keysDomain.RemoteConfig) (DataKeyService, func() error, error) {
		if IsKeeperURI(cfg.KeyID) {
			keeper, err := kmsService.OpenKeeper(ctx, keeperURIWithRegion(cfg.KeyID, cfg.Region))
			if err != nil {
				return nil, nil, err
			}
			return NewKeeperDataKeyService(keeper), keeper.Close, nil
		}

		svc, err := NewAWSDataKeyServiceFromRegion(ctx, cfg.Region, cfg.KeyID)
		if err != nil {
			return nil, nil, err
		}
		return svc, func() error { return nil }, nil
	}
}
