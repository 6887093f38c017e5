package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens gocloud.dev secrets keepers from key URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for the KMS provider encoded in keyURI.
	// Returns an error if the URI is invalid or the provider cannot be reached.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// IsKeeperURI reports whether keyID is a gocloud keeper URI rather than a
// native key identifier.
func IsKeeperURI(keyID string) bool {
	return strings.Contains(keyID, "://")
}

// keeperURIWithRegion adds the region query parameter to awskms:// URIs that
// do not carry one.
func keeperURIWithRegion(keyURI, region string) string {
	u, err := url.Parse(keyURI)
	if err != nil || u.Scheme != "awskms" || region == "" {
		return keyURI
	}
	q := u.Query()
	if q.Get("region") != "" {
		return keyURI
	}
	q.Set("region", region)
	u.RawQuery = q.Encode()
	return u.String()
}
