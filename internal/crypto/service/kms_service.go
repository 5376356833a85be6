package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

type kmsService struct {
	mux *secrets.URLMux
}

// NewKMSService creates a KMSService over the default gocloud.dev/secrets
// URL mux: gcpkms://, awskms://, azurekeyvault://, hashivault:// and
// base64key:// for local development.
func NewKMSService() KMSService {
	return &kmsService{mux: secrets.DefaultURLMux()}
}

// OpenKeeper opens the keeper named by keyURI. Unknown schemes are reported
// with the list of registered ones.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	scheme, _, ok := strings.Cut(keyURI, "://")
	if !ok || !k.mux.ValidKeeperScheme(scheme) {
		return nil, fmt.Errorf(
			"failed to open KMS keeper: unsupported key URI scheme %q (supported: %s)",
			scheme, strings.Join(k.mux.KeeperSchemes(), ", "),
		)
	}

	keeper, err := k.mux.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
