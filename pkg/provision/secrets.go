// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"
	"fmt"
	"log/slog"
)

// SecretResolver supplies the storage connection string a function app is
// bootstrapped with. Live key retrieval (listKeys, Key Vault) is an
// external collaborator behind this interface, not something provisioners
// do inline.
type SecretResolver interface {
	StorageConnectionString(ctx context.Context, accountName string) (string, error)
}

// PlaceholderKeyResolver emits a connection string with a placeholder
// account key. It exists to keep config bootstrap working without a secret
// store wired in; the placeholder must be replaced before the function app
// can actually reach its storage account, so every use is logged loudly.
type PlaceholderKeyResolver struct {
	Log *slog.Logger
}

func (r *PlaceholderKeyResolver) StorageConnectionString(_ context.Context, accountName string) (string, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	log.Warn("using placeholder storage account key; wire a real secret resolver before relying on this function app",
		"account", accountName)

	return fmt.Sprintf(
		"DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=***REPLACE_THIS***;EndpointSuffix=core.windows.net",
		accountName,
	), nil
}
