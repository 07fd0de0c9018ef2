// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"
	"fmt"

	"github.com/platform-engineering-labs/opswish/pkg/intent"
	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// StorageAccountProvisioner creates a StorageV2 account inside a resource
// group of the same name. The globally scoped account name is checked for
// availability before anything mutates; a taken name fails the workflow
// with a descriptive result, not an exception.
type StorageAccountProvisioner struct {
	Caps Capabilities
}

func (p *StorageAccountProvisioner) Kind() intent.Kind { return intent.KindStorageAccount }

func (p *StorageAccountProvisioner) Plan(name, location string) *Plan {
	return &Plan{
		Kind: intent.KindStorageAccount,
		Steps: []*Step{
			groupStep(p.Caps, name, location),
			accountStep(p.Caps, name, name, location),
		},
		successMessage: fmt.Sprintf("Storage account '%s' created in '%s'.", name, location),
	}
}

// accountStep creates a storage account and is reused as the backing-store
// dependency of function apps. Its precheck runs before any step in the
// owning plan submits, so an unavailable name never creates the containing
// resource group either.
func accountStep(caps Capabilities, resourceGroup, name, location string) *Step {
	return &Step{
		Name:   "storage account",
		Target: name,
		precheck: func(ctx context.Context) error {
			available, reason, err := caps.Storage.IsNameAvailable(ctx, name)
			if err != nil {
				return err
			}
			if !available {
				msg := fmt.Sprintf("Storage account name '%s' is not available.", name)
				if reason != "" {
					msg = fmt.Sprintf("%s %s", msg, reason)
				}
				return &PreconditionError{Reason: ReasonNameUnavailable, Message: msg}
			}
			return nil
		},
		submit: func(ctx context.Context) (poller.Handle[string], error) {
			return caps.Storage.BeginCreateAccount(ctx, resourceGroup, name, location)
		},
	}
}
