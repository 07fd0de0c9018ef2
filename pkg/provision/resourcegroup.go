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

// ResourceGroupProvisioner creates a resource group. Creation is an
// idempotent create-or-update: provisioning an existing group with
// identical properties succeeds.
type ResourceGroupProvisioner struct {
	Caps Capabilities
}

func (p *ResourceGroupProvisioner) Kind() intent.Kind { return intent.KindResourceGroup }

func (p *ResourceGroupProvisioner) Plan(name, location string) *Plan {
	return &Plan{
		Kind:           intent.KindResourceGroup,
		Steps:          []*Step{groupStep(p.Caps, name, location)},
		successMessage: fmt.Sprintf("Resource group '%s' created in '%s'.", name, location),
	}
}

// groupStep is the containing-resource-group dependency shared by every
// other provisioner. The create is synchronous, so the outcome rides a
// completed handle through the common polling path.
func groupStep(caps Capabilities, name, location string) *Step {
	return &Step{
		Name:   "resource group",
		Target: name,
		submit: func(ctx context.Context) (poller.Handle[string], error) {
			id, err := caps.Groups.CreateOrUpdate(ctx, name, location)
			if err != nil {
				return nil, err
			}
			return poller.Completed(id, nil), nil
		},
	}
}
