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

// FunctionAppProvisioner creates a function app named "{name}-func" on a
// Consumption plan, backed by a storage account named "{name}". Three
// long-running submissions run in order: storage account, hosting plan,
// function app. The storage name-availability precheck gates the whole
// chain, so a taken name issues zero mutating calls.
type FunctionAppProvisioner struct {
	Caps    Capabilities
	Secrets SecretResolver
}

func (p *FunctionAppProvisioner) Kind() intent.Kind { return intent.KindFunctionApp }

func (p *FunctionAppProvisioner) Plan(name, location string) *Plan {
	planName := name + "-plan"
	siteName := name + "-func"

	return &Plan{
		Kind: intent.KindFunctionApp,
		Steps: []*Step{
			groupStep(p.Caps, name, location),
			accountStep(p.Caps, name, name, location),
			planStep(p.Caps, name, planName, location, TierConsumption),
			functionAppStep(p.Caps, p.Secrets, name, siteName, location, planName, name),
		},
		successMessage: fmt.Sprintf("Function App '%s' successfully created in '%s'.", siteName, location),
	}
}

func functionAppStep(caps Capabilities, secrets SecretResolver, resourceGroup, name, location, planName, storageAccount string) *Step {
	return &Step{
		Name:   "function app",
		Target: name,
		submit: func(ctx context.Context) (poller.Handle[string], error) {
			conn, err := secrets.StorageConnectionString(ctx, storageAccount)
			if err != nil {
				return nil, fmt.Errorf("resolving storage connection string: %w", err)
			}
			return caps.Sites.BeginCreateFunctionApp(ctx, resourceGroup, name, location, planName, conn)
		},
	}
}
