// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"

	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// Hosting plans are an internal dependency, not a dispatchable kind: web
// apps sit on a Basic plan, function apps on a Consumption plan. The
// containing resource group must already exist, which the owning plans
// guarantee by ordering.

func planStep(caps Capabilities, resourceGroup, name, location string, tier Tier) *Step {
	return &Step{
		Name:   "hosting plan",
		Target: name,
		submit: func(ctx context.Context) (poller.Handle[string], error) {
			return caps.Plans.BeginCreatePlan(ctx, resourceGroup, name, location, tier)
		},
	}
}
