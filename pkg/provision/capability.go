// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package provision maps a normalized intent to an ordered, dependency-aware
// sequence of infrastructure operations and executes it against an abstract
// cloud-management capability set.
package provision

import (
	"context"

	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// Tier selects the hosting-plan pricing tier.
type Tier string

const (
	// TierBasic is a dedicated B1 plan, used for web apps.
	TierBasic Tier = "Basic"
	// TierConsumption is the Y1 dynamic plan, used for function apps.
	TierConsumption Tier = "Consumption"
)

// The capability interfaces below are the orchestrator's entire remote
// surface. Any provider exposing equivalent create/poll/check-availability
// semantics satisfies them; pkg/client implements them over the Azure SDK
// and tests implement them with fakes.

// GroupsAPI manages resource groups. CreateOrUpdate is synchronous and
// idempotent: creating an existing group with identical properties succeeds.
type GroupsAPI interface {
	CreateOrUpdate(ctx context.Context, name, location string) (resourceID string, err error)
}

// StorageAPI manages storage accounts.
type StorageAPI interface {
	// IsNameAvailable reports whether the globally scoped account name is
	// free. reason carries the provider's explanation when it is not.
	IsNameAvailable(ctx context.Context, name string) (available bool, reason string, err error)
	BeginCreateAccount(ctx context.Context, resourceGroup, name, location string) (poller.Handle[string], error)
}

// PlansAPI manages hosting plans.
type PlansAPI interface {
	BeginCreatePlan(ctx context.Context, resourceGroup, name, location string, tier Tier) (poller.Handle[string], error)
}

// SitesAPI manages web and function apps. The plan is referenced by name;
// the implementation resolves it to a provider-specific identifier.
type SitesAPI interface {
	BeginCreateWebApp(ctx context.Context, resourceGroup, name, location, planName string) (poller.Handle[string], error)
	BeginCreateFunctionApp(ctx context.Context, resourceGroup, name, location, planName, storageConnection string) (poller.Handle[string], error)
}

// DeploymentsAPI submits declarative template deployments in incremental mode.
type DeploymentsAPI interface {
	BeginDeploy(ctx context.Context, resourceGroup, deploymentName string, template map[string]any) (poller.Handle[string], error)
}

// Capabilities bundles the remote capability set. It is injected into the
// orchestrator and provisioners explicitly; there is no process-wide client
// state.
type Capabilities struct {
	Groups      GroupsAPI
	Storage     StorageAPI
	Plans       PlansAPI
	Sites       SitesAPI
	Deployments DeploymentsAPI
}
