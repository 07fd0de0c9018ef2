// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package client

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/platform-engineering-labs/opswish/pkg/config"
	"github.com/platform-engineering-labs/opswish/pkg/poller"
	"github.com/platform-engineering-labs/opswish/pkg/provision"
)

// Client wraps the Azure SDK clients behind the provisioning capability
// interfaces. Resource-specific clients (ResourceGroupsClient,
// AccountsClient, ...) give type-safe operations following Azure SDK
// conventions; when adding new resource types, add new typed client fields
// here.
//
// The Client carries no per-workflow state and is safely reusable across
// concurrent workflows.
type Client struct {
	Config *config.Config

	ResourceGroupsClient  *armresources.ResourceGroupsClient
	DeploymentsClient     *armresources.DeploymentsClient
	StorageAccountsClient *armstorage.AccountsClient
	PlansClient           *armappservice.PlansClient
	WebAppsClient         *armappservice.WebAppsClient
}

// NewClient creates a new Azure client wrapper from process configuration.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	cred, err := cfg.ToAzureCredential(ctx)
	if err != nil {
		return nil, err
	}

	clientOptions := &arm.ClientOptions{}

	rgClient, err := armresources.NewResourceGroupsClient(cfg.SubscriptionId, cred, clientOptions)
	if err != nil {
		return nil, err
	}

	deploymentsClient, err := armresources.NewDeploymentsClient(cfg.SubscriptionId, cred, clientOptions)
	if err != nil {
		return nil, err
	}

	storageAccountsClient, err := armstorage.NewAccountsClient(cfg.SubscriptionId, cred, clientOptions)
	if err != nil {
		return nil, err
	}

	plansClient, err := armappservice.NewPlansClient(cfg.SubscriptionId, cred, clientOptions)
	if err != nil {
		return nil, err
	}

	webAppsClient, err := armappservice.NewWebAppsClient(cfg.SubscriptionId, cred, clientOptions)
	if err != nil {
		return nil, err
	}

	return &Client{
		Config:                cfg,
		ResourceGroupsClient:  rgClient,
		DeploymentsClient:     deploymentsClient,
		StorageAccountsClient: storageAccountsClient,
		PlansClient:           plansClient,
		WebAppsClient:         webAppsClient,
	}, nil
}

// Capabilities exposes the client as the orchestrator's capability set.
func (c *Client) Capabilities() provision.Capabilities {
	return provision.Capabilities{
		Groups:      c,
		Storage:     c,
		Plans:       c,
		Sites:       c,
		Deployments: c,
	}
}

// serverFarmID composes the ARM identifier of a hosting plan. Provisioners
// reference plans by name only; the subscription stays an implementation
// detail of this package.
func (c *Client) serverFarmID(resourceGroup, planName string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Web/serverfarms/%s",
		c.Config.SubscriptionId, resourceGroup, planName)
}

// CreateOrUpdate creates a resource group. The operation is synchronous and
// idempotent: repeating it with identical properties succeeds.
func (c *Client) CreateOrUpdate(ctx context.Context, name, location string) (string, error) {
	result, err := c.ResourceGroupsClient.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: &location,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create resource group: %w", err)
	}
	return deref(result.ID), nil
}

// IsNameAvailable checks the global storage account namespace.
func (c *Client) IsNameAvailable(ctx context.Context, name string) (bool, string, error) {
	accountType := "Microsoft.Storage/storageAccounts"
	result, err := c.StorageAccountsClient.CheckNameAvailability(ctx, armstorage.AccountCheckNameAvailabilityParameters{
		Name: &name,
		Type: &accountType,
	}, nil)
	if err != nil {
		return false, "", fmt.Errorf("failed to check storage account name availability: %w", err)
	}

	available := result.NameAvailable != nil && *result.NameAvailable
	return available, deref(result.Message), nil
}

// BeginCreateAccount starts creation of a StorageV2 / Standard_LRS account.
func (c *Client) BeginCreateAccount(ctx context.Context, resourceGroup, name, location string) (poller.Handle[string], error) {
	kind := armstorage.KindStorageV2
	skuName := armstorage.SKUNameStandardLRS

	lro, err := c.StorageAccountsClient.BeginCreate(ctx, resourceGroup, name, armstorage.AccountCreateParameters{
		Location: &location,
		Kind:     &kind,
		SKU:      &armstorage.SKU{Name: &skuName},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start storage account creation: %w", err)
	}

	return adapt(lro, func(r armstorage.AccountsClientCreateResponse) string {
		return deref(r.ID)
	}), nil
}

// BeginCreatePlan starts creation of a hosting plan in the requested tier.
func (c *Client) BeginCreatePlan(ctx context.Context, resourceGroup, name, location string, tier provision.Tier) (poller.Handle[string], error) {
	plan := armappservice.Plan{
		Location: &location,
	}

	switch tier {
	case provision.TierConsumption:
		// Y1/Dynamic, the serverless SKU function apps run on.
		plan.Kind = ptr("functionapp")
		plan.SKU = &armappservice.SKUDescription{
			Name: ptr("Y1"),
			Tier: ptr("Dynamic"),
		}
		plan.Properties = &armappservice.PlanProperties{Reserved: ptr(false)}
	default:
		plan.SKU = &armappservice.SKUDescription{
			Name:     ptr("B1"),
			Tier:     ptr("Basic"),
			Capacity: ptr(int32(1)),
		}
	}

	lro, err := c.PlansClient.BeginCreateOrUpdate(ctx, resourceGroup, name, plan, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start hosting plan creation: %w", err)
	}

	return adapt(lro, func(r armappservice.PlansClientCreateOrUpdateResponse) string {
		return deref(r.ID)
	}), nil
}

// BeginCreateWebApp starts creation of a web app on an existing plan.
func (c *Client) BeginCreateWebApp(ctx context.Context, resourceGroup, name, location, planName string) (poller.Handle[string], error) {
	site := armappservice.Site{
		Location: &location,
		Properties: &armappservice.SiteProperties{
			ServerFarmID: ptr(c.serverFarmID(resourceGroup, planName)),
		},
	}

	lro, err := c.WebAppsClient.BeginCreateOrUpdate(ctx, resourceGroup, name, site, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start web app creation: %w", err)
	}

	return adapt(lro, func(r armappservice.WebAppsClientCreateOrUpdateResponse) string {
		return deref(r.ID)
	}), nil
}

// BeginCreateFunctionApp starts creation of a function app bootstrapped
// with its storage connection string and the Functions v4 Python runtime.
func (c *Client) BeginCreateFunctionApp(ctx context.Context, resourceGroup, name, location, planName, storageConnection string) (poller.Handle[string], error) {
	site := armappservice.Site{
		Location: &location,
		Kind:     ptr("functionapp"),
		Properties: &armappservice.SiteProperties{
			ServerFarmID: ptr(c.serverFarmID(resourceGroup, planName)),
			SiteConfig: &armappservice.SiteConfig{
				AppSettings: []*armappservice.NameValuePair{
					{Name: ptr("AzureWebJobsStorage"), Value: &storageConnection},
					{Name: ptr("FUNCTIONS_EXTENSION_VERSION"), Value: ptr("~4")},
					{Name: ptr("FUNCTIONS_WORKER_RUNTIME"), Value: ptr("python")},
				},
			},
		},
	}

	lro, err := c.WebAppsClient.BeginCreateOrUpdate(ctx, resourceGroup, name, site, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start function app creation: %w", err)
	}

	return adapt(lro, func(r armappservice.WebAppsClientCreateOrUpdateResponse) string {
		return deref(r.ID)
	}), nil
}

// BeginDeploy submits an incremental template deployment.
func (c *Client) BeginDeploy(ctx context.Context, resourceGroup, deploymentName string, template map[string]any) (poller.Handle[string], error) {
	mode := armresources.DeploymentModeIncremental

	lro, err := c.DeploymentsClient.BeginCreateOrUpdate(ctx, resourceGroup, deploymentName, armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode:       &mode,
			Template:   template,
			Parameters: map[string]any{},
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start template deployment: %w", err)
	}

	return adapt(lro, func(r armresources.DeploymentsClientCreateOrUpdateResponse) string {
		return deref(r.ID)
	}), nil
}

// ptr returns a pointer to v. Useful for Azure SDK calls.
func ptr[T any](v T) *T {
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
