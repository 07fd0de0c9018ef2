// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build integration

package provision_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/opswish/pkg/client"
	"github.com/platform-engineering-labs/opswish/pkg/config"
	"github.com/platform-engineering-labs/opswish/pkg/intent"
	"github.com/platform-engineering-labs/opswish/pkg/poller"
	"github.com/platform-engineering-labs/opswish/pkg/provision"
)

func getTestSubscriptionID(t *testing.T) string {
	subID := os.Getenv("AZURE_SUBSCRIPTION_ID")
	if subID == "" {
		t.Skip("AZURE_SUBSCRIPTION_ID environment variable not set")
	}
	return subID
}

// newTestOrchestrator builds an orchestrator over real Azure clients.
func newTestOrchestrator(t *testing.T, subscriptionID string) (*provision.Orchestrator, *client.Client) {
	cfg := &config.Config{
		SubscriptionId: subscriptionID,
		PollInterval:   5 * time.Second,
		PollMaxWait:    10 * time.Minute,
	}

	azureClient, err := client.NewClient(context.Background(), cfg)
	require.NoError(t, err)

	orch := provision.NewOrchestrator(
		azureClient.Capabilities(),
		&provision.PlaceholderKeyResolver{},
		poller.Config{Interval: cfg.PollInterval, MaxWait: cfg.PollMaxWait},
		slog.Default(),
	)
	return orch, azureClient
}

// deleteResourceGroup deletes a resource group using the Azure SDK directly
func deleteResourceGroup(ctx context.Context, rgClient *armresources.ResourceGroupsClient, rgName string) {
	lro, err := rgClient.BeginDelete(ctx, rgName, nil)
	if err != nil {
		log.Printf("Failed to start deletion of resource group %s: %v\n", rgName, err)
		return
	}
	_, err = lro.PollUntilDone(ctx, nil)
	if err != nil {
		log.Printf("Failed to delete resource group %s: %v\n", rgName, err)
	} else {
		log.Printf("Successfully deleted resource group: %s\n", rgName)
	}
}

func TestResourceGroupWorkflow_Create(t *testing.T) {
	ctx := context.Background()
	subscriptionID := getTestSubscriptionID(t)

	orch, azureClient := newTestOrchestrator(t, subscriptionID)

	rgName := fmt.Sprintf("opswish-test-create-%d", time.Now().Unix())
	t.Cleanup(func() {
		deleteResourceGroup(ctx, azureClient.ResourceGroupsClient, rgName)
	})

	res := orch.Run(ctx, intent.Intent{
		Kind:     intent.KindResourceGroup,
		Name:     rgName,
		Location: "eastus",
	})

	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, rgName)
	assert.Contains(t, res.ResourceID, rgName)
}

func TestResourceGroupWorkflow_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	subscriptionID := getTestSubscriptionID(t)

	orch, azureClient := newTestOrchestrator(t, subscriptionID)

	rgName := fmt.Sprintf("opswish-test-idem-%d", time.Now().Unix())
	t.Cleanup(func() {
		deleteResourceGroup(ctx, azureClient.ResourceGroupsClient, rgName)
	})

	in := intent.Intent{Kind: intent.KindResourceGroup, Name: rgName, Location: "eastus"}

	first := orch.Run(ctx, in)
	require.True(t, first.Success, first.Message)

	second := orch.Run(ctx, in)
	require.True(t, second.Success, second.Message)
	assert.Equal(t, first.ResourceID, second.ResourceID)
}
