// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Config holds process configuration, loaded once at startup.
type Config struct {
	// SubscriptionId is the Azure subscription all workflows provision into.
	SubscriptionId string
	// GoogleAPIKey authenticates the intent extractor. GEMINI_API_KEY is
	// accepted as a fallback env var.
	GoogleAPIKey string
	// GeminiModel is the text-completion model used for extraction.
	GeminiModel string
	// ListenAddr is the HTTP listen address.
	ListenAddr string
	// PollInterval and PollMaxWait bound each long-running operation wait.
	PollInterval time.Duration
	PollMaxWait  time.Duration
}

const (
	defaultGeminiModel  = "gemini-1.5-flash"
	defaultListenAddr   = ":8080"
	defaultPollInterval = 5 * time.Second
	defaultPollMaxWait  = 10 * time.Minute
)

// FromEnv reads configuration from the environment and applies defaults.
func FromEnv() *Config {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	return &Config{
		SubscriptionId: os.Getenv("AZURE_SUBSCRIPTION_ID"),
		GoogleAPIKey:   apiKey,
		GeminiModel:    envOr("OPSWISH_GEMINI_MODEL", defaultGeminiModel),
		ListenAddr:     envOr("OPSWISH_LISTEN", defaultListenAddr),
		PollInterval:   envDurationOr("OPSWISH_POLL_INTERVAL", defaultPollInterval),
		PollMaxWait:    envDurationOr("OPSWISH_POLL_MAX_WAIT", defaultPollMaxWait),
	}
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	if c.SubscriptionId == "" {
		return fmt.Errorf("AZURE_SUBSCRIPTION_ID is required")
	}
	if c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY (or GEMINI_API_KEY) is required")
	}
	return nil
}

// ToAzureCredential creates Azure credentials using the default credential chain.
// This uses DefaultAzureCredential which tries multiple authentication methods:
// - Environment variables (AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_TENANT_ID)
// - Managed Identity
// - Azure CLI
// - Azure PowerShell
// - etc.
func (c *Config) ToAzureCredential(ctx context.Context) (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
