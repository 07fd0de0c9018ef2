// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// opswish serves a web form that turns free-text operator commands into
// Azure provisioning workflows.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/opswish/pkg/client"
	"github.com/platform-engineering-labs/opswish/pkg/config"
	"github.com/platform-engineering-labs/opswish/pkg/extract"
	"github.com/platform-engineering-labs/opswish/pkg/poller"
	"github.com/platform-engineering-labs/opswish/pkg/provision"
	"github.com/platform-engineering-labs/opswish/pkg/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "opswish",
		Short: "Provision Azure resources from free-text commands",
		Long: `opswish accepts a free-text operator command over HTTP, resolves it into
a provisioning intent with a text-completion model, and executes the
corresponding dependency-ordered Azure workflow.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides OPSWISH_LISTEN)")
	return cmd
}

func run(cmd *cobra.Command, listen string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg := config.FromEnv()
	if listen != "" {
		cfg.ListenAddr = listen
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	azureClient, err := client.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	extractor, err := extract.NewGemini(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create intent extractor: %w", err)
	}

	orch := provision.NewOrchestrator(
		azureClient.Capabilities(),
		&provision.PlaceholderKeyResolver{Log: log},
		poller.Config{Interval: cfg.PollInterval, MaxWait: cfg.PollMaxWait},
		log,
	)

	srv := &server.Server{
		Extractor: extractor,
		Runner:    orch,
		Log:       log,
	}

	log.Info("opswish listening", "addr", cfg.ListenAddr, "subscription", cfg.SubscriptionId)
	return srv.ListenAndServe(cfg.ListenAddr)
}
