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

// WebAppProvisioner creates a web app named "{name}-web" on a Basic plan
// named "{name}-plan" inside a resource group named "{name}". The plan and
// site creates are two sequential long-running submissions; a plan failure
// aborts before the site step is attempted.
type WebAppProvisioner struct {
	Caps Capabilities
}

func (p *WebAppProvisioner) Kind() intent.Kind { return intent.KindWebApp }

func (p *WebAppProvisioner) Plan(name, location string) *Plan {
	planName := name + "-plan"
	siteName := name + "-web"

	return &Plan{
		Kind: intent.KindWebApp,
		Steps: []*Step{
			groupStep(p.Caps, name, location),
			planStep(p.Caps, name, planName, location, TierBasic),
			webAppStep(p.Caps, name, siteName, location, planName),
		},
		successMessage: fmt.Sprintf("Web App '%s' successfully created in '%s'.", siteName, location),
	}
}

func webAppStep(caps Capabilities, resourceGroup, name, location, planName string) *Step {
	return &Step{
		Name:   "web app",
		Target: name,
		submit: func(ctx context.Context) (poller.Handle[string], error) {
			return caps.Sites.BeginCreateWebApp(ctx, resourceGroup, name, location, planName)
		},
	}
}
