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

// LogicAppProvisioner deploys a minimal Logic App workflow (HTTP request
// trigger, no actions) as a single incremental template deployment into a
// resource group of the same name. A deployment failure surfaces the remote
// error text verbatim in the verdict.
type LogicAppProvisioner struct {
	Caps Capabilities
}

func (p *LogicAppProvisioner) Kind() intent.Kind { return intent.KindLogicApp }

func (p *LogicAppProvisioner) Plan(name, location string) *Plan {
	deploymentName := name + "-logicapp-deployment"

	return &Plan{
		Kind: intent.KindLogicApp,
		Steps: []*Step{
			groupStep(p.Caps, name, location),
			deploymentStep(p.Caps, name, deploymentName, logicAppTemplate(name, location)),
		},
		successMessage: fmt.Sprintf("Logic App '%s' successfully deployed in '%s'.", name, location),
	}
}

func deploymentStep(caps Capabilities, resourceGroup, deploymentName string, template map[string]any) *Step {
	return &Step{
		Name:   "logic app deployment",
		Target: deploymentName,
		submit: func(ctx context.Context) (poller.Handle[string], error) {
			return caps.Deployments.BeginDeploy(ctx, resourceGroup, deploymentName, template)
		},
		failMessage: func(err error) string {
			return fmt.Sprintf("Failed to deploy Logic App: %v", err)
		},
	}
}

// logicAppTemplate is the fixed workflow-definition document: an HTTP
// request trigger with an open schema and an empty action set.
func logicAppTemplate(name, location string) map[string]any {
	return map[string]any{
		"$schema":        "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#",
		"contentVersion": "1.0.0.0",
		"resources": []any{
			map[string]any{
				"type":       "Microsoft.Logic/workflows",
				"apiVersion": "2019-05-01",
				"name":       name,
				"location":   location,
				"properties": map[string]any{
					"definition": map[string]any{
						"$schema":        "https://schema.management.azure.com/providers/Microsoft.Logic/schemas/2016-06-01/workflowdefinition.json#",
						"contentVersion": "1.0.0.0",
						"actions":        map[string]any{},
						"outputs":        map[string]any{},
						"triggers": map[string]any{
							"When_a_HTTP_request_is_received": map[string]any{
								"type": "Request",
								"kind": "Http",
								"inputs": map[string]any{
									"schema": map[string]any{},
								},
							},
						},
					},
					"parameters": map[string]any{},
				},
			},
		},
	}
}
