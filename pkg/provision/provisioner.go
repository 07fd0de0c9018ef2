// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"github.com/platform-engineering-labs/opswish/pkg/intent"
)

// Provisioner builds the dependency-ordered plan for one resource kind.
// Dependency logic lives in the plan itself (dependencies are earlier
// steps), defined once per kind and evaluated by the orchestrator.
type Provisioner interface {
	Kind() intent.Kind
	Plan(name, location string) *Plan
}

// Plan is the ordered step list for one workflow, dependencies first.
type Plan struct {
	Kind  intent.Kind
	Steps []*Step
	// successMessage is the verdict reported when every step succeeds.
	successMessage string
}
