// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

// Result is the single verdict produced for one intent. Every failure mode
// of a workflow becomes a Result; errors never cross the orchestrator
// boundary as faults.
type Result struct {
	Success bool
	Message string
	// ResourceID identifies the primary created resource when the workflow
	// succeeded. Empty on failure.
	ResourceID string
}

const (
	successPrefix = "✅ "
	failurePrefix = "❌ "
)

func success(message, resourceID string) Result {
	return Result{Success: true, Message: successPrefix + message, ResourceID: resourceID}
}

func failure(message string) Result {
	return Result{Success: false, Message: failurePrefix + message}
}
