// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"
	"fmt"

	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// Status is the lifecycle of one provisioning step. It only advances
// forward; Succeeded and Failed are terminal.
type Status int

const (
	StatusPending Status = iota
	StatusSubmitted
	StatusPolling
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSubmitted:
		return "Submitted"
	case StatusPolling:
		return "Polling"
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Step is one remote mutation in a workflow's dependency chain. A step may
// only be submitted after every step ordered before it has succeeded; the
// orchestrator enforces that by executing plans strictly sequentially.
type Step struct {
	// Name is the human label for the resource kind this step creates,
	// e.g. "storage account".
	Name string
	// Target is the name of the resource being created.
	Target string

	status Status

	// precheck runs before any step in the plan submits. A returned
	// *PreconditionError short-circuits the whole workflow with zero
	// mutating calls issued.
	precheck func(ctx context.Context) error
	// submit starts the remote mutation and hands back the operation to
	// poll. Synchronous operations return poller.Completed handles.
	submit func(ctx context.Context) (poller.Handle[string], error)
	// failMessage overrides the default failure verdict wording.
	failMessage func(err error) string
}

// Status returns the step's current lifecycle state.
func (s *Step) Status() Status { return s.status }

// Advance moves the step forward. Moving backwards or out of a terminal
// state is a programming error and is rejected.
func (s *Step) Advance(next Status) error {
	if s.status.terminal() {
		return fmt.Errorf("step %q is already %s", s.Name, s.status)
	}
	if next <= s.status {
		return fmt.Errorf("step %q cannot regress from %s to %s", s.Name, s.status, next)
	}
	s.status = next
	return nil
}

func (s *Step) failureVerdict(err error) string {
	if s.failMessage != nil {
		return s.failMessage(err)
	}
	return fmt.Sprintf("Failed to create %s '%s': %v", s.Name, s.Target, err)
}

// PreconditionError reports a failed pre-condition check (for example a
// taken storage account name). It short-circuits the workflow before any
// remote mutation and its message is reported to the caller verbatim.
type PreconditionError struct {
	Reason  string
	Message string
}

const ReasonNameUnavailable = "NameUnavailable"

func (e *PreconditionError) Error() string { return e.Message }
