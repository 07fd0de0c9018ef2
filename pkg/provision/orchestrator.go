// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/platform-engineering-labs/opswish/pkg/intent"
	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// Orchestrator maps a normalized intent to the provisioner for its kind,
// executes the plan's steps strictly sequentially, and aggregates a single
// Result. One Run handles one workflow; the orchestrator itself holds no
// mutable per-workflow state and is safe to share across concurrent
// requests.
type Orchestrator struct {
	resourceGroup  Provisioner
	storageAccount Provisioner
	webApp         Provisioner
	functionApp    Provisioner
	logicApp       Provisioner

	poll poller.Config
	log  *slog.Logger
}

// NewOrchestrator wires one provisioner per resource kind against the given
// capability set. All collaborators are passed in explicitly so the
// orchestrator is instantiable per test with fakes.
func NewOrchestrator(caps Capabilities, secrets SecretResolver, poll poller.Config, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		resourceGroup:  &ResourceGroupProvisioner{Caps: caps},
		storageAccount: &StorageAccountProvisioner{Caps: caps},
		webApp:         &WebAppProvisioner{Caps: caps},
		functionApp:    &FunctionAppProvisioner{Caps: caps, Secrets: secrets},
		logicApp:       &LogicAppProvisioner{Caps: caps},
		poll:           poll,
		log:            log,
	}
}

// provisionerFor is the closed dispatch over the kind enum. Adding a kind
// means adding a case here and a provisioner type, both checked at compile
// time.
func (o *Orchestrator) provisionerFor(k intent.Kind) Provisioner {
	switch k {
	case intent.KindResourceGroup:
		return o.resourceGroup
	case intent.KindStorageAccount:
		return o.storageAccount
	case intent.KindWebApp:
		return o.webApp
	case intent.KindFunctionApp:
		return o.functionApp
	case intent.KindLogicApp:
		return o.logicApp
	case intent.KindUnknown, intent.KindInvalid:
		return nil
	}
	return nil
}

// Run executes the workflow for one intent and reports exactly one verdict.
// All failures come back as data; nothing remote is contacted for an
// unrecognized kind.
func (o *Orchestrator) Run(ctx context.Context, in intent.Intent) Result {
	prov := o.provisionerFor(in.Kind)
	if prov == nil {
		return failure("unrecognized resource kind")
	}

	plan := prov.Plan(in.Name, in.Location)
	log := o.log.With("kind", in.Kind.String(), "name", in.Name, "location", in.Location)

	// Pre-condition phase: every check runs before anything mutates, so a
	// failed check leaves no partially created infrastructure behind.
	for _, step := range plan.Steps {
		if step.precheck == nil {
			continue
		}
		if err := step.precheck(ctx); err != nil {
			_ = step.Advance(StatusFailed)

			var pre *PreconditionError
			if errors.As(err, &pre) {
				log.Info("precondition failed", "step", step.Name, "target", step.Target, "reason", pre.Reason)
				return failure(pre.Message)
			}
			log.Error("precondition check errored", "step", step.Name, "target", step.Target, "error", err)
			return failure(step.failureVerdict(err))
		}
	}

	var resourceID string
	for _, step := range plan.Steps {
		id, err := o.runStep(ctx, log, step)
		if err != nil {
			// Later steps are skipped, never attempted; the verdict names
			// the first failing step.
			return failure(step.failureVerdict(err))
		}
		resourceID = id
	}

	return success(plan.successMessage, resourceID)
}

// runStep drives one step through its lifecycle: submit once, poll to a
// terminal state, record the outcome.
func (o *Orchestrator) runStep(ctx context.Context, log *slog.Logger, step *Step) (string, error) {
	start := time.Now()
	log.Info("step starting", "step", step.Name, "target", step.Target)

	_ = step.Advance(StatusSubmitted)

	id, err := poller.Await(ctx, o.poll, func(ctx context.Context) (poller.Handle[string], error) {
		handle, submitErr := step.submit(ctx)
		if submitErr == nil {
			_ = step.Advance(StatusPolling)
		}
		return handle, submitErr
	})
	if err != nil {
		_ = step.Advance(StatusFailed)
		log.Error("step failed", "step", step.Name, "target", step.Target,
			"duration", time.Since(start), "error", err)
		return "", err
	}

	_ = step.Advance(StatusSucceeded)
	log.Info("step succeeded", "step", step.Name, "target", step.Target,
		"duration", time.Since(start), "resourceID", id)
	return id, nil
}
