// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package poller hides the asynchronous nature of remote infrastructure
// mutations behind a synchronous-looking call: submit once, poll the
// returned handle at a bounded interval, and return the terminal outcome
// or a timeout.
package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Handle is an in-flight remote operation. The shape intentionally matches
// azcore's runtime.Poller so SDK pollers adapt with a thin wrapper, while
// tests can hand in fakes.
//
// A Handle is owned exclusively by the Await call that received it and must
// not be retained afterwards.
type Handle[T any] interface {
	// Done reports whether the remote side reached a terminal state.
	Done() bool
	// Poll fetches the latest remote state. An error means the remote side
	// reported a failure, not that polling should continue.
	Poll(ctx context.Context) error
	// Result returns the outcome. Only valid once Done is true.
	Result(ctx context.Context) (T, error)
}

// Config bounds one wait.
type Config struct {
	// Interval between status queries.
	Interval time.Duration
	// MaxWait is the maximum total time Await blocks before giving up.
	MaxWait time.Duration
}

const (
	DefaultInterval = 5 * time.Second
	DefaultMaxWait  = 10 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxWait <= 0 {
		c.MaxWait = DefaultMaxWait
	}
	return c
}

// Reason classifies how a remote operation failed.
type Reason string

const (
	ReasonRemoteFailure Reason = "RemoteFailure"
	ReasonTimeout       Reason = "Timeout"
)

// OperationError is the failure outcome of one Await.
type OperationError struct {
	Reason Reason
	Detail string
	cause  error
}

func (e *OperationError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *OperationError) Unwrap() error { return e.cause }

// errPending signals the retry loop that the operation is still running.
var errPending = errors.New("operation still in progress")

// Await submits a remote mutating call and blocks until the remote side
// reports a terminal state, the configured maximum wait elapses, or the
// caller's context is canceled.
//
// submit is called exactly once and is never retried; submission retry
// policy belongs to the caller. A remote-reported failure surfaces as an
// OperationError with ReasonRemoteFailure, an exceeded wait as
// ReasonTimeout. Caller cancellation is returned as the context error.
func Await[T any](ctx context.Context, cfg Config, submit func(context.Context) (Handle[T], error)) (T, error) {
	var zero T
	cfg = cfg.withDefaults()

	handle, err := submit(ctx)
	if err != nil {
		return zero, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.MaxWait)
	defer cancel()

	poll := func() error {
		if handle.Done() {
			return nil
		}
		if perr := handle.Poll(waitCtx); perr != nil {
			return backoff.Permanent(&OperationError{
				Reason: ReasonRemoteFailure,
				Detail: perr.Error(),
				cause:  perr,
			})
		}
		if handle.Done() {
			return nil
		}
		return errPending
	}

	err = backoff.Retry(poll, backoff.WithContext(backoff.NewConstantBackOff(cfg.Interval), waitCtx))
	if err != nil {
		var opErr *OperationError
		if errors.As(err, &opErr) {
			return zero, opErr
		}
		if ctx.Err() != nil {
			// Caller canceled; the remote operation runs to its own
			// completion (accepted limitation, not a crash).
			return zero, ctx.Err()
		}
		return zero, &OperationError{
			Reason: ReasonTimeout,
			Detail: fmt.Sprintf("no terminal state after %s", cfg.MaxWait),
			cause:  err,
		}
	}

	out, err := handle.Result(ctx)
	if err != nil {
		return zero, &OperationError{
			Reason: ReasonRemoteFailure,
			Detail: err.Error(),
			cause:  err,
		}
	}
	return out, nil
}

// Completed wraps an already-terminal outcome in a Handle so synchronous
// operations flow through the same Await path as long-running ones.
func Completed[T any](value T, err error) Handle[T] {
	return &completedHandle[T]{value: value, err: err}
}

type completedHandle[T any] struct {
	value T
	err   error
}

func (h *completedHandle[T]) Done() bool                 { return true }
func (h *completedHandle[T]) Poll(context.Context) error { return h.err }

func (h *completedHandle[T]) Result(context.Context) (T, error) { return h.value, h.err }
