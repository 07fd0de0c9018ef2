// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package extract resolves a free-text operator command into a normalized
// provisioning intent using an external text-completion service.
package extract

import (
	"context"

	"github.com/platform-engineering-labs/opswish/pkg/intent"
)

// Extractor turns one raw command into an Intent. Implementations own the
// round trip to the completion service; parsing and normalization of the
// completion is shared (pkg/intent).
type Extractor interface {
	Extract(ctx context.Context, command string) (intent.Intent, error)
}
