// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package client

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// armHandle adapts an azcore runtime.Poller to the poller.Handle contract,
// extracting the created resource's ARM ID from the typed response.
type armHandle[R any] struct {
	lro *runtime.Poller[R]
	id  func(R) string
}

func adapt[R any](lro *runtime.Poller[R], id func(R) string) poller.Handle[string] {
	return &armHandle[R]{lro: lro, id: id}
}

func (h *armHandle[R]) Done() bool {
	return h.lro.Done()
}

func (h *armHandle[R]) Poll(ctx context.Context) error {
	_, err := h.lro.Poll(ctx)
	return err
}

func (h *armHandle[R]) Result(ctx context.Context) (string, error) {
	result, err := h.lro.Result(ctx)
	if err != nil {
		return "", err
	}
	return h.id(result), nil
}
