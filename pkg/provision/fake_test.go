// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"
	"fmt"
	"sync"

	"github.com/platform-engineering-labs/opswish/pkg/poller"
)

// fakeCloud implements every capability interface in memory and records the
// order of long-running submissions and synchronous mutations.
type fakeCloud struct {
	mu sync.Mutex

	// submissions lists long-running mutations in submit order, e.g.
	// "storage:fnapp1", "plan:fnapp1-plan", "functionapp:fnapp1-func".
	submissions []string
	// groupCreates lists synchronous resource group create-or-updates.
	groupCreates []string
	// availabilityChecks counts name-availability queries by name.
	availabilityChecks map[string]int
	// lastStorageConn captures the connection string handed to the last
	// function app create.
	lastStorageConn string

	// nameAvailable defaults to true when nil.
	nameAvailable    map[string]bool
	unavailableWhy   string
	groupErr         error
	storageSubmitErr error
	planResultErr    error
	deployResultErr  error
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{availabilityChecks: map[string]int{}}
}

func (f *fakeCloud) record(list *[]string, entry string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*list = append(*list, entry)
}

func (f *fakeCloud) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions) + len(f.groupCreates)
}

func (f *fakeCloud) CreateOrUpdate(_ context.Context, name, location string) (string, error) {
	if f.groupErr != nil {
		return "", f.groupErr
	}
	f.record(&f.groupCreates, "group:"+name)
	return fmt.Sprintf("/subscriptions/fake/resourceGroups/%s", name), nil
}

func (f *fakeCloud) IsNameAvailable(_ context.Context, name string) (bool, string, error) {
	f.mu.Lock()
	f.availabilityChecks[name]++
	f.mu.Unlock()

	if f.nameAvailable == nil {
		return true, "", nil
	}
	available, ok := f.nameAvailable[name]
	if !ok {
		return true, "", nil
	}
	return available, f.unavailableWhy, nil
}

func (f *fakeCloud) BeginCreateAccount(_ context.Context, rg, name, _ string) (poller.Handle[string], error) {
	if f.storageSubmitErr != nil {
		return nil, f.storageSubmitErr
	}
	f.record(&f.submissions, "storage:"+name)
	id := fmt.Sprintf("/subscriptions/fake/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s", rg, name)
	return poller.Completed(id, nil), nil
}

func (f *fakeCloud) BeginCreatePlan(_ context.Context, rg, name, _ string, _ Tier) (poller.Handle[string], error) {
	f.record(&f.submissions, "plan:"+name)
	if f.planResultErr != nil {
		return poller.Completed("", f.planResultErr), nil
	}
	id := fmt.Sprintf("/subscriptions/fake/resourceGroups/%s/providers/Microsoft.Web/serverfarms/%s", rg, name)
	return poller.Completed(id, nil), nil
}

func (f *fakeCloud) BeginCreateWebApp(_ context.Context, rg, name, _, _ string) (poller.Handle[string], error) {
	f.record(&f.submissions, "webapp:"+name)
	id := fmt.Sprintf("/subscriptions/fake/resourceGroups/%s/providers/Microsoft.Web/sites/%s", rg, name)
	return poller.Completed(id, nil), nil
}

func (f *fakeCloud) BeginCreateFunctionApp(_ context.Context, rg, name, _, _, storageConn string) (poller.Handle[string], error) {
	f.record(&f.submissions, "functionapp:"+name)
	f.mu.Lock()
	f.lastStorageConn = storageConn
	f.mu.Unlock()
	id := fmt.Sprintf("/subscriptions/fake/resourceGroups/%s/providers/Microsoft.Web/sites/%s", rg, name)
	return poller.Completed(id, nil), nil
}

func (f *fakeCloud) BeginDeploy(_ context.Context, rg, name string, _ map[string]any) (poller.Handle[string], error) {
	f.record(&f.submissions, "deployment:"+name)
	if f.deployResultErr != nil {
		return poller.Completed("", f.deployResultErr), nil
	}
	id := fmt.Sprintf("/subscriptions/fake/resourceGroups/%s/providers/Microsoft.Resources/deployments/%s", rg, name)
	return poller.Completed(id, nil), nil
}

func (f *fakeCloud) capabilities() Capabilities {
	return Capabilities{
		Groups:      f,
		Storage:     f,
		Plans:       f,
		Sites:       f,
		Deployments: f,
	}
}
