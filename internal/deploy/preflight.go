package deploy

import (
	"context"
	"fmt"

	"auxtables/internal/config"
)

// workspaceAPIVersion is used for the workspace existence probe.
const workspaceAPIVersion = "2022-10-01"

// Preflight verifies the run's preconditions: the resource group and the
// Log Analytics workspace must already exist. A preflight failure aborts
// the run before any table is attempted.
type Preflight struct {
	groups    ResourceGroupsAPI
	resources ResourcesAPI
}

// NewPreflight creates a Preflight from the management clients.
func NewPreflight(groups ResourceGroupsAPI, resources ResourcesAPI) *Preflight {
	return &Preflight{groups: groups, resources: resources}
}

// Check returns an error describing the first unmet precondition, or nil.
func (p *Preflight) Check(ctx context.Context, dctx config.DeploymentContext) error {
	ok, err := p.groups.Exists(ctx, dctx.ResourceGroup)
	if err != nil {
		return fmt.Errorf("verify resource group: %w", err)
	}
	if !ok {
		return fmt.Errorf("resource group %q does not exist in subscription %s", dctx.ResourceGroup, dctx.SubscriptionID)
	}

	ok, err = p.resources.ExistsByID(ctx, dctx.WorkspaceResourceID(), workspaceAPIVersion)
	if err != nil {
		return fmt.Errorf("verify workspace: %w", err)
	}
	if !ok {
		return fmt.Errorf("workspace %q does not exist in resource group %q", dctx.Workspace, dctx.ResourceGroup)
	}
	return nil
}
