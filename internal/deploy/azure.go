// Package deploy implements the per-table provisioning pipeline: template
// submission through the ARM deployments service, the direct-write fallback
// path, preflight existence checks, and outcome aggregation.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// DeploymentResult is the interpreted outcome of one template deployment.
type DeploymentResult struct {
	// ProvisioningState as reported by the service. Exactly "Succeeded"
	// signals success; every other value, including empty, is a failure.
	ProvisioningState string
	// ErrorMessage carries attached error detail, for diagnostics only.
	ErrorMessage string
}

// DeploymentsAPI is the narrow deployments-service surface the submitter
// needs. The production implementation wraps the ARM deployments client;
// tests substitute fakes.
type DeploymentsAPI interface {
	CreateOrUpdate(ctx context.Context, resourceGroup, deploymentName string, template map[string]any) (DeploymentResult, error)
}

// ResourceGroupsAPI checks resource group existence.
type ResourceGroupsAPI interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// ResourcesAPI checks existence of an arbitrary resource by ARM ID.
type ResourcesAPI interface {
	ExistsByID(ctx context.Context, resourceID, apiVersion string) (bool, error)
}

// Clients bundles the authenticated Azure clients used by a run.
type Clients struct {
	Deployments DeploymentsAPI
	Groups      ResourceGroupsAPI
	Resources   ResourcesAPI
	Credential  azcore.TokenCredential
}

// NewClients builds the Azure management clients for a subscription using
// the default credential chain (environment, workload identity, managed
// identity, CLI session).
func NewClients(subscriptionID string) (*Clients, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("build azure credential: %w", err)
	}
	deployments, err := armresources.NewDeploymentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("build deployments client: %w", err)
	}
	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("build resource groups client: %w", err)
	}
	resources, err := armresources.NewClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("build resources client: %w", err)
	}
	return &Clients{
		Deployments: &armDeployments{client: deployments},
		Groups:      &armGroups{client: groups},
		Resources:   &armResources{client: resources},
		Credential:  cred,
	}, nil
}

type armDeployments struct {
	client *armresources.DeploymentsClient
}

func (a *armDeployments) CreateOrUpdate(ctx context.Context, resourceGroup, deploymentName string, template map[string]any) (DeploymentResult, error) {
	poller, err := a.client.BeginCreateOrUpdate(ctx, resourceGroup, deploymentName, armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode:     to.Ptr(armresources.DeploymentModeIncremental),
			Template: template,
		},
	}, nil)
	if err != nil {
		return DeploymentResult{}, fmt.Errorf("submit deployment %s: %w", deploymentName, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return DeploymentResult{}, fmt.Errorf("poll deployment %s: %w", deploymentName, err)
	}

	var result DeploymentResult
	if props := resp.Properties; props != nil {
		if props.ProvisioningState != nil {
			result.ProvisioningState = string(*props.ProvisioningState)
		}
		result.ErrorMessage = flattenError(props.Error)
	}
	return result, nil
}

// flattenError renders an ARM error response, including one level of nested
// detail, into a single diagnostic string.
func flattenError(e *armresources.ErrorResponse) string {
	if e == nil {
		return ""
	}
	var parts []string
	if e.Code != nil && *e.Code != "" {
		parts = append(parts, *e.Code)
	}
	if e.Message != nil && *e.Message != "" {
		parts = append(parts, *e.Message)
	}
	for _, d := range e.Details {
		if d == nil {
			continue
		}
		if s := flattenError(d); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ": ")
}

type armGroups struct {
	client *armresources.ResourceGroupsClient
}

func (a *armGroups) Exists(ctx context.Context, name string) (bool, error) {
	resp, err := a.client.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("check resource group %s: %w", name, err)
	}
	return resp.Success, nil
}

type armResources struct {
	client *armresources.Client
}

func (a *armResources) ExistsByID(ctx context.Context, resourceID, apiVersion string) (bool, error) {
	resp, err := a.client.CheckExistenceByID(ctx, resourceID, apiVersion, nil)
	if err != nil {
		return false, fmt.Errorf("check resource %s: %w", resourceID, err)
	}
	return resp.Success, nil
}
