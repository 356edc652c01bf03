package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"auxtables/internal/armtemplate"
	"auxtables/internal/catalog"
)

// SubmitResult is the submitter's verdict on one deployment attempt.
type SubmitResult struct {
	Succeeded bool
	// ProviderMessage carries the provisioning state and any error detail
	// reported by the service. Diagnostic only; control flow keys off
	// Succeeded alone.
	ProviderMessage string
}

// Submitter serializes a deployment document and drives it through the ARM
// deployments service, polling to completion within a bounded timeout.
type Submitter struct {
	deployments   DeploymentsAPI
	resourceGroup string
	pollTimeout   time.Duration
	logger        *slog.Logger
}

// NewSubmitter creates a Submitter for the given resource group.
func NewSubmitter(deployments DeploymentsAPI, resourceGroup string, pollTimeout time.Duration, logger *slog.Logger) *Submitter {
	return &Submitter{
		deployments:   deployments,
		resourceGroup: resourceGroup,
		pollTimeout:   pollTimeout,
		logger:        logger,
	}
}

// Submit serializes the document through a transient temp file, submits it
// under a per-attempt unique deployment name, and interprets the reported
// provisioning state. Only the exact state "Succeeded" counts as success.
// The temp file is removed on every exit path.
//
// A successful submission creates real resources (endpoint, table, rule);
// a failed one may have created a subset. Nothing is rolled back here.
func (s *Submitter) Submit(ctx context.Context, doc *armtemplate.Document, table catalog.TableSpec) SubmitResult {
	template, cleanup, err := stageTemplate(doc, table.Name)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return SubmitResult{ProviderMessage: err.Error()}
	}

	deploymentName := fmt.Sprintf("%s-%s", table.Name, uuid.NewString()[:8])
	s.logger.Info("submitting deployment",
		"table", table.Name,
		"deployment", deploymentName,
		"resource_group", s.resourceGroup)

	ctx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	result, err := s.deployments.CreateOrUpdate(ctx, s.resourceGroup, deploymentName, template)
	if err != nil {
		s.logger.Warn("deployment submission failed", "table", table.Name, "error", err)
		return SubmitResult{ProviderMessage: err.Error()}
	}
	if result.ProvisioningState != "Succeeded" {
		msg := fmt.Sprintf("provisioning state %q", result.ProvisioningState)
		if result.ErrorMessage != "" {
			msg += ": " + result.ErrorMessage
		}
		s.logger.Warn("deployment did not succeed", "table", table.Name, "state", result.ProvisioningState, "detail", result.ErrorMessage)
		return SubmitResult{ProviderMessage: msg}
	}
	return SubmitResult{Succeeded: true}
}

// stageTemplate serializes the document to a temp file scoped to this
// submission and reads it back as the generic template object the
// deployments service accepts. The returned cleanup removes the file and is
// non-nil whenever the file was created, regardless of later errors.
func stageTemplate(doc *armtemplate.Document, name string) (map[string]any, func(), error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("serialize template for %s: %w", name, err)
	}

	f, err := os.CreateTemp("", name+"-*.json")
	if err != nil {
		return nil, nil, fmt.Errorf("stage template for %s: %w", name, err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, cleanup, fmt.Errorf("write template for %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return nil, cleanup, fmt.Errorf("write template for %s: %w", name, err)
	}

	staged, err := os.ReadFile(f.Name())
	if err != nil {
		return nil, cleanup, fmt.Errorf("read staged template for %s: %w", name, err)
	}
	var template map[string]any
	if err := json.Unmarshal(staged, &template); err != nil {
		return nil, cleanup, fmt.Errorf("parse staged template for %s: %w", name, err)
	}
	return template, cleanup, nil
}
