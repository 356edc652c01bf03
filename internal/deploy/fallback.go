package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"auxtables/internal/armtemplate"
	"auxtables/internal/catalog"
	"auxtables/internal/config"
)

// DefaultManagementEndpoint is the public Azure Resource Manager endpoint.
const DefaultManagementEndpoint = "https://management.azure.com"

const managementScope = "https://management.azure.com/.default"

// Fallback creates a table with a direct create-or-replace PUT against the
// workspace tables sub-resource, bypassing the template deployment service.
// This path provisions no data collection endpoint and no data collection
// rule: a table created here has no custom ingestion pipeline until a later
// run succeeds on the primary path.
type Fallback struct {
	cred     azcore.TokenCredential
	client   *http.Client
	endpoint string
	ctx      config.DeploymentContext
	logger   *slog.Logger
}

// NewFallback creates a Fallback for the given deployment context.
func NewFallback(cred azcore.TokenCredential, dctx config.DeploymentContext, logger *slog.Logger) *Fallback {
	return &Fallback{
		cred:     cred,
		client:   http.DefaultClient,
		endpoint: DefaultManagementEndpoint,
		ctx:      dctx,
		logger:   logger,
	}
}

// NewFallbackForEndpoint creates a Fallback against a non-default management
// endpoint with a caller-supplied HTTP client. Used by tests and sovereign
// clouds.
func NewFallbackForEndpoint(cred azcore.TokenCredential, dctx config.DeploymentContext, endpoint string, client *http.Client, logger *slog.Logger) *Fallback {
	return &Fallback{
		cred:     cred,
		client:   client,
		endpoint: endpoint,
		ctx:      dctx,
		logger:   logger,
	}
}

// tableRequest is the direct-write body: the same schema, retention, and
// plan the template path uses.
type tableRequest struct {
	Properties armtemplate.TableProperties `json:"properties"`
}

// CreateTableDirect PUTs the table definition directly to the management
// API. The call is idempotent (create-or-replace). Every transport or
// status error is caught and logged; the verdict is the boolean alone.
func (f *Fallback) CreateTableDirect(ctx context.Context, table catalog.TableSpec) bool {
	names := armtemplate.Names(table.Name)

	token, err := f.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{managementScope}})
	if err != nil {
		f.logger.Warn("fallback token acquisition failed", "table", names.Table, "error", err)
		return false
	}

	columns := make([]armtemplate.Column, len(table.Columns))
	for i, c := range table.Columns {
		columns[i] = armtemplate.Column{Name: c.Name, Type: c.Type}
	}
	body, err := json.Marshal(tableRequest{
		Properties: armtemplate.TableProperties{
			Schema: armtemplate.TableSchema{
				Name:    names.Table,
				Columns: columns,
			},
			TotalRetentionInDays: armtemplate.RetentionDays,
			Plan:                 armtemplate.TablePlan,
		},
	})
	if err != nil {
		f.logger.Warn("fallback body serialization failed", "table", names.Table, "error", err)
		return false
	}

	url := fmt.Sprintf("%s%s/tables/%s?api-version=%s",
		f.endpoint, f.ctx.WorkspaceResourceID(), names.Table, armtemplate.TableAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		f.logger.Warn("fallback request build failed", "table", names.Table, "error", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fallback request failed", "table", names.Table, "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		f.logger.Warn("fallback create rejected",
			"table", names.Table,
			"status", resp.StatusCode,
			"detail", string(detail))
		return false
	}

	f.logger.Info("fallback create succeeded", "table", names.Table)
	return true
}
