// Package armtemplate models the ARM deployment template submitted for each
// table: a three-resource document (data collection endpoint, workspace
// table, data collection rule) with explicit dependency edges. Documents are
// built as an object graph and serialized once, at submission time; cross-
// resource references use ARM resourceId() expressions resolved by the
// deployment service.
package armtemplate

import "fmt"

// SchemaURL is the template schema for resource-group scoped deployments.
const SchemaURL = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"

// ContentVersion is the fixed content version stamped on every document.
const ContentVersion = "1.0.0.0"

// API versions for the three resource types.
const (
	EndpointAPIVersion = "2022-06-01"
	TableAPIVersion    = "2023-01-01-preview"
	RuleAPIVersion     = "2022-06-01"
)

// ARM resource type identifiers.
const (
	EndpointType  = "Microsoft.Insights/dataCollectionEndpoints"
	TableType     = "Microsoft.OperationalInsights/workspaces/tables"
	RuleType      = "Microsoft.Insights/dataCollectionRules"
	WorkspaceType = "Microsoft.OperationalInsights/workspaces"
)

// Table provisioning constants. Auxiliary-plan tables are the entire point
// of this tool: the default Analytics plan must never be used here.
const (
	TablePlan     = "Auxiliary"
	RetentionDays = 365
)

// Document is an ARM deployment template.
type Document struct {
	Schema         string         `json:"$schema"`
	ContentVersion string         `json:"contentVersion"`
	Parameters     map[string]any `json:"parameters"`
	Variables      map[string]any `json:"variables"`
	Resources      []Resource     `json:"resources"`
}

// Resource is a single resource block within a deployment template.
type Resource struct {
	Type       string   `json:"type"`
	APIVersion string   `json:"apiVersion"`
	Name       string   `json:"name"`
	Location   string   `json:"location,omitempty"`
	DependsOn  []string `json:"dependsOn,omitempty"`
	Properties any      `json:"properties"`
}

// EndpointProperties configures a data collection endpoint.
type EndpointProperties struct {
	NetworkACLs NetworkACLs `json:"networkAcls"`
}

// NetworkACLs holds the endpoint network access configuration.
type NetworkACLs struct {
	PublicNetworkAccess string `json:"publicNetworkAccess"`
}

// TableProperties configures a workspace custom log table.
type TableProperties struct {
	Schema               TableSchema `json:"schema"`
	TotalRetentionInDays int         `json:"totalRetentionInDays"`
	Plan                 string      `json:"plan"`
}

// TableSchema is the column schema of a custom log table.
type TableSchema struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column is a single {name, type} column entry. Types are the Log Analytics
// column types (datetime, string, int, long, real), transmitted verbatim.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// RuleProperties configures a data collection rule: one declared input
// stream, the workspace destination, and the data flow connecting them.
type RuleProperties struct {
	DataCollectionEndpointID string                       `json:"dataCollectionEndpointId"`
	StreamDeclarations       map[string]StreamDeclaration `json:"streamDeclarations"`
	Destinations             Destinations                 `json:"destinations"`
	DataFlows                []DataFlow                   `json:"dataFlows"`
}

// StreamDeclaration declares the schema of a named input stream.
type StreamDeclaration struct {
	Columns []Column `json:"columns"`
}

// Destinations lists the rule's output destinations.
type Destinations struct {
	LogAnalytics []LogAnalyticsDestination `json:"logAnalytics"`
}

// LogAnalyticsDestination is a Log Analytics workspace destination.
type LogAnalyticsDestination struct {
	WorkspaceResourceID string `json:"workspaceResourceId"`
	Name                string `json:"name"`
}

// DataFlow connects declared streams to a destination and output stream.
type DataFlow struct {
	Streams      []string `json:"streams"`
	Destinations []string `json:"destinations"`
	OutputStream string   `json:"outputStream"`
}

// ResourceID renders an ARM resourceId() template expression for a resource
// named by one or more name segments (child resources take the parent name
// first).
func ResourceID(resourceType string, names ...string) string {
	expr := fmt.Sprintf("[resourceId('%s'", resourceType)
	for _, n := range names {
		expr += fmt.Sprintf(", '%s'", n)
	}
	return expr + ")]"
}
