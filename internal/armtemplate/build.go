package armtemplate

import (
	"auxtables/internal/catalog"
	"auxtables/internal/config"
)

// Build constructs the deployment document for a single catalog table: a
// data collection endpoint, the auxiliary-plan table itself, and a data
// collection rule routing the table's custom stream into the workspace.
// The rule depends on both the endpoint and the table, so the deployment
// service orders their creation accordingly.
//
// Build is pure construction with no side effects. It assumes a validated
// table spec; an empty column list is a caller bug, not a runtime condition.
func Build(table catalog.TableSpec, ctx config.DeploymentContext) *Document {
	names := Names(table.Name)
	columns := templateColumns(table.Columns)

	endpoint := Resource{
		Type:       EndpointType,
		APIVersion: EndpointAPIVersion,
		Name:       names.Endpoint,
		Location:   ctx.Location,
		Properties: EndpointProperties{
			NetworkACLs: NetworkACLs{PublicNetworkAccess: "Enabled"},
		},
	}

	// Tables are child resources of the workspace; the workspace itself is
	// not declared in the template, so the parent segment is part of the name.
	tableRes := Resource{
		Type:       TableType,
		APIVersion: TableAPIVersion,
		Name:       ctx.Workspace + "/" + names.Table,
		Properties: TableProperties{
			Schema: TableSchema{
				Name:    names.Table,
				Columns: columns,
			},
			TotalRetentionInDays: RetentionDays,
			Plan:                 TablePlan,
		},
	}

	rule := Resource{
		Type:       RuleType,
		APIVersion: RuleAPIVersion,
		Name:       names.Rule,
		Location:   ctx.Location,
		DependsOn: []string{
			ResourceID(EndpointType, names.Endpoint),
			ResourceID(TableType, ctx.Workspace, names.Table),
		},
		Properties: RuleProperties{
			DataCollectionEndpointID: ResourceID(EndpointType, names.Endpoint),
			StreamDeclarations: map[string]StreamDeclaration{
				names.Stream: {Columns: columns},
			},
			Destinations: Destinations{
				LogAnalytics: []LogAnalyticsDestination{{
					WorkspaceResourceID: ResourceID(WorkspaceType, ctx.Workspace),
					Name:                ctx.Workspace,
				}},
			},
			DataFlows: []DataFlow{{
				Streams:      []string{names.Stream},
				Destinations: []string{ctx.Workspace},
				OutputStream: names.Stream,
			}},
		},
	}

	return &Document{
		Schema:         SchemaURL,
		ContentVersion: ContentVersion,
		Parameters:     map[string]any{},
		Variables:      map[string]any{},
		Resources:      []Resource{endpoint, tableRes, rule},
	}
}

func templateColumns(cols []catalog.ColumnSpec) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = Column{Name: c.Name, Type: c.Type}
	}
	return out
}
