package armtemplate

// ResourceNames holds the per-table Azure resource names. They are a pure
// function of the catalog short name and recomputed wherever needed.
type ResourceNames struct {
	Table    string // custom log table, e.g. VersaAnalytics_CL
	Endpoint string // data collection endpoint, e.g. VersaAnalytics-DCE
	Rule     string // data collection rule, e.g. VersaAnalytics-DCR
	Stream   string // DCR custom stream, e.g. Custom-VersaAnalytics_CL
}

// Names derives the Azure resource names for a catalog table short name.
func Names(name string) ResourceNames {
	table := name + "_CL"
	return ResourceNames{
		Table:    table,
		Endpoint: name + "-DCE",
		Rule:     name + "-DCR",
		Stream:   "Custom-" + table,
	}
}
