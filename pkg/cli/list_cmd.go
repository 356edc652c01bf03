package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auxtables/internal/armtemplate"
)

func newListCmd() *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog tables and their resolved resource names",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tables, err := loadCatalog(catalogFile)
			if err != nil {
				return err
			}
			for i, t := range tables {
				names := armtemplate.Names(t.Name)
				_, _ = fmt.Fprintf(os.Stdout, "%d. %s (%s)\n", i+1, t.Name, t.DisplayName)
				_, _ = fmt.Fprintf(os.Stdout, "   table %s, endpoint %s, rule %s, %d columns\n",
					names.Table, names.Endpoint, names.Rule, len(t.Columns))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a table catalog YAML file (default: embedded catalog)")
	return cmd
}
