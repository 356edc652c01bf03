package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auxtables/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a table catalog without deploying anything",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tables, err := loadCatalog(catalogFile)
			if err != nil {
				return err
			}
			if validationErrs := catalog.Validate(tables); len(validationErrs) > 0 {
				fmt.Fprintf(os.Stderr, "Catalog has %d validation error(s):\n", len(validationErrs))
				for _, ve := range validationErrs {
					fmt.Fprintf(os.Stderr, "  - %s\n", ve.Error())
				}
				os.Exit(1)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Catalog is valid (%d tables).\n", len(tables))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a table catalog YAML file (default: embedded catalog)")
	return cmd
}
