package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"auxtables/internal/armtemplate"
	"auxtables/internal/catalog"
	"auxtables/internal/config"
	"auxtables/internal/deploy"
)

func isStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// printDeployPlan lists the tables about to be deployed and the target
// scope.
func printDeployPlan(w io.Writer, tables []catalog.TableSpec, dctx config.DeploymentContext) {
	_, _ = fmt.Fprintf(w, "Target workspace: %s (resource group %s, %s)\n\n",
		dctx.Workspace, dctx.ResourceGroup, dctx.Location)
	_, _ = fmt.Fprintf(w, "Tables to deploy (%d):\n", len(tables))
	for _, t := range tables {
		names := armtemplate.Names(t.Name)
		_, _ = fmt.Fprintf(w, "  %-24s -> %s (%d columns, plan %s, retention %dd)\n",
			t.Name, names.Table, len(t.Columns), armtemplate.TablePlan, armtemplate.RetentionDays)
	}
}

// printSummary renders the per-table outcomes and the operator guidance.
// Auxiliary tables take a while to surface in the portal; that delay is a
// platform property, not a deployment failure.
func printSummary(w io.Writer, outcomes []deploy.Outcome) {
	var succeeded, failed int
	_, _ = fmt.Fprintln(w, "\nDeployment summary:")
	for _, o := range outcomes {
		status := "ok"
		if !o.Succeeded {
			status = "FAILED"
			failed++
		} else {
			succeeded++
		}
		_, _ = fmt.Fprintf(w, "  %-32s %s\n", o.Table, status)
	}
	_, _ = fmt.Fprintf(w, "\n%d succeeded, %d failed.\n", succeeded, failed)
	if succeeded > 0 {
		_, _ = fmt.Fprintln(w, "\nNewly created auxiliary tables can take 15-30 minutes to appear in the")
		_, _ = fmt.Fprintln(w, "Azure portal. Verify under Log Analytics workspace > Tables once the")
		_, _ = fmt.Fprintln(w, "propagation completes.")
	}
}
