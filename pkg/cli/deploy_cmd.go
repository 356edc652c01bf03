package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"auxtables/internal/catalog"
	"auxtables/internal/deploy"
)

func newDeployCmd() *cobra.Command {
	var (
		catalogFile string
		tablesFlag  string
		autoApprove bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy catalog tables to the target workspace",
		Long: "Builds an ARM deployment (endpoint, table, rule) per catalog table and\n" +
			"submits it, falling back to a direct table create when the deployment\n" +
			"fails. Tables are processed strictly one at a time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Context.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg)

			// 1. Load and validate the catalog.
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

			// 2. Resolve the selection.
			indices, err := parseTableSelection(tablesFlag)
			if err != nil {
				return err
			}
			selected, err := catalog.Select(tables, indices)
			if err != nil {
				return err
			}

			// 3. Show what will be deployed and confirm.
			printDeployPlan(os.Stdout, selected, cfg.Context)
			if !autoApprove {
				ok, err := confirm(os.Stdout, "\nDeploy these tables? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(os.Stdout, "Deploy cancelled.")
					return nil
				}
			}

			// 4. Build clients and run preflight checks.
			clients, err := deploy.NewClients(cfg.Context.SubscriptionID)
			if err != nil {
				return err
			}
			preflight := deploy.NewPreflight(clients.Groups, clients.Resources)
			if err := preflight.Check(cmd.Context(), cfg.Context); err != nil {
				return err
			}

			// 5. Run the per-table pipeline sequentially.
			submitter := deploy.NewSubmitter(clients.Deployments, cfg.Context.ResourceGroup, cfg.PollTimeout, logger)
			fallback := deploy.NewFallback(clients.Credential, cfg.Context, logger)
			limiter := rate.NewLimiter(rate.Limit(cfg.SubmitRPS), 1)
			pipeline := deploy.NewPipeline(submitter, fallback, cfg.Context, limiter, logger)

			recorder := &deploy.Recorder{}
			for i, table := range selected {
				_, _ = fmt.Fprintf(os.Stdout, "[%d/%d] %s ... ", i+1, len(selected), table.Name)
				outcome := pipeline.Run(cmd.Context(), table)
				recorder.Record(outcome.Table, outcome.Succeeded)
				if outcome.Succeeded {
					_, _ = fmt.Fprintln(os.Stdout, "ok")
				} else {
					_, _ = fmt.Fprintln(os.Stdout, "FAILED")
				}
			}

			// 6. Print the summary.
			printSummary(os.Stdout, recorder.Outcomes())
			if recorder.FailedCount() > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a table catalog YAML file (default: embedded catalog)")
	cmd.Flags().StringVar(&tablesFlag, "tables", "", "Comma-separated 1-based catalog indices to deploy (default: all)")
	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Skip the interactive confirmation prompt")

	return cmd
}

// parseTableSelection parses a --tables value like "1,3" into indices.
// An empty value selects the whole catalog.
func parseTableSelection(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid table index %q", p)
		}
		if n < 1 {
			return nil, fmt.Errorf("table indices are 1-based, got %d", n)
		}
		indices = append(indices, n)
	}
	return indices, nil
}

func loadCatalog(path string) ([]catalog.TableSpec, error) {
	if path == "" {
		tables, err := catalog.Load()
		if err != nil {
			return nil, fmt.Errorf("load embedded catalog: %w", err)
		}
		return tables, nil
	}
	tables, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return tables, nil
}

// confirm prompts on stdout and reads a yes/no answer from stdin. Requires
// a terminal; non-interactive runs must pass --auto-approve.
func confirm(out *os.File, prompt string) (bool, error) {
	if !isStdinTTY() {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal; use --auto-approve")
	}
	_, _ = fmt.Fprint(out, prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
