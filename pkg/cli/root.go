// Package cli implements the auxtables command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"auxtables/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "auxtables",
		Short:         "Provision auxiliary-plan log tables in a Log Analytics workspace",
		Long: "auxtables provisions custom log tables on the reduced-cost Auxiliary plan,\n" +
			"each with a data collection endpoint and a data collection rule, from a\n" +
			"declarative table catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().SetNormalizeFunc(normalizeFlagName)

	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// normalizeFlagName accepts underscore-separated flag spellings
// (--log_level) as aliases for the canonical dash-separated names.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// loadConfig resolves runtime configuration, letting the --log-level flag
// override the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Root().PersistentFlags().GetString("log-level"); v != "" {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(v)
		default:
			return nil, fmt.Errorf("unknown log level %q", v)
		}
	}
	return cfg, nil
}

// newLogger builds the process logger writing to stderr so provisioning
// output on stdout stays clean.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}
