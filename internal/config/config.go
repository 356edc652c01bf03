// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DeploymentContext identifies the Azure scope every table operation runs
// against. It is resolved once at startup and immutable for the run. The
// resource group and workspace must already exist; preflight checks verify
// this before any table is attempted.
type DeploymentContext struct {
	SubscriptionID string // Azure subscription GUID
	ResourceGroup  string // pre-existing resource group name
	Workspace      string // pre-existing Log Analytics workspace name
	Location       string // Azure location, e.g. "westeurope"
}

// WorkspaceResourceID returns the fully qualified ARM resource ID of the
// target workspace.
func (c DeploymentContext) WorkspaceResourceID() string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.OperationalInsights/workspaces/%s",
		c.SubscriptionID, c.ResourceGroup, c.Workspace)
}

// Validate checks that every field of the deployment context is set.
func (c DeploymentContext) Validate() error {
	if c.SubscriptionID == "" {
		return fmt.Errorf("AZURE_SUBSCRIPTION_ID is required")
	}
	if c.ResourceGroup == "" {
		return fmt.Errorf("AZURE_RESOURCE_GROUP is required")
	}
	if c.Workspace == "" {
		return fmt.Errorf("AZURE_WORKSPACE_NAME is required")
	}
	if c.Location == "" {
		return fmt.Errorf("AZURE_LOCATION is required")
	}
	return nil
}

// Config holds the runtime configuration for the provisioning CLI.
type Config struct {
	Context DeploymentContext

	// PollTimeout bounds how long a single template deployment is polled
	// before it is treated as failed (default 10m).
	PollTimeout time.Duration

	// SubmitRPS paces management-plane submissions across the table loop
	// (default 1.0). ARM throttles aggressive clients per principal.
	SubmitRPS float64

	LogLevel string // log level: debug, info, warn, error (default "info")
}

// FromEnv loads configuration from environment variables, applying defaults
// for everything optional. Context fields are not validated here; callers
// decide whether a complete deployment context is required for the command
// being run.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Context: DeploymentContext{
			SubscriptionID: os.Getenv("AZURE_SUBSCRIPTION_ID"),
			ResourceGroup:  os.Getenv("AZURE_RESOURCE_GROUP"),
			Workspace:      os.Getenv("AZURE_WORKSPACE_NAME"),
			Location:       os.Getenv("AZURE_LOCATION"),
		},
		PollTimeout: 10 * time.Minute,
		SubmitRPS:   1.0,
		LogLevel:    "info",
	}

	if v := os.Getenv("AUXTABLES_POLL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("AUXTABLES_POLL_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("AUXTABLES_POLL_TIMEOUT must be positive, got %s", d)
		}
		cfg.PollTimeout = d
	}
	if v := os.Getenv("AUXTABLES_SUBMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("AUXTABLES_SUBMIT_RPS: %w", err)
		}
		if rps <= 0 {
			return nil, fmt.Errorf("AUXTABLES_SUBMIT_RPS must be positive, got %v", rps)
		}
		cfg.SubmitRPS = rps
	}
	if v := os.Getenv("AUXTABLES_LOG_LEVEL"); v != "" {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(v)
		default:
			return nil, fmt.Errorf("AUXTABLES_LOG_LEVEL: unknown level %q", v)
		}
	}
	return cfg, nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
