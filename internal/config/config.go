// Package config loads monitor configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Run modes. "once" executes a single monitoring pass and exits; "daemon"
// keeps running on a cron schedule with health and metrics endpoints.
const (
	RunOnce   = "once"
	RunDaemon = "daemon"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	RunMode     string `envconfig:"RUN_MODE" default:"once"`

	// Daemon mode
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`     // health + metrics
	CronSpec string `envconfig:"CRON_SPEC" default:"0 8 * * *"` // daily morning report

	// Warehouse
	WarehouseDriver string `envconfig:"WAREHOUSE_DRIVER" default:"sqlite"`
	WarehouseDSN    string `envconfig:"WAREHOUSE_DSN"`
	QueryFile       string `envconfig:"QUERY_FILE" default:"queries/activity.sql"`
	DaysBack        int    `envconfig:"DAYS_BACK" default:"1"`

	// Slack delivery (optional — payload is logged when unset)
	SlackWebhookURL string `envconfig:"SLACK_WEBHOOK_URL"`

	// Display thresholds. Notification consumers depend on the exact
	// defaults; override with care.
	CondensedThreshold int `envconfig:"CONDENSED_FORMAT_THRESHOLD" default:"20"`
	MaxPairs           int `envconfig:"MAX_USER_PROJECT_COMBINATIONS" default:"15"`
	MaxFolders         int `envconfig:"MAX_FOLDER_DISPLAY" default:"5"`

	// Link construction
	LinkBaseURL string `envconfig:"LINK_BASE_URL" default:"https://www.synapse.org"`
}

// SlackEnabled returns true if a webhook URL is configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackWebhookURL != ""
}

// DaemonMode returns true when the monitor should keep running on a schedule.
func (c *Config) DaemonMode() bool {
	return strings.EqualFold(c.RunMode, RunDaemon)
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.RunMode) {
	case RunOnce, RunDaemon:
	default:
		return fmt.Errorf("invalid RUN_MODE %q, expected %q or %q", c.RunMode, RunOnce, RunDaemon)
	}
	if c.DaysBack < 1 {
		return fmt.Errorf("DAYS_BACK must be at least 1, got %d", c.DaysBack)
	}
	if c.CondensedThreshold < 1 || c.MaxPairs < 1 || c.MaxFolders < 1 {
		return fmt.Errorf("display thresholds must be positive (got %d/%d/%d)",
			c.CondensedThreshold, c.MaxPairs, c.MaxFolders)
	}
	if c.WarehouseDSN == "" {
		return fmt.Errorf("WAREHOUSE_DSN is required")
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
