// Package config tests.
package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, RunOnce, cfg.RunMode)
	assert.Equal(t, 1, cfg.DaysBack)
	assert.Equal(t, 20, cfg.CondensedThreshold)
	assert.Equal(t, 15, cfg.MaxPairs)
	assert.Equal(t, 5, cfg.MaxFolders)
	assert.Equal(t, "https://www.synapse.org", cfg.LinkBaseURL)
	assert.False(t, cfg.SlackEnabled())
	assert.False(t, cfg.DaemonMode())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RUN_MODE", "daemon")
	t.Setenv("DAYS_BACK", "7")
	t.Setenv("CONDENSED_FORMAT_THRESHOLD", "30")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/x")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DaemonMode())
	assert.Equal(t, 7, cfg.DaysBack)
	assert.Equal(t, 30, cfg.CondensedThreshold)
	assert.True(t, cfg.SlackEnabled())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			RunMode:            RunOnce,
			DaysBack:           1,
			CondensedThreshold: 20,
			MaxPairs:           15,
			MaxFolders:         5,
			WarehouseDSN:       "file:wh.db",
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.RunMode = "forever"
	assert.ErrorContains(t, cfg.Validate(), "RUN_MODE")

	cfg = base()
	cfg.DaysBack = 0
	assert.ErrorContains(t, cfg.Validate(), "DAYS_BACK")

	cfg = base()
	cfg.MaxFolders = 0
	assert.ErrorContains(t, cfg.Validate(), "thresholds")

	cfg = base()
	cfg.WarehouseDSN = ""
	assert.ErrorContains(t, cfg.Validate(), "WAREHOUSE_DSN")
}
