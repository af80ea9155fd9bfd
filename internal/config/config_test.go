package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"
  max_upload_mb: 10
  allowed_origins: ["https://ads.example.com"]

redis:
  enabled: true
  addr: "redis:6379"
  key_prefix: "test:"

session:
  ttl_hours: 2

storage:
  s3_region: "us-west-2"
  aws_profile: "ads"

analysis:
  thresholds:
    target_acos: 25
    min_spend: 15
    min_clicks: 8
    min_orders: 2
    use_negative_phrase: true
  search_terms:
    max_sales: 5
    exclude_branded: true
    branded_terms: ["acme"]

exports:
  negatives_filename: "negatives-{{ date }}.xlsx"

log:
  level: debug
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Test server config
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes())
	assert.Equal(t, []string{"https://ads.example.com"}, cfg.Server.AllowedOrigins)

	// Test redis and session config
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "test:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL())

	// Test storage config
	assert.Equal(t, "us-west-2", cfg.Storage.S3Region)
	assert.Equal(t, "ads", cfg.Storage.AWSProfile)

	// Test analysis config
	th := cfg.Analysis.Thresholds
	assert.Equal(t, 25.0, th.TargetACOS)
	assert.Equal(t, 15.0, th.MinSpend)
	assert.Equal(t, 8, th.MinClicks)
	assert.Equal(t, 2, th.MinOrders)
	assert.True(t, th.UseNegativePhrase)

	st := cfg.Analysis.SearchTerms
	assert.Equal(t, 25.0, st.TargetACOS, "inherits the rule target")
	assert.Equal(t, 15.0, st.MinSpend)
	assert.Equal(t, 5.0, st.MaxSales)
	assert.Equal(t, []string{"acme"}, st.BrandedTerms)

	// Test export templates
	assert.Equal(t, "negatives-{{ date }}.xlsx", cfg.Exports.NegativesFilename)
	assert.Equal(t, "bid_changes_{{ date }}.xlsx", cfg.Exports.BidChangesFilename)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDefaults(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
log:
  level: warn
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Verify defaults are applied
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout())
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "ppc:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 30.0, cfg.Analysis.Thresholds.TargetACOS)
	assert.Equal(t, 10.0, cfg.Analysis.Thresholds.MinSpend)
	assert.Equal(t, 5, cfg.Analysis.Thresholds.MinClicks)
	assert.Equal(t, 3, cfg.Analysis.Thresholds.MinOrders)
	assert.Equal(t, 0.0, cfg.Analysis.SearchTerms.MaxSales)
	assert.Equal(t, "auto_campaign_{{ campaign }}_{{ date }}.xlsx", cfg.Exports.AutoCampaignFilename)
	assert.Equal(t, "warn", cfg.Log.Level)

	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadFromEnv(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9000
redis:
  addr: "file:6379"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Set environment variables
	t.Setenv("PORT", "7000")
	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("TARGET_ACOS", "40")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	// Environment variables should override file values
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "env:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 40.0, cfg.Analysis.Thresholds.TargetACOS)
	assert.Equal(t, 40.0, cfg.Analysis.SearchTerms.TargetACOS)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadFromEnvWithoutFile(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	cfg, err := LoadFromEnv("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}
