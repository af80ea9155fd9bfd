package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/ppc-optimizer/internal/analytics"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Exports  ExportsConfig  `yaml:"exports"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                int      `yaml:"port"`
	Host                string   `yaml:"host"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
	MaxUploadMB         int      `yaml:"max_upload_mb"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
}

// ReadTimeout returns the read timeout as a duration
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// MaxUploadBytes is the request body limit for uploads
func (c ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// RedisConfig selects the Redis-backed session store. Sessions are kept in
// process memory when disabled.
type RedisConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// SessionConfig holds session lifetime settings
type SessionConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

// TTL returns the session lifetime as a duration
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// StorageConfig holds AWS settings for s3:// report locations
type StorageConfig struct {
	S3Region   string `yaml:"s3_region"`
	AWSProfile string `yaml:"aws_profile"`
}

// AnalysisConfig holds the default rule thresholds and search term analysis
// settings. Requests may override both.
type AnalysisConfig struct {
	Thresholds  domain.Thresholds `yaml:"thresholds"`
	SearchTerms analytics.Config  `yaml:"search_terms"`
}

// ExportsConfig holds liquid templates for download file names. Templates
// see {{ date }} (YYYYMMDD) and, for auto campaigns, {{ campaign }}.
type ExportsConfig struct {
	NegativesFilename    string `yaml:"negatives_filename"`
	AutoCampaignFilename string `yaml:"auto_campaign_filename"`
	BidChangesFilename   string `yaml:"bid_changes_filename"`
	BudgetChangeFilename string `yaml:"budget_changes_filename"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 30
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 50
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "ppc:"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24
	}
	if cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-east-1"
	}

	def := domain.DefaultThresholds()
	th := &cfg.Analysis.Thresholds
	if th.TargetACOS == 0 {
		th.TargetACOS = def.TargetACOS
	}
	if th.MinSpend == 0 {
		th.MinSpend = def.MinSpend
	}
	if th.MinClicks == 0 {
		th.MinClicks = def.MinClicks
	}
	if th.MinOrders == 0 {
		th.MinOrders = def.MinOrders
	}
	st := &cfg.Analysis.SearchTerms
	if st.TargetACOS == 0 {
		st.TargetACOS = th.TargetACOS
	}
	if st.MinSpend == 0 {
		st.MinSpend = th.MinSpend
	}

	if cfg.Exports.NegativesFilename == "" {
		cfg.Exports.NegativesFilename = "negative_keywords_{{ date }}.xlsx"
	}
	if cfg.Exports.AutoCampaignFilename == "" {
		cfg.Exports.AutoCampaignFilename = "auto_campaign_{{ campaign }}_{{ date }}.xlsx"
	}
	if cfg.Exports.BidChangesFilename == "" {
		cfg.Exports.BidChangesFilename = "bid_changes_{{ date }}.xlsx"
	}
	if cfg.Exports.BudgetChangeFilename == "" {
		cfg.Exports.BudgetChangeFilename = "budget_changes_{{ date }}.xlsx"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars.
// An empty path starts from the defaults instead of a file.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Storage.S3Region = v
	}
	if v := os.Getenv("AWS_PROFILE"); v != "" {
		cfg.Storage.AWSProfile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TARGET_ACOS"); v != "" {
		if acos, err := strconv.ParseFloat(v, 64); err == nil && acos > 0 {
			cfg.Analysis.Thresholds.TargetACOS = acos
			cfg.Analysis.SearchTerms.TargetACOS = acos
		}
	}

	return cfg, nil
}
