package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Reddit    RedditConfig    `mapstructure:"reddit"`
	Research  ResearchConfig  `mapstructure:"research"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Retention RetentionConfig `mapstructure:"retention"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    string   `mapstructure:"read_timeout"`
	WriteTimeout   string   `mapstructure:"write_timeout"`
	CORSEnabled    bool     `mapstructure:"cors_enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ResultCacheTTL string   `mapstructure:"result_cache_ttl"` // how long /api/chat can see a run
}

// AnthropicConfig holds Claude API settings
type AnthropicConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// Enabled reports whether the Claude-backed paths can run at all
func (c AnthropicConfig) Enabled() bool {
	return c.APIKey != ""
}

// RedditConfig holds Reddit API settings
type RedditConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	UserAgent    string `mapstructure:"user_agent"`
}

// Enabled reports whether authenticated Reddit research can run
func (c RedditConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// ResearchConfig holds social research settings
type ResearchConfig struct {
	MaxPostsPerCommunity int    `mapstructure:"max_posts_per_community"`
	MaxCommentsPerPost   int    `mapstructure:"max_comments_per_post"`
	CommunityDelay       string `mapstructure:"community_delay"` // courtesy delay between scrapes
	PublicFeedsEnabled   bool   `mapstructure:"public_feeds_enabled"`
}

// DatabaseConfig holds run-history database settings
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite
	DSN    string `mapstructure:"dsn"`
}

// TrackerConfig holds Google Sheets run tracker settings
type TrackerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	SpreadsheetID      string `mapstructure:"spreadsheet_id"`
	SheetName          string `mapstructure:"sheet_name"`
	CredentialsFile    string `mapstructure:"credentials_file"`
	ServiceAccountJSON string `mapstructure:"service_account_json"`
}

// RetentionConfig holds run-history cleanup settings
type RetentionConfig struct {
	CleanupCron string `mapstructure:"cleanup_cron"`
	MaxRunAge   string `mapstructure:"max_run_age"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout or file path
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if present (ignore errors if not found)
	_ = godotenv.Load()
	_ = godotenv.Load(".env.local")

	v := viper.New()

	setDefaults(v)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".seo-engine"))
		}
	}

	// Environment variables
	v.SetEnvPrefix("SEOGEN")
	v.AutomaticEnv()

	// Explicit bindings for nested keys (Viper doesn't auto-bind underscored nested keys)
	v.BindEnv("anthropic.api_key", "SEOGEN_ANTHROPIC_API_KEY")
	v.BindEnv("reddit.client_id", "SEOGEN_REDDIT_CLIENT_ID")
	v.BindEnv("reddit.client_secret", "SEOGEN_REDDIT_CLIENT_SECRET")
	v.BindEnv("reddit.user_agent", "SEOGEN_REDDIT_USER_AGENT")
	v.BindEnv("server.host", "SEOGEN_SERVER_HOST")
	v.BindEnv("server.port", "SEOGEN_SERVER_PORT")
	v.BindEnv("database.driver", "SEOGEN_DATABASE_DRIVER")
	v.BindEnv("database.dsn", "SEOGEN_DATABASE_DSN")
	v.BindEnv("tracker.enabled", "SEOGEN_TRACKER_ENABLED")
	v.BindEnv("tracker.spreadsheet_id", "SEOGEN_TRACKER_SPREADSHEET_ID")
	v.BindEnv("tracker.credentials_file", "SEOGEN_TRACKER_CREDENTIALS_FILE")
	v.BindEnv("tracker.service_account_json", "SEOGEN_TRACKER_SERVICE_ACCOUNT_JSON")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.cors_enabled", false)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.result_cache_ttl", "1h")

	// Anthropic defaults
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.temperature", 0.7)

	// Reddit defaults
	v.SetDefault("reddit.user_agent", "seo-content-engine/1.0")

	// Research defaults
	v.SetDefault("research.max_posts_per_community", 5)
	v.SetDefault("research.max_comments_per_post", 10)
	v.SetDefault("research.community_delay", "1s")
	v.SetDefault("research.public_feeds_enabled", true)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/runs.db")

	// Tracker defaults
	v.SetDefault("tracker.enabled", false)
	v.SetDefault("tracker.sheet_name", "Runs")

	// Retention defaults
	v.SetDefault("retention.cleanup_cron", "0 3 * * *") // 3am daily
	v.SetDefault("retention.max_run_age", "720h")       // 30 days

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
}

// Validate validates the configuration. Missing upstream credentials are not
// errors: they route the corresponding component to its fallback path.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database.driver: %s", c.Database.Driver)
	}
	if c.Tracker.Enabled && c.Tracker.SpreadsheetID == "" {
		return fmt.Errorf("tracker.spreadsheet_id is required when tracker is enabled")
	}
	return nil
}
