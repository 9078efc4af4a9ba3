package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Browser   BrowserConfig   `yaml:"browser" mapstructure:"browser"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Review    ReviewConfig    `yaml:"review" mapstructure:"review"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Cost      CostConfig      `yaml:"cost" mapstructure:"cost"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings for the generative
// collaborators (destination planning and review summarization).
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Model       string `yaml:"model" mapstructure:"model"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// BrowserConfig configures the automated browser session.
type BrowserConfig struct {
	Headless        bool   `yaml:"headless" mapstructure:"headless"`
	BinPath         string `yaml:"bin_path" mapstructure:"bin_path"`
	WindowWidth     int    `yaml:"window_width" mapstructure:"window_width"`
	WindowHeight    int    `yaml:"window_height" mapstructure:"window_height"`
	UserAgent       string `yaml:"user_agent" mapstructure:"user_agent"`
	PageTimeoutSecs int    `yaml:"page_timeout_secs" mapstructure:"page_timeout_secs"`
}

// SearchConfig configures place search on Naver.
type SearchConfig struct {
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	SettleDelaySecs int    `yaml:"settle_delay_secs" mapstructure:"settle_delay_secs"`
}

// ReviewConfig configures review extraction.
type ReviewConfig struct {
	MaxReviews    int    `yaml:"max_reviews" mapstructure:"max_reviews"`
	FrameID       string `yaml:"frame_id" mapstructure:"frame_id"`
	FrameWaitSecs int    `yaml:"frame_wait_secs" mapstructure:"frame_wait_secs"`
}

// PipelineConfig configures the per-destination loop.
type PipelineConfig struct {
	MaxDestinations      int `yaml:"max_destinations" mapstructure:"max_destinations"`
	DestinationDelaySecs int `yaml:"destination_delay_secs" mapstructure:"destination_delay_secs"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// StoreConfig configures run-history persistence. An empty path disables
// the store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CostConfig configures token-cost estimation. An empty rates path keeps
// the built-in rate table.
type CostConfig struct {
	RatesPath string `yaml:"rates_path" mapstructure:"rates_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultUserAgent is sent with every page load so the session looks like
// a regular desktop browser to the target site.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.max_attempts", 2)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.window_width", 1920)
	v.SetDefault("browser.window_height", 1080)
	v.SetDefault("browser.user_agent", DefaultUserAgent)
	v.SetDefault("browser.page_timeout_secs", 10)
	v.SetDefault("search.base_url", "https://search.naver.com/search.naver")
	v.SetDefault("search.settle_delay_secs", 2)
	v.SetDefault("review.max_reviews", 10)
	v.SetDefault("review.frame_id", "entryIframe")
	v.SetDefault("review.frame_wait_secs", 10)
	v.SetDefault("pipeline.max_destinations", 5)
	v.SetDefault("pipeline.destination_delay_secs", 3)
	v.SetDefault("store.path", "travel.db")
	v.SetDefault("cost.rates_path", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the fields the given command depends on are set.
// The interactive run command prompts for missing credentials, so it skips
// the key check.
func (c *Config) Validate(command string) error {
	var missing []string

	switch command {
	case "recommend", "serve":
		if c.Anthropic.Key == "" {
			missing = append(missing, "anthropic.key is required")
		}
	}

	if command == "serve" && (c.Server.Port < 1 || c.Server.Port > 65535) {
		missing = append(missing, "server.port must be between 1 and 65535")
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
