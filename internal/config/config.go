package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yarberjoseph/seo-analyst-agent/internal/cost"
	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	DataForSEO DataForSEOConfig `yaml:"dataforseo" mapstructure:"dataforseo"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	SERP       SERPConfig       `yaml:"serp" mapstructure:"serp"`
	Labs       LabsConfig       `yaml:"labs" mapstructure:"labs"`
	Backlinks  BacklinksConfig  `yaml:"backlinks" mapstructure:"backlinks"`
	Pricing    cost.Rates       `yaml:"pricing" mapstructure:"pricing"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DataForSEOConfig holds ranking-data provider credentials and endpoint.
type DataForSEOConfig struct {
	Login    string `yaml:"login" mapstructure:"login"`
	Password string `yaml:"password" mapstructure:"password"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SERPConfig configures the live SERP lookup.
type SERPConfig struct {
	Depth    int    `yaml:"depth" mapstructure:"depth"`
	Device   string `yaml:"device" mapstructure:"device"`
	Language string `yaml:"language" mapstructure:"language"`
}

// LabsConfig configures the keyword-difficulty lookup locale.
type LabsConfig struct {
	LocationCode int    `yaml:"location_code" mapstructure:"location_code"`
	LanguageCode string `yaml:"language_code" mapstructure:"language_code"`
}

// BacklinksConfig configures the backlink enrichment stage.
type BacklinksConfig struct {
	MaxEnriched     int `yaml:"max_enriched" mapstructure:"max_enriched"`
	MinSpacingMSecs int `yaml:"min_spacing_msecs" mapstructure:"min_spacing_msecs"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Credentials extracts the run credentials from the loaded configuration.
func (c *Config) Credentials() model.Credentials {
	return model.Credentials{
		DataForSEOLogin:    c.DataForSEO.Login,
		DataForSEOPassword: c.DataForSEO.Password,
		AnthropicKey:       c.Anthropic.Key,
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SEOAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credentials get empty defaults so env-only values are
	// visible to Unmarshal.
	v.SetDefault("dataforseo.login", "")
	v.SetDefault("dataforseo.password", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("dataforseo.base_url", "https://api.dataforseo.com/v3")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4000)
	v.SetDefault("serp.depth", 10)
	v.SetDefault("serp.device", "desktop")
	v.SetDefault("serp.language", "English")
	v.SetDefault("labs.location_code", 2840)
	v.SetDefault("labs.language_code", "en")
	v.SetDefault("backlinks.max_enriched", 3)
	v.SetDefault("backlinks.min_spacing_msecs", 500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pricing.anthropic.claude-sonnet-4-5-20250929.input", 3.00)
	v.SetDefault("pricing.anthropic.claude-sonnet-4-5-20250929.output", 15.00)
	v.SetDefault("pricing.dataforseo.per_serp_call", 0.002)
	v.SetDefault("pricing.dataforseo.per_backlinks_call", 0.00003)
	v.SetDefault("pricing.dataforseo.per_keyword_call", 0.0001)

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

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
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
