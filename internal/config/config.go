// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SKILLMATCH_LOG_LEVEL.
const EnvPrefix = "SKILLMATCH"

// Config represents the CLI configuration. Values come from an optional JSON
// file, then SKILLMATCH_* environment variables, then defaults.
type Config struct {
	// LLM
	APIKey           string        `mapstructure:"api_key"`           // Gemini API key
	EmbeddingModel   string        `mapstructure:"embedding_model"`   // Gemini embedding model name
	TaggerModelTier  string        `mapstructure:"tagger_model_tier"` // lite, standard or advanced
	EmbeddingTimeout time.Duration `mapstructure:"embedding_timeout"` // Budget for one embedding request
	TaggerTimeout    time.Duration `mapstructure:"tagger_timeout"`    // Budget for one tagging request

	// Optional capabilities
	UseEmbeddings bool `mapstructure:"use_embeddings"` // Score semantic similarity with Gemini embeddings
	UseLLMTagger  bool `mapstructure:"use_llm_tagger"` // Tag entities and noun phrases with Gemini
	DisableTFIDF  bool `mapstructure:"disable_tfidf"`  // Force the Jaccard keyword fallback

	// Embedding cache
	RedisURL          string        `mapstructure:"redis_url"`           // Empty disables the cache
	EmbeddingCacheTTL time.Duration `mapstructure:"embedding_cache_ttl"` // Lifetime of cached vectors

	// Output
	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn or error
	LogFormat string `mapstructure:"log_format"` // json or console
	Verbose   bool   `mapstructure:"verbose"`    // Print human-readable summaries
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		EmbeddingModel:    "text-embedding-004",
		TaggerModelTier:   "lite",
		EmbeddingTimeout:  10 * time.Second,
		TaggerTimeout:     30 * time.Second,
		EmbeddingCacheTTL: 24 * time.Hour,
		LogLevel:          "info",
		LogFormat:         "console",
	}
}

// LoadConfig loads configuration from path (optional), applying environment
// overrides and defaults, and validates it. An empty path loads environment
// and defaults only.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads configuration like LoadConfig without validating it, so
// callers can apply flag overrides first.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("embedding_model", d.EmbeddingModel)
	v.SetDefault("tagger_model_tier", d.TaggerModelTier)
	v.SetDefault("embedding_timeout", d.EmbeddingTimeout)
	v.SetDefault("tagger_timeout", d.TaggerTimeout)
	v.SetDefault("use_embeddings", d.UseEmbeddings)
	v.SetDefault("use_llm_tagger", d.UseLLMTagger)
	v.SetDefault("disable_tfidf", d.DisableTFIDF)
	v.SetDefault("redis_url", d.RedisURL)
	v.SetDefault("embedding_cache_ttl", d.EmbeddingCacheTTL)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("verbose", d.Verbose)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	switch c.TaggerModelTier {
	case "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: 'tagger_model_tier' must be lite, standard or advanced, got %q", c.TaggerModelTier)
	}
	if c.EmbeddingTimeout <= 0 {
		return fmt.Errorf("config error: 'embedding_timeout' must be positive")
	}
	if c.TaggerTimeout <= 0 {
		return fmt.Errorf("config error: 'tagger_timeout' must be positive")
	}
	if c.EmbeddingCacheTTL < 0 {
		return fmt.Errorf("config error: 'embedding_cache_ttl' must be non-negative")
	}
	if (c.UseEmbeddings || c.UseLLMTagger) && c.APIKey == "" {
		return fmt.Errorf("config error: 'api_key' is required when use_embeddings or use_llm_tagger is set")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.TaggerModelTier == "" {
		result.TaggerModelTier = defaults.TaggerModelTier
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.EmbeddingTimeout == 0 {
		result.EmbeddingTimeout = defaults.EmbeddingTimeout
	}
	if result.TaggerTimeout == 0 {
		result.TaggerTimeout = defaults.TaggerTimeout
	}
	if result.EmbeddingCacheTTL == 0 {
		result.EmbeddingCacheTTL = defaults.EmbeddingCacheTTL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
