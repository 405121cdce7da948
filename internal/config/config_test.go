package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"use_embeddings": true,
		"embedding_timeout": "3s",
		"tagger_timeout": "5s",
		"redis_url": "redis://localhost:6379/0",
		"log_format": "json",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.True(t, cfg.UseEmbeddings)
	assert.Equal(t, 3*time.Second, cfg.EmbeddingTimeout)
	assert.Equal(t, 5*time.Second, cfg.TaggerTimeout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Verbose)

	// untouched keys keep defaults
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.EmbeddingCacheTTL)
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"log_level": "warn"}`)
	t.Setenv("SKILLMATCH_LOG_LEVEL", "debug")
	t.Setenv("SKILLMATCH_DISABLE_TFIDF", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DisableTFIDF)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeConfig(t, `{"log_level": "loud"}`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestRead_DefersValidation(t *testing.T) {
	t.Setenv("SKILLMATCH_API_KEY", "")
	path := writeConfig(t, `{"use_embeddings": true}`)

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.APIKey = "from-flag"
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantError: "log_format"},
		{name: "bad tier", mutate: func(c *Config) { c.TaggerModelTier = "huge" }, wantError: "tagger_model_tier"},
		{name: "zero timeout", mutate: func(c *Config) { c.EmbeddingTimeout = 0 }, wantError: "embedding_timeout"},
		{name: "zero tagger timeout", mutate: func(c *Config) { c.TaggerTimeout = 0 }, wantError: "tagger_timeout"},
		{name: "negative ttl", mutate: func(c *Config) { c.EmbeddingCacheTTL = -time.Second }, wantError: "embedding_cache_ttl"},
		{name: "embeddings need key", mutate: func(c *Config) { c.UseEmbeddings = true }, wantError: "api_key"},
		{name: "tagger needs key", mutate: func(c *Config) { c.UseLLMTagger = true }, wantError: "api_key"},
		{name: "key satisfies capabilities", mutate: func(c *Config) { c.UseLLMTagger = true; c.APIKey = "k" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		APIKey:   "from-file",
		LogLevel: "debug",
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, "console", merged.LogFormat)
	assert.Equal(t, 10*time.Second, merged.EmbeddingTimeout)
	assert.Equal(t, 30*time.Second, merged.TaggerTimeout)
	assert.Equal(t, "text-embedding-004", merged.EmbeddingModel)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{RedisURL: "redis://cache:6379"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "redis://cache:6379", merged.RedisURL)
	assert.Empty(t, merged.APIKey)
	assert.Zero(t, merged.EmbeddingTimeout)
}
