// Package config resolves the environment-first configuration surface.
// Every setting reads from a VPMGEN_-prefixed variable; the CLI may
// override individual values with flags.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ralt/vpmgen/internal/models"
)

const envPrefix = "VPMGEN"

// Config holds every runtime setting
type Config struct {
	// Paths
	SourcePath string // VPMGEN_SOURCE
	OutputPath string // VPMGEN_OUTPUT
	CachePath  string // VPMGEN_CACHE

	// Remote API
	GithubToken string // VPMGEN_GITHUB_TOKEN

	// Output shape
	Pretty bool // VPMGEN_PRETTY

	// Resource limits
	Concurrency int // VPMGEN_CONCURRENCY

	// Optional index signing
	GPGKeyPath    string // VPMGEN_GPG_KEY
	GPGPassphrase string // VPMGEN_GPG_PASSPHRASE
}

// Load resolves configuration from the environment, applying defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("source", "source.json")
	v.SetDefault("output", "index.json")
	v.SetDefault("cache", "cache.json")
	v.SetDefault("pretty", false)
	v.SetDefault("concurrency", 8)

	cfg := &Config{
		SourcePath:    v.GetString("source"),
		OutputPath:    v.GetString("output"),
		CachePath:     v.GetString("cache"),
		GithubToken:   v.GetString("github_token"),
		Pretty:        v.GetBool("pretty"),
		Concurrency:   v.GetInt("concurrency"),
		GPGKeyPath:    v.GetString("gpg_key"),
		GPGPassphrase: v.GetString("gpg_passphrase"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no sensible fallback
func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return &models.IndexError{
			Type: models.ErrConfig,
			Err:  fmt.Errorf("source path is required"),
		}
	}
	if c.OutputPath == "" {
		return &models.IndexError{
			Type: models.ErrConfig,
			Err:  fmt.Errorf("output path is required"),
		}
	}
	if c.CachePath == "" {
		return &models.IndexError{
			Type: models.ErrConfig,
			Err:  fmt.Errorf("cache path is required"),
		}
	}
	if c.Concurrency < 1 {
		return &models.IndexError{
			Type: models.ErrConfig,
			Err:  fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency),
		}
	}
	return nil
}
