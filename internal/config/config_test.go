package config

import (
	"errors"
	"testing"

	"github.com/ralt/vpmgen/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SourcePath != "source.json" {
		t.Errorf("SourcePath = %q", cfg.SourcePath)
	}
	if cfg.OutputPath != "index.json" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.CachePath != "cache.json" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if cfg.Pretty {
		t.Error("Pretty must default to false")
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.GithubToken != "" {
		t.Errorf("GithubToken = %q", cfg.GithubToken)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VPMGEN_SOURCE", "/etc/vpmgen/source.json")
	t.Setenv("VPMGEN_OUTPUT", "/var/www/index.json")
	t.Setenv("VPMGEN_CACHE", "/var/cache/vpmgen/cache.json")
	t.Setenv("VPMGEN_GITHUB_TOKEN", "secret")
	t.Setenv("VPMGEN_PRETTY", "true")
	t.Setenv("VPMGEN_CONCURRENCY", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SourcePath != "/etc/vpmgen/source.json" {
		t.Errorf("SourcePath = %q", cfg.SourcePath)
	}
	if cfg.OutputPath != "/var/www/index.json" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.CachePath != "/var/cache/vpmgen/cache.json" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if cfg.GithubToken != "secret" {
		t.Errorf("GithubToken = %q", cfg.GithubToken)
	}
	if !cfg.Pretty {
		t.Error("Pretty = false, want true")
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
}

func TestValidateRejectsBadConcurrency(t *testing.T) {
	t.Setenv("VPMGEN_CONCURRENCY", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected a config error")
	}
	var indexErr *models.IndexError
	if !errors.As(err, &indexErr) || indexErr.Type != models.ErrConfig {
		t.Errorf("err = %v, want an ErrConfig IndexError", err)
	}
}
