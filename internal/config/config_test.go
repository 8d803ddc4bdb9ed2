package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	if cfg.Labels.ConfigPath == "" {
		t.Error("default labels config path is empty")
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.Output.Dir != "output" {
		t.Errorf("default output dir = %q, want %q", cfg.Output.Dir, "output")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty TTL allowed", func(c *Config) { c.Cache.TTL = "" }, false},
		{"bad TTL", func(c *Config) { c.Cache.TTL = "one week" }, true},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCacheTTL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		t.Fatalf("GetCacheTTL() error = %v", err)
	}
	if ttl != 168*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want %v", ttl, 168*time.Hour)
	}

	cfg.Cache.TTL = ""
	ttl, err = cfg.GetCacheTTL()
	if err != nil {
		t.Fatalf("GetCacheTTL() with empty TTL error = %v", err)
	}
	if ttl != 0 {
		t.Errorf("GetCacheTTL() with empty TTL = %v, want 0", ttl)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Output.Dir = "reports"
	cfg.Cache.TTL = "24h"
	cfg.App.DebugMode = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Output.Dir != "reports" {
		t.Errorf("loaded output dir = %q, want %q", loaded.Output.Dir, "reports")
	}
	if loaded.Cache.TTL != "24h" {
		t.Errorf("loaded cache TTL = %q, want %q", loaded.Cache.TTL, "24h")
	}
	if !loaded.App.DebugMode {
		t.Error("loaded debug mode = false, want true")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Dir != "output" {
		t.Errorf("missing config file should yield defaults, got output dir %q", cfg.Output.Dir)
	}
}
