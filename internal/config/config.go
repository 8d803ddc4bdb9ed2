// Package config loads the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Labels configuration
	Labels LabelsConfig `toml:"labels"`

	// Card cache configuration
	Cache CacheConfig `toml:"cache"`

	// Output configuration
	Output OutputConfig `toml:"output"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// LabelsConfig locates the label rule document.
type LabelsConfig struct {
	ConfigPath string `toml:"config_path"` // Path to labels_config.json
	Watch      bool   `toml:"watch"`       // Reload rules when the file changes
}

// CacheConfig contains card-cache settings.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"` // Enable the local card cache
	Path    string `toml:"path"`    // Path to the SQLite cache database
	TTL     string `toml:"ttl"`     // Cache TTL (e.g., "168h"); empty means never stale
}

// OutputConfig contains report output settings.
type OutputConfig struct {
	Dir   string `toml:"dir"`   // Directory for report files
	Chart bool   `toml:"chart"` // Also write an HTML archetype chart
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration rooted in the user's
// config directory.
func DefaultConfig() *Config {
	dir := defaultDir()
	return &Config{
		Labels: LabelsConfig{
			ConfigPath: filepath.Join(dir, "labels_config.json"),
			Watch:      false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "cards.db"),
			TTL:     "168h",
		},
		Output: OutputConfig{
			Dir:   "output",
			Chart: false,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

func defaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deck-labeler"
	}
	return filepath.Join(homeDir, ".deck-labeler")
}

// configPath returns the path to the configuration file, creating the
// directory if needed.
func configPath() (string, error) {
	dir := defaultDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the file
// doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache TTL %q: %w", c.Cache.TTL, err)
		}
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return nil
}

// GetCacheTTL returns the cache TTL as a duration. Zero means never stale.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Cache.TTL)
}
