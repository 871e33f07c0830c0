package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Learning policies for the assignment engine's auxiliary steps
// (pattern learning and propagation listing).
const (
	PolicyLenient = "lenient" // log failures, return empty candidates
	PolicyStrict  = "strict"  // surface failures to the caller
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Learning LearningConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// LearningConfig controls how assignment failures after the primary
// category update are treated.
type LearningConfig struct {
	Policy string
}

// IngestConfig holds upload pipeline settings.
type IngestConfig struct {
	Preassign bool
}

// Load reads configuration from file and env. Env var overrides use prefix PFENNIG_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pfennig", "pfennig.db"))
	v.SetDefault("database.migrations_path", "internal/database/migrations")
	v.SetDefault("learning.policy", PolicyLenient)
	v.SetDefault("ingest.preassign", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PFENNIG_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pfennig"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PFENNIG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Learning.Policy != PolicyLenient && c.Learning.Policy != PolicyStrict {
		return Config{}, fmt.Errorf("learning.policy must be %q or %q, got %q",
			PolicyLenient, PolicyStrict, c.Learning.Policy)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("PFENNIG_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "pfennig", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("learning.policy", cfg.Learning.Policy)
	v.Set("ingest.preassign", cfg.Ingest.Preassign)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
