// Package config loads the application configuration from a YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// GitConfig holds the default sync target for the data directory.
type GitConfig struct {
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url"`
	Branch    string `mapstructure:"branch" yaml:"branch"`
}

// Config is the top-level application configuration.
type Config struct {
	// DataDir is the directory holding problems.json, contests.json and
	// solutions/. It is versioned as its own git repository.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// ListenAddr is the bookmarklet import server address.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`

	Git GitConfig `mapstructure:"git" yaml:"git"`
}

// DefaultConfigPath returns ~/.config/acmcompass/config.yaml, falling back
// to the working directory when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "acmcompass", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		DataDir:    "data",
		ListenAddr: "127.0.0.1:7860",
		Git:        GitConfig{Branch: "main"},
	}
}

// Load reads configuration from path using Viper. A missing file yields
// the defaults; COMPASS_* environment variables override file values
// (e.g. COMPASS_DATA_DIR, COMPASS_GIT_REMOTE_URL).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("data_dir", "data")
	v.SetDefault("listen_addr", "127.0.0.1:7860")
	v.SetDefault("git.branch", "main")

	v.SetEnvPrefix("COMPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(v, defaultConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(v, defaultConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv lets env overrides through even when no config file exists,
// where viper.Unmarshal is never reached.
func applyEnv(v *viper.Viper, cfg *Config) *Config {
	if s := v.GetString("data_dir"); s != "" {
		cfg.DataDir = s
	}
	if s := v.GetString("listen_addr"); s != "" {
		cfg.ListenAddr = s
	}
	if s := v.GetString("git.remote_url"); s != "" {
		cfg.Git.RemoteURL = s
	}
	if s := v.GetString("git.branch"); s != "" {
		cfg.Git.Branch = s
	}
	return cfg
}

// ProblemsPath returns the problems collection file path.
func (c *Config) ProblemsPath() string { return filepath.Join(c.DataDir, "problems.json") }

// ContestsPath returns the contests collection file path.
func (c *Config) ContestsPath() string { return filepath.Join(c.DataDir, "contests.json") }

// SolutionsDir returns the solution blob directory.
func (c *Config) SolutionsDir() string { return filepath.Join(c.DataDir, "solutions") }

// GitConfigPath returns the cached git sync settings path. It sits next to
// the data directory, not inside it, so syncing never commits it.
func (c *Config) GitConfigPath() string {
	return filepath.Join(filepath.Dir(c.DataDir), ".git_config.json")
}
