package gitsync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the persisted sync configuration. It is an advisory cache of
// what the user last cloned or pushed, never authoritative over the actual
// repository state on disk.
type Config struct {
	RepoURL     string    `json:"repo_url"`
	Branch      string    `json:"branch"`
	Cloned      bool      `json:"cloned"`
	LastUpdated time.Time `json:"last_updated"`
}

// LoadConfig reads the cached sync configuration. A missing or unreadable
// file yields the zero config: the reconciler re-derives everything from
// the repository itself.
func LoadConfig(path string) Config {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// SaveConfig writes the sync configuration as pretty-printed JSON.
func SaveConfig(path string, cfg Config) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding git config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating git config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing git config: %w", err)
	}
	return nil
}
