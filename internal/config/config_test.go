package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, "127.0.0.1:7860", cfg.ListenAddr)
		assert.Equal(t, "main", cfg.Git.Branch)
		assert.Empty(t, cfg.Git.RemoteURL)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := `data_dir: /srv/compass/data
listen_addr: 127.0.0.1:9999
git:
  remote_url: git@example.com:team/data.git
  branch: trunk
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/compass/data", cfg.DataDir)
		assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
		assert.Equal(t, "git@example.com:team/data.git", cfg.Git.RemoteURL)
		assert.Equal(t, "trunk", cfg.Git.Branch)
	})

	t.Run("environment overrides with missing file", func(t *testing.T) {
		t.Setenv("COMPASS_DATA_DIR", "/tmp/compass-data")
		t.Setenv("COMPASS_GIT_REMOTE_URL", "git@example.com:env/data.git")

		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/compass-data", cfg.DataDir)
		assert.Equal(t, "git@example.com:env/data.git", cfg.Git.RemoteURL)
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: filepath.Join("home", "compass", "data")}

	assert.Equal(t, filepath.Join("home", "compass", "data", "problems.json"), cfg.ProblemsPath())
	assert.Equal(t, filepath.Join("home", "compass", "data", "contests.json"), cfg.ContestsPath())
	assert.Equal(t, filepath.Join("home", "compass", "data", "solutions"), cfg.SolutionsDir())

	// The git settings cache must sit beside the data directory so a sync
	// never commits it.
	assert.Equal(t, filepath.Join("home", "compass", ".git_config.json"), cfg.GitConfigPath())
}
