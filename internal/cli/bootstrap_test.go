package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatbridge/bridgeup/internal/config"
)

// TestLoadConfig_FlagOverrides verifies the precedence chain: flags win
// over the config file, and the file wins over defaults.
func TestLoadConfig_FlagOverrides(t *testing.T) {
	home := t.TempDir()
	path := config.Path(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("branch: develop\ninstall_dir: /opt/bridge\n"), 0o644))

	t.Run("flags win over file", func(t *testing.T) {
		cfg, err := loadConfig(home, &bootstrapFlags{dir: "/srv/bridge", branch: "main", skipCLI: true})
		require.NoError(t, err)
		assert.Equal(t, "/srv/bridge", cfg.InstallDir)
		assert.Equal(t, "main", cfg.Branch)
		assert.True(t, cfg.SkipCLI)
	})

	t.Run("file wins over defaults", func(t *testing.T) {
		cfg, err := loadConfig(home, &bootstrapFlags{})
		require.NoError(t, err)
		assert.Equal(t, "/opt/bridge", cfg.InstallDir)
		assert.Equal(t, "develop", cfg.Branch)
		assert.False(t, cfg.SkipCLI)
		assert.Equal(t, config.DefaultRepoURL, cfg.RepoURL)
	})
}

// TestLoadConfig_MalformedFile verifies that a broken config file surfaces
// as an error instead of silently proceeding with defaults.
func TestLoadConfig_MalformedFile(t *testing.T) {
	home := t.TempDir()
	path := config.Path(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("install_dir: [broken"), 0o644))

	_, err := loadConfig(home, &bootstrapFlags{})
	assert.Error(t, err)
}

// TestNewRootCommand_Subcommands verifies the command tree: the root runs
// the bootstrap itself and carries the maintenance subcommands.
func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "bridgeup", root.Use)
	assert.NotNil(t, root.RunE, "the root command itself performs the bootstrap")

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["doctor"])
	assert.True(t, names["update"])
	assert.True(t, names["uninstall"])
}
