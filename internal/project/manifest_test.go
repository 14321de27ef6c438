package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest drops a package.json with the given content into a fresh
// temp directory and returns the directory.
func writeManifest(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
	return dir
}

// TestLoadManifest verifies plain-JSON parsing of the fields the flow reads.
func TestLoadManifest(t *testing.T) {
	dir := writeManifest(t, `{
		"name": "chatbridge",
		"version": "2.3.1",
		"engines": {"node": ">=18.0.0"},
		"scripts": {"setup": "node scripts/setup.js", "start": "node index.js"}
	}`)

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "chatbridge", m.Name)
	assert.Equal(t, "2.3.1", m.Version)
	assert.True(t, m.HasSetupScript())
}

// TestLoadManifest_ToleratesJSONC verifies that comments and trailing
// commas do not break parsing.
func TestLoadManifest_ToleratesJSONC(t *testing.T) {
	dir := writeManifest(t, `{
		// local fork carries notes in here
		"name": "chatbridge",
		"engines": {
			"node": ">=20", /* bumped from 18 */
		},
		"scripts": {"setup": "node scripts/setup.js",},
	}`)

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "chatbridge", m.Name)

	major, ok := m.NodeMajorRequirement()
	require.True(t, ok)
	assert.Equal(t, 20, major)
}

// TestLoadManifest_Errors covers the missing-file and invalid-JSON paths.
func TestLoadManifest_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := writeManifest(t, `{"name": `)
		_, err := LoadManifest(dir)
		assert.Error(t, err)
	})
}

// TestNodeMajorRequirement covers the constraint shapes seen in the wild.
func TestNodeMajorRequirement(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		expected   int
		declared   bool
	}{
		{"floor", ">=18.0.0", 18, true},
		{"caret", "^20.3.0", 20, true},
		{"x-range", "18.x", 18, true},
		{"range", ">=18 <21", 18, true},
		{"bare major", "22", 22, true},
		{"no digits", ">=x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Engines: map[string]string{"node": tt.constraint}}
			major, ok := m.NodeMajorRequirement()
			assert.Equal(t, tt.declared, ok)
			if tt.declared {
				assert.Equal(t, tt.expected, major)
			}
		})
	}

	t.Run("no engines block", func(t *testing.T) {
		m := &Manifest{}
		_, ok := m.NodeMajorRequirement()
		assert.False(t, ok)
	})
}

// TestHasSetupScript covers presence, absence, and a blank entry.
func TestHasSetupScript(t *testing.T) {
	assert.True(t, (&Manifest{Scripts: map[string]string{"setup": "node setup.js"}}).HasSetupScript())
	assert.False(t, (&Manifest{Scripts: map[string]string{"start": "node index.js"}}).HasSetupScript())
	assert.False(t, (&Manifest{Scripts: map[string]string{"setup": "   "}}).HasSetupScript())
	assert.False(t, (&Manifest{}).HasSetupScript())
}
