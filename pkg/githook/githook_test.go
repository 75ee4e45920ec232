package githook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallWritesExecutableScript(t *testing.T) {
	root := t.TempDir()

	hookPath, err := Install(root, "/usr/local/bin/prehook")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".git", "hooks", "pre-commit"), hookPath)

	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	data, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#!/usr/bin/env bash")
	assert.Contains(t, string(data), `exec "/usr/local/bin/prehook" run`)
}

func TestInstallOverwritesExistingHook(t *testing.T) {
	root := t.TempDir()
	hooksDir := filepath.Join(root, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte("old"), 0644))

	hookPath, err := Install(root, "prehook")
	require.NoError(t, err)

	data, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old")
}

func TestResolveBinaryExplicitWins(t *testing.T) {
	assert.Equal(t, "/opt/prehook", ResolveBinary("/opt/prehook"))
}

func TestResolveBinaryFallsBackToName(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.Equal(t, "prehook", ResolveBinary(""))
}
