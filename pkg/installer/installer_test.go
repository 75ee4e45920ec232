package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/lockfile"
	"github.com/arthur-debert/prehook/pkg/manifest"
)

// fakeRunner records invocations and simulates the installer by
// creating the files listed in creates.
type fakeRunner struct {
	calls   []call
	creates []string
	fail    bool
}

type call struct {
	name string
	args []string
	env  map[string]string
}

func (f *fakeRunner) Run(name string, args []string, env map[string]string) error {
	f.calls = append(f.calls, call{name: name, args: args, env: env})
	if f.fail {
		return errors.Newf(errors.ErrInstallFailed, "%s exited with failure", name)
	}
	for _, path := range f.creates {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
			return err
		}
	}
	return nil
}

func hookWithInstall(id string, spec manifest.InstallSpec) manifest.Hook {
	return manifest.Hook{ID: id, Command: manifest.InstallPlaceholder, Install: &spec}
}

func TestEnsureInstalledMissingSpec(t *testing.T) {
	m := New(t.TempDir())
	_, err := m.EnsureInstalled(manifest.Hook{ID: "x", Command: manifest.InstallPlaceholder})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissingSpec))
}

func TestRustInstallArguments(t *testing.T) {
	workdir := t.TempDir()
	target := filepath.Join(workdir, ToolsDir, "cargo-deny", "bin", "cargo-deny")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	path, err := m.EnsureInstalled(hookWithInstall("cargo-deny", manifest.InstallSpec{
		Language: manifest.LanguageRust,
		Package:  "cargo-deny",
		Version:  "0.14.0",
		Binary:   "cargo-deny",
	}))
	require.NoError(t, err)
	assert.Equal(t, target, path)

	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.Equal(t, "cargo", c.name)
	assert.Equal(t, []string{
		"install", "--force", "--root", filepath.Join(workdir, ToolsDir, "cargo-deny"),
		"--bin", "cargo-deny", "--version", "0.14.0", "cargo-deny",
	}, c.args)
}

func TestRustGitRepoSkipsVersionPin(t *testing.T) {
	workdir := t.TempDir()
	target := filepath.Join(workdir, ToolsDir, "my-tool", "bin", "my-tool")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("my-tool", manifest.InstallSpec{
		Language: manifest.LanguageRust,
		Repo:     "https://github.com/example/my-tool",
		Version:  "1.0.0",
	}))
	require.NoError(t, err)

	c := runner.calls[0]
	assert.Contains(t, c.args, "--git")
	assert.NotContains(t, c.args, "--version", "git installs carry their own revision semantics")
}

func TestInstallIdempotency(t *testing.T) {
	workdir := t.TempDir()
	target := filepath.Join(workdir, ToolsDir, "cargo-deny", "bin", "cargo-deny")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	spec := manifest.InstallSpec{Language: manifest.LanguageRust, Package: "cargo-deny", Binary: "cargo-deny"}

	_, err := m.EnsureInstalled(hookWithInstall("cargo-deny", spec))
	require.NoError(t, err)
	_, err = m.EnsureInstalled(hookWithInstall("cargo-deny", spec))
	require.NoError(t, err)

	assert.Len(t, runner.calls, 1, "second ensure must short-circuit on binary presence")
}

func TestPythonInstallCreatesVenvThenInstalls(t *testing.T) {
	workdir := t.TempDir()
	root := filepath.Join(workdir, ToolsDir, "ruff-check")
	target := filepath.Join(root, "venv", "bin", "ruff")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	path, err := m.EnsureInstalled(hookWithInstall("ruff-check", manifest.InstallSpec{
		Language: manifest.LanguagePython,
		Package:  "ruff",
		Version:  "0.4.1",
		Entry:    "ruff",
	}))
	require.NoError(t, err)
	assert.Equal(t, target, path)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "uv", runner.calls[0].name)
	assert.Equal(t, []string{"venv", filepath.Join(root, "venv")}, runner.calls[0].args)

	pip := runner.calls[1]
	assert.Equal(t, "uv", pip.name)
	assert.Contains(t, pip.args, "ruff==0.4.1")
	assert.Contains(t, pip.args, "--no-cache")
}

func TestPythonAlreadyPinnedPackageNotRepinned(t *testing.T) {
	workdir := t.TempDir()
	root := filepath.Join(workdir, ToolsDir, "ruff-check")
	target := filepath.Join(root, "venv", "bin", "ruff")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("ruff-check", manifest.InstallSpec{
		Language: manifest.LanguagePython,
		Package:  "ruff==0.3.0",
		Version:  "0.4.1",
		Entry:    "ruff",
	}))
	require.NoError(t, err)

	pip := runner.calls[1]
	assert.Contains(t, pip.args, "ruff==0.3.0")
}

func TestPythonRepoUsesVCSReference(t *testing.T) {
	workdir := t.TempDir()
	root := filepath.Join(workdir, ToolsDir, "custom")
	target := filepath.Join(root, "venv", "bin", "custom")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("custom", manifest.InstallSpec{
		Language: manifest.LanguagePython,
		Repo:     "https://github.com/example/custom",
	}))
	require.NoError(t, err)

	pip := runner.calls[1]
	assert.Contains(t, pip.args, "git+https://github.com/example/custom")
}

func TestNodeInstallVersionSyntax(t *testing.T) {
	workdir := t.TempDir()
	root := filepath.Join(workdir, ToolsDir, "prettier")
	target := filepath.Join(root, "node_modules", ".bin", "prettier")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("prettier", manifest.InstallSpec{
		Language: manifest.LanguageNode,
		Package:  "prettier",
		Version:  "3.2.5",
		Entry:    "prettier",
	}))
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.Equal(t, "npm", c.name)
	assert.Equal(t, []string{"install", "--prefix", root, "prettier@3.2.5"}, c.args)
}

func TestNodePackageManagerOverride(t *testing.T) {
	t.Setenv(NpmEnvVar, "pnpm")

	workdir := t.TempDir()
	target := filepath.Join(workdir, ToolsDir, "prettier", "node_modules", ".bin", "prettier")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("prettier", manifest.InstallSpec{
		Language: manifest.LanguageNode,
		Package:  "prettier",
		Entry:    "prettier",
	}))
	require.NoError(t, err)
	assert.Equal(t, "pnpm", runner.calls[0].name)
}

func TestGoInstallRequiresVersion(t *testing.T) {
	runner := &fakeRunner{}
	m := NewWithRunner(t.TempDir(), runner)

	_, err := m.EnsureInstalled(hookWithInstall("tool", manifest.InstallSpec{
		Language: manifest.LanguageGo,
		Package:  "example.com/tool",
	}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallVersion))
	assert.Empty(t, runner.calls, "version validation must happen before any spawn")
}

func TestGoInstallEmbeddedVersionAccepted(t *testing.T) {
	workdir := t.TempDir()
	root := filepath.Join(workdir, ToolsDir, "tool")
	target := filepath.Join(root, "bin", "tool")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("tool", manifest.InstallSpec{
		Language: manifest.LanguageGo,
		Package:  "example.com/tool@v1.2.3",
	}))
	require.NoError(t, err)

	c := runner.calls[0]
	assert.Equal(t, "go", c.name)
	assert.Equal(t, []string{"install", "example.com/tool@v1.2.3"}, c.args)
	assert.Equal(t, filepath.Join(root, "bin"), c.env["GOBIN"])
}

func TestGoInstallPinAppended(t *testing.T) {
	workdir := t.TempDir()
	root := filepath.Join(workdir, ToolsDir, "staticcheck")
	target := filepath.Join(root, "bin", "staticcheck")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("staticcheck", manifest.InstallSpec{
		Language: manifest.LanguageGo,
		Package:  "honnef.co/go/tools/cmd/staticcheck",
		Version:  "2024.1",
		Entry:    "staticcheck",
	}))
	require.NoError(t, err)
	assert.Contains(t, runner.calls[0].args, "honnef.co/go/tools/cmd/staticcheck@2024.1")
}

func TestMissingSourceIsConfigError(t *testing.T) {
	for _, lang := range []manifest.Language{manifest.LanguageRust, manifest.LanguagePython, manifest.LanguageNode} {
		t.Run(string(lang), func(t *testing.T) {
			runner := &fakeRunner{}
			m := NewWithRunner(t.TempDir(), runner)
			_, err := m.EnsureInstalled(hookWithInstall("x", manifest.InstallSpec{Language: lang}))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
			assert.Empty(t, runner.calls)
		})
	}
}

func TestBinaryMissingAfterInstallIsFatal(t *testing.T) {
	// The fake runner "succeeds" but never creates the binary.
	runner := &fakeRunner{}
	m := NewWithRunner(t.TempDir(), runner)

	_, err := m.EnsureInstalled(hookWithInstall("ghost", manifest.InstallSpec{
		Language: manifest.LanguageRust,
		Package:  "ghost",
	}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallMissing))
}

func TestInstallerFailurePropagates(t *testing.T) {
	runner := &fakeRunner{fail: true}
	m := NewWithRunner(t.TempDir(), runner)

	_, err := m.EnsureInstalled(hookWithInstall("broken", manifest.InstallSpec{
		Language: manifest.LanguageRust,
		Package:  "broken",
	}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallFailed))
}

func TestEnsureInstalledUpsertsLockRecord(t *testing.T) {
	workdir := t.TempDir()
	target := filepath.Join(workdir, ToolsDir, "cargo-deny", "bin", "cargo-deny")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	spec := manifest.InstallSpec{Language: manifest.LanguageRust, Package: "cargo-deny", Binary: "cargo-deny"}
	_, err := m.EnsureInstalled(hookWithInstall("cargo-deny", spec))
	require.NoError(t, err)

	lock, err := lockfile.Load(filepath.Join(workdir, lockfile.Name))
	require.NoError(t, err)
	require.Len(t, lock.Hooks, 1)
	assert.Equal(t, "cargo-deny", lock.Hooks[0].ID)
	assert.Equal(t, "rust", lock.Hooks[0].Language)
	assert.Equal(t, "cargo-deny", lock.Hooks[0].Source)
	assert.Len(t, lock.Hooks[0].SHA256, 64)

	// A pre-existing binary still refreshes the lock record.
	_, err = m.EnsureInstalled(hookWithInstall("cargo-deny", spec))
	require.NoError(t, err)
	lock, err = lockfile.Load(filepath.Join(workdir, lockfile.Name))
	require.NoError(t, err)
	assert.Len(t, lock.Hooks, 1)
}

func TestInstallEnvOverridesPassedToRunner(t *testing.T) {
	workdir := t.TempDir()
	target := filepath.Join(workdir, ToolsDir, "tool", "bin", "tool")
	runner := &fakeRunner{creates: []string{target}}
	m := NewWithRunner(workdir, runner)

	_, err := m.EnsureInstalled(hookWithInstall("tool", manifest.InstallSpec{
		Language: manifest.LanguageGo,
		Package:  "example.com/tool@v1.0.0",
		Env:      map[string]string{"GOFLAGS": "-mod=mod"},
	}))
	require.NoError(t, err)

	env := runner.calls[0].env
	assert.Equal(t, "-mod=mod", env["GOFLAGS"])
	assert.NotEmpty(t, env["GOBIN"], "GOBIN redirect must survive user env overrides")
}
