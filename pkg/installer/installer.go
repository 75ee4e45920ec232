// Package installer guarantees a runnable binary exists for an
// externally-provisioned hook. Each ecosystem has its own strategy
// type carrying only the fields it needs; a single EnsureInstalled
// call dispatches to the right one. Idempotency is decided purely by
// binary presence on disk, never by the lock file.
package installer

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/lockfile"
	"github.com/arthur-debert/prehook/pkg/logging"
	"github.com/arthur-debert/prehook/pkg/manifest"
)

// ToolsDir is the per-hook install root, relative to the working tree.
const ToolsDir = ".precommit-tools"

// Runner spawns an installer process and blocks until it exits. The
// env map overlays the inherited environment.
type Runner interface {
	Run(name string, args []string, env map[string]string) error
}

// ExecRunner runs installer processes with os/exec, inheriting the
// caller's stdio so installer output stays visible.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(name string, args []string, env map[string]string) error {
	logging.LogCommand(name, args)

	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = mergedEnv(env)

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return errors.Wrapf(err, errors.ErrInstallFailed, "%s exited with failure", name)
		}
		return errors.Wrapf(err, errors.ErrExecSpawn, "failed to execute %s", name)
	}
	return nil
}

func mergedEnv(overrides map[string]string) []string {
	env := os.Environ()
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

// Manager provisions hook binaries under <workdir>/.precommit-tools.
type Manager struct {
	workdir string
	runner  Runner
	logger  zerolog.Logger
}

// New creates a manager rooted at the working tree.
func New(workdir string) *Manager {
	return NewWithRunner(workdir, ExecRunner{})
}

// NewWithRunner allows tests to intercept process spawns.
func NewWithRunner(workdir string, r Runner) *Manager {
	return &Manager{
		workdir: workdir,
		runner:  r,
		logger:  logging.GetLogger("installer"),
	}
}

// EnsureInstalled resolves the hook's executable, installing it on
// first use. After a successful resolution (fresh or pre-existing)
// the binary is hashed and a lock record is upserted.
func (m *Manager) EnsureInstalled(h manifest.Hook) (string, error) {
	if h.Install == nil {
		return "", errors.Newf(errors.ErrConfigMissingSpec,
			"hook %q requires install but no install configuration provided", h.ID)
	}
	spec := h.Install

	strat, err := forSpec(h.ID, spec)
	if err != nil {
		return "", err
	}

	root := filepath.Join(m.workdir, ToolsDir, h.ID)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create install root %s", root)
	}

	target := strat.target(root)
	if !fileExists(target) {
		m.logger.Info().
			Str("hook", h.ID).
			Str("language", string(spec.EffectiveLanguage())).
			Str("target", target).
			Msg("Installing hook binary")

		if err := strat.install(m.runner, root); err != nil {
			return "", err
		}

		// The installer reporting success is not enough: the binary
		// this hook will execute has to actually be there.
		if !fileExists(target) {
			return "", errors.Newf(errors.ErrInstallMissing,
				"expected executable for hook %q at %s but it does not exist", h.ID, target)
		}
	}

	entry := spec.Entry
	err = lockfile.Record(m.workdir, h.ID, string(spec.EffectiveLanguage()), spec.Source(), entry, target)
	if err != nil {
		return "", err
	}

	return target, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
