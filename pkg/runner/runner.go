// Package runner drives the per-run hook loop: it resolves each hook's
// file set, decides between built-in and external execution, provisions
// external binaries through the installer, and aggregates outcomes into
// a run summary plus the changelog.
package runner

import (
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/hooks"
	"github.com/arthur-debert/prehook/pkg/installer"
	"github.com/arthur-debert/prehook/pkg/logging"
	"github.com/arthur-debert/prehook/pkg/manifest"
	"github.com/arthur-debert/prehook/pkg/matcher"
)

// State is the terminal state a hook reaches within one run.
type State int

const (
	StateSkipped State = iota
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSkipped:
		return "skipped"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report is the per-hook record in a run Summary.
type Report struct {
	ID     string
	Name   string
	State  State
	Reason string
	Result hook.Result
	Files  []string
	Err    error
}

// Summary aggregates the whole run.
type Summary struct {
	Reports []Report

	// Blocked is true when the run should terminate the calling
	// process with a non-zero status: a hook failed, or an enforcing
	// run found violations or made changes.
	Blocked bool
}

func (s *Summary) report(r Report) {
	s.Reports = append(s.Reports, r)
}

// Failed reports whether any hook ended in the Failed state.
func (s *Summary) Failed() bool {
	for _, r := range s.Reports {
		if r.State == StateFailed {
			return true
		}
	}
	return false
}

// ProcessRunner spawns an external hook binary. The lone implementation
// outside tests is ExecRunner.
type ProcessRunner interface {
	Run(name string, args []string, dir string, env map[string]string) error
}

// ExecRunner runs hook binaries as blocking child processes inheriting
// the parent's stdio.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args []string, dir string, env map[string]string) error {
	logging.LogCommand(name, args)
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Newf(errors.ErrExecStatus,
				"%s exited with status %d", name, exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrExecSpawn, "failed to spawn %s", name)
	}
	return nil
}

// Runner executes the hooks of a manifest against a working tree.
type Runner struct {
	root      string
	dryRun    bool
	debug     bool
	installer *installer.Manager
	proc      ProcessRunner
}

// New returns a Runner for the working tree rooted at root.
func New(root string, dryRun, debug bool) *Runner {
	return NewWithDeps(root, dryRun, debug, installer.New(root), ExecRunner{})
}

// NewWithDeps injects the install manager and process runner. Tests use
// it to intercept child-process invocations.
func NewWithDeps(root string, dryRun, debug bool, inst *installer.Manager, proc ProcessRunner) *Runner {
	return &Runner{
		root:      root,
		dryRun:    dryRun,
		debug:     debug,
		installer: inst,
		proc:      proc,
	}
}

// Run processes every enabled local hook in manifest order. Pattern
// compilation failures and changelog write failures abort the run;
// installation and execution failures mark the affected hook Failed
// and the loop continues.
func (r *Runner) Run(m *manifest.Manifest) (*Summary, error) {
	logger := logging.GetLogger("runner")
	start := time.Now()
	defer logging.LogDuration(start, "run")

	ctx := hook.NewContext(r.dryRun, r.debug)
	summary := &Summary{}

	for _, h := range m.LocalHooks() {
		rep, err := r.runHook(ctx, h)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("hook", h.ID).
			Str("state", rep.State.String()).
			Int("files", len(rep.Files)).
			Msg("hook finished")
		summary.report(rep)
	}

	if ctx.Changelog.HasChanges() {
		if err := ctx.Changelog.WriteIfChanged(r.root); err != nil {
			return nil, err
		}
	}

	summary.Blocked = summary.Failed()
	if !r.dryRun {
		for _, rep := range summary.Reports {
			if rep.State == StateCompleted && rep.Result.Failed() {
				summary.Blocked = true
			}
		}
	}
	return summary, nil
}

func (r *Runner) runHook(ctx *hook.Context, h manifest.Hook) (Report, error) {
	logger := logging.GetLogger("runner")
	rep := Report{ID: h.ID, Name: h.DisplayName()}

	if !h.IsEnabled() {
		rep.State = StateSkipped
		rep.Reason = "disabled"
		return rep, nil
	}

	files, err := r.resolveFiles(h)
	if err != nil {
		// Pattern compile and walk errors abort the whole run.
		return rep, err
	}
	if len(files) == 0 {
		rep.State = StateSkipped
		rep.Reason = "no matching files"
		return rep, nil
	}
	rep.Files = files

	switch {
	case h.Command != "":
		r.recordChecked(ctx, h.ID, files)
		binary, failErr := r.resolveCommand(h)
		if failErr != nil {
			rep.State = StateFailed
			rep.Err = failErr
			logger.Error().Err(failErr).Str("hook", h.ID).Msg("install failed")
			return rep, nil
		}
		ctx.Changelog.RecordChange(h.ID, "Ran external command: "+binary)
		if execErr := r.execExternal(h, binary, files); execErr != nil {
			rep.State = StateFailed
			rep.Err = execErr
			logger.Error().Err(execErr).Str("hook", h.ID).Msg("hook failed")
			return rep, nil
		}
		rep.State = StateCompleted

	case hooks.IsBuiltin(h.ID):
		// Built-ins open paths themselves, so resolve them against the
		// run root rather than the process working directory.
		paths := r.builtinPaths(files)
		r.recordChecked(ctx, h.ID, paths)
		factory, _ := hooks.Lookup(h.ID)
		b, buildErr := factory(h.Args)
		if buildErr != nil {
			rep.State = StateFailed
			rep.Err = buildErr
			return rep, nil
		}
		res, runErr := b.Run(ctx, paths)
		if runErr != nil {
			rep.State = StateFailed
			rep.Err = runErr
			logger.Error().Err(runErr).Str("hook", h.ID).Msg("hook failed")
			return rep, nil
		}
		rep.State = StateCompleted
		rep.Result = res

	default:
		r.recordChecked(ctx, h.ID, files)
		rep.State = StateSkipped
		rep.Reason = "unknown hook"
		rep.Err = errors.Newf(errors.ErrConfigUnknownHook,
			"hook %q is neither a built-in nor declares a command", h.ID)
		logger.Warn().Str("hook", h.ID).Msg("unknown hook id, skipping")
	}

	return rep, nil
}

// builtinPaths maps the matcher's root-relative results onto the run
// root. The "." sentinel becomes the root itself, which the hook's own
// walk then expands.
func (r *Runner) builtinPaths(files []string) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		switch {
		case f == ".":
			paths = append(paths, r.root)
		case filepath.IsAbs(f):
			paths = append(paths, f)
		default:
			paths = append(paths, filepath.Join(r.root, f))
		}
	}
	return paths
}

// recordChecked logs every resolved file as checked before execution.
// Directory sentinels are left for the hook itself to expand.
func (r *Runner) recordChecked(ctx *hook.Context, id string, paths []string) {
	for _, p := range paths {
		if p == "." || p == r.root {
			continue
		}
		ctx.Changelog.RecordFileChecked(id, p)
	}
}

// resolveFiles runs the hook's pattern through the matcher. A hook
// without a pattern resolves to the current-directory sentinel so
// built-ins can expand it themselves.
func (r *Runner) resolveFiles(h manifest.Hook) ([]string, error) {
	m, err := matcher.New(h.Files)
	if err != nil {
		return nil, err
	}
	return m.Resolve(r.root)
}

// resolveCommand turns the hook's command field into a runnable path,
// installing the tool first when the placeholder is used.
func (r *Runner) resolveCommand(h manifest.Hook) (string, error) {
	if h.CommandIsInstall() {
		return r.installer.EnsureInstalled(h)
	}
	return h.Command, nil
}

func (r *Runner) execExternal(h manifest.Hook, binary string, files []string) error {
	args := append([]string{}, h.Args...)
	args = append(args, files...)

	dir := r.root
	if h.WorkingDir != "" {
		if filepath.IsAbs(h.WorkingDir) {
			dir = h.WorkingDir
		} else {
			dir = filepath.Join(r.root, h.WorkingDir)
		}
	}

	// Resolved tool paths are relative to the root; make them absolute
	// so the working directory does not change what gets executed.
	if !filepath.IsAbs(binary) && fileExists(filepath.Join(r.root, binary)) {
		binary = filepath.Join(r.root, binary)
	}

	return r.proc.Run(binary, args, dir, h.EnvOverrides())
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
