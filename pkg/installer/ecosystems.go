package installer

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/manifest"
)

// NpmEnvVar selects an alternate package-manager executable for node
// installs (e.g. pnpm).
const NpmEnvVar = "NPM"

// strategy is the per-ecosystem install behavior. target returns the
// binary path the hook will execute; install provisions it. Both are
// relative to the hook's private install root.
type strategy interface {
	target(root string) string
	install(r Runner, root string) error
}

// forSpec builds the strategy for a hook's install spec, validating
// the fields that ecosystem requires. Validation failures here are
// configuration errors raised before any process spawn.
func forSpec(hookID string, spec *manifest.InstallSpec) (strategy, error) {
	switch lang := spec.EffectiveLanguage(); lang {
	case manifest.LanguageRust:
		if spec.Repo == "" && spec.Package == "" {
			return nil, missingSource(hookID)
		}
		return &rustStrategy{
			repo:      spec.Repo,
			pkg:       spec.Package,
			version:   spec.Version,
			binary:    spec.Binary,
			binName:   spec.BinaryName(hookID),
			extraArgs: spec.InstallArgs,
			env:       spec.Env,
		}, nil
	case manifest.LanguagePython:
		if spec.Repo == "" && spec.Package == "" {
			return nil, missingSource(hookID)
		}
		return &pythonStrategy{
			repo:      spec.Repo,
			pkg:       spec.Package,
			version:   spec.Version,
			entry:     spec.EntryName(hookID),
			extraArgs: spec.InstallArgs,
			env:       spec.Env,
		}, nil
	case manifest.LanguageNode:
		if spec.Repo == "" && spec.Package == "" {
			return nil, missingSource(hookID)
		}
		return &nodeStrategy{
			repo:      spec.Repo,
			pkg:       spec.Package,
			version:   spec.Version,
			entry:     spec.EntryName(hookID),
			extraArgs: spec.InstallArgs,
			env:       spec.Env,
		}, nil
	case manifest.LanguageGo:
		if spec.Package == "" {
			return nil, missingSource(hookID)
		}
		// Go installs have no "latest" fallback: a version must come
		// from the pin or be embedded in the package reference.
		if spec.Version == "" && !strings.Contains(spec.Package, "@") {
			return nil, errors.Newf(errors.ErrInstallVersion,
				"install for hook %q requires a version: set 'version' or use 'package@version'", hookID)
		}
		return &goStrategy{
			pkg:       spec.Package,
			version:   spec.Version,
			entry:     spec.EntryName(hookID),
			extraArgs: spec.InstallArgs,
			env:       spec.Env,
		}, nil
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid, "hook %q: unknown install language %q", hookID, lang)
	}
}

func missingSource(hookID string) error {
	return errors.Newf(errors.ErrConfigInvalid, "install for hook %q requires 'repo' or 'package'", hookID)
}

// rustStrategy installs crates with the cargo toolchain.
type rustStrategy struct {
	repo      string
	pkg       string
	version   string
	binary    string // explicit --bin selection, empty when unset
	binName   string
	extraArgs []string
	env       map[string]string
}

func (s *rustStrategy) target(root string) string {
	return filepath.Join(root, "bin", s.binName)
}

func (s *rustStrategy) install(r Runner, root string) error {
	args := []string{"install", "--force", "--root", root}
	if s.repo != "" {
		args = append(args, "--git", s.repo)
	}
	if s.binary != "" {
		args = append(args, "--bin", s.binary)
	}
	// A pin only makes sense for a named registry package; a git repo
	// reference carries its own revision semantics.
	if s.version != "" && s.repo == "" && s.pkg != "" {
		args = append(args, "--version", s.version)
	}
	args = append(args, s.extraArgs...)
	if s.pkg != "" {
		args = append(args, s.pkg)
	}
	return r.Run("cargo", args, s.env)
}

// pythonStrategy provisions a per-hook virtual environment with uv.
type pythonStrategy struct {
	repo      string
	pkg       string
	version   string
	entry     string
	extraArgs []string
	env       map[string]string
}

func pythonBinDir(venv string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venv, "Scripts")
	}
	return filepath.Join(venv, "bin")
}

func (s *pythonStrategy) target(root string) string {
	return filepath.Join(pythonBinDir(filepath.Join(root, "venv")), s.entry)
}

func (s *pythonStrategy) install(r Runner, root string) error {
	venv := filepath.Join(root, "venv")
	if err := r.Run("uv", []string{"venv", venv}, s.env); err != nil {
		return err
	}

	target := s.pkg
	switch {
	case target != "" && s.version != "" && !strings.Contains(target, "=="):
		target = target + "==" + s.version
	case target == "":
		target = "git+" + s.repo
	}

	python := filepath.Join(pythonBinDir(venv), pythonExe())
	args := []string{"pip", "install", "--python", python, "--no-cache"}
	args = append(args, s.extraArgs...)
	args = append(args, target)
	return r.Run("uv", args, s.env)
}

func pythonExe() string {
	if runtime.GOOS == "windows" {
		return "python.exe"
	}
	return "python"
}

// nodeStrategy installs packages into a per-hook npm prefix.
type nodeStrategy struct {
	repo      string
	pkg       string
	version   string
	entry     string
	extraArgs []string
	env       map[string]string
}

func (s *nodeStrategy) target(root string) string {
	return filepath.Join(root, "node_modules", ".bin", s.entry)
}

func (s *nodeStrategy) install(r Runner, root string) error {
	npm := os.Getenv(NpmEnvVar)
	if npm == "" {
		npm = "npm"
	}

	target := s.pkg
	if target != "" && s.version != "" {
		target = target + "@" + s.version
	}
	if target == "" {
		target = s.repo
	}

	args := []string{"install", "--prefix", root}
	args = append(args, s.extraArgs...)
	args = append(args, target)
	return r.Run(npm, args, s.env)
}

// goStrategy installs module binaries with the go toolchain, pointing
// GOBIN at the hook's private bin directory.
type goStrategy struct {
	pkg       string
	version   string
	entry     string
	extraArgs []string
	env       map[string]string
}

func (s *goStrategy) target(root string) string {
	return filepath.Join(root, "bin", s.entry)
}

func (s *goStrategy) install(r Runner, root string) error {
	ref := s.pkg
	if !strings.Contains(ref, "@") {
		ref = ref + "@" + s.version
	}

	env := map[string]string{"GOBIN": filepath.Join(root, "bin")}
	for k, v := range s.env {
		env[k] = v
	}

	args := []string{"install"}
	args = append(args, s.extraArgs...)
	args = append(args, ref)
	return r.Run("go", args, env)
}
