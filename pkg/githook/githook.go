// Package githook installs the prehook binary as a git pre-commit hook.
package githook

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/logging"
)

const scriptTemplate = `#!/usr/bin/env bash
set -e

# Run pre-commit hooks using %s
exec "%s" run
`

// RepoRoot asks git for the top-level directory of the enclosing
// repository.
func RepoRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrExecSpawn, "not inside a git repository")
	}
	return strings.TrimSpace(string(out)), nil
}

// ResolveBinary picks the prehook binary the hook script will invoke:
// an explicit path wins, then a PATH lookup, then the bare name as a
// last resort so the script still works once prehook is installed.
func ResolveBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path, err := exec.LookPath("prehook"); err == nil {
		return path
	}
	return "prehook"
}

// Install writes an executable pre-commit script into the repository's
// .git/hooks directory and returns the script path.
func Install(repoRoot, binaryPath string) (string, error) {
	logger := logging.GetLogger("githook")

	hooksDir := filepath.Join(repoRoot, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", hooksDir)
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")
	script := fmt.Sprintf(scriptTemplate, binaryPath, binaryPath)
	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", hookPath)
	}

	logger.Info().Str("path", hookPath).Str("binary", binaryPath).Msg("installed git pre-commit hook")
	return hookPath, nil
}
