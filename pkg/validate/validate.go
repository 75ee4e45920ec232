// Package validate checks that a built-in hook honors the hook
// contract: tolerate empty input, never mutate files in dry-run mode,
// signal violations or changes through its result, and skip missing or
// non-UTF-8 files instead of failing on them.
package validate

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/hooks"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// Hook runs the conformance checks against a registered built-in.
// A nil return means the hook satisfies the contract.
func Hook(id string) error {
	logger := logging.GetLogger("validate")

	factory, ok := hooks.Lookup(id)
	if !ok {
		return errors.Newf(errors.ErrConfigUnknownHook, "no built-in hook named %q", id)
	}
	h, err := factory(nil)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "prehook-validate-")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to create scratch directory")
	}
	defer os.RemoveAll(dir)

	// Empty input must be a clean no-op.
	res, err := h.Run(hook.NewContext(false, false), nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHookContract, "hook %q failed on empty input", id)
	}
	if res.Failed() {
		return errors.Newf(errors.ErrHookContract, "hook %q reported a non-clean result for empty input", id)
	}

	if err := checkDryRun(dir, id, h); err != nil {
		return err
	}
	if err := checkSignalling(dir, id, h); err != nil {
		return err
	}
	if err := checkTolerance(dir, id, h); err != nil {
		return err
	}

	logger.Info().Str("hook", id).Msg("hook passes contract validation")
	return nil
}

// checkDryRun feeds the hook its trigger input in dry-run mode and
// verifies the bytes on disk stay untouched.
func checkDryRun(dir, id string, h hook.Hook) error {
	path, content, err := writeTrigger(dir, id)
	if err != nil {
		return err
	}

	if _, err := h.Run(hook.NewContext(true, false), []string{path}); err != nil {
		return errors.Wrapf(err, errors.ErrHookContract, "hook %q failed in dry-run mode", id)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to re-read dry-run input")
	}
	if !bytes.Equal(content, after) {
		return errors.Newf(errors.ErrHookContract, "hook %q modified a file in dry-run mode", id)
	}
	return nil
}

// checkSignalling verifies an enforcing run against the trigger input
// reports violations or changes through the result.
func checkSignalling(dir, id string, h hook.Hook) error {
	path, _, err := writeTrigger(dir, id)
	if err != nil {
		return err
	}

	res, err := h.Run(hook.NewContext(false, false), []string{path})
	if err != nil {
		return errors.Wrapf(err, errors.ErrHookContract, "hook %q failed on its trigger input", id)
	}
	if !res.Failed() {
		return errors.Newf(errors.ErrHookContract,
			"hook %q did not signal violations or changes when expected", id)
	}
	return nil
}

// checkTolerance verifies missing files and non-UTF-8 content are
// skipped rather than surfaced as errors.
func checkTolerance(dir, id string, h hook.Hook) error {
	missing := filepath.Join(dir, "does-not-exist.txt")
	if _, err := h.Run(hook.NewContext(false, false), []string{missing}); err != nil {
		return errors.Wrapf(err, errors.ErrHookContract, "hook %q errored on a missing file", id)
	}

	binary := filepath.Join(dir, "invalid-utf8.txt")
	if err := os.WriteFile(binary, []byte("Hello \xFF\xFE World"), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to write non-UTF-8 input")
	}
	if _, err := h.Run(hook.NewContext(false, false), []string{binary}); err != nil {
		return errors.Wrapf(err, errors.ErrHookContract, "hook %q errored on non-UTF-8 content", id)
	}
	return nil
}

// writeTrigger writes the input that must make the given hook report a
// violation or a change. Fresh content each call so fixer runs do not
// leak into later checks.
func writeTrigger(dir, id string) (string, []byte, error) {
	var name string
	var content []byte
	switch id {
	case hooks.CheckYAMLID:
		name = "invalid.yaml"
		content = []byte("invalid: [yaml: }")
	case hooks.CheckAddedLargeFilesID:
		name = "large.txt"
		content = bytes.Repeat([]byte{'x'}, 1_000_000)
	case hooks.PrettyFormatJSONID:
		name = "unformatted.json"
		content = []byte(`{"b":1,"a":2}`)
	case hooks.TrailingWhitespaceID:
		name = "needs-fixing.txt"
		content = []byte("line with trailing spaces   \n")
	default:
		name = "needs-fixing.txt"
		content = []byte("no trailing newline")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", nil, errors.Wrap(err, errors.ErrFileAccess, "failed to write trigger input")
	}
	return path, content, nil
}
