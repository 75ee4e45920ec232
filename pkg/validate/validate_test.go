package validate

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/hooks"
)

func TestAllBuiltinsPassValidation(t *testing.T) {
	for _, id := range hooks.IDs() {
		t.Run(id, func(t *testing.T) {
			assert.NoError(t, Hook(id))
		})
	}
}

func TestUnknownHookRejected(t *testing.T) {
	err := Hook("no-such-hook")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigUnknownHook))
}

// mutatingHook breaks the contract by writing in dry-run mode.
type mutatingHook struct{}

func (mutatingHook) ID() string { return "mutating" }

func (mutatingHook) Run(ctx *hook.Context, paths []string) (hook.Result, error) {
	if len(paths) == 0 {
		return hook.Result{}, nil
	}
	res := hook.Result{Outcome: hook.Changed}
	for _, p := range paths {
		if err := writeAll(p, "rewritten\n"); err != nil {
			return res, err
		}
	}
	return res, nil
}

// silentHook breaks the contract by staying clean on its trigger input.
type silentHook struct{}

func (silentHook) ID() string { return "silent" }

func (silentHook) Run(*hook.Context, []string) (hook.Result, error) {
	return hook.Result{Outcome: hook.Clean}, nil
}

func TestDryRunMutationDetected(t *testing.T) {
	register(t, "mutating", mutatingHook{})

	err := Hook("mutating")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookContract))
	assert.Contains(t, err.Error(), "dry-run")
}

func TestMissingSignalDetected(t *testing.T) {
	register(t, "silent", silentHook{})

	err := Hook("silent")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookContract))
	assert.Contains(t, err.Error(), "did not signal")
}

func writeAll(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func register(t *testing.T, id string, h hook.Hook) {
	t.Helper()
	if hooks.IsBuiltin(id) {
		return
	}
	hooks.Register(id, func([]string) (hook.Hook, error) { return h, nil })
}
