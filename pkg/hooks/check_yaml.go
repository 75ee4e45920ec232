package hooks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// CheckYAMLID is the manifest id of this hook.
const CheckYAMLID = "check-yaml"

// CheckYAML validates that files parse as YAML. It never modifies
// anything.
type CheckYAML struct{}

func (CheckYAML) ID() string { return CheckYAMLID }

func (h CheckYAML) Run(ctx *hook.Context, paths []string) (hook.Result, error) {
	logger := logging.GetLogger("hooks.check_yaml")
	result := hook.Result{}

	files, err := expandPaths(paths)
	if err != nil {
		return result, err
	}

	for _, path := range files {
		ctx.Changelog.RecordFileChecked(h.ID(), path)

		content, ok, err := readText(ctx, h.ID(), path)
		if err != nil {
			return result, err
		}
		if !ok {
			continue
		}

		var value interface{}
		if err := yaml.Unmarshal([]byte(content), &value); err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("YAML parse error")
			message := fmt.Sprintf("Invalid YAML in %s: %v", path, err)
			ctx.Changelog.RecordChange(h.ID(), message)
			result.Merge(hook.Result{Outcome: hook.Violations, Violations: []string{message}})
		}
	}

	return result, nil
}

func init() {
	Register(CheckYAMLID, func([]string) (hook.Hook, error) {
		return CheckYAML{}, nil
	})
}
