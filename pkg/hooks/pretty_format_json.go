package hooks

import (
	"encoding/json"
	"os"

	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// PrettyFormatJSONID is the manifest id of this hook.
const PrettyFormatJSONID = "pretty-format-json"

// PrettyFormatJSON rewrites JSON files with two-space indentation and
// a trailing newline. Files that do not parse as JSON are skipped.
type PrettyFormatJSON struct{}

func (PrettyFormatJSON) ID() string { return PrettyFormatJSONID }

func (h PrettyFormatJSON) Run(ctx *hook.Context, paths []string) (hook.Result, error) {
	logger := logging.GetLogger("hooks.pretty_format_json")
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
		if err := json.Unmarshal([]byte(content), &value); err != nil {
			// Not JSON; leave it alone.
			continue
		}

		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return result, err
		}
		formatted := string(pretty) + "\n"
		if formatted == content {
			continue
		}

		if ctx.DryRun {
			logger.Debug().Str("path", path).Msg("dry-run: would format JSON")
			ctx.Changelog.RecordChange(h.ID(), "Would format JSON in "+path)
			result.Merge(hook.Result{Outcome: hook.Changed, ChangedFiles: []string{path}})
			continue
		}

		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return result, err
		}
		ctx.Changelog.RecordChange(h.ID(), "Formatted JSON in "+path)
		ctx.Changelog.RecordFileModified(h.ID(), path)
		result.Merge(hook.Result{Outcome: hook.Changed, ChangedFiles: []string{path}})
	}

	return result, nil
}

func init() {
	Register(PrettyFormatJSONID, func([]string) (hook.Hook, error) {
		return PrettyFormatJSON{}, nil
	})
}
