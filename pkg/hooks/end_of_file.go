package hooks

import (
	"os"
	"strings"

	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// EndOfFileFixerID is the manifest id of this hook.
const EndOfFileFixerID = "end-of-file-fixer"

// EndOfFileFixer makes files end with exactly one newline.
type EndOfFileFixer struct{}

func (EndOfFileFixer) ID() string { return EndOfFileFixerID }

func (h EndOfFileFixer) Run(ctx *hook.Context, paths []string) (hook.Result, error) {
	logger := logging.GetLogger("hooks.end_of_file")
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

		fixed := strings.TrimRight(content, "\r\n") + "\n"
		if fixed == content {
			continue
		}

		if ctx.DryRun {
			logger.Debug().Str("path", path).Msg("dry-run: would normalize end of file")
			ctx.Changelog.RecordChange(h.ID(), "Would normalize newlines at end of "+path)
			result.Merge(hook.Result{Outcome: hook.Changed, ChangedFiles: []string{path}})
			continue
		}

		if err := os.WriteFile(path, []byte(fixed), 0644); err != nil {
			return result, err
		}
		ctx.Changelog.RecordChange(h.ID(), "Normalized newlines at end of "+path)
		ctx.Changelog.RecordFileModified(h.ID(), path)
		result.Merge(hook.Result{Outcome: hook.Changed, ChangedFiles: []string{path}})
	}

	return result, nil
}

func init() {
	Register(EndOfFileFixerID, func([]string) (hook.Hook, error) {
		return EndOfFileFixer{}, nil
	})
}
