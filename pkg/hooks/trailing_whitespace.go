package hooks

import (
	"os"
	"strings"

	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// TrailingWhitespaceID is the manifest id of this hook.
const TrailingWhitespaceID = "trailing-whitespace"

// TrailingWhitespace removes whitespace at the end of lines.
type TrailingWhitespace struct{}

func (TrailingWhitespace) ID() string { return TrailingWhitespaceID }

// Run fixes trailing whitespace in every resolved file. Line endings
// are normalized to \n as a side effect of rewriting.
func (h TrailingWhitespace) Run(ctx *hook.Context, paths []string) (hook.Result, error) {
	logger := logging.GetLogger("hooks.trailing_whitespace")
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

		fixed, changed := stripTrailingWhitespace(content)
		if !changed {
			continue
		}

		if ctx.DryRun {
			logger.Debug().Str("path", path).Msg("dry-run: would fix trailing whitespace")
			ctx.Changelog.RecordChange(h.ID(), "Would remove trailing whitespace from "+path)
			result.Merge(hook.Result{Outcome: hook.Changed, ChangedFiles: []string{path}})
			continue
		}

		if err := os.WriteFile(path, []byte(fixed), 0644); err != nil {
			return result, err
		}
		ctx.Changelog.RecordChange(h.ID(), "Removed trailing whitespace from "+path)
		ctx.Changelog.RecordFileModified(h.ID(), path)
		result.Merge(hook.Result{Outcome: hook.Changed, ChangedFiles: []string{path}})
	}

	return result, nil
}

func stripTrailingWhitespace(content string) (string, bool) {
	changed := false
	var b strings.Builder
	b.Grow(len(content))

	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) != len(line) {
			changed = true
		}
		b.WriteString(trimmed)
		b.WriteString("\n")
	}

	return b.String(), changed
}

func init() {
	Register(TrailingWhitespaceID, func([]string) (hook.Hook, error) {
		return TrailingWhitespace{}, nil
	})
}
