package hooks

import (
	"os"
	"unicode/utf8"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/matcher"
)

// expandPaths resolves the hook's input paths to concrete files.
// Directory arguments are expanded with the ignore-aware walk; plain
// files pass through. Missing paths are skipped silently, matching
// the tolerant behavior expected of pre-commit hooks.
func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.IsDir() {
			walked, err := matcher.WalkFiles(p)
			if err != nil {
				return nil, err
			}
			files = append(files, walked...)
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

// readText reads a file as UTF-8 text. Non-UTF-8 content is not an
// error: it is reported as skipped through the changelog and the
// second return is false.
func readText(ctx *hook.Context, hookID, path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	if !utf8.Valid(data) {
		ctx.Changelog.RecordChange(hookID, "Skipped non-UTF8 file: "+path)
		return "", false, nil
	}
	return string(data), true, nil
}
