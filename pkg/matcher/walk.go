package matcher

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/prehook/pkg/errors"
)

// WalkFiles enumerates the files under root in walk order, applying
// the same ignore semantics as pattern resolution: gitignore files,
// repository excludes, the global ignore file and hidden entries.
// Hooks use this to expand directory arguments.
func WalkFiles(root string) ([]string, error) {
	ignores := newIgnoreSet(root)
	var files []string

	walkErr := filepath.WalkDir(root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrMatchWalk, "failed to walk %s", full)
		}
		if full == root {
			return nil
		}

		rel, err := relSlash(root, full)
		if err != nil {
			return errors.Wrap(err, errors.ErrMatchWalk, "failed to compute relative path")
		}

		if d.IsDir() {
			if hidden(d.Name()) || ignores.Ignored(rel, true) {
				return filepath.SkipDir
			}
			ignores.addFile(rel, filepath.Join(full, ".gitignore"))
			return nil
		}

		if hidden(d.Name()) || ignores.Ignored(rel, false) {
			return nil
		}

		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}
