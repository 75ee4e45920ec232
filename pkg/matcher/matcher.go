// Package matcher resolves a hook's glob pattern into the concrete set
// of files it applies to, honoring version-control ignore rules.
package matcher

import (
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// Matcher matches files of a working tree against a hook's pattern.
type Matcher struct {
	pattern string
	globs   []glob.Glob
}

// New compiles a hook's file pattern. A single top-level brace group is
// expanded first; each alternative becomes its own glob. The empty
// pattern yields a matcher that resolves to the "." sentinel.
func New(pattern string) (*Matcher, error) {
	m := &Matcher{pattern: pattern}
	if pattern == "" {
		return m, nil
	}

	for _, expanded := range ExpandBraces(pattern) {
		g, err := glob.Compile(expanded, '/')
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMatchPattern, "invalid file pattern %q", pattern)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Matches tests a candidate against every compiled glob, accepting a
// match on either the root-relative or the absolute path. That way
// patterns anchored at the tree root and patterns written against
// absolute paths both work.
func (m *Matcher) Matches(rel, abs string) bool {
	for _, g := range m.globs {
		if g.Match(rel) || g.Match(filepath.ToSlash(abs)) {
			return true
		}
	}
	return false
}

// Resolve walks the working tree from root and returns the matching
// files in walk order, honoring gitignore rules, repository excludes,
// the global ignore file and hidden-file filtering. An empty result is
// a legitimate outcome, not an error. Without a pattern it returns the
// single "." sentinel for the caller to interpret.
func (m *Matcher) Resolve(root string) ([]string, error) {
	if m.pattern == "" {
		return []string{"."}, nil
	}

	logger := logging.GetLogger("matcher")

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMatchWalk, "failed to resolve walk root")
	}

	ignores := newIgnoreSet(root)
	var matches []string

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
			// Nested ignore files scope their rules to their directory.
			ignores.addFile(rel, filepath.Join(full, ".gitignore"))
			return nil
		}

		if hidden(d.Name()) || ignores.Ignored(rel, false) {
			return nil
		}

		if m.Matches(rel, filepath.Join(absRoot, rel)) {
			matches = append(matches, filepath.FromSlash(rel))
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	logger.Debug().
		Str("pattern", m.pattern).
		Int("matches", len(matches)).
		Msg("Resolved file pattern")

	return matches, nil
}
