package matcher

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreScope holds the compiled rules of one ignore file, anchored at
// the directory (relative to the walk root) that contains it.
type ignoreScope struct {
	dir   string
	rules *gitignore.GitIgnore
}

// ignoreSet layers version-control ignore rules: the global ignore
// file, the repository-local excludes, and every .gitignore found
// while walking the tree.
type ignoreSet struct {
	scopes []ignoreScope
}

// newIgnoreSet seeds the set with the root-level ignore sources.
func newIgnoreSet(root string) *ignoreSet {
	s := &ignoreSet{}

	// Global ignore config, per git convention.
	s.addFile("", filepath.Join(xdg.ConfigHome, "git", "ignore"))

	// Repository-local excludes.
	s.addFile("", filepath.Join(root, ".git", "info", "exclude"))

	// Root ignore file; nested ones are picked up during the walk.
	s.addFile("", filepath.Join(root, ".gitignore"))

	return s
}

// addFile compiles an ignore file and anchors its rules at dir. Missing
// or unreadable files are silently skipped, matching git behavior.
func (s *ignoreSet) addFile(dir, ignorePath string) {
	if _, err := os.Stat(ignorePath); err != nil {
		return
	}
	rules, err := gitignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		return
	}
	s.scopes = append(s.scopes, ignoreScope{dir: dir, rules: rules})
}

// Ignored reports whether the path (relative to the walk root, slash
// separated) is excluded by any scope that contains it.
func (s *ignoreSet) Ignored(rel string, isDir bool) bool {
	for _, scope := range s.scopes {
		sub := rel
		if scope.dir != "" {
			if !strings.HasPrefix(rel, scope.dir+"/") {
				continue
			}
			sub = strings.TrimPrefix(rel, scope.dir+"/")
		}
		if scope.rules.MatchesPath(sub) {
			return true
		}
		// Directory patterns like "build/" only match with the
		// trailing separator present.
		if isDir && scope.rules.MatchesPath(sub+"/") {
			return true
		}
	}
	return false
}

// hidden reports whether a path component makes the entry hidden per
// ignore-tool convention.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// relSlash converts a root-relative path to slash form for matching.
func relSlash(root, full string) (string, error) {
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return "", err
	}
	return path.Clean(filepath.ToSlash(rel)), nil
}
