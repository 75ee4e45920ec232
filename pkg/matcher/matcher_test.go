package matcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prehook/pkg/errors"
)

func TestExpandBraces(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "two alternatives",
			pattern: "**/*.{rs,py}",
			want:    []string{"**/*.rs", "**/*.py"},
		},
		{
			name:    "three alternatives",
			pattern: "src/{a,b,c}.go",
			want:    []string{"src/a.go", "src/b.go", "src/c.go"},
		},
		{
			name:    "no braces is a singleton",
			pattern: "**/*.go",
			want:    []string{"**/*.go"},
		},
		{
			name:    "empty pattern",
			pattern: "",
			want:    []string{""},
		},
		{
			name:    "unclosed brace left alone",
			pattern: "**/*.{rs",
			want:    []string{"**/*.{rs"},
		},
		{
			name:    "single alternative",
			pattern: "*.{go}",
			want:    []string{"*.go"},
		},
		{
			name:    "only first group expanded",
			pattern: "{a,b}/{c,d}.txt",
			want:    []string{"a/{c,d}.txt", "b/{c,d}.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandBraces(tt.pattern))
		})
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestResolveBracePatternWithGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.rs", "fn main() {}\n")
	writeFile(t, root, "b.py", "print('hi')\n")
	writeFile(t, root, "c.txt", "text\n")
	writeFile(t, root, ".gitignore", "build/\n")
	writeFile(t, root, "build/d.rs", "fn ignored() {}\n")

	m, err := New("**/*.{rs,py}")
	require.NoError(t, err)

	files, err := m.Resolve(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.rs", "b.py"}, files)
}

func TestResolveNestedGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/keep.go", "package main\n")
	writeFile(t, root, "src/.gitignore", "generated.go\n")
	writeFile(t, root, "src/generated.go", "package main\n")

	m, err := New("**/*.go")
	require.NoError(t, err)

	files, err := m.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("src", "keep.go")}, files)
}

func TestResolveRepoLocalExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "kept.md", "# hi\n")
	writeFile(t, root, "scratch.md", "# scratch\n")
	writeFile(t, root, ".git/info/exclude", "scratch.md\n")

	m, err := New("**/*.md")
	require.NoError(t, err)

	files, err := m.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept.md"}, files)
}

func TestResolveSkipsHiddenFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "visible.txt", "x\n")
	writeFile(t, root, ".hidden.txt", "x\n")
	writeFile(t, root, ".config/inner.txt", "x\n")

	m, err := New("**/*.txt")
	require.NoError(t, err)

	files, err := m.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, files)
}

func TestResolveEmptyMatchSetIsNotAnError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "x\n")

	m, err := New("**/*.nomatch")
	require.NoError(t, err)

	files, err := m.Resolve(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveNoPatternYieldsSentinel(t *testing.T) {
	m, err := New("")
	require.NoError(t, err)

	files, err := m.Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, files)
}

func TestNewInvalidPattern(t *testing.T) {
	_, err := New("[unterminated")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMatchPattern))
}

func TestMatchesAcceptsAbsolutePathAnchor(t *testing.T) {
	// "**/*.rs" cannot match the bare relative name "a.rs", but the
	// absolute path always carries separators, so root-level files
	// still match. Both anchors are tried on purpose.
	m, err := New("**/*.rs")
	require.NoError(t, err)

	assert.True(t, m.Matches("a.rs", "/work/repo/a.rs"))
	assert.True(t, m.Matches("src/lib.rs", "/work/repo/src/lib.rs"))
	assert.False(t, m.Matches("a.go", "/work/repo/a.go"))
}

func TestResolveWalkOrderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.go", "package z\n")
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "mid/m.go", "package m\n")

	m, err := New("**/*.go")
	require.NoError(t, err)

	first, err := m.Resolve(root)
	require.NoError(t, err)
	second, err := m.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
