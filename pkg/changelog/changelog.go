// Package changelog collects per-hook run outcomes and flushes them to
// PRECOMMIT_CHANGELOG.md at the end of a run. The accumulator is
// passed explicitly through the run; there is no package-level
// instance.
package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// FileName is the changelog location relative to the working tree root.
const FileName = "PRECOMMIT_CHANGELOG.md"

// Entry aggregates what one hook did during a run.
type Entry struct {
	HookID        string
	Changes       []string
	FilesChecked  []string
	FilesModified []string
}

// Changelog is the run-lifetime aggregation sink. Access today is
// strictly sequential; the mutex guards against future parallel hook
// execution.
type Changelog struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	hasChanges bool
}

// New returns an empty changelog.
func New() *Changelog {
	return &Changelog{entries: make(map[string]*Entry)}
}

func (c *Changelog) entry(hookID string) *Entry {
	e, ok := c.entries[hookID]
	if !ok {
		e = &Entry{HookID: hookID}
		c.entries[hookID] = e
	}
	return e
}

// RecordChange records a human-readable change description for a hook.
func (c *Changelog) RecordChange(hookID, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(hookID)
	e.Changes = append(e.Changes, message)
	c.hasChanges = true
}

// RecordFileChecked records that a hook examined a file. Both the
// dispatcher and the hook itself report checks, so duplicates are
// collapsed here.
func (c *Changelog) RecordFileChecked(hookID, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(hookID)
	for _, existing := range e.FilesChecked {
		if existing == path {
			return
		}
	}
	e.FilesChecked = append(e.FilesChecked, path)
}

// RecordFileModified records that a hook mutated a file.
func (c *Changelog) RecordFileModified(hookID, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(hookID)
	e.FilesModified = append(e.FilesModified, path)
	c.hasChanges = true
}

// HasChanges reports whether anything worth writing was recorded.
func (c *Changelog) HasChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasChanges
}

// Entries returns the recorded entries sorted by hook id.
func (c *Changelog) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HookID < out[j].HookID })
	return out
}

// Render produces the markdown section for this run.
func (c *Changelog) Render(now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Pre-commit Changes %s\n\n", now.Format("2006-01-02 15:04:05"))

	for _, e := range c.Entries() {
		if len(e.Changes) == 0 && len(e.FilesModified) == 0 {
			continue
		}

		fmt.Fprintf(&b, "## Hook: %s\n\n", e.HookID)

		if len(e.Changes) > 0 {
			b.WriteString("### Changes:\n")
			for _, change := range e.Changes {
				fmt.Fprintf(&b, "- %s\n", change)
			}
			b.WriteString("\n")
		}

		if len(e.FilesModified) > 0 {
			b.WriteString("### Modified Files:\n")
			for _, file := range e.FilesModified {
				fmt.Fprintf(&b, "- `%s`\n", file)
			}
			b.WriteString("\n")
		}

		modified := make(map[string]bool, len(e.FilesModified))
		for _, file := range e.FilesModified {
			modified[file] = true
		}
		var unmodified []string
		for _, file := range e.FilesChecked {
			if !modified[file] {
				unmodified = append(unmodified, file)
			}
		}
		if len(unmodified) > 0 {
			b.WriteString("### Checked Files (no changes):\n")
			for _, file := range unmodified {
				fmt.Fprintf(&b, "- `%s`\n", file)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// WriteIfChanged flushes the changelog under root when anything was
// recorded, prepending the new section to any existing content.
func (c *Changelog) WriteIfChanged(root string) error {
	logger := logging.GetLogger("changelog")

	if !c.HasChanges() {
		logger.Debug().Msg("No changes to write to changelog")
		return nil
	}

	content := c.Render(time.Now())
	path := filepath.Join(root, FileName)

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read existing changelog %s", path)
	}

	full := content
	if len(existing) > 0 {
		full = content + "\n---\n\n" + string(existing)
	}

	if err := os.WriteFile(path, []byte(full), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write changelog")
	}

	logger.Info().Str("path", path).Msg("Wrote changelog")
	return nil
}
