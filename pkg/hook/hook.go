// Package hook defines the contract every built-in hook satisfies: an
// execution context, a typed result, and the Hook interface. Hooks
// never terminate the process themselves; the outermost CLI boundary
// maps results to exit codes.
package hook

import "github.com/arthur-debert/prehook/pkg/changelog"

// Outcome classifies what a hook run found or did.
type Outcome int

const (
	// Clean means no violations were found and no files were changed.
	Clean Outcome = iota
	// Violations means a check found problems it cannot fix.
	Violations
	// Changed means a fixer modified (or, in dry-run, would modify) files.
	Changed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Clean:
		return "clean"
	case Violations:
		return "violations"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Result is the typed outcome of a hook run, replacing exit-code
// control flow inside the engine.
type Result struct {
	Outcome      Outcome
	Violations   []string
	ChangedFiles []string
}

// Merge folds another result into this one, keeping the "worst"
// outcome. Changed and Violations both dominate Clean; their relative
// order does not matter since either makes an enforcing run fail.
func (r *Result) Merge(other Result) {
	if other.Outcome != Clean && r.Outcome == Clean {
		r.Outcome = other.Outcome
	}
	r.Violations = append(r.Violations, other.Violations...)
	r.ChangedFiles = append(r.ChangedFiles, other.ChangedFiles...)
}

// Failed reports whether an enforcing-mode run should exit non-zero.
func (r Result) Failed() bool {
	return r.Outcome != Clean
}

// Context carries the execution mode and the aggregation sink. It is
// passed explicitly to every hook call.
type Context struct {
	DryRun    bool
	Debug     bool
	Changelog *changelog.Changelog
}

// NewContext builds a context with a fresh changelog.
func NewContext(dryRun, debug bool) *Context {
	return &Context{DryRun: dryRun, Debug: debug, Changelog: changelog.New()}
}

// Hook is a named check or fixer applied to a resolved set of paths.
// Directories in paths are expanded by an ignore-aware walk. The hook
// must record each concrete file it examines, record descriptions for
// violations or changes, and record modified files. In dry-run mode no
// file may be mutated; the same conditions are reported through the
// changelog and the result.
type Hook interface {
	ID() string
	Run(ctx *Context, paths []string) (Result, error)
}
