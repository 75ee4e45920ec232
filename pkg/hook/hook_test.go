package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "clean", Clean.String())
	assert.Equal(t, "violations", Violations.String())
	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestResultFailed(t *testing.T) {
	assert.False(t, Result{Outcome: Clean}.Failed())
	assert.True(t, Result{Outcome: Violations}.Failed())
	assert.True(t, Result{Outcome: Changed}.Failed())
}

func TestMergeKeepsWorstOutcome(t *testing.T) {
	r := Result{Outcome: Clean}
	r.Merge(Result{Outcome: Clean})
	assert.Equal(t, Clean, r.Outcome)

	r.Merge(Result{Outcome: Changed, ChangedFiles: []string{"a.txt"}})
	assert.Equal(t, Changed, r.Outcome)
	assert.Equal(t, []string{"a.txt"}, r.ChangedFiles)

	// Once non-clean, merging clean results does not reset it.
	r.Merge(Result{Outcome: Clean})
	assert.Equal(t, Changed, r.Outcome)
}

func TestMergeAccumulatesViolations(t *testing.T) {
	r := Result{}
	r.Merge(Result{Outcome: Violations, Violations: []string{"too large: a.bin"}})
	r.Merge(Result{Outcome: Violations, Violations: []string{"too large: b.bin"}})
	assert.Len(t, r.Violations, 2)
	assert.Equal(t, Violations, r.Outcome)
}

func TestNewContext(t *testing.T) {
	ctx := NewContext(true, false)
	assert.True(t, ctx.DryRun)
	assert.False(t, ctx.Debug)
	assert.NotNil(t, ctx.Changelog)
}
