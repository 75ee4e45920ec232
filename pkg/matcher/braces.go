package matcher

import "strings"

// ExpandBraces expands a single top-level brace group in a glob
// pattern into one literal pattern per alternative, preserving the
// prefix and suffix around the group. Patterns without a brace group
// expand to themselves. Nested or additional groups are left alone.
func ExpandBraces(pattern string) []string {
	open := strings.Index(pattern, "{")
	if open < 0 {
		return []string{pattern}
	}
	close := strings.Index(pattern[open:], "}")
	if close < 0 {
		return []string{pattern}
	}
	close += open

	prefix := pattern[:open]
	suffix := pattern[close+1:]
	alternatives := strings.Split(pattern[open+1:close], ",")

	expanded := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		expanded = append(expanded, prefix+alt+suffix)
	}
	return expanded
}
