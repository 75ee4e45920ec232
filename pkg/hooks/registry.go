// Package hooks holds the built-in hooks shipped with the runner and
// the registry through which the dispatcher finds them.
package hooks

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/prehook/pkg/hook"
)

// Factory builds a hook instance from its manifest arguments. Most
// built-ins ignore the arguments; check-added-large-files reads its
// size limit from them.
type Factory func(args []string) (hook.Hook, error)

var registry = make(map[string]Factory)

// Register adds a built-in hook factory under its id. Called from
// init functions; a duplicate id is a programming error.
func Register(id string, factory Factory) {
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("hook %q registered twice", id))
	}
	registry[id] = factory
}

// Lookup returns the factory for a built-in hook id.
func Lookup(id string) (Factory, bool) {
	f, ok := registry[id]
	return f, ok
}

// IsBuiltin reports whether the id names a built-in hook.
func IsBuiltin(id string) bool {
	_, ok := registry[id]
	return ok
}

// IDs returns the sorted list of registered built-in hook ids.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
