package dotenv

import (
	"maps"
	"os"
	"strings"
)

// Environment is one layer of a configuration: its own mapping plus an
// optional override layer that takes precedence over it.
//
// An Environment owns its override. Chains are built bottom-up by passing
// a freshly constructed layer as the override of the next, so a chain is
// always finite and acyclic. Environments are immutable after construction
// and safe for concurrent use.
type Environment struct {
	values   map[string]string
	override *Environment
}

// New returns an Environment holding a copy of values, overridden by
// override (which may be nil). The new Environment takes ownership of
// override; it must not be passed to another call to New.
func New(values map[string]string, override *Environment) *Environment {
	own := maps.Clone(values)
	if own == nil {
		own = map[string]string{}
	}

	return &Environment{values: own, override: override}
}

// Process returns an Environment holding the current process environment.
func Process() *Environment {
	return New(environ(os.Environ()), nil)
}

// environ converts "KEY=VALUE" entries to a map. Entries without "=" are
// ignored.
func environ(list []string) map[string]string {
	result := make(map[string]string, len(list))

	for _, entry := range list {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			result[key] = value
		}
	}

	return result
}

// Override returns the layer that takes precedence over e, or nil.
func (e *Environment) Override() *Environment {
	if e == nil {
		return nil
	}

	return e.override
}

// Values returns a copy of e's own mapping, ignoring overrides.
func (e *Environment) Values() map[string]string {
	if e == nil {
		return map[string]string{}
	}

	return maps.Clone(e.values)
}

// Depth returns the number of layers in the chain starting at e.
func (e *Environment) Depth() int {
	n := 0

	for ; e != nil; e = e.override {
		n++
	}

	return n
}

// layers returns the chain from e (lowest priority) to its deepest override
// (highest priority).
func (e *Environment) layers() []*Environment {
	var chain []*Environment

	for ; e != nil; e = e.override {
		chain = append(chain, e)
	}

	return chain
}

// Lookup returns the value of key. The deepest override that defines key
// wins; a layer's own mapping is consulted only when every override above it
// is silent on key.
func (e *Environment) Lookup(key string) (string, bool) {
	chain := e.layers()

	for i := len(chain) - 1; i >= 0; i-- {
		if value, ok := chain[i].values[key]; ok {
			return value, true
		}
	}

	return "", false
}

// Get returns the value of key, or the empty string if it is not defined.
func (e *Environment) Get(key string) string {
	value, _ := e.Lookup(key)

	return value
}

// Flatten merges the chain into a single mapping. Keys defined by an
// override replace those of the layers below it, so Flatten()[k] always
// agrees with Lookup(k).
func (e *Environment) Flatten() map[string]string {
	merged := make(map[string]string)

	for _, layer := range e.layers() {
		maps.Copy(merged, layer.values)
	}

	return merged
}
