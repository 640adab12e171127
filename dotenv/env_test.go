package dotenv

import (
	"maps"
	"slices"
	"testing"
)

// threeLayers builds base < shared < private.
func threeLayers() *Environment {
	private := New(map[string]string{"SECRET": "private", "BOTH": "private"}, nil)
	shared := New(map[string]string{"SHARED": "shared", "BOTH": "shared"}, private)

	return New(map[string]string{
		"BASE":   "base",
		"BOTH":   "base",
		"SECRET": "base",
	}, shared)
}

// TestEnvironment_ThreeLayers verifies override precedence across a
// three-layer chain.
func TestEnvironment_ThreeLayers(t *testing.T) {
	env := threeLayers()

	tests := []struct {
		key   string
		want  string
		found bool
	}{
		{key: "BASE", want: "base", found: true},
		{key: "SHARED", want: "shared", found: true},
		{key: "SECRET", want: "private", found: true},
		{key: "BOTH", want: "private", found: true},
		{key: "MISSING", want: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, found := env.Lookup(tt.key)
			if got != tt.want || found != tt.found {
				t.Errorf("Lookup(%q) = %q, %v, want %q, %v",
					tt.key, got, found, tt.want, tt.found)
			}
		})
	}

	if got := env.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
}

// TestEnvironment_FlattenAgreesWithLookup verifies Flatten and Lookup agree
// on every key for chains of every depth.
func TestEnvironment_FlattenAgreesWithLookup(t *testing.T) {
	layers := []map[string]string{
		{"A": "0", "B": "0", "C": "0"},
		{"B": "1", "D": "1"},
		{},
		{"A": "3", "E": "3"},
		{"C": "4", "D": "4", "F": "4"},
	}

	keys := []string{"A", "B", "C", "D", "E", "F", "G"}

	for depth := 0; depth <= len(layers); depth++ {
		var env *Environment

		for i := depth - 1; i >= 0; i-- {
			env = New(layers[i], env)
		}

		flat := env.Flatten()

		for _, key := range keys {
			value, found := env.Lookup(key)
			flatValue, flatFound := flat[key]

			if value != flatValue || found != flatFound {
				t.Errorf("depth %d: Lookup(%q) = %q, %v; Flatten()[%q] = %q, %v",
					depth, key, value, found, key, flatValue, flatFound)
			}
		}
	}
}

// TestEnvironment_Flatten verifies the merged mapping of a chain.
func TestEnvironment_Flatten(t *testing.T) {
	want := map[string]string{
		"BASE":   "base",
		"SHARED": "shared",
		"SECRET": "private",
		"BOTH":   "private",
	}

	if got := threeLayers().Flatten(); !maps.Equal(got, want) {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

// TestEnvironment_Immutable verifies that a chain does not share state with
// the mappings it was built from or the mappings it returns.
func TestEnvironment_Immutable(t *testing.T) {
	values := map[string]string{"A": "1"}
	env := New(values, nil)

	values["A"] = "changed"
	env.Flatten()["A"] = "changed"
	env.Values()["A"] = "changed"

	if got := env.Get("A"); got != "1" {
		t.Errorf("Get(A) = %q, want %q", got, "1")
	}
}

// TestEnvironment_Nil verifies that a nil chain behaves as empty.
func TestEnvironment_Nil(t *testing.T) {
	var env *Environment

	if _, found := env.Lookup("A"); found {
		t.Error("Lookup on nil chain found a key")
	}

	if got := env.Flatten(); len(got) != 0 {
		t.Errorf("Flatten() = %q, want empty", got)
	}

	if env.Override() != nil || env.Depth() != 0 || len(env.Values()) != 0 {
		t.Error("nil chain is not empty")
	}
}

// TestEnvironment_LongChain verifies traversal of a deep chain.
func TestEnvironment_LongChain(t *testing.T) {
	var env *Environment

	for i := range 100000 {
		env = New(map[string]string{"N": string(rune('a' + i%26))}, env)
	}

	if got := env.Depth(); got != 100000 {
		t.Fatalf("Depth() = %d, want 100000", got)
	}

	// the first layer built is the deepest override
	if got := env.Get("N"); got != "a" {
		t.Errorf("Get(N) = %q, want %q", got, "a")
	}
}

// TestProcess verifies the process environment layer.
func TestProcess(t *testing.T) {
	t.Setenv("DOTENVY_TEST_PROCESS", "a=b")

	env := Process()

	if got := env.Get("DOTENVY_TEST_PROCESS"); got != "a=b" {
		t.Errorf("Get() = %q, want %q", got, "a=b")
	}
}

// TestEnviron verifies conversion of KEY=VALUE entries.
func TestEnviron(t *testing.T) {
	got := environ([]string{"A=1", "B=x=y", "C=", "junk"})
	want := map[string]string{"A": "1", "B": "x=y", "C": ""}

	if !maps.Equal(got, want) {
		t.Errorf("environ() = %q, want %q", got, want)
	}

	if keys := slices.Sorted(maps.Keys(got)); len(keys) != 3 {
		t.Errorf("keys = %q", keys)
	}
}
