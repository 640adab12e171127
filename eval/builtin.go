package eval

import (
	"maps"
	"os"
	"runtime"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/dotenvy/dotenv"
)

// platform identifies the host operating system and architecture.
type platform struct {
	OS   string
	Arch string
}

// bind returns the built-in variables and functions for an expression
// evaluated against chain. List helpers take the key of a PATH-like value
// rather than the value itself.
func bind(chain *dotenv.Environment) map[string]any {
	stack := layers(chain)

	return map[string]any{
		"env": chain.Get,
		"defined": func(key string) bool {
			_, ok := chain.Lookup(key)

			return ok
		},

		"layers": stack,
		"origin": func(key string) int { return origin(stack, key) },

		"list": func(key string) []string {
			return slices.Collect(munge(chain.Get(key)).Filtered())
		},
		"prefix": func(key string, item ...string) string {
			return munge(chain.Get(key), mung.WithPrefixItems(item...)).String()
		},
		"prefixif": func(key string, item ...string) string {
			return munge(chain.Get(key),
				mung.WithPrefixItems(item...),
				mung.WithFilter(isDir),
			).String()
		},
		"remove": func(key string, item ...string) string {
			return munge(chain.Get(key), mung.WithRemoveItems(item...)).String()
		},

		"platform": platform{OS: runtime.GOOS, Arch: runtime.GOARCH},
		"exists":   exists,
		"isDir":    isDir,
	}
}

// Builtins returns the sorted names of the built-in variables and functions.
func Builtins() []string {
	return slices.Sorted(maps.Keys(bind(nil)))
}

// layers returns the own mapping of every layer in chain, lowest priority
// first.
func layers(chain *dotenv.Environment) []map[string]string {
	stack := make([]map[string]string, 0, chain.Depth())

	for layer := chain; layer != nil; layer = layer.Override() {
		stack = append(stack, layer.Values())
	}

	return stack
}

// origin returns the index into stack of the layer that supplies key, or -1
// when no layer defines it.
func origin(stack []map[string]string, key string) int {
	for i, values := range slices.Backward(stack) {
		if _, ok := values[key]; ok {
			return i
		}
	}

	return -1
}

// munge splits a PATH-like value into items, dropping duplicates.
func munge(value string, opts ...mung.Option[mung.Config]) mung.Config {
	return mung.Make(append([]mung.Option[mung.Config]{
		mung.WithSubjectItems(value),
		mung.WithDelim(string(os.PathListSeparator)),
	}, opts...)...)
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
