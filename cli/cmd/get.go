package cmd

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dotenvy/pkg"
)

// maxSuggestions bounds the "did you mean" list of a failed lookup.
const maxSuggestions = 3

// Get writes the value of a single key.
type Get struct {
	Source `embed:""`

	Key string `arg:"" help:"Key to look up." name:"key"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	env, err := g.Load(ctx)
	if err != nil {
		return err
	}

	value, ok := env.Lookup(g.Key)
	if !ok {
		keys := slices.Sorted(maps.Keys(env.Flatten()))
		hint := suggest(g.Key, keys)

		cause := pkg.ErrKeyNotFound.Wrapf("%q", g.Key)
		if len(hint) > 0 {
			cause = cause.Wrapf("did you mean %q?", hint[0])
		}

		return ErrLookup.Wrap(cause).
			With(slog.Any("suggestions", hint))
	}

	return write(streamsFrom(ctx).Out, value+"\n")
}

// suggest returns up to maxSuggestions keys that fuzzy match key, best
// match first.
func suggest(key string, keys []string) []string {
	matches := fuzzy.Find(key, keys)

	hint := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		hint = append(hint, m.Str)
	}

	return hint
}
