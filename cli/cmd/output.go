package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/log"
	"github.com/ardnew/dotenvy/pkg"
)

// JSON writes the merged input as a JSON object.
type JSON struct {
	Source `embed:""`

	Pretty bool `help:"Pretty print JSON."`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	env, err := j.Load(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(streamsFrom(ctx).Out)
	enc.SetEscapeHTML(false)

	if j.Pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(env.Flatten()); err != nil {
		return ErrOutput.Wrap(pkg.ErrJSONMarshal.Wrap(err)).
			With(slog.String("format", "json"))
	}

	return nil
}

// YAML writes the merged input as a YAML mapping.
type YAML struct {
	Source `embed:""`

	Indent int `default:"2" help:"Indent width for YAML output, or 0 for flow style."`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	env, err := y.Load(ctx)
	if err != nil {
		return err
	}

	var opts []yaml.EncodeOption
	if y.Indent > 0 {
		opts = append(opts, yaml.Indent(y.Indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, env.Flatten(), opts...)
	if err != nil {
		return ErrOutput.Wrap(pkg.ErrYAMLMarshal.Wrap(err)).
			With(slog.String("format", "yaml"))
	}

	return write(streamsFrom(ctx).Out, string(data))
}

// Env writes the merged input as a dotenv document.
type Env struct {
	Source `embed:""`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) error {
	env, err := e.Load(ctx)
	if err != nil {
		return err
	}

	data, err := dotenv.Marshal(validKeys(ctx, env.Flatten()))
	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", "dotenv"))
	}

	return write(streamsFrom(ctx).Out, string(data))
}

// Export writes the merged input as POSIX shell export statements, suitable
// for eval "$(dotenvy export)".
type Export struct {
	Source `embed:""`
}

// Run executes the export command.
func (x *Export) Run(ctx context.Context) error {
	env, err := x.Load(ctx)
	if err != nil {
		return err
	}

	values := validKeys(ctx, env.Flatten())

	var sb strings.Builder

	for _, key := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(&sb, "export %s=%s\n", key, shellQuote(values[key]))
	}

	return write(streamsFrom(ctx).Out, sb.String())
}

// shellQuote returns s in single quotes, with embedded single quotes
// escaped for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// validKeys drops keys that cannot be written as dotenv or shell
// identifiers. Only the process environment can supply such keys.
func validKeys(ctx context.Context, values map[string]string) map[string]string {
	maps.DeleteFunc(values, func(key, _ string) bool {
		if dotenv.ValidKey(key) {
			return false
		}

		log.DebugContext(ctx, "skipping key", slog.String("key", key))

		return true
	})

	return values
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return ErrOutput.Wrap(err)
	}

	return nil
}
