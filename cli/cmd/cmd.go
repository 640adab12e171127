package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/log"
	"github.com/ardnew/dotenvy/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok {
		return nil
	}

	return ktx
}

// Streams are the standard streams used by commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type streamsKey struct{}

// WithStreams returns a new context.Context whose commands read and write
// the given streams. Nil streams default to the process's own.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source selects the dotenv inputs of a command.
type Source struct {
	Input   []string `help:"Input file, or '-' for stdin. Later inputs override earlier ones. Defaults to .env in the working directory." placeholder:"FILE" short:"i"`
	Process bool     `help:"Override input with the process environment."                                                                                    short:"e"`
}

// Load reads every input and returns them as a chain: each input overrides
// the ones before it, and the process environment, if selected, overrides
// them all.
//
// With no inputs, [dotenv.DefaultPath] is loaded if it exists. A named file
// that does not exist is an error.
func (s Source) Load(ctx context.Context) (*dotenv.Environment, error) {
	opts := []dotenv.Option{dotenv.WithLogger(log.Default())}

	var top *dotenv.Environment
	if s.Process {
		top = dotenv.Process()
	}

	if len(s.Input) == 0 {
		return dotenv.Make(dotenv.DefaultPath, top, opts...)
	}

	inputs := uniqueInputs(s.Input)
	layers := make([]map[string]string, 0, len(inputs))

	for _, input := range inputs {
		values, err := readInput(ctx, input, opts...)
		if err != nil {
			return nil, err
		}

		layers = append(layers, values)
	}

	for _, values := range slices.Backward(layers) {
		top = dotenv.New(values, top)
	}

	log.DebugContext(ctx, "inputs loaded",
		slog.Any("inputs", inputs),
		slog.Int("layers", top.Depth()))

	return top, nil
}

func readInput(
	ctx context.Context,
	input string,
	opts ...dotenv.Option,
) (map[string]string, error) {
	if input == stdinSource {
		return dotenv.ReadValues(input, streamsFrom(ctx).In, opts...)
	}

	if _, err := os.Stat(input); err != nil {
		return nil, ErrLoad.Wrap(pkg.ErrReadInput.Wrap(err)).
			With(slog.String("input", input))
	}

	return dotenv.LoadValues(input, opts...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueInputs removes repeated inputs, keeping the last occurrence of each
// so that precedence follows the final position on the command line. Files
// are compared by device and inode when possible, otherwise by resolved
// path.
func uniqueInputs(inputs []string) []string {
	seenFile := make(map[fileKey]struct{})
	seenPath := make(map[string]struct{})

	unique := make([]string, 0, len(inputs))

	for _, input := range slices.Backward(inputs) {
		id := input
		if input != stdinSource {
			id = resolvePath(input)

			if key, ok := statFileKey(id); ok {
				if _, dup := seenFile[key]; dup {
					continue
				}

				seenFile[key] = struct{}{}
			}
		}

		if _, dup := seenPath[id]; dup {
			continue
		}

		seenPath[id] = struct{}{}
		unique = append(unique, input)
	}

	slices.Reverse(unique)

	return unique
}

// resolvePath returns the absolute path of path with symlinks resolved, or
// path itself if it cannot be resolved.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}

	return resolved
}

// statFileKey returns the fileKey of the file at path.
// Returns false if the file cannot be stat'd or the underlying Sys() data is
// not of type *syscall.Stat_t.
func statFileKey(path string) (key fileKey, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
