package dotenv

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/ardnew/dotenvy/pkg"
)

// DefaultPath is the file loaded when no source is named: ".env" in the
// working directory.
const DefaultPath = ".env"

// LoadValues reads and parses the dotenv file at path.
//
// A file that does not exist yields an empty mapping and no error. A file
// that is not valid UTF-8 or fails to parse yields a *[LoadError]. Other I/O
// failures are wrapped with [pkg.ErrReadInput].
func LoadValues(path string, opts ...Option) (map[string]string, error) {
	o := makeOptions(opts...)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.logger.Debug("source not found, using empty mapping",
				slog.String("path", abs))

			return map[string]string{}, nil
		}

		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return Decode(abs, data, opts...)
}

// ReadValues reads all of r and parses it. source names r in errors.
func ReadValues(
	source string,
	r io.Reader,
	opts ...Option,
) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return Decode(source, data, opts...)
}

// Decode validates data as UTF-8 text and parses it. source names the data
// in errors.
func Decode(
	source string,
	data []byte,
	opts ...Option,
) (map[string]string, error) {
	o := makeOptions(opts...)

	if !utf8.Valid(data) {
		return nil, &LoadError{Kind: LoadDecode, Source: source}
	}

	text := string(data)

	values, err := Parse(text, opts...)
	if err != nil {
		var located *LocatedError
		if errors.As(err, &located) {
			return nil, &LoadError{
				Kind:    LoadParse,
				Source:  source,
				Located: located,
				Text:    text,
			}
		}

		return nil, err
	}

	o.logger.Debug("source loaded",
		slog.String("source", source),
		slog.Int("keys", len(values)))

	return values, nil
}

// Make loads the dotenv file at path into a new Environment overridden by
// override (which may be nil, or [Process] for the usual setup).
func Make(
	path string,
	override *Environment,
	opts ...Option,
) (*Environment, error) {
	values, err := LoadValues(path, opts...)
	if err != nil {
		return nil, err
	}

	return New(values, override), nil
}

// MakeSource parses text into a new Environment overridden by override.
// Parse failures are reported as a *[LoadError] so that they can be
// formatted against text.
func MakeSource(
	text string,
	override *Environment,
	opts ...Option,
) (*Environment, error) {
	values, err := Decode("<source>", []byte(text), opts...)
	if err != nil {
		return nil, err
	}

	return New(values, override), nil
}

// Export sets every key of the flattened chain in the process environment,
// in sorted key order. Keys that are already set are left alone unless
// overwrite is true.
func (e *Environment) Export(overwrite bool) error {
	flat := e.Flatten()

	var errs []error

	for _, key := range slices.Sorted(maps.Keys(flat)) {
		if _, set := os.LookupEnv(key); set && !overwrite {
			continue
		}

		if err := os.Setenv(key, flat[key]); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return pkg.ErrExport.Wrap(errs...)
	}

	return nil
}
