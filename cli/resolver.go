package cli

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/log"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from a
// dotenv file:
//
//	LOG_LEVEL=debug
//	LOG_PRETTY=false
//
// Command-line flags override config file values. A config file that fails
// to parse is reported with its diagnostic.
func resolve(r io.Reader) (kong.Resolver, error) {
	source := configPath()
	if f, ok := r.(interface{ Name() string }); ok {
		source = f.Name()
	}

	values, err := dotenv.ReadValues(source, r,
		dotenv.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	return config(values), nil
}

// config implements [kong.Resolver] over a parsed dotenv mapping.
type config map[string]string

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A flag named "log-level" is matched
// by the key "LOG_LEVEL"; flag names themselves are not valid dotenv keys.
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[envKey(flag.Name)]; ok {
		return value, nil
	}

	return nil, nil
}

// envKey converts a flag name to its environment variable style key.
func envKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
