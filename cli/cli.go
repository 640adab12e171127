package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenvy/cli/cmd"
	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/log"
	"github.com/ardnew/dotenvy/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// CLI is the top-level command-line interface for dotenvy.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Check  cmd.Check  `cmd:"" help:"Check syntax of input."`
	JSON   cmd.JSON   `cmd:"" help:"Convert input to JSON."                     name:"json"`
	YAML   cmd.YAML   `cmd:"" help:"Convert input to YAML."                     name:"yaml"`
	Get    cmd.Get    `cmd:"" help:"Print the value of a key."`
	Env    cmd.Env    `cmd:"" help:"Print the merged input as dotenv."`
	Export cmd.Export `cmd:"" help:"Print shell export statements for input."`
	Eval   cmd.Eval   `cmd:"" help:"Evaluate an expression against input."`
}

// configPath returns the path of the configuration file.
func configPath() string {
	return filepath.Join(pkg.ConfigDir(), baseConfig)
}

// Run executes the dotenvy CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{"version": pkg.Name + " " + pkg.Version()}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// TextUnmarshaler on logFormat/logLevel applies those flags as they are
	// parsed. The pre-scan also catches boolean flags like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configPath()),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Apply the remaining logger settings, e.g. TimeLayout.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

// Report writes err for the user. Load failures are written to w as is,
// which for a parse failure is the formatted diagnostic. Anything else is
// logged.
func Report(w io.Writer, err error) {
	var loadErr *dotenv.LoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintln(w, loadErr)

		return
	}

	log.Error("run failed", slog.Any("error", err))
}
