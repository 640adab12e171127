package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/dotenvy/eval"
	"github.com/ardnew/dotenvy/pkg"
)

// Eval evaluates an expression against the merged input.
type Eval struct {
	Source `embed:""`

	Expr     string `arg:"" help:"Expression to evaluate. Keys of the input are variables." name:"expr" optional:""`
	Builtins bool   `help:"List the built-in variables and functions instead." short:"b"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	if e.Builtins {
		return write(streamsFrom(ctx).Out, strings.Join(eval.Builtins(), "\n")+"\n")
	}

	if e.Expr == "" {
		return ErrEval.Wrap(pkg.ErrInvalidInput.Wrapf("empty expression"))
	}

	env, err := e.Load(ctx)
	if err != nil {
		return err
	}

	result, err := eval.Evaluate(e.Expr, env)
	if err != nil {
		return ErrEval.Wrap(err).
			With(slog.String("expr", e.Expr))
	}

	return write(streamsFrom(ctx).Out, eval.FormatResult(result)+"\n")
}
