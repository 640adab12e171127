package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dotenvy/log"
)

// Check verifies the syntax of its input. Nothing is written on success.
type Check struct {
	Source `embed:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	env, err := c.Load(ctx)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "input ok",
		slog.String("command", commandName(ctx)),
		slog.Int("keys", len(env.Flatten())))

	return nil
}

// commandName returns the selected command path, e.g. "json".
func commandName(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Command()
	}

	return ""
}
