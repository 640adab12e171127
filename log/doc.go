// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured with functional options at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("loaded", slog.String("path", ".env"), slog.Int("keys", 3))
//
// The zero [Logger] discards everything, so packages can accept a Logger by
// option and remain silent unless one is supplied.
//
// A process-wide default logger backs the package-level functions
// ([Debug], [Info], [Warn], [Error] and their Context variants). It is
// reconfigured with [Config].
//
// # Pretty Output
//
// With [WithPretty] enabled, records are rendered with terminal styles from
// [github.com/charmbracelet/lipgloss]. Styles degrade to plain text when the
// output is not a terminal.
package log
