// Package cli contains the command line interface for dotenvy.
//
// # Usage
//
//	dotenvy check [-i FILE]...        check syntax, print diagnostics
//	dotenvy json [-i FILE]... [--pretty]
//	dotenvy yaml [-i FILE]... [--indent N]
//	dotenvy get KEY [-i FILE]...
//	dotenvy env [-i FILE]... [-e]     print the merged mapping as dotenv
//	dotenvy export [-i FILE]... [-e]  print shell export statements
//	dotenvy eval EXPR [-i FILE]... [-e]
//
// Each -i names a dotenv file, or "-" for standard input. Later inputs
// override earlier ones, and -e places the process environment above all
// of them. Without -i, ".env" in the working directory is used if present.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn or error
//   - --log-format: json or text
//   - --log-time-layout: a Go time layout or a name such as RFC3339
//   - --[no-]log-caller: include the caller's source location
//   - --[no-]log-pretty: colorize log records
//
// # Configuration File
//
// Defaults for any flag may be set in a dotenv file at
// $XDG_CONFIG_HOME/dotenvy/config. A flag is matched by its name, or by the
// name in upper case with "-" replaced by "_":
//
//	LOG_LEVEL=debug
//	LOG_PRETTY=false
//
// # Profiling Options
//
// Only available when built with the pprof build tag:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread or trace
//   - --pprof-dir: output directory (default ~/.cache/dotenvy/pprof)
package cli
