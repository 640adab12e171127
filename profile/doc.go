// Package profile provides optional runtime profiling for dotenvy.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//	dotenvy --pprof-mode cpu check -i .env
//	go tool pprof ~/.cache/dotenvy/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
