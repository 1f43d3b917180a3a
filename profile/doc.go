// Package profile provides optional runtime profiling for fieldvar.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution tracing
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// From the command line, profile a batch evaluation of the nodal values of
// a variable:
//
//	fieldvar --pprof-mode cpu -m model.yaml nodal Ex
//
// Profiles are written to $XDG_CACHE_HOME/fieldvar/pprof unless
// --pprof-dir says otherwise. Inspect them with:
//
//	go tool pprof -http=: ~/.cache/fieldvar/pprof/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
