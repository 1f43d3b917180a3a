// Package cli contains the command line interface for fieldvar.
//
// # Usage
//
//	fieldvar -m model.yaml eval Ex --at 0.5,0.5
//	fieldvar -m model.yaml nodal Ex -o json
//	fieldvar -m model.yaml names -l
//	fieldvar -m model.yaml repl --at 0.5,0.5
//
// Several -m files are read as one YAML document, separated by newlines,
// and "-" reads the model from stdin.
//
// # Configuration
//
// Flags may also come from $XDG_CONFIG_HOME/fieldvar/config.yaml, from a
// JSON file next to it with the same base name, or from environment
// variables such as FIELDVAR_LOG_LEVEL. The init command writes the
// current flag values to the YAML file. Its keys are flag names with
// underscores for hyphens; a mapping keyed by a command name scopes flags
// to that command:
//
//	log_level: debug
//	model: [model.yaml]
//	nodal:
//	  format: json
//
// Command-line flags override every other source.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
//   - --pprof-mode: enable profiling (see [profile.Modes])
//   - --pprof-dir: profile output directory (default:
//     $XDG_CACHE_HOME/fieldvar/pprof)
package cli
