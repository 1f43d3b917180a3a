// Package log provides a leveled structured logger based on [log/slog].
//
// A [Logger] is configured once with functional options and is immutable
// afterwards; [Logger.Wrap] and [Logger.With] derive new loggers. The zero
// Logger discards everything, so library types can embed one without
// requiring configuration.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("namespace built", slog.Int("entries", 12))
//
// In addition to the slog levels there is [LevelTrace], used for
// per-evaluation diagnostics such as compile cache lookups.
//
// The package-level functions ([Info], [Error], ...) write to a default
// logger on standard error, reconfigured with [Config].
package log
