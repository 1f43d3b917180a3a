// Package cmd implements the fieldvar subcommands: evaluating a variable at
// a point or at mesh vertices, listing a model's names, writing a default
// configuration file, re-encoding a model and the interactive REPL.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file written by [Init].
	ConfigIdentifier = "config"
)
