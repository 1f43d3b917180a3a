package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// debugBinary matches the default output name of the dlv debugger.
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// Prefix returns the base name of the running executable without its
// extension and leading dots. It names the per-user directories and
// prefixes environment variables. A dlv debug binary is reported as
// [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string { return prefix(executable()) })

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

func prefix(path string) string {
	base := filepath.Base(path)
	base = strings.TrimLeft(strings.TrimSuffix(base, filepath.Ext(base)), ".")

	if base == "" || debugBinary.MatchString(base) {
		return Name
	}

	return base
}

// ConfigDir returns the per-user configuration directory, such as
// $XDG_CONFIG_HOME/fieldvar.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string { return userDir(os.UserConfigDir, ".config") })

// CacheDir returns the per-user cache directory used for the REPL history
// and profiles, such as $XDG_CACHE_HOME/fieldvar.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string { return userDir(os.UserCacheDir, ".cache") })

// userDir returns [Prefix] inside the directory reported by base. If base
// fails, hidden is used inside the home directory, and failing that, the
// working directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
