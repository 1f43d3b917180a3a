package lang

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// globalCache stores compiled expressions keyed by the xxh3 hash of their
// source text.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// entry holds the result of compiling one distinct source string.
type entry struct {
	once   sync.Once
	source string
	result *compiled
	err    error
}

func compileCached(source string, o options) (*compiled, error) {
	key := xxh3.HashString(source)

	value, cacheHit := globalCache.LoadOrStore(key, &entry{source: source})

	e, ok := value.(*entry)
	if !ok {
		return nil, ErrCompile.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	// Hash collisions fall back to an uncached compile.
	if e.source != source {
		o.logger.Trace("compile cache collision",
			slog.String("source_hash", strconv.FormatUint(key, 16)))

		return compileSource(source, o)
	}

	o.logger.Trace("compile cache lookup",
		slog.String("source_hash", strconv.FormatUint(key, 16)),
		slog.Bool("cache_hit", cacheHit))

	e.once.Do(func() {
		e.result, e.err = compileSource(source, o)
	})

	return e.result, e.err
}

// ClearCache removes all cached compiled expressions.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
