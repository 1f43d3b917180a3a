package lang

import "github.com/ardnew/fieldvar/pkg"

// Predefined errors (sentinel values).
var (
	// ErrCompile reports malformed expression source.
	ErrCompile = pkg.NewError("expression compilation failed")
	// ErrUnresolvedName reports an identifier that is neither a builtin nor
	// bound by the caller. It carries the available "globals" and "locals".
	ErrUnresolvedName = pkg.NewError("unresolved name")
	// ErrEvaluate reports a failure while running a compiled expression.
	ErrEvaluate = pkg.NewError("expression evaluation failed")
	// ErrArgCount reports a builtin called with the wrong number of
	// arguments.
	ErrArgCount = pkg.NewError("argument count mismatch")
)
