package repl

import "github.com/ardnew/fieldvar/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds     = pkg.NewError("index out of range")
	ErrNoModel         = pkg.NewError("no model to evaluate against")
	ErrInvalidArgument = pkg.NewError("invalid command argument")
)
