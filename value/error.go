package value

import "github.com/ardnew/fieldvar/pkg"

// Predefined errors (sentinel values).
var (
	ErrShapeMismatch   = pkg.NewError("shape mismatch")
	ErrInvalidValue    = pkg.NewError("invalid value")
	ErrIndexOutOfRange = pkg.NewError("index out of range")
	ErrUnsupportedRank = pkg.NewError("unsupported operand rank")
)
