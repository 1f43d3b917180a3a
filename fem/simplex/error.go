package simplex

import "github.com/ardnew/fieldvar/pkg"

// Predefined errors (sentinel values).
var (
	ErrInvalidMesh  = pkg.NewError("invalid simplex mesh")
	ErrInvalidField = pkg.NewError("invalid nodal field")
)
