package fem

import "github.com/ardnew/fieldvar/pkg"

// Predefined errors (sentinel values).
var (
	// ErrUnsupportedElementFamily reports a field whose element-family name
	// has no known prefix. It carries the "family" attribute.
	ErrUnsupportedElementFamily = pkg.NewError("unsupported element family")
	// ErrStaleField reports a handle that no longer refers to a live field.
	ErrStaleField = pkg.NewError("stale field handle")
	// ErrJacobianShape reports a Jacobian with no defined normal direction.
	ErrJacobianShape = pkg.NewError("jacobian has no normal direction")
	// ErrOutOfRange reports an element, face or vertex index outside the
	// mesh.
	ErrOutOfRange = pkg.NewError("index out of range")
)
