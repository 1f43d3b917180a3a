package variable

import "github.com/ardnew/fieldvar/pkg"

// Predefined errors (sentinel values).
var (
	// ErrMaxDepthExceeded reports dependency recursion deeper than the
	// namespace allows, typically a reference cycle.
	ErrMaxDepthExceeded = pkg.NewError("maximum dependency depth exceeded")
	// ErrMissingKnown reports a function dependency absent from the
	// precomputed Knowns table.
	ErrMissingKnown = pkg.NewError("dependency has no known values")
	// ErrNotDefinedOnEdge reports a surface quantity requested on edges.
	ErrNotDefinedOnEdge = pkg.NewError("not defined on edges")
	// ErrMissingBatchInput reports a batch call lacking a required input.
	ErrMissingBatchInput = pkg.NewError("missing batch input")
	// ErrPointNotSet reports a Probe called before SetPoint.
	ErrPointNotSet = pkg.NewError("evaluation point not set")
	// ErrNoTransformation reports a Point without an element
	// transformation.
	ErrNoTransformation = pkg.NewError("point has no element transformation")
	// ErrNameConflict reports a piecewise definition added under a name
	// that holds a different kind of variable.
	ErrNameConflict = pkg.NewError("name already bound to another variable")
	// ErrUnsupportedDimension reports a batch form that does not exist for
	// the mesh dimension of a field.
	ErrUnsupportedDimension = pkg.NewError("unsupported mesh dimension")
	// ErrComponent reports a component number outside the value.
	ErrComponent = pkg.NewError("component out of range")
)
