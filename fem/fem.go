package fem

import "gonum.org/v1/gonum/mat"

// ElementTransformation maps reference coordinates of one element (or face)
// to physical coordinates.
type ElementTransformation interface {
	// Attribute returns the subdomain id of the element.
	Attribute() int
	// ElementNo returns the index of the element in its mesh.
	ElementNo() int
	// SetIntPoint selects the point at which Jacobian is evaluated.
	SetIntPoint(ip IntegrationPoint)
	// Transform returns the physical coordinates of ip.
	Transform(ip IntegrationPoint) []float64
	// Jacobian returns the (space dim x reference dim) Jacobian at the
	// point selected by SetIntPoint.
	Jacobian() mat.Matrix
}

// Field is a finite-element field owned by an external library.
//
// Component numbers are 1-based. Batch accessors return one value per
// point of the integration rule; vector accessors return one row per point.
type Field interface {
	VectorDim() int
	FamilyName() string
	MeshDim() int
	EmeshIndex() int

	Eval(T ElementTransformation, ip IntegrationPoint, comp int) (float64, error)
	EvalVector(T ElementTransformation, ip IntegrationPoint) ([]float64, error)

	NodalValues(elem, comp int) ([]float64, error)
	FaceValues(face int, ir IntegrationRule, comp int) ([]float64, error)
	FaceVectorValues(face int, ir IntegrationRule) ([][]float64, error)
	ElementValues(elem int, ir IntegrationRule, comp int) ([]float64, error)
	ElementVectorValues(elem int, ir IntegrationRule) ([][]float64, error)
}

// Mesh is the geometry and topology a field is defined on.
type Mesh interface {
	Dimension() int
	SpaceDimension() int

	NumVertices() int
	Vertex(i int) []float64

	NumElements() int
	ElementVertices(i int) []int
	ElementAttribute(i int) int
	ElementGeometry(i int) Geometry
	ElementTransformation(i int) (ElementTransformation, error)

	NumBdrElements() int
	BdrElementVertices(i int) []int
	BdrElementAttribute(i int) int
	BdrElementGeometry(i int) Geometry
	BdrElementTransformation(i int) (ElementTransformation, error)

	// FaceTransformation returns the transformation of face i. Faces are
	// numbered as boundary elements.
	FaceTransformation(i int) (ElementTransformation, error)
	// FaceElements returns the elements on either side of face i. The
	// second element is negative on the domain boundary.
	FaceElements(i int) (int, int)
}

// Handle refers to a field stored in a [FieldPool].
// The zero Handle refers to no field.
type Handle struct {
	Index      int
	Generation uint64
}

// NoHandle is the zero Handle.
//
//nolint:gochecknoglobals
var NoHandle Handle

// IsZero reports whether h refers to no field.
func (h Handle) IsZero() bool { return h == NoHandle }

// FieldPool owns fields and resolves handles to them.
type FieldPool interface {
	// Lookup returns the field referred to by h, or an error matching
	// [ErrStaleField] if h is not live.
	Lookup(h Handle) (Field, error)
}
