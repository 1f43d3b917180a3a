package variable

import "github.com/ardnew/fieldvar/value"

// AllComponents selects every component of a vector-valued variable.
const AllComponents = -1

// Variable is a named quantity that can be evaluated at a point or in
// batch.
//
// Implementations must be comparable; they are used as keys of [Knowns].
type Variable interface {
	// Complex reports whether values are complex.
	Complex() bool
	// Dependency lists names of other variables this one reads.
	Dependency() []string

	// Eval returns the value at p.
	Eval(p *Point) (value.Array, error)
	// NodalValues returns one row per mesh vertex.
	NodalValues(a *NodalArgs) (value.Array, error)
	// NCFaceValues returns one row per face sample point.
	NCFaceValues(a *FaceArgs) (value.Array, error)
	// NCEdgeValues returns one row per edge sample point.
	NCEdgeValues(a *FaceArgs) (value.Array, error)

	// EmeshIndex appends to idx the mesh slots this variable needs,
	// resolving dependencies in ns.
	EmeshIndex(idx []int, ns *Variables) []int

	String() string
}

type emeshWalker interface {
	emeshIndex(idx []int, ns *Variables, seen map[Variable]bool) []int
}

// emeshIndex collects the mesh slots of v, visiting every variable once.
func emeshIndex(v Variable, idx []int, ns *Variables, seen map[Variable]bool) []int {
	if seen[v] {
		return idx
	}

	seen[v] = true

	if w, ok := v.(emeshWalker); ok {
		return w.emeshIndex(idx, ns, seen)
	}

	return v.EmeshIndex(idx, ns)
}

// pick returns component comp (1-based) of the trailing dimension of a.
func pick(a value.Array, comp int) (value.Array, error) {
	if comp == AllComponents {
		return a, nil
	}

	switch a.Rank() {
	case 1:
		x, err := a.At(comp - 1)
		if err != nil {
			return value.Array{}, ErrComponent.Wrap(err)
		}

		if a.IsComplex() {
			return value.ComplexScalar(x), nil
		}

		return value.Scalar(real(x)), nil

	case 2:
		col, err := a.Column(comp - 1)
		if err != nil {
			return value.Array{}, ErrComponent.Wrap(err)
		}

		return col, nil

	default:
		return a, nil
	}
}
