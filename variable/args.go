package variable

import (
	"log/slog"
	"slices"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/value"
)

// NodalArgs describes a batch evaluation at mesh vertices. Entries of
// Elements, Attributes and ElemVerts are parallel; a negative element
// marks an entry as not covered.
type NodalArgs struct {
	// Mesh is needed by surface variables only.
	Mesh      fem.Mesh
	Namespace *Variables
	Knowns    Knowns
	// Locs holds vertex coordinates, shape (vertices, sdim).
	Locs value.Array

	Elements   []int
	Attributes []int
	ElemVerts  [][]fem.VertexPair
	// Weights holds, per vertex, the number of elements touching it.
	Weights []float64

	BdrElements []int
	// BdrVerts holds the sorted vertex indices of BdrElements.
	BdrVerts []int

	depth int
}

// NewNodalArgs returns nodal inputs covering every element and boundary
// element of mesh.
func NewNodalArgs(mesh fem.Mesh, ns *Variables) (*NodalArgs, error) {
	nv, ne := mesh.NumVertices(), mesh.NumElements()

	a := &NodalArgs{
		Mesh:       mesh,
		Namespace:  ns,
		Elements:   make([]int, ne),
		Attributes: make([]int, ne),
		ElemVerts:  make([][]fem.VertexPair, ne),
		Weights:    make([]float64, nv),
	}

	for i := range ne {
		a.Elements[i] = i
		a.Attributes[i] = mesh.ElementAttribute(i)

		verts := mesh.ElementVertices(i)
		pairs := make([]fem.VertexPair, len(verts))

		for k, v := range verts {
			if v < 0 || v >= nv {
				return nil, fem.ErrOutOfRange.With(
					slog.Int("element", i),
					slog.Int("vertex", v),
				)
			}

			pairs[k] = fem.VertexPair{Local: k, Global: v}
			a.Weights[v]++
		}

		a.ElemVerts[i] = pairs
	}

	rows := make([][]float64, nv)
	for i := range nv {
		rows[i] = mesh.Vertex(i)
	}

	locs, err := matrix(rows, mesh.SpaceDimension())
	if err != nil {
		return nil, err
	}

	a.Locs = locs

	for i := range mesh.NumBdrElements() {
		a.BdrElements = append(a.BdrElements, i)
		a.BdrVerts = append(a.BdrVerts, mesh.BdrElementVertices(i)...)
	}

	slices.Sort(a.BdrVerts)
	a.BdrVerts = slices.Compact(a.BdrVerts)

	return a, nil
}

func (a *NodalArgs) size() int { return len(a.Weights) }

func (a *NodalArgs) child(ns *Variables) (*NodalArgs, error) {
	b := *a
	b.depth++

	if ns != nil {
		b.Namespace = ns
	}

	if err := checkDepth(b.depth, a.Namespace); err != nil {
		return nil, err
	}

	return &b, nil
}

// restrict returns a copy of a whose elements outside domains are marked
// as not covered.
func (a *NodalArgs) restrict(domains []int) *NodalArgs {
	b := *a
	b.Elements = slices.Clone(a.Elements)

	for i := range b.Elements {
		if i >= len(a.Attributes) || !slices.Contains(domains, a.Attributes[i]) {
			b.Elements[i] = -1
		}
	}

	return &b
}

// mask returns 1 at every vertex of a covered element and 0 elsewhere.
func (a *NodalArgs) mask() (value.Array, error) {
	n := a.size()
	data := make([]complex128, n)

	for i, el := range a.Elements {
		if el < 0 {
			continue
		}

		if i >= len(a.ElemVerts) {
			return value.Array{}, ErrMissingBatchInput.With(
				slog.String("input", "ElemVerts"),
				slog.Int("entry", i),
			)
		}

		for _, pr := range a.ElemVerts[i] {
			if pr.Global < 0 || pr.Global >= n {
				return value.Array{}, fem.ErrOutOfRange.With(
					slog.Int("vertex", pr.Global),
					slog.Int("vertices", n),
				)
			}

			data[pr.Global] = 1
		}
	}

	return value.New([]int{n}, data, false)
}

// FaceArgs describes a batch evaluation at sample points of faces or
// edges. Sample points are face-major: all points of Faces[0], then all
// points of Faces[1], and so on.
type FaceArgs struct {
	Mesh      fem.Mesh
	Namespace *Variables
	Knowns    Knowns
	// Rules gives the sample points of each face geometry.
	Rules map[fem.Geometry]fem.IntegrationRule
	// Locs holds sample point coordinates, shape (points, sdim).
	Locs value.Array
	// Weight is the per-sample weight a piecewise variable applies to its
	// pieces. It is informational for the pieces themselves.
	Weight value.Array

	Faces []int
	Geoms []fem.Geometry
	// Attr1 and Attr2 hold the subdomain ids of the elements on either
	// side of each face. Attr2 is negative on the boundary.
	Attr1 []int
	Attr2 []int

	depth int
}

// NewFaceArgs returns face inputs for mesh. Faces of a 3-D mesh are its
// boundary faces; faces of a 2-D mesh are its elements. A nil rules uses
// the vertices of each geometry.
func NewFaceArgs(
	mesh fem.Mesh,
	rules map[fem.Geometry]fem.IntegrationRule,
	ns *Variables,
) (*FaceArgs, error) {
	switch mesh.Dimension() {
	case 3:
		a := newFaceArgs(mesh, rules, ns, mesh.NumBdrElements())

		for i := range a.Faces {
			e1, e2 := mesh.FaceElements(i)
			a.Geoms[i] = mesh.BdrElementGeometry(i)
			a.Attr1[i], a.Attr2[i] = attribute(mesh, e1), attribute(mesh, e2)
		}

		return a, a.sample(mesh.FaceTransformation)

	case 2:
		return newElementArgs(mesh, rules, ns)

	default:
		return nil, ErrUnsupportedDimension.With(
			slog.String("form", "face"),
			slog.Int("dim", mesh.Dimension()),
		)
	}
}

// NewEdgeArgs returns edge inputs for a 1-D mesh, whose edges are its
// elements. A nil rules uses the vertices of each geometry.
func NewEdgeArgs(
	mesh fem.Mesh,
	rules map[fem.Geometry]fem.IntegrationRule,
	ns *Variables,
) (*FaceArgs, error) {
	if mesh.Dimension() != 1 {
		return nil, ErrUnsupportedDimension.With(
			slog.String("form", "edge"),
			slog.Int("dim", mesh.Dimension()),
		)
	}

	return newElementArgs(mesh, rules, ns)
}

func newElementArgs(
	mesh fem.Mesh,
	rules map[fem.Geometry]fem.IntegrationRule,
	ns *Variables,
) (*FaceArgs, error) {
	a := newFaceArgs(mesh, rules, ns, mesh.NumElements())

	for i := range a.Faces {
		a.Geoms[i] = mesh.ElementGeometry(i)
		a.Attr1[i], a.Attr2[i] = mesh.ElementAttribute(i), -1
	}

	return a, a.sample(mesh.ElementTransformation)
}

func newFaceArgs(
	mesh fem.Mesh,
	rules map[fem.Geometry]fem.IntegrationRule,
	ns *Variables,
	n int,
) *FaceArgs {
	if rules == nil {
		rules = fem.VertexRules()
	}

	a := &FaceArgs{
		Mesh:      mesh,
		Namespace: ns,
		Rules:     rules,
		Faces:     make([]int, n),
		Geoms:     make([]fem.Geometry, n),
		Attr1:     make([]int, n),
		Attr2:     make([]int, n),
	}

	for i := range n {
		a.Faces[i] = i
	}

	return a
}

// sample fills Locs with the physical sample points of every face.
func (a *FaceArgs) sample(
	transform func(int) (fem.ElementTransformation, error),
) error {
	var rows [][]float64

	for i, face := range a.Faces {
		ir, err := a.rule(i)
		if err != nil {
			return err
		}

		T, err := transform(face)
		if err != nil {
			return err
		}

		for _, ip := range ir {
			rows = append(rows, T.Transform(ip))
		}
	}

	locs, err := matrix(rows, a.Mesh.SpaceDimension())
	if err != nil {
		return err
	}

	a.Locs = locs

	return nil
}

// size returns the number of sample points.
func (a *FaceArgs) size() int {
	if a.Locs.Rank() > 0 {
		return a.Locs.Len()
	}

	n := 0

	for i := range a.Faces {
		if ir, err := a.rule(i); err == nil {
			n += len(ir)
		}
	}

	return n
}

// rule returns the sample points of face entry i.
func (a *FaceArgs) rule(i int) (fem.IntegrationRule, error) {
	if i >= len(a.Geoms) {
		return nil, ErrMissingBatchInput.With(
			slog.String("input", "Geoms"),
			slog.Int("entry", i),
		)
	}

	ir, ok := a.Rules[a.Geoms[i]]
	if !ok {
		return nil, ErrMissingBatchInput.With(
			slog.String("input", "Rules"),
			slog.String("geometry", a.Geoms[i].String()),
		)
	}

	return ir, nil
}

func (a *FaceArgs) child(ns *Variables) (*FaceArgs, error) {
	b := *a
	b.depth++

	if ns != nil {
		b.Namespace = ns
	}

	if err := checkDepth(b.depth, a.Namespace); err != nil {
		return nil, err
	}

	return &b, nil
}

func attribute(mesh fem.Mesh, elem int) int {
	if elem < 0 {
		return -1
	}

	return mesh.ElementAttribute(elem)
}

// matrix returns rows as a real array of shape (len(rows), cols).
func matrix(rows [][]float64, cols int) (value.Array, error) {
	data := make([]complex128, 0, len(rows)*cols)

	for _, r := range rows {
		for _, x := range r {
			data = append(data, complex(x, 0))
		}
	}

	return value.New([]int{len(rows), cols}, data, false)
}
