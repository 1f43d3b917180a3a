package variable

import (
	"log/slog"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/value"
)

// NormalName is the name bound to the surface normal inside a
// [SurfaceExpression]. Its components are bound to NormalName followed by
// the axis name.
const NormalName = "n"

// SurfaceNormal is the outward normal of a codimension-one element, or one
// component of it.
type SurfaceNormal struct {
	sdim int
	comp int
}

// NewSurfaceNormal returns the normal in a space of dimension sdim. comp
// selects a component (1-based) or [AllComponents].
func NewSurfaceNormal(sdim, comp int) *SurfaceNormal {
	return &SurfaceNormal{sdim: sdim, comp: comp}
}

// Complex returns false.
func (s *SurfaceNormal) Complex() bool { return false }

// Dependency returns nil.
func (s *SurfaceNormal) Dependency() []string { return nil }

// Eval returns the normal derived from the Jacobian at p. Its length is
// the area scale of the element at p.
func (s *SurfaceNormal) Eval(p *Point) (value.Array, error) {
	n, err := pointNormal(p)
	if err != nil {
		return value.Array{}, err
	}

	return pick(value.Vector(n...), s.comp)
}

// NodalValues returns the unit normal at every boundary vertex, one row
// per entry of BdrVerts.
func (s *SurfaceNormal) NodalValues(a *NodalArgs) (value.Array, error) {
	rows, err := vertexNormals(a, s.sdim)
	if err != nil {
		return value.Array{}, err
	}

	m, err := matrix(rows, s.sdim)
	if err != nil {
		return value.Array{}, err
	}

	return pick(m, s.comp)
}

// NCFaceValues returns the unit normal at every sample point.
func (s *SurfaceNormal) NCFaceValues(a *FaceArgs) (value.Array, error) {
	rows, err := faceNormals(a)
	if err != nil {
		return value.Array{}, err
	}

	m, err := matrix(rows, s.sdim)
	if err != nil {
		return value.Array{}, err
	}

	return pick(m, s.comp)
}

// NCEdgeValues always fails with [ErrNotDefinedOnEdge].
func (s *SurfaceNormal) NCEdgeValues(*FaceArgs) (value.Array, error) {
	return value.Array{}, ErrNotDefinedOnEdge.With(slog.String("variable", s.String()))
}

// EmeshIndex returns idx.
func (s *SurfaceNormal) EmeshIndex(idx []int, _ *Variables) []int { return idx }

func (s *SurfaceNormal) String() string {
	if s.comp == AllComponents {
		return "SurfaceNormal"
	}

	return "SurfaceNormal(" + strconv.Itoa(s.comp) + ")"
}

// SurfaceExpression is an [Expression] that may also reference the
// surface normal as [NormalName] and its components as NormalName
// followed by an axis name, e.g. "nx".
type SurfaceExpression struct {
	*Expression
	sdim int
}

// NewSurfaceExpression compiles source in a space of dimension sdim.
func NewSurfaceExpression(
	source string,
	indVars []string,
	sdim int,
	complex bool,
	opts ...lang.Option,
) (*SurfaceExpression, error) {
	e, err := NewExpression(source, indVars, complex, opts...)
	if err != nil {
		return nil, err
	}

	return &SurfaceExpression{Expression: e, sdim: sdim}, nil
}

// Dependency returns the free names other than coordinate axes and normal
// bindings.
func (s *SurfaceExpression) Dependency() []string {
	names := s.normalNames()

	return slices.DeleteFunc(s.Expression.Dependency(), func(n string) bool {
		return slices.Contains(names, n)
	})
}

// Eval evaluates the expression at p with the normal bound.
func (s *SurfaceExpression) Eval(p *Point) (value.Array, error) {
	var extra map[string]value.Array

	if s.usesNormal() {
		n, err := pointNormal(p)
		if err != nil {
			return value.Array{}, err
		}

		extra = s.bind(value.Vector(n...))
	}

	return s.eval(p, extra)
}

// NodalValues evaluates the expression at every vertex with the unit
// vertex normal bound. Interior vertices see a zero normal.
func (s *SurfaceExpression) NodalValues(a *NodalArgs) (value.Array, error) {
	var extra map[string]value.Array

	if s.usesNormal() {
		rows, err := vertexNormals(a, s.sdim)
		if err != nil {
			return value.Array{}, err
		}

		full := make([][]float64, a.size())
		for i := range full {
			full[i] = make([]float64, s.sdim)
		}

		for k, v := range a.BdrVerts {
			if v >= 0 && v < len(full) {
				full[v] = rows[k]
			}
		}

		m, err := matrix(full, s.sdim)
		if err != nil {
			return value.Array{}, err
		}

		extra = s.bind(m)
	}

	return s.nodal(a, extra)
}

// NCFaceValues evaluates the expression at face sample points with the
// unit face normal bound.
func (s *SurfaceExpression) NCFaceValues(a *FaceArgs) (value.Array, error) {
	var extra map[string]value.Array

	if s.usesNormal() {
		rows, err := faceNormals(a)
		if err != nil {
			return value.Array{}, err
		}

		m, err := matrix(rows, s.sdim)
		if err != nil {
			return value.Array{}, err
		}

		extra = s.bind(m)
	}

	return s.samples(a, extra, Variable.NCFaceValues)
}

// NCEdgeValues always fails with [ErrNotDefinedOnEdge].
func (s *SurfaceExpression) NCEdgeValues(*FaceArgs) (value.Array, error) {
	return value.Array{}, ErrNotDefinedOnEdge.With(slog.String("variable", s.String()))
}

func (s *SurfaceExpression) String() string {
	return "SurfaceExpression(" + s.Source() + ")"
}

func (s *SurfaceExpression) normalNames() []string {
	names := []string{NormalName}
	for _, axis := range s.expr.IndVars() {
		names = append(names, NormalName+axis)
	}

	return names
}

func (s *SurfaceExpression) usesNormal() bool {
	used := s.expr.Names()

	return slices.ContainsFunc(s.normalNames(), func(n string) bool {
		return slices.Contains(used, n)
	})
}

// bind returns the normal bindings for n, a vector at a point or a matrix
// with one row per point.
func (s *SurfaceExpression) bind(n value.Array) map[string]value.Array {
	out := map[string]value.Array{NormalName: n}

	for k, axis := range s.expr.IndVars() {
		if c, err := pick(n, k+1); err == nil {
			out[NormalName+axis] = c
		}
	}

	return out
}

func pointNormal(p *Point) ([]float64, error) {
	if p.T == nil {
		return nil, ErrNoTransformation
	}

	p.T.SetIntPoint(p.IP)

	return fem.CalcOrtho(p.T.Jacobian())
}

// vertexNormals sums the normals of the boundary elements of a at their
// vertices and scales each sum to unit length. Row k belongs to vertex
// a.BdrVerts[k].
func vertexNormals(a *NodalArgs, sdim int) ([][]float64, error) {
	if a.Mesh == nil {
		return nil, ErrMissingBatchInput.With(slog.String("input", "Mesh"))
	}

	out := make([][]float64, len(a.BdrVerts))
	for i := range out {
		out[i] = make([]float64, sdim)
	}

	for _, b := range a.BdrElements {
		T, err := a.Mesh.BdrElementTransformation(b)
		if err != nil {
			return nil, err
		}

		verts := a.Mesh.BdrElementVertices(b)
		ref := fem.Vertices(a.Mesh.BdrElementGeometry(b))

		for k, v := range verts {
			if k >= len(ref) {
				break
			}

			i, ok := slices.BinarySearch(a.BdrVerts, v)
			if !ok {
				return nil, fem.ErrOutOfRange.With(
					slog.Int("boundary", b),
					slog.Int("vertex", v),
				)
			}

			T.SetIntPoint(ref[k])

			n, err := fem.CalcOrtho(T.Jacobian())
			if err != nil {
				return nil, err
			}

			if len(n) != sdim {
				return nil, value.ErrShapeMismatch.With(
					slog.Int("left", sdim),
					slog.Int("right", len(n)),
				)
			}

			floats.Add(out[i], n)
		}
	}

	for _, n := range out {
		unit(n)
	}

	return out, nil
}

// faceNormals returns the unit normal at every sample point of a.
func faceNormals(a *FaceArgs) ([][]float64, error) {
	if a.Mesh == nil {
		return nil, ErrMissingBatchInput.With(slog.String("input", "Mesh"))
	}

	transform := a.Mesh.ElementTransformation
	if a.Mesh.Dimension() == 3 {
		transform = a.Mesh.FaceTransformation
	}

	var out [][]float64

	for i, face := range a.Faces {
		ir, err := a.rule(i)
		if err != nil {
			return nil, err
		}

		T, err := transform(face)
		if err != nil {
			return nil, err
		}

		for _, ip := range ir {
			T.SetIntPoint(ip)

			n, err := fem.CalcOrtho(T.Jacobian())
			if err != nil {
				return nil, err
			}

			out = append(out, unit(n))
		}
	}

	return out, nil
}

// unit scales v to unit length in place unless it is zero.
func unit(v []float64) []float64 {
	if n := floats.Norm(v, 2); n != 0 {
		floats.Scale(1/n, v)
	}

	return v
}
