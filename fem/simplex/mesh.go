package simplex

import (
	"log/slog"
	"slices"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ardnew/fieldvar/fem"
)

// tolerance for point location in reference coordinates.
const tolerance = 1e-10

// Element is a simplex given by its vertex indices and subdomain id.
type Element struct {
	Attribute int   `json:"attribute" yaml:"attribute"`
	Vertices  []int `json:"vertices"  yaml:"vertices"`
}

// Mesh is an affine simplex mesh.
type Mesh struct {
	faceOnce sync.Once
	faces    [][2]int

	Vertices [][]float64 `json:"vertices"           yaml:"vertices"`
	Elements []Element   `json:"elements"           yaml:"elements"`
	Boundary []Element   `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Dim      int         `json:"dim"                yaml:"dim"`
}

// Validate reports whether m is a consistent simplex mesh.
func (m *Mesh) Validate() error {
	if m.Dim < 1 || m.Dim > 3 {
		return ErrInvalidMesh.With(slog.Int("dim", m.Dim))
	}

	sdim := m.SpaceDimension()
	if sdim < m.Dim {
		return ErrInvalidMesh.With(
			slog.Int("dim", m.Dim),
			slog.Int("sdim", sdim),
		)
	}

	for i, v := range m.Vertices {
		if len(v) != sdim {
			return ErrInvalidMesh.With(
				slog.Int("vertex", i),
				slog.Int("coords", len(v)),
				slog.Int("sdim", sdim),
			)
		}
	}

	check := func(kind string, els []Element, nv int) error {
		for i, e := range els {
			if len(e.Vertices) != nv {
				return ErrInvalidMesh.With(
					slog.String("kind", kind),
					slog.Int("index", i),
					slog.Int("vertices", len(e.Vertices)),
					slog.Int("want", nv),
				)
			}

			for _, v := range e.Vertices {
				if v < 0 || v >= len(m.Vertices) {
					return ErrInvalidMesh.With(
						slog.String("kind", kind),
						slog.Int("index", i),
						slog.Int("vertex", v),
					)
				}
			}
		}

		return nil
	}

	if err := check("element", m.Elements, m.Dim+1); err != nil {
		return err
	}

	return check("boundary", m.Boundary, m.Dim)
}

// Dimension returns the topological dimension of the elements.
func (m *Mesh) Dimension() int { return m.Dim }

// SpaceDimension returns the number of physical coordinates per vertex.
func (m *Mesh) SpaceDimension() int {
	if len(m.Vertices) == 0 {
		return m.Dim
	}

	return len(m.Vertices[0])
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// Vertex returns a copy of the coordinates of vertex i.
func (m *Mesh) Vertex(i int) []float64 { return slices.Clone(m.Vertices[i]) }

// NumElements returns the number of elements.
func (m *Mesh) NumElements() int { return len(m.Elements) }

// ElementVertices returns a copy of the vertex indices of element i.
func (m *Mesh) ElementVertices(i int) []int {
	return slices.Clone(m.Elements[i].Vertices)
}

// ElementAttribute returns the subdomain id of element i.
func (m *Mesh) ElementAttribute(i int) int { return m.Elements[i].Attribute }

// ElementGeometry returns the shape of element i.
func (m *Mesh) ElementGeometry(i int) fem.Geometry {
	return geometry(len(m.Elements[i].Vertices))
}

// ElementTransformation returns the affine map of element i.
func (m *Mesh) ElementTransformation(i int) (fem.ElementTransformation, error) {
	return wrap(m.transformation("element", m.Elements, i))
}

// NumBdrElements returns the number of boundary elements.
func (m *Mesh) NumBdrElements() int { return len(m.Boundary) }

// BdrElementVertices returns a copy of the vertex indices of boundary
// element i.
func (m *Mesh) BdrElementVertices(i int) []int {
	return slices.Clone(m.Boundary[i].Vertices)
}

// BdrElementAttribute returns the boundary id of boundary element i.
func (m *Mesh) BdrElementAttribute(i int) int { return m.Boundary[i].Attribute }

// BdrElementGeometry returns the shape of boundary element i.
func (m *Mesh) BdrElementGeometry(i int) fem.Geometry {
	return geometry(len(m.Boundary[i].Vertices))
}

// BdrElementTransformation returns the affine map of boundary element i.
func (m *Mesh) BdrElementTransformation(i int) (fem.ElementTransformation, error) {
	return wrap(m.transformation("boundary", m.Boundary, i))
}

// FaceTransformation returns the affine map of face i, which is boundary
// element i.
func (m *Mesh) FaceTransformation(i int) (fem.ElementTransformation, error) {
	return m.BdrElementTransformation(i)
}

// FaceElements returns the elements sharing face i. The second element is
// -1 when only one element contains the face.
func (m *Mesh) FaceElements(i int) (int, int) {
	m.faceOnce.Do(m.buildFaces)

	if i < 0 || i >= len(m.faces) {
		return -1, -1
	}

	return m.faces[i][0], m.faces[i][1]
}

func (m *Mesh) buildFaces() {
	m.faces = make([][2]int, len(m.Boundary))

	for i, b := range m.Boundary {
		m.faces[i] = [2]int{-1, -1}
		k := 0

		for e, el := range m.Elements {
			if k == 2 {
				break
			}

			if containsAll(el.Vertices, b.Vertices) {
				m.faces[i][k] = e
				k++
			}
		}
	}
}

// Locate returns the element containing the physical point x and the
// reference coordinates of x in that element.
func (m *Mesh) Locate(x []float64) (int, fem.IntegrationPoint, error) {
	for i := range m.Elements {
		T, err := m.transformation("element", m.Elements, i)
		if err != nil {
			return -1, fem.IntegrationPoint{}, err
		}

		if ip, ok := T.Inverse(x); ok {
			return i, ip, nil
		}
	}

	return -1, fem.IntegrationPoint{}, fem.ErrOutOfRange.With(
		slog.Any("point", x),
	)
}

func (m *Mesh) transformation(
	kind string,
	els []Element,
	i int,
) (*Transformation, error) {
	if i < 0 || i >= len(els) {
		return nil, fem.ErrOutOfRange.With(
			slog.String("kind", kind),
			slog.Int("index", i),
			slog.Int("len", len(els)),
		)
	}

	e := els[i]
	verts := make([][]float64, len(e.Vertices))

	for k, v := range e.Vertices {
		verts[k] = m.Vertices[v]
	}

	return &Transformation{
		verts: verts,
		attr:  e.Attribute,
		elem:  i,
	}, nil
}

// wrap avoids returning a typed nil inside a non-nil interface.
func wrap(t *Transformation, err error) (fem.ElementTransformation, error) {
	if err != nil {
		return nil, err
	}

	return t, nil
}

func geometry(nverts int) fem.Geometry {
	switch nverts {
	case 2:
		return fem.Segment
	case 3:
		return fem.Triangle
	case 4:
		return fem.Tetrahedron
	default:
		return fem.Point
	}
}

func containsAll(set, sub []int) bool {
	for _, v := range sub {
		if !slices.Contains(set, v) {
			return false
		}
	}

	return len(sub) > 0
}

// Transformation is the affine map of one simplex.
type Transformation struct {
	verts [][]float64
	ip    fem.IntegrationPoint
	attr  int
	elem  int
}

// Attribute returns the subdomain id of the simplex.
func (t *Transformation) Attribute() int { return t.attr }

// ElementNo returns the index of the simplex in its mesh.
func (t *Transformation) ElementNo() int { return t.elem }

// SetIntPoint records ip. The Jacobian of an affine map does not depend on
// it.
func (t *Transformation) SetIntPoint(ip fem.IntegrationPoint) { t.ip = ip }

// Transform returns v0 + sum_k ip_k (v_k - v0).
func (t *Transformation) Transform(ip fem.IntegrationPoint) []float64 {
	x := slices.Clone(t.verts[0])
	xi := ip.Coords(len(t.verts) - 1)

	for k, c := range xi {
		for d := range x {
			x[d] += c * (t.verts[k+1][d] - t.verts[0][d])
		}
	}

	return x
}

// Jacobian returns the matrix whose columns are the edges v_k - v0.
func (t *Transformation) Jacobian() mat.Matrix {
	sdim, dim := len(t.verts[0]), len(t.verts)-1
	if dim == 0 {
		return mat.NewDense(sdim, 1, nil)
	}

	J := mat.NewDense(sdim, dim, nil)

	for k := range dim {
		for d := range sdim {
			J.Set(d, k, t.verts[k+1][d]-t.verts[0][d])
		}
	}

	return J
}

// Inverse returns the reference coordinates of x and whether x lies in the
// simplex.
func (t *Transformation) Inverse(x []float64) (fem.IntegrationPoint, bool) {
	sdim, dim := len(t.verts[0]), len(t.verts)-1
	if dim == 0 || len(x) != sdim {
		return fem.IntegrationPoint{}, false
	}

	rhs := mat.NewVecDense(sdim, nil)
	for d := range sdim {
		rhs.SetVec(d, x[d]-t.verts[0][d])
	}

	var xi mat.VecDense
	if err := xi.SolveVec(t.Jacobian(), rhs); err != nil {
		return fem.IntegrationPoint{}, false
	}

	var sum float64

	coords := [3]float64{}
	for k := range dim {
		c := xi.AtVec(k)
		if c < -tolerance {
			return fem.IntegrationPoint{}, false
		}

		coords[k] = c
		sum += c
	}

	if sum > 1+tolerance {
		return fem.IntegrationPoint{}, false
	}

	ip := fem.IntegrationPoint{X: coords[0], Y: coords[1], Z: coords[2]}

	// Embedded simplices (dim < sdim) solve in the least-squares sense.
	back := t.Transform(ip)
	for d := range sdim {
		if diff := back[d] - x[d]; diff > 1e-8 || diff < -1e-8 {
			return fem.IntegrationPoint{}, false
		}
	}

	return ip, true
}
