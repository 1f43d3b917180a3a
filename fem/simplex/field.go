package simplex

import (
	"log/slog"

	"github.com/ardnew/fieldvar/fem"
)

// Field is a piecewise-linear field with one row of component values per
// mesh vertex. Values inside a simplex are interpolated with barycentric
// weights.
type Field struct {
	Mesh   *Mesh       `json:"-"      yaml:"-"`
	Family string      `json:"family" yaml:"family"`
	Values [][]float64 `json:"values" yaml:"values"`
	Emesh  int         `json:"emesh"  yaml:"emesh"`
}

// Validate reports whether f has one row of equal length per mesh vertex
// and a known family.
func (f *Field) Validate() error {
	if f.Mesh == nil {
		return ErrInvalidField.With(slog.String("reason", "no mesh"))
	}

	if len(f.Values) != f.Mesh.NumVertices() {
		return ErrInvalidField.With(
			slog.Int("rows", len(f.Values)),
			slog.Int("vertices", f.Mesh.NumVertices()),
		)
	}

	dim := f.VectorDim()
	for i, row := range f.Values {
		if len(row) != dim {
			return ErrInvalidField.With(
				slog.Int("vertex", i),
				slog.Int("components", len(row)),
				slog.Int("want", dim),
			)
		}
	}

	_, err := fem.ParseFamily(f.Family)

	return err
}

// VectorDim returns the number of components per vertex.
func (f *Field) VectorDim() int {
	if len(f.Values) == 0 || len(f.Values[0]) == 0 {
		return 1
	}

	return len(f.Values[0])
}

// FamilyName returns the element-family name.
func (f *Field) FamilyName() string { return f.Family }

// MeshDim returns the dimension of the owning mesh.
func (f *Field) MeshDim() int { return f.Mesh.Dimension() }

// EmeshIndex returns the mesh slot the field lives on.
func (f *Field) EmeshIndex() int { return f.Emesh }

// Eval returns component comp at ip of the element of T.
func (f *Field) Eval(
	T fem.ElementTransformation,
	ip fem.IntegrationPoint,
	comp int,
) (float64, error) {
	verts, err := f.elementVertices(T.ElementNo())
	if err != nil {
		return 0, err
	}

	return f.interp(verts, ip, comp)
}

// EvalVector returns all components at ip of the element of T.
func (f *Field) EvalVector(
	T fem.ElementTransformation,
	ip fem.IntegrationPoint,
) ([]float64, error) {
	verts, err := f.elementVertices(T.ElementNo())
	if err != nil {
		return nil, err
	}

	return f.interpVector(verts, ip)
}

// NodalValues returns component comp at the vertices of elem, in local
// vertex order.
func (f *Field) NodalValues(elem, comp int) ([]float64, error) {
	verts, err := f.elementVertices(elem)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(verts))

	for k, v := range verts {
		x, err := f.value(v, comp)
		if err != nil {
			return nil, err
		}

		out[k] = x
	}

	return out, nil
}

// FaceValues returns component comp at every point of ir on face.
func (f *Field) FaceValues(
	face int,
	ir fem.IntegrationRule,
	comp int,
) ([]float64, error) {
	verts, err := f.faceVertices(face)
	if err != nil {
		return nil, err
	}

	return f.sample(verts, ir, comp)
}

// FaceVectorValues returns all components at every point of ir on face.
func (f *Field) FaceVectorValues(
	face int,
	ir fem.IntegrationRule,
) ([][]float64, error) {
	verts, err := f.faceVertices(face)
	if err != nil {
		return nil, err
	}

	return f.sampleVector(verts, ir)
}

// ElementValues returns component comp at every point of ir in elem.
func (f *Field) ElementValues(
	elem int,
	ir fem.IntegrationRule,
	comp int,
) ([]float64, error) {
	verts, err := f.elementVertices(elem)
	if err != nil {
		return nil, err
	}

	return f.sample(verts, ir, comp)
}

// ElementVectorValues returns all components at every point of ir in elem.
func (f *Field) ElementVectorValues(
	elem int,
	ir fem.IntegrationRule,
) ([][]float64, error) {
	verts, err := f.elementVertices(elem)
	if err != nil {
		return nil, err
	}

	return f.sampleVector(verts, ir)
}

func (f *Field) elementVertices(i int) ([]int, error) {
	if i < 0 || i >= len(f.Mesh.Elements) {
		return nil, fem.ErrOutOfRange.With(
			slog.String("kind", "element"),
			slog.Int("index", i),
		)
	}

	return f.Mesh.Elements[i].Vertices, nil
}

func (f *Field) faceVertices(i int) ([]int, error) {
	if i < 0 || i >= len(f.Mesh.Boundary) {
		return nil, fem.ErrOutOfRange.With(
			slog.String("kind", "face"),
			slog.Int("index", i),
		)
	}

	return f.Mesh.Boundary[i].Vertices, nil
}

func (f *Field) value(vertex, comp int) (float64, error) {
	if comp < 1 || comp > f.VectorDim() {
		return 0, fem.ErrOutOfRange.With(
			slog.String("kind", "component"),
			slog.Int("index", comp),
			slog.Int("len", f.VectorDim()),
		)
	}

	if vertex < 0 || vertex >= len(f.Values) {
		return 0, fem.ErrOutOfRange.With(
			slog.String("kind", "vertex"),
			slog.Int("index", vertex),
		)
	}

	return f.Values[vertex][comp-1], nil
}

func (f *Field) interp(verts []int, ip fem.IntegrationPoint, comp int) (float64, error) {
	var sum float64

	for k, w := range barycentric(ip, len(verts)) {
		x, err := f.value(verts[k], comp)
		if err != nil {
			return 0, err
		}

		sum += w * x
	}

	return sum, nil
}

func (f *Field) interpVector(verts []int, ip fem.IntegrationPoint) ([]float64, error) {
	out := make([]float64, f.VectorDim())

	for c := range out {
		x, err := f.interp(verts, ip, c+1)
		if err != nil {
			return nil, err
		}

		out[c] = x
	}

	return out, nil
}

func (f *Field) sample(verts []int, ir fem.IntegrationRule, comp int) ([]float64, error) {
	out := make([]float64, len(ir))

	for j, ip := range ir {
		x, err := f.interp(verts, ip, comp)
		if err != nil {
			return nil, err
		}

		out[j] = x
	}

	return out, nil
}

func (f *Field) sampleVector(verts []int, ir fem.IntegrationRule) ([][]float64, error) {
	out := make([][]float64, len(ir))

	for j, ip := range ir {
		v, err := f.interpVector(verts, ip)
		if err != nil {
			return nil, err
		}

		out[j] = v
	}

	return out, nil
}

// barycentric returns the weights of the n vertices of a simplex at ip.
func barycentric(ip fem.IntegrationPoint, n int) []float64 {
	w := make([]float64, n)
	w[0] = 1

	for k, c := range ip.Coords(n - 1) {
		w[k+1] = c
		w[0] -= c
	}

	return w
}
