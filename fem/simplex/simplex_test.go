package simplex

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/fieldvar/fem"
)

const eps = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func TestValidate(t *testing.T) {
	if err := UnitSquare().Validate(); err != nil {
		t.Fatalf("UnitSquare().Validate() = %v", err)
	}

	if err := UnitTetrahedron().Validate(); err != nil {
		t.Fatalf("UnitTetrahedron().Validate() = %v", err)
	}

	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"bad dim", &Mesh{Dim: 4}},
		{"short element", &Mesh{
			Dim:      2,
			Vertices: [][]float64{{0, 0}, {1, 0}, {0, 1}},
			Elements: []Element{{Vertices: []int{0, 1}}},
		}},
		{"vertex out of range", &Mesh{
			Dim:      1,
			Vertices: [][]float64{{0}, {1}},
			Elements: []Element{{Vertices: []int{0, 2}}},
		}},
		{"ragged vertices", &Mesh{
			Dim:      1,
			Vertices: [][]float64{{0}, {1, 2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mesh.Validate(); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate() = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestTransformation(t *testing.T) {
	m := UnitSquare()

	T, err := m.ElementTransformation(1)
	if err != nil {
		t.Fatalf("ElementTransformation(1) error = %v", err)
	}

	if T.Attribute() != 2 || T.ElementNo() != 1 {
		t.Errorf("Attribute, ElementNo = %d, %d; want 2, 1", T.Attribute(), T.ElementNo())
	}

	x := T.Transform(fem.IntegrationPoint{X: 0.5, Y: 0.5})
	if !near(x[0], 0.5) || !near(x[1], 1) {
		t.Errorf("Transform() = %v, want [0.5 1]", x)
	}

	J := T.Jacobian()
	if r, c := J.Dims(); r != 2 || c != 2 {
		t.Fatalf("Jacobian dims = %d x %d", r, c)
	}

	if J.At(0, 0) != 1 || J.At(1, 0) != 1 || J.At(0, 1) != 0 || J.At(1, 1) != 1 {
		t.Errorf("Jacobian = %v", J)
	}

	if _, err := m.ElementTransformation(5); !errors.Is(err, fem.ErrOutOfRange) {
		t.Errorf("ElementTransformation(5) error = %v, want ErrOutOfRange", err)
	}
}

func TestBoundaryNormals(t *testing.T) {
	m := UnitTetrahedron()
	want := [][]float64{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}, {1, 1, 1}}

	for i := range m.NumBdrElements() {
		T, err := m.FaceTransformation(i)
		if err != nil {
			t.Fatalf("FaceTransformation(%d) error = %v", i, err)
		}

		n, err := fem.CalcOrtho(T.Jacobian())
		if err != nil {
			t.Fatalf("CalcOrtho error = %v", err)
		}

		for d := range n {
			if !near(n[d], want[i][d]) {
				t.Errorf("face %d normal = %v, want %v", i, n, want[i])

				break
			}
		}

		if m.BdrElementGeometry(i) != fem.Triangle {
			t.Errorf("BdrElementGeometry(%d) = %v", i, m.BdrElementGeometry(i))
		}

		if e1, e2 := m.FaceElements(i); e1 != 0 || e2 != -1 {
			t.Errorf("FaceElements(%d) = %d, %d; want 0, -1", i, e1, e2)
		}
	}
}

func TestLocate(t *testing.T) {
	m := UnitSquare()

	tests := []struct {
		x    []float64
		elem int
	}{
		{[]float64{0.75, 0.25}, 0},
		{[]float64{0.25, 0.75}, 1},
		{[]float64{1, 0}, 0},
	}

	for _, tt := range tests {
		elem, ip, err := m.Locate(tt.x)
		if err != nil {
			t.Fatalf("Locate(%v) error = %v", tt.x, err)
		}

		if elem != tt.elem {
			t.Errorf("Locate(%v) element = %d, want %d", tt.x, elem, tt.elem)
		}

		T, _ := m.ElementTransformation(elem)
		if back := T.Transform(ip); !near(back[0], tt.x[0]) || !near(back[1], tt.x[1]) {
			t.Errorf("Transform(Locate(%v)) = %v", tt.x, back)
		}
	}

	if _, _, err := m.Locate([]float64{2, 2}); !errors.Is(err, fem.ErrOutOfRange) {
		t.Errorf("Locate outside error = %v, want ErrOutOfRange", err)
	}
}

func TestFieldInterpolation(t *testing.T) {
	m := UnitSquare()
	// f(x, y) = 1 + 2x + 3y, g = (x, y)
	f := &Field{Mesh: m, Family: "H1_2D_P1", Values: [][]float64{
		{1, 0, 0}, {3, 1, 0}, {6, 1, 1}, {4, 0, 1},
	}}

	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if f.VectorDim() != 3 || f.MeshDim() != 2 {
		t.Errorf("VectorDim, MeshDim = %d, %d", f.VectorDim(), f.MeshDim())
	}

	T, _ := m.ElementTransformation(0)
	ip := fem.IntegrationPoint{X: 0.5, Y: 0.25} // x = 0.75, y = 0.25

	v, err := f.Eval(T, ip, 1)
	if err != nil || !near(v, 1+2*0.75+3*0.25) {
		t.Errorf("Eval() = %v, %v", v, err)
	}

	vec, err := f.EvalVector(T, ip)
	if err != nil || !near(vec[1], 0.75) || !near(vec[2], 0.25) {
		t.Errorf("EvalVector() = %v, %v", vec, err)
	}

	nodal, err := f.NodalValues(1, 1)
	if err != nil || nodal[0] != 1 || nodal[1] != 6 || nodal[2] != 4 {
		t.Errorf("NodalValues(1, 1) = %v, %v", nodal, err)
	}

	face, err := f.FaceValues(2, fem.IntegrationRule{{X: 0.5}}, 1)
	if err != nil || !near(face[0], 5) {
		t.Errorf("FaceValues(2) = %v, %v", face, err)
	}

	rows, err := f.ElementVectorValues(0, fem.Vertices(fem.Triangle))
	if err != nil || len(rows) != 3 || rows[2][1] != 1 {
		t.Errorf("ElementVectorValues(0) = %v, %v", rows, err)
	}

	if _, err := f.Eval(T, ip, 4); !errors.Is(err, fem.ErrOutOfRange) {
		t.Errorf("Eval(comp 4) error = %v, want ErrOutOfRange", err)
	}
}

func TestFieldValidate(t *testing.T) {
	m := UnitSquare()

	tests := []struct {
		name  string
		field *Field
		want  error
	}{
		{"rows", &Field{Mesh: m, Family: "H1", Values: [][]float64{{1}}}, ErrInvalidField},
		{"family", &Field{Mesh: m, Family: "Q9", Values: [][]float64{{1}, {1}, {1}, {1}}}, fem.ErrUnsupportedElementFamily},
		{"mesh", &Field{Family: "H1"}, ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.field.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPool(t *testing.T) {
	var p Pool

	f := &Field{Mesh: UnitSquare(), Family: "H1"}
	h := p.Add(f)

	got, err := p.Lookup(h)
	if err != nil || got != f {
		t.Fatalf("Lookup() = %v, %v", got, err)
	}

	g := &Field{Mesh: UnitSquare(), Family: "L2"}

	h2, err := p.Replace(h, g)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if _, err := p.Lookup(h); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("Lookup(old) error = %v, want ErrStaleField", err)
	}

	if got, _ := p.Lookup(h2); got != g {
		t.Errorf("Lookup(new) = %v, want replacement", got)
	}

	if err := p.Invalidate(h2); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	if _, err := p.Lookup(h2); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("Lookup(invalidated) error = %v, want ErrStaleField", err)
	}

	if _, err := p.Lookup(fem.NoHandle); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("Lookup(NoHandle) error = %v, want ErrStaleField", err)
	}

	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestMeshYAML(t *testing.T) {
	src := `
dim: 2
vertices: [[0, 0], [1, 0], [0, 1]]
elements:
  - {attribute: 7, vertices: [0, 1, 2]}
boundary:
  - {attribute: 1, vertices: [0, 1]}
`

	var m Mesh
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if m.ElementAttribute(0) != 7 || m.NumBdrElements() != 1 || m.SpaceDimension() != 2 {
		t.Errorf("decoded mesh = %+v", &m)
	}
}
