package variable

import (
	"errors"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/fem/simplex"
)

// linear returns 1 + 2x + 3y on the unit square.
func linear(m *simplex.Mesh) *simplex.Field {
	return &simplex.Field{
		Mesh:   m,
		Family: "H1_2D_P1",
		Values: [][]float64{{1}, {3}, {6}, {4}},
		Emesh:  2,
	}
}

func TestFieldScalar(t *testing.T) {
	m := simplex.UnitSquare()

	var pool simplex.Pool

	h := pool.Add(linear(m))

	s, err := NewFieldScalar(&pool, h, fem.NoHandle, 1, nil)
	if err != nil {
		t.Fatalf("NewFieldScalar() error = %v", err)
	}

	if s.Complex() || s.Family() != fem.H1 {
		t.Errorf("Complex, Family = %v, %v", s.Complex(), s.Family())
	}

	p := elementPoint(t, m, 0, fem.IntegrationPoint{X: 0.5, Y: 0.25})

	got, err := s.Eval(&p)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	// (x, y) = (0.75, 0.25)
	wantFloats(t, got, 3.25)

	nodal, err := s.NodalValues(nodalArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NodalValues() error = %v", err)
	}

	wantFloats(t, nodal, 1, 3, 6, 4)

	face, err := s.NCFaceValues(faceArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NCFaceValues() error = %v", err)
	}

	wantFloats(t, face, 1, 3, 6, 1, 6, 4)

	if _, err := s.NCEdgeValues(faceArgs(t, m, nil)); !errors.Is(err, ErrUnsupportedDimension) {
		t.Errorf("NCEdgeValues() error = %v, want ErrUnsupportedDimension", err)
	}

	if idx := s.EmeshIndex([]int{0}, nil); !slices.Equal(idx, []int{0, 2}) {
		t.Errorf("EmeshIndex() = %v, want [0 2]", idx)
	}

	if idx := s.EmeshIndex([]int{2}, nil); !slices.Equal(idx, []int{2}) {
		t.Errorf("EmeshIndex() = %v, want [2]", idx)
	}
}

func TestFieldComplex(t *testing.T) {
	m := simplex.UnitSquare()

	var pool simplex.Pool

	re := pool.Add(linear(m))
	im := pool.Add(&simplex.Field{
		Mesh:   m,
		Family: "H1_2D_P1",
		Values: [][]float64{{0}, {1}, {0}, {0}},
	})

	s, err := NewFieldScalar(&pool, re, im, 1, nil)
	if err != nil {
		t.Fatalf("NewFieldScalar() error = %v", err)
	}

	if !s.Complex() {
		t.Error("Complex() = false")
	}

	p := elementPoint(t, m, 0, fem.IntegrationPoint{X: 1})

	got, err := s.Eval(&p)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	if got.Complex() != complex(3, 1) {
		t.Errorf("Eval() = %v, want 3+1i", got)
	}

	nodal, err := s.NodalValues(nodalArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NodalValues() error = %v", err)
	}

	if d := nodal.Data(); len(d) != 4 || d[1] != complex(3, 1) || d[2] != 6 {
		t.Errorf("NodalValues() = %v", nodal)
	}
}

func TestFieldVector(t *testing.T) {
	m := simplex.UnitSquare()

	var pool simplex.Pool

	h := pool.Add(&simplex.Field{
		Mesh:   m,
		Family: "ND_2D_P1",
		Values: [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	})

	v, err := NewFieldVector(&pool, h, fem.NoHandle, nil)
	if err != nil {
		t.Fatalf("NewFieldVector() error = %v", err)
	}

	p := elementPoint(t, m, 0, fem.IntegrationPoint{X: 0.5, Y: 0.25})

	got, err := v.Eval(&p)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	wantFloats(t, got, 0.75, 0.25)

	nodal, err := v.NodalValues(nodalArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NodalValues() error = %v", err)
	}

	if s := nodal.Shape(); !slices.Equal(s, []int{4, 2}) {
		t.Fatalf("NodalValues() shape = %v", s)
	}

	wantFloats(t, nodal, 0, 0, 1, 0, 1, 1, 0, 1)

	face, err := v.NCFaceValues(faceArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NCFaceValues() error = %v", err)
	}

	wantFloats(t, face, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1)

	y, err := NewFieldScalar(&pool, h, fem.NoHandle, 2, nil)
	if err != nil {
		t.Fatalf("NewFieldScalar() error = %v", err)
	}

	got, err = y.Eval(&p)
	if err != nil {
		t.Fatalf("component Eval() error = %v", err)
	}

	wantFloats(t, got, 0.25)
}

func TestFieldFaces3D(t *testing.T) {
	m := simplex.UnitTetrahedron()

	var pool simplex.Pool

	h := pool.Add(&simplex.Field{
		Mesh:   m,
		Family: "L2_3D_P1",
		Values: [][]float64{{0}, {1}, {2}, {3}},
	})

	s, err := NewFieldScalar(&pool, h, fem.NoHandle, 1, nil)
	if err != nil {
		t.Fatalf("NewFieldScalar() error = %v", err)
	}

	got, err := s.NCFaceValues(faceArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NCFaceValues() error = %v", err)
	}

	wantFloats(t, got, 0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3)
}

func TestFieldStale(t *testing.T) {
	m := simplex.UnitSquare()

	var pool simplex.Pool

	h := pool.Add(linear(m))

	s, err := NewFieldScalar(&pool, h, fem.NoHandle, 1, nil)
	if err != nil {
		t.Fatalf("NewFieldScalar() error = %v", err)
	}

	if err := pool.Invalidate(h); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	p := elementPoint(t, m, 0, fem.IntegrationPoint{})
	if _, err := s.Eval(&p); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("Eval() error = %v, want ErrStaleField", err)
	}

	if _, err := s.NodalValues(nodalArgs(t, m, nil)); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("NodalValues() error = %v, want ErrStaleField", err)
	}

	if _, err := NewFieldVector(&pool, h, fem.NoHandle, nil); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("NewFieldVector() error = %v, want ErrStaleField", err)
	}
}

func TestFieldDeriv(t *testing.T) {
	m := simplex.UnitSquare()

	var (
		pool  simplex.Pool
		calls atomic.Int32
	)

	h := pool.Add(linear(m))

	double := func(re, im fem.Field) (fem.Field, fem.Field, error) {
		calls.Add(1)

		src, _ := re.(*simplex.Field)
		out := &simplex.Field{Mesh: src.Mesh, Family: src.Family}

		for _, row := range src.Values {
			out.Values = append(out.Values, []float64{2 * row[0]})
		}

		return out, im, nil
	}

	s, err := NewFieldScalar(&pool, h, fem.NoHandle, 1, double)
	if err != nil {
		t.Fatalf("NewFieldScalar() error = %v", err)
	}

	p := elementPoint(t, m, 0, fem.IntegrationPoint{X: 1})

	for range 3 {
		got, err := s.Eval(&p)
		if err != nil {
			t.Fatalf("Eval() error = %v", err)
		}

		wantFloats(t, got, 6)
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("deriv called %d times, want 1", n)
	}
}

func TestFieldUnknownFamily(t *testing.T) {
	var pool simplex.Pool

	h := pool.Add(&simplex.Field{Mesh: simplex.UnitSquare(), Family: "XX_2D"})

	if _, err := NewFieldScalar(&pool, h, fem.NoHandle, 1, nil); !errors.Is(err, fem.ErrUnsupportedElementFamily) {
		t.Errorf("NewFieldScalar() error = %v, want ErrUnsupportedElementFamily", err)
	}
}
