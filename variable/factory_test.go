package variable

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/fem/simplex"
	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/value"
)

func TestNamespace(t *testing.T) {
	ns := NewVariables()
	ns.Set("b", NewConstant(value.Scalar(1)))
	ns.Set("a", NewConstant(value.Scalar(2)))
	ns.Set("b", NewConstant(value.Scalar(3)))

	if got := ns.Names(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Names() = %v, want [b a]", got)
	}

	if ns.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ns.Len())
	}

	got, err := ns.Eval("b", Point{})
	if err != nil || got.Float() != 3 {
		t.Errorf("Eval(b) = %v, %v; want 3", got, err)
	}

	if _, err := ns.Eval("c", Point{}); !errors.Is(err, lang.ErrUnresolvedName) {
		t.Errorf("Eval(c) error = %v, want ErrUnresolvedName", err)
	}

	if want := "b: Constant(3)\na: Constant(2)\n"; ns.String() != want {
		t.Errorf("String() = %q, want %q", ns.String(), want)
	}

	var none *Variables
	if _, ok := none.Get("a"); ok || none.Len() != 0 || none.Names() != nil {
		t.Error("nil namespace is not empty")
	}
}

func TestNamespaceZeroValue(t *testing.T) {
	var ns Variables

	ns.Set("c", NewConstant(value.Scalar(5)))

	got, err := ns.Eval("c", Point{})
	if err != nil || got.Float() != 5 {
		t.Errorf("Eval(c) = %v, %v; want 5", got, err)
	}

	if ns.maxDepth() != DefaultMaxDepth {
		t.Errorf("maxDepth() = %d, want %d", ns.maxDepth(), DefaultMaxDepth)
	}
}

func TestAddCoordinatesAndNormals(t *testing.T) {
	ns := NewVariables()
	ns.AddCoordinates(xyz)
	ns.AddSurfaceNormals(xyz)

	want := []string{"x", "y", "z", "n", "nx", "ny", "nz"}
	if got := ns.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	got, err := ns.Eval("y", at(1, 2, 3))
	if err != nil {
		t.Fatalf("Eval(y) error = %v", err)
	}

	wantFloats(t, got, 2)

	if v, _ := ns.Get("nz"); v.String() != "SurfaceNormal(3)" {
		t.Errorf("nz = %v", v)
	}
}

func TestAddExpressionSuffix(t *testing.T) {
	ns := NewVariables()

	if err := ns.AddConstant("Ex", "_1", value.Scalar(2), nil, nil); err != nil {
		t.Fatalf("AddConstant() error = %v", err)
	}

	if err := ns.AddExpression("E", "_1", xyz, "Ex + Exy + x", []string{"Ex", "Exy"}, nil, false, nil); err != nil {
		t.Fatalf("AddExpression() error = %v", err)
	}

	if err := ns.AddConstant("Exy", "_1", value.Scalar(10), nil, nil); err != nil {
		t.Fatalf("AddConstant() error = %v", err)
	}

	v, ok := ns.Get("E_1")
	if !ok {
		t.Fatal("E_1 not bound")
	}

	e, ok := v.(*Expression)
	if !ok || e.Source() != "Ex_1 + Exy_1 + x" {
		t.Fatalf("E_1 = %v", v)
	}

	got, err := ns.Eval("E_1", at(1, 0, 0))
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	wantFloats(t, got, 13)
}

func TestAddPiecewise(t *testing.T) {
	ns := NewVariables(WithPieceSelection(SelectMatchingPiece))

	if err := ns.AddExpression("eps", "", xyz, "1 + x", nil, []int{1}, false, nil); err != nil {
		t.Fatalf("AddExpression() error = %v", err)
	}

	if err := ns.AddConstant("eps", "", value.Scalar(4), []int{2}, nil); err != nil {
		t.Fatalf("AddConstant() error = %v", err)
	}

	v, _ := ns.Get("eps")

	d, ok := v.(*Domain)
	if !ok || len(d.Domains()) != 2 || d.selection != SelectMatchingPiece {
		t.Fatalf("eps = %v", v)
	}

	got, err := ns.NodalValues("eps", *nodalArgs(t, simplex.UnitSquare(), nil))
	if err != nil {
		t.Fatalf("NodalValues() error = %v", err)
	}

	// (0,0): (1+4)/2, (1,0): 2, (1,1): (2+4)/2, (0,1): 4
	wantFloats(t, got, 2.5, 2, 3, 4)

	if err := ns.AddExpression("eps", "", xyz, "x +", nil, []int{3}, false, nil); !errors.Is(err, lang.ErrCompile) {
		t.Errorf("AddExpression(bad) error = %v, want ErrCompile", err)
	}

	if len(d.Domains()) != 2 {
		t.Errorf("Domains() = %v after failed add", d.Domains())
	}

	ns.Set("c", NewConstant(value.Scalar(1)))

	if err := ns.AddConstant("c", "", value.Scalar(2), []int{1}, nil); !errors.Is(err, ErrNameConflict) {
		t.Errorf("AddConstant() over non-piecewise error = %v, want ErrNameConflict", err)
	}

	if err := ns.AddExpression("bad2", "", xyz, "x +", nil, []int{1}, false, nil); err == nil {
		t.Error("AddExpression(bad) = nil")
	}

	if _, ok := ns.Get("bad2"); ok {
		t.Error("failed AddExpression bound a name")
	}
}

func TestAddFields(t *testing.T) {
	m := simplex.UnitSquare()

	var pool simplex.Pool

	h := pool.Add(&simplex.Field{
		Mesh:   m,
		Family: "H1_2D_P1",
		Values: [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Emesh:  1,
	})

	ns := NewVariables()
	xy := []string{"x", "y"}

	if err := ns.AddComponents("E", "", xy, &pool, h, fem.NoHandle, nil); err != nil {
		t.Fatalf("AddComponents() error = %v", err)
	}

	if err := ns.AddElements("B", "_s", xy, &pool, h, fem.NoHandle, nil); err != nil {
		t.Fatalf("AddElements() error = %v", err)
	}

	if err := ns.AddScalar("u", "", &pool, h, fem.NoHandle, nil); err != nil {
		t.Fatalf("AddScalar() error = %v", err)
	}

	want := []string{"Ex", "Ey", "E", "B_sx", "B_sy", "u"}
	if got := ns.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	if err := ns.AddExpression("mag", "", xy, "sqrt(Ex**2 + Ey**2)", nil, nil, false, nil); err != nil {
		t.Fatalf("AddExpression() error = %v", err)
	}

	p := elementPoint(t, m, 0, fem.IntegrationPoint{X: 1, Y: 0})
	p.Namespace = ns

	got, err := ns.Eval("mag", p)
	if err != nil {
		t.Fatalf("Eval(mag) error = %v", err)
	}

	// Vertex (1,0) of element 0.
	wantFloats(t, got, 1)

	idx, err := ns.EmeshIndex("mag")
	if err != nil || !slices.Equal(idx, []int{1}) {
		t.Errorf("EmeshIndex(mag) = %v, %v; want [1]", idx, err)
	}

	if err := pool.Invalidate(h); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	if err := ns.AddScalar("w", "", &pool, h, fem.NoHandle, nil); !errors.Is(err, fem.ErrStaleField) {
		t.Errorf("AddScalar() stale error = %v", err)
	}
}

func TestAddSurfaceExpression(t *testing.T) {
	ns := NewVariables()
	xy := []string{"x", "y"}

	if err := ns.AddSurfaceExpression("flux", "_b", xy, "k * nx", []string{"k"}, false); err != nil {
		t.Fatalf("AddSurfaceExpression() error = %v", err)
	}

	if err := ns.AddConstant("k", "_b", value.Scalar(3), nil, nil); err != nil {
		t.Fatalf("AddConstant() error = %v", err)
	}

	v, _ := ns.Get("flux_b")
	if !strings.Contains(v.String(), "k_b * nx") {
		t.Errorf("flux_b = %v", v)
	}

	T, err := simplex.UnitSquare().BdrElementTransformation(1)
	if err != nil {
		t.Fatalf("BdrElementTransformation() error = %v", err)
	}

	got, err := ns.Eval("flux_b", Point{T: T})
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	wantFloats(t, got, 3)
}
