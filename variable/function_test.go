package variable

import (
	"errors"
	"testing"

	"github.com/ardnew/fieldvar/fem/simplex"
	"github.com/ardnew/fieldvar/value"
)

func sumCoords(x []float64, _ map[string]value.Array) (value.Array, error) {
	s := 0.0
	for _, v := range x {
		s += v
	}

	return value.Scalar(s), nil
}

func TestFunctionEval(t *testing.T) {
	f := NewFunction(sumCoords)

	p := at(1, 2, 3)

	got, err := f.Eval(&p)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	wantFloats(t, got, 6)

	tm := 10.0
	p.Time = &tm

	got, err = f.Eval(&p)
	if err != nil {
		t.Fatalf("Eval() with time error = %v", err)
	}

	wantFloats(t, got, 16)

	if f.String() != "Function" || f.Complex() {
		t.Errorf("String, Complex = %q, %v", f.String(), f.Complex())
	}
}

func TestFunctionKnowns(t *testing.T) {
	ns := NewVariables()
	a := NewConstant(value.Scalar(0))
	ns.Set("a", a)

	f := ns.AddFunction("f", func(x []float64, deps map[string]value.Array) (value.Array, error) {
		return value.Scalar(x[0] + deps["a"].Float()), nil
	}, DependsOn("a"), Complex())

	p := at(1, 0, 0)
	p.Namespace = ns
	p.Knowns = Knowns{a: value.Vector(10, 20)}
	p.Index = 1

	got, err := f.Eval(&p)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	if !got.IsComplex() || got.Complex() != 21 {
		t.Errorf("Eval() = %v, want complex 21", got)
	}

	p.Knowns = nil
	if _, err := f.Eval(&p); !errors.Is(err, ErrMissingKnown) {
		t.Errorf("Eval() without knowns error = %v, want ErrMissingKnown", err)
	}
}

func TestFunctionShape(t *testing.T) {
	f := NewFunction(sumCoords, Shape(2))

	p := at(1, 0, 0)
	if _, err := f.Eval(&p); !errors.Is(err, value.ErrShapeMismatch) {
		t.Errorf("Eval() error = %v, want ErrShapeMismatch", err)
	}

	v := NewFunction(func(x []float64, _ map[string]value.Array) (value.Array, error) {
		return value.Vector(x[1], x[0]), nil
	}, Shape(2))

	got, err := v.NodalValues(nodalArgs(t, simplex.UnitSquare(), nil))
	if err != nil {
		t.Fatalf("NodalValues() error = %v", err)
	}

	wantFloats(t, got, 0, 0, 0, 1, 1, 1, 1, 0)
}

func TestFunctionBatch(t *testing.T) {
	f := NewFunction(sumCoords)
	m := simplex.UnitSquare()

	got, err := f.NodalValues(nodalArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NodalValues() error = %v", err)
	}

	wantFloats(t, got, 0, 1, 2, 1)

	got, err = f.NodalValues(nodalArgs(t, m, nil).restrict([]int{1}))
	if err != nil {
		t.Fatalf("restricted NodalValues() error = %v", err)
	}

	wantFloats(t, got, 0, 1, 2, 0)

	got, err = f.NCEdgeValues(faceArgs(t, m, nil))
	if err != nil {
		t.Fatalf("NCEdgeValues() error = %v", err)
	}

	wantFloats(t, got, 0, 1, 2, 0, 2, 1)
}
