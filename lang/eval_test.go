package lang

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ardnew/fieldvar/pkg"
	"github.com/ardnew/fieldvar/value"
)

const tolerance = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func TestEvalScalar(t *testing.T) {
	tests := []struct {
		source string
		locals map[string]value.Array
		want   float64
	}{
		{"x + 1", map[string]value.Array{"x": value.Scalar(2)}, 3},
		{"x + 0.5*y", map[string]value.Array{"x": value.Scalar(1), "y": value.Scalar(4)}, 3},
		{"-x**2", map[string]value.Array{"x": value.Scalar(3)}, -9},
		{"2^10", nil, 1024},
		{"7 % 4", nil, 3},
		{"sqrt(16) + abs(-2)", nil, 6},
		{"sind(90)", nil, 1},
		{"cosd(180)", nil, -1},
		{"arctan2(1, 1)", nil, math.Pi / 4},
		{"log2(8) + log10(100)", nil, 5},
		{"sum([1, 2, 3])", nil, 6},
		{"dot([1, 2], [3, 4])", nil, 11},
		{"max(1, 5, 3)", nil, 5},
		{"min([4, 2, 8])", nil, 2},
		{"[7, 8, 9][1]", nil, 8},
		{"x > 0 ? 1 : -1", map[string]value.Array{"x": value.Scalar(-2)}, -1},
		{"(x >= 1) * 10", map[string]value.Array{"x": value.Scalar(1)}, 10},
		{"pi", nil, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			e, err := Compile(tt.source, []string{"x", "y", "z"})
			if err != nil {
				t.Fatalf("Compile(%q) unexpected error: %v", tt.source, err)
			}

			got, err := e.Eval(tt.locals)
			if err != nil {
				t.Fatalf("Eval(%q) unexpected error: %v", tt.source, err)
			}

			if !got.IsScalar() || !near(got.Float(), tt.want) {
				t.Errorf("Eval(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestEvalArrays(t *testing.T) {
	e, err := Compile("2*v + [1, 1, 1]", nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := e.Eval(map[string]value.Array{"v": value.Vector(1, 2, 3)})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got.Floats(), []float64{3, 5, 7}) {
		t.Errorf("Eval = %v, want [3 5 7]", got)
	}

	c, err := Compile("cross([1, 0, 0], [0, 1, 0])", nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err = c.Eval(nil)
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(value.Vector(0, 0, 1)) {
		t.Errorf("cross = %v, want [0 0 1]", got)
	}
}

func TestEvalColumns(t *testing.T) {
	e, err := Compile("x*x + y", []string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := e.Eval(map[string]value.Array{
		"x": value.Vector(1, 2, 3),
		"y": value.Vector(1, 1, 1),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got.Floats(), []float64{2, 5, 10}) {
		t.Errorf("Eval = %v, want [2 5 10]", got)
	}
}

func TestEvalComplex(t *testing.T) {
	e, err := Compile("(1 + 2j) * x", nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := e.Eval(map[string]value.Array{"x": value.Scalar(2)})
	if err != nil {
		t.Fatal(err)
	}

	if !got.IsComplex() || got.Complex() != 2+4i {
		t.Errorf("Eval = %v, want (2+4j)", got)
	}

	r, err := Compile("real(conj(3j + 1)) + imag(3j)", nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err = r.Eval(nil)
	if err != nil {
		t.Fatal(err)
	}

	if got.IsComplex() || got.Float() != 4 {
		t.Errorf("Eval = %v, want real 4", got)
	}
}

func TestEvalUnresolvedName(t *testing.T) {
	e, err := Compile("x + missing", []string{"x"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Eval(map[string]value.Array{"x": value.Scalar(1)})
	if !errors.Is(err, ErrUnresolvedName) {
		t.Fatalf("Eval error = %v, want %v", err, ErrUnresolvedName)
	}

	var perr *pkg.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not a *pkg.Error", err)
	}

	attrs := map[string]string{}
	for _, a := range perr.Attrs() {
		attrs[a.Key] = a.Value.String()
	}

	if attrs["name"] != "missing" {
		t.Errorf("name attr = %q, want %q", attrs["name"], "missing")
	}

	if attrs["locals"] != "[x]" {
		t.Errorf("locals attr = %q, want %q", attrs["locals"], "[x]")
	}

	if _, ok := attrs["globals"]; !ok {
		t.Errorf("missing globals attr")
	}
}

func TestEvalShapeMismatch(t *testing.T) {
	e, err := Compile("a + b", nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Eval(map[string]value.Array{
		"a": value.Vector(1, 2),
		"b": value.Vector(1, 2, 3),
	})
	if !errors.Is(err, ErrEvaluate) {
		t.Errorf("Eval error = %v, want %v", err, ErrEvaluate)
	}
}

func TestEvalIdempotent(t *testing.T) {
	e, err := Compile("sin(x)*exp(y)", nil)
	if err != nil {
		t.Fatal(err)
	}

	locals := map[string]value.Array{"x": value.Scalar(0.3), "y": value.Scalar(-1)}

	a, err := e.Eval(locals)
	if err != nil {
		t.Fatal(err)
	}

	b, err := e.Eval(locals)
	if err != nil {
		t.Fatal(err)
	}

	if !a.Equal(b) {
		t.Errorf("repeated Eval differs: %v != %v", a, b)
	}
}
