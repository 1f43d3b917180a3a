package value

import (
	"errors"
	"slices"
	"testing"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		shape   []int
		data    []complex128
		complex bool
		wantErr error
	}{
		{name: "int", in: 3, data: []complex128{3}},
		{name: "float", in: 2.5, data: []complex128{2.5}},
		{name: "int64", in: int64(-4), data: []complex128{-4}},
		{name: "bool", in: true, data: []complex128{1}},
		{name: "complex", in: 1 + 2i, data: []complex128{1 + 2i}, complex: true},
		{
			name:  "floats",
			in:    []float64{1, 2, 3},
			shape: []int{3},
			data:  []complex128{1, 2, 3},
		},
		{
			name:  "nested any",
			in:    []any{[]any{1, 2.0}, []any{3, 4}},
			shape: []int{2, 2},
			data:  []complex128{1, 2, 3, 4},
		},
		{
			name:  "matrix",
			in:    [][]float64{{1, 0}, {0, 1}},
			shape: []int{2, 2},
			data:  []complex128{1, 0, 0, 1},
		},
		{name: "ragged", in: []any{1, []any{1, 2}}, wantErr: ErrShapeMismatch},
		{name: "string", in: "x", wantErr: ErrInvalidValue},
		{name: "nil", in: nil, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("From(%v) error = %v, want %v", tt.in, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("From(%v) unexpected error: %v", tt.in, err)
			}

			if !slices.Equal(got.Shape(), tt.shape) && len(got.Shape())+len(tt.shape) > 0 {
				t.Errorf("shape = %v, want %v", got.Shape(), tt.shape)
			}

			if !slices.Equal(got.Data(), tt.data) {
				t.Errorf("data = %v, want %v", got.Data(), tt.data)
			}

			if got.IsComplex() != tt.complex {
				t.Errorf("complex = %v, want %v", got.IsComplex(), tt.complex)
			}
		})
	}
}

func TestZeroArrayIsScalarZero(t *testing.T) {
	var a Array

	if !a.IsScalar() || a.Float() != 0 || a.Size() != 1 {
		t.Errorf("zero Array = %v (rank %d), want scalar 0", a, a.Rank())
	}
}

func TestRow(t *testing.T) {
	m, err := New([]int{2, 3}, []complex128{1, 2, 3, 4, 5, 6}, false)
	if err != nil {
		t.Fatal(err)
	}

	row, err := m.Row(-1)
	if err != nil {
		t.Fatal(err)
	}

	if !row.Equal(Vector(4, 5, 6)) {
		t.Errorf("Row(-1) = %v, want [4 5 6]", row)
	}

	if _, err := m.Row(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Row(2) error = %v, want %v", err, ErrIndexOutOfRange)
	}
}

func TestColumn(t *testing.T) {
	m, err := New([]int{2, 3}, []complex128{1, 2, 3, 4, 5, 6}, false)
	if err != nil {
		t.Fatal(err)
	}

	col, err := m.Column(1)
	if err != nil {
		t.Fatal(err)
	}

	if !col.Equal(Vector(2, 5)) {
		t.Errorf("Column(1) = %v, want [2 5]", col)
	}

	if _, err := m.Column(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Column(3) error = %v, want %v", err, ErrIndexOutOfRange)
	}

	if _, err := Vector(1, 2).Column(0); !errors.Is(err, ErrUnsupportedRank) {
		t.Errorf("vector Column(0) error = %v, want %v", err, ErrUnsupportedRank)
	}
}

func TestStack(t *testing.T) {
	got, err := Stack(Vector(1, 2), ComplexVector(3i, 4))
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got.Shape(), []int{2, 2}) || !got.IsComplex() {
		t.Errorf("Stack = %v shape %v complex %v", got, got.Shape(), got.IsComplex())
	}

	if _, err := Stack(Vector(1), Vector(1, 2)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Stack ragged error = %v, want %v", err, ErrShapeMismatch)
	}

	empty, err := Stack()
	if err != nil || empty.Len() != 0 {
		t.Errorf("Stack() = %v, %v; want empty (0,)", empty, err)
	}
}

func TestTile(t *testing.T) {
	got := Tile(3, Vector(1, 2))
	if !slices.Equal(got.Shape(), []int{3, 2}) {
		t.Fatalf("Tile shape = %v, want [3 2]", got.Shape())
	}

	if got.String() != "[[1 2] [1 2] [1 2]]" {
		t.Errorf("Tile = %s", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   Array
		want string
	}{
		{Scalar(1.5), "1.5"},
		{ComplexScalar(1 - 2i), "(1-2j)"},
		{Vector(1, 2), "[1 2]"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAny(t *testing.T) {
	got, ok := Vector(1, 2).Any().([]any)
	if !ok || len(got) != 2 || got[1] != 2.0 {
		t.Errorf("Any() = %#v", Vector(1, 2).Any())
	}
}
