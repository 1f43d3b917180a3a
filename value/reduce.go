package value

import (
	"log/slog"
	"math/cmplx"
)

// Sum returns the sum of all elements of a as a scalar.
func Sum(a Array) Array {
	var s complex128
	for _, v := range a.values() {
		s += v
	}

	return Array{data: []complex128{s}, complex: a.complex}
}

// Reduce folds every element of a with o (OpMin or OpMax).
func Reduce(o Op, a Array) (Array, error) {
	vals := a.values()
	if len(vals) == 0 {
		return Array{}, ErrInvalidValue.With(
			slog.String("operator", o.String()),
			slog.String("issue", "empty array"),
		)
	}

	fn := o.kernel(a.complex)
	acc := vals[0]

	for _, v := range vals[1:] {
		acc = fn(acc, v)
	}

	return Array{data: []complex128{acc}, complex: a.complex}, nil
}

// Dot returns the product of a and b: scalar scaling when either is a
// scalar, the inner product of two vectors, or a matrix product involving
// rank-2 operands.
func Dot(a, b Array) (Array, error) {
	if a.IsScalar() || b.IsScalar() {
		return Binary(OpMul, a, b)
	}

	isComplex := a.complex || b.complex

	switch {
	case a.Rank() == 1 && b.Rank() == 1:
		if a.shape[0] != b.shape[0] {
			return Array{}, dotMismatch(a, b)
		}

		var s complex128
		for i, v := range a.data {
			s += v * b.data[i]
		}

		return Array{data: []complex128{s}, complex: isComplex}, nil

	case a.Rank() == 2 && b.Rank() == 1:
		m, k := a.shape[0], a.shape[1]
		if k != b.shape[0] {
			return Array{}, dotMismatch(a, b)
		}

		out := make([]complex128, m)
		for i := range m {
			for j := range k {
				out[i] += a.data[i*k+j] * b.data[j]
			}
		}

		return Array{shape: []int{m}, data: out, complex: isComplex}, nil

	case a.Rank() == 1 && b.Rank() == 2:
		k, n := b.shape[0], b.shape[1]
		if k != a.shape[0] {
			return Array{}, dotMismatch(a, b)
		}

		out := make([]complex128, n)
		for j := range n {
			for i := range k {
				out[j] += a.data[i] * b.data[i*n+j]
			}
		}

		return Array{shape: []int{n}, data: out, complex: isComplex}, nil

	case a.Rank() == 2 && b.Rank() == 2:
		m, k, n := a.shape[0], a.shape[1], b.shape[1]
		if k != b.shape[0] {
			return Array{}, dotMismatch(a, b)
		}

		out := make([]complex128, m*n)
		for i := range m {
			for j := range n {
				for l := range k {
					out[i*n+j] += a.data[i*k+l] * b.data[l*n+j]
				}
			}
		}

		return Array{shape: []int{m, n}, data: out, complex: isComplex}, nil
	}

	return Array{}, ErrUnsupportedRank.With(
		slog.String("function", "dot"),
		slog.Any("left", a.shape),
		slog.Any("right", b.shape),
	)
}

func dotMismatch(a, b Array) error {
	return ErrShapeMismatch.With(
		slog.String("function", "dot"),
		slog.Any("left", a.shape),
		slog.Any("right", b.shape),
	)
}

// Vdot returns the inner product of the flattened operands, conjugating a.
func Vdot(a, b Array) (Array, error) {
	va, vb := a.values(), b.values()
	if len(va) != len(vb) {
		return Array{}, ErrShapeMismatch.With(
			slog.String("function", "vdot"),
			slog.Any("left", a.shape),
			slog.Any("right", b.shape),
		)
	}

	var s complex128
	for i, v := range va {
		s += cmplx.Conj(v) * vb[i]
	}

	return Array{data: []complex128{s}, complex: a.complex || b.complex}, nil
}

// Cross returns the cross product of two 3-vectors, or the scalar z
// component for two 2-vectors.
func Cross(a, b Array) (Array, error) {
	if a.Rank() != 1 || b.Rank() != 1 || a.shape[0] != b.shape[0] {
		return Array{}, ErrShapeMismatch.With(
			slog.String("function", "cross"),
			slog.Any("left", a.shape),
			slog.Any("right", b.shape),
		)
	}

	x, y := a.data, b.data
	isComplex := a.complex || b.complex

	switch a.shape[0] {
	case 2:
		return Array{
			data:    []complex128{x[0]*y[1] - x[1]*y[0]},
			complex: isComplex,
		}, nil
	case 3:
		return Array{
			shape: []int{3},
			data: []complex128{
				x[1]*y[2] - x[2]*y[1],
				x[2]*y[0] - x[0]*y[2],
				x[0]*y[1] - x[1]*y[0],
			},
			complex: isComplex,
		}, nil
	}

	return Array{}, ErrUnsupportedRank.With(
		slog.String("function", "cross"),
		slog.Int("len", a.shape[0]),
	)
}
