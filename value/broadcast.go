package value

import (
	"log/slog"
	"slices"
)

// Add returns a + b using right-aligned broadcasting.
func Add(a, b Array) (Array, error) { return batch(OpAdd, a, b) }

// Div returns a / b using right-aligned broadcasting.
func Div(a, b Array) (Array, error) { return batch(OpDiv, a, b) }

// Multi returns a * b using right-aligned broadcasting.
func Multi(a, b Array) (Array, error) { return batch(OpMul, a, b) }

// batch combines two per-point arrays. Both must share the leading (point
// count) dimension unless one of them is a scalar. The lower-rank operand is
// padded with unit dimensions on the right; remaining dimensions must be
// equal or one.
func batch(o Op, a, b Array) (Array, error) {
	if a.IsScalar() || b.IsScalar() {
		return Binary(o, a, b)
	}

	mismatch := func() error {
		return ErrShapeMismatch.With(
			slog.String("operator", o.String()),
			slog.Any("left", a.shape),
			slog.Any("right", b.shape),
		)
	}

	if a.shape[0] != b.shape[0] {
		return Array{}, mismatch()
	}

	n := max(len(a.shape), len(b.shape))
	pa, pb := padRight(a.shape, n), padRight(b.shape, n)
	shape := make([]int, n)

	for k := range n {
		switch {
		case pa[k] == pb[k], pb[k] == 1:
			shape[k] = pa[k]
		case pa[k] == 1:
			shape[k] = pb[k]
		default:
			return Array{}, mismatch()
		}
	}

	a.shape, b.shape = pa, pb

	return combine(o, a, b, shape)
}

func padRight(shape []int, n int) []int {
	out := slices.Clone(shape)
	for len(out) < n {
		out = append(out, 1)
	}

	return out
}
