package fem

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// CalcOrtho returns the (non-normalised) normal of a codimension-one
// element from its Jacobian. A 2x1 Jacobian (J00, J10) yields
// (J10, -J00); a 3x2 Jacobian yields the cross product of its columns.
func CalcOrtho(J mat.Matrix) ([]float64, error) {
	r, c := J.Dims()

	switch {
	case r == 2 && c == 1:
		return []float64{J.At(1, 0), -J.At(0, 0)}, nil

	case r == 3 && c == 2:
		n := r3.Cross(
			r3.Vec{X: J.At(0, 0), Y: J.At(1, 0), Z: J.At(2, 0)},
			r3.Vec{X: J.At(0, 1), Y: J.At(1, 1), Z: J.At(2, 1)},
		)

		return []float64{n.X, n.Y, n.Z}, nil

	default:
		return nil, ErrJacobianShape.With(
			slog.Int("rows", r),
			slog.Int("cols", c),
		)
	}
}
