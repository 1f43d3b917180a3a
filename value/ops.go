package value

import (
	"log/slog"
	"math"
	"math/cmplx"
	"slices"
)

// Op identifies an elementwise binary operation.
type Op int

// Binary operations supported by [Binary].
const (
	OpAdd Op = iota // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
	OpPow           // **
	OpMod           // %
	OpLT            // <
	OpLE            // <=
	OpGT            // >
	OpGE            // >=
	OpEQ            // ==
	OpNE            // !=
	OpMin           // min
	OpMax           // max
)

var opName = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "**", OpMod: "%",
	OpLT: "<", OpLE: "<=", OpGT: ">", OpGE: ">=", OpEQ: "==", OpNE: "!=",
	OpMin: "min", OpMax: "max",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opName) {
		return "?"
	}

	return opName[o]
}

// comparison reports whether o yields a real 0/1 result.
func (o Op) comparison() bool { return o >= OpLT && o <= OpNE }

func boolValue(b bool) complex128 {
	if b {
		return 1
	}

	return 0
}

// kernel returns the elementwise function for o. Real operands use real
// arithmetic so that, for example, division by zero yields ±Inf.
func (o Op) kernel(isComplex bool) func(x, y complex128) complex128 {
	lift := func(f func(a, b float64) float64) func(x, y complex128) complex128 {
		return func(x, y complex128) complex128 {
			return complex(f(real(x), real(y)), 0)
		}
	}

	switch o {
	case OpAdd:
		return func(x, y complex128) complex128 { return x + y }
	case OpSub:
		return func(x, y complex128) complex128 { return x - y }
	case OpMul:
		if !isComplex {
			return lift(func(a, b float64) float64 { return a * b })
		}

		return func(x, y complex128) complex128 { return x * y }
	case OpDiv:
		if !isComplex {
			return lift(func(a, b float64) float64 { return a / b })
		}

		return func(x, y complex128) complex128 { return x / y }
	case OpPow:
		if !isComplex {
			return lift(math.Pow)
		}

		return cmplx.Pow
	case OpMod:
		return lift(func(a, b float64) float64 { return a - b*math.Floor(a/b) })
	case OpLT:
		return func(x, y complex128) complex128 { return boolValue(real(x) < real(y)) }
	case OpLE:
		return func(x, y complex128) complex128 { return boolValue(real(x) <= real(y)) }
	case OpGT:
		return func(x, y complex128) complex128 { return boolValue(real(x) > real(y)) }
	case OpGE:
		return func(x, y complex128) complex128 { return boolValue(real(x) >= real(y)) }
	case OpEQ:
		return func(x, y complex128) complex128 { return boolValue(x == y) }
	case OpNE:
		return func(x, y complex128) complex128 { return boolValue(x != y) }
	case OpMin:
		return func(x, y complex128) complex128 {
			if real(y) < real(x) {
				return y
			}

			return x
		}
	case OpMax:
		return func(x, y complex128) complex128 {
			if real(y) > real(x) {
				return y
			}

			return x
		}
	}

	return nil
}

// Binary applies o elementwise using conventional broadcasting: shapes are
// aligned on their trailing dimensions and unit dimensions stretch.
func Binary(o Op, a, b Array) (Array, error) {
	shape, err := broadcastShape(a.shape, b.shape)
	if err != nil {
		return Array{}, err
	}

	return combine(o, a, b, shape)
}

// Unary applies a sign operator ("-" or "+") to a.
func Unary(op string, a Array) (Array, error) {
	switch op {
	case "+":
		return a, nil
	case "-":
		return a.mapValues(a.complex, func(v complex128) complex128 { return -v }), nil
	default:
		return Array{}, ErrInvalidValue.With(slog.String("operator", op))
	}
}

// Apply maps a over every element. Real arrays use fr. Complex arrays use fc
// when it is non-nil; otherwise fr is applied to the real parts.
func Apply(a Array, fr func(float64) float64, fc func(complex128) complex128) Array {
	if a.complex && fc != nil {
		return a.mapValues(true, fc)
	}

	return a.mapValues(false, func(v complex128) complex128 {
		return complex(fr(real(v)), 0)
	})
}

// Map2 applies the real function fn to the conventional broadcast of a and
// b. Imaginary parts are ignored.
func Map2(a, b Array, fn func(x, y float64) float64) (Array, error) {
	shape, err := broadcastShape(a.shape, b.shape)
	if err != nil {
		return Array{}, err
	}

	ia, ib := indexer(a.shape, shape), indexer(b.shape, shape)
	va, vb := a.values(), b.values()

	out := make([]complex128, size(shape))
	for i := range out {
		out[i] = complex(fn(real(va[ia(i)]), real(vb[ib(i)])), 0)
	}

	return Array{shape: shape, data: out}, nil
}

// Where selects elementwise from a where cond is non-zero and from b
// elsewhere, broadcasting all three operands conventionally.
func Where(cond, a, b Array) (Array, error) {
	shape, err := broadcastShape(cond.shape, a.shape)
	if err != nil {
		return Array{}, err
	}

	if shape, err = broadcastShape(shape, b.shape); err != nil {
		return Array{}, err
	}

	ic := indexer(cond.shape, shape)
	ia, ib := indexer(a.shape, shape), indexer(b.shape, shape)
	vc, va, vb := cond.values(), a.values(), b.values()

	out := make([]complex128, size(shape))
	for i := range out {
		if vc[ic(i)] != 0 {
			out[i] = va[ia(i)]
		} else {
			out[i] = vb[ib(i)]
		}
	}

	return Array{shape: shape, data: out, complex: a.complex || b.complex}, nil
}

// broadcastShape computes the conventional broadcast of two shapes.
func broadcastShape(x, y []int) ([]int, error) {
	n := max(len(x), len(y))
	out := make([]int, n)

	for i := 1; i <= n; i++ {
		dx, dy := 1, 1
		if i <= len(x) {
			dx = x[len(x)-i]
		}

		if i <= len(y) {
			dy = y[len(y)-i]
		}

		switch {
		case dx == dy, dy == 1:
			out[n-i] = dx
		case dx == 1:
			out[n-i] = dy
		default:
			return nil, ErrShapeMismatch.With(
				slog.Any("left", x),
				slog.Any("right", y),
			)
		}
	}

	return out, nil
}

// combine evaluates o over the broadcast shape. Operand shapes must already
// be broadcast-compatible with shape.
func combine(o Op, a, b Array, shape []int) (Array, error) {
	isComplex := (a.complex || b.complex) && !o.comparison()
	if o == OpMod && isComplex {
		return Array{}, ErrInvalidValue.With(
			slog.String("operator", o.String()),
			slog.String("issue", "complex operand"),
		)
	}

	fn := o.kernel(a.complex || b.complex)
	ia := indexer(a.shape, shape)
	ib := indexer(b.shape, shape)
	va, vb := a.values(), b.values()

	out := make([]complex128, size(shape))
	for i := range out {
		out[i] = fn(va[ia(i)], vb[ib(i)])
	}

	if (o == OpMin || o == OpMax) && !isComplex {
		for i, v := range out {
			out[i] = complex(real(v), 0)
		}
	}

	return Array{shape: slices.Clone(shape), data: out, complex: isComplex}, nil
}

// indexer maps a flat index in the broadcast shape out onto a flat index in
// an operand of shape in, right-aligned against out.
func indexer(in, out []int) func(int) int {
	if size(in) == 1 {
		return func(int) int { return 0 }
	}

	if slices.Equal(in, out) {
		return func(i int) int { return i }
	}

	off := len(out) - len(in)
	strides := make([]int, len(out))
	s := 1

	for k := len(in) - 1; k >= 0; k-- {
		if in[k] != 1 {
			strides[off+k] = s
		}

		s *= in[k]
	}

	return func(i int) int {
		flat := 0

		for k := len(out) - 1; k >= 0; k-- {
			flat += (i % out[k]) * strides[k]
			i /= out[k]
		}

		return flat
	}
}
