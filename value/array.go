package value

import (
	"fmt"
	"log/slog"
	"math/cmplx"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Array is an immutable n-dimensional array of numbers.
//
// The zero Array is the real scalar 0.
type Array struct {
	shape   []int
	data    []complex128
	complex bool
}

// Scalar returns a real rank-0 array.
func Scalar(v float64) Array {
	return Array{data: []complex128{complex(v, 0)}}
}

// ComplexScalar returns a complex rank-0 array.
func ComplexScalar(v complex128) Array {
	return Array{data: []complex128{v}, complex: true}
}

// Vector returns a real rank-1 array holding v.
func Vector(v ...float64) Array {
	data := make([]complex128, len(v))
	for i, x := range v {
		data[i] = complex(x, 0)
	}

	return Array{shape: []int{len(v)}, data: data}
}

// ComplexVector returns a complex rank-1 array holding v.
func ComplexVector(v ...complex128) Array {
	return Array{shape: []int{len(v)}, data: slices.Clone(v), complex: true}
}

// New returns an array with the given shape and row-major data.
// The data slice is copied.
func New(shape []int, data []complex128, isComplex bool) (Array, error) {
	if size(shape) != len(data) {
		return Array{}, ErrShapeMismatch.With(
			slog.Any("shape", shape),
			slog.Int("elements", len(data)),
		)
	}

	return Array{
		shape:   slices.Clone(shape),
		data:    slices.Clone(data),
		complex: isComplex,
	}, nil
}

// Zeros returns an array of the given shape filled with zero.
func Zeros(shape []int, isComplex bool) Array {
	return Array{
		shape:   slices.Clone(shape),
		data:    make([]complex128, size(shape)),
		complex: isComplex,
	}
}

// Tile returns an array of shape (n, a.Shape()...) holding n copies of a.
func Tile(n int, a Array) Array {
	src := a.values()
	data := make([]complex128, 0, n*len(src))

	for range n {
		data = append(data, src...)
	}

	return Array{
		shape:   append([]int{n}, a.shape...),
		data:    data,
		complex: a.complex,
	}
}

// Stack joins arrays of identical shape along a new leading dimension.
// Stacking no arrays yields an empty array of shape (0,).
func Stack(rows ...Array) (Array, error) {
	if len(rows) == 0 {
		return Array{shape: []int{0}, data: []complex128{}}, nil
	}

	inner := rows[0].shape
	out := Array{shape: append([]int{len(rows)}, inner...)}
	out.data = make([]complex128, 0, len(rows)*size(inner))

	for i, r := range rows {
		if !slices.Equal(r.shape, inner) {
			return Array{}, ErrShapeMismatch.With(
				slog.Int("row", i),
				slog.Any("left", inner),
				slog.Any("right", r.shape),
			)
		}

		out.data = append(out.data, r.values()...)
		out.complex = out.complex || r.complex
	}

	return out, nil
}

// From converts a Go value into an Array.
//
// Supported inputs are Array and *Array, all integer, float, complex and
// bool kinds, slices of those, and (possibly nested) []any whose elements
// are themselves convertible and of equal shape.
func From(v any) (Array, error) {
	switch x := v.(type) {
	case Array:
		return x, nil
	case *Array:
		if x == nil {
			return Array{}, ErrInvalidValue.With(slog.String("type", "nil"))
		}

		return *x, nil
	case float64:
		return Scalar(x), nil
	case int:
		return Scalar(float64(x)), nil
	case complex128:
		return ComplexScalar(x), nil
	case bool:
		if x {
			return Scalar(1), nil
		}

		return Scalar(0), nil
	case []float64:
		return Vector(x...), nil
	case []complex128:
		return ComplexVector(x...), nil
	case []any:
		rows := make([]Array, len(x))

		for i, e := range x {
			r, err := From(e)
			if err != nil {
				return Array{}, err
			}

			rows[i] = r
		}

		return Stack(rows...)
	case nil:
		return Array{}, ErrInvalidValue.With(slog.String("type", "nil"))
	}

	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (Array, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return Scalar(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Scalar(rv.Float()), nil
	case reflect.Complex64, reflect.Complex128:
		return ComplexScalar(rv.Complex()), nil
	case reflect.Slice, reflect.Array:
		rows := make([]Array, rv.Len())

		for i := range rv.Len() {
			r, err := From(rv.Index(i).Interface())
			if err != nil {
				return Array{}, err
			}

			rows[i] = r
		}

		return Stack(rows...)
	default:
		return Array{}, ErrInvalidValue.With(
			slog.String("type", rv.Type().String()),
		)
	}
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

// values returns the backing data, treating the zero Array as scalar 0.
func (a Array) values() []complex128 {
	if a.data == nil {
		return []complex128{0}
	}

	return a.data
}

// Shape returns a copy of the dimensions of a.
func (a Array) Shape() []int { return slices.Clone(a.shape) }

// Rank returns the number of dimensions of a.
func (a Array) Rank() int { return len(a.shape) }

// Size returns the total number of elements in a.
func (a Array) Size() int { return size(a.shape) }

// Len returns the leading dimension of a, or 1 for scalars.
func (a Array) Len() int {
	if len(a.shape) == 0 {
		return 1
	}

	return a.shape[0]
}

// IsScalar reports whether a has rank zero.
func (a Array) IsScalar() bool { return len(a.shape) == 0 }

// IsComplex reports whether a holds complex data.
func (a Array) IsComplex() bool { return a.complex }

// AsComplex returns a with its complex flag set to c.
// Imaginary parts are kept; callers use [Array.Real] to drop them.
func (a Array) AsComplex(c bool) Array {
	a.complex = c

	return a
}

// Float returns the real part of the first element of a.
func (a Array) Float() float64 { return real(a.values()[0]) }

// Complex returns the first element of a.
func (a Array) Complex() complex128 { return a.values()[0] }

// Floats returns the real parts of all elements in row-major order.
func (a Array) Floats() []float64 {
	vals := a.values()
	out := make([]float64, len(vals))

	for i, v := range vals {
		out[i] = real(v)
	}

	return out
}

// Data returns a copy of all elements in row-major order.
func (a Array) Data() []complex128 { return slices.Clone(a.values()) }

// Row returns the i-th sub-array along the leading dimension.
// Negative indices count from the end. A scalar is returned unchanged.
func (a Array) Row(i int) (Array, error) {
	if len(a.shape) == 0 {
		return a, nil
	}

	n := a.shape[0]
	if i < 0 {
		i += n
	}

	if i < 0 || i >= n {
		return Array{}, ErrIndexOutOfRange.With(
			slog.Int("index", i),
			slog.Int("len", n),
		)
	}

	stride := size(a.shape[1:])

	return Array{
		shape:   slices.Clone(a.shape[1:]),
		data:    slices.Clone(a.data[i*stride : (i+1)*stride]),
		complex: a.complex,
	}, nil
}

// Rows returns every sub-array along the leading dimension.
func (a Array) Rows() []Array {
	if len(a.shape) == 0 {
		return []Array{a}
	}

	out := make([]Array, a.shape[0])
	for i := range out {
		out[i], _ = a.Row(i)
	}

	return out
}

// Column returns column k of a rank-2 array as a vector.
func (a Array) Column(k int) (Array, error) {
	if len(a.shape) != 2 {
		return Array{}, ErrUnsupportedRank.With(slog.Any("shape", a.shape))
	}

	n, m := a.shape[0], a.shape[1]
	if k < 0 || k >= m {
		return Array{}, ErrIndexOutOfRange.With(
			slog.Int("index", k),
			slog.Int("len", m),
		)
	}

	vals := a.values()
	data := make([]complex128, n)

	for i := range n {
		data[i] = vals[i*m+k]
	}

	return Array{shape: []int{n}, data: data, complex: a.complex}, nil
}

// At returns the element at the given multi-index.
func (a Array) At(idx ...int) (complex128, error) {
	if len(idx) != len(a.shape) {
		return 0, ErrShapeMismatch.With(
			slog.Any("shape", a.shape),
			slog.Any("index", idx),
		)
	}

	flat := 0

	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return 0, ErrIndexOutOfRange.With(
				slog.Int("index", i),
				slog.Int("len", a.shape[k]),
			)
		}

		flat = flat*a.shape[k] + i
	}

	return a.values()[flat], nil
}

// Reshape returns a with a new shape of the same size.
func (a Array) Reshape(shape ...int) (Array, error) {
	if size(shape) != len(a.values()) {
		return Array{}, ErrShapeMismatch.With(
			slog.Any("left", a.shape),
			slog.Any("right", shape),
		)
	}

	return Array{
		shape:   slices.Clone(shape),
		data:    a.values(),
		complex: a.complex,
	}, nil
}

// Equal reports whether a and b have the same shape and elements.
func (a Array) Equal(b Array) bool {
	return slices.Equal(a.shape, b.shape) &&
		slices.Equal(a.values(), b.values())
}

// Real returns the real parts of a as a real array.
func (a Array) Real() Array {
	return a.mapValues(false, func(v complex128) complex128 {
		return complex(real(v), 0)
	})
}

// Imag returns the imaginary parts of a as a real array.
func (a Array) Imag() Array {
	return a.mapValues(false, func(v complex128) complex128 {
		return complex(imag(v), 0)
	})
}

// Conj returns the complex conjugate of a.
func (a Array) Conj() Array {
	return a.mapValues(a.complex, cmplx.Conj)
}

// Abs returns the elementwise magnitude of a as a real array.
func (a Array) Abs() Array {
	return a.mapValues(false, func(v complex128) complex128 {
		return complex(cmplx.Abs(v), 0)
	})
}

func (a Array) mapValues(
	isComplex bool,
	fn func(complex128) complex128,
) Array {
	vals := a.values()
	out := make([]complex128, len(vals))

	for i, v := range vals {
		out[i] = fn(v)
	}

	return Array{shape: slices.Clone(a.shape), data: out, complex: isComplex}
}

// Any converts a into plain Go values suitable for encoding: float64 (or a
// formatted string for complex elements) nested in []any by dimension.
func (a Array) Any() any {
	vals := a.values()
	if len(a.shape) == 0 {
		return a.elemAny(vals[0])
	}

	var build func(dim, off int) any

	build = func(dim, off int) any {
		n := a.shape[dim]
		out := make([]any, n)
		stride := size(a.shape[dim+1:])

		for i := range n {
			if dim == len(a.shape)-1 {
				out[i] = a.elemAny(vals[off+i])
			} else {
				out[i] = build(dim+1, off+i*stride)
			}
		}

		return out
	}

	return build(0, 0)
}

func (a Array) elemAny(v complex128) any {
	if !a.complex {
		return real(v)
	}

	return formatElem(v, true)
}

// String formats a using bracketed rows, e.g. "[[1 2] [3 4]]".
func (a Array) String() string {
	vals := a.values()
	if len(a.shape) == 0 {
		return formatElem(vals[0], a.complex)
	}

	var sb strings.Builder

	var write func(dim, off int)

	write = func(dim, off int) {
		sb.WriteByte('[')

		stride := size(a.shape[dim+1:])

		for i := range a.shape[dim] {
			if i > 0 {
				sb.WriteByte(' ')
			}

			if dim == len(a.shape)-1 {
				sb.WriteString(formatElem(vals[off+i], a.complex))
			} else {
				write(dim+1, off+i*stride)
			}
		}

		sb.WriteByte(']')
	}

	write(0, 0)

	return sb.String()
}

func formatElem(v complex128, isComplex bool) string {
	if !isComplex {
		return strconv.FormatFloat(real(v), 'g', -1, 64)
	}

	return fmt.Sprintf("(%s%+gj)",
		strconv.FormatFloat(real(v), 'g', -1, 64), imag(v))
}
