package variable

import (
	"log/slog"
	"slices"

	"github.com/ardnew/fieldvar/value"
)

// Func computes a value from physical coordinates x and the precomputed
// values of its declared dependencies. When a time is set, it is the last
// element of x.
type Func func(x []float64, deps map[string]value.Array) (value.Array, error)

// FunctionOption configures a [Function].
type FunctionOption func(*Function)

// Complex marks the function's values as complex.
func Complex() FunctionOption { return func(f *Function) { f.complex = true } }

// Shape declares the shape of a single value. The default is scalar.
func Shape(dims ...int) FunctionOption {
	return func(f *Function) { f.shape = slices.Clone(dims) }
}

// DependsOn declares the names of variables whose values the function
// reads from the Knowns table.
func DependsOn(names ...string) FunctionOption {
	return func(f *Function) { f.deps = slices.Clone(names) }
}

// Function adapts a native [Func]. Dependencies are not evaluated on
// demand: their values are looked up in the caller-supplied Knowns.
type Function struct {
	fn      Func
	shape   []int
	deps    []string
	complex bool
}

// NewFunction returns a variable calling fn.
func NewFunction(fn Func, opts ...FunctionOption) *Function {
	f := &Function{fn: fn}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Complex reports whether values are complex.
func (f *Function) Complex() bool { return f.complex }

// Dependency returns the declared dependency names.
func (f *Function) Dependency() []string { return slices.Clone(f.deps) }

// Eval calls the function at the physical point of p, with time appended
// when set and dependencies taken from row p.Index of p.Knowns.
func (f *Function) Eval(p *Point) (value.Array, error) {
	x, err := p.coords()
	if err != nil {
		return value.Array{}, err
	}

	if p.Time != nil {
		x = append(x, *p.Time)
	}

	return f.call(x, p.Namespace, p.Knowns, p.Index)
}

// NodalValues calls the function at every vertex of every covered element
// and averages over the number of visits.
func (f *Function) NodalValues(a *NodalArgs) (value.Array, error) {
	n := a.size()

	acc := make([]value.Array, n)
	for i := range acc {
		acc[i] = value.Zeros(f.shape, f.complex)
	}

	visits := make([]float64, n)

	for i, el := range a.Elements {
		if el < 0 || i >= len(a.ElemVerts) {
			continue
		}

		for _, pr := range a.ElemVerts[i] {
			x, err := a.Locs.Row(pr.Global)
			if err != nil {
				return value.Array{}, ErrMissingBatchInput.Wrap(err).
					With(slog.String("input", "Locs"))
			}

			v, err := f.call(x.Floats(), a.Namespace, a.Knowns, pr.Global)
			if err != nil {
				return value.Array{}, err
			}

			if acc[pr.Global], err = value.Binary(value.OpAdd, acc[pr.Global], v); err != nil {
				return value.Array{}, err
			}

			visits[pr.Global]++
		}
	}

	for i := range visits {
		if visits[i] == 0 {
			visits[i] = 1
		}
	}

	sum, err := value.Stack(acc...)
	if err != nil {
		return value.Array{}, err
	}

	return value.Div(sum, value.Vector(visits...))
}

// NCFaceValues calls the function at every sample point.
func (f *Function) NCFaceValues(a *FaceArgs) (value.Array, error) {
	if a.Locs.Rank() != 2 {
		return value.Array{}, ErrMissingBatchInput.With(slog.String("input", "Locs"))
	}

	rows := make([]value.Array, a.Locs.Len())

	for i := range rows {
		x, err := a.Locs.Row(i)
		if err != nil {
			return value.Array{}, err
		}

		if rows[i], err = f.call(x.Floats(), a.Namespace, a.Knowns, i); err != nil {
			return value.Array{}, err
		}
	}

	return value.Stack(rows...)
}

// NCEdgeValues calls the function at every sample point.
func (f *Function) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return f.NCFaceValues(a)
}

// EmeshIndex returns idx.
func (f *Function) EmeshIndex(idx []int, _ *Variables) []int { return idx }

func (f *Function) String() string { return "Function" }

func (f *Function) call(
	x []float64,
	ns *Variables,
	k Knowns,
	idx int,
) (value.Array, error) {
	var deps map[string]value.Array

	if len(f.deps) > 0 {
		deps = make(map[string]value.Array, len(f.deps))

		for _, name := range f.deps {
			v, err := known(ns, k, name, idx)
			if err != nil {
				return value.Array{}, err
			}

			deps[name] = v
		}
	}

	v, err := f.fn(x, deps)
	if err != nil {
		return value.Array{}, err
	}

	if !slices.Equal(v.Shape(), f.shape) {
		return value.Array{}, value.ErrShapeMismatch.With(
			slog.Any("left", f.shape),
			slog.Any("right", v.Shape()),
		)
	}

	if f.complex {
		return v.AsComplex(true), nil
	}

	return v, nil
}
