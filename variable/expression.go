package variable

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/value"
)

// Expression is a compiled expression over the coordinate names and other
// variables of the namespace.
type Expression struct {
	expr    *lang.Expr
	complex bool
}

// NewExpression compiles source. indVars names the coordinate axes in
// order.
func NewExpression(
	source string,
	indVars []string,
	complex bool,
	opts ...lang.Option,
) (*Expression, error) {
	e, err := lang.Compile(source, indVars, opts...)
	if err != nil {
		return nil, err
	}

	return &Expression{expr: e, complex: complex}, nil
}

// Source returns the expression text.
func (e *Expression) Source() string { return e.expr.Source() }

// Complex reports whether values are complex.
func (e *Expression) Complex() bool { return e.complex }

// Dependency returns the free names of the expression other than the
// coordinate axes.
func (e *Expression) Dependency() []string {
	ind := e.expr.IndVars()

	return slices.DeleteFunc(e.expr.Names(), func(n string) bool {
		return slices.Contains(ind, n)
	})
}

// Eval evaluates the expression at p. Free names are bound, in increasing
// precedence, to p.Locals, the coordinate axes, and the values of
// namespace variables at p.
func (e *Expression) Eval(p *Point) (value.Array, error) {
	return e.eval(p, nil)
}

func (e *Expression) eval(p *Point, extra map[string]value.Array) (value.Array, error) {
	x, err := p.coords()
	if err != nil {
		return value.Array{}, err
	}

	locals := maps.Clone(p.Locals)
	if locals == nil {
		locals = make(map[string]value.Array)
	}

	for k, name := range e.expr.IndVars() {
		if k < len(x) {
			locals[name] = value.Scalar(x[k])
		}
	}

	maps.Copy(locals, extra)

	for _, name := range e.expr.Names() {
		if _, ok := extra[name]; ok {
			continue
		}

		v, ok := p.Namespace.Get(name)
		if !ok {
			continue
		}

		q, err := p.child(nil)
		if err != nil {
			return value.Array{}, err
		}

		val, err := v.Eval(q)
		if err != nil {
			return value.Array{}, err
		}

		locals[name] = val
	}

	out, err := e.expr.Eval(locals)
	if err != nil {
		return value.Array{}, err
	}

	return e.result(out), nil
}

// NodalValues evaluates the expression at every vertex and zeroes
// vertices of uncovered elements.
func (e *Expression) NodalValues(a *NodalArgs) (value.Array, error) {
	return e.nodal(a, nil)
}

func (e *Expression) nodal(a *NodalArgs, extra map[string]value.Array) (value.Array, error) {
	q, err := a.child(nil)
	if err != nil {
		return value.Array{}, err
	}

	mask, err := a.mask()
	if err != nil {
		return value.Array{}, err
	}

	vals, err := e.batch(batchInput{
		size:  a.size(),
		locs:  a.Locs,
		ns:    a.Namespace,
		extra: extra,
		dep:   func(v Variable) (value.Array, error) { return v.NodalValues(q) },
	})
	if err != nil {
		return value.Array{}, err
	}

	out, err := value.Multi(mask, vals)
	if err != nil {
		return value.Array{}, err
	}

	return e.result(out), nil
}

// NCFaceValues evaluates the expression at face sample points.
func (e *Expression) NCFaceValues(a *FaceArgs) (value.Array, error) {
	return e.samples(a, nil, Variable.NCFaceValues)
}

// NCEdgeValues evaluates the expression at edge sample points.
func (e *Expression) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return e.samples(a, nil, Variable.NCEdgeValues)
}

func (e *Expression) samples(
	a *FaceArgs,
	extra map[string]value.Array,
	method func(Variable, *FaceArgs) (value.Array, error),
) (value.Array, error) {
	q, err := a.child(nil)
	if err != nil {
		return value.Array{}, err
	}

	out, err := e.batch(batchInput{
		size:  a.size(),
		locs:  a.Locs,
		ns:    a.Namespace,
		extra: extra,
		dep:   func(v Variable) (value.Array, error) { return method(v, q) },
	})
	if err != nil {
		return value.Array{}, err
	}

	return e.result(out), nil
}

// EmeshIndex collects the mesh slots of the variables the expression
// references.
func (e *Expression) EmeshIndex(idx []int, ns *Variables) []int {
	return e.emeshIndex(idx, ns, map[Variable]bool{e: true})
}

func (e *Expression) emeshIndex(idx []int, ns *Variables, seen map[Variable]bool) []int {
	for _, name := range e.expr.Names() {
		if v, ok := ns.Get(name); ok {
			idx = emeshIndex(v, idx, ns, seen)
		}
	}

	return idx
}

func (e *Expression) String() string { return "Expression(" + e.expr.Source() + ")" }

func (e *Expression) result(a value.Array) value.Array {
	if e.complex {
		return a.AsComplex(true)
	}

	return a
}

// batchInput holds the per-point arrays an expression is evaluated over.
type batchInput struct {
	locs  value.Array
	ns    *Variables
	extra map[string]value.Array
	dep   func(Variable) (value.Array, error)
	size  int
}

// batch evaluates the expression at size points. Bindings are columns
// whose leading dimension is the point index: extra first, then namespace
// variables evaluated through dep, then coordinate columns of locs.
//
// Constant expressions are evaluated once and tiled. Elementwise
// expressions without variable dependencies are evaluated once over whole
// columns. Everything else is evaluated point by point.
func (e *Expression) batch(in batchInput) (value.Array, error) {
	if e.expr.Constant() {
		v, err := e.expr.Eval(nil)
		if err != nil {
			return value.Array{}, err
		}

		return value.Tile(in.size, v), nil
	}

	names := e.expr.Names()
	cols := make(map[string]value.Array, len(names))
	deps := false

	for _, name := range names {
		if col, ok := in.extra[name]; ok {
			cols[name] = col

			continue
		}

		v, ok := in.ns.Get(name)
		if !ok {
			continue
		}

		col, err := in.dep(v)
		if err != nil {
			return value.Array{}, err
		}

		cols[name] = col
		deps = true
	}

	for k, name := range e.expr.IndVars() {
		if _, ok := cols[name]; ok || !slices.Contains(names, name) {
			continue
		}

		col, err := in.locs.Column(k)
		if err != nil {
			return value.Array{}, ErrMissingBatchInput.Wrap(err).With(
				slog.String("input", "Locs"),
				slog.String("axis", name),
			)
		}

		cols[name] = col
	}

	for name, col := range cols {
		if col.Rank() == 0 || col.Len() != in.size {
			return value.Array{}, value.ErrShapeMismatch.With(
				slog.String("name", name),
				slog.Any("shape", col.Shape()),
				slog.Int("points", in.size),
			)
		}
	}

	if !deps && e.expr.Elementwise() && columns(cols) {
		v, err := e.expr.Eval(cols)
		if err != nil {
			return value.Array{}, err
		}

		if v.IsScalar() {
			return value.Tile(in.size, v), nil
		}

		return v, nil
	}

	rows := make([]value.Array, in.size)
	locals := make(map[string]value.Array, len(cols))

	for i := range rows {
		for name, col := range cols {
			row, err := col.Row(i)
			if err != nil {
				return value.Array{}, err
			}

			locals[name] = row
		}

		v, err := e.expr.Eval(locals)
		if err != nil {
			return value.Array{}, err
		}

		rows[i] = v
	}

	return value.Stack(rows...)
}

// columns reports whether every binding holds one scalar per point.
func columns(cols map[string]value.Array) bool {
	for _, col := range cols {
		if col.Rank() != 1 {
			return false
		}
	}

	return true
}
