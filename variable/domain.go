package variable

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/value"
)

// Domain is a piecewise variable. Each piece is valid on a set of
// subdomain ids and may resolve names in its own namespace.
type Domain struct {
	pieces []piece
	options
	complex bool
}

type piece struct {
	v       Variable
	ns      *Variables
	domains []int
}

// NewDomain returns a piecewise variable with no pieces.
func NewDomain(opts ...Option) *Domain {
	return &Domain{options: makeOptions(opts...)}
}

// AddExpression registers expr on domains. A non-nil override resolves
// the names of expr instead of the evaluation namespace. Registering the
// same set of domains again replaces that piece.
func (d *Domain) AddExpression(
	expr string,
	indVars []string,
	domains []int,
	override *Variables,
	complex bool,
) error {
	e, err := NewExpression(expr, indVars, complex, lang.WithLogger(d.logger))
	if err != nil {
		return err
	}

	d.add(domains, e, override)

	return nil
}

// AddConst registers the constant v on domains.
func (d *Domain) AddConst(v value.Array, domains []int, override *Variables) {
	d.add(domains, NewConstant(v), override)
}

func (d *Domain) add(domains []int, v Variable, ns *Variables) {
	key := slices.Clone(domains)
	slices.Sort(key)
	key = slices.Compact(key)

	p := piece{v: v, ns: ns, domains: key}

	if i := slices.IndexFunc(d.pieces, func(q piece) bool {
		return slices.Equal(q.domains, key)
	}); i >= 0 {
		d.pieces[i] = p
	} else {
		d.pieces = append(d.pieces, p)
	}

	d.complex = d.complex || v.Complex()

	d.logger.Trace("domain piece",
		slog.Any("domains", key),
		slog.String("variable", v.String()),
		slog.Int("pieces", len(d.pieces)),
	)
}

// Domains returns the sorted subdomain ids of every piece in
// registration order.
func (d *Domain) Domains() [][]int {
	out := make([][]int, len(d.pieces))
	for i, p := range d.pieces {
		out[i] = slices.Clone(p.domains)
	}

	return out
}

// Complex reports whether any piece is complex.
func (d *Domain) Complex() bool { return d.complex }

// Dependency returns the union of the pieces' dependencies.
func (d *Domain) Dependency() []string {
	var out []string

	for _, p := range d.pieces {
		for _, name := range p.v.Dependency() {
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}

	return out
}

// Eval evaluates the piece chosen by the piece selection at p, or returns
// zero if there is none.
func (d *Domain) Eval(p *Point) (value.Array, error) {
	var chosen *piece

	switch d.selection {
	case SelectMatchingPiece:
		if p.T == nil {
			return value.Array{}, ErrNoTransformation
		}

		attr := p.T.Attribute()

		for i := range d.pieces {
			if slices.Contains(d.pieces[i].domains, attr) {
				chosen = &d.pieces[i]

				break
			}
		}

	default:
		if n := len(d.pieces); n > 0 {
			chosen = &d.pieces[n-1]
		}
	}

	if chosen == nil {
		return value.Scalar(0).AsComplex(d.complex), nil
	}

	q, err := p.child(chosen.ns)
	if err != nil {
		return value.Array{}, err
	}

	return chosen.v.Eval(q)
}

// NodalValues sums the pieces, each restricted to its own elements, and
// divides every vertex by the number of pieces contributing to it. A
// vertex on an interface gets the mean of the adjacent pieces.
func (d *Domain) NodalValues(a *NodalArgs) (value.Array, error) {
	n := a.size()
	if len(d.pieces) == 0 {
		return value.Zeros([]int{n}, d.complex), nil
	}

	var ret value.Array

	count := make([]float64, n)

	for i, p := range d.pieces {
		sub, err := a.child(p.ns)
		if err != nil {
			return value.Array{}, err
		}

		v, err := p.v.NodalValues(sub.restrict(p.domains))
		if err != nil {
			return value.Array{}, err
		}

		for k, nz := range nonZeroRows(v) {
			if nz && k < n {
				count[k]++
			}
		}

		if i == 0 {
			ret = v

			continue
		}

		if ret, err = value.Add(ret, v); err != nil {
			return value.Array{}, err
		}
	}

	for k := range count {
		if count[k] == 0 {
			count[k] = 1
		}
	}

	return value.Div(ret, value.Vector(count...))
}

// NCFaceValues blends the pieces at face sample points.
func (d *Domain) NCFaceValues(a *FaceArgs) (value.Array, error) {
	return d.samples(a, Variable.NCFaceValues)
}

// NCEdgeValues blends the pieces at edge sample points.
func (d *Domain) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return d.samples(a, Variable.NCEdgeValues)
}

// samples weights each piece on a face by 1/k, where k is the number of
// pieces containing either adjacent attribute. Pieces containing neither
// contribute nothing on that face.
func (d *Domain) samples(
	a *FaceArgs,
	method func(Variable, *FaceArgs) (value.Array, error),
) (value.Array, error) {
	if len(d.pieces) == 0 {
		return value.Zeros([]int{a.size()}, d.complex), nil
	}

	if len(a.Attr1) != len(a.Faces) {
		return value.Array{}, ErrMissingBatchInput.With(
			slog.String("input", "Attr1"),
			slog.Int("faces", len(a.Faces)),
			slog.Int("len", len(a.Attr1)),
		)
	}

	touches := func(p piece, i int) bool {
		if slices.Contains(p.domains, a.Attr1[i]) {
			return true
		}

		return i < len(a.Attr2) && slices.Contains(p.domains, a.Attr2[i])
	}

	npts := make([]int, len(a.Faces))
	count := make([]float64, len(a.Faces))

	for i := range a.Faces {
		ir, err := a.rule(i)
		if err != nil {
			return value.Array{}, err
		}

		npts[i] = len(ir)

		for _, p := range d.pieces {
			if touches(p, i) {
				count[i]++
			}
		}
	}

	var ret value.Array

	for j, p := range d.pieces {
		w := make([]float64, 0, a.size())

		for i := range a.Faces {
			x := 0.0
			if touches(p, i) {
				x = 1 / count[i]
			}

			for range npts[i] {
				w = append(w, x)
			}
		}

		weight := value.Vector(w...)

		sub, err := a.child(p.ns)
		if err != nil {
			return value.Array{}, err
		}

		sub.Weight = weight

		v, err := method(p.v, sub)
		if err != nil {
			return value.Array{}, err
		}

		if v, err = value.Multi(v, weight); err != nil {
			return value.Array{}, err
		}

		if j == 0 {
			ret = v

			continue
		}

		if ret, err = value.Add(ret, v); err != nil {
			return value.Array{}, err
		}
	}

	return ret, nil
}

// EmeshIndex collects the mesh slots of every piece, each resolved in its
// own namespace when it has one.
func (d *Domain) EmeshIndex(idx []int, ns *Variables) []int {
	return d.emeshIndex(idx, ns, map[Variable]bool{d: true})
}

func (d *Domain) emeshIndex(idx []int, ns *Variables, seen map[Variable]bool) []int {
	for _, p := range d.pieces {
		pns := ns
		if p.ns != nil {
			pns = p.ns
		}

		idx = emeshIndex(p.v, idx, pns, seen)
	}

	return idx
}

func (d *Domain) String() string { return "DomainVariable" }

// nonZeroRows reports, per leading index of v, whether any element of the
// row is non-zero.
func nonZeroRows(v value.Array) []bool {
	rows := v.Rows()
	out := make([]bool, len(rows))

	for i, r := range rows {
		out[i] = floats.Norm(r.Abs().Floats(), 1) != 0
	}

	return out
}
