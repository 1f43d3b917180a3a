package variable

import (
	"log/slog"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/value"
)

// Point is the context of a single point evaluation. It is owned by the
// caller and never modified by the variables evaluating it.
type Point struct {
	// T maps the integration point to physical space.
	T fem.ElementTransformation
	// Namespace resolves names referenced by expressions.
	Namespace *Variables
	// Locals are extra name bindings visible to expressions.
	Locals map[string]value.Array
	// Time, if set, is appended to the coordinates passed to functions.
	Time *float64
	// Knowns holds precomputed dependency values for functions, indexed
	// by Index.
	Knowns Knowns
	// IP is the integration point in reference coordinates.
	IP fem.IntegrationPoint
	// Index selects the row of Knowns belonging to this point.
	Index int

	depth int
}

// Knowns holds precomputed values of variables with one row per point.
type Knowns map[Variable]value.Array

// coords returns the physical coordinates of p.
func (p *Point) coords() ([]float64, error) {
	if p.T == nil {
		return nil, ErrNoTransformation
	}

	return p.T.Transform(p.IP), nil
}

// child returns a copy of p one dependency level deeper. A non-nil ns
// replaces the namespace.
func (p *Point) child(ns *Variables) (*Point, error) {
	q := *p
	q.depth++

	if ns != nil {
		q.Namespace = ns
	}

	if err := checkDepth(q.depth, p.Namespace); err != nil {
		return nil, err
	}

	return &q, nil
}

func checkDepth(depth int, ns *Variables) error {
	if limit := ns.maxDepth(); depth > limit {
		return ErrMaxDepthExceeded.With(
			slog.Int("depth", depth),
			slog.Int("limit", limit),
		)
	}

	return nil
}

// known returns the precomputed row idx of the variable named name.
func known(ns *Variables, k Knowns, name string, idx int) (value.Array, error) {
	v, err := ns.lookup(name)
	if err != nil {
		return value.Array{}, err
	}

	tab, ok := k[v]
	if !ok {
		return value.Array{}, ErrMissingKnown.With(slog.String("name", name))
	}

	return tab.Row(idx)
}

// Probe evaluates a variable in two steps: [Probe.SetPoint] stores the
// context and [Probe.Call] evaluates it. The variable itself holds no
// per-point state.
type Probe struct {
	v     Variable
	point Point
	set   bool
}

// NewProbe returns a probe of v with no point set.
func NewProbe(v Variable) *Probe { return &Probe{v: v} }

// Variable returns the probed variable.
func (pr *Probe) Variable() Variable { return pr.v }

// SetPoint stores p for subsequent calls.
func (pr *Probe) SetPoint(p Point) {
	pr.point = p
	pr.set = true
}

// Call evaluates the variable at the stored point.
func (pr *Probe) Call() (value.Array, error) {
	if !pr.set {
		return value.Array{}, ErrPointNotSet.With(slog.String("variable", pr.v.String()))
	}

	p := pr.point

	return pr.v.Eval(&p)
}
