package variable

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/value"
)

// Variables is an ordered namespace of variables. Names are unique;
// setting an existing name replaces its variable in place.
//
// A nil *Variables is an empty namespace. The zero value is ready to use
// with default options.
type Variables struct {
	vars  map[string]Variable
	names []string
	options
	mu sync.RWMutex
}

// NewVariables returns an empty namespace.
func NewVariables(opts ...Option) *Variables {
	return &Variables{
		vars:    make(map[string]Variable),
		options: makeOptions(opts...),
	}
}

// Set binds name to v.
func (vs *Variables) Set(name string, v Variable) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if vs.vars == nil {
		vs.vars = make(map[string]Variable)
	}

	if _, ok := vs.vars[name]; !ok {
		vs.names = append(vs.names, name)
	}

	vs.vars[name] = v

	vs.logger.Trace("namespace entry",
		slog.String("name", name),
		slog.String("variable", v.String()),
	)
}

// Get returns the variable bound to name.
func (vs *Variables) Get(name string) (Variable, bool) {
	if vs == nil {
		return nil, false
	}

	vs.mu.RLock()
	defer vs.mu.RUnlock()

	v, ok := vs.vars[name]

	return v, ok
}

// Names returns the bound names in insertion order.
func (vs *Variables) Names() []string {
	if vs == nil {
		return nil
	}

	vs.mu.RLock()
	defer vs.mu.RUnlock()

	return slices.Clone(vs.names)
}

// Len returns the number of bound names.
func (vs *Variables) Len() int {
	if vs == nil {
		return 0
	}

	vs.mu.RLock()
	defer vs.mu.RUnlock()

	return len(vs.names)
}

// All iterates over the namespace in insertion order.
func (vs *Variables) All() iter.Seq2[string, Variable] {
	return func(yield func(string, Variable) bool) {
		for _, name := range vs.Names() {
			v, ok := vs.Get(name)
			if ok && !yield(name, v) {
				return
			}
		}
	}
}

// String lists the namespace one "name: variable" entry per line.
func (vs *Variables) String() string {
	var sb strings.Builder

	for name, v := range vs.All() {
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(v.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Eval evaluates the variable bound to name at p. A p without namespace
// resolves names in vs.
func (vs *Variables) Eval(name string, p Point) (value.Array, error) {
	v, err := vs.lookup(name)
	if err != nil {
		return value.Array{}, err
	}

	if p.Namespace == nil {
		p.Namespace = vs
	}

	return v.Eval(&p)
}

// NodalValues evaluates the variable bound to name at mesh vertices.
func (vs *Variables) NodalValues(name string, a NodalArgs) (value.Array, error) {
	v, err := vs.lookup(name)
	if err != nil {
		return value.Array{}, err
	}

	if a.Namespace == nil {
		a.Namespace = vs
	}

	vs.logger.Trace("nodal values",
		slog.String("name", name),
		slog.Int("vertices", a.size()),
		slog.Int("elements", len(a.Elements)),
	)

	return v.NodalValues(&a)
}

// NCFaceValues evaluates the variable bound to name at face samples.
func (vs *Variables) NCFaceValues(name string, a FaceArgs) (value.Array, error) {
	return vs.ncValues(name, a, Variable.NCFaceValues)
}

// NCEdgeValues evaluates the variable bound to name at edge samples.
func (vs *Variables) NCEdgeValues(name string, a FaceArgs) (value.Array, error) {
	return vs.ncValues(name, a, Variable.NCEdgeValues)
}

func (vs *Variables) ncValues(
	name string,
	a FaceArgs,
	method func(Variable, *FaceArgs) (value.Array, error),
) (value.Array, error) {
	v, err := vs.lookup(name)
	if err != nil {
		return value.Array{}, err
	}

	if a.Namespace == nil {
		a.Namespace = vs
	}

	vs.logger.Trace("sample values",
		slog.String("name", name),
		slog.Int("faces", len(a.Faces)),
		slog.Int("points", a.size()),
	)

	return method(v, &a)
}

// EmeshIndex returns the mesh slots needed to evaluate name.
func (vs *Variables) EmeshIndex(name string) ([]int, error) {
	v, err := vs.lookup(name)
	if err != nil {
		return nil, err
	}

	return emeshIndex(v, nil, vs, map[Variable]bool{}), nil
}

func (vs *Variables) lookup(name string) (Variable, error) {
	v, ok := vs.Get(name)
	if !ok {
		return nil, lang.ErrUnresolvedName.With(
			slog.String("name", name),
			slog.Any("locals", vs.Names()),
		)
	}

	return v, nil
}

func (vs *Variables) maxDepth() int {
	if vs == nil || vs.options.maxDepth <= 0 {
		return DefaultMaxDepth
	}

	return vs.options.maxDepth
}
