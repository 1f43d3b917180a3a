package variable

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/value"
)

// Deriv derives the fields an adapter evaluates from the fields it was
// given, e.g. a gradient. It is applied once per adapter. imag is nil for
// real fields.
type Deriv func(real, imag fem.Field) (fem.Field, fem.Field, error)

type fieldPair struct {
	real, imag fem.Field
}

// fieldAdapter holds handles to a real and optional imaginary field.
// Handles are checked against the pool before every use.
type fieldAdapter struct {
	pool    fem.FieldPool
	derived func() (fieldPair, error)
	real    fem.Handle
	imag    fem.Handle
	family  fem.Family
	vdim    int
}

func newFieldAdapter(
	pool fem.FieldPool,
	real, imag fem.Handle,
	deriv Deriv,
) (fieldAdapter, error) {
	r, err := pool.Lookup(real)
	if err != nil {
		return fieldAdapter{}, err
	}

	if !imag.IsZero() {
		if _, err := pool.Lookup(imag); err != nil {
			return fieldAdapter{}, err
		}
	}

	family, err := fem.ParseFamily(r.FamilyName())
	if err != nil {
		return fieldAdapter{}, err
	}

	a := fieldAdapter{
		pool:   pool,
		real:   real,
		imag:   imag,
		family: family,
		vdim:   r.VectorDim(),
	}

	a.derived = sync.OnceValues(func() (fieldPair, error) {
		var (
			fp  fieldPair
			err error
		)

		fp.real, err = pool.Lookup(real)
		if err != nil {
			return fieldPair{}, err
		}

		if !imag.IsZero() {
			if fp.imag, err = pool.Lookup(imag); err != nil {
				return fieldPair{}, err
			}
		}

		if deriv != nil {
			if fp.real, fp.imag, err = deriv(fp.real, fp.imag); err != nil {
				return fieldPair{}, err
			}
		}

		return fp, nil
	})

	return a, nil
}

// fields returns the derived fields after checking the handles are live.
func (a *fieldAdapter) fields() (fieldPair, error) {
	if _, err := a.pool.Lookup(a.real); err != nil {
		return fieldPair{}, err
	}

	if !a.imag.IsZero() {
		if _, err := a.pool.Lookup(a.imag); err != nil {
			return fieldPair{}, err
		}
	}

	return a.derived()
}

// Complex reports whether an imaginary field is paired.
func (a *fieldAdapter) Complex() bool { return !a.imag.IsZero() }

// Dependency returns nil.
func (a *fieldAdapter) Dependency() []string { return nil }

// Family returns the element family of the field.
func (a *fieldAdapter) Family() fem.Family { return a.family }

// EmeshIndex appends the mesh slot of the underlying field.
func (a *fieldAdapter) EmeshIndex(idx []int, _ *Variables) []int {
	for _, h := range []fem.Handle{a.real, a.imag} {
		if h.IsZero() {
			continue
		}

		f, err := a.pool.Lookup(h)
		if err != nil {
			continue
		}

		if slot := f.EmeshIndex(); !slices.Contains(idx, slot) {
			idx = append(idx, slot)
		}

		break
	}

	return idx
}

// scalarAt returns component comp of f at p.
func (a *fieldAdapter) scalarAt(f fem.Field, p *Point, comp int) (float64, error) {
	if !a.family.Vector() {
		return f.Eval(p.T, p.IP, comp)
	}

	v, err := f.EvalVector(p.T, p.IP)
	if err != nil {
		return 0, err
	}

	return component(v, comp)
}

// vectorAt returns every component of f at p.
func (a *fieldAdapter) vectorAt(f fem.Field, p *Point) ([]float64, error) {
	if a.family.Vector() {
		return f.EvalVector(p.T, p.IP)
	}

	out := make([]float64, f.VectorDim())

	for k := range out {
		x, err := f.Eval(p.T, p.IP, k+1)
		if err != nil {
			return nil, err
		}

		out[k] = x
	}

	return out, nil
}

// nodal sums component comp of the element nodal values at each vertex
// and divides by the vertex weights.
func (a *fieldAdapter) nodal(fp fieldPair, args *NodalArgs, comp int) ([]complex128, error) {
	n := args.size()
	out := make([]complex128, n)

	add := func(f fem.Field, unit complex128) error {
		for i, el := range args.Elements {
			if el < 0 || i >= len(args.ElemVerts) {
				continue
			}

			vals, err := f.NodalValues(el, comp)
			if err != nil {
				return err
			}

			for _, pr := range args.ElemVerts[i] {
				if pr.Local < 0 || pr.Local >= len(vals) || pr.Global < 0 || pr.Global >= n {
					return fem.ErrOutOfRange.With(
						slog.Int("element", el),
						slog.Int("local", pr.Local),
						slog.Int("global", pr.Global),
					)
				}

				out[pr.Global] += unit * complex(vals[pr.Local], 0)
			}
		}

		return nil
	}

	if err := add(fp.real, 1); err != nil {
		return nil, err
	}

	if fp.imag != nil {
		if err := add(fp.imag, 1i); err != nil {
			return nil, err
		}
	}

	for i := range out {
		if i < len(args.Weights) && args.Weights[i] != 0 {
			out[i] /= complex(args.Weights[i], 0)
		}
	}

	return out, nil
}

type sampler func(f fem.Field, face int, ir fem.IntegrationRule) ([][]float64, error)

// sampleFaces evaluates get at every face of a and returns one row per
// sample point, combining real and imaginary fields.
func (a *fieldAdapter) sampleFaces(fp fieldPair, args *FaceArgs, get sampler) ([][]complex128, error) {
	var out [][]complex128

	for i, face := range args.Faces {
		ir, err := args.rule(i)
		if err != nil {
			return nil, err
		}

		re, err := get(fp.real, face, ir)
		if err != nil {
			return nil, err
		}

		var im [][]float64

		if fp.imag != nil {
			if im, err = get(fp.imag, face, ir); err != nil {
				return nil, err
			}
		}

		for j, row := range re {
			c := make([]complex128, len(row))
			for k, x := range row {
				c[k] = complex(x, 0)
				if im != nil {
					c[k] += complex(0, im[j][k])
				}
			}

			out = append(out, c)
		}
	}

	return out, nil
}

// faceSampler returns the per-face vector accessor for the mesh dimension
// of f and the requested batch form.
func (a *fieldAdapter) faceSampler(f fem.Field, edge bool) (sampler, error) {
	dim := f.MeshDim()

	switch {
	case !edge && dim == 3:
		return fem.Field.FaceVectorValues, nil
	case !edge && dim == 2, edge && dim == 1:
		return fem.Field.ElementVectorValues, nil
	}

	form := "face"
	if edge {
		form = "edge"
	}

	return nil, ErrUnsupportedDimension.With(
		slog.String("form", form),
		slog.Int("dim", dim),
	)
}

// scalarSampler returns a sampler of component comp, using the scalar
// accessors for non-vector families.
func (a *fieldAdapter) scalarSampler(f fem.Field, edge bool, comp int) (sampler, error) {
	vec, err := a.faceSampler(f, edge)
	if err != nil {
		return nil, err
	}

	if a.family.Vector() {
		return func(f fem.Field, face int, ir fem.IntegrationRule) ([][]float64, error) {
			rows, err := vec(f, face, ir)
			if err != nil {
				return nil, err
			}

			out := make([][]float64, len(rows))
			for j, r := range rows {
				x, err := component(r, comp)
				if err != nil {
					return nil, err
				}

				out[j] = []float64{x}
			}

			return out, nil
		}, nil
	}

	scalar := fem.Field.ElementValues
	if !edge && f.MeshDim() == 3 {
		scalar = fem.Field.FaceValues
	}

	return func(f fem.Field, face int, ir fem.IntegrationRule) ([][]float64, error) {
		vals, err := scalar(f, face, ir, comp)
		if err != nil {
			return nil, err
		}

		out := make([][]float64, len(vals))
		for j, x := range vals {
			out[j] = []float64{x}
		}

		return out, nil
	}, nil
}

func component(v []float64, comp int) (float64, error) {
	if comp < 1 || comp > len(v) {
		return 0, ErrComponent.With(
			slog.Int("component", comp),
			slog.Int("len", len(v)),
		)
	}

	return v[comp-1], nil
}

// FieldScalar adapts one component of a finite-element field.
type FieldScalar struct {
	fieldAdapter
	comp int
}

// NewFieldScalar returns an adapter of component comp (1-based) of the
// field behind real, paired with the imaginary field behind imag unless
// imag is [fem.NoHandle]. deriv may be nil.
func NewFieldScalar(
	pool fem.FieldPool,
	real, imag fem.Handle,
	comp int,
	deriv Deriv,
) (*FieldScalar, error) {
	a, err := newFieldAdapter(pool, real, imag, deriv)
	if err != nil {
		return nil, err
	}

	return &FieldScalar{fieldAdapter: a, comp: comp}, nil
}

// Eval returns the field component at p.
func (s *FieldScalar) Eval(p *Point) (value.Array, error) {
	if p.T == nil {
		return value.Array{}, ErrNoTransformation
	}

	fp, err := s.fields()
	if err != nil {
		return value.Array{}, err
	}

	re, err := s.scalarAt(fp.real, p, s.comp)
	if err != nil {
		return value.Array{}, err
	}

	if fp.imag == nil {
		return value.Scalar(re), nil
	}

	im, err := s.scalarAt(fp.imag, p, s.comp)
	if err != nil {
		return value.Array{}, err
	}

	return value.ComplexScalar(complex(re, im)), nil
}

// NodalValues averages the element nodal values at each vertex.
func (s *FieldScalar) NodalValues(a *NodalArgs) (value.Array, error) {
	fp, err := s.fields()
	if err != nil {
		return value.Array{}, err
	}

	data, err := s.nodal(fp, a, s.comp)
	if err != nil {
		return value.Array{}, err
	}

	return value.New([]int{len(data)}, data, fp.imag != nil)
}

// NCFaceValues samples the field on faces of a 3-D mesh or elements of a
// 2-D mesh.
func (s *FieldScalar) NCFaceValues(a *FaceArgs) (value.Array, error) {
	return s.samples(a, false)
}

// NCEdgeValues samples the field on elements of a 1-D mesh.
func (s *FieldScalar) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return s.samples(a, true)
}

func (s *FieldScalar) samples(a *FaceArgs, edge bool) (value.Array, error) {
	fp, err := s.fields()
	if err != nil {
		return value.Array{}, err
	}

	get, err := s.scalarSampler(fp.real, edge, s.comp)
	if err != nil {
		return value.Array{}, err
	}

	rows, err := s.sampleFaces(fp, a, get)
	if err != nil {
		return value.Array{}, err
	}

	data := make([]complex128, len(rows))
	for i, r := range rows {
		data[i] = r[0]
	}

	return value.New([]int{len(data)}, data, fp.imag != nil)
}

func (s *FieldScalar) String() string { return "GridFunctionVariable (Scalar)" }

// FieldVector adapts every component of a finite-element field.
type FieldVector struct {
	fieldAdapter
}

// NewFieldVector returns an adapter of the field behind real, paired with
// the imaginary field behind imag unless imag is [fem.NoHandle]. deriv may
// be nil.
func NewFieldVector(
	pool fem.FieldPool,
	real, imag fem.Handle,
	deriv Deriv,
) (*FieldVector, error) {
	a, err := newFieldAdapter(pool, real, imag, deriv)
	if err != nil {
		return nil, err
	}

	return &FieldVector{fieldAdapter: a}, nil
}

// Eval returns the field vector at p.
func (v *FieldVector) Eval(p *Point) (value.Array, error) {
	if p.T == nil {
		return value.Array{}, ErrNoTransformation
	}

	fp, err := v.fields()
	if err != nil {
		return value.Array{}, err
	}

	re, err := v.vectorAt(fp.real, p)
	if err != nil {
		return value.Array{}, err
	}

	if fp.imag == nil {
		return value.Vector(re...), nil
	}

	im, err := v.vectorAt(fp.imag, p)
	if err != nil {
		return value.Array{}, err
	}

	if len(im) != len(re) {
		return value.Array{}, value.ErrShapeMismatch.With(
			slog.Int("left", len(re)),
			slog.Int("right", len(im)),
		)
	}

	out := make([]complex128, len(re))
	for k := range re {
		out[k] = complex(re[k], im[k])
	}

	return value.ComplexVector(out...), nil
}

// NodalValues averages every component at each vertex. The result has
// shape (vertices, components).
func (v *FieldVector) NodalValues(a *NodalArgs) (value.Array, error) {
	fp, err := v.fields()
	if err != nil {
		return value.Array{}, err
	}

	n, dim := a.size(), fp.real.VectorDim()
	data := make([]complex128, n*dim)

	for c := range dim {
		col, err := v.nodal(fp, a, c+1)
		if err != nil {
			return value.Array{}, err
		}

		for i, x := range col {
			data[i*dim+c] = x
		}
	}

	return value.New([]int{n, dim}, data, fp.imag != nil)
}

// NCFaceValues samples the field vector on faces of a 3-D mesh or
// elements of a 2-D mesh.
func (v *FieldVector) NCFaceValues(a *FaceArgs) (value.Array, error) {
	return v.samples(a, false)
}

// NCEdgeValues samples the field vector on elements of a 1-D mesh.
func (v *FieldVector) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return v.samples(a, true)
}

func (v *FieldVector) samples(a *FaceArgs, edge bool) (value.Array, error) {
	fp, err := v.fields()
	if err != nil {
		return value.Array{}, err
	}

	get, err := v.faceSampler(fp.real, edge)
	if err != nil {
		return value.Array{}, err
	}

	rows, err := v.sampleFaces(fp, a, get)
	if err != nil {
		return value.Array{}, err
	}

	dim := fp.real.VectorDim()
	data := make([]complex128, 0, len(rows)*dim)

	for _, r := range rows {
		if len(r) != dim {
			return value.Array{}, value.ErrShapeMismatch.With(
				slog.Int("left", dim),
				slog.Int("right", len(r)),
			)
		}

		data = append(data, r...)
	}

	return value.New([]int{len(rows), dim}, data, fp.imag != nil)
}

func (v *FieldVector) String() string { return "GridFunctionVariable (Vector)" }
