package variable

import (
	"log/slog"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/value"
)

// AddCoordinates binds each axis name to its coordinate component.
func (vs *Variables) AddCoordinates(indVars []string) {
	for k, axis := range indVars {
		vs.Set(axis, NewCoordinate(k+1))
	}
}

// AddSurfaceNormals binds [NormalName] to the surface normal and
// NormalName followed by each axis name to its component.
func (vs *Variables) AddSurfaceNormals(indVars []string) {
	sdim := len(indVars)

	vs.Set(NormalName, NewSurfaceNormal(sdim, AllComponents))

	for k, axis := range indVars {
		vs.Set(NormalName+axis, NewSurfaceNormal(sdim, k+1))
	}
}

// AddConstant binds name+suffix to v. With domains, v becomes a piece of
// a piecewise variable, created if needed, and override resolves names
// for that piece.
func (vs *Variables) AddConstant(
	name, suffix string,
	v value.Array,
	domains []int,
	override *Variables,
) error {
	key := name + suffix

	if domains == nil {
		vs.Set(key, NewConstant(v))

		return nil
	}

	d, err := vs.domain(key)
	if err != nil {
		return err
	}

	d.AddConst(v, domains, override)

	return nil
}

// AddExpression binds name+suffix to expr after appending suffix to every
// occurrence of vars in it. With domains, the expression becomes a piece
// of a piecewise variable, created if needed.
func (vs *Variables) AddExpression(
	name, suffix string,
	indVars []string,
	expr string,
	vars []string,
	domains []int,
	complex bool,
	override *Variables,
) error {
	key := name + suffix
	expr = lang.RenameIdentifiers(expr, vars, suffix)

	if domains == nil {
		e, err := NewExpression(expr, indVars, complex, lang.WithLogger(vs.logger))
		if err != nil {
			return err
		}

		vs.Set(key, e)

		return nil
	}

	// Compile first so a bad expression leaves the namespace unchanged.
	if _, err := lang.Compile(expr, indVars); err != nil {
		return err
	}

	d, err := vs.domain(key)
	if err != nil {
		return err
	}

	return d.AddExpression(expr, indVars, domains, override, complex)
}

// AddSurfaceExpression binds name+suffix to an expression that may
// reference the surface normal. The space dimension is len(indVars).
func (vs *Variables) AddSurfaceExpression(
	name, suffix string,
	indVars []string,
	expr string,
	vars []string,
	complex bool,
) error {
	expr = lang.RenameIdentifiers(expr, vars, suffix)

	e, err := NewSurfaceExpression(expr, indVars, len(indVars), complex,
		lang.WithLogger(vs.logger))
	if err != nil {
		return err
	}

	vs.Set(name+suffix, e)

	return nil
}

// AddScalar binds name+suffix to the first component of a field.
func (vs *Variables) AddScalar(
	name, suffix string,
	pool fem.FieldPool,
	real, imag fem.Handle,
	deriv Deriv,
) error {
	s, err := NewFieldScalar(pool, real, imag, 1, deriv)
	if err != nil {
		return err
	}

	vs.Set(name+suffix, s)

	return nil
}

// AddComponents binds name+suffix to a vector field and name+suffix+axis
// to each of its components.
func (vs *Variables) AddComponents(
	name, suffix string,
	indVars []string,
	pool fem.FieldPool,
	real, imag fem.Handle,
	deriv Deriv,
) error {
	v, err := NewFieldVector(pool, real, imag, deriv)
	if err != nil {
		return err
	}

	if err := vs.AddElements(name, suffix, indVars, pool, real, imag, deriv); err != nil {
		return err
	}

	vs.Set(name+suffix, v)

	return nil
}

// AddElements binds name+suffix+axis to each component of a field without
// binding the field itself.
func (vs *Variables) AddElements(
	name, suffix string,
	indVars []string,
	pool fem.FieldPool,
	real, imag fem.Handle,
	deriv Deriv,
) error {
	comps := make([]*FieldScalar, len(indVars))

	for k := range indVars {
		s, err := NewFieldScalar(pool, real, imag, k+1, deriv)
		if err != nil {
			return err
		}

		comps[k] = s
	}

	for k, axis := range indVars {
		vs.Set(name+suffix+axis, comps[k])
	}

	return nil
}

// AddFunction binds name to a native function and returns it.
func (vs *Variables) AddFunction(name string, fn Func, opts ...FunctionOption) *Function {
	f := NewFunction(fn, opts...)
	vs.Set(name, f)

	return f
}

// domain returns the piecewise variable bound to key, binding a new one
// if the name is free.
func (vs *Variables) domain(key string) (*Domain, error) {
	v, ok := vs.Get(key)
	if !ok {
		d := &Domain{options: vs.options}
		vs.Set(key, d)

		return d, nil
	}

	d, ok := v.(*Domain)
	if !ok {
		return nil, ErrNameConflict.With(
			slog.String("name", key),
			slog.String("variable", v.String()),
		)
	}

	return d, nil
}
