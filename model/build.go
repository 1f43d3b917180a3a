package model

import (
	"log/slog"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/fem/simplex"
	"github.com/ardnew/fieldvar/log"
	"github.com/ardnew/fieldvar/value"
	"github.com/ardnew/fieldvar/variable"
)

// Build returns the namespace declared by m and its validated mesh, which
// is nil if m has none. opts apply to the namespace and are applied after
// the model's own selection and depth settings.
func (m *Model) Build(opts ...variable.Option) (*variable.Variables, *simplex.Mesh, error) {
	if m.Mesh != nil {
		if err := m.Mesh.Validate(); err != nil {
			return nil, nil, ErrBuildModel.Wrap(err)
		}
	}

	base := []variable.Option{variable.WithMaxDepth(m.MaxDepth)}

	switch m.Selection {
	case "", variable.SelectLastPiece.String():
	case variable.SelectMatchingPiece.String():
		base = append(base, variable.WithPieceSelection(variable.SelectMatchingPiece))
	default:
		return nil, nil, ErrBuildModel.With(slog.String("selection", m.Selection))
	}

	vs := variable.NewVariables(append(base, opts...)...)

	vs.AddCoordinates(m.Coordinates)

	if m.Normals {
		vs.AddSurfaceNormals(m.Coordinates)
	}

	for _, c := range m.Constants {
		v, err := c.value()
		if err != nil {
			return nil, nil, ErrBuildModel.Wrap(err).With(slog.String("constant", c.Name))
		}

		if err := vs.AddConstant(c.Name, c.Suffix, v, c.Domains, nil); err != nil {
			return nil, nil, ErrBuildModel.Wrap(err).With(slog.String("constant", c.Name))
		}
	}

	if len(m.Fields) > 0 {
		if m.Mesh == nil {
			return nil, nil, ErrBuildModel.With(
				slog.String("field", m.Fields[0].Name),
				slog.String("reason", "no mesh"),
			)
		}

		var pool simplex.Pool

		for _, f := range m.Fields {
			if err := m.addField(vs, &pool, f); err != nil {
				return nil, nil, ErrBuildModel.Wrap(err).With(slog.String("field", f.Name))
			}
		}
	}

	for _, e := range m.Expressions {
		var err error

		if e.Surface {
			err = vs.AddSurfaceExpression(e.Name, e.Suffix, m.Coordinates, e.Expr, e.Vars, e.Complex)
		} else {
			err = vs.AddExpression(e.Name, e.Suffix, m.Coordinates, e.Expr, e.Vars,
				e.Domains, e.Complex, nil)
		}

		if err != nil {
			return nil, nil, ErrBuildModel.Wrap(err).With(slog.String("expression", e.Name))
		}
	}

	log.Debug("model built",
		slog.String("digest", m.digest),
		slog.Int("names", vs.Len()),
	)

	return vs, m.Mesh, nil
}

func (m *Model) addField(vs *variable.Variables, pool *simplex.Pool, f Field) error {
	add := func(values [][]float64) (fem.Handle, error) {
		sf := &simplex.Field{Mesh: m.Mesh, Family: f.Family, Values: values, Emesh: f.Emesh}
		if err := sf.Validate(); err != nil {
			return fem.NoHandle, err
		}

		return pool.Add(sf), nil
	}

	re, err := add(f.Values)
	if err != nil {
		return err
	}

	im := fem.NoHandle
	if f.Imag != nil {
		if im, err = add(f.Imag); err != nil {
			return err
		}
	}

	switch f.Kind {
	case KindScalar, "":
		return vs.AddScalar(f.Name, f.Suffix, pool, re, im, nil)
	case KindVector:
		v, err := variable.NewFieldVector(pool, re, im, nil)
		if err != nil {
			return err
		}

		vs.Set(f.Name+f.Suffix, v)

		return nil
	case KindComponents:
		return vs.AddComponents(f.Name, f.Suffix, m.Coordinates, pool, re, im, nil)
	case KindElements:
		return vs.AddElements(f.Name, f.Suffix, m.Coordinates, pool, re, im, nil)
	default:
		return ErrBuildModel.With(slog.String("kind", string(f.Kind)))
	}
}

func (c Constant) value() (value.Array, error) {
	v, err := value.From(c.Value)
	if err != nil {
		return value.Array{}, err
	}

	if c.Imag == nil {
		return v, nil
	}

	im, err := value.From(c.Imag)
	if err != nil {
		return value.Array{}, err
	}

	if im, err = value.Binary(value.OpMul, im, value.ComplexScalar(1i)); err != nil {
		return value.Array{}, err
	}

	return value.Binary(value.OpAdd, v, im)
}
