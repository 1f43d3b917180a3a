package cmd

import (
	"context"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/ardnew/fieldvar/fem"
	"github.com/ardnew/fieldvar/fem/simplex"
	"github.com/ardnew/fieldvar/log"
	"github.com/ardnew/fieldvar/model"
	"github.com/ardnew/fieldvar/variable"
)

// session is a loaded model ready for evaluation.
type session struct {
	model *model.Model
	vars  *variable.Variables
	mesh  *simplex.Mesh
}

// load decodes and builds the model read from the source files in ctx.
func load(ctx context.Context) (*session, error) {
	src := sourceFilesFrom(ctx)
	if src == nil || src.IsZero() {
		return nil, ErrNoModel
	}

	m, err := model.Load(src)
	if err != nil {
		return nil, err
	}

	vs, mesh, err := m.Build(variable.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "model loaded",
		slog.String("digest", m.Digest()),
		slog.Int("names", vs.Len()),
		slog.Bool("mesh", mesh != nil),
	)

	return &session{model: m, vars: vs, mesh: mesh}, nil
}

// point returns the evaluation context of physical point x. With a mesh,
// x is located in its element and attr is ignored; a point outside the
// mesh, or a model without one, is evaluated on a standalone transform
// carrying attr.
func (s *session) point(x []float64, attr int) (variable.Point, error) {
	if len(x) == 0 {
		return variable.Point{}, ErrPoint.With(slog.String("reason", "no coordinates"))
	}

	if n := len(s.model.Coordinates); n > 0 && len(x) != n {
		return variable.Point{}, ErrPoint.With(
			slog.Int("coordinates", len(x)),
			slog.Int("want", n),
		)
	}

	p := variable.Point{Namespace: s.vars}

	if s.mesh != nil {
		elem, ip, err := s.mesh.Locate(x)
		if err == nil {
			T, err := s.mesh.ElementTransformation(elem)
			if err != nil {
				return variable.Point{}, err
			}

			T.SetIntPoint(ip)
			p.T, p.IP = T, ip

			return p, nil
		}

		log.Debug("point outside mesh", slog.Any("point", x))
	}

	p.T = &standalone{x: slices.Clone(x), attr: attr}

	return p, nil
}

// standalone is the transformation of a single physical point outside any
// mesh. Its Jacobian is the identity.
type standalone struct {
	x    []float64
	attr int
}

var _ fem.ElementTransformation = (*standalone)(nil)

func (t *standalone) Attribute() int { return t.attr }

func (t *standalone) ElementNo() int { return -1 }

func (t *standalone) SetIntPoint(fem.IntegrationPoint) {}

func (t *standalone) Transform(fem.IntegrationPoint) []float64 { return slices.Clone(t.x) }

func (t *standalone) Jacobian() mat.Matrix {
	ones := make([]float64, len(t.x))
	for i := range ones {
		ones[i] = 1
	}

	return mat.NewDiagDense(len(t.x), ones)
}
