package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fieldvar/pkg"
	"github.com/ardnew/fieldvar/value"
	"github.com/ardnew/fieldvar/variable"
)

// Sampling modes of the nodal command.
const (
	sampleNodal = "nodal"
	sampleFace  = "face"
	sampleEdge  = "edge"
)

// Nodal evaluates a variable of the model over its whole mesh.
type Nodal struct {
	Name   string `arg:""          help:"Variable to evaluate"                                 name:"name"`
	Sample string `default:"nodal" enum:"nodal,face,edge"                                      help:"Evaluate at mesh vertices, at face vertices or at edge vertices"`
	Format string `default:"yaml"  enum:"text,json,yaml"                                       help:"Output format"                                                     short:"o"`
	Indent int    `default:"2"     help:"Indent width for json and yaml output; 0 for one line"`
}

// Run executes the nodal command.
func (n *Nodal) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := load(ctx)
	if err != nil {
		return err
	}

	if s.mesh == nil {
		return ErrNoMesh.With(slog.String("command", "nodal"))
	}

	var result value.Array

	switch n.Sample {
	case sampleFace, sampleEdge:
		build := variable.NewFaceArgs
		eval := s.vars.NCFaceValues

		if n.Sample == sampleEdge {
			build = variable.NewEdgeArgs
			eval = s.vars.NCEdgeValues
		}

		a, err := build(s.mesh, nil, s.vars)
		if err != nil {
			return err
		}

		result, err = eval(n.Name, *a)
		if err != nil {
			return n.wrap(err)
		}

	default:
		a, err := variable.NewNodalArgs(s.mesh, s.vars)
		if err != nil {
			return err
		}

		result, err = s.vars.NodalValues(n.Name, *a)
		if err != nil {
			return n.wrap(err)
		}
	}

	return encode(ctx, outputFrom(ctx), n.Format, n.Indent, result)
}

func (n *Nodal) wrap(err error) error {
	return pkg.WrapError(err).With(
		slog.String("command", "nodal"),
		slog.String("sample", n.Sample),
		slog.String("name", n.Name),
	)
}
