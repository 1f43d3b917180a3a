package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fieldvar/log"
	"github.com/ardnew/fieldvar/pkg"
)

// Eval evaluates a variable of the model at one physical point.
type Eval struct {
	Name string    `arg:""                help:"Variable to evaluate"                     name:"name"`
	At   []float64 `help:"Physical point"  placeholder:"X,Y[,Z]"                          required:"" sep:","`
	Attr int       `default:"1"            help:"Subdomain of a point outside the mesh"`
	Time *float64  `help:"Evaluation time passed to functions"`

	Format string `default:"text" enum:"text,json,yaml" help:"Output format" short:"o"`
	Indent int    `default:"2"                          help:"Indent width for json and yaml output"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := load(ctx)
	if err != nil {
		return err
	}

	p, err := s.point(e.At, e.Attr)
	if err != nil {
		return err
	}

	p.Time = e.Time

	result, err := s.vars.Eval(e.Name, p)
	if err != nil {
		return pkg.WrapError(err).With(
			slog.String("command", "eval"),
			slog.String("name", e.Name),
		)
	}

	log.TraceContext(ctx, "eval result",
		slog.String("name", e.Name),
		slog.Any("shape", result.Shape()),
	)

	return encode(ctx, outputFrom(ctx), e.Format, e.Indent, result)
}
