package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fieldvar/cli/cmd/repl"
	"github.com/ardnew/fieldvar/log"
	"github.com/ardnew/fieldvar/pkg"
	"github.com/ardnew/fieldvar/variable"
)

// Repl starts an interactive session on the model.
type Repl struct {
	At   []float64 `help:"Initial probe point (default: the origin)" placeholder:"X,Y[,Z]" sep:","`
	Attr int       `default:"1"                                      help:"Subdomain of a point outside the mesh"`
	Time *float64  `help:"Initial evaluation time"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := load(ctx)
	if err != nil {
		return err
	}

	at := r.At
	if len(at) == 0 {
		at = make([]float64, max(len(s.model.Coordinates), 1))
	}

	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	log.DebugContext(ctx, "repl",
		slog.Any("at", at),
		slog.String("cache", cacheDir),
	)

	env := repl.Env{
		Vars:    s.vars,
		IndVars: s.model.Coordinates,
		Locate: func(x []float64) (variable.Point, error) {
			return s.point(x, r.Attr)
		},
		At:   at,
		Time: r.Time,
	}

	return repl.Run(ctx, env, cacheDir, log.Default())
}
