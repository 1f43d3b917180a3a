package cmd

import (
	"context"

	"github.com/ardnew/fieldvar/model"
)

// Fmt decodes the model and writes it back in canonical form.
type Fmt struct {
	Format string `default:"yaml" enum:"json,yaml" help:"Output format"                                short:"o"`
	Indent int    `default:"2"                     help:"Indent width for formatted output; 0 for one line" short:"i"`
	Check  bool   `help:"Also build the model and fail if it does not build"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFilesFrom(ctx)
	if src == nil || src.IsZero() {
		return ErrNoModel
	}

	m, err := model.Load(src)
	if err != nil {
		return err
	}

	if f.Check {
		if _, _, err := m.Build(); err != nil {
			return err
		}
	}

	return encode(ctx, outputFrom(ctx), f.Format, f.Indent, m)
}

// Digest prints the content digest of the model source.
type Digest struct{}

// Run executes the digest command.
func (Digest) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFilesFrom(ctx)
	if src == nil || src.IsZero() {
		return ErrNoModel
	}

	m, err := model.Load(src)
	if err != nil {
		return err
	}

	return encode(ctx, outputFrom(ctx), formatText, 0, m.Digest())
}
