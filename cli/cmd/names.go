package cmd

import (
	"context"
	"fmt"
	"strings"
)

// Names lists the variables a model binds.
type Names struct {
	Long   bool   `help:"Show the kind of each variable"  short:"l"`
	Format string `default:"text" enum:"text,json,yaml"   help:"Output format" short:"o"`
}

// Run executes the names command.
func (n *Names) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := load(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if !n.Long {
		if n.Format == formatText {
			_, err = fmt.Fprintln(w, strings.Join(s.vars.Names(), "\n"))

			return err
		}

		return encode(ctx, w, n.Format, 2, s.vars.Names())
	}

	if n.Format == formatText {
		_, err = fmt.Fprint(w, s.vars.String())

		return err
	}

	kinds := make([]map[string]string, 0, s.vars.Len())
	for name, v := range s.vars.All() {
		kinds = append(kinds, map[string]string{"name": name, "kind": v.String()})
	}

	return encode(ctx, w, n.Format, 2, kinds)
}
