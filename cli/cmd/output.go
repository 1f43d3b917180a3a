package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/fieldvar/value"
)

// Output formats accepted by the --format flags.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes v to w in format. Arrays are written as nested lists.
// Text output uses fmt's default formatting, except for arrays which use
// their bracketed form.
func encode(ctx context.Context, w io.Writer, format string, indent int, v any) error {
	if a, ok := v.(value.Array); ok {
		if format == formatText {
			_, err := fmt.Fprintln(w, a.String())

			return err
		}

		v = a.Any()
	}

	switch format {
	case formatJSON:
		var (
			data []byte
			err  error
		)

		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case formatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err := yaml.MarshalContext(ctx, v, opts...)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = fmt.Fprint(w, string(data))

		return err

	default:
		_, err := fmt.Fprintln(w, v)

		return err
	}
}
