package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func flag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	const file = `
log_level: debug
log-format: json
log_pretty: true
at: [0.5, 0.25]
model:
  - a.yaml
  - b.yaml
indent: 4
eval:
  format: yaml
  indent: 0
`

	r, err := resolve(strings.NewReader(file))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	eval := &kong.Path{Command: &kong.Command{Name: "eval"}}
	names := &kong.Path{Command: &kong.Command{Name: "names"}}

	tests := []struct {
		name   string
		parent *kong.Path
		want   any
	}{
		{"log-level", nil, "debug"},
		{"log-format", nil, "json"},
		{"log-pretty", nil, "true"},
		{"at", nil, "0.5,0.25"},
		{"model", nil, "a.yaml,b.yaml"},
		{"indent", nil, "4"},
		{"indent", names, "4"},
		{"indent", eval, "0"},
		{"format", eval, "yaml"},
		{"format", names, nil},
		{"missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(nil, tt.parent, flag(tt.name))
			if err != nil {
				t.Fatalf("Resolve(%s) error = %v", tt.name, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, file := range []string{"", "log_level: [unclosed", "- a\n- b\n"} {
		r, err := resolve(strings.NewReader(file))
		if err != nil {
			t.Fatalf("resolve(%q) error = %v", file, err)
		}

		got, err := r.Resolve(nil, nil, flag("log-level"))
		if err != nil || got != nil {
			t.Errorf("resolve(%q).Resolve() = %v, %v", file, got, err)
		}
	}
}

func TestResolveKong(t *testing.T) {
	var cli struct {
		Level string    `default:"info"`
		At    []float64 `sep:","`
		Sub   struct {
			Format string `default:"text"`
		} `cmd:""`
	}

	r, err := resolve(strings.NewReader("level: warn\nat: [1, 2]\nsub:\n  format: json\n"))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(r))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"sub"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cli.Level != "warn" || len(cli.At) != 2 || cli.At[1] != 2 || cli.Sub.Format != "json" {
		t.Errorf("parsed %+v", cli)
	}
}
