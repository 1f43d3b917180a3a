package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestCompileNames(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		want        []string
		elementwise bool
	}{
		{"coordinate", "x + 1", []string{"x"}, true},
		{"first seen order", "b*a + a*c", []string{"b", "a", "c"}, true},
		{"builtins excluded", "sin(x) + pi*cos(y)", []string{"x", "y"}, true},
		{"constant", "2**3", []string{}, true},
		{"array literal", "[x, y, 0]", []string{"x", "y"}, false},
		{"index", "n[0]", []string{"n"}, false},
		{"reduction", "sum(E)", []string{"E"}, false},
		{"max reduction", "max(x) + 1", []string{"x"}, false},
		{"min reduction", "2*min(y)", []string{"y"}, false},
		{"abs is elementwise", "abs(x - y)", []string{"x", "y"}, true},
		{"imaginary literal", "1 + 2j*x", []string{"x"}, true},
		{"conditional", "x > 0 ? 1 : 0", []string{"x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Compile(tt.source, []string{"x", "y", "z"})
			if err != nil {
				t.Fatalf("Compile(%q) unexpected error: %v", tt.source, err)
			}

			if got := e.Names(); !slices.Equal(got, tt.want) {
				t.Errorf("Names() = %v, want %v", got, tt.want)
			}

			if got := e.Elementwise(); got != tt.elementwise {
				t.Errorf("Elementwise() = %v, want %v", got, tt.elementwise)
			}

			if got := e.Source(); got != tt.source {
				t.Errorf("Source() = %q, want %q", got, tt.source)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"syntax", "x +* )"},
		{"unbalanced", "(x + 1"},
		{"unknown function", "foo(x)"},
		{"expr builtin", "len(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, nil)
			if !errors.Is(err, ErrCompile) {
				t.Errorf("Compile(%q) error = %v, want %v", tt.source, err, ErrCompile)
			}
		})
	}
}

func TestCompileKeepsIndVars(t *testing.T) {
	a, err := Compile("x*y", []string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}

	b, err := Compile("x*y", []string{"r", "z"})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(a.IndVars(), []string{"x", "y"}) ||
		!slices.Equal(b.IndVars(), []string{"r", "z"}) {
		t.Errorf("IndVars() = %v, %v", a.IndVars(), b.IndVars())
	}

	if a.compiled != b.compiled {
		t.Errorf("identical sources were compiled twice")
	}
}

func TestClearCache(t *testing.T) {
	a, err := Compile("x - 1", nil)
	if err != nil {
		t.Fatal(err)
	}

	ClearCache()

	b, err := Compile("x - 1", nil)
	if err != nil {
		t.Fatal(err)
	}

	if a.compiled == b.compiled {
		t.Errorf("ClearCache did not drop the cached entry")
	}
}

func TestCompileErrorIsCached(t *testing.T) {
	_, err1 := Compile("1 +", nil)
	_, err2 := Compile("1 +", nil)

	if !errors.Is(err1, ErrCompile) || !errors.Is(err2, ErrCompile) {
		t.Errorf("errors = %v, %v; want %v", err1, err2, ErrCompile)
	}
}

func TestRenameIdentifiers(t *testing.T) {
	tests := []struct {
		name   string
		source string
		names  []string
		suffix string
		want   string
	}{
		{"simple", "E + 1", []string{"E"}, "1", "E1 + 1"},
		{"whole word only", "Ex + E*x", []string{"E"}, "_r", "Ex + E_r*x"},
		{"longest first", "Ex + E", []string{"E", "Ex"}, "2", "Ex2 + E2"},
		{"no suffix", "E", []string{"E"}, "", "E"},
		{"no names", "E", nil, "1", "E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenameIdentifiers(tt.source, tt.names, tt.suffix)
			if got != tt.want {
				t.Errorf("RenameIdentifiers(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	names := Builtins()

	for _, want := range []string{
		"sin", "cos", "tan", "cosd", "sind", "tand", "arctan", "arctan2",
		"exp", "log", "log2", "log10", "sqrt", "abs", "conj", "real", "imag",
		"sum", "dot", "vdot", "array", "cross", "pi", "min", "max",
	} {
		if !slices.Contains(names, want) {
			t.Errorf("Builtins() missing %q", want)
		}
	}

	for _, name := range names {
		if name[0] == '_' {
			t.Errorf("Builtins() exposes internal name %q", name)
		}
	}
}
