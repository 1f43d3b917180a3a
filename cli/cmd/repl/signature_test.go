package repl

import (
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no_call", "Ex", 2, "", 0, false},
		{"open_paren", "sqrt(", 5, "sqrt", 0, true},
		{"first_arg", "dot(a", 5, "dot", 0, true},
		{"second_arg", "dot(a, ", 7, "dot", 1, true},
		{"grouping_paren", "(x + y", 6, "", 0, false},
		{"nested_inner", "sqrt(dot(a, b", 13, "dot", 1, true},
		{"nested_closed", "arctan2(sin(x), ", 16, "arctan2", 1, true},
		{"list_literal", "dot([1, 2], [x", 14, "dot", 1, true},
		{"inside_list_first", "cross([x", 8, "cross", 0, true},
		{"after_close", "sqrt(x)", 7, "", 0, false},
		{"cursor_mid", "dot(a, b)", 5, "dot", 0, true},
		{"cursor_past_end", "exp(", 99, "exp", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)

			if got.inCall != tt.wantInCall || got.name != tt.wantName ||
				got.argIndex != tt.wantIndex {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestSignatureOf(t *testing.T) {
	if got := signatureOf("arctan2"); len(got) != 2 || got[0] != "y" {
		t.Errorf("signatureOf(arctan2) = %v", got)
	}

	for _, name := range []string{"pi", "Ex", ""} {
		if got := signatureOf(name); got != nil {
			t.Errorf("signatureOf(%q) = %v, want nil", name, got)
		}
	}
}

func TestRenderSignatureHint(t *testing.T) {
	hint := renderSignatureHint("max", signatureOf("max"), 3)

	for _, want := range []string{"max", "...v"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint %q does not contain %q", hint, want)
		}
	}
}
