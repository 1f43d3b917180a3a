package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// builtinParams lists the parameters of every builtin function of the
// expression language. A "..." prefix marks a variadic parameter.
var builtinParams = map[string][]string{
	"sin":     {"x"},
	"cos":     {"x"},
	"tan":     {"x"},
	"sind":    {"deg"},
	"cosd":    {"deg"},
	"tand":    {"deg"},
	"arctan":  {"x"},
	"arctan2": {"y", "x"},
	"exp":     {"x"},
	"log":     {"x"},
	"log2":    {"x"},
	"log10":   {"x"},
	"sqrt":    {"x"},
	"abs":     {"x"},
	"conj":    {"x"},
	"real":    {"x"},
	"imag":    {"x"},
	"sum":     {"a"},
	"dot":     {"a", "b"},
	"vdot":    {"a", "b"},
	"cross":   {"a", "b"},
	"array":   {"...v"},
	"min":     {"...v"},
	"max":     {"...v"},
}

// signatureOf returns the parameters of builtin function name, or nil if
// name is not one.
func signatureOf(name string) []string {
	return builtinParams[name]
}

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// detectFunctionCall reports the innermost call whose argument list
// contains cursor, and the index of the argument under the cursor.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	// Find the unmatched '(' before cursor, skipping balanced pairs.
	open, depth := -1, 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')', ']':
			depth++
		case '[':
			// An unmatched '[' opens a list literal, not a call.
			if depth > 0 {
				depth--
			}
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isIdentRune(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// renderSignatureHint renders "name(p1, p2)" with the parameter at
// argIndex highlighted. A variadic parameter stays highlighted for every
// argument from its position on.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		current := argIndex == i ||
			(strings.HasPrefix(param, "...") && argIndex >= i)

		if current {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
