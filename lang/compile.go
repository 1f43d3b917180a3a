package lang

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// Expr is a compiled expression together with the free identifiers it
// references. An Expr is immutable and safe for concurrent use.
type Expr struct {
	*compiled
	indVars []string
}

// compiled is the part of an Expr shared through the compile cache.
type compiled struct {
	source      string
	program     *vm.Program
	names       []string
	elementwise bool
}

// imaginaryLiteral matches numeric literals with a j or J suffix that are
// not part of an identifier or a longer number.
var imaginaryLiteral = regexp.MustCompile(
	`(^|[^\w.])((?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)[jJ]\b`,
)

// Compile compiles source into an [Expr]. The names in indVars are the
// coordinate axis names that callers bind when evaluating; they do not
// affect compilation, and results are memoized per distinct source.
//
// Compile fails with [ErrCompile] if source is empty, syntactically
// invalid, or calls a function that is not a builtin.
func Compile(source string, indVars []string, opts ...Option) (*Expr, error) {
	o := makeOptions(opts...)

	c, err := compileCached(source, o)
	if err != nil {
		return nil, err
	}

	return &Expr{compiled: c, indVars: slices.Clone(indVars)}, nil
}

func compileSource(source string, o options) (*compiled, error) {
	src := strings.TrimSpace(source)
	if src == "" {
		return nil, ErrCompile.With(slog.String("issue", "empty expression"))
	}

	src = imaginaryLiteral.ReplaceAllString(src, "${1}"+internalPrefix+"cplx(0, ${2})")

	tree, err := parser.Parse(src)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	scan := newIdentScanner()
	ast.Walk(&tree.Node, scan)

	if unknown := scan.unknownCallees(); len(unknown) > 0 {
		return nil, ErrCompile.With(
			slog.String("source", source),
			slog.String("issue", "unknown function"),
			slog.Any("names", unknown),
		)
	}

	_, _, builtinOpts := builtins()

	program, err := expr.Compile(src, append(slices.Clip(builtinOpts),
		expr.Patch(&arithmeticPatcher{logger: o.logger}),
	)...)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	return &compiled{
		source:      source,
		program:     program,
		names:       scan.free(),
		elementwise: scan.elementwise,
	}, nil
}

// Source returns the original expression text.
func (e *Expr) Source() string { return e.source }

// Names returns the free identifiers of the expression in order of first
// appearance, excluding builtins.
func (e *Expr) Names() []string { return slices.Clone(e.names) }

// IndVars returns the coordinate axis names given to [Compile].
func (e *Expr) IndVars() []string { return slices.Clone(e.indVars) }

// Elementwise reports whether the expression only combines its inputs
// elementwise, so that it may be evaluated once over whole columns of
// per-point scalars instead of once per point.
func (e *Expr) Elementwise() bool { return e.elementwise }

// Constant reports whether the expression references no free names.
func (e *Expr) Constant() bool { return len(e.names) == 0 }

func (e *Expr) String() string { return e.source }
