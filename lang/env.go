package lang

// This file defines the builtin table available to every expression: the
// math library, the constant pi, and the internal functions that the
// arithmetic patcher rewrites operators into. The table is built once per
// process.

import (
	"log/slog"
	"maps"
	"math"
	"math/cmplx"
	"slices"
	"strings"
	"sync"

	"github.com/expr-lang/expr"

	"github.com/ardnew/fieldvar/value"
)

// internalPrefix marks functions inserted by the patcher. Identifiers with
// this prefix are never reported as free names.
const internalPrefix = "_"

type builtin func(args ...value.Array) (value.Array, error)

//nolint:gochecknoglobals
var (
	builtinOnce    sync.Once
	builtinFuncs   map[string]builtin
	builtinOptions []expr.Option
	builtinConsts  = map[string]value.Array{
		"pi": value.Scalar(math.Pi),
	}

	// nonElementwise lists builtins whose result shape does not follow the
	// shape of their arguments.
	nonElementwise = []string{"array", "sum", "dot", "vdot", "cross", "min", "max"}
)

func builtins() (map[string]builtin, map[string]value.Array, []expr.Option) {
	builtinOnce.Do(func() {
		builtinFuncs = map[string]builtin{
			"sin":     unary(math.Sin, cmplx.Sin),
			"cos":     unary(math.Cos, cmplx.Cos),
			"tan":     unary(math.Tan, cmplx.Tan),
			"sind":    unary(degrees(math.Sin), nil),
			"cosd":    unary(degrees(math.Cos), nil),
			"tand":    unary(degrees(math.Tan), nil),
			"arctan":  unary(math.Atan, cmplx.Atan),
			"exp":     unary(math.Exp, cmplx.Exp),
			"log":     unary(math.Log, cmplx.Log),
			"log2":    unary(math.Log2, func(z complex128) complex128 { return cmplx.Log(z) / math.Ln2 }),
			"log10":   unary(math.Log10, cmplx.Log10),
			"sqrt":    unary(math.Sqrt, cmplx.Sqrt),
			"abs":     method(value.Array.Abs),
			"conj":    method(value.Array.Conj),
			"real":    method(value.Array.Real),
			"imag":    method(value.Array.Imag),
			"sum":     fixed(1, func(a []value.Array) (value.Array, error) { return value.Sum(a[0]), nil }),
			"dot":     fixed(2, func(a []value.Array) (value.Array, error) { return value.Dot(a[0], a[1]) }),
			"vdot":    fixed(2, func(a []value.Array) (value.Array, error) { return value.Vdot(a[0], a[1]) }),
			"cross":   fixed(2, func(a []value.Array) (value.Array, error) { return value.Cross(a[0], a[1]) }),
			"arctan2": fixed(2, func(a []value.Array) (value.Array, error) { return value.Map2(a[0], a[1], math.Atan2) }),
			"array":   array,
			"min":     extremum(value.OpMin),
			"max":     extremum(value.OpMax),

			internalPrefix + "index": fixed(2, index),
			internalPrefix + "cplx":  fixed(2, imaginary),
			internalPrefix + "where": fixed(3, func(a []value.Array) (value.Array, error) { return value.Where(a[0], a[1], a[2]) }),
			internalPrefix + "neg":   fixed(1, func(a []value.Array) (value.Array, error) { return value.Unary("-", a[0]) }),
			internalPrefix + "pos":   fixed(1, func(a []value.Array) (value.Array, error) { return value.Unary("+", a[0]) }),
		}

		for op, name := range binaryOps {
			builtinFuncs[name] = fixed(2, func(a []value.Array) (value.Array, error) {
				return value.Binary(op, a[0], a[1])
			})
		}

		builtinOptions = []expr.Option{
			expr.DisableAllBuiltins(),
			expr.AllowUndefinedVariables(),
		}

		for _, name := range slices.Sorted(maps.Keys(builtinFuncs)) {
			fn := builtinFuncs[name]
			builtinOptions = append(builtinOptions, expr.Function(name,
				func(params ...any) (any, error) {
					args, err := toArrays(name, params)
					if err != nil {
						return nil, err
					}

					return fn(args...)
				},
			))
		}
	})

	return builtinFuncs, builtinConsts, builtinOptions
}

// Builtins returns the sorted names of all builtin functions and constants
// that expressions may reference.
func Builtins() []string {
	funcs, consts, _ := builtins()

	names := make([]string, 0, len(funcs)+len(consts))

	for name := range funcs {
		if !strings.HasPrefix(name, internalPrefix) {
			names = append(names, name)
		}
	}

	for name := range consts {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// IsBuiltin reports whether name is a builtin function or constant.
func IsBuiltin(name string) bool {
	funcs, consts, _ := builtins()

	if _, ok := funcs[name]; ok {
		return true
	}

	_, ok := consts[name]

	return ok
}

func toArrays(name string, params []any) ([]value.Array, error) {
	args := make([]value.Array, len(params))

	for i, p := range params {
		a, err := value.From(p)
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).With(
				slog.String("function", name),
				slog.Int("argument", i),
			)
		}

		args[i] = a
	}

	return args, nil
}

func fixed(n int, fn func([]value.Array) (value.Array, error)) builtin {
	return func(args ...value.Array) (value.Array, error) {
		if len(args) != n {
			return value.Array{}, ErrArgCount.With(
				slog.Int("want", n),
				slog.Int("got", len(args)),
			)
		}

		return fn(args)
	}
}

func unary(fr func(float64) float64, fc func(complex128) complex128) builtin {
	return fixed(1, func(a []value.Array) (value.Array, error) {
		return value.Apply(a[0], fr, fc), nil
	})
}

func method(fn func(value.Array) value.Array) builtin {
	return fixed(1, func(a []value.Array) (value.Array, error) {
		return fn(a[0]), nil
	})
}

func degrees(fn func(float64) float64) func(float64) float64 {
	return func(x float64) float64 { return fn(x * math.Pi / 180) }
}

func array(args ...value.Array) (value.Array, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	return value.Stack(args...)
}

func extremum(op value.Op) builtin {
	return func(args ...value.Array) (value.Array, error) {
		switch len(args) {
		case 0:
			return value.Array{}, ErrArgCount.With(
				slog.String("function", op.String()),
				slog.Int("got", 0),
			)
		case 1:
			return value.Reduce(op, args[0])
		}

		acc := args[0]

		for _, a := range args[1:] {
			var err error
			if acc, err = value.Binary(op, acc, a); err != nil {
				return value.Array{}, err
			}
		}

		return acc, nil
	}
}

func index(a []value.Array) (value.Array, error) {
	return a[0].Row(int(a[1].Float()))
}

func imaginary(a []value.Array) (value.Array, error) {
	return value.ComplexScalar(complex(a[0].Float(), a[1].Float())), nil
}
