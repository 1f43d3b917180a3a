package lang

import (
	"log/slog"

	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/fieldvar/value"
)

// Eval runs the expression with the given local bindings. Locals shadow
// builtin constants of the same name.
//
// Every free name must be bound in locals, otherwise Eval fails with
// [ErrUnresolvedName] carrying the sorted builtin ("globals") and bound
// ("locals") names.
func (e *Expr) Eval(locals map[string]value.Array) (value.Array, error) {
	_, consts, _ := builtins()

	env := make(map[string]any, len(consts)+len(locals))
	for name, v := range consts {
		env[name] = v
	}

	for name, v := range locals {
		env[name] = v
	}

	for _, name := range e.names {
		if _, ok := env[name]; !ok {
			return value.Array{}, ErrUnresolvedName.With(
				slog.String("name", name),
				slog.String("source", e.source),
				slog.Any("globals", Builtins()),
				slog.Any("locals", sortedKeys(locals)),
			)
		}
	}

	result, err := vm.Run(e.program, env)
	if err != nil {
		return value.Array{}, ErrEvaluate.Wrap(err).
			With(slog.String("source", e.source))
	}

	out, err := value.From(result)
	if err != nil {
		return value.Array{}, ErrEvaluate.Wrap(err).With(
			slog.String("source", e.source),
			slog.String("result_type", resultTypeName(result)),
		)
	}

	return out, nil
}
