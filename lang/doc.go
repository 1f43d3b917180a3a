// Package lang compiles the algebraic expressions used to define named
// field quantities, such as "x + 0.5*y" or "sqrt(Ex**2 + Ey**2)".
//
// # Syntax
//
// Expressions use the expr-lang grammar with a numeric interpretation:
//
//   - + - * / % and ** (or ^) operate elementwise on scalars, vectors and
//     tensors, real or complex, with conventional broadcasting
//   - < <= > >= == != yield 1 or 0 elementwise; c ? a : b selects
//     elementwise
//   - [a, b, c] builds an array and v[i] indexes its leading dimension
//   - a numeric literal with a j suffix is imaginary, e.g. 2j or 1.5e3J
//
// # Builtins
//
// The builtin table provides sin, cos, tan, the degree variants sind, cosd
// and tand, arctan, arctan2, exp, log, log2, log10, sqrt, abs, conj, real,
// imag, sum, dot, vdot, array, cross, min, max and the constant pi. No other
// expr-lang builtin is available.
//
// # Free names
//
// [Compile] records the free identifiers of an expression, in order of
// first appearance and excluding builtins. [Expr.Eval] requires every free
// name to be bound by the caller and fails with [ErrUnresolvedName]
// otherwise.
//
// Compiled programs are cached per distinct source string; see
// [ClearCache].
package lang
