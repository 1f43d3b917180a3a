// Package value provides the numeric array type shared by the expression
// compiler and the variable engine.
//
// An [Array] is an n-dimensional, row-major array of complex128 elements
// that remembers whether it holds real or complex data. Scalars are arrays
// of rank zero.
//
// Two broadcasting rules are implemented:
//
//   - [Binary], [Unary] and [Apply] combine values inside a single
//     expression using conventional broadcasting, where trailing
//     dimensions are aligned (a scalar combines with anything).
//   - [Add], [Div] and [Multi] combine batched arrays whose leading
//     dimension is the point count. Dimensions are aligned from the left
//     and the lower-rank operand is padded with unit dimensions on the
//     right, so a per-point scalar array of shape (N,) scales each row of a
//     per-point vector array of shape (N, K).
package value
