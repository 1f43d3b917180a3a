// Package variable implements named field variables and their evaluation.
//
// A [Variables] namespace maps names to [Variable] implementations:
// constants, coordinates, compiled expressions, piecewise (per subdomain)
// expressions, native functions, adapters over finite-element fields and
// surface normals. Expressions reference other entries by name.
//
// Every Variable can be evaluated in two ways:
//
//   - at a single point, from a caller-owned [Point] that carries the
//     element transformation and integration point, and
//   - in batch, over all vertices of a mesh ([NodalArgs]) or over sample
//     points on faces and edges ([FaceArgs]).
//
// Point evaluation is pure: the Point is passed to [Variable.Eval] and to
// every dependency the variable references, so a namespace can be shared by
// concurrent evaluations. [Probe] adapts this to a set-then-call protocol.
//
// Batch results have one row per point. Per-point values of different
// shapes are combined with the right-aligned broadcasting of
// [value.Multi], [value.Add] and [value.Div].
package variable
