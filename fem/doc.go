// Package fem declares the finite-element collaborators consumed by the
// evaluation engine.
//
// The engine never owns meshes or fields. It reaches them through the
// [Mesh], [ElementTransformation] and [Field] interfaces, and fields are
// referenced indirectly by [Handle] so that a [FieldPool] can invalidate
// them when the underlying discretisation is replaced.
//
// Package [github.com/ardnew/fieldvar/fem/simplex] provides an affine
// simplex implementation of these interfaces.
package fem
