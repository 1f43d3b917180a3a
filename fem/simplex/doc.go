// Package simplex implements the [fem] collaborator interfaces for
// straight-sided simplex meshes carrying piecewise-linear (P1) nodal fields.
//
// A [Mesh] is plain data and decodes from YAML:
//
//	dim: 2
//	vertices: [[0, 0], [1, 0], [0, 1]]
//	elements:
//	  - {attribute: 1, vertices: [0, 1, 2]}
//	boundary:
//	  - {attribute: 1, vertices: [0, 1]}
//
// Faces are numbered as boundary elements.
package simplex
