// Package model loads a namespace of field variables from YAML.
//
// A model file declares coordinate names, constants, expressions
// (optionally piecewise over subdomain ids), nodal fields and an inline
// simplex mesh:
//
//	coordinates: [x, y]
//	normals: true
//	mesh:
//	  dim: 2
//	  vertices: [[0, 0], [1, 0], [1, 1], [0, 1]]
//	  elements:
//	    - {attribute: 1, vertices: [0, 1, 2]}
//	    - {attribute: 2, vertices: [0, 2, 3]}
//	constants:
//	  - {name: eps, value: 2, domains: [1]}
//	  - {name: eps, value: 4, domains: [2]}
//	expressions:
//	  - {name: d, expr: "eps * x"}
//	fields:
//	  - {name: E, kind: components, family: H1_2D_P1,
//	     values: [[0, 0], [1, 0], [1, 1], [0, 1]]}
//
// [Load] decodes a model and [Model.Build] turns it into a
// [variable.Variables] namespace.
package model
