package simplex

// UnitSquare returns [0,1]x[0,1] split along its diagonal into two
// triangles with attributes 1 (below the diagonal) and 2 (above). The four
// boundary segments run counter-clockwise with attributes 1 to 4.
func UnitSquare() *Mesh {
	return &Mesh{
		Dim:      2,
		Vertices: [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Elements: []Element{
			{Attribute: 1, Vertices: []int{0, 1, 2}},
			{Attribute: 2, Vertices: []int{0, 2, 3}},
		},
		Boundary: []Element{
			{Attribute: 1, Vertices: []int{0, 1}},
			{Attribute: 2, Vertices: []int{1, 2}},
			{Attribute: 3, Vertices: []int{2, 3}},
			{Attribute: 4, Vertices: []int{3, 0}},
		},
	}
}

// UnitTetrahedron returns the reference tetrahedron as a one-element mesh
// with attribute 1. Its four boundary triangles are oriented outward.
func UnitTetrahedron() *Mesh {
	return &Mesh{
		Dim:      3,
		Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Elements: []Element{
			{Attribute: 1, Vertices: []int{0, 1, 2, 3}},
		},
		Boundary: []Element{
			{Attribute: 1, Vertices: []int{0, 2, 1}},
			{Attribute: 2, Vertices: []int{0, 1, 3}},
			{Attribute: 3, Vertices: []int{0, 3, 2}},
			{Attribute: 4, Vertices: []int{1, 2, 3}},
		},
	}
}
