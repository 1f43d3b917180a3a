package fem

//go:generate go tool stringer --linecomment --type Geometry,Family --output types_string.go

// IntegrationPoint is a location in reference coordinates with a
// quadrature weight.
type IntegrationPoint struct {
	X, Y, Z float64
	Weight  float64
}

// Coords returns the first dim reference coordinates of ip.
func (ip IntegrationPoint) Coords(dim int) []float64 {
	return []float64{ip.X, ip.Y, ip.Z}[:min(max(dim, 0), 3)]
}

// IntegrationRule is an ordered set of integration points.
type IntegrationRule []IntegrationPoint

// Geometry identifies a reference element shape.
type Geometry int

// Reference element shapes.
const (
	Point       Geometry = iota // Point
	Segment                     // Segment
	Triangle                    // Triangle
	Square                      // Square
	Tetrahedron                 // Tetrahedron
	Cube                        // Cube
)

// Dimension returns the topological dimension of g.
func (g Geometry) Dimension() int {
	switch g {
	case Segment:
		return 1
	case Triangle, Square:
		return 2
	case Tetrahedron, Cube:
		return 3
	default:
		return 0
	}
}

//nolint:gochecknoglobals
var vertices = map[Geometry]IntegrationRule{
	Point:   {{}},
	Segment: {{X: 0}, {X: 1}},
	Triangle: {
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	},
	Square: {
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	},
	Tetrahedron: {
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	},
	Cube: {
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	},
}

// Vertices returns the reference vertices of g in local vertex order.
// The returned rule is a copy.
func Vertices(g Geometry) IntegrationRule {
	v := vertices[g]
	out := make(IntegrationRule, len(v))
	copy(out, v)

	return out
}

// VertexRules returns a rule table mapping every geometry to its reference
// vertices. It is the default sampling used for non-conforming plots.
func VertexRules() map[Geometry]IntegrationRule {
	rules := make(map[Geometry]IntegrationRule, len(vertices))
	for g := range vertices {
		rules[g] = Vertices(g)
	}

	return rules
}

// VertexPair maps an element-local vertex number to a global vertex index.
type VertexPair struct {
	Local  int
	Global int
}
