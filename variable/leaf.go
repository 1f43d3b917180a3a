package variable

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/fieldvar/value"
)

// Constant is a point-independent value.
type Constant struct {
	value value.Array
}

// NewConstant returns a constant holding v.
func NewConstant(v value.Array) *Constant { return &Constant{value: v} }

// Value returns the constant value.
func (c *Constant) Value() value.Array { return c.value }

// Complex reports whether the value is complex.
func (c *Constant) Complex() bool { return c.value.IsComplex() }

// Dependency returns nil.
func (c *Constant) Dependency() []string { return nil }

// Eval returns the value.
func (c *Constant) Eval(*Point) (value.Array, error) { return c.value, nil }

// NodalValues returns the value at vertices of covered elements and zero
// elsewhere.
func (c *Constant) NodalValues(a *NodalArgs) (value.Array, error) {
	mask, err := a.mask()
	if err != nil {
		return value.Array{}, err
	}

	return value.Multi(mask, value.Tile(a.size(), c.value))
}

// NCFaceValues returns the value at every sample point.
func (c *Constant) NCFaceValues(a *FaceArgs) (value.Array, error) {
	return value.Tile(a.size(), c.value), nil
}

// NCEdgeValues returns the value at every sample point.
func (c *Constant) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return c.NCFaceValues(a)
}

// EmeshIndex returns idx.
func (c *Constant) EmeshIndex(idx []int, _ *Variables) []int { return idx }

func (c *Constant) String() string { return "Constant(" + c.value.String() + ")" }

// Coordinate is the physical position of the point, or one component of
// it.
type Coordinate struct {
	comp int
}

// NewCoordinate returns the coordinate component comp (1-based), or the
// whole position for [AllComponents].
func NewCoordinate(comp int) *Coordinate { return &Coordinate{comp: comp} }

// Complex returns false.
func (c *Coordinate) Complex() bool { return false }

// Dependency returns nil.
func (c *Coordinate) Dependency() []string { return nil }

// Eval returns the transformed integration point.
func (c *Coordinate) Eval(p *Point) (value.Array, error) {
	x, err := p.coords()
	if err != nil {
		return value.Array{}, err
	}

	return pick(value.Vector(x...), c.comp)
}

// NodalValues returns the vertex coordinates.
func (c *Coordinate) NodalValues(a *NodalArgs) (value.Array, error) {
	return c.fromLocs(a.Locs)
}

// NCFaceValues returns the sample point coordinates.
func (c *Coordinate) NCFaceValues(a *FaceArgs) (value.Array, error) {
	return c.fromLocs(a.Locs)
}

// NCEdgeValues returns the sample point coordinates.
func (c *Coordinate) NCEdgeValues(a *FaceArgs) (value.Array, error) {
	return c.fromLocs(a.Locs)
}

func (c *Coordinate) fromLocs(locs value.Array) (value.Array, error) {
	if locs.Rank() != 2 {
		return value.Array{}, ErrMissingBatchInput.With(
			slog.String("input", "Locs"),
			slog.Any("shape", locs.Shape()),
		)
	}

	return pick(locs, c.comp)
}

// EmeshIndex returns idx.
func (c *Coordinate) EmeshIndex(idx []int, _ *Variables) []int { return idx }

func (c *Coordinate) String() string {
	if c.comp == AllComponents {
		return "Coordinates"
	}

	return "Coordinate(" + strconv.Itoa(c.comp) + ")"
}
