// Package mesh builds the static base geometry that the wave shaders displace.
package mesh

import "github.com/chewxy/math32"

// Default grid extent and cell size in world units.
const (
	DefaultDim  = 100.0
	DefaultUnit = 2.0
)

// Grid is a flat, indexed quad grid in the XZ plane at y = 0.
type Grid struct {
	Vertices []float32 // x, y, z per vertex
	Indices  []uint32  // two triangles per cell
	Cells    int       // cells per side
	Dim      float32
	Unit     float32
}

// BuildGrid covers [-dim/2, dim/2] on X and Z with cells of size unit.
// Non-positive inputs fall back to the defaults.
func BuildGrid(dim, unit float32) *Grid {
	if dim <= 0 {
		dim = DefaultDim
	}
	if unit <= 0 || unit > dim {
		unit = DefaultUnit
	}
	cells := int(math32.Floor(dim / unit))
	if cells < 1 {
		cells = 1
	}

	g := &Grid{Cells: cells, Dim: dim, Unit: unit}
	side := cells + 1
	g.Vertices = make([]float32, 0, side*side*3)
	g.Indices = make([]uint32, 0, cells*cells*6)

	start := -dim / 2
	for iz := 0; iz < side; iz++ {
		z := start + float32(iz)*unit
		for ix := 0; ix < side; ix++ {
			x := start + float32(ix)*unit
			g.Vertices = append(g.Vertices, x, 0, z)
		}
	}

	// Corner order matches the quad winding (x,z) (x,z+u) (x+u,z+u) (x+u,z).
	for iz := 0; iz < cells; iz++ {
		for ix := 0; ix < cells; ix++ {
			a := uint32(iz*side + ix)
			b := a + uint32(side)
			c := b + 1
			d := a + 1
			g.Indices = append(g.Indices, a, b, c, a, c, d)
		}
	}
	return g
}

// VertexCount returns the number of vertices.
func (g *Grid) VertexCount() int {
	return len(g.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (g *Grid) TriangleCount() int {
	return len(g.Indices) / 3
}
