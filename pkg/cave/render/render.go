// Package render flattens a cave mesh into per-triangle vertex attribute
// buffers ready for upload. Every triangle corner is written out, so the
// buffers are drawn without an index buffer.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave"
	"github.com/OCharnyshevich/cave-mesh/pkg/cave/mesh"
)

const (
	// FloorStride is the float count per floor vertex: position and colour.
	FloorStride = 6
	// WallStride is the float count per wall vertex: position and UV.
	WallStride = 5
)

// FloorColour is the flat grey given to every floor vertex.
var FloorColour = [3]float32{0.22, 0.22, 0.22}

// wallUV are the texture coordinates of the three corners of every wall
// triangle.
var wallUV = [3][2]float32{{1, 1}, {1, 0}, {0, 1}}

// Floor interleaves x, y, z, r, g, b for each corner of each floor triangle.
func Floor(m *cave.CaveMesh) []float32 {
	out := make([]float32, 0, len(m.FloorTriangles)*3*FloorStride)
	return appendCorners(out, m.FloorVertices, m.FloorTriangles, func(out []float32, _ int) []float32 {
		return append(out, FloorColour[0], FloorColour[1], FloorColour[2])
	})
}

// Walls interleaves x, y, z, u, v for each corner of each wall triangle.
func Walls(m *cave.CaveMesh) []float32 {
	out := make([]float32, 0, len(m.WallTriangles)*3*WallStride)
	return appendCorners(out, m.WallVertices, m.WallTriangles, func(out []float32, corner int) []float32 {
		return append(out, wallUV[corner][0], wallUV[corner][1])
	})
}

func appendCorners(out []float32, vertices []r3.Vec, tris []mesh.Triangle, attrs func([]float32, int) []float32) []float32 {
	for _, t := range tris {
		for corner, idx := range t.Vertices() {
			v := vertices[idx]
			out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
			out = attrs(out, corner)
		}
	}
	return out
}
