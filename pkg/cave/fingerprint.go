package cave

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave/mesh"
)

// Fingerprint hashes the floor and wall buffers. Equal meshes have equal
// fingerprints, so two generations can be compared without keeping both.
func (m *CaveMesh) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	writeVertices := func(vs []r3.Vec) {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(len(vs)))
		d.Write(buf)
		for _, v := range vs {
			buf = buf[:0]
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.X))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Y))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Z))
			d.Write(buf)
		}
	}
	writeTriangles := func(ts []mesh.Triangle) {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(len(ts)))
		d.Write(buf)
		for _, t := range ts {
			buf = buf[:0]
			buf = binary.LittleEndian.AppendUint32(buf, uint32(t.A))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(t.B))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(t.C))
			d.Write(buf)
		}
	}

	writeVertices(m.FloorVertices)
	writeTriangles(m.FloorTriangles)
	writeVertices(m.WallVertices)
	writeTriangles(m.WallTriangles)
	return d.Sum64()
}

// Stats summarises a mesh for logging.
type Stats struct {
	FloorVertices  int `json:"floor_vertices"`
	FloorTriangles int `json:"floor_triangles"`
	WallVertices   int `json:"wall_vertices"`
	WallTriangles  int `json:"wall_triangles"`
	Outlines       int `json:"outlines"`
}

// Stats returns the buffer sizes of m.
func (m *CaveMesh) Stats() Stats {
	return Stats{
		FloorVertices:  len(m.FloorVertices),
		FloorTriangles: len(m.FloorTriangles),
		WallVertices:   len(m.WallVertices),
		WallTriangles:  len(m.WallTriangles),
		Outlines:       len(m.Outlines),
	}
}

// LogValue lets a Stats be passed directly as a slog attribute.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("floorVertices", s.FloorVertices),
		slog.Int("floorTriangles", s.FloorTriangles),
		slog.Int("wallVertices", s.WallVertices),
		slog.Int("wallTriangles", s.WallTriangles),
		slog.Int("outlines", s.Outlines),
	)
}
