package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave"
	"github.com/OCharnyshevich/cave-mesh/pkg/cave/mesh"
)

// MeshData is the serializable representation of a cave mesh.
type MeshData struct {
	Seed           int64        `json:"seed"`
	Fingerprint    string       `json:"fingerprint"`
	Stats          cave.Stats   `json:"stats"`
	FloorVertices  [][3]float64 `json:"floor_vertices"`
	FloorTriangles [][3]int     `json:"floor_triangles"`
	WallVertices   [][3]float64 `json:"wall_vertices"`
	WallTriangles  [][3]int     `json:"wall_triangles"`
	Outlines       [][]int      `json:"outlines"`
}

// MeshDataFromCave extracts serializable data from a generated mesh.
func MeshDataFromCave(m *cave.CaveMesh) *MeshData {
	md := &MeshData{
		Seed:           m.Seed,
		Fingerprint:    fmt.Sprintf("%016x", m.Fingerprint()),
		Stats:          m.Stats(),
		FloorVertices:  vertexData(m.FloorVertices),
		FloorTriangles: triangleData(m.FloorTriangles),
		WallVertices:   vertexData(m.WallVertices),
		WallTriangles:  triangleData(m.WallTriangles),
		Outlines:       make([][]int, len(m.Outlines)),
	}
	for i, o := range m.Outlines {
		md.Outlines[i] = []int(o)
	}
	return md
}

func vertexData(vs []r3.Vec) [][3]float64 {
	out := make([][3]float64, len(vs))
	for i, v := range vs {
		out[i] = [3]float64{v.X, v.Y, v.Z}
	}
	return out
}

func triangleData(ts []mesh.Triangle) [][3]int {
	out := make([][3]int, len(ts))
	for i, t := range ts {
		out[i] = t.Vertices()
	}
	return out
}

// WriteJSON encodes m as indented JSON.
func WriteJSON(w io.Writer, m *cave.CaveMesh) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(MeshDataFromCave(m)); err != nil {
		return fmt.Errorf("encode mesh: %w", err)
	}
	return nil
}

// WriteOBJ writes m as a Wavefront OBJ file with a "floor" and a "walls"
// object. Wall faces are offset past the floor vertices since OBJ indices
// are global and 1-based.
func WriteOBJ(w io.Writer, m *cave.CaveMesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# cave seed %d fingerprint %016x\n", m.Seed, m.Fingerprint())

	fmt.Fprintln(bw, "o floor")
	writeOBJVertices(bw, m.FloorVertices)
	writeOBJFaces(bw, m.FloorTriangles, 1)

	fmt.Fprintln(bw, "o walls")
	writeOBJVertices(bw, m.WallVertices)
	writeOBJFaces(bw, m.WallTriangles, 1+len(m.FloorVertices))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

func writeOBJVertices(w io.Writer, vs []r3.Vec) {
	for _, v := range vs {
		fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
}

func writeOBJFaces(w io.Writer, ts []mesh.Triangle, offset int) {
	for _, t := range ts {
		fmt.Fprintf(w, "f %d %d %d\n", t.A+offset, t.B+offset, t.C+offset)
	}
}

// WriteFile writes m to path, choosing the format from the extension
// (.obj or .json). The file is replaced atomically.
func WriteFile(path string, m *cave.CaveMesh) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		if err := WriteOBJ(&buf, m); err != nil {
			return err
		}
	case ".json":
		if err := WriteJSON(&buf, m); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	return atomicWrite(path, buf.Bytes())
}

// atomicWrite writes data using a temp file + rename.
func atomicWrite(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// IndexedPath inserts index before the extension of path, for runs that
// write several caves: "cave.obj" becomes "cave-2.obj".
func IndexedPath(path string, index int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), index, ext)
}
