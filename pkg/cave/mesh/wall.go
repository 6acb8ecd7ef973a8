package mesh

import "gonum.org/v1/gonum/spatial/r3"

// DefaultWallHeight is how far walls reach below the floor.
const DefaultWallHeight = 5.0

// Walls is the extruded wall geometry. Vertices are independent of the
// floor's and every outline segment owns four of them.
type Walls struct {
	Vertices  []r3.Vec
	Triangles []Triangle
}

// Extrude builds one quad per outline segment, hanging height units below
// the floor. The quad's corners are emitted as top-left, top-right,
// bottom-left, bottom-right and split into (TL,BL,BR) and (BR,TR,TL).
func Extrude(f *Floor, outlines []Outline, height float64) *Walls {
	segments := 0
	for _, o := range outlines {
		segments += o.Segments()
	}

	w := &Walls{
		Vertices:  make([]r3.Vec, 0, 4*segments),
		Triangles: make([]Triangle, 0, 2*segments),
	}
	down := r3.Vec{Y: -height}

	for _, o := range outlines {
		for i := 0; i < o.Segments(); i++ {
			start := len(w.Vertices)
			left := f.Vertices[o[i]]
			right := f.Vertices[o[i+1]]

			w.Vertices = append(w.Vertices,
				left,
				right,
				r3.Add(left, down),
				r3.Add(right, down),
			)

			topLeft, topRight, bottomLeft, bottomRight := start, start+1, start+2, start+3
			w.Triangles = append(w.Triangles,
				Triangle{A: topLeft, B: bottomLeft, C: bottomRight},
				Triangle{A: bottomRight, B: topRight, C: topLeft},
			)
		}
	}
	return w
}
