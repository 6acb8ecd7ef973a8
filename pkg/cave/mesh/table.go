package mesh

// Point names one of the eight nodes of a square.
type Point uint8

const (
	TopLeft Point = iota
	TopRight
	BottomRight
	BottomLeft
	CentreTop
	CentreRight
	CentreBottom
	CentreLeft
)

var pointNames = [...]string{
	TopLeft:      "TL",
	TopRight:     "TR",
	BottomRight:  "BR",
	BottomLeft:   "BL",
	CentreTop:    "top",
	CentreRight:  "right",
	CentreBottom: "bottom",
	CentreLeft:   "left",
}

func (p Point) String() string {
	if int(p) < len(pointNames) {
		return pointNames[p]
	}
	return "invalid"
}

// Table maps a square configuration to the polygon it covers. Each polygon
// is triangulated as a fan from its first point.
//
// The saddle cases 5 and 10 keep both active corners connected with a
// six-point polygon instead of splitting into two triangles.
var Table = [16][]Point{
	0: nil,

	1: {CentreLeft, CentreBottom, BottomLeft},
	2: {BottomRight, CentreBottom, CentreRight},
	4: {TopRight, CentreRight, CentreTop},
	8: {TopLeft, CentreTop, CentreLeft},

	3:  {CentreRight, BottomRight, BottomLeft, CentreLeft},
	6:  {CentreTop, TopRight, BottomRight, CentreBottom},
	9:  {TopLeft, CentreTop, CentreBottom, BottomLeft},
	12: {TopLeft, TopRight, CentreRight, CentreLeft},
	5:  {CentreTop, TopRight, CentreRight, CentreBottom, BottomLeft, CentreLeft},
	10: {TopLeft, CentreTop, CentreRight, BottomRight, CentreBottom, CentreLeft},

	7:  {CentreTop, TopRight, BottomRight, BottomLeft, CentreLeft},
	11: {TopLeft, CentreTop, CentreRight, BottomRight, BottomLeft},
	13: {TopLeft, TopRight, CentreRight, CentreBottom, BottomLeft},
	14: {TopLeft, TopRight, BottomRight, CentreBottom, CentreLeft},

	15: {TopLeft, TopRight, BottomRight, BottomLeft},
}

// FanTriangles returns the triangles of the configuration as indices into
// its Table entry.
func FanTriangles(configuration int) [][3]int {
	points := Table[configuration]
	if len(points) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(points)-2)
	for i := 1; i+1 < len(points); i++ {
		tris = append(tris, [3]int{0, i, i + 1})
	}
	return tris
}
