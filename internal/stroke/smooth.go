package stroke

import "github.com/example/drawdle/internal/geom"

// Tension is the Catmull-Rom to Bezier factor. 1/6 gives the uniform
// Catmull-Rom spline.
const Tension = 1.0 / 6

// Segment is one cubic Bezier piece starting where the previous one ended.
type Segment struct {
	C1, C2, To geom.Point
}

// Smooth converts pts into cubic Bezier segments through every point. The
// first and last points are duplicated as their own neighbours. Fewer than
// two points yield no segments.
func Smooth(pts []geom.Point) []Segment {
	n := len(pts)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n-1)
	for i := 0; i < n-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, n-1)]
		segs = append(segs, Segment{
			C1: p1.Add(p2.Sub(p0).Scale(Tension)),
			C2: p2.Sub(p3.Sub(p1).Scale(Tension)),
			To: p2,
		})
	}
	return segs
}

// Path describes how a stroke should be traced.
type Path struct {
	Start    geom.Point
	Dot      bool      // single point, draw a round dot
	Segments []Segment // cubic pieces; straight pieces have C1=Start, C2=To
}

// Trace returns the outline path for s, transforming every point with f
// first. A nil f uses the points as they are.
func Trace(s Stroke, f func(geom.Point) geom.Point) Path {
	if f == nil {
		f = func(p geom.Point) geom.Point { return p }
	}
	if len(s.Points) == 0 {
		return Path{}
	}
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = f(p)
	}
	p := Path{Start: pts[0]}
	switch {
	case len(pts) == 1:
		p.Dot = true
	case s.Tool == ToolLine:
		end := pts[len(pts)-1]
		p.Segments = []Segment{{C1: pts[0], C2: end, To: end}}
	case len(pts) == 2:
		p.Segments = []Segment{{C1: pts[0], C2: pts[1], To: pts[1]}}
	default:
		p.Segments = Smooth(pts)
	}
	return p
}
