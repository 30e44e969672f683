package geom

import "math"

const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10

	DefaultPaperWidth  = 720
	DefaultPaperHeight = 480
)

// View is the pan/zoom state of the viewport over the paper.
//
// Canvas-space has its origin at the paper's top-left corner. With no pan the
// paper centre sits in the middle of the viewport, so
//
//	screen = viewport/2 + Pan + (canvas - paper/2) * Zoom
type View struct {
	Zoom float64
	Pan  Point // screen pixels

	Width, Height    float64 // viewport
	PaperW, PaperH   float64
	MinZoom, MaxZoom float64
}

// NewView returns a view with zoom 1 over a paper of the given size.
func NewView(paperW, paperH float64) View {
	if paperW <= 0 {
		paperW = DefaultPaperWidth
	}
	if paperH <= 0 {
		paperH = DefaultPaperHeight
	}
	return View{
		Zoom:    1,
		PaperW:  paperW,
		PaperH:  paperH,
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
	}
}

func (v View) degenerate() bool {
	return v.Width <= 0 || v.Height <= 0 || !(v.Zoom > 0) || !finite(v.Zoom)
}

// ToCanvas maps a screen position to canvas-space. A degenerate view
// returns the input unchanged.
func (v View) ToCanvas(sx, sy float64) Point {
	if v.degenerate() {
		return Point{sx, sy}
	}
	return Point{
		X: (sx-v.Width/2-v.Pan.X)/v.Zoom + v.PaperW/2,
		Y: (sy-v.Height/2-v.Pan.Y)/v.Zoom + v.PaperH/2,
	}
}

// ToScreen maps a canvas-space point to the screen. A degenerate view
// returns the input unchanged.
func (v View) ToScreen(p Point) Point {
	if v.degenerate() {
		return p
	}
	return Point{
		X: v.Width/2 + v.Pan.X + (p.X-v.PaperW/2)*v.Zoom,
		Y: v.Height/2 + v.Pan.Y + (p.Y-v.PaperH/2)*v.Zoom,
	}
}

// PaperRect is the paper's screen-space rectangle.
func (v View) PaperRect() Rect {
	return Rect{
		Min: v.ToScreen(Point{0, 0}),
		Max: v.ToScreen(Point{v.PaperW, v.PaperH}),
	}
}

// Resize sets the viewport size. Negative sizes are stored as zero.
func (v *View) Resize(w, h float64) {
	v.Width = math.Max(0, w)
	v.Height = math.Max(0, h)
}

// PanBy moves the paper by a screen-space delta.
func (v *View) PanBy(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	v.Pan.X += dx
	v.Pan.Y += dy
}

// ZoomBy multiplies the zoom by ratio and clamps the result.
func (v *View) ZoomBy(ratio float64) {
	if !(ratio > 0) || !finite(ratio) {
		return
	}
	v.SetZoom(v.Zoom * ratio)
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (v *View) SetZoom(z float64) {
	if !(z > 0) || !finite(z) {
		return
	}
	v.Zoom = v.clamp(z)
}

// clamp returns z limited to the view's zoom bounds.
func (v View) clamp(z float64) float64 {
	lo, hi := v.MinZoom, v.MaxZoom
	if !(lo > 0) {
		lo = DefaultMinZoom
	}
	if !(hi >= lo) {
		hi = math.Max(lo, DefaultMaxZoom)
	}
	return math.Min(hi, math.Max(lo, z))
}

// SetBounds updates the zoom limits and re-clamps the current zoom.
func (v *View) SetBounds(lo, hi float64) {
	v.MinZoom, v.MaxZoom = lo, hi
	v.Zoom = v.clamp(v.Zoom)
}
