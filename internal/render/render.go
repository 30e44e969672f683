// Package render rasterizes the paper, its shadow and the strokes for a
// view using gogpu/gg.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/theme"
)

// Renderer owns the frame buffer. It is not ready, and every call is a
// no-op, until Resize is given a positive size.
type Renderer struct {
	background color.NRGBA
	paper      color.NRGBA
	shadowOpts ShadowOptions

	dc *gg.Context
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme takes the backdrop, paper and shadow colors from t.
func WithTheme(t *theme.Theme) Option {
	return func(r *Renderer) {
		if t == nil {
			return
		}
		r.background = color.NRGBAModel.Convert(t.Background).(color.NRGBA)
		r.paper = color.NRGBAModel.Convert(t.Paper).(color.NRGBA)
		r.shadowOpts.Color = color.NRGBAModel.Convert(t.Shadow).(color.NRGBA)
	}
}

// WithShadow replaces the shadow geometry and color.
func WithShadow(opts ShadowOptions) Option {
	return func(r *Renderer) { r.shadowOpts = opts }
}

// New returns a renderer with the default theme. Call Resize before drawing.
func New(opts ...Option) *Renderer {
	r := &Renderer{shadowOpts: DefaultShadowOptions()}
	WithTheme(theme.Default())(r)
	for _, o := range opts {
		o(r)
	}
	return r
}

// Ready reports whether the renderer has a frame buffer.
func (r *Renderer) Ready() bool { return r != nil && r.dc != nil }

// Paper returns the paper color, which eraser strokes paint with.
func (r *Renderer) Paper() color.NRGBA { return r.paper }

// Background returns the backdrop color.
func (r *Renderer) Background() color.NRGBA { return r.background }

// Resize sets the frame size. A non-positive size drops the frame buffer.
func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		r.dc = nil
		return
	}
	if r.dc == nil {
		r.dc = gg.NewContext(w, h)
		return
	}
	if err := r.dc.Resize(w, h); err != nil {
		r.dc = nil
	}
}

// Size returns the frame size, zero when not ready.
func (r *Renderer) Size() (int, int) {
	if !r.Ready() {
		return 0, 0
	}
	return r.dc.Width(), r.dc.Height()
}

// Draw renders a full frame: backdrop, paper, strokes in order, then the
// margins outside the paper are painted over and the shadow is laid on top
// of them.
func (r *Renderer) Draw(v geom.View, strokes []stroke.Stroke) error {
	if !r.Ready() {
		return nil
	}
	dc := r.dc
	dc.ClearPath()
	dc.Identity()
	dc.ClearWithColor(gg.FromColor(r.background))

	paper := v.PaperRect()
	dc.SetColor(r.paper)
	dc.DrawRectangle(paper.Min.X, paper.Min.Y, paper.Dx(), paper.Dy())
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill paper: %w", err)
	}

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, s := range strokes {
		if err := r.drawStroke(v, s); err != nil {
			return err
		}
	}

	if err := r.overdrawMargins(paper); err != nil {
		return err
	}
	r.drawShadow(paper)
	return nil
}

func (r *Renderer) drawStroke(v geom.View, s stroke.Stroke) error {
	p := stroke.Trace(s, v.ToScreen)
	width := s.Size * v.Zoom
	if !(width > 0) {
		return nil
	}
	dc := r.dc
	dc.SetColor(s.Color)
	if p.Dot {
		dc.DrawCircle(p.Start.X, p.Start.Y, width/2)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("stroke %d: %w", s.ID, err)
		}
		return nil
	}
	dc.SetLineWidth(width)
	dc.MoveTo(p.Start.X, p.Start.Y)
	for _, seg := range p.Segments {
		dc.CubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.To.X, seg.To.Y)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke %d: %w", s.ID, err)
	}
	return nil
}

// overdrawMargins paints the backdrop over everything outside paper. Strokes
// appear clipped without a clip region.
func (r *Renderer) overdrawMargins(paper geom.Rect) error {
	dc := r.dc
	w, h := float64(dc.Width()), float64(dc.Height())
	top := math.Max(0, math.Min(h, paper.Min.Y))
	bottom := math.Max(0, math.Min(h, paper.Max.Y))
	margins := [4][4]float64{
		{0, 0, w, top},
		{0, bottom, w, h - bottom},
		{0, top, math.Max(0, paper.Min.X), bottom - top},
		{paper.Max.X, top, w - paper.Max.X, bottom - top},
	}
	dc.SetColor(r.background)
	for _, m := range margins {
		if m[2] <= 0 || m[3] <= 0 {
			continue
		}
		dc.DrawRectangle(m[0], m[1], m[2], m[3])
	}
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("overdraw margins: %w", err)
	}
	return nil
}

// drawShadow lays the shadow strips that fall inside the frame. The paper
// edges are clamped just past the blur reach so a deeply zoomed paper costs
// no more than one at zoom 1.
func (r *Renderer) drawShadow(paper geom.Rect) {
	o := r.shadowOpts
	frame := image.Rect(0, 0, r.dc.Width(), r.dc.Height())
	m := float64(max(o.Radius, 0) + abs(o.Offset.X) + abs(o.Offset.Y) + 1)
	edge := func(v, lo, hi float64) int {
		return int(math.Round(math.Max(lo-m, math.Min(hi+m, v))))
	}
	w, h := float64(frame.Dx()), float64(frame.Dy())
	rect := image.Rect(
		edge(paper.Min.X, 0, w), edge(paper.Min.Y, 0, h),
		edge(paper.Max.X, 0, w), edge(paper.Max.Y, 0, h),
	)
	s := NewShadow(rect, o)
	r.dc.Push()
	defer r.dc.Pop()
	for _, region := range s.Regions(frame) {
		r.dc.DrawImage(gg.ImageBufFromImage(s.Tile(region)), float64(region.Min.X), float64(region.Min.Y))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sample returns the rendered color at screen pixel (x, y).
func (r *Renderer) Sample(x, y int) (color.NRGBA, bool) {
	if !r.Ready() {
		return color.NRGBA{}, false
	}
	pm := r.dc.ResizeTarget()
	if x < 0 || y < 0 || x >= pm.Width() || y >= pm.Height() {
		return color.NRGBA{}, false
	}
	c := pm.GetPixel(x, y)
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}, true
}

// SampleHex is Sample formatted as #rrggbb.
func (r *Renderer) SampleHex(x, y int) (string, bool) {
	c, ok := r.Sample(x, y)
	if !ok {
		return "", false
	}
	return stroke.HexRGB(c), true
}

// Image returns a copy of the current frame.
func (r *Renderer) Image() *image.RGBA {
	if !r.Ready() {
		return nil
	}
	return r.dc.ResizeTarget().ToImage()
}

// EncodePNG writes the current frame as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if !r.Ready() {
		return fmt.Errorf("renderer not ready")
	}
	return r.dc.EncodePNG(w)
}
