// Package session ties the view, the gesture recognizer, the stroke model
// and the renderer together into one drawing session driven by input
// events. A Session is not safe for concurrent use; callers feed it from a
// single event goroutine.
package session

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/gesture"
	"github.com/example/drawdle/internal/render"
	"github.com/example/drawdle/internal/store"
	"github.com/example/drawdle/internal/stroke"
)

const (
	MinSize = 1
	MaxSize = 100

	DefaultBrushSize  = 1
	DefaultEraserSize = 5
	DefaultColor      = "#000000"

	// MinPointDistance is how far, in screen pixels, the pointer must travel
	// before a freehand stroke records another point.
	MinPointDistance = 2.0

	// WheelZoomDivisor scales ctrl+wheel deltas into zoom factors.
	WheelZoomDivisor = 300.0
)

// Params are the tool settings copied into each new stroke.
type Params struct {
	Tool       stroke.Tool
	BrushSize  float64
	EraserSize float64
	Opacity    float64 // percent
	Color      color.NRGBA
}

// Size returns the size used by tool.
func (p Params) Size(tool stroke.Tool) float64 {
	if tool == stroke.ToolEraser {
		return p.EraserSize
	}
	return p.BrushSize
}

// Session is the drawing engine's single owner of mutable state.
type Session struct {
	view     geom.View
	model    *stroke.Model
	gestures *gesture.Recognizer
	renderer *render.Renderer

	params    Params
	paper     color.NRGBA
	panMode   bool
	spaceHeld bool
	keysDown  map[Key]bool
	minDist   float64

	// tool and stroke of the drag in progress
	activeTool stroke.Tool
	activeID   int

	anim  *zoomAnimation
	frame uint64
	dirty bool

	onPick func(hex string)
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer attaches the renderer frames are drawn with.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Session) {
		s.renderer = r
		if r != nil {
			s.paper = r.Paper()
		}
	}
}

// WithView sets the initial view, including paper size and zoom limits.
func WithView(v geom.View) Option {
	return func(s *Session) { s.view = v }
}

// WithPaperColor sets the color eraser strokes paint with.
func WithPaperColor(c color.NRGBA) Option {
	return func(s *Session) { s.paper = c }
}

// WithMinPointDistance overrides MinPointDistance.
func WithMinPointDistance(d float64) Option {
	return func(s *Session) { s.minDist = d }
}

// WithOnPick is called with the hex color whenever the picker samples one.
func WithOnPick(fn func(hex string)) Option {
	return func(s *Session) { s.onPick = fn }
}

// WithClock replaces time.Now for zoom animations.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns a session with default tool parameters and an empty drawing.
func New(opts ...Option) *Session {
	black, _ := stroke.ParseHex(DefaultColor)
	s := &Session{
		view:     geom.NewView(geom.DefaultPaperWidth, geom.DefaultPaperHeight),
		model:    stroke.NewModel(),
		gestures: gesture.New(),
		params: Params{
			Tool:       stroke.ToolBrush,
			BrushSize:  DefaultBrushSize,
			EraserSize: DefaultEraserSize,
			Opacity:    100,
			Color:      black,
		},
		paper:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		keysDown: make(map[Key]bool),
		minDist:  MinPointDistance,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// View returns the current view state.
func (s *Session) View() geom.View { return s.view }

// Params returns the current tool parameters.
func (s *Session) Params() Params { return s.params }

// Model exposes the stroke model for read-only use such as export.
func (s *Session) Model() *stroke.Model { return s.model }

// Renderer returns the attached renderer, possibly nil.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Frame counts completed redraws. Displays compare it to know when to copy
// a new frame.
func (s *Session) Frame() uint64 { return s.frame }

// Panning reports whether pointer input currently pans instead of using the
// tool.
func (s *Session) Panning() bool {
	return s.panMode || s.spaceHeld || s.params.Tool == stroke.ToolPan
}

// EffectiveTool is the tool pointer input will use right now.
func (s *Session) EffectiveTool() stroke.Tool {
	if s.Panning() {
		return stroke.ToolPan
	}
	return s.params.Tool
}

// SetTool selects the active tool.
func (s *Session) SetTool(t stroke.Tool) {
	if _, ok := toolTable[t]; !ok {
		return
	}
	s.params.Tool = t
}

// SetSize sets the size of the current tool, clamped to [MinSize, MaxSize].
func (s *Session) SetSize(size float64) {
	if math.IsNaN(size) {
		return
	}
	size = math.Min(MaxSize, math.Max(MinSize, size))
	if s.params.Tool == stroke.ToolEraser {
		s.params.EraserSize = size
	} else {
		s.params.BrushSize = size
	}
}

// SetColor sets the brush color from a hex string or color name.
func (s *Session) SetColor(value string) error {
	c, err := stroke.ParseColor(value)
	if err != nil {
		return err
	}
	s.params.Color = c
	return nil
}

// SetOpacity sets the brush opacity in percent, clamped to [0, 100].
func (s *Session) SetOpacity(percent float64) {
	if math.IsNaN(percent) {
		return
	}
	s.params.Opacity = math.Min(100, math.Max(0, percent))
}

// SetPanMode forces pointer input to pan regardless of the tool.
func (s *Session) SetPanMode(on bool) { s.panMode = on }

// Undo hides the most recent visible stroke.
func (s *Session) Undo() bool {
	if !s.model.Undo() {
		return false
	}
	s.redraw()
	return true
}

// Redo shows the oldest hidden stroke again.
func (s *Session) Redo() bool {
	if !s.model.Redo() {
		return false
	}
	s.redraw()
	return true
}

// Resize sets the viewport size in pixels and redraws.
func (s *Session) Resize(w, h int) {
	s.view.Resize(float64(w), float64(h))
	if s.renderer != nil {
		s.renderer.Resize(w, h)
	}
	s.redraw()
}

// ZoomBy multiplies the zoom by ratio.
func (s *Session) ZoomBy(ratio float64) {
	s.view.ZoomBy(ratio)
	s.redraw()
}

// ResetView returns to zoom 1 with the paper centred.
func (s *Session) ResetView() {
	s.anim = nil
	s.view.SetZoom(1)
	s.view.Pan = geom.Point{}
	s.redraw()
}

// Redraw renders a frame now.
func (s *Session) Redraw() { s.redraw() }

func (s *Session) redraw() {
	s.dirty = true
	if s.renderer == nil || !s.renderer.Ready() {
		return
	}
	if err := s.renderer.Draw(s.view, s.model.Drawable()); err != nil {
		log.Printf("redraw: %v", err)
		return
	}
	s.dirty = false
	s.frame++
}

// Sample returns the rendered color under canvas point p as #rrggbb.
func (s *Session) Sample(p geom.Point) (string, bool) {
	if s.renderer == nil {
		return "", false
	}
	if s.dirty {
		s.redraw()
	}
	sp := s.view.ToScreen(p)
	return s.renderer.SampleHex(int(math.Floor(sp.X)), int(math.Floor(sp.Y)))
}

// Snapshot serializes every finalized stroke, hidden ones included.
func (s *Session) Snapshot() (string, error) {
	b, err := stroke.Encode(s.model.Strokes())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Restore replaces the drawing with a serialized stroke array.
func (s *Session) Restore(data string) error {
	strokes, err := stroke.Decode([]byte(data))
	if err != nil {
		return err
	}
	s.gestures.Reset()
	s.activeID = 0
	s.model.Replace(strokes)
	s.redraw()
	return nil
}

// Load replaces the drawing with the one held by st.
func (s *Session) Load(ctx context.Context, st store.Store) error {
	data, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("load drawing: %w", err)
	}
	if err := s.Restore(data); err != nil {
		return fmt.Errorf("load drawing: %w", err)
	}
	return nil
}

// SaveAsync snapshots the drawing now and writes it to st in the
// background. done runs on the saving goroutine and may be nil.
func (s *Session) SaveAsync(ctx context.Context, st store.Store, done func(error)) {
	data, err := s.Snapshot()
	if err != nil {
		if done != nil {
			done(err)
		}
		return
	}
	store.SaveAsync(ctx, st, data, done)
}
