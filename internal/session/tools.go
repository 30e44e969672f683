package session

import (
	"math"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/gesture"
	"github.com/example/drawdle/internal/stroke"
)

// toolHandler is the per-tool pointer behaviour. Positions are in screen
// space. Callbacks report whether the drawing changed; nil ones do nothing.
type toolHandler struct {
	start gesture.Start
	down  func(s *Session, pos geom.Point) bool
	move  func(s *Session, pos geom.Point) bool
	up    func(s *Session) bool
}

var toolTable map[stroke.Tool]toolHandler

func init() {
	freehand := toolHandler{start: gesture.StartDraw, down: beginStroke, move: extendStroke, up: finishStroke}
	toolTable = map[stroke.Tool]toolHandler{
		stroke.ToolBrush:  freehand,
		stroke.ToolEraser: freehand,
		stroke.ToolLine:   {start: gesture.StartDraw, down: beginStroke, move: moveLineEnd, up: finishStroke},
		stroke.ToolPan:    {start: gesture.StartGrab},
		stroke.ToolPicker: {start: gesture.StartTap, down: pickColor},
	}
}

func beginStroke(s *Session, pos geom.Point) bool {
	tool := s.activeTool
	c := stroke.WithOpacity(s.params.Color, s.params.Opacity)
	if tool == stroke.ToolEraser {
		c = s.paper
	}
	s.activeID = s.model.Begin(tool, c, s.params.Size(tool), s.view.ToCanvas(pos.X, pos.Y))
	return s.activeID != 0
}

func extendStroke(s *Session, pos geom.Point) bool {
	p := s.view.ToCanvas(pos.X, pos.Y)
	last, ok := s.model.LastPoint()
	if !ok {
		return false
	}
	if geom.Distance(last, p)*s.view.Zoom <= s.minDist {
		return false
	}
	return s.model.Append(s.activeID, p)
}

func moveLineEnd(s *Session, pos geom.Point) bool {
	return s.model.SetEnd(s.activeID, s.view.ToCanvas(pos.X, pos.Y))
}

func finishStroke(s *Session) bool {
	ok := s.model.Finalize(s.activeID)
	s.activeID = 0
	return ok
}

// pickColor changes tool state only, so the frame stays as it is.
func pickColor(s *Session, pos geom.Point) bool {
	hex, ok := s.Sample(s.view.ToCanvas(pos.X, pos.Y))
	if !ok {
		return false
	}
	if err := s.SetColor(hex); err != nil {
		return false
	}
	if s.onPick != nil {
		s.onPick(hex)
	}
	return false
}

// PointerDown registers a pointer at screen position (x, y).
func (s *Session) PointerDown(id int64, x, y float64) {
	s.pointerDown(id, geom.Pt(x, y), false)
}

func (s *Session) pointerDown(id int64, pos geom.Point, grab bool) {
	if !finite(pos) {
		return
	}
	tool := s.EffectiveTool()
	start := toolTable[tool].start
	if grab {
		start = gesture.StartGrab
	}
	in := s.gestures.Down(id, pos, start)
	if in.Kind == gesture.ToolDown {
		s.activeTool = tool
	}
	s.apply(in)
}

// PointerMove reports a new screen position for a pointer.
func (s *Session) PointerMove(id int64, x, y float64) {
	pos := geom.Pt(x, y)
	if !finite(pos) {
		return
	}
	s.apply(s.gestures.Move(id, pos))
}

// PointerUp releases a pointer.
func (s *Session) PointerUp(id int64) {
	s.apply(s.gestures.Up(id))
}

// PointerCancel drops a pointer that left the surface or was cancelled.
func (s *Session) PointerCancel(id int64) {
	s.apply(s.gestures.Cancel(id))
}

// CancelAll releases every pointer. A stroke in progress is kept.
func (s *Session) CancelAll() {
	s.apply(s.gestures.Reset())
}

func (s *Session) apply(in gesture.Intent) {
	h := toolTable[s.activeTool]
	changed := false
	switch in.Kind {
	case gesture.Pan:
		changed = s.panBy(in.Delta)
	case gesture.Pinch:
		before := s.view.Zoom
		s.view.ZoomBy(in.Ratio)
		changed = s.panBy(in.Delta) || s.view.Zoom != before
	case gesture.ToolDown:
		if h.down != nil {
			changed = h.down(s, in.Pos)
		}
	case gesture.ToolMove:
		if h.move != nil {
			changed = h.move(s, in.Pos)
		}
	case gesture.ToolUp:
		if h.up != nil {
			changed = h.up(s)
		}
	}
	if changed {
		s.redraw()
	}
}

func (s *Session) panBy(d geom.Point) bool {
	if d.X == 0 && d.Y == 0 {
		return false
	}
	s.view.PanBy(d.X, d.Y)
	return true
}

// Wheel handles a scroll of (dx, dy) pixels. With ctrl held it zooms,
// otherwise it pans by half the delta in the opposite direction.
func (s *Session) Wheel(dx, dy float64, ctrl bool) {
	if !finite(geom.Pt(dx, dy)) {
		return
	}
	if ctrl {
		factor := 1 - dy/WheelZoomDivisor
		if factor <= 0 {
			return
		}
		s.view.ZoomBy(factor)
	} else {
		s.view.PanBy(-dx/2, -dy/2)
	}
	s.redraw()
}

func finite(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
