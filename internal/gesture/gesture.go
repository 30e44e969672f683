// Package gesture turns raw pointer events into pan, pinch and tool intents.
package gesture

import "github.com/example/drawdle/internal/geom"

// ZoomStep is the zoom ratio applied per pinch sample.
const ZoomStep = 1.005

// Start tells the recognizer what a first pointer-down begins.
type Start int

const (
	// StartDraw begins a tool drag (brush, eraser, line).
	StartDraw Start = iota
	// StartGrab pans the view while the pointer is held.
	StartGrab
	// StartTap fires a single tool-down with no drag (color picker).
	StartTap
)

// Kind identifies an intent.
type Kind int

const (
	None Kind = iota
	Pan
	Pinch
	ToolDown
	ToolMove
	ToolUp
)

func (k Kind) String() string {
	switch k {
	case Pan:
		return "pan"
	case Pinch:
		return "pinch"
	case ToolDown:
		return "tool-down"
	case ToolMove:
		return "tool-move"
	case ToolUp:
		return "tool-up"
	}
	return "none"
}

// Intent is what the caller should do in response to an event.
type Intent struct {
	Kind  Kind
	Pos   geom.Point // screen position for tool intents
	Delta geom.Point // pan delta in screen pixels
	Ratio float64    // zoom multiplier for Pinch, 1 when unchanged
}

type pointer struct {
	id  int64
	pos geom.Point
}

// Recognizer tracks the active pointer set. It is not safe for concurrent
// use.
type Recognizer struct {
	pointers []pointer // in registration order
	grabbing bool
	drawing  bool
	drawer   int64   // pointer that started the drawing gesture
	lastDist float64 // <0 when unset
}

// New returns an idle recognizer.
func New() *Recognizer {
	return &Recognizer{lastDist: -1}
}

// Count returns the number of active pointers.
func (r *Recognizer) Count() int { return len(r.pointers) }

// Grabbing reports whether a single pointer pan is in progress.
func (r *Recognizer) Grabbing() bool { return r.grabbing }

// Drawing reports whether a tool drag is in progress.
func (r *Recognizer) Drawing() bool { return r.drawing }

func (r *Recognizer) index(id int64) int {
	for i, p := range r.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

// Down registers a pointer. Only the first pointer of a gesture starts
// anything; later pointers join a pinch.
func (r *Recognizer) Down(id int64, pos geom.Point, start Start) Intent {
	if i := r.index(id); i >= 0 {
		r.pointers[i].pos = pos
		return Intent{}
	}
	r.pointers = append(r.pointers, pointer{id: id, pos: pos})
	if len(r.pointers) != 2 {
		r.lastDist = -1
	}
	if len(r.pointers) != 1 || r.drawing || r.grabbing {
		return Intent{}
	}
	switch start {
	case StartGrab:
		r.grabbing = true
		return Intent{}
	case StartTap:
		return Intent{Kind: ToolDown, Pos: pos}
	default:
		r.drawing = true
		r.drawer = id
		return Intent{Kind: ToolDown, Pos: pos}
	}
}

// Move updates a pointer position.
func (r *Recognizer) Move(id int64, pos geom.Point) Intent {
	i := r.index(id)
	if i < 0 {
		return Intent{}
	}
	prev := r.pointers[i].pos
	r.pointers[i].pos = pos
	delta := pos.Sub(prev)

	if len(r.pointers) == 1 {
		switch {
		case r.grabbing:
			return Intent{Kind: Pan, Delta: delta}
		case r.drawing && id == r.drawer:
			return Intent{Kind: ToolMove, Pos: pos}
		}
		return Intent{}
	}

	// pinch uses the first two registered pointers only
	if i > 1 {
		return Intent{}
	}
	d := geom.Distance(r.pointers[0].pos, r.pointers[1].pos)
	ratio := 1.0
	switch {
	case d == 0:
	case r.lastDist < 0:
		r.lastDist = d
	case d > r.lastDist:
		ratio = ZoomStep
		r.lastDist = d
	case d < r.lastDist:
		ratio = 1 / ZoomStep
		r.lastDist = d
	}
	// the other tracked pointer did not move in this event
	return Intent{Kind: Pinch, Delta: delta.Scale(0.5), Ratio: ratio}
}

// Up removes a pointer. When the last pointer lifts a drawing gesture
// finishes with a ToolUp intent.
func (r *Recognizer) Up(id int64) Intent {
	i := r.index(id)
	if i < 0 {
		return Intent{}
	}
	r.pointers = append(r.pointers[:i], r.pointers[i+1:]...)
	// a pinch pair that lost a member is a new pair
	if len(r.pointers) != 2 || i <= 1 {
		r.lastDist = -1
	}
	if len(r.pointers) > 0 {
		return Intent{}
	}
	r.grabbing = false
	if r.drawing {
		r.drawing = false
		return Intent{Kind: ToolUp}
	}
	return Intent{}
}

// Cancel is Up for pointers that left the surface or were cancelled by the
// platform.
func (r *Recognizer) Cancel(id int64) Intent {
	return r.Up(id)
}

// Reset drops every pointer. A drawing gesture still ends with ToolUp so the
// stroke is not lost.
func (r *Recognizer) Reset() Intent {
	drawing := r.drawing
	r.pointers = r.pointers[:0]
	r.grabbing, r.drawing = false, false
	r.lastDist = -1
	if drawing {
		return Intent{Kind: ToolUp}
	}
	return Intent{}
}
