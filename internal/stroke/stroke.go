// Package stroke owns the drawing's stroke list, its undo/redo state and
// the JSON format drawings are stored in.
package stroke

import (
	"image/color"

	"github.com/example/drawdle/internal/geom"
)

// Stroke is one continuous path or line segment. Points are in canvas-space
// and are not modified once the stroke is finalized.
type Stroke struct {
	ID     int
	Points []geom.Point
	Color  color.NRGBA
	Size   float64
	Tool   Tool
	Active bool
}

// Model is the ordered stroke list. Insertion order is z-order.
//
// Undo disables the newest active stroke and Redo re-enables the oldest
// disabled one. Beginning a new stroke drops every disabled stroke.
type Model struct {
	strokes []Stroke
	current *Stroke
	nextID  int
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{nextID: 1}
}

// Begin starts a stroke at start and returns its id. Tools that do not draw
// return 0 and leave the model untouched. A line stroke starts with two
// equal points. A stroke still in progress is finalized first.
func (m *Model) Begin(tool Tool, c color.NRGBA, size float64, start geom.Point) int {
	if !tool.Draws() {
		return 0
	}
	if m.current != nil {
		m.Finalize(m.current.ID)
	}
	m.prune()
	if size <= 0 {
		size = 1
	}
	if m.nextID <= 0 {
		m.nextID = 1
	}
	s := &Stroke{
		ID:     m.nextID,
		Points: []geom.Point{start},
		Color:  c,
		Size:   size,
		Tool:   tool,
		Active: true,
	}
	if tool == ToolLine {
		s.Points = append(s.Points, start)
	}
	m.nextID++
	m.current = s
	return s.ID
}

func (m *Model) prune() {
	kept := m.strokes[:0]
	for _, s := range m.strokes {
		if s.Active {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(m.strokes); i++ {
		m.strokes[i] = Stroke{}
	}
	m.strokes = kept
}

// Append adds p to the in-progress freehand stroke id. It reports false and
// does nothing for any other id or for line strokes.
func (m *Model) Append(id int, p geom.Point) bool {
	if m.current == nil || m.current.ID != id || m.current.Tool == ToolLine {
		return false
	}
	m.current.Points = append(m.current.Points, p)
	return true
}

// SetEnd moves the second point of the in-progress line stroke id.
func (m *Model) SetEnd(id int, p geom.Point) bool {
	if m.current == nil || m.current.ID != id || m.current.Tool != ToolLine {
		return false
	}
	m.current.Points[1] = p
	return true
}

// Finalize pushes the in-progress stroke id onto the list where it becomes
// visible to Undo.
func (m *Model) Finalize(id int) bool {
	if m.current == nil || m.current.ID != id {
		return false
	}
	m.strokes = append(m.strokes, *m.current)
	m.current = nil
	return true
}

// Current returns the in-progress stroke, if any.
func (m *Model) Current() (Stroke, bool) {
	if m.current == nil {
		return Stroke{}, false
	}
	return *m.current, true
}

// LastPoint returns the most recent point of the in-progress stroke.
func (m *Model) LastPoint() (geom.Point, bool) {
	if m.current == nil {
		return geom.Point{}, false
	}
	return m.current.Points[len(m.current.Points)-1], true
}

// Visible returns the finalized active strokes in z-order. The point slices
// are shared with the model and must not be modified.
func (m *Model) Visible() []Stroke {
	out := make([]Stroke, 0, len(m.strokes))
	for _, s := range m.strokes {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// Drawable is Visible plus the in-progress stroke on top.
func (m *Model) Drawable() []Stroke {
	out := m.Visible()
	if m.current != nil {
		out = append(out, *m.current)
	}
	return out
}

// Strokes returns every finalized stroke, including disabled ones.
func (m *Model) Strokes() []Stroke {
	return append([]Stroke(nil), m.strokes...)
}

// Len returns the number of finalized strokes.
func (m *Model) Len() int { return len(m.strokes) }

// Undo disables the most recent active stroke.
func (m *Model) Undo() bool {
	for i := len(m.strokes) - 1; i >= 0; i-- {
		if m.strokes[i].Active {
			m.strokes[i].Active = false
			return true
		}
	}
	return false
}

// Redo enables the oldest disabled stroke.
func (m *Model) Redo() bool {
	for i := range m.strokes {
		if !m.strokes[i].Active {
			m.strokes[i].Active = true
			return true
		}
	}
	return false
}

// CanUndo reports whether Undo would change anything.
func (m *Model) CanUndo() bool {
	for _, s := range m.strokes {
		if s.Active {
			return true
		}
	}
	return false
}

// CanRedo reports whether Redo would change anything.
func (m *Model) CanRedo() bool {
	for _, s := range m.strokes {
		if !s.Active {
			return true
		}
	}
	return false
}

// Replace swaps the whole drawing for strokes. Ids that are missing or
// repeated are reassigned after the highest id seen.
func (m *Model) Replace(strokes []Stroke) {
	m.current = nil
	m.strokes = make([]Stroke, 0, len(strokes))
	maxID := 0
	for _, s := range strokes {
		if len(s.Points) > 0 && s.ID > maxID {
			maxID = s.ID
		}
	}
	seen := make(map[int]bool, len(strokes))
	next := maxID + 1
	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		if s.ID <= 0 || seen[s.ID] {
			s.ID = next
			next++
		}
		seen[s.ID] = true
		s.Points = append([]geom.Point(nil), s.Points...)
		m.strokes = append(m.strokes, s)
	}
	m.nextID = next
}
