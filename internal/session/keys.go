package session

import (
	"math"
	"time"

	"github.com/example/drawdle/internal/stroke"
)

// Key is a keyboard key the session reacts to.
type Key int

const (
	KeyOther Key = iota
	KeySpace
	KeyEqual
	KeyMinus
	Key0
	KeyZ
	KeyY
	KeyB
	KeyE
	KeyL
	KeyI
	KeyH
	KeyLeftBracket
	KeyRightBracket
	KeyEscape
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
)

const (
	// ZoomKeyFactor is the total zoom change of one ctrl+= or ctrl+- press.
	ZoomKeyFactor = 1.25
	// ZoomSteps is how many equal-ratio steps the change is spread over.
	ZoomSteps = 8
	// ZoomDuration is how long the animation takes.
	ZoomDuration = 160 * time.Millisecond
)

var toolKeys = map[Key]stroke.Tool{
	KeyB: stroke.ToolBrush,
	KeyE: stroke.ToolEraser,
	KeyL: stroke.ToolLine,
	KeyI: stroke.ToolPicker,
	KeyH: stroke.ToolPan,
}

// KeyDown handles a key press. Auto-repeated presses of a key that is
// already down are ignored.
func (s *Session) KeyDown(k Key, mods Modifiers) {
	if k != KeyOther {
		if s.keysDown[k] {
			return
		}
		s.keysDown[k] = true
	}
	if mods&ModCtrl != 0 {
		switch {
		case k == KeyEqual:
			s.animateZoom(ZoomKeyFactor)
		case k == KeyMinus:
			s.animateZoom(1 / ZoomKeyFactor)
		case k == Key0:
			s.ResetView()
		case k == KeyZ && mods&ModShift != 0, k == KeyY:
			s.Redo()
		case k == KeyZ:
			s.Undo()
		}
		return
	}
	switch k {
	case KeySpace:
		s.spaceHeld = true
	case KeyLeftBracket:
		s.SetSize(s.params.Size(s.params.Tool) - 1)
	case KeyRightBracket:
		s.SetSize(s.params.Size(s.params.Tool) + 1)
	case KeyEscape:
		s.CancelAll()
	default:
		if t, ok := toolKeys[k]; ok {
			s.SetTool(t)
		}
	}
}

// KeyUp handles a key release. Releasing space ends the temporary pan and
// the previous tool takes over again.
func (s *Session) KeyUp(k Key, mods Modifiers) {
	delete(s.keysDown, k)
	if k == KeySpace {
		s.spaceHeld = false
	}
}

// ReleaseKeys forgets every held key. Releases that happen while the window
// is unfocused never arrive, so a held space would otherwise keep panning and
// the next press of a held key would count as a repeat.
func (s *Session) ReleaseKeys() {
	clear(s.keysDown)
	s.spaceHeld = false
}

type zoomAnimation struct {
	ratio     float64 // per step
	remaining int
	next      time.Time
	interval  time.Duration
}

func (s *Session) animateZoom(factor float64) {
	s.anim = &zoomAnimation{
		ratio:     math.Pow(factor, 1.0/ZoomSteps),
		remaining: ZoomSteps,
		next:      s.now(),
		interval:  ZoomDuration / ZoomSteps,
	}
	s.Step(s.now())
}

// Animating reports whether a zoom animation still has steps to run.
func (s *Session) Animating() bool { return s.anim != nil }

// Step applies every animation step due at now and redraws once. It
// reports whether more steps remain.
func (s *Session) Step(now time.Time) bool {
	a := s.anim
	if a == nil {
		return false
	}
	applied := false
	for a.remaining > 0 && !now.Before(a.next) {
		s.view.ZoomBy(a.ratio)
		a.remaining--
		a.next = a.next.Add(a.interval)
		applied = true
	}
	if a.remaining == 0 {
		s.anim = nil
	}
	if applied {
		s.redraw()
	}
	return s.anim != nil
}
