package session

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/drawdle/internal/geom"
)

// MousePointer is the pointer id used for mouse input. Touch sequences are
// never negative.
const MousePointer int64 = -1

// WheelStep is the scroll delta, in pixels, of one wheel notch.
const WheelStep = 100.0

// HandleMouse feeds a mouse event into the session. The left button uses
// the current tool, the middle button always pans and the wheel scrolls.
func (s *Session) HandleMouse(e mouse.Event) {
	x, y := float64(e.X), float64(e.Y)
	ctrl := e.Modifiers&key.ModControl != 0
	if e.Button.IsWheel() {
		if e.Direction != mouse.DirStep {
			return
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			s.Wheel(0, -WheelStep, ctrl)
		case mouse.ButtonWheelDown:
			s.Wheel(0, WheelStep, ctrl)
		case mouse.ButtonWheelLeft:
			s.Wheel(-WheelStep, 0, ctrl)
		case mouse.ButtonWheelRight:
			s.Wheel(WheelStep, 0, ctrl)
		}
		return
	}
	switch e.Direction {
	case mouse.DirPress:
		switch e.Button {
		case mouse.ButtonLeft:
			s.pointerDown(MousePointer, geom.Pt(x, y), false)
		case mouse.ButtonMiddle:
			s.pointerDown(MousePointer, geom.Pt(x, y), true)
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft || e.Button == mouse.ButtonMiddle {
			s.PointerUp(MousePointer)
		}
	case mouse.DirNone:
		s.PointerMove(MousePointer, x, y)
	}
}

// HandleTouch feeds a touch event into the session.
func (s *Session) HandleTouch(e touch.Event) {
	id := int64(e.Sequence)
	switch e.Type {
	case touch.TypeBegin:
		s.PointerDown(id, float64(e.X), float64(e.Y))
	case touch.TypeMove:
		s.PointerMove(id, float64(e.X), float64(e.Y))
	case touch.TypeEnd:
		s.PointerUp(id)
	}
}

var keyCodes = map[key.Code]Key{
	key.CodeSpacebar:           KeySpace,
	key.CodeEqualSign:          KeyEqual,
	key.CodeKeypadPlusSign:     KeyEqual,
	key.CodeHyphenMinus:        KeyMinus,
	key.CodeKeypadHyphenMinus:  KeyMinus,
	key.Code0:                  Key0,
	key.CodeZ:                  KeyZ,
	key.CodeY:                  KeyY,
	key.CodeB:                  KeyB,
	key.CodeE:                  KeyE,
	key.CodeL:                  KeyL,
	key.CodeI:                  KeyI,
	key.CodeH:                  KeyH,
	key.CodeLeftSquareBracket:  KeyLeftBracket,
	key.CodeRightSquareBracket: KeyRightBracket,
	key.CodeEscape:             KeyEscape,
}

// TranslateKey maps a platform key event to a session key and modifiers.
func TranslateKey(e key.Event) (Key, Modifiers) {
	var mods Modifiers
	if e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
		mods |= ModCtrl
	}
	if e.Modifiers&key.ModShift != 0 {
		mods |= ModShift
	}
	k, ok := keyCodes[e.Code]
	if !ok {
		return KeyOther, mods
	}
	return k, mods
}

// HandleKey feeds a key event into the session. A DirNone event is a
// press immediately followed by a release.
func (s *Session) HandleKey(e key.Event) {
	k, mods := TranslateKey(e)
	switch e.Direction {
	case key.DirPress:
		s.KeyDown(k, mods)
	case key.DirRelease:
		s.KeyUp(k, mods)
	case key.DirNone:
		if k != KeySpace {
			s.KeyDown(k, mods)
			s.KeyUp(k, mods)
		}
	}
}

// HandleSize resizes the viewport to the event's pixel size.
func (s *Session) HandleSize(e size.Event) {
	s.Resize(e.WidthPx, e.HeightPx)
}
