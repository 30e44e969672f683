package session

import (
	"context"
	"image/color"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/render"
	"github.com/example/drawdle/internal/store"
	"github.com/example/drawdle/internal/stroke"
)

// testView maps canvas (50, 40), the paper centre, to screen (100, 80).
func testView() geom.View {
	v := geom.NewView(100, 80)
	v.Resize(200, 160)
	return v
}

func newTestSession(opts ...Option) *Session {
	return New(append([]Option{WithView(testView())}, opts...)...)
}

func drag(s *Session, id int64, pts ...geom.Point) {
	s.PointerDown(id, pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.PointerMove(id, p.X, p.Y)
	}
	s.PointerUp(id)
}

func TestDefaults(t *testing.T) {
	s := New()
	want := Params{
		Tool:       stroke.ToolBrush,
		BrushSize:  1,
		EraserSize: 5,
		Opacity:    100,
		Color:      color.NRGBA{A: 255},
	}
	if diff := cmp.Diff(want, s.Params()); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if s.EffectiveTool() != stroke.ToolBrush {
		t.Fatalf("effective tool %v", s.EffectiveTool())
	}
}

func TestBrushStrokeCopiesParams(t *testing.T) {
	s := newTestSession()
	if err := s.SetColor("#336699"); err != nil {
		t.Fatalf("set color: %v", err)
	}
	s.SetSize(4)
	drag(s, 1, geom.Pt(100, 80), geom.Pt(110, 80), geom.Pt(110, 90))

	got := s.Model().Strokes()
	want := []stroke.Stroke{{
		ID:     1,
		Points: []geom.Point{{X: 50, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 50}},
		Color:  color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255},
		Size:   4,
		Tool:   stroke.ToolBrush,
		Active: true,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("strokes mismatch (-want +got):\n%s", diff)
	}

	// later changes do not touch finished strokes
	s.SetSize(9)
	if sz := s.Model().Strokes()[0].Size; sz != 4 {
		t.Fatalf("finished stroke size changed to %v", sz)
	}
}

func TestSizeClamp(t *testing.T) {
	s := New()
	s.SetSize(500)
	if s.Params().BrushSize != MaxSize {
		t.Fatalf("brush size %v", s.Params().BrushSize)
	}
	s.SetSize(-3)
	if s.Params().BrushSize != MinSize {
		t.Fatalf("brush size %v", s.Params().BrushSize)
	}
}

func TestEraserUsesPaperColor(t *testing.T) {
	s := newTestSession()
	s.SetTool(stroke.ToolEraser)
	s.SetSize(7)
	if s.Params().BrushSize != DefaultBrushSize {
		t.Fatalf("eraser size leaked into brush size")
	}
	drag(s, 1, geom.Pt(100, 80), geom.Pt(120, 80))
	got := s.Model().Strokes()[0]
	if got.Color != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("eraser color %v", got.Color)
	}
	if got.Size != 7 || got.Tool != stroke.ToolEraser {
		t.Fatalf("eraser stroke %+v", got)
	}
}

func TestOpacityAppliedToBrush(t *testing.T) {
	s := newTestSession()
	s.SetOpacity(50)
	drag(s, 1, geom.Pt(100, 80))
	if a := s.Model().Strokes()[0].Color.A; a != 128 && a != 127 {
		t.Fatalf("alpha %d", a)
	}
}

func TestMinPointDistance(t *testing.T) {
	s := newTestSession()
	drag(s, 1, geom.Pt(100, 80), geom.Pt(101, 80), geom.Pt(102, 80), geom.Pt(103, 80))
	pts := s.Model().Strokes()[0].Points
	want := []geom.Point{{X: 50, Y: 40}, {X: 53, Y: 40}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestLineKeepsTwoPoints(t *testing.T) {
	s := newTestSession()
	s.SetTool(stroke.ToolLine)
	drag(s, 1, geom.Pt(100, 80), geom.Pt(120, 80), geom.Pt(130, 90))
	pts := s.Model().Strokes()[0].Points
	want := []geom.Point{{X: 50, Y: 40}, {X: 80, Y: 50}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestSpaceTemporaryPan(t *testing.T) {
	s := newTestSession()
	s.KeyDown(KeySpace, 0)
	if !s.Panning() {
		t.Fatal("space should pan")
	}
	drag(s, 1, geom.Pt(100, 80), geom.Pt(110, 85))
	if s.Model().Len() != 0 {
		t.Fatal("panning should not draw")
	}
	if got := s.View().Pan; got != (geom.Point{X: 10, Y: 5}) {
		t.Fatalf("pan %v", got)
	}
	s.KeyUp(KeySpace, 0)
	if s.EffectiveTool() != stroke.ToolBrush {
		t.Fatalf("tool after space %v", s.EffectiveTool())
	}
}

func TestReleaseKeysAfterFocusLoss(t *testing.T) {
	s := newTestSession()
	drag(s, 1, geom.Pt(80, 60), geom.Pt(120, 60))
	s.KeyDown(KeySpace, 0)
	s.KeyDown(KeyZ, ModCtrl)
	if s.Model().CanUndo() {
		t.Fatal("ctrl+z should have undone the stroke")
	}
	// both releases are lost while the window is unfocused
	s.CancelAll()
	s.ReleaseKeys()
	if s.Panning() || s.EffectiveTool() != stroke.ToolBrush {
		t.Fatalf("after focus loss: Panning=%v EffectiveTool=%v", s.Panning(), s.EffectiveTool())
	}
	s.KeyDown(KeyY, ModCtrl)
	s.KeyUp(KeyY, ModCtrl)
	s.KeyDown(KeyZ, ModCtrl)
	if diff := cmp.Diff([]int(nil), activeIDs(s)); diff != "" {
		t.Fatalf("ctrl+z after refocus was treated as a repeat (-want +got):\n%s", diff)
	}
}

func TestKeyRepeatIgnored(t *testing.T) {
	s := New()
	s.KeyDown(KeyRightBracket, 0)
	s.KeyDown(KeyRightBracket, 0)
	if s.Params().BrushSize != 2 {
		t.Fatalf("size %v after repeated press", s.Params().BrushSize)
	}
	s.KeyUp(KeyRightBracket, 0)
	s.KeyDown(KeyRightBracket, 0)
	if s.Params().BrushSize != 3 {
		t.Fatalf("size %v after second press", s.Params().BrushSize)
	}
}

func TestToolHotkeys(t *testing.T) {
	s := New()
	s.KeyDown(KeyE, 0)
	if s.Params().Tool != stroke.ToolEraser {
		t.Fatalf("tool %v", s.Params().Tool)
	}
	s.KeyUp(KeyE, 0)
	s.KeyDown(KeyB, 0)
	if s.Params().Tool != stroke.ToolBrush {
		t.Fatalf("tool %v", s.Params().Tool)
	}
}

func TestWheel(t *testing.T) {
	s := newTestSession()
	s.Wheel(10, 20, false)
	if got := s.View().Pan; got != (geom.Point{X: -5, Y: -10}) {
		t.Fatalf("pan %v", got)
	}
	s.Wheel(0, 150, true)
	if z := s.View().Zoom; math.Abs(z-0.5) > 1e-9 {
		t.Fatalf("zoom %v", z)
	}
	s.Wheel(0, -30000, true)
	if z := s.View().Zoom; z != geom.DefaultMaxZoom {
		t.Fatalf("zoom %v, want clamp to max", z)
	}
	s.Wheel(0, 600, true)
	if z := s.View().Zoom; z != geom.DefaultMaxZoom {
		t.Fatalf("non-positive factor changed zoom to %v", z)
	}
}

func TestPinchZoom(t *testing.T) {
	s := newTestSession()
	s.SetTool(stroke.ToolPan)
	s.HandleTouch(touch.Event{X: 90, Y: 80, Sequence: 1, Type: touch.TypeBegin})
	s.HandleTouch(touch.Event{X: 110, Y: 80, Sequence: 2, Type: touch.TypeBegin})
	s.HandleTouch(touch.Event{X: 120, Y: 80, Sequence: 2, Type: touch.TypeMove})
	s.HandleTouch(touch.Event{X: 130, Y: 80, Sequence: 2, Type: touch.TypeMove})
	s.HandleTouch(touch.Event{Sequence: 2, Type: touch.TypeEnd})
	s.HandleTouch(touch.Event{Sequence: 1, Type: touch.TypeEnd})

	v := s.View()
	if math.Abs(v.Zoom-1.005) > 1e-9 {
		t.Fatalf("zoom %v", v.Zoom)
	}
	if v.Pan != (geom.Point{X: 10, Y: 0}) {
		t.Fatalf("pan %v", v.Pan)
	}
	if s.Model().Len() != 0 {
		t.Fatal("pinch should not draw")
	}
}

func TestPinchAfterDrawLeavesNoStreak(t *testing.T) {
	s := newTestSession()
	s.PointerDown(1, 100, 100)
	s.PointerDown(2, 500, 300)
	s.PointerMove(2, 510, 310)
	s.PointerUp(1)
	s.PointerMove(2, 530, 330)
	s.PointerUp(2)

	strokes := s.Model().Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	if n := len(strokes[0].Points); n != 1 {
		t.Fatalf("stroke has %d points %v, want only the start", n, strokes[0].Points)
	}
}

func TestZoomAnimation(t *testing.T) {
	now := time.Unix(0, 0)
	s := newTestSession(WithClock(func() time.Time { return now }))
	s.KeyDown(KeyEqual, ModCtrl)
	if !s.Animating() {
		t.Fatal("expected animation")
	}
	first := math.Pow(ZoomKeyFactor, 1.0/ZoomSteps)
	if z := s.View().Zoom; math.Abs(z-first) > 1e-9 {
		t.Fatalf("first step zoom %v, want %v", z, first)
	}
	now = now.Add(time.Second)
	if s.Step(now) {
		t.Fatal("animation should be finished")
	}
	if z := s.View().Zoom; math.Abs(z-ZoomKeyFactor) > 1e-9 {
		t.Fatalf("final zoom %v", z)
	}
	s.KeyUp(KeyEqual, ModCtrl)
	s.KeyDown(Key0, ModCtrl)
	if v := s.View(); v.Zoom != 1 || v.Pan != (geom.Point{}) {
		t.Fatalf("reset view %+v", v)
	}
}

func activeIDs(s *Session) []int {
	var ids []int
	for _, st := range s.Model().Visible() {
		ids = append(ids, st.ID)
	}
	return ids
}

func TestUndoRedoKeys(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 3; i++ {
		y := float64(60 + 10*i)
		drag(s, 1, geom.Pt(80, y), geom.Pt(120, y))
	}
	press := func(k Key, m Modifiers) {
		s.KeyDown(k, m)
		s.KeyUp(k, m)
	}
	press(KeyZ, ModCtrl)
	press(KeyZ, ModCtrl)
	if diff := cmp.Diff([]int{1}, activeIDs(s)); diff != "" {
		t.Fatalf("after undo (-want +got):\n%s", diff)
	}
	press(KeyY, ModCtrl)
	if diff := cmp.Diff([]int{1, 2}, activeIDs(s)); diff != "" {
		t.Fatalf("redo should restore the oldest undone stroke (-want +got):\n%s", diff)
	}
	press(KeyZ, ModCtrl|ModShift)
	if diff := cmp.Diff([]int{1, 2, 3}, activeIDs(s)); diff != "" {
		t.Fatalf("after ctrl+shift+z (-want +got):\n%s", diff)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestSession()
	drag(s, 1, geom.Pt(80, 60), geom.Pt(120, 60))
	s.SetTool(stroke.ToolLine)
	drag(s, 1, geom.Pt(80, 70), geom.Pt(120, 90))
	s.Undo()

	data, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	other := newTestSession()
	if err := other.Restore(data); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if diff := cmp.Diff(s.Model().Strokes(), other.Model().Strokes()); diff != "" {
		t.Fatalf("restored strokes mismatch (-want +got):\n%s", diff)
	}
	if !other.Model().CanRedo() {
		t.Fatal("hidden stroke should survive the round trip")
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	s := newTestSession()
	drag(s, 1, geom.Pt(80, 60), geom.Pt(120, 60))
	if err := s.Restore("{not json"); err == nil {
		t.Fatal("expected error")
	}
	if s.Model().Len() != 1 {
		t.Fatal("failed restore should keep the drawing")
	}
}

func TestSetColorError(t *testing.T) {
	s := New()
	if err := s.SetColor("nope"); err == nil {
		t.Fatal("expected error")
	}
	if s.Params().Color != (color.NRGBA{A: 255}) {
		t.Fatalf("color changed to %v", s.Params().Color)
	}
}

func TestPickerSamplesRenderedColor(t *testing.T) {
	r := render.New(render.WithShadow(render.ShadowOptions{}))
	var picked string
	s := newTestSession(WithRenderer(r), WithOnPick(func(hex string) { picked = hex }))
	s.Resize(200, 160)
	if s.Frame() == 0 {
		t.Fatal("resize should render a frame")
	}

	if err := s.SetColor("#ff0000"); err != nil {
		t.Fatal(err)
	}
	s.SetSize(10)
	s.SetTool(stroke.ToolLine)
	drag(s, 1, geom.Pt(60, 80), geom.Pt(140, 80))

	if err := s.SetColor("#000000"); err != nil {
		t.Fatal(err)
	}
	s.SetTool(stroke.ToolPicker)
	drag(s, 2, geom.Pt(100, 80))
	if picked != "#ff0000" {
		t.Fatalf("picked %q", picked)
	}
	if s.Params().Color != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("color %v", s.Params().Color)
	}
	if s.Model().Len() != 1 {
		t.Fatal("picker should not draw")
	}
}

func TestSaveAsyncAndLoad(t *testing.T) {
	st := &store.FileStore{Path: filepath.Join(t.TempDir(), "drawing.json")}
	s := newTestSession()
	drag(s, 1, geom.Pt(80, 60), geom.Pt(120, 60))

	done := make(chan error, 1)
	s.SaveAsync(context.Background(), st, func(err error) { done <- err })
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("save did not finish")
	}

	other := newTestSession()
	if err := other.Load(context.Background(), st); err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(s.Model().Strokes(), other.Model().Strokes()); diff != "" {
		t.Fatalf("loaded strokes mismatch (-want +got):\n%s", diff)
	}
}

func TestMouseEvents(t *testing.T) {
	s := newTestSession()
	s.HandleMouse(mouse.Event{X: 100, Y: 80, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	s.HandleMouse(mouse.Event{X: 110, Y: 80})
	s.HandleMouse(mouse.Event{X: 110, Y: 80, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if s.Model().Len() != 1 {
		t.Fatalf("left drag should draw, got %d strokes", s.Model().Len())
	}

	s.HandleMouse(mouse.Event{X: 100, Y: 80, Button: mouse.ButtonMiddle, Direction: mouse.DirPress})
	s.HandleMouse(mouse.Event{X: 104, Y: 83})
	s.HandleMouse(mouse.Event{X: 104, Y: 83, Button: mouse.ButtonMiddle, Direction: mouse.DirRelease})
	if s.Model().Len() != 1 {
		t.Fatal("middle drag should not draw")
	}
	if got := s.View().Pan; got != (geom.Point{X: 4, Y: 3}) {
		t.Fatalf("pan %v", got)
	}

	s.HandleMouse(mouse.Event{Button: mouse.ButtonWheelDown, Direction: mouse.DirStep})
	if got := s.View().Pan; got != (geom.Point{X: 4, Y: 3 - WheelStep/2}) {
		t.Fatalf("wheel pan %v", got)
	}
}

func TestKeyEvents(t *testing.T) {
	s := New()
	s.HandleKey(key.Event{Code: key.CodeSpacebar, Direction: key.DirPress})
	if !s.Panning() {
		t.Fatal("space press should pan")
	}
	s.HandleKey(key.Event{Code: key.CodeSpacebar, Direction: key.DirRelease})
	if s.Panning() {
		t.Fatal("space release should stop panning")
	}
	s.HandleKey(key.Event{Code: key.CodeL, Direction: key.DirNone})
	if s.Params().Tool != stroke.ToolLine {
		t.Fatalf("tool %v", s.Params().Tool)
	}
	if k, m := TranslateKey(key.Event{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}); k != KeyZ || m != ModCtrl|ModShift {
		t.Fatalf("translate %v %v", k, m)
	}
}

func TestRedrawOnlyOnChange(t *testing.T) {
	r := render.New(render.WithShadow(render.ShadowOptions{}))
	s := newTestSession(WithRenderer(r))
	s.Resize(200, 160)

	s.PointerDown(1, 100, 80)
	after := s.Frame()
	s.PointerMove(1, 101, 80)
	if s.Frame() != after {
		t.Fatal("a move below the point threshold should not redraw")
	}
	s.PointerMove(1, 110, 80)
	if s.Frame() != after+1 {
		t.Fatalf("frame %d, want %d", s.Frame(), after+1)
	}
	s.PointerUp(1)
}
