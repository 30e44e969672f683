package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/theme"
)

func testView() geom.View {
	v := geom.NewView(100, 80)
	v.Resize(200, 160)
	return v
}

func noShadow() Option { return WithShadow(ShadowOptions{}) }

func TestNotReadyIsNoop(t *testing.T) {
	r := New()
	if r.Ready() {
		t.Fatal("renderer should start not ready")
	}
	if err := r.Draw(testView(), nil); err != nil {
		t.Fatalf("draw while not ready: %v", err)
	}
	if _, ok := r.Sample(0, 0); ok {
		t.Fatal("sample while not ready should fail")
	}
	if r.Image() != nil {
		t.Fatal("image while not ready should be nil")
	}
	if err := r.EncodePNG(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error encoding without a frame")
	}
	r.Resize(10, 10)
	r.Resize(0, 10)
	if r.Ready() {
		t.Fatal("zero size should drop the frame")
	}
}

func TestDrawBackgroundAndPaper(t *testing.T) {
	th := theme.Default()
	r := New(WithTheme(th), noShadow())
	r.Resize(200, 160)
	if err := r.Draw(testView(), nil); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if hex, _ := r.SampleHex(5, 5); hex != "#5b564d" {
		t.Fatalf("backdrop %s", hex)
	}
	if hex, _ := r.SampleHex(100, 80); hex != "#ffffff" {
		t.Fatalf("paper %s", hex)
	}
}

func TestStrokesClippedToPaper(t *testing.T) {
	r := New(noShadow())
	r.Resize(200, 160)
	v := testView()
	// paper spans screen x 50..150, y 40..120
	red := color.NRGBA{R: 255, A: 255}
	s := stroke.Stroke{
		ID:     1,
		Tool:   stroke.ToolLine,
		Points: []geom.Point{{X: -40, Y: 40}, {X: 140, Y: 40}},
		Color:  red,
		Size:   10,
		Active: true,
	}
	if err := r.Draw(v, []stroke.Stroke{s}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if hex, _ := r.SampleHex(100, 80); hex != "#ff0000" {
		t.Fatalf("inside paper got %s", hex)
	}
	if hex, _ := r.SampleHex(30, 80); hex != "#5b564d" {
		t.Fatalf("left margin got %s, stroke should be overdrawn", hex)
	}
	if hex, _ := r.SampleHex(170, 80); hex != "#5b564d" {
		t.Fatalf("right margin got %s", hex)
	}
}

func TestSinglePointDrawsDot(t *testing.T) {
	r := New(noShadow())
	r.Resize(200, 160)
	v := testView()
	v.SetZoom(2)
	s := stroke.Stroke{ID: 1, Points: []geom.Point{{X: 50, Y: 40}}, Color: color.NRGBA{B: 255, A: 255}, Size: 6}
	if err := r.Draw(v, []stroke.Stroke{s}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if hex, _ := r.SampleHex(100, 80); hex != "#0000ff" {
		t.Fatalf("dot centre %s", hex)
	}
	if hex, _ := r.SampleHex(110, 80); hex != "#ffffff" {
		t.Fatalf("dot too large, got %s at radius 10", hex)
	}
}

func TestShadowDrawnOutsidePaper(t *testing.T) {
	r := New(WithShadow(ShadowOptions{Radius: 2, Color: color.NRGBA{A: 255}}))
	r.Resize(200, 160)
	if err := r.Draw(testView(), nil); err != nil {
		t.Fatalf("draw: %v", err)
	}
	edge, _ := r.Sample(151, 80)
	bg := r.Background()
	if edge == bg {
		t.Fatal("expected shadow just outside the paper")
	}
	if hex, _ := r.SampleHex(149, 80); hex != "#ffffff" {
		t.Fatalf("shadow leaked onto paper: %s", hex)
	}
}

func TestRenderPaper(t *testing.T) {
	s := stroke.Stroke{ID: 1, Tool: stroke.ToolLine, Points: []geom.Point{{X: 0, Y: 10}, {X: 30, Y: 10}}, Color: color.NRGBA{A: 255}, Size: 4}
	img, err := RenderPaper([]stroke.Stroke{s}, 30, 20)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("bounds %v", b)
	}
	if c := img.RGBAAt(15, 10); c.R != 0 || c.A != 255 {
		t.Fatalf("stroke pixel %v", c)
	}
	if c := img.RGBAAt(15, 2); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("paper pixel %v", c)
	}
}

func TestShadowAtHighZoom(t *testing.T) {
	r := New(WithShadow(ShadowOptions{Radius: 3, Offset: image.Pt(2, 2), Color: color.NRGBA{A: 255}}))
	r.Resize(200, 160)
	v := testView()
	v.SetZoom(8)
	// paper spans screen x -300..500; bring its right edge to x=120
	v.PanBy(-380, 0)
	if err := r.Draw(v, nil); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if hex, _ := r.SampleHex(119, 80); hex != "#ffffff" {
		t.Fatalf("paper at the right edge got %s", hex)
	}
	if c, _ := r.Sample(121, 80); c == r.Background() {
		t.Fatal("expected shadow past the right edge")
	}
	if c, _ := r.Sample(190, 80); c != r.Background() {
		t.Fatalf("shadow reached too far: %v", c)
	}
}
