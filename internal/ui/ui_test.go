package ui

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/session"
	"github.com/example/drawdle/internal/store"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/theme"
)

func TestComposeFrame(t *testing.T) {
	th := theme.Default()
	canvas := image.NewRGBA(image.Rect(0, 0, 40, 30))
	canvas.Set(5, 5, color.RGBA{R: 255, A: 255})
	dst := image.NewRGBA(image.Rect(0, 0, 40, 30+statusHeight))
	composeFrame(dst, frameState{canvas: canvas, theme: th, status: ""})

	if c := dst.RGBAAt(5, 5); c != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("canvas pixel %v", c)
	}
	if c := dst.RGBAAt(1, 30+statusHeight-1); c != th.StatusBar {
		t.Fatalf("status bar pixel %v", c)
	}
}

func TestComposeFrameWithoutCanvas(t *testing.T) {
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, 20, 40))
	composeFrame(dst, frameState{theme: th})
	if c := dst.RGBAAt(3, 3); c != th.Background {
		t.Fatalf("backdrop pixel %v", c)
	}
}

func TestCanvasHeight(t *testing.T) {
	if got := canvasHeight(100); got != 100-statusHeight {
		t.Fatalf("canvas height %d", got)
	}
	if got := canvasHeight(5); got != 0 {
		t.Fatalf("tiny window canvas height %d", got)
	}
}

func TestStatusText(t *testing.T) {
	sess := session.New()
	sess.SetSize(3)
	v := geom.NewView(100, 80)
	v.SetZoom(1.5)
	got := statusText(sess.Params(), v, sess.Model())
	want := "brush 3px  #000000 100%  zoom 150%  strokes 0"
	if got != want {
		t.Fatalf("status %q, want %q", got, want)
	}
}

func TestShortcutOf(t *testing.T) {
	got := shortcutOf(key.Event{Code: key.CodeS, Modifiers: key.ModMeta | key.ModAlt})
	if got != (shortcut{code: key.CodeS, mods: key.ModControl}) {
		t.Fatalf("shortcut %+v", got)
	}
}

func testStrokes() []stroke.Stroke {
	return []stroke.Stroke{{
		ID:     1,
		Tool:   stroke.ToolLine,
		Points: []geom.Point{{X: 2, Y: 10}, {X: 30, Y: 10}},
		Color:  color.NRGBA{A: 255},
		Size:   3,
		Active: true,
	}}
}

func TestExportPNG(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	path, err := exportPNG(dir, now, testStrokes(), 40, 20, theme.Default())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if want := filepath.Join(dir, "drawdle-20240506-070809.png"); path != want {
		t.Fatalf("path %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("not a png")
	}
}

func TestExportPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := exportPDF(dir, time.Now(), testStrokes(), 40, 20, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("not a pdf")
	}
}

func TestExportMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	if _, err := exportPNG(dir, time.Now(), nil, 10, 10, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestOfferFrameReplacesStale(t *testing.T) {
	ch := make(chan frameState, 1)
	offerFrame(ch, frameState{status: "first"})
	offerFrame(ch, frameState{status: "second"})
	if got := (<-ch).status; got != "second" {
		t.Fatalf("queued frame %q, want the newest", got)
	}

	// a consumer draining concurrently must never leave the sender stuck
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			offerFrame(ch, frameState{})
		}
	}()
	for {
		select {
		case <-ch:
		case <-done:
			return
		case <-time.After(5 * time.Second):
			t.Fatal("offerFrame blocked")
		}
	}
}

func TestSaveBlockedAfterFailedLoad(t *testing.T) {
	st := &store.FileStore{Path: filepath.Join(t.TempDir(), "drawing.json")}
	if got := New(session.New(), WithStore(st)).saveBlocked(); got != "" {
		t.Fatalf("save blocked with a loaded drawing: %q", got)
	}
	if got := New(session.New()).saveBlocked(); got == "" {
		t.Fatal("save allowed without a store")
	}
	loadErr := errors.New("connection refused")
	got := New(session.New(), WithStore(st), WithLoadError(loadErr)).saveBlocked()
	if !strings.Contains(got, "connection refused") {
		t.Fatalf("save after a failed load = %q, want it refused with the cause", got)
	}
}
