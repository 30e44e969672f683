package ui

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"math"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/session"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/theme"
)

const statusHeight = 22

var statusFace = basicfont.Face7x13

func canvasHeight(windowHeight int) int {
	if h := windowHeight - statusHeight; h > 0 {
		return h
	}
	return 0
}

type frameState struct {
	width, height int
	canvas        *image.RGBA
	theme         *theme.Theme
	status        string
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st frameState) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	composeFrame(b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// composeFrame lays the rendered canvas out above the status bar.
func composeFrame(dst *image.RGBA, st frameState) {
	th := st.theme
	if th == nil {
		th = theme.Default()
	}
	bounds := dst.Bounds()
	ch := canvasHeight(bounds.Dy())
	draw.Draw(dst, bounds, image.NewUniform(th.Background), image.Point{}, draw.Src)
	if st.canvas != nil {
		r := image.Rect(0, 0, bounds.Dx(), ch).Intersect(st.canvas.Bounds())
		xdraw.Copy(dst, r.Min, st.canvas, r, draw.Src, nil)
	}

	bar := image.Rect(0, ch, bounds.Dx(), bounds.Dy())
	draw.Draw(dst, bar, image.NewUniform(th.StatusBar), image.Point{}, draw.Src)
	m := statusFace.Metrics()
	baseline := bar.Min.Y + (bar.Dy()-(m.Ascent+m.Descent).Ceil())/2 + m.Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: statusFace, Dot: fixed.P(6, baseline)}
	d.DrawString(st.status)
}

func statusText(p session.Params, v geom.View, m *stroke.Model) string {
	size := p.Size(p.Tool)
	return fmt.Sprintf("%s %gpx  %s %g%%  zoom %d%%  strokes %d",
		p.Tool, size, stroke.HexRGB(p.Color), p.Opacity, int(math.Round(v.Zoom*100)), len(m.Visible()))
}

type shortcut struct {
	code key.Code
	mods key.Modifiers
}

func shortcutOf(e key.Event) shortcut {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	if e.Modifiers&key.ModMeta != 0 {
		mods |= key.ModControl
	}
	return shortcut{code: e.Code, mods: mods}
}
