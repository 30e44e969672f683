// Package ui runs a drawing session in a desktop window.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/drawdle/internal/clipboard"
	"github.com/example/drawdle/internal/notify"
	"github.com/example/drawdle/internal/session"
	"github.com/example/drawdle/internal/store"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/theme"
)

// frameDropThreshold is how many frames in a row may be cancelled by newer
// ones before a frame is allowed to finish.
const frameDropThreshold = 10

const (
	messageDuration   = 2 * time.Second
	loadErrorDuration = 10 * time.Second
)

// App is a window around one session.
type App struct {
	sess     *session.Session
	store    store.Store
	notifier *notify.Notifier
	theme    *theme.Theme

	title         string
	width, height int
	exportDir     string
	onClose       func()
	loadErr       error
}

// Option configures an App.
type Option func(*App)

// WithStore sets where ctrl+s saves to.
func WithStore(st store.Store) Option { return func(a *App) { a.store = st } }

// WithNotifier sets the desktop notifier used for saves, copies and exports.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithTheme sets the status bar colors.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.title = title } }

// WithSize sets the initial window size.
func WithSize(w, h int) Option { return func(a *App) { a.width, a.height = w, h } }

// WithExportDir sets where ctrl+p writes exports.
func WithExportDir(dir string) Option { return func(a *App) { a.exportDir = dir } }

// WithLoadError marks the drawing as not loaded from the store. Saving is
// refused so the stored drawing is not overwritten with an empty one.
func WithLoadError(err error) Option { return func(a *App) { a.loadErr = err } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New wraps sess in a window. The session should carry a renderer.
func New(sess *session.Session, opts ...Option) *App {
	a := &App{
		sess:   sess,
		theme:  theme.Default(),
		title:  "drawdle",
		width:  960,
		height: 640 + statusHeight,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() { driver.Main(a.Main) }

type savedEvent struct {
	location string
	err      error
}

type tickEvent struct{}

// Main runs the event loop on s.
func (a *App) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	if a.onClose != nil {
		defer a.onClose()
	}

	width, height := a.width, a.height
	var message string
	var messageUntil time.Time
	setMessage := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		messageUntil = time.Now().Add(messageDuration)
		log.Print(message)
	}

	if a.loadErr != nil {
		setMessage("load failed, saving disabled: %v", a.loadErr)
		messageUntil = time.Now().Add(loadErrorDuration)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan frameState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	ticking := false
	scheduleTick := func() {
		if ticking || !a.sess.Animating() {
			return
		}
		ticking = true
		time.AfterFunc(session.ZoomDuration/session.ZoomSteps, func() { w.Send(tickEvent{}) })
	}

	save := func() {
		if reason := a.saveBlocked(); reason != "" {
			setMessage("%s", reason)
			return
		}
		loc := describeStore(a.store)
		ctx, cancel := context.WithTimeout(context.Background(), store.SaveTimeout)
		a.sess.SaveAsync(ctx, a.store, func(err error) {
			cancel()
			w.Send(savedEvent{location: loc, err: err})
		})
		setMessage("saving...")
	}

	shortcuts := map[shortcut]func(){
		{code: key.CodeS, mods: key.ModControl}: save,
		{code: key.CodeC, mods: key.ModControl}: func() {
			img := a.paperImage()
			if img == nil {
				return
			}
			if err := clipboard.WriteImage(img); err != nil {
				setMessage("copy failed: %v", err)
				return
			}
			a.notifier.Copy("drawing")
			setMessage("drawing copied to clipboard")
		},
		{code: key.CodeC, mods: key.ModControl | key.ModShift}: func() {
			hex := stroke.HexRGB(a.sess.Params().Color)
			if err := clipboard.WriteText(hex); err != nil {
				setMessage("copy failed: %v", err)
				return
			}
			a.notifier.Copy(hex)
			setMessage("copied %s", hex)
		},
		{code: key.CodeV, mods: key.ModControl}: func() {
			text, err := clipboard.ReadText()
			if err != nil {
				setMessage("paste failed: %v", err)
				return
			}
			if err := a.sess.SetColor(text); err != nil {
				setMessage("clipboard does not hold a color")
				return
			}
			setMessage("color %s", stroke.HexRGB(a.sess.Params().Color))
		},
		{code: key.CodeP, mods: key.ModControl}: func() {
			a.export(exportPNG, setMessage)
		},
		{code: key.CodeP, mods: key.ModControl | key.ModShift}: func() {
			a.export(exportPDF, setMessage)
		},
	}

	lastFrame := a.sess.Frame()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
			if e.To == lifecycle.StageFocused || e.From == lifecycle.StageFocused {
				// releases that happen while unfocused never arrive
				a.sess.CancelAll()
				a.sess.ReleaseKeys()
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			a.sess.Resize(width, canvasHeight(height))
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := frameState{
				width:  width,
				height: height,
				theme:  a.theme,
				status: statusText(a.sess.Params(), a.sess.View(), a.sess.Model()),
			}
			if r := a.sess.Renderer(); r != nil {
				st.canvas = r.Image()
			}
			if message != "" && time.Now().Before(messageUntil) {
				st.status = message
			}
			offerFrame(paintCh, st)
			continue
		case mouse.Event:
			if int(e.Y) >= canvasHeight(height) && e.Direction == mouse.DirPress {
				continue
			}
			a.sess.HandleMouse(e)
		case touch.Event:
			a.sess.HandleTouch(e)
		case key.Event:
			if e.Direction != key.DirRelease {
				if fn, ok := shortcuts[shortcutOf(e)]; ok {
					fn()
					w.Send(paint.Event{})
					continue
				}
				if e.Code == key.CodeQ && e.Modifiers == 0 {
					return
				}
			}
			a.sess.HandleKey(e)
			scheduleTick()
		case tickEvent:
			ticking = false
			a.sess.Step(time.Now())
			scheduleTick()
		case savedEvent:
			if e.err != nil {
				setMessage("save failed: %v", e.err)
				a.notifier.Failed(e.err)
			} else {
				setMessage("saved to %s", e.location)
				a.notifier.Save(e.location)
			}
			w.Send(paint.Event{})
		}
		if f := a.sess.Frame(); f != lastFrame {
			lastFrame = f
			w.Send(paint.Event{})
		}
	}
}

// paperImage renders the visible drawing at paper size, without the
// viewport around it.
func (a *App) paperImage() *image.RGBA {
	v := a.sess.View()
	img, err := renderPaper(a.sess.Model().Visible(), v.PaperW, v.PaperH, a.theme)
	if err != nil {
		log.Printf("render paper: %v", err)
		return nil
	}
	return img
}

func (a *App) export(fn exportFunc, setMessage func(string, ...any)) {
	v := a.sess.View()
	path, err := fn(a.exportDir, time.Now(), a.sess.Model().Visible(), v.PaperW, v.PaperH, a.theme)
	if err != nil {
		setMessage("export failed: %v", err)
		a.notifier.Failed(err)
		return
	}
	a.notifier.Export(path)
	setMessage("exported %s", path)
}

// saveBlocked explains why ctrl+s cannot save, or returns "".
func (a *App) saveBlocked() string {
	switch {
	case a.store == nil:
		return "no store configured"
	case a.loadErr != nil:
		return fmt.Sprintf("not saving, the stored drawing failed to load: %v", a.loadErr)
	}
	return ""
}

func describeStore(st store.Store) string {
	if s, ok := st.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", st)
}

// offerFrame queues st for painting, replacing a frame still waiting. The
// event loop is the only sender, so the final send never blocks.
func offerFrame(ch chan frameState, st frameState) {
	select {
	case ch <- st:
		return
	default:
	}
	// the paint goroutine may take the stale frame first
	select {
	case <-ch:
	default:
	}
	ch <- st
}
