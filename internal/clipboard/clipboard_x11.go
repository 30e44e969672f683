//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *x11Owner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		o, err := newX11Owner()
		if err != nil {
			initErr = fmt.Errorf("connect to X server: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

func writePNG(data []byte) error {
	return owner.offer(map[xproto.Atom][]byte{owner.atoms.png: data})
}

func writeText(s string) error {
	b := []byte(s)
	return owner.offer(map[xproto.Atom][]byte{
		owner.atoms.utf8:      b,
		owner.atoms.textPlain: b,
		xproto.AtomString:     b,
	})
}

func readText() (string, error) {
	data, err := owner.request(owner.atoms.utf8)
	if err != nil {
		if data, err = owner.request(xproto.AtomString); err != nil {
			return "", err
		}
	}
	// some owners NUL-terminate STRING replies
	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}
	return string(data), nil
}

type x11Atoms struct {
	clipboard, targets, utf8, textPlain, png, property xproto.Atom
}

// x11Owner owns the CLIPBOARD selection through a hidden 1x1 window and
// answers conversion requests from its own event goroutine.
type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  x11Atoms

	mu     sync.RWMutex
	offers map[xproto.Atom][]byte
}

func newX11Owner() (*x11Owner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, win)
		conn.Close()
		return nil, err
	}
	o := &x11Owner{conn: conn, window: win, atoms: atoms}
	go o.serve()
	return o, nil
}

func internAtoms(conn *xgb.Conn) (x11Atoms, error) {
	var a x11Atoms
	for _, want := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"CLIPBOARD", &a.clipboard},
		{"TARGETS", &a.targets},
		{"UTF8_STRING", &a.utf8},
		{"text/plain;charset=utf-8", &a.textPlain},
		{"image/png", &a.png},
		{"DRAWDLE_CLIPBOARD", &a.property},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(want.name)), want.name).Reply()
		if err != nil {
			return x11Atoms{}, fmt.Errorf("intern %s: %w", want.name, err)
		}
		*want.dst = reply.Atom
	}
	return a, nil
}

func (o *x11Owner) offer(offers map[xproto.Atom][]byte) error {
	copied := make(map[xproto.Atom][]byte, len(offers))
	for k, v := range offers {
		copied[k] = append([]byte(nil), v...)
	}
	o.mu.Lock()
	o.offers = copied
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *x11Owner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.offers = nil
			o.mu.Unlock()
		}
	}
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}

	o.mu.RLock()
	offers := o.offers
	o.mu.RUnlock()

	if e.Target == o.atoms.targets {
		targets := []xproto.Atom{o.atoms.targets}
		for t := range offers {
			targets = append(targets, t)
		}
		payload := atomBytes(targets)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, xproto.AtomAtom, 32, uint32(len(targets)), payload)
	} else if data, ok := offers[e.Target]; ok {
		typ := e.Target
		if typ == o.atoms.textPlain || typ == xproto.AtomString {
			typ = o.atoms.utf8
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, typ, 8, uint32(len(data)), data)
	} else {
		prop = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// request converts the selection to target on a short-lived connection so
// the reply does not race with serve.
func (o *x11Owner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, win)

	if err := xproto.ConvertSelectionChecked(conn, win, o.atoms.clipboard, target, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		n, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok || (n.Property != xproto.AtomNone && n.Property != o.atoms.property) {
			continue
		}
		if n.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard cannot provide target %d", target)
		}
		reply, perr := xproto.GetProperty(conn, true, win, o.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func atomBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		xgb.Put32(buf[4*i:], uint32(a))
	}
	return buf
}
