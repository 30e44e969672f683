package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/example/drawdle/internal/clipboard"
	"github.com/example/drawdle/internal/discovery"
	"github.com/example/drawdle/internal/render"
	"github.com/example/drawdle/internal/session"
	"github.com/example/drawdle/internal/store"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/ui"
)

// discoverTimeout bounds the mDNS query made by -discover.
const discoverTimeout = 2 * time.Second

// drawCmd opens the interactive window.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	storeLoc  string
	drawing   string
	discover  bool
	exportDir string
	width     int
	height    int
	tool      string
	color     string
	size      float64
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	cfg := r.cfg()
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	c := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.storeLoc, "store", cfg.Store, "file, sqlite:path or http(s) URL holding the drawing")
	fs.StringVar(&c.drawing, "drawing", cfg.Drawing, "drawing name inside a sqlite store")
	fs.BoolVar(&c.discover, "discover", false, "use the first drawdle server found on the local network")
	fs.StringVar(&c.exportDir, "export-dir", "", "directory for ctrl+p exports (default next to the store)")
	fs.IntVar(&c.width, "width", 960, "window width")
	fs.IntVar(&c.height, "height", 662, "window height")
	fs.StringVar(&c.tool, "tool", "brush", "initial tool: brush, eraser, line, picker or pan")
	fs.StringVar(&c.color, "color", session.DefaultColor, "initial color, hex or name")
	fs.Float64Var(&c.size, "size", session.DefaultBrushSize, "initial brush size")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (d *drawCmd) Program() string {
	return d.subcommand("draw")
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Run() error {
	loc := d.storeLoc
	if d.discover {
		found, err := discoverServer()
		if err != nil {
			return err
		}
		loc = found
	}
	st, err := openStore(loc, d.drawing)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(st); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	th := d.activeTheme
	sess := session.New(
		session.WithRenderer(render.New(render.WithTheme(th))),
		session.WithView(d.cfg().View()),
		session.WithOnPick(func(hex string) {
			if err := clipboard.WriteText(hex); err != nil {
				log.Printf("copy picked color: %v", err)
			}
		}),
	)
	tool, err := stroke.ParseTool(d.tool)
	if err != nil {
		return err
	}
	sess.SetTool(tool)
	if err := sess.SetColor(d.color); err != nil {
		return err
	}
	sess.SetSize(d.size)

	ctx, cancel := context.WithTimeout(context.Background(), store.SaveTimeout)
	loadErr := sess.Load(ctx, st)
	cancel()
	if loadErr != nil {
		log.Printf("starting with an empty drawing, saving disabled: %v", loadErr)
	}

	exportDir := d.exportDir
	if exportDir == "" {
		exportDir = storeDir(loc)
	}
	app := ui.New(sess,
		ui.WithStore(st),
		ui.WithNotifier(d.notifier),
		ui.WithTheme(th),
		ui.WithTitle(fmt.Sprintf("drawdle - %s", describe(st))),
		ui.WithSize(d.width, d.height),
		ui.WithExportDir(exportDir),
		ui.WithLoadError(loadErr),
	)
	app.Run()
	return nil
}

func discoverServer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout+time.Second)
	defer cancel()
	servers, err := discovery.Browse(ctx, discoverTimeout)
	if err != nil {
		return "", fmt.Errorf("discover servers: %w", err)
	}
	if len(servers) == 0 {
		return "", errors.New("no drawdle server found on the local network")
	}
	log.Printf("using %s at %s", servers[0].Name, servers[0].URL())
	return servers[0].URL(), nil
}

func describe(st store.Store) string {
	if s, ok := st.(fmt.Stringer); ok {
		return s.String()
	}
	return "drawing"
}
