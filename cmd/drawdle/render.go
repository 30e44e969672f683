package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/example/drawdle/internal/render"
	"github.com/example/drawdle/internal/store"
)

type renderCmd struct {
	*root
	fs *flag.FlagSet

	storeLoc string
	drawing  string
	output   string
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	cfg := r.cfg()
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.storeLoc, "store", cfg.Store, "file, sqlite:path or http(s) URL holding the drawing")
	fs.StringVar(&c.drawing, "drawing", cfg.Drawing, "drawing name inside a sqlite store")
	fs.StringVar(&c.output, "o", "-", "output PNG file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *renderCmd) Program() string {
	return c.subcommand("render")
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *renderCmd) Run() error {
	st, err := openStore(c.storeLoc, c.drawing)
	if err != nil {
		return err
	}
	defer store.Close(st)

	strokes, err := loadVisible(context.Background(), st)
	if err != nil {
		return err
	}
	paper := c.cfg().Paper
	img, err := render.RenderPaper(strokes, paper.Width, paper.Height, render.WithTheme(c.activeTheme))
	if err != nil {
		return fmt.Errorf("render drawing: %w", err)
	}

	return writeOutput(c.output, c.out(), func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	})
}

// writeOutput runs write against path, or stdout when path is "-".
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
