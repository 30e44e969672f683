package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/example/drawdle/internal/export"
	"github.com/example/drawdle/internal/render"
	"github.com/example/drawdle/internal/store"
)

type exportCmd struct {
	*root
	fs *flag.FlagSet

	storeLoc string
	drawing  string
	format   string
	output   string
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	cfg := r.cfg()
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.storeLoc, "store", cfg.Store, "file, sqlite:path or http(s) URL holding the drawing")
	fs.StringVar(&c.drawing, "drawing", cfg.Drawing, "drawing name inside a sqlite store")
	fs.StringVar(&c.format, "format", "", "pdf or png (default from the output extension)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: c}
	}
	c.output = fs.Arg(0)
	return c, nil
}

func (c *exportCmd) Program() string {
	return c.subcommand("export")
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func exportFormat(format, output string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch f {
	case "pdf", "png":
		return f, nil
	case "":
		return "", fmt.Errorf("cannot tell the format of %q, use -format", output)
	}
	return "", fmt.Errorf("unsupported export format %q", f)
}

func (c *exportCmd) Run() error {
	if c.output == "" {
		return &UsageError{of: c}
	}
	format, err := exportFormat(c.format, c.output)
	if err != nil {
		return err
	}
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
	th := c.activeTheme

	var write func(io.Writer) error
	switch format {
	case "pdf":
		paperColor := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if th != nil {
			paperColor = color.NRGBAModel.Convert(th.Paper).(color.NRGBA)
		}
		write = func(w io.Writer) error {
			return export.PDF(w, strokes, paper.Width, paper.Height, paperColor)
		}
	default:
		img, err := render.RenderPaper(strokes, paper.Width, paper.Height, render.WithTheme(th))
		if err != nil {
			return fmt.Errorf("render drawing: %w", err)
		}
		write = func(w io.Writer) error { return png.Encode(w, img) }
	}
	if err := writeOutput(c.output, c.out(), write); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	if c.output != "-" {
		c.notifier.Export(c.output)
	}
	return nil
}
