package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/example/drawdle/internal/export"
	"github.com/example/drawdle/internal/render"
	"github.com/example/drawdle/internal/stroke"
	"github.com/example/drawdle/internal/theme"
)

type exportFunc func(dir string, now time.Time, strokes []stroke.Stroke, paperW, paperH float64, th *theme.Theme) (string, error)

func exportName(dir string, now time.Time, ext string) string {
	return filepath.Join(dir, "drawdle-"+now.Format("20060102-150405")+ext)
}

func renderPaper(strokes []stroke.Stroke, paperW, paperH float64, th *theme.Theme) (*image.RGBA, error) {
	return render.RenderPaper(strokes, paperW, paperH, render.WithTheme(th))
}

func exportPNG(dir string, now time.Time, strokes []stroke.Stroke, paperW, paperH float64, th *theme.Theme) (string, error) {
	img, err := renderPaper(strokes, paperW, paperH, th)
	if err != nil {
		return "", err
	}
	path := exportName(dir, now, ".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func exportPDF(dir string, now time.Time, strokes []stroke.Stroke, paperW, paperH float64, th *theme.Theme) (string, error) {
	paper := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if th != nil {
		paper = color.NRGBAModel.Convert(th.Paper).(color.NRGBA)
	}
	path := exportName(dir, now, ".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.PDF(f, strokes, paperW, paperH, paper); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
