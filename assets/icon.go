// Package assets provides the application icon. It is drawn at runtime so
// every size comes from the same geometry.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"
)

// IconSizes lists the sizes notifications and window managers ask for.
var IconSizes = []int{32, 64, 128}

var (
	iconMu    sync.Mutex
	iconPNG   = map[int][]byte{}
	iconFiles = map[int]string{}
)

var (
	iconPaper  = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	iconBack   = color.NRGBA{0x5b, 0x56, 0x4d, 0xff}
	iconStroke = color.NRGBA{0x1f, 0x4e, 0x9c, 0xff}
)

func drawIcon(size int) (*gg.Context, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	s := float64(size)
	dc := gg.NewContext(size, size)
	dc.ClearWithColor(gg.FromColor(iconBack))
	dc.SetColor(iconPaper)
	dc.DrawRectangle(s*0.12, s*0.18, s*0.76, s*0.64)
	if err := dc.Fill(); err != nil {
		return nil, err
	}
	dc.SetColor(iconStroke)
	dc.SetLineWidth(s * 0.07)
	dc.SetLineCap(gg.LineCapRound)
	dc.MoveTo(s*0.24, s*0.62)
	dc.CubicTo(s*0.36, s*0.28, s*0.56, s*0.76, s*0.76, s*0.36)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}
	return dc, nil
}

// IconImage renders the icon at size pixels square.
func IconImage(size int) (image.Image, error) {
	dc, err := drawIcon(size)
	if err != nil {
		return nil, err
	}
	return dc.ResizeTarget().ToImage(), nil
}

// IconPNG returns the icon encoded as PNG. Results are cached per size.
func IconPNG(size int) ([]byte, error) {
	iconMu.Lock()
	defer iconMu.Unlock()
	if data, ok := iconPNG[size]; ok {
		return append([]byte(nil), data...), nil
	}
	dc, err := drawIcon(size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	iconPNG[size] = buf.Bytes()
	return append([]byte(nil), buf.Bytes()...), nil
}

// IconFile writes the icon into the temp directory once and returns its
// path, for notification services that only take file names.
func IconFile(size int) (string, error) {
	data, err := IconPNG(size)
	if err != nil {
		return "", err
	}
	iconMu.Lock()
	defer iconMu.Unlock()
	if p, ok := iconFiles[size]; ok {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	p := filepath.Join(os.TempDir(), fmt.Sprintf("drawdle-icon-%d.png", size))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write icon: %w", err)
	}
	iconFiles[size] = p
	return p, nil
}
