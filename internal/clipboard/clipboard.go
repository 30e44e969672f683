// Package clipboard puts rendered drawings and picked colors on the system
// clipboard. On unix it needs an X11 or Wayland display; builds with cgo go
// through golang.design/x/clipboard and builds without it talk to the X
// server directly.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

var (
	errNoDisplay   = errors.New("clipboard needs DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard is not supported on this platform")
	errEmpty       = errors.New("clipboard holds no text")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("no image to copy")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteImage publishes img as PNG.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	if err := ensureInit(); err != nil {
		return err
	}
	return writePNG(data)
}

// WriteText publishes text, typically a picked #rrggbb color.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return writeText(text)
}

// ReadText returns the clipboard's UTF-8 text.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	s, err := readText()
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errEmpty
	}
	return s, nil
}
