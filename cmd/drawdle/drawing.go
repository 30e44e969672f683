package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drawdle/internal/config"
	"github.com/example/drawdle/internal/store"
	"github.com/example/drawdle/internal/stroke"
)

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

// defaultStore is used when neither -store nor the config names one.
func defaultStore() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "drawing.json"
	}
	return filepath.Join(dir, "drawdle", "drawing.json")
}

func openStore(location, drawing string) (store.Store, error) {
	if strings.TrimSpace(location) == "" {
		location = defaultStore()
	}
	st, err := store.Open(location, drawing)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", location, err)
	}
	return st, nil
}

// storeDir is the directory exports go to for a store location: next to a
// local file, or the working directory for remote stores.
func storeDir(location string) string {
	loc := strings.TrimPrefix(strings.TrimSpace(location), "sqlite:")
	if loc == "" || strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return "."
	}
	return filepath.Dir(loc)
}

// loadVisible reads the drawing and drops undone strokes.
func loadVisible(ctx context.Context, st store.Store) ([]stroke.Stroke, error) {
	data, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load drawing: %w", err)
	}
	all, err := stroke.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("load drawing: %w", err)
	}
	visible := all[:0]
	for _, s := range all {
		if s.Active {
			visible = append(visible, s)
		}
	}
	return visible, nil
}
