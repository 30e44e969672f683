// Package store persists serialized drawings. Every backend stores one JSON
// stroke array per drawing and returns "[]" for drawings never saved.
package store

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"
)

// EmptyDrawing is what Load returns before anything was saved.
const EmptyDrawing = "[]"

// Store saves and loads one drawing.
type Store interface {
	Save(ctx context.Context, data string) error
	Load(ctx context.Context) (string, error)
}

// RevisionSaver is implemented by stores that record a revision id with
// each save.
type RevisionSaver interface {
	SaveRevision(ctx context.Context, data, revision string) error
}

// Open picks a backend from location: http(s) URLs use the HTTP API,
// "sqlite:" prefixes or .db/.sqlite files use SQLite, anything else is a
// JSON file. name selects the drawing where the backend holds several.
func Open(location, name string) (Store, error) {
	loc := strings.TrimSpace(location)
	switch {
	case loc == "":
		return nil, fmt.Errorf("no store configured")
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTPStore(loc, nil), nil
	case strings.HasPrefix(loc, "sqlite:"):
		return OpenSQLite(strings.TrimPrefix(loc, "sqlite:"), name)
	}
	switch strings.ToLower(filepath.Ext(loc)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(loc, name)
	}
	return &FileStore{Path: loc}, nil
}

// Close releases s if it holds resources.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// SaveTimeout bounds one background save.
const SaveTimeout = 30 * time.Second

// SaveAsync saves data on a new goroutine and reports the result to done,
// which may be nil. It never blocks the caller.
func SaveAsync(ctx context.Context, s Store, data string, done func(error)) {
	go func() {
		ctx, cancel := context.WithTimeout(ctx, SaveTimeout)
		defer cancel()
		err := s.Save(ctx, data)
		if err != nil {
			log.Printf("save drawing: %v", err)
		}
		if done != nil {
			done(err)
		}
	}()
}
