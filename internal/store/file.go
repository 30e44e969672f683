package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the drawing in a JSON file. Writes go through a temporary
// file and a rename so a crash never leaves half a drawing behind.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

// Save writes data to the file.
func (f *FileStore) Save(ctx context.Context, data string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".drawdle-*.json")
	if err != nil {
		return fmt.Errorf("save %s: %w", f.Path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", f.Path, err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("save %s: %w", f.Path, err)
	}
	return nil
}

// Load reads the file, returning EmptyDrawing when it does not exist.
func (f *FileStore) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return EmptyDrawing, nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", f.Path, err)
	}
	return string(b), nil
}

func (f *FileStore) String() string { return f.Path }
