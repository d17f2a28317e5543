// Package store keeps saved items as indented JSON files, one file per item
// named after model.Item.FileName.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/udisondev/craftassist/internal/model"
)

const ext = ".json"

// Errors.
var (
	ErrItemNotFound = errors.New("saved item not found")
	ErrInvalidName  = errors.New("invalid item file name")
)

// FileStore is a directory of saved items.
type FileStore struct {
	dir string
	now func() time.Time
}

// New opens the store at dir, creating the directory if needed.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating items directory %s: %w", dir, err)
	}
	slog.Debug("using items directory", "dir", dir)
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// List returns the names of saved items, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing saved items: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)
	return names, nil
}

// Save writes item under its FileName, overwriting a previous save of the
// same name, and stamps StoredAt.
func (s *FileStore) Save(item *model.Item) error {
	path, err := s.path(item.FileName)
	if err != nil {
		return err
	}

	item.StoredAt = s.now().UTC()
	b, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding item %s: %w", item.FileName, err)
	}

	// Atomic replace: temp file in the same directory, then rename.
	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return fmt.Errorf("saving item %s: %w", item.FileName, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("saving item %s: %w", item.FileName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving item %s: %w", item.FileName, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving item %s: %w", item.FileName, err)
	}

	slog.Info("saved item", "name", item.FileName)
	return nil
}

// Load reads the saved item called name. Resolved modifiers come back with
// their tiers but without matched affixes; re-process the item to restore
// those.
func (s *FileStore) Load(name string) (*model.Item, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading item %s: %w", name, err)
	}

	var item model.Item
	if err := json.Unmarshal(b, &item); err != nil {
		return nil, fmt.Errorf("decoding item %s: %w", name, err)
	}
	slog.Debug("loaded item", "name", item.FileName)
	return &item, nil
}

// Delete removes the saved item called name. Deleting a missing item is not
// an error.
func (s *FileStore) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", name, err)
	}
	slog.Info("deleted item", "name", name)
	return nil
}

func (s *FileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+ext), nil
}
