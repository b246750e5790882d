package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/epeers/krxdash/internal/models"
)

// ErrFavoritesCorrupt is returned when the favorites file exists but is not a JSON array of strings
var ErrFavoritesCorrupt = errors.New("favorites file is corrupt")

// FavoritesRepository persists the favorites set as a JSON array in a single file.
// Writers from different sessions race at file granularity; the last write wins.
type FavoritesRepository struct {
	path string
}

// NewFavoritesRepository creates a new FavoritesRepository backed by path
func NewFavoritesRepository(path string) *FavoritesRepository {
	return &FavoritesRepository{path: path}
}

// Path returns the backing file path
func (r *FavoritesRepository) Path() string {
	return r.path
}

// Load reads the favorites file. A missing file yields an empty set.
// An unreadable or malformed file yields an empty set and an error wrapping ErrFavoritesCorrupt.
func (r *FavoritesRepository) Load() (models.Favorites, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.NewFavorites(), nil
	}
	if err != nil {
		return models.NewFavorites(), fmt.Errorf("%w: %v", ErrFavoritesCorrupt, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return models.NewFavorites(), fmt.Errorf("%w: %s: %v", ErrFavoritesCorrupt, r.path, err)
	}
	// "null" unmarshals into a nil slice without error; treat it as corrupt too.
	if names == nil {
		return models.NewFavorites(), fmt.Errorf("%w: %s: not an array", ErrFavoritesCorrupt, r.path)
	}
	return models.NewFavorites(names...), nil
}

// Save overwrites the favorites file with the given set.
// The array is written to a temp file in the same directory and renamed into
// place, so a crash mid-write never leaves a truncated file behind.
func (r *FavoritesRepository) Save(favorites models.Favorites) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(favorites.Sorted()); err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp favorites file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close favorites: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set favorites permissions: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace favorites file: %w", err)
	}
	return nil
}
