// Package cache persists the single raw rate document between invocations.
package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// DefaultFileName is the name of the cache file inside the temp directory.
const DefaultFileName = "cur-rates.xml"

// ErrNotFound indicates no record has been stored yet.
var ErrNotFound = errors.New("cache record not found")

// Store reads and writes one raw rate document. Save replaces the whole record.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
}

// DefaultPath returns the cache file location in the platform temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultFileName)
}
