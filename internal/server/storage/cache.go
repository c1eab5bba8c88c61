// Package storage keeps the local copy of every downloaded CSV.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitibrasil/internal/filex"
	"github.com/dmitrijs2005/vitibrasil/internal/logging"
)

// FileCache stores one file per category under a base directory. A new copy
// always overwrites the previous one.
type FileCache struct {
	dir    string
	logger logging.Logger
}

// NewFileCache creates dir if it does not exist yet.
func NewFileCache(dir string, logger logging.Logger) (*FileCache, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	logger = logger.With("module", "file_cache")
	logger.Info(context.Background(), "File cache initialized", "dir", abs)

	return &FileCache{dir: abs, logger: logger}, nil
}

func (c *FileCache) Dir() string {
	return c.dir
}

// Put replaces the cached copy of name and returns its path.
func (c *FileCache) Put(ctx context.Context, name string, data []byte) (string, error) {
	path, err := filex.ReplaceFile(c.dir, name, data)
	if err != nil {
		c.logger.Error(ctx, "Failed to store file", "name", name, "error", err)
		return "", err
	}

	c.logger.Debug(ctx, "File stored", "path", path, "bytes", len(data))
	return path, nil
}
