// Package services implements the login and download use cases behind the
// HTTP API.
package services

import (
	"context"

	"github.com/dmitrijs2005/vitibrasil/internal/catalog"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Catalog resolves request keys to categories.
type Catalog interface {
	Resolve(key string) (catalog.Entry, error)
}

// Upstream scrapes a category page and downloads the linked file.
type Upstream interface {
	ResolveDownloadURL(ctx context.Context, sourceURL string) (string, error)
	Fetch(ctx context.Context, downloadURL string) ([]byte, error)
}

// Cache keeps the last downloaded copy of each file.
type Cache interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Recorder receives login and download outcomes, usually for metrics.
type Recorder interface {
	ObserveLogin(result string)
	ObserveDownload(category, result string, size int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveLogin(string)                {}
func (nopRecorder) ObserveDownload(string, string, int) {}
