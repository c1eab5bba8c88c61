package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitibrasil/internal/catalog"
	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/dmitrijs2005/vitibrasil/internal/logging"
	"github.com/dmitrijs2005/vitibrasil/internal/server/metrics"
	"github.com/dmitrijs2005/vitibrasil/internal/server/upstream"
)

// unknownCategory labels metrics of keys that matched nothing.
const unknownCategory = "unknown"

// Artifact is a freshly downloaded file.
type Artifact struct {
	Category string
	FileName string
	Path     string
	Content  []byte
}

type DownloadService struct {
	catalog  Catalog
	upstream Upstream
	cache    Cache
	recorder Recorder
	logger   logging.Logger
}

func NewDownloadService(c Catalog, u Upstream, cache Cache, r Recorder, l logging.Logger) *DownloadService {
	if r == nil {
		r = nopRecorder{}
	}
	return &DownloadService{
		catalog:  c,
		upstream: u,
		cache:    cache,
		recorder: r,
		logger:   l.With("module", "download_service"),
	}
}

// Download fetches the current CSV of the category matching key, replaces
// the cached copy and returns the content.
//
// Any upstream failure is reported as common.ErrNotFound; the cause is only
// logged.
func (s *DownloadService) Download(ctx context.Context, key string) (*Artifact, error) {
	entry, err := s.catalog.Resolve(key)
	if err != nil {
		s.recorder.ObserveDownload(unknownCategory, metrics.ResultNotFound, 0)
		s.logger.Info(ctx, "Unknown category", "key", key)
		return nil, err
	}

	log := s.logger.With("category", entry.Key, "source_url", entry.SourceURL)

	link, err := s.upstream.ResolveDownloadURL(ctx, entry.SourceURL)
	if err != nil {
		s.upstreamFailed(ctx, log, entry, "Failed to resolve download link", err)
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, entry.Key)
	}

	content, err := s.upstream.Fetch(ctx, link)
	if err != nil {
		s.upstreamFailed(ctx, log.With("download_url", link), entry, "Failed to fetch file", err)
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, entry.Key)
	}

	path, err := s.cache.Put(ctx, entry.FileName, content)
	if err != nil {
		s.recorder.ObserveDownload(entry.Key, metrics.ResultError, 0)
		log.Error(ctx, "Failed to cache file", "file", entry.FileName, "error", err)
		return nil, fmt.Errorf("%w: cache %s: %v", common.ErrInternal, entry.FileName, err)
	}

	s.recorder.ObserveDownload(entry.Key, metrics.ResultSuccess, len(content))
	log.Info(ctx, "File downloaded", "download_url", link, "path", path, "bytes", len(content))

	return &Artifact{
		Category: entry.Key,
		FileName: entry.FileName,
		Path:     path,
		Content:  content,
	}, nil
}

func (s *DownloadService) upstreamFailed(ctx context.Context, log logging.Logger, entry catalog.Entry, msg string, err error) {
	s.recorder.ObserveDownload(entry.Key, metrics.ResultNotFound, 0)

	var se *upstream.StatusError
	if errors.As(err, &se) {
		log = log.With("status", se.StatusCode)
	}
	log.Error(ctx, msg, "error", err)
}
