// Package services contains application services for the download client.
// The download service logs in, fetches each requested category and stores
// it on disk, re-authenticating once when the server rejects the token.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/client/client"
	"github.com/dmitrijs2005/vitibrasil/internal/filex"
	"github.com/dmitrijs2005/vitibrasil/internal/logging"
)

// API is the subset of the server API the service needs.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Download(ctx context.Context, token, category string) ([]byte, error)
}

// Result is the outcome of one category.
type Result struct {
	Category string
	Path     string
	Bytes    int
	Duration time.Duration
	Err      error
}

type Summary struct {
	Results []Result
}

// Failed counts the categories that were not saved.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Err is non-nil when any category failed.
func (s Summary) Err() error {
	if n := s.Failed(); n > 0 {
		return fmt.Errorf("%d of %d downloads failed", n, len(s.Results))
	}
	return nil
}

// DownloadService defines the client workflow.
//
// Contract:
//   - Login: obtain a token with the configured credentials.
//   - DownloadAll: save every category in order; a failed category does not
//     stop the others. Logs in first when no token is held.
type DownloadService interface {
	Login(ctx context.Context) error
	DownloadAll(ctx context.Context, categories []string) (Summary, error)
	Token() string
}

type downloadService struct {
	api       API
	username  string
	password  string
	outputDir string
	logger    logging.Logger

	token string
}

func NewDownloadService(api API, username, password, outputDir string, l logging.Logger) DownloadService {
	return &downloadService{
		api:       api,
		username:  username,
		password:  password,
		outputDir: outputDir,
		logger:    l.With("module", "download_service"),
	}
}

func (s *downloadService) Token() string {
	return s.token
}

func (s *downloadService) Login(ctx context.Context) error {
	token, err := s.api.Login(ctx, s.username, s.password)
	if err != nil {
		s.logger.Error(ctx, "Login failed", "username", s.username, "error", err)
		return fmt.Errorf("login: %w", err)
	}

	s.token = token
	s.logger.Info(ctx, "Logged in", "username", s.username)
	return nil
}

// DownloadAll returns an error only when the initial login fails. Per
// category failures are reported in the Summary.
func (s *downloadService) DownloadAll(ctx context.Context, categories []string) (Summary, error) {
	var summary Summary

	if s.token == "" {
		if err := s.Login(ctx); err != nil {
			return summary, err
		}
	}

	dir, err := filex.EnsureDir(s.outputDir)
	if err != nil {
		return summary, err
	}

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			summary.Results = append(summary.Results, Result{Category: category, Err: err})
			continue
		}
		summary.Results = append(summary.Results, s.downloadOne(ctx, dir, category))
	}

	return summary, nil
}

func (s *downloadService) downloadOne(ctx context.Context, dir, category string) Result {
	started := time.Now()
	res := Result{Category: category}

	data, err := s.api.Download(ctx, s.token, category)
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Warn(ctx, "Token rejected, logging in again", "category", category)
		if loginErr := s.Login(ctx); loginErr != nil {
			err = fmt.Errorf("%w; %w", err, loginErr)
		} else {
			data, err = s.api.Download(ctx, s.token, category)
		}
	}
	if err != nil {
		res.Err = err
		res.Duration = time.Since(started)
		s.logger.Error(ctx, "Download failed", "category", category, "error", err)
		return res
	}

	path, err := filex.ReplaceFile(dir, category+".csv", data)
	res.Duration = time.Since(started)
	if err != nil {
		res.Err = err
		s.logger.Error(ctx, "Failed to save file", "category", category, "error", err)
		return res
	}

	res.Path = path
	res.Bytes = len(data)
	s.logger.Info(ctx, "File saved", "category", category, "path", path, "bytes", len(data))
	return res
}
