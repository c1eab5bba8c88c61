// Package server initializes and runs the download service: it builds the
// credential store, token issuer, category registry, upstream client and
// local cache from the configuration, handles graceful shutdown and starts
// the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vitibrasil/internal/catalog"
	"github.com/dmitrijs2005/vitibrasil/internal/logging"
	"github.com/dmitrijs2005/vitibrasil/internal/server/auth"
	"github.com/dmitrijs2005/vitibrasil/internal/server/config"
	"github.com/dmitrijs2005/vitibrasil/internal/server/httpapi"
	"github.com/dmitrijs2005/vitibrasil/internal/server/metrics"
	"github.com/dmitrijs2005/vitibrasil/internal/server/services"
	"github.com/dmitrijs2005/vitibrasil/internal/server/storage"
	"github.com/dmitrijs2005/vitibrasil/internal/server/upstream"
	"github.com/dmitrijs2005/vitibrasil/internal/server/users"
	"github.com/gin-gonic/gin"
)

const metricsNamespace = "vitibrasil"

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	gin.SetMode(gin.ReleaseMode)
	return newApp(c, logging.NewJSONLogger(os.Stdout, slog.LevelInfo))
}

func newApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	if c.UsesPlaceholderSecret() {
		logger.Warn(ctx, "Using the development secret key, set VITIBRASIL_SECRET_KEY in production")
	}

	hashes, err := credentialHashes(c)
	if err != nil {
		return nil, fmt.Errorf("credentials init error: %w", err)
	}
	store, err := users.NewStaticStore(hashes)
	if err != nil {
		return nil, fmt.Errorf("credentials init error: %w", err)
	}

	issuer, err := auth.NewIssuer(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	mode, err := catalog.ParseMatchMode(c.CategoryMatch)
	if err != nil {
		return nil, err
	}
	registry, err := catalog.New(c.SourceBaseURL, mode)
	if err != nil {
		return nil, fmt.Errorf("catalog init error: %w", err)
	}

	cache, err := storage.NewFileCache(c.CacheDir, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New(metricsNamespace)
	client := upstream.NewClient(upstream.ClientOptions{Timeout: c.UpstreamTimeout, Observer: m})

	handler := httpapi.NewHandler(
		services.NewAuthService(store, issuer, m, logger),
		services.NewDownloadService(registry, client, cache, m, logger),
		issuer,
		catalog.Keys(),
		logger,
	)
	router, err := httpapi.NewRouter(handler, m.Handler())
	if err != nil {
		return nil, fmt.Errorf("router init error: %w", err)
	}

	return &App{
		config: c,
		logger: logger,
		server: httpapi.NewServer(c.EndpointAddr, router, logger),
	}, nil
}

// credentialHashes returns the configured table, or the reference table
// hashed with bcrypt when none is configured.
func credentialHashes(c *config.Config) (map[string]string, error) {
	if len(c.Users) > 0 {
		return c.Users, nil
	}

	hashes := make(map[string]string, len(config.ReferenceCredentials))
	for name, password := range config.ReferenceCredentials {
		h, err := users.HashPassword(password)
		if err != nil {
			return nil, err
		}
		hashes[name] = h
	}
	return hashes, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the server stops or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "cache_dir", app.config.CacheDir, "source", app.config.SourceBaseURL)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
