package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/client/client"
	"github.com/dmitrijs2005/vitibrasil/internal/client/config"
	"github.com/dmitrijs2005/vitibrasil/internal/client/services"
	"github.com/dmitrijs2005/vitibrasil/internal/logging"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newAPI is a test seam for the HTTP client.
var newAPI = func(c *config.Config) services.API {
	return client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
}

type App struct {
	config  *config.Config
	service services.DownloadService
	out     io.Writer
	logger  logging.Logger
}

// NewApp prompts for the password on logOut when none is configured.
func NewApp(c *config.Config, out, logOut io.Writer, verbose bool) (*App, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewJSONLogger(logOut, level)

	if c.Password == "" {
		pw, err := GetPassword(logOut, c.Username)
		if err != nil {
			return nil, err
		}
		c.Password = pw
	}

	s := services.NewDownloadService(newAPI(c), c.Username, c.Password, c.OutputDir, logger)

	return &App{config: c, service: s, out: out, logger: logger}, nil
}

// Download saves the given categories and prints one table row per category.
func (a *App) Download(ctx context.Context, categories []string) error {
	summary, err := a.service.DownloadAll(ctx, categories)
	if err != nil {
		return err
	}

	a.printSummary(summary)
	return summary.Err()
}

// Login prints a fresh access token, e.g. for use with curl.
func (a *App) Login(ctx context.Context) error {
	if err := a.service.Login(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, a.service.Token())
	return err
}

func (a *App) printSummary(s services.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.AppendHeader(table.Row{"Category", "Status", "File", "Bytes", "Time"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Bytes", Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Name: "Time", Align: text.AlignRight, AlignHeader: text.AlignRight},
	})
	t.Style().Format.Footer = text.FormatDefault

	for _, r := range s.Results {
		if r.Err != nil {
			t.AppendRow(table.Row{r.Category, "FAILED", r.Err.Error(), 0, r.Duration.Round(time.Millisecond)})
			continue
		}
		t.AppendRow(table.Row{r.Category, "ok", r.Path, r.Bytes, r.Duration.Round(time.Millisecond)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d ok", len(s.Results)-s.Failed(), len(s.Results))})

	t.Render()
}
