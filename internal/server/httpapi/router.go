// Package httpapi is the HTTP boundary of the download service.
package httpapi

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/vitibrasil/internal/logging"
	"github.com/dmitrijs2005/vitibrasil/internal/server/services"
	"github.com/gin-gonic/gin"
)

//go:embed templates/login.html
var templatesFS embed.FS

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Downloader returns the current file of a category.
type Downloader interface {
	Download(ctx context.Context, key string) (*services.Artifact, error)
}

// TokenVerifier returns the subject of a valid access token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type Handler struct {
	auth       Authenticator
	downloader Downloader
	tokens     TokenVerifier
	categories []string
	logger     logging.Logger
}

func NewHandler(a Authenticator, d Downloader, v TokenVerifier, categories []string, l logging.Logger) *Handler {
	return &Handler{
		auth:       a,
		downloader: d,
		tokens:     v,
		categories: categories,
		logger:     l.With("module", "http_api"),
	}
}

// NewRouter wires every route. metricsHandler may be nil.
func NewRouter(h *Handler, metricsHandler http.Handler) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/login.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), h.requestLog())
	router.SetHTMLTemplate(tmpl)

	router.GET("/login", h.LoginPage)
	router.POST("/login", h.Login)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	protected := router.Group("/download")
	protected.Use(h.requireBearer())
	protected.GET("/:category", h.Download)

	return router, nil
}
