package httpapi

import (
	"errors"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgCredentialsRequired = "username and password are required"
	msgInvalidCredentials  = "invalid credentials"
	msgFileNotFound        = "file not found"
	msgInternal            = "internal error"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func errorBody(msg string) gin.H {
	return gin.H{"msg": msg}
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Categories": h.categories})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgCredentialsRequired))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, loginResponse{AccessToken: token})
	case errors.Is(err, common.ErrBadRequest):
		c.JSON(http.StatusBadRequest, errorBody(msgCredentialsRequired))
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorBody(msgInvalidCredentials))
	default:
		h.logger.Error(c.Request.Context(), "Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgInternal))
	}
}

func (h *Handler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	artifact, err := h.downloader.Download(ctx, c.Param("category"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody(msgFileNotFound))
			return
		}
		h.logger.Error(ctx, "Download failed", "category", c.Param("category"), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgInternal))
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "text/csv", artifact.Content)
}
