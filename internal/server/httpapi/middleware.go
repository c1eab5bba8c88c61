package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	// usernameKey holds the token subject in the gin context.
	usernameKey = "username"
)

const (
	msgMissingAuthorization = "missing authorization header"
	msgTokenExpired         = "token has expired"
	msgInvalidToken         = "invalid token"
)

func (h *Handler) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		h.logger.Info(c.Request.Context(), "Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(started),
			"username", c.GetString(usernameKey),
		)
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (h *Handler) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msgMissingAuthorization))
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msgInvalidToken))
			return
		}

		username, err := h.tokens.Verify(token)
		if err != nil {
			msg := msgInvalidToken
			if errors.Is(err, common.ErrTokenExpired) {
				msg = msgTokenExpired
			}
			h.logger.Info(c.Request.Context(), "Token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msg))
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}
