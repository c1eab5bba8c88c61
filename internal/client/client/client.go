// Package client talks to the download server over HTTP.
//
// Failures are reported with sentinel errors callers can match with
// errors.Is: ErrUnavailable for transport problems, ErrUnauthorized for a
// rejected login or token, ErrBadRequest and ErrNotFound for the matching
// status codes. Other statuses come back as *ResponseError.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/go-resty/resty/v2"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type errorResponse struct {
	Msg string `json:"msg"`
}

type HTTPClient struct {
	http *resty.Client
}

func NewHTTPClient(serverURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(serverURL, "/")).
		SetTimeout(timeout)

	return &HTTPClient{http: c}
}

// Login exchanges credentials for an access token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var ok loginResponse
	var failed errorResponse

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&ok).
		SetError(&failed).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if res.StatusCode() == http.StatusOK {
		if ok.AccessToken == "" {
			return "", &ResponseError{StatusCode: res.StatusCode(), Msg: "empty access token"}
		}
		return ok.AccessToken, nil
	}

	return "", statusError(res.StatusCode(), failed.Msg)
}

// Download returns the CSV of category.
func (c *HTTPClient) Download(ctx context.Context, token, category string) ([]byte, error) {
	var failed errorResponse

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(common.AuthorizationHeaderName, common.BearerScheme+" "+token).
		SetError(&failed).
		Get("/download/" + url.PathEscape(category))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if res.StatusCode() == http.StatusOK {
		return res.Body(), nil
	}

	return nil, statusError(res.StatusCode(), failed.Msg)
}

func statusError(code int, msg string) error {
	re := &ResponseError{StatusCode: code, Msg: msg}

	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, re)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w", ErrBadRequest, re)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, re)
	default:
		return re
	}
}
