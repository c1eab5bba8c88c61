package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
)

// ResponseError is an unexpected answer of the server. Msg is the "msg"
// field of the body when present.
type ResponseError struct {
	StatusCode int
	Msg        string
}

func (e *ResponseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Msg)
}
