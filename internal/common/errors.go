// Package common defines shared constants and sentinel errors used across
// the server and client of the VitiBrasil download service. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Request validation errors.
	ErrBadRequest = errors.New("bad request")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Credential errors.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Upstream errors: the statistics site is unreachable, answered with a
	// non-success status, or its page no longer carries the download marker.
	ErrFetch          = errors.New("upstream fetch failed")
	ErrMarkerNotFound = errors.New("download marker not found")
)
