package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/dmitrijs2005/vitibrasil/internal/logging"
	"github.com/dmitrijs2005/vitibrasil/internal/server/metrics"
	"github.com/dmitrijs2005/vitibrasil/internal/server/users"
)

type AuthService struct {
	users    users.Verifier
	issuer   TokenIssuer
	recorder Recorder
	logger   logging.Logger
}

func NewAuthService(v users.Verifier, issuer TokenIssuer, r Recorder, l logging.Logger) *AuthService {
	if r == nil {
		r = nopRecorder{}
	}
	return &AuthService{
		users:    v,
		issuer:   issuer,
		recorder: r,
		logger:   l.With("module", "auth_service"),
	}
}

// Login checks the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		s.recorder.ObserveLogin(metrics.ResultBadRequest)
		return "", fmt.Errorf("%w: username and password are required", common.ErrBadRequest)
	}

	if !s.users.Verify(ctx, username, password) {
		s.recorder.ObserveLogin(metrics.ResultUnauthorized)
		s.logger.Warn(ctx, "Login rejected", "username", username)
		return "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(username)
	if err != nil {
		s.recorder.ObserveLogin(metrics.ResultError)
		s.logger.Error(ctx, "Failed to issue token", "username", username, "error", err)
		return "", fmt.Errorf("%w: issue token: %v", common.ErrInternal, err)
	}

	s.recorder.ObserveLogin(metrics.ResultSuccess)
	s.logger.Info(ctx, "Logged in", "username", username)
	return token, nil
}
