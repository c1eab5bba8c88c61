// Package auth issues and verifies the stateless bearer tokens handed out on
// login. Tokens are HS256 JWTs; expiry is the only invalidation path.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultValidity matches the lifetime of access tokens issued before the
// validity became configurable.
const DefaultValidity = 15 * time.Minute

// Claims carries the standard registered claims; the username is the subject.
type Claims struct {
	jwt.RegisteredClaims
}

type Issuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

func NewIssuer(secretKey string, validity time.Duration) (*Issuer, error) {
	if secretKey == "" {
		return nil, errors.New("empty secret key")
	}
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Issuer{secretKey: []byte(secretKey), validity: validity, now: time.Now}, nil
}

// Validity reports how long issued tokens stay valid.
func (i *Issuer) Validity() time.Duration {
	return i.validity
}

func (i *Issuer) Issue(username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("issue token: %w", common.ErrBadRequest)
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the token subject.
// It fails with common.ErrTokenExpired or common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
