// Package users holds the static credential table of the download service
// and the password check performed on login.
package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// Verifier is the capability the login flow needs from a user store.
type Verifier interface {
	Verify(ctx context.Context, userName, password string) bool
}

// Store verifies passwords against a Repository.
type Store struct {
	repo Repository

	// dummyHash is compared against for unknown users so a miss costs the
	// same as a wrong password.
	dummyHash string
}

func NewStore(repo Repository) (*Store, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	dummy, err := HashPassword(hex.EncodeToString(b))
	if err != nil {
		return nil, err
	}
	return &Store{repo: repo, dummyHash: dummy}, nil
}

// NewStaticStore builds a Store over a fixed table of user name → bcrypt hash.
func NewStaticStore(hashes map[string]string) (*Store, error) {
	for name, hash := range hashes {
		if name == "" {
			return nil, errors.New("empty user name in credential table")
		}
		if err := ValidateHash(hash); err != nil {
			return nil, fmt.Errorf("user %q: invalid password hash: %w", name, err)
		}
	}
	return NewStore(NewMemoryRepository(hashes))
}

func (s *Store) Verify(ctx context.Context, userName, password string) bool {
	c, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		// hide whether user exists or not
		_ = VerifyPassword(s.dummyHash, password)
		return false
	}

	return VerifyPassword(c.PasswordHash, password) == nil
}
