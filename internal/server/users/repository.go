package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
)

// Repository looks credentials up by user name. Implementations return
// common.ErrNotFound for unknown users.
type Repository interface {
	GetUserByLogin(ctx context.Context, userName string) (*Credential, error)
}

// MemoryRepository is a read-only credential table fixed at construction.
type MemoryRepository struct {
	credentials map[string]Credential
}

// NewMemoryRepository copies hashes (user name → bcrypt hash) into a new table.
func NewMemoryRepository(hashes map[string]string) *MemoryRepository {
	m := make(map[string]Credential, len(hashes))
	for name, hash := range hashes {
		m[name] = Credential{UserName: name, PasswordHash: hash}
	}
	return &MemoryRepository{credentials: m}
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*Credential, error) {
	c, ok := r.credentials[userName]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", userName, common.ErrNotFound)
	}
	return &c, nil
}
