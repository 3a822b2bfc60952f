package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
)

// MemoryRepository keeps users in process memory. Returned users are copies.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// GetUserByLogin matches the username exactly (case-sensitive).
func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.UserName == login {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Save inserts user or replaces the one with the same id.
func (r *MemoryRepository) Save(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	r.users = append(r.users, *user)
	return nil
}
