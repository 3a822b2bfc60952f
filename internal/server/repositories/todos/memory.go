package todos

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
)

// MemoryRepository keeps todos in insertion order behind a single RWMutex.
// Mutations, id assignment included, hold the write lock. Callers always get
// copies.
type MemoryRepository struct {
	mu    sync.RWMutex
	todos []models.Todo
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(ctx context.Context, userID int) ([]models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, userID, id int) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(userID, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	found := r.todos[i]
	return &found, nil
}

// Create stores a copy of todo under a freshly assigned id.
func (r *MemoryRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *todo
	created.ID = r.nextID()
	r.todos = append(r.todos, created)
	return &created, nil
}

func (r *MemoryRepository) Update(ctx context.Context, userID, id int, patch models.TodoPatch, now time.Time) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&r.todos[i])
	r.todos[i].UpdatedAt = now
	updated := r.todos[i]
	return &updated, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id int) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	deleted := r.todos[i]
	r.todos = append(r.todos[:i], r.todos[i+1:]...)
	return &deleted, nil
}

func (r *MemoryRepository) Toggle(ctx context.Context, userID, id int, now time.Time) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	r.todos[i].Completed = !r.todos[i].Completed
	r.todos[i].UpdatedAt = now
	toggled := r.todos[i]
	return &toggled, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.todos), nil
}

// caller holds mu
func (r *MemoryRepository) indexOf(userID, id int) int {
	for i := range r.todos {
		if r.todos[i].ID == id && r.todos[i].UserID == userID {
			return i
		}
	}
	return -1
}

// caller holds mu for writing
func (r *MemoryRepository) nextID() int {
	maxID := 0
	for _, t := range r.todos {
		maxID = max(maxID, t.ID)
	}
	return maxID + 1
}
