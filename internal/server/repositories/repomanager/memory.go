package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todoapp/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory; data is lost
// on restart.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	todos *todos.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		todos: todos.NewMemoryRepository(),
	}
}

// RunMigrations is a no-op for the memory backend.
func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Todos() todos.Repository { return m.todos }

func (m *MemoryRepositoryManager) Close() error { return nil }
