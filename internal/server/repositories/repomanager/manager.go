// Package repomanager vends the repositories of one storage backend: the
// in-process memory store or PostgreSQL (with goose migrations).
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todoapp/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Todos() todos.Repository
	Close() error
}

// Open returns the PostgreSQL manager when dsn is set and the memory manager
// otherwise.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	m, err := OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}
