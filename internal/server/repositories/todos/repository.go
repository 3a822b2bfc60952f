// Package todos stores todo items. Every read and write is scoped to the
// owning user; items owned by someone else behave as if they did not exist.
package todos

import (
	"context"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/server/models"
)

// Repository is the todo store.
//
// Ids are assigned on Create as one more than the largest id currently
// stored (1 for an empty store), atomically with the insert. Missing or
// foreign items yield common.ErrorNotFound.
type Repository interface {
	List(ctx context.Context, userID int) ([]models.Todo, error)
	Get(ctx context.Context, userID, id int) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Update(ctx context.Context, userID, id int, patch models.TodoPatch, now time.Time) (*models.Todo, error)
	Delete(ctx context.Context, userID, id int) (*models.Todo, error)
	Toggle(ctx context.Context, userID, id int, now time.Time) (*models.Todo, error)
	Count(ctx context.Context) (int, error)
}
