package users

import (
	"context"

	"github.com/dmitrijs2005/todoapp/internal/server/models"
)

// Repository is the credential store. Lookups that match nothing return
// common.ErrorNotFound.
type Repository interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}
