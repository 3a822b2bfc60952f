package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/repomanager"
)

// TodoService implements the per-user todo operations on top of the todo
// repository: input trimming and validation, timestamps, owner scoping.
type TodoService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTodoService(m repomanager.RepositoryManager) *TodoService {
	return &TodoService{repomanager: m, now: time.Now}
}

func (s *TodoService) clock() time.Time {
	return s.now().UTC()
}

// List returns the todos owned by userID in creation order.
func (s *TodoService) List(ctx context.Context, userID int) ([]models.Todo, error) {
	list, err := s.repomanager.Todos().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return list, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id int) (*models.Todo, error) {
	t, err := s.repomanager.Todos().Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	return t, nil
}

// Create trims title and description and stores a new todo owned by userID.
// An empty title is a *common.ValidationError. The owner must exist in the
// credential store; otherwise common.ErrorUnauthorized is returned.
func (s *TodoService) Create(ctx context.Context, userID int, in models.NewTodo) (*models.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.NewValidationError("title", "Title is required", in.Title)
	}

	if _, err := s.repomanager.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	now := s.clock()
	t, err := s.repomanager.Todos().Create(ctx, &models.Todo{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Completed:   in.Completed,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return t, nil
}

// Update applies the provided fields only. A provided title that is empty
// after trimming is a *common.ValidationError.
func (s *TodoService) Update(ctx context.Context, userID, id int, patch models.TodoPatch) (*models.Todo, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, common.NewValidationError("title", "Title cannot be empty", *patch.Title)
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}

	t, err := s.repomanager.Todos().Update(ctx, userID, id, patch, s.clock())
	if err != nil {
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id int) (*models.Todo, error) {
	t, err := s.repomanager.Todos().Delete(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("delete todo %d: %w", id, err)
	}
	return t, nil
}

func (s *TodoService) Toggle(ctx context.Context, userID, id int) (*models.Todo, error) {
	t, err := s.repomanager.Todos().Toggle(ctx, userID, id, s.clock())
	if err != nil {
		return nil, fmt.Errorf("toggle todo %d: %w", id, err)
	}
	return t, nil
}
