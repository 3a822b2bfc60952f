package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/server/config"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/repomanager"
)

// DemoTodos returns the two sample todos a fresh store starts with.
func DemoTodos(userID int, now time.Time) []models.Todo {
	return []models.Todo{
		{
			Title:       "Learn React Testing",
			Description: "Study Playwright and testing frameworks",
			Completed:   false,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Title:       "Build API Tests",
			Description: "Create comprehensive API test suite",
			Completed:   true,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// Seed writes the configured users into the store. When cfg.SeedTodos is set
// and the store holds no todos yet, the demo todos are added for the first
// configured user.
func Seed(ctx context.Context, m repomanager.RepositoryManager, cfg *config.Config, now time.Time) error {
	usersRepo := m.Users()
	for _, u := range cfg.Users {
		user := models.User{ID: u.ID, UserName: u.UserName, PasswordHash: u.PasswordHash, Email: u.Email}
		if err := usersRepo.Save(ctx, &user); err != nil {
			return fmt.Errorf("seed user %q: %w", u.UserName, err)
		}
	}

	if !cfg.SeedTodos || len(cfg.Users) == 0 {
		return nil
	}

	todosRepo := m.Todos()
	n, err := todosRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count todos: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, t := range DemoTodos(cfg.Users[0].ID, now.UTC()) {
		if _, err := todosRepo.Create(ctx, &t); err != nil {
			return fmt.Errorf("seed todo %q: %w", t.Title, err)
		}
	}
	return nil
}
