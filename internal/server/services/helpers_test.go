package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/server/config"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	return cfg
}

// seededManager returns a memory manager holding the default admin, a second
// user "bob" (id 2, same password) and the demo todos.
func seededManager(t *testing.T) (*repomanager.MemoryRepositoryManager, *config.Config) {
	t.Helper()
	cfg := testConfig()
	bob := config.DefaultUser
	bob.ID, bob.UserName, bob.Email = 2, "bob", "bob@example.com"
	cfg.Users = append(cfg.Users, bob)

	m := repomanager.NewMemoryRepositoryManager()
	require.NoError(t, Seed(context.Background(), m, cfg, t0))
	return m, cfg
}

type fakeUsersRepo struct {
	err error
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f *fakeUsersRepo) GetUserByID(context.Context, int) (*models.User, error) { return nil, f.err }
func (f *fakeUsersRepo) Save(context.Context, *models.User) error              { return f.err }

type fakeRepoManager struct {
	u users.Repository
	t todos.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Users() users.Repository             { return m.u }
func (m *fakeRepoManager) Todos() todos.Repository             { return m.t }
func (m *fakeRepoManager) Close() error                        { return nil }

var errDBDown = errors.New("db down")
