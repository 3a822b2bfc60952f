// Package server initializes and runs the todo API server. It builds the
// logger and storage backend from config, seeds the store, handles OS signals
// and runs the HTTP server until shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/logging"
	"github.com/dmitrijs2005/todoapp/internal/server/config"
	"github.com/dmitrijs2005/todoapp/internal/server/httpapi"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapp/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	todoService *services.TodoService
}

// NewApp opens the storage backend, applies migrations and seeds it.
// Log output goes to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, w)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if err := services.Seed(ctx, rm, c, time.Now()); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("seed error: %w", err)
	}

	backend := "memory"
	if c.DatabaseDSN != "" {
		backend = "postgres"
	}
	logger.Info(ctx, "storage ready", "backend", backend, "users", len(c.Users))

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		userService: services.NewUserService(rm, c),
		todoService: services.NewTodoService(rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.todoService, app.config.AllowedOrigin)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the storage backend.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
