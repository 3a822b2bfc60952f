// Package httpapi exposes the todo services as a JSON REST API on a
// gorilla/mux router.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/logging"
	"github.com/dmitrijs2005/todoapp/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address       string
	users         *services.UserService
	todos         *services.TodoService
	logger        logging.Logger
	allowedOrigin string
	now           func() time.Time
	handler       http.Handler
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ts *services.TodoService, allowedOrigin string) *HTTPServer {
	s := &HTTPServer{
		address:       a,
		logger:        l.With("module", "http_server"),
		users:         us,
		todos:         ts,
		allowedOrigin: allowedOrigin,
		now:           time.Now,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped router.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	// stop releases the shutdown goroutine when Serve fails on its own.
	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-serveCtx.Done()
		if ctx.Err() == nil {
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	stop()
	<-done

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
