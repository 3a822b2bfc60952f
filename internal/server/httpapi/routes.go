package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// routes builds the router and wraps it in the middleware chain. The chain
// sits outside the router so that unmatched routes and preflight requests
// pass through it too.
func (s *HTTPServer) routes() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)

	authRouter := api.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", s.login).Methods(http.MethodPost)
	authRouter.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	authRouter.HandleFunc("/me", s.me).Methods(http.MethodGet)

	todoRouter := api.PathPrefix("/todos").Subrouter()
	todoRouter.Use(s.authMiddleware)
	todoRouter.HandleFunc("", s.listTodos).Methods(http.MethodGet)
	todoRouter.HandleFunc("", s.createTodo).Methods(http.MethodPost)
	todoRouter.HandleFunc("/{id}", s.getTodo).Methods(http.MethodGet)
	todoRouter.HandleFunc("/{id}", s.updateTodo).Methods(http.MethodPut)
	todoRouter.HandleFunc("/{id}", s.deleteTodo).Methods(http.MethodDelete)
	todoRouter.HandleFunc("/{id}/toggle", s.toggleTodo).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)

	var h http.Handler = r
	h = s.corsMiddleware(h)
	h = s.recoverMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.requestIDMiddleware(h)
	return h
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": s.now().UTC(),
	})
}

func (s *HTTPServer) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func (s *HTTPServer) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
