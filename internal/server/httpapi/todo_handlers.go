package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
	"github.com/gorilla/mux"
)

// todoID parses the {id} path variable.
func todoID(r *http.Request) (int, *common.ValidationError) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationError("id", "Todo ID must be a number", raw)
	}
	return id, nil
}

// writeTodoError maps service errors to responses.
func (s *HTTPServer) writeTodoError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidation(w, ve)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Todo not found")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusForbidden, "Invalid or expired token")
	default:
		s.logger.Error(r.Context(), "todo operation failed",
			"error", err, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// todoFields checks the JSON types of the todo body fields shared by create
// and update.
func todoFields(fields map[string]json.RawMessage, v *common.ValidationError) models.TodoPatch {
	var p models.TodoPatch

	if raw, ok := lookup(fields, "title"); ok {
		if s, ok := asString(raw); ok {
			p.Title = &s
		} else {
			v.Add("title", "Title must be a string", rawValue(raw))
		}
	}
	if raw, ok := lookup(fields, "description"); ok {
		if s, ok := asString(raw); ok {
			p.Description = &s
		} else {
			v.Add("description", "Description must be a string", rawValue(raw))
		}
	}
	if raw, ok := lookup(fields, "completed"); ok {
		if b, ok := asBool(raw); ok {
			p.Completed = &b
		} else {
			v.Add("completed", "Completed must be a boolean", rawValue(raw))
		}
	}
	return p
}

func (s *HTTPServer) listTodos(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	list, err := s.todos.List(r.Context(), p.UserID)
	if err != nil {
		s.writeTodoError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todos": list, "count": len(list)})
}

func (s *HTTPServer) getTodo(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	id, ve := todoID(r)
	if ve != nil {
		writeValidation(w, ve)
		return
	}

	t, err := s.todos.Get(r.Context(), p.UserID, id)
	if err != nil {
		s.writeTodoError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todo": t})
}

func (s *HTTPServer) createTodo(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	fields, err := bodyFields(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	v := &common.ValidationError{}
	patch := todoFields(fields, v)
	if v.HasErrors() {
		writeValidation(w, v)
		return
	}

	in := models.NewTodo{}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Completed != nil {
		in.Completed = *patch.Completed
	}

	t, err := s.todos.Create(r.Context(), p.UserID, in)
	if err != nil {
		s.writeTodoError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Todo created successfully", "todo": t})
}

func (s *HTTPServer) updateTodo(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	id, ve := todoID(r)
	if ve != nil {
		writeValidation(w, ve)
		return
	}

	fields, err := bodyFields(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	v := &common.ValidationError{}
	patch := todoFields(fields, v)
	if v.HasErrors() {
		writeValidation(w, v)
		return
	}

	t, err := s.todos.Update(r.Context(), p.UserID, id, patch)
	if err != nil {
		s.writeTodoError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Todo updated successfully", "todo": t})
}

func (s *HTTPServer) deleteTodo(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	id, ve := todoID(r)
	if ve != nil {
		writeValidation(w, ve)
		return
	}

	t, err := s.todos.Delete(r.Context(), p.UserID, id)
	if err != nil {
		s.writeTodoError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Todo deleted successfully", "todo": t})
}

func (s *HTTPServer) toggleTodo(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	id, ve := todoID(r)
	if ve != nil {
		writeValidation(w, ve)
		return
	}

	t, err := s.todos.Toggle(r.Context(), p.UserID, id)
	if err != nil {
		s.writeTodoError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Todo toggled successfully", "todo": t})
}
