package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/auth"
)

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := bodyFields(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := s.users.Login(ctx, stringField(fields, "username"), stringField(fields, "password"))
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			writeValidation(w, ve)
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			s.logger.Error(ctx, "login failed", "error", err, "request_id", RequestIDFrom(ctx))
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(ctx, "user logged in", "user_id", res.User.ID, "request_id", RequestIDFrom(ctx))

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

// logout always succeeds; tokens are not revoked and stay valid until they
// expire.
func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logout successful"})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := auth.BearerToken(r.Header.Get(common.AuthorizationHeaderName))

	u, err := s.users.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(ctx, "current user lookup failed", "error", err, "request_id", RequestIDFrom(ctx))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}
