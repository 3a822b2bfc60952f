package client

import (
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
)

type User struct {
	ID       int    `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

type Todo struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoInput is the body of a create request.
type TodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
}

// TodoUpdate is a partial update; nil fields are not sent.
type TodoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type loginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type userResponse struct {
	User User `json:"user"`
}

type todoResponse struct {
	Message string `json:"message"`
	Todo    Todo   `json:"todo"`
}

type todoListResponse struct {
	Todos []Todo `json:"todos"`
	Count int    `json:"count"`
}

type errorResponse struct {
	Error   string              `json:"error"`
	Details []common.FieldError `json:"details"`
}
