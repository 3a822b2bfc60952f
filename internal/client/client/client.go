package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/netx"
)

// TodoClient is an HTTP client for the todo API. It is safe for concurrent
// use; the session token is guarded by a mutex.
type TodoClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewTodoClient(baseURL string, timeout time.Duration) *TodoClient {
	return &TodoClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *TodoClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *TodoClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *TodoClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", false, nil, nil)
}

// Login exchanges credentials for a session token and keeps it for later calls.
func (c *TodoClient) Login(ctx context.Context, userName, password string) (*User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, loginRequest{UserName: userName, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp.User, nil
}

// Logout tells the server and forgets the local token. The server does not
// revoke tokens, so the local copy is dropped even if the call fails.
func (c *TodoClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", true, nil, nil)
	c.SetToken("")
	return err
}

func (c *TodoClient) Me(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *TodoClient) List(ctx context.Context) ([]Todo, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var resp todoListResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Todos, nil
}

func (c *TodoClient) Get(ctx context.Context, id int) (*Todo, error) {
	return c.todoCall(ctx, http.MethodGet, todoPath(id), nil)
}

func (c *TodoClient) Create(ctx context.Context, in TodoInput) (*Todo, error) {
	return c.todoCall(ctx, http.MethodPost, "/api/todos", in)
}

func (c *TodoClient) Update(ctx context.Context, id int, in TodoUpdate) (*Todo, error) {
	return c.todoCall(ctx, http.MethodPut, todoPath(id), in)
}

func (c *TodoClient) Delete(ctx context.Context, id int) (*Todo, error) {
	return c.todoCall(ctx, http.MethodDelete, todoPath(id), nil)
}

func (c *TodoClient) Toggle(ctx context.Context, id int) (*Todo, error) {
	return c.todoCall(ctx, http.MethodPatch, todoPath(id)+"/toggle", nil)
}

func todoPath(id int) string {
	return "/api/todos/" + strconv.Itoa(id)
}

func (c *TodoClient) requireToken() error {
	if c.Token() == "" {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *TodoClient) todoCall(ctx context.Context, method, path string, in any) (*Todo, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var resp todoResponse
	if err := c.do(ctx, method, path, true, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

func (c *TodoClient) do(ctx context.Context, method, path string, withToken bool, in, out any) error {
	headers := map[string]string{}
	if token := c.Token(); withToken && token != "" {
		headers[common.AuthorizationHeaderName] = common.BearerPrefix + token
	}

	resp, err := netx.DoJSON(ctx, c.httpClient, method, c.baseURL+path, headers, in)
	if err != nil {
		if errors.Is(err, netx.ErrUnreachable) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapError(resp *netx.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body errorResponse
	if err := resp.DecodeJSON(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	return apiErr
}
