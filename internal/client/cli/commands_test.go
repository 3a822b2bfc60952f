package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/client/client"
	"github.com/dmitrijs2005/todoapp/internal/client/config"
	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token string
	todos map[int]client.Todo

	lastLogin  [2]string
	lastCreate client.TodoInput
	lastUpdate *client.TodoUpdate
	healthErr  error
	logoutErr  error
	loginErr   error
}

func newFakeAPI() *fakeAPI {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &fakeAPI{todos: map[int]client.Todo{
		1: {ID: 1, Title: "Learn React Testing", Description: "Study Playwright", UserID: 1, CreatedAt: at, UpdatedAt: at},
		2: {ID: 2, Title: "Build API Tests", Completed: true, UserID: 1, CreatedAt: at, UpdatedAt: at},
	}}
}

func (f *fakeAPI) Health(ctx context.Context) error { return f.healthErr }
func (f *fakeAPI) Token() string                    { return f.token }

func (f *fakeAPI) Login(ctx context.Context, userName, password string) (*client.User, error) {
	f.lastLogin = [2]string{userName, password}
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = "tok"
	return &client.User{ID: 1, UserName: userName, Email: userName + "@example.com"}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.token = ""
	return f.logoutErr
}

func (f *fakeAPI) Me(ctx context.Context) (*client.User, error) {
	return &client.User{ID: 1, UserName: "admin", Email: "admin@example.com"}, nil
}

func (f *fakeAPI) List(ctx context.Context) ([]client.Todo, error) {
	if f.token == "" {
		return nil, client.ErrNotLoggedIn
	}
	out := make([]client.Todo, 0, len(f.todos))
	for id := 1; id <= len(f.todos)+10; id++ {
		if t, ok := f.todos[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAPI) Get(ctx context.Context, id int) (*client.Todo, error) {
	t, ok := f.todos[id]
	if !ok {
		return nil, &client.APIError{Status: http.StatusNotFound, Message: "Todo not found"}
	}
	return &t, nil
}

func (f *fakeAPI) Create(ctx context.Context, in client.TodoInput) (*client.Todo, error) {
	f.lastCreate = in
	if strings.TrimSpace(in.Title) == "" {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "Validation failed",
			Details: []common.FieldError{{Param: "title", Msg: "Title is required"}}}
	}
	t := client.Todo{ID: 3, Title: in.Title, Description: in.Description}
	f.todos[3] = t
	return &t, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int, in client.TodoUpdate) (*client.Todo, error) {
	f.lastUpdate = &in
	t := f.todos[id]
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	f.todos[id] = t
	return &t, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id int) (*client.Todo, error) {
	t, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(f.todos, id)
	return t, nil
}

func (f *fakeAPI) Toggle(ctx context.Context, id int) (*client.Todo, error) {
	t, ok := f.todos[id]
	if !ok {
		return nil, &client.APIError{Status: http.StatusNotFound, Message: "Todo not found"}
	}
	t.Completed = !t.Completed
	f.todos[id] = t
	return &t, nil
}

func newTestApp(api *fakeAPI, input string) (*App, *bytes.Buffer) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	out := &bytes.Buffer{}
	return newApp(cfg, api, strings.NewReader(input), out), out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(w io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = old })
}

func TestLoginLogout(t *testing.T) {
	stubPassword(t, "password123")
	api := newFakeAPI()
	a, out := newTestApp(api, "admin\n")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	assert.Equal(t, [2]string{"admin", "password123"}, api.lastLogin)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(admin)", a.getStatus())
	assert.Contains(t, out.String(), "Logged in as admin")

	api.logoutErr = client.ErrUnavailable
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.getStatus())
	assert.Contains(t, out.String(), "Logged out")
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "wrong")
	api := newFakeAPI()
	api.loginErr = &client.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	a, _ := newTestApp(api, "admin\n")

	err := a.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", describe(err))
	assert.Empty(t, a.getStatus())
}

func TestLogout_ServerError(t *testing.T) {
	api := newFakeAPI()
	api.token = "tok"
	api.logoutErr = errors.New("boom")
	a, _ := newTestApp(api, "")

	assert.Error(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestMe(t *testing.T) {
	a, out := newTestApp(newFakeAPI(), "")
	require.NoError(t, a.Me(context.Background()))
	assert.Equal(t, "admin <admin@example.com> (id 1)\n", out.String())
}

func TestList(t *testing.T) {
	api := newFakeAPI()
	a, out := newTestApp(api, "")
	ctx := context.Background()

	err := a.List(ctx)
	require.ErrorIs(t, err, client.ErrNotLoggedIn)
	assert.Equal(t, "please login first", describe(err))

	api.token = "tok"
	require.NoError(t, a.List(ctx))
	assert.Equal(t, "   1 [ ] Learn React Testing\n   2 [x] Build API Tests\n2 todo(s)\n", out.String())

	out.Reset()
	api.todos = map[int]client.Todo{}
	require.NoError(t, a.List(ctx))
	assert.Equal(t, "No todos\n", out.String())
}

func TestShow(t *testing.T) {
	a, out := newTestApp(newFakeAPI(), "")
	ctx := context.Background()

	require.NoError(t, a.Show(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "   1 [ ] Learn React Testing\n    Study Playwright\n    created ")

	err := a.Show(ctx, nil)
	assert.EqualError(t, err, "usage: show <id>")

	err = a.Show(ctx, []string{"abc"})
	assert.ErrorIs(t, err, errInvalidID)

	err = a.Show(ctx, []string{"99"})
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "Todo not found", describe(err))
}

func TestAdd(t *testing.T) {
	api := newFakeAPI()
	a, out := newTestApp(api, "Write docs\nfor the CLI\n")

	require.NoError(t, a.Add(context.Background()))
	assert.Equal(t, client.TodoInput{Title: "Write docs", Description: "for the CLI"}, api.lastCreate)
	assert.Contains(t, out.String(), "Created todo #3")
}

func TestAdd_Validation(t *testing.T) {
	a, _ := newTestApp(newFakeAPI(), "\n\n")

	err := a.Add(context.Background())
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, "Validation failed: Title is required", describe(err))
}

func TestEdit(t *testing.T) {
	t.Run("changes only edited fields", func(t *testing.T) {
		api := newFakeAPI()
		a, out := newTestApp(api, "\nNew description\n")

		require.NoError(t, a.Edit(context.Background(), []string{"1"}))
		require.NotNil(t, api.lastUpdate)
		assert.Nil(t, api.lastUpdate.Title)
		require.NotNil(t, api.lastUpdate.Description)
		assert.Equal(t, "New description", *api.lastUpdate.Description)
		assert.Contains(t, out.String(), "Title [Learn React Testing]")
		assert.Contains(t, out.String(), "Updated todo #1")
	})

	t.Run("nothing changed", func(t *testing.T) {
		api := newFakeAPI()
		a, out := newTestApp(api, "Learn React Testing\n\n")

		require.NoError(t, a.Edit(context.Background(), []string{"1"}))
		assert.Nil(t, api.lastUpdate)
		assert.Contains(t, out.String(), "Nothing to update")
	})

	t.Run("missing todo", func(t *testing.T) {
		a, _ := newTestApp(newFakeAPI(), "")
		assert.ErrorIs(t, a.Edit(context.Background(), []string{"42"}), client.ErrNotFound)
	})
}

func TestToggleAndDelete(t *testing.T) {
	api := newFakeAPI()
	a, out := newTestApp(api, "")
	ctx := context.Background()

	require.NoError(t, a.Toggle(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "Todo #1 is now done")
	require.NoError(t, a.Toggle(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "Todo #1 is now open")

	require.NoError(t, a.Delete(ctx, []string{"2"}))
	assert.Contains(t, out.String(), `Deleted todo #2 "Build API Tests"`)

	assert.ErrorIs(t, a.Delete(ctx, []string{"2"}), client.ErrNotFound)
	assert.EqualError(t, a.Toggle(ctx, nil), "usage: toggle <id>")
}

func TestRun_WarnsWhenServerDown(t *testing.T) {
	capturePrint(t)

	api := newFakeAPI()
	api.healthErr = client.ErrUnavailable
	a, out := newTestApp(api, "exit\n")

	a.Run(context.Background())
	assert.Contains(t, out.String(), "Todo CLI, server http://127.0.0.1:5000")
	assert.Contains(t, out.String(), "Warning: server unavailable")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "boom", describe(errors.New("boom")))
	assert.Equal(t, "server unavailable", describe(client.ErrUnavailable))
}
