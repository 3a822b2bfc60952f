package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/todoapp/internal/client/client"
	"github.com/dmitrijs2005/todoapp/internal/client/config"
)

// todoAPI is the part of client.TodoClient the commands use.
type todoAPI interface {
	Health(ctx context.Context) error
	Token() string
	Login(ctx context.Context, userName, password string) (*client.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*client.User, error)
	List(ctx context.Context) ([]client.Todo, error)
	Get(ctx context.Context, id int) (*client.Todo, error)
	Create(ctx context.Context, in client.TodoInput) (*client.Todo, error)
	Update(ctx context.Context, id int, in client.TodoUpdate) (*client.Todo, error)
	Delete(ctx context.Context, id int) (*client.Todo, error)
	Toggle(ctx context.Context, id int) (*client.Todo, error)
}

type App struct {
	config   *config.Config
	api      todoAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	api := client.NewTodoClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, api, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, api todoAPI, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run greets the user, checks that the server answers and runs the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Todo CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintln(a.out, "Warning:", describe(err))
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
