package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Me(ctx context.Context) error                    { return f.record("me") }
func (f *fakeExec) List(ctx context.Context) error                  { return f.record("list") }
func (f *fakeExec) Show(ctx context.Context, args []string) error   { return f.record("show", args...) }
func (f *fakeExec) Add(ctx context.Context) error                   { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, args []string) error   { return f.record("edit", args...) }
func (f *fakeExec) Toggle(ctx context.Context, args []string) error { return f.record("toggle", args...) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error { return f.record("delete", args...) }

// capturePrint swaps printlnFn for a recorder.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	lines := capturePrint(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"list",
		"l",
		"show 3",
		"add",
		"edit 3",
		"toggle 3",
		"delete 3",
		"me",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(admin)" }, rdr(input))

	assert.Equal(t, []string{
		"login", "list", "list", "show 3", "add", "edit 3", "toggle 3", "delete 3", "me", "logout",
	}, exec.calls)

	assert.Contains(t, *lines, "todo(admin)> ")
	assert.Contains(t, *lines, "Available commands: login, me, exit")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list\nme"))

	assert.Equal(t, []string{"list", "me"}, exec.calls)
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list\nquit\n"))

	assert.Contains(t, *lines, "Error: boom")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}
