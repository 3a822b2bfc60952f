package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The prompt shows statusFn(). The loop ends on EOF, "exit" or "quit".
//
//	Not logged in:  help, login, me, exit
//	Logged in:      help, (l)ist, show <id>, add, edit <id>, toggle <id>,
//	                delete <id>, me, logout, exit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("todo%s> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			cmd, args := parts[0], parts[1:]
			if cmd == "exit" || cmd == "quit" {
				printlnFn("Bye!")
				return
			}
			if err := dispatch(ctx, a, cmd, args); err != nil {
				printlnFn("Error:", describe(err))
			}
		}

		if errors.Is(readErr, io.EOF) {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: (l)ist, show <id>, add, edit <id>, toggle <id>, delete <id>, me, logout, exit")
		} else {
			printlnFn("Available commands: login, me, exit")
		}
		return nil
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "l", "list":
		return a.List(ctx)
	case "show":
		return a.Show(ctx, args)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "toggle":
		return a.Toggle(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
