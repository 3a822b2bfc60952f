package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todoapp/internal/client/client"
)

const timeLayout = "2006-01-02 15:04"

var errInvalidID = errors.New("todo id must be a number")

type usageError struct {
	cmd string
}

func (e usageError) Error() string {
	return fmt.Sprintf("usage: %s <id>", e.cmd)
}

func parseID(cmd string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, usageError{cmd: cmd}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

func todoLine(t client.Todo) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("%4d [%s] %s", t.ID, mark, t.Title)
}

func stateName(completed bool) string {
	if completed {
		return "done"
	}
	return "open"
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please login first"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Details) == 0 {
			return apiErr.Message
		}
		msgs := make([]string, 0, len(apiErr.Details))
		for _, d := range apiErr.Details {
			msgs = append(msgs, d.Msg)
		}
		return apiErr.Message + ": " + strings.Join(msgs, "; ")
	}
	return err.Error()
}
