package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoapp/internal/client/client"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.userName = u.UserName
	fmt.Fprintf(a.out, "Logged in as %s\n", u.UserName)
	return nil
}

// Logout ends the session. The local token is dropped even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.userName = ""
	if err != nil && !errors.Is(err, client.ErrUnavailable) {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.UserName, u.Email, u.ID)
	return nil
}
