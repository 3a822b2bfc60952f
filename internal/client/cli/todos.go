package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todoapp/internal/client/client"
)

func (a *App) List(ctx context.Context) error {
	todos, err := a.api.List(ctx)
	if err != nil {
		return err
	}

	if len(todos) == 0 {
		fmt.Fprintln(a.out, "No todos")
		return nil
	}
	for _, t := range todos {
		fmt.Fprintln(a.out, todoLine(t))
	}
	fmt.Fprintf(a.out, "%d todo(s)\n", len(todos))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID("show", args)
	if err != nil {
		return err
	}

	t, err := a.api.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printTodo(*t)
	return nil
}

// Add prompts for a title and an optional description and creates a todo.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	t, err := a.api.Create(ctx, client.TodoInput{Title: title, Description: description})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created todo #%d\n", t.ID)
	return nil
}

// Edit shows the current values and sends only the fields the user changed.
// An empty answer keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID("edit", args)
	if err != nil {
		return err
	}

	cur, err := a.api.Get(ctx, id)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, fmt.Sprintf("Description [%s]", cur.Description), a.out)
	if err != nil {
		return err
	}

	var upd client.TodoUpdate
	if title != "" && title != cur.Title {
		upd.Title = &title
	}
	if description != "" && description != cur.Description {
		upd.Description = &description
	}
	if upd.Title == nil && upd.Description == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	t, err := a.api.Update(ctx, id, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated todo #%d\n", t.ID)
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}

	t, err := a.api.Toggle(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Todo #%d is now %s\n", t.ID, stateName(t.Completed))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}

	t, err := a.api.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted todo #%d %q\n", t.ID, t.Title)
	return nil
}

func (a *App) printTodo(t client.Todo) {
	fmt.Fprintln(a.out, todoLine(t))
	if t.Description != "" {
		fmt.Fprintln(a.out, "    "+t.Description)
	}
	fmt.Fprintf(a.out, "    created %s, updated %s\n",
		t.CreatedAt.Local().Format(timeLayout), t.UpdatedAt.Local().Format(timeLayout))
}
