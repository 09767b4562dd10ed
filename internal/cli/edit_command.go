package cli

import (
	"context"
	"strconv"
	"strings"

	"tasklist/internal/errors"
)

// EditCommand replaces a task's text
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: edit <n> <text>")
	}
	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if err := c.app.store.EditText(task.ID, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	updated, ok := c.app.store.Get(task.ID)
	if !ok {
		return errors.NewNotFoundError("task", strconv.FormatInt(task.ID, 10))
	}
	c.app.printf("Task updated: %s\n", updated.Text)
	return nil
}
