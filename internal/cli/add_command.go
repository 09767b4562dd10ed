package cli

import (
	"context"
	"strings"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command. Blank text adds nothing and is not an error.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")

	task, ok := c.app.store.AddTodo(text)
	if !ok {
		c.app.printf("Nothing to add\n")
		return nil
	}

	c.app.logger.Info("task added", "id", task.ID)
	c.app.printf("Task added\n")
	return nil
}
