package cli

import (
	"context"

	"tasklist/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: delete <n>")
	}
	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if c.app.store.Delete(task.ID) {
		c.app.logger.Info("task deleted", "id", task.ID)
		c.app.printf("Task deleted: %s\n", task.Text)
	}
	return nil
}
