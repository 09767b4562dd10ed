package cli

import (
	"context"

	"tasklist/internal/errors"
)

// MoveCommand moves a task from one position to another
type MoveCommand struct {
	app *App
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(app *App) *MoveCommand {
	return &MoveCommand{app: app}
}

// Execute runs the move command. Positions are 1-based.
func (c *MoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: move <from> <to>")
	}
	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	if err := c.app.store.MoveItem(from, to); err != nil {
		return err
	}
	if from != to {
		c.app.printf("Task moved\n")
	}
	return nil
}
