package cli

import (
	"context"

	"tasklist/internal/errors"
)

// DoneCommand marks a task as completed
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: done <n>")
	}
	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if c.app.store.Complete(task.ID) {
		c.app.printf("Task completed: %s\n", task.Text)
	} else {
		c.app.printf("Already completed: %s\n", task.Text)
	}
	return nil
}

// UndoCommand marks a completed task as pending again
type UndoCommand struct {
	app *App
}

// NewUndoCommand creates a new undo command handler
func NewUndoCommand(app *App) *UndoCommand {
	return &UndoCommand{app: app}
}

// Execute runs the undo command
func (c *UndoCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: undo <n>")
	}
	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if c.app.store.Incomplete(task.ID) {
		c.app.printf("Task reopened: %s\n", task.Text)
	} else {
		c.app.printf("Not completed yet: %s\n", task.Text)
	}
	return nil
}

// ToggleCommand flips a task between done and pending, like its checkbox
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute runs the toggle command
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: toggle <n>")
	}
	task, err := c.app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if task.Done {
		c.app.store.Incomplete(task.ID)
		c.app.printf("Task reopened: %s\n", task.Text)
		return nil
	}
	c.app.store.Complete(task.ID)
	c.app.printf("Task completed: %s\n", task.Text)
	return nil
}
