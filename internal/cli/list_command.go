package cli

import (
	"context"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	snap := c.app.store.Snapshot()
	if snap.Len() == 0 {
		c.app.printf("No tasks yet\n")
		return nil
	}

	done := 0
	for i, task := range snap.All() {
		if task.Done {
			done++
		}
		c.app.printf("%s\n", formatTask(c.app.config, i+1, task))
	}
	c.app.printf("%d / %d completed\n", done, snap.Len())
	return nil
}
