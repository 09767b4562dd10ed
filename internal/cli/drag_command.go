package cli

import (
	"context"
	"strings"

	"tasklist/internal/errors"
)

// DragCommand replays a drag gesture through the reorder controller: the
// item at <from> is picked up and carried row by row to <to>, then dropped,
// or abandoned when the last argument is "cancel".
type DragCommand struct {
	app *App
}

// NewDragCommand creates a new drag command handler
func NewDragCommand(app *App) *DragCommand {
	return &DragCommand{app: app}
}

// Execute runs the drag command
func (c *DragCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.NewInvalidInputError("arguments", args, "usage: drag <from> <to> [cancel]")
	}
	cancel := false
	if len(args) == 3 {
		if !strings.EqualFold(args[2], "cancel") {
			return errors.NewInvalidInputError("arguments", args, "usage: drag <from> <to> [cancel]")
		}
		cancel = true
	}

	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	drag := c.app.drag
	if err := drag.Start(from); err != nil {
		return err
	}

	height := float64(c.app.config.Drag.RowHeight)
	for _, current, _ := drag.Dragging(); current != to; _, current, _ = drag.Dragging() {
		if err := ctx.Err(); err != nil {
			drag.Cancel()
			return err
		}
		next, offset := current+1, height
		if to < current {
			next, offset = current-1, 0
		}
		if !drag.Hover(next, offset, height) {
			// to is past either end of the list
			drag.Cancel()
			return errors.NewIndexOutOfRangeError("to", to, len(drag.Order()))
		}
	}

	if cancel {
		drag.Cancel()
		c.app.printf("Drag cancelled\n")
		return nil
	}

	moved, err := drag.End()
	if err != nil {
		return err
	}
	if moved {
		c.app.printf("Task moved\n")
	}
	return nil
}
