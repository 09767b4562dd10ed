package cli

import (
	"context"
	stderrors "errors"
)

// ErrQuit is returned by the quit command to end the shell session
var ErrQuit = stderrors.New("quit")

// HelpCommand prints the available shell commands
type HelpCommand struct {
	app *App
}

// NewHelpCommand creates a new help command handler
func NewHelpCommand(app *App) *HelpCommand {
	return &HelpCommand{app: app}
}

// Execute runs the help command
func (c *HelpCommand) Execute(ctx context.Context, args []string) error {
	c.app.printf(`Commands (positions start at 1):
  add <text>                 Add a task to the end of the list
  done <n>                   Mark task n completed
  undo <n>                   Mark task n not completed
  toggle <n>                 Flip task n between completed and not completed
  delete <n>                 Delete task n
  edit <n> <text>            Replace the text of task n
  move <from> <to>           Move a task to another position
  drag <from> <to> [cancel]  Drag a task row by row, then drop or cancel
  list                       Show all tasks
  help                       Show this help
  quit                       Leave the shell
`)
	return nil
}

// QuitCommand ends the shell session
type QuitCommand struct{}

// Execute returns ErrQuit
func (QuitCommand) Execute(ctx context.Context, args []string) error {
	return ErrQuit
}
