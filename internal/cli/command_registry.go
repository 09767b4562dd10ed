package cli

import (
	"context"
	"sort"

	"tasklist/internal/errors"
)

// Command represents a shell command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("add", NewAddCommand(app))
	registry.Register("done", NewDoneCommand(app))
	registry.Register("undo", NewUndoCommand(app))
	registry.Register("toggle", NewToggleCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("move", NewMoveCommand(app))
	registry.Register("drag", NewDragCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("help", NewHelpCommand(app))
	registry.Register("quit", QuitCommand{})
	registry.Register("exit", QuitCommand{})

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command, try \"help\"")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in alphabetical order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the shell
func (r *CommandRegistry) GetUsage() string {
	return "usage: add <text> | done <n> | undo <n> | toggle <n> | delete <n> | edit <n> <text> | move <from> <to> | drag <from> <to> [cancel] | list | help | quit"
}
