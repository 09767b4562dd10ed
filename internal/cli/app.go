package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/reorder"
	"tasklist/internal/store"
)

// App represents the task list shell application
type App struct {
	store    *store.Store
	drag     *reorder.Controller
	config   *config.Config
	logger   *log.Logger
	out      io.Writer
	registry *CommandRegistry
	errors   *ErrorHandler
}

// NewApp creates a new shell application over the given store
func NewApp(s *store.Store, cfg *config.Config, out io.Writer, logger *log.Logger) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	app := &App{
		store:  s,
		drag:   reorder.NewController(s, reorder.WithLogger(logger)),
		config: cfg,
		logger: logger,
		out:    out,
		errors: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes a single shell command line split into arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := strings.ToLower(args[0])
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

// Store returns the store the application mutates
func (a *App) Store() *store.Store {
	return a.store
}

// printf writes formatted output to the application's writer
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// parsePosition converts a 1-based position argument into a 0-based index.
// Range checks are left to the caller.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewInvalidInputError("position", arg, "position must be a number")
	}
	return n - 1, nil
}

// resolveTask looks up the task shown at a 1-based position
func (a *App) resolveTask(arg string) (domain.Task, error) {
	index, err := parsePosition(arg)
	if err != nil {
		return domain.Task{}, err
	}
	snap := a.store.Snapshot()
	if index < 0 || index >= snap.Len() {
		return domain.Task{}, errors.NewIndexOutOfRangeError("position", index, snap.Len())
	}
	return snap.At(index), nil
}

// formatTask renders a task the way list shows it
func formatTask(cfg *config.Config, position int, task domain.Task) string {
	marker := cfg.Display.PendingMarker
	if task.Done {
		marker = cfg.Display.DoneMarker
	}
	line := fmt.Sprintf("%d. %s %s", position, marker, task.Text)
	if cfg.Display.ShowCreated && !task.CreatedAt.IsZero() {
		line += fmt.Sprintf("  (%s, %s)",
			task.CreatedAt.Format(cfg.Display.TimeFormat),
			task.CreatedAt.Format(cfg.Display.DateFormat))
	}
	return line
}
