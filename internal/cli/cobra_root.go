package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/store"
	"tasklist/internal/ui"
	"tasklist/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	config *config.Config
	logger *log.Logger
	store  *store.Store
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, in io.Reader, out, errOut io.Writer) *RootCommand {
	root := &RootCommand{
		loader: loader,
		in:     in,
		out:    out,
		errOut: errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "tasklist",
		Short: "An ordered task list for the terminal",
		Long: `tasklist keeps a short, hand-ordered list of things to do.

Add, complete, edit and delete tasks, and reorder them by dragging, either
from a line-oriented shell or from a full-screen terminal UI with mouse
support. The list lives in memory for the length of the session.

EXAMPLES:
  tasklist                                 # Start in the configured mode (shell by default)
  tasklist shell                           # Line-oriented shell
  tasklist tui                             # Full-screen UI, drag rows with the mouse
  tasklist --max-length 80 shell           # Cap task text at 80 characters

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Config file:
    TASKLIST_CONFIG                        Path to a TOML file (default: ~/.config/tasklist/config.toml)

  Display Configuration:
    TASKLIST_TIME_FORMAT                   Created time format (default: 15:04)
    TASKLIST_DATE_FORMAT                   Created date format (default: 02 Jan 06)
    TASKLIST_DONE_MARKER                   Marker for completed tasks (default: [x])
    TASKLIST_PENDING_MARKER                Marker for pending tasks (default: [ ])
    TASKLIST_SHOW_CREATED                  Show when each task was created (default: true)

  Validation Configuration:
    TASKLIST_TEXT_MAX_LENGTH               Max task text length, 0 for none (default: 0)

  Application Configuration:
    TASKLIST_MODE                          shell or tui (default: shell)
    TASKLIST_PROMPT                        Shell prompt (default: "> ")
    TASKLIST_LOG_LEVEL                     debug, info, warn or error (default: warn)
    TASKLIST_LOG_FORMAT                    text, json or logfmt (default: text)
    TASKLIST_VERBOSE                       Verbose logging (default: false)
    TASKLIST_DEBUG                         Force debug logging when set

  Drag Configuration:
    TASKLIST_ROW_HEIGHT                    Screen lines per task in the UI (default: 2)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.config.Application.Mode == config.ModeTUI {
				return root.runTUI(cmd.Context())
			}
			return root.runShell(cmd.Context())
		},
	}

	root.cmd.SetIn(in)
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments the command parses
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Path to a TOML config file (overrides TASKLIST_CONFIG)")

	// Display configuration
	flags.String("time-format", "", "Created time format (overrides TASKLIST_TIME_FORMAT)")
	flags.String("date-format", "", "Created date format (overrides TASKLIST_DATE_FORMAT)")
	flags.String("done-marker", "", "Marker for completed tasks (overrides TASKLIST_DONE_MARKER)")
	flags.String("pending-marker", "", "Marker for pending tasks (overrides TASKLIST_PENDING_MARKER)")
	flags.Bool("show-created", true, "Show when each task was created (overrides TASKLIST_SHOW_CREATED)")

	// Validation configuration
	flags.Int("max-length", 0, "Maximum task text length, 0 for none (overrides TASKLIST_TEXT_MAX_LENGTH)")

	// Application configuration
	flags.String("mode", "", "Start mode when no subcommand is given: shell or tui (overrides TASKLIST_MODE)")
	flags.String("prompt", "", "Shell prompt (overrides TASKLIST_PROMPT)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TASKLIST_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text, json, logfmt (overrides TASKLIST_LOG_FORMAT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TASKLIST_VERBOSE)")

	// Drag configuration
	flags.Int("row-height", 0, "Screen lines per task in the UI (overrides TASKLIST_ROW_HEIGHT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Manage tasks from a line-oriented shell",
		Long: `Read commands from standard input, one per line.

Positions start at 1. Type "help" inside the shell for the command list.

Example session:
  > add Buy milk
  Task added
  > add Call mum
  Task added
  > move 2 1
  Task moved
  > list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runShell(cmd.Context())
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Manage tasks from a full-screen terminal UI",
		Long: `Open the full-screen task list.

Drag rows with the left mouse button, or press space to pick up the
selected row, move it with the arrow keys and press space again to drop.
Click a checkbox to toggle it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd.Context())
		},
	}

	r.cmd.AddCommand(shellCmd, tuiCmd)
}

// setup loads configuration and builds the session's logger and store
func (r *RootCommand) setup() error {
	if r.loader == nil {
		return fmt.Errorf("configuration loader not initialized")
	}

	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		r.loader.SetConfigPath(path)
	}

	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		var cfgErr *config.ConfigError
		if stderrors.As(err, &cfgErr) {
			return errors.WrapError(err, errors.ErrorTypeValidation, "invalid configuration: "+cfgErr.Error()).
				WithContext("field", cfgErr.Field)
		}
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	r.logger = logging.NewFromConfig(r.errOut, cfg.Application.LogLevel, cfg.Application.LogFormat, cfg.Application.Verbose)
	r.store = store.New(
		store.WithValidator(validation.NewTaskValidatorWithConfig(cfg)),
		store.WithLogger(r.logger),
	)
	r.logger.Debug("configuration loaded", "mode", cfg.Application.Mode, "row_height", cfg.Drag.RowHeight)
	return nil
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	intFlag := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	// Display configuration
	overrides.TimeFormat = stringFlag("time-format")
	overrides.DateFormat = stringFlag("date-format")
	overrides.DoneMarker = stringFlag("done-marker")
	overrides.PendingMarker = stringFlag("pending-marker")
	overrides.ShowCreated = boolFlag("show-created")

	// Validation configuration
	overrides.TaskTextMaxLength = intFlag("max-length")

	// Application configuration
	overrides.Mode = stringFlag("mode")
	overrides.Prompt = stringFlag("prompt")
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")
	overrides.Verbose = boolFlag("verbose")

	// Drag configuration
	overrides.RowHeight = intFlag("row-height")

	return overrides
}

func (r *RootCommand) runShell(ctx context.Context) error {
	app := NewApp(r.store, r.config, r.out, r.logger)
	return NewShell(app, r.in).Run(ctx)
}

func (r *RootCommand) runTUI(ctx context.Context) error {
	return ui.Run(ctx, r.store, r.config, r.logger, r.in, r.out)
}
