package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/errors"
)

// Shell reads command lines and dispatches them one at a time
type Shell struct {
	app    *App
	in     io.Reader
	prompt string
}

// NewShell creates a shell reading commands from in
func NewShell(app *App, in io.Reader) *Shell {
	return &Shell{
		app:    app,
		in:     in,
		prompt: app.config.Application.Prompt,
	}
}

// Run processes lines until quit, end of input or context cancellation.
// Command errors are reported and the loop continues. Lines are not limited
// in length.
func (s *Shell) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.app.printf("%s", s.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !stderrors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if err != nil && line == "" {
			s.app.printf("\n")
			return nil
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		err = s.app.Run(ctx, args)
		if stderrors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			s.report(args[0], err)
		}
	}
}

// report logs rejected input at debug level and anything else as a warning,
// then prints the user-facing message.
func (s *Shell) report(command string, err error) {
	eh := s.app.errors
	fields := []interface{}{"command", command, "code", eh.GetErrorCode(err), "err", err}
	if appErr, ok := errors.AsAppError(err); ok {
		if field, ok := appErr.GetContext("field"); ok {
			fields = append(fields, "field", field)
		}
	}

	switch {
	case eh.IsValidationError(err), eh.IsNotFoundError(err), eh.IsIndexError(err):
		s.app.logger.Debug("command rejected", fields...)
	default:
		s.app.logger.Warn("command failed", fields...)
	}
	s.app.printf("Error: %v\n", eh.Handle(strings.ToLower(command), err))
}
