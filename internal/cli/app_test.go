package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/store"
)

var testTime = time.Date(2024, 5, 4, 9, 30, 0, 0, time.UTC)

func setupTestApp(t *testing.T, texts ...string) (*App, *bytes.Buffer) {
	t.Helper()
	s := store.New(store.WithClock(domain.ClockFunc(func() time.Time { return testTime })))
	for _, text := range texts {
		_, ok := s.AddTodo(text)
		require.True(t, ok)
	}
	var out bytes.Buffer
	return NewApp(s, config.NewConfig(), &out, nil), &out
}

func storeTexts(s *store.Store) []string {
	var out []string
	for _, task := range s.Snapshot().All() {
		out = append(out, task.Text)
	}
	return out
}

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name          string
		initial       []string
		args          []string
		expectErrType *errors.ErrorType
		expectedOut   string
		expectedTexts []string
	}{
		{
			name:          "add joins arguments",
			args:          []string{"add", "Buy", "milk"},
			expectedOut:   "Task added\n",
			expectedTexts: []string{"Buy milk"},
		},
		{
			name:        "add without text does nothing",
			args:        []string{"add"},
			expectedOut: "Nothing to add\n",
		},
		{
			name:          "command names are case insensitive",
			args:          []string{"ADD", "x"},
			expectedOut:   "Task added\n",
			expectedTexts: []string{"x"},
		},
		{
			name:          "delete by position",
			initial:       []string{"A", "B", "C"},
			args:          []string{"delete", "2"},
			expectedOut:   "Task deleted: B\n",
			expectedTexts: []string{"A", "C"},
		},
		{
			name:          "delete past the end",
			initial:       []string{"A"},
			args:          []string{"delete", "2"},
			expectErrType: ptr(errors.ErrorTypeIndexOutOfRange),
			expectedTexts: []string{"A"},
		},
		{
			name:          "edit replaces text",
			initial:       []string{"A"},
			args:          []string{"edit", "1", "New", "text"},
			expectedOut:   "Task updated: New text\n",
			expectedTexts: []string{"New text"},
		},
		{
			name:          "edit without text is rejected",
			initial:       []string{"A"},
			args:          []string{"edit", "1"},
			expectErrType: ptr(errors.ErrorTypeInvalidInput),
			expectedTexts: []string{"A"},
		},
		{
			name:          "move forward",
			initial:       []string{"A", "B", "C", "D"},
			args:          []string{"move", "1", "3"},
			expectedOut:   "Task moved\n",
			expectedTexts: []string{"B", "C", "A", "D"},
		},
		{
			name:          "move to the same position is silent",
			initial:       []string{"A", "B"},
			args:          []string{"move", "2", "2"},
			expectedTexts: []string{"A", "B"},
		},
		{
			name:          "move out of range",
			initial:       []string{"A", "B"},
			args:          []string{"move", "1", "99"},
			expectErrType: ptr(errors.ErrorTypeIndexOutOfRange),
			expectedTexts: []string{"A", "B"},
		},
		{
			name:          "move with a non-numeric position",
			initial:       []string{"A", "B"},
			args:          []string{"move", "first", "2"},
			expectErrType: ptr(errors.ErrorTypeInvalidInput),
			expectedTexts: []string{"A", "B"},
		},
		{
			name:          "unknown command",
			args:          []string{"frobnicate"},
			expectErrType: ptr(errors.ErrorTypeInvalidInput),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := setupTestApp(t, tt.initial...)

			err := app.Run(context.Background(), tt.args)

			if tt.expectErrType != nil {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, *tt.expectErrType), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedOut, out.String())
			assert.Equal(t, tt.expectedTexts, storeTexts(app.Store()))
		})
	}
}

func TestApp_RunWithoutArgs(t *testing.T) {
	app, _ := setupTestApp(t)

	err := app.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")
}

func TestApp_DoneUndoToggle(t *testing.T) {
	app, out := setupTestApp(t, "A", "B")
	ctx := context.Background()
	s := app.Store()

	require.NoError(t, app.Run(ctx, []string{"done", "1"}))
	assert.True(t, s.Snapshot().At(0).Done)
	require.NoError(t, app.Run(ctx, []string{"done", "1"}))

	require.NoError(t, app.Run(ctx, []string{"undo", "1"}))
	assert.False(t, s.Snapshot().At(0).Done)
	require.NoError(t, app.Run(ctx, []string{"undo", "1"}))

	require.NoError(t, app.Run(ctx, []string{"toggle", "2"}))
	assert.True(t, s.Snapshot().At(1).Done)
	require.NoError(t, app.Run(ctx, []string{"toggle", "2"}))
	assert.False(t, s.Snapshot().At(1).Done)

	assert.Equal(t, "Task completed: A\n"+
		"Already completed: A\n"+
		"Task reopened: A\n"+
		"Not completed yet: A\n"+
		"Task completed: B\n"+
		"Task reopened: B\n", out.String())
}

func TestApp_DoneRequiresOnePosition(t *testing.T) {
	app, _ := setupTestApp(t, "A")

	for _, name := range []string{"done", "undo", "toggle", "delete"} {
		err := app.Run(context.Background(), []string{name})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput), name)

		err = app.Run(context.Background(), []string{name, "0"})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeIndexOutOfRange), name)
	}
}

func TestApp_List(t *testing.T) {
	app, out := setupTestApp(t, "Buy milk", "Call mum")
	app.Store().Complete(app.Store().Snapshot().At(1).ID)

	require.NoError(t, app.Run(context.Background(), []string{"list"}))

	assert.Equal(t, "1. [ ] Buy milk  (09:30, 04 May 24)\n"+
		"2. [x] Call mum  (09:30, 04 May 24)\n"+
		"1 / 2 completed\n", out.String())
}

func TestApp_ListEmpty(t *testing.T) {
	app, out := setupTestApp(t)

	require.NoError(t, app.Run(context.Background(), []string{"list"}))

	assert.Equal(t, "No tasks yet\n", out.String())
}

func TestApp_ListWithoutCreated(t *testing.T) {
	app, out := setupTestApp(t, "A")
	app.config.Display.ShowCreated = false

	require.NoError(t, app.Run(context.Background(), []string{"list"}))

	assert.Equal(t, "1. [ ] A\n0 / 1 completed\n", out.String())
}

func TestApp_Drag(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectErrType *errors.ErrorType
		expectedOut   string
		expectedTexts []string
	}{
		{
			name:          "drag down",
			args:          []string{"drag", "2", "4"},
			expectedOut:   "Task moved\n",
			expectedTexts: []string{"A", "C", "D", "B"},
		},
		{
			name:          "drag up",
			args:          []string{"drag", "4", "1"},
			expectedOut:   "Task moved\n",
			expectedTexts: []string{"D", "A", "B", "C"},
		},
		{
			name:          "drag in place",
			args:          []string{"drag", "2", "2"},
			expectedTexts: []string{"A", "B", "C", "D"},
		},
		{
			name:          "drag cancelled",
			args:          []string{"drag", "1", "3", "cancel"},
			expectedOut:   "Drag cancelled\n",
			expectedTexts: []string{"A", "B", "C", "D"},
		},
		{
			name:          "drag past the end",
			args:          []string{"drag", "1", "9"},
			expectErrType: ptr(errors.ErrorTypeIndexOutOfRange),
			expectedTexts: []string{"A", "B", "C", "D"},
		},
		{
			name:          "drag from outside the list",
			args:          []string{"drag", "9", "1"},
			expectErrType: ptr(errors.ErrorTypeIndexOutOfRange),
			expectedTexts: []string{"A", "B", "C", "D"},
		},
		{
			name:          "bad trailing argument",
			args:          []string{"drag", "1", "2", "drop"},
			expectErrType: ptr(errors.ErrorTypeInvalidInput),
			expectedTexts: []string{"A", "B", "C", "D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := setupTestApp(t, "A", "B", "C", "D")

			err := app.Run(context.Background(), tt.args)

			if tt.expectErrType != nil {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, *tt.expectErrType), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedOut, out.String())
			assert.Equal(t, tt.expectedTexts, storeTexts(app.Store()))

			// the controller is always left idle
			assert.NoError(t, app.drag.Start(0))
			app.drag.Cancel()
		})
	}
}

func TestFormatTask(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Display.DoneMarker = "✓"
	cfg.Display.PendingMarker = "·"
	cfg.Display.TimeFormat = "3:04PM"
	cfg.Display.DateFormat = "2006-01-02"

	task := domain.NewTask(1, "Ship it", testTime)
	assert.Equal(t, "3. · Ship it  (9:30AM, 2024-05-04)", formatTask(cfg, 3, task))

	task.Done = true
	assert.Equal(t, "3. ✓ Ship it  (9:30AM, 2024-05-04)", formatTask(cfg, 3, task))
}

func ptr[T any](v T) *T { return &v }
