package reorder

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/errors"
	"tasklist/internal/store"
)

type moveCall struct {
	from, to int
}

// recordingCollection forwards to a real store and records MoveItem calls.
type recordingCollection struct {
	*store.Store
	moves []moveCall
}

func (r *recordingCollection) MoveItem(from, to int) error {
	r.moves = append(r.moves, moveCall{from, to})
	return r.Store.MoveItem(from, to)
}

func setupController(t *testing.T, texts ...string) (*Controller, *recordingCollection, []int64) {
	t.Helper()
	s := store.New()
	ids := make([]int64, 0, len(texts))
	for _, text := range texts {
		task, ok := s.AddTodo(text)
		require.True(t, ok)
		ids = append(ids, task.ID)
	}
	coll := &recordingCollection{Store: s}
	return NewController(coll), coll, ids
}

func TestController_StartsIdle(t *testing.T) {
	c, _, ids := setupController(t, "A", "B")

	assert.Equal(t, Idle, c.State())
	_, _, ok := c.Dragging()
	assert.False(t, ok)
	assert.Equal(t, ids, c.Order())
}

func TestController_Start(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		expectError bool
	}{
		{name: "first item", index: 0},
		{name: "last item", index: 3},
		{name: "negative index", index: -1, expectError: true},
		{name: "past end", index: 4, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := setupController(t, "A", "B", "C", "D")

			err := c.Start(tt.index)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeIndexOutOfRange))
				assert.Equal(t, Idle, c.State())
				return
			}
			require.NoError(t, err)
			origin, current, ok := c.Dragging()
			assert.True(t, ok)
			assert.Equal(t, tt.index, origin)
			assert.Equal(t, tt.index, current)
		})
	}
}

func TestController_StartWhileDragging(t *testing.T) {
	c, _, _ := setupController(t, "A", "B")
	require.NoError(t, c.Start(0))

	err := c.Start(1)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))
	origin, _, _ := c.Dragging()
	assert.Equal(t, 0, origin, "original gesture is kept")
}

func TestController_HoverHysteresis(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		hoverIndex  int
		offsetY     float64
		expectMoved bool
	}{
		{name: "down above midpoint", start: 1, hoverIndex: 2, offsetY: 10, expectMoved: false},
		{name: "down at midpoint", start: 1, hoverIndex: 2, offsetY: 20, expectMoved: true},
		{name: "down below midpoint", start: 1, hoverIndex: 2, offsetY: 35, expectMoved: true},
		{name: "up below midpoint", start: 2, hoverIndex: 1, offsetY: 30, expectMoved: false},
		{name: "up at midpoint", start: 2, hoverIndex: 1, offsetY: 20, expectMoved: true},
		{name: "up above midpoint", start: 2, hoverIndex: 1, offsetY: 5, expectMoved: true},
		{name: "same row", start: 1, hoverIndex: 1, offsetY: 40, expectMoved: false},
		{name: "out of range", start: 1, hoverIndex: 9, offsetY: 40, expectMoved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, coll, _ := setupController(t, "A", "B", "C", "D")
			require.NoError(t, c.Start(tt.start))
			before := c.Order()

			moved := c.Hover(tt.hoverIndex, tt.offsetY, 40)

			assert.Equal(t, tt.expectMoved, moved)
			_, current, _ := c.Dragging()
			if tt.expectMoved {
				assert.Equal(t, tt.hoverIndex, current)
				assert.NotEqual(t, before, c.Order())
			} else {
				assert.Equal(t, tt.start, current)
				assert.Equal(t, before, c.Order())
			}
			assert.Empty(t, coll.moves, "hover never touches the store")
		})
	}
}

func TestController_HoverWhileIdle(t *testing.T) {
	c, _, ids := setupController(t, "A", "B")

	assert.False(t, c.Hover(1, 40, 40))
	assert.Equal(t, ids, c.Order())
}

func TestController_ProvisionalOrder(t *testing.T) {
	c, coll, ids := setupController(t, "A", "B", "C", "D")
	require.NoError(t, c.Start(1))

	require.True(t, c.Hover(2, 40, 40))
	require.True(t, c.Hover(3, 40, 40))

	assert.Equal(t, []int64{ids[0], ids[2], ids[3], ids[1]}, c.Order())
	assert.Equal(t, ids, coll.Snapshot().IDs(), "store order untouched during drag")
}

func TestController_DragCommitsOneMove(t *testing.T) {
	c, coll, ids := setupController(t, "A", "B", "C", "D")
	notifications := 0
	coll.Subscribe(func() { notifications++ })

	require.NoError(t, c.Start(1))
	require.True(t, c.Hover(2, 40, 40))
	require.True(t, c.Hover(3, 40, 40))
	moved, err := c.End()

	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []moveCall{{1, 3}}, coll.moves)
	assert.Equal(t, []int64{ids[0], ids[2], ids[3], ids[1]}, coll.Snapshot().IDs())
	assert.Equal(t, 1, notifications)
	assert.Equal(t, Idle, c.State())
}

func TestController_DragBackToOriginIssuesNoMove(t *testing.T) {
	c, coll, ids := setupController(t, "A", "B", "C")

	require.NoError(t, c.Start(0))
	require.True(t, c.Hover(2, 40, 40))
	require.True(t, c.Hover(0, 0, 40))
	moved, err := c.End()

	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, coll.moves)
	assert.Equal(t, ids, coll.Snapshot().IDs())
}

func TestController_Cancel(t *testing.T) {
	c, coll, ids := setupController(t, "A", "B", "C", "D")

	require.NoError(t, c.Start(1))
	require.True(t, c.Hover(3, 40, 40))
	c.Cancel()

	assert.Equal(t, Idle, c.State())
	assert.Empty(t, coll.moves)
	assert.Equal(t, ids, c.Order())

	moved, err := c.End()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, coll.moves, "end after cancel is a no-op")
}

func TestController_EndWhileIdle(t *testing.T) {
	c, coll, _ := setupController(t, "A")

	moved, err := c.End()

	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, coll.moves)
}

func TestController_Step(t *testing.T) {
	c, coll, ids := setupController(t, "A", "B", "C")
	require.NoError(t, c.Start(0))

	assert.False(t, c.Step(-1), "cannot step above the top")
	assert.True(t, c.Step(1))
	assert.True(t, c.Step(1))
	assert.False(t, c.Step(1), "cannot step past the bottom")
	assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, c.Order())

	moved, err := c.End()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []moveCall{{0, 2}}, coll.moves)
}

func TestController_StaleGesture(t *testing.T) {
	c, coll, _ := setupController(t, "A", "B", "C", "D")
	snapBefore := coll.Snapshot()

	require.NoError(t, c.Start(0))
	require.True(t, c.Hover(2, 40, 40))
	coll.Delete(snapBefore.At(3).ID)

	moved, err := c.End()

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))
	assert.False(t, moved)
	assert.Empty(t, coll.moves)
	assert.Equal(t, Idle, c.State())
}

func TestController_StartAfterEnd(t *testing.T) {
	c, _, _ := setupController(t, "A", "B")

	require.NoError(t, c.Start(0))
	_, err := c.End()
	require.NoError(t, err)

	assert.NoError(t, c.Start(1))
}

func TestController_Logs(t *testing.T) {
	var buf bytes.Buffer
	s := store.New()
	s.AddTodo("A")
	s.AddTodo("B")
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	c := NewController(s, WithLogger(logger))

	require.NoError(t, c.Start(0))
	c.Hover(1, 1, 1)
	_, err := c.End()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "drag started")
	assert.Contains(t, buf.String(), "drag committed")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "unknown", State(7).String())
}
