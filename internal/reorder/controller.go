// Package reorder turns a drag gesture into a single store move.
//
// While a drag is in progress the controller keeps a provisional order of
// task ids for rendering. The store is only touched once, on End, and only
// if the item actually changed position.
package reorder

import (
	"slices"

	"github.com/charmbracelet/log"

	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/store"
)

// Collection is the part of the store the controller needs.
type Collection interface {
	Snapshot() store.Snapshot
	MoveItem(from, to int) error
}

// State is the gesture state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Controller is a drag state machine: Idle, or Dragging(origin, current).
type Controller struct {
	items  Collection
	logger *log.Logger

	state    State
	origin   int
	current  int
	baseline []int64
	order    []int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for gesture traces.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates an idle controller over items.
func NewController(items Collection, opts ...Option) *Controller {
	c := &Controller{
		items:  items,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Dragging reports the origin and current positions of an active drag.
func (c *Controller) Dragging() (origin, current int, ok bool) {
	if c.state != Dragging {
		return 0, 0, false
	}
	return c.origin, c.current, true
}

// Start begins dragging the item at index.
func (c *Controller) Start(index int) error {
	if c.state == Dragging {
		return errors.NewStateError("start a drag", "another drag is in progress")
	}

	ids := c.items.Snapshot().IDs()
	if index < 0 || index >= len(ids) {
		return errors.NewIndexOutOfRangeError("index", index, len(ids))
	}

	c.state = Dragging
	c.origin = index
	c.current = index
	c.baseline = ids
	c.order = slices.Clone(ids)

	c.logger.Debug("drag started", "index", index, "id", ids[index])
	return nil
}

// Hover reports the pointer over the row at index, offsetY from the top of
// a row that is height tall. The dragged item only moves once the pointer
// has crossed the hovered row's midpoint in the direction of travel, so
// hovering near an edge does not make neighbours flicker back and forth.
// It returns true when the provisional order changed.
func (c *Controller) Hover(index int, offsetY, height float64) bool {
	if c.state != Dragging || index == c.current {
		return false
	}
	if index < 0 || index >= len(c.order) {
		return false
	}

	midpoint := height / 2
	if c.current < index && offsetY < midpoint {
		return false
	}
	if c.current > index && offsetY > midpoint {
		return false
	}

	c.shift(index)
	return true
}

// Step moves the dragged item one row up (delta < 0) or down (delta > 0),
// as if the pointer had fully crossed the neighbouring row. Keyboard drags
// use it.
func (c *Controller) Step(delta int) bool {
	if c.state != Dragging || delta == 0 {
		return false
	}
	target := c.current + 1
	if delta < 0 {
		target = c.current - 1
	}
	if target < 0 || target >= len(c.order) {
		return false
	}
	c.shift(target)
	return true
}

func (c *Controller) shift(to int) {
	id := c.order[c.current]
	c.order = slices.Delete(c.order, c.current, c.current+1)
	c.order = slices.Insert(c.order, to, id)
	c.logger.Debug("drag hover", "id", id, "from", c.current, "to", to)
	c.current = to
}

// Order returns the ids in display order: the provisional order during a
// drag, the store's order otherwise.
func (c *Controller) Order() []int64 {
	if c.state == Dragging {
		return slices.Clone(c.order)
	}
	return c.items.Snapshot().IDs()
}

// End drops the dragged item. If it ended somewhere other than where it
// started, exactly one MoveItem(origin, current) is issued. The controller
// is idle afterwards regardless of outcome.
//
// If the collection changed since Start the gesture is discarded and a state
// error is returned; positions captured against the old order would move
// the wrong item.
func (c *Controller) End() (moved bool, err error) {
	if c.state != Dragging {
		return false, nil
	}
	origin, current, baseline := c.origin, c.current, c.baseline
	c.reset()

	if !slices.Equal(baseline, c.items.Snapshot().IDs()) {
		c.logger.Debug("drag discarded", "reason", "collection changed")
		return false, errors.NewStateError("drop the item", "the list is out of date")
	}
	if origin == current {
		c.logger.Debug("drag ended in place", "index", origin)
		return false, nil
	}
	if err := c.items.MoveItem(origin, current); err != nil {
		return false, err
	}
	c.logger.Debug("drag committed", "from", origin, "to", current)
	return true, nil
}

// Cancel abandons the drag without touching the store.
func (c *Controller) Cancel() {
	if c.state != Dragging {
		return
	}
	c.logger.Debug("drag cancelled", "origin", c.origin, "current", c.current)
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.origin = 0
	c.current = 0
	c.baseline = nil
	c.order = nil
}
