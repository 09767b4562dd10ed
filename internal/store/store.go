// Package store holds the ordered task collection. It is the only owner of
// task identity, order and state; callers receive copies and mutate through
// the Store's methods, addressing tasks by id.
package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/validation"
)

// Listener is called after every committed change. It carries no payload;
// listeners re-read through Snapshot.
type Listener func()

type subscription struct {
	id int
	fn Listener
}

// Store is an ordered, observable task collection.
//
// Every public mutation is applied in full before any listener runs, and
// fires exactly one notification when it changed something and none when it
// was a no-op. Listeners run synchronously in subscription order.
type Store struct {
	mu        sync.Mutex
	tasks     []domain.Task
	clock     domain.Clock
	ids       domain.IDSource
	validator *validation.TaskValidator
	logger    *log.Logger

	subs    []subscription
	nextSub int

	// lastID is the highest id handed out; ids are never reused.
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of creation timestamps.
func WithClock(clock domain.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDSource sets the source of task ids.
func WithIDSource(ids domain.IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// WithValidator replaces the default (unlimited length) text validator.
func WithValidator(v *validation.TaskValidator) Option {
	return func(s *Store) { s.validator = v }
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:     domain.SystemClock(),
		ids:       domain.NewSequenceIDs(0),
		validator: validation.NewTaskValidator(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn and returns a function that removes it. Removing a
// listener while a notification is in flight does not affect that round.
// A nil fn is ignored.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
		})
	}
}

// AddTodo appends a new pending task. Text is trimmed; blank (or over-long)
// text is not an error here, it simply creates nothing and returns false.
// An id from the id source that is not positive or was already issued is
// refused the same way and logged.
func (s *Store) AddTodo(text string) (domain.Task, bool) {
	clean, err := s.validator.GetValidTaskText(text)
	if err != nil {
		s.logger.Debug("add ignored", "reason", err)
		return domain.Task{}, false
	}

	s.mu.Lock()
	id := s.ids.NextID()
	if err := s.checkID(id); err != nil {
		s.mu.Unlock()
		s.logger.Error("add refused", "code", errors.GetErrorCode(err), "err", err)
		return domain.Task{}, false
	}
	task := domain.NewTask(id, clean, s.clock.Now())
	s.tasks = append(s.tasks, task)
	s.lastID = id
	pos := len(s.tasks) - 1
	s.mu.Unlock()

	s.logger.Debug("task added", "id", task.ID, "position", pos)
	s.notify()
	return task, true
}

// Complete marks the task done. Completing a done or missing task is a no-op.
func (s *Store) Complete(id int64) bool {
	return s.setDone(id, true)
}

// Incomplete marks the task pending. Same no-op rules as Complete.
func (s *Store) Incomplete(id int64) bool {
	return s.setDone(id, false)
}

func (s *Store) setDone(id int64, done bool) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.tasks[i].Done == done {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Done = done
	s.mu.Unlock()

	s.logger.Debug("task done changed", "id", id, "done", done)
	s.notify()
	return true
}

// Delete removes the task. Deleting a task that is already gone is a no-op.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.mu.Unlock()

	s.logger.Debug("task deleted", "id", id, "position", i)
	s.notify()
	return true
}

// EditText replaces the task's text. Blank (or over-long) text is rejected
// with an invalid input error and the previous text is kept. Setting the same text
// succeeds without a notification.
func (s *Store) EditText(id int64, text string) error {
	clean, err := s.validator.GetValidTaskText(text)
	if err != nil {
		reason := "text is required"
		if ve, ok := err.(*validation.ValidationError); ok {
			reason = ve.GetUserFriendlyMessage()
		}
		return errors.NewInvalidInputError("text", text, reason).
			WithContext("id", id).
			WithContext("validation", err)
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	if s.tasks[i].Text == clean {
		s.mu.Unlock()
		return nil
	}
	s.tasks[i].Text = clean
	s.mu.Unlock()

	s.logger.Debug("task edited", "id", id)
	s.notify()
	return nil
}

// MoveItem removes the task at from and reinserts it at to, shifting the
// tasks in between. Both indices must lie in [0, Len()); otherwise an
// index-out-of-range error is returned and the order is untouched.
func (s *Store) MoveItem(from, to int) error {
	s.mu.Lock()
	n := len(s.tasks)
	if !s.validator.IsValidIndex(from, n) {
		s.mu.Unlock()
		return errors.NewIndexOutOfRangeError("from", from, n)
	}
	if !s.validator.IsValidIndex(to, n) {
		s.mu.Unlock()
		return errors.NewIndexOutOfRangeError("to", to, n)
	}
	if from == to {
		s.mu.Unlock()
		return nil
	}
	task := s.tasks[from]
	s.tasks = slices.Delete(s.tasks, from, from+1)
	s.tasks = slices.Insert(s.tasks, to, task)
	s.mu.Unlock()

	s.logger.Debug("task moved", "id", task.ID, "from", from, "to", to)
	s.notify()
	return nil
}

// Snapshot returns an immutable copy of the current order.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{tasks: slices.Clone(s.tasks)}
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int64) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

// IndexOf returns the position of the task, or -1.
func (s *Store) IndexOf(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Counts returns the total number of tasks and how many are done.
func (s *Store) Counts() (total, done int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Done {
			done++
		}
	}
	return len(s.tasks), done
}

// checkID rejects ids that are not positive or not newer than every id
// already issued. Must be called with mu held.
func (s *Store) checkID(id int64) error {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("id source returned an unusable id", err).
			WithContext("id", id)
	}
	if id <= s.lastID {
		return errors.NewStateError("add a task", fmt.Sprintf("id %d is not newer than %d", id, s.lastID)).
			WithContext("id", id).
			WithContext("last_id", s.lastID)
	}
	return nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

// notify runs outside the lock so listeners can read the store.
func (s *Store) notify() {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}
