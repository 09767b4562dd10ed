package store

import (
	"iter"
	"slices"

	"tasklist/internal/domain"
)

// Snapshot is a read-only view of the task order at one point in time.
// Later store mutations do not show through it.
type Snapshot struct {
	tasks []domain.Task
}

// Len returns the number of tasks.
func (s Snapshot) Len() int {
	return len(s.tasks)
}

// At returns the task at position i. It panics if i is out of range, like
// slice indexing.
func (s Snapshot) At(i int) domain.Task {
	return s.tasks[i]
}

// All yields position and task in order. It can be ranged over any number
// of times.
func (s Snapshot) All() iter.Seq2[int, domain.Task] {
	return func(yield func(int, domain.Task) bool) {
		for i, t := range s.tasks {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Tasks returns a copy of the tasks in order.
func (s Snapshot) Tasks() []domain.Task {
	return slices.Clone(s.tasks)
}

// IDs returns the task ids in order.
func (s Snapshot) IDs() []int64 {
	ids := make([]int64, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Find returns the task with the given id.
func (s Snapshot) Find(id int64) (domain.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}
