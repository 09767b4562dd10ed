package domain

import (
	"strings"
	"time"
)

// Task represents a single to-do entry.
// Values are handed out as copies; only the store mutates the original.
type Task struct {
	ID        int64
	Text      string
	Done      bool
	CreatedAt time.Time
}

// NewTask creates a pending Task. The text is trimmed but not validated.
func NewTask(id int64, text string, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Text:      strings.TrimSpace(text),
		CreatedAt: createdAt,
	}
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}
