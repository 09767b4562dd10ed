package domain

import (
	"sync/atomic"
	"time"
)

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// IDSource hands out task ids. Implementations must never repeat an id
// for the lifetime of the process.
type IDSource interface {
	NextID() int64
}

// SequenceIDs is a monotonic IDSource.
type SequenceIDs struct {
	last atomic.Int64
}

// NewSequenceIDs creates a sequence whose first id is start+1.
func NewSequenceIDs(start int64) *SequenceIDs {
	s := &SequenceIDs{}
	s.last.Store(start)
	return s
}

// NextID implements IDSource.
func (s *SequenceIDs) NextID() int64 {
	return s.last.Add(1)
}
