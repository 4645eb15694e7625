package clock

import "time"

// Clock abstracts wall-clock reads so subscription and placement validity
// checks can run against fixed timestamps in tests.
type Clock interface {
	Now() time.Time
}

// System reads the real time.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
