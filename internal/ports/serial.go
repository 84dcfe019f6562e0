package ports

import "context"

// SerialCounter hands out base serials from a persisted counter.
// Each call is one read-increment-write critical section.
type SerialCounter interface {
	NextBase(ctx context.Context) (string, error)
}

// Sequence is a persisted integer that only moves forward
type Sequence interface {
	Next(ctx context.Context) (int, error)
}
