package repositories

import "context"

// SequenceRepository allocates strictly increasing numbers from named
// counters. Allocation is a single atomic read-increment-write in the store,
// so two concurrent callers can never observe the same value.
type SequenceRepository interface {
	// Next returns the next value of the named sequence, creating the
	// sequence at 1 on first use.
	Next(ctx context.Context, name string) (int64, error)
}
