package memo

import (
	"context"
	"sync"
)

// Slot holds a value that is fetched at most once.
//
// The first successful Get stores the value; later calls return it without
// calling fetch. A failed fetch stores nothing, so the next Get tries again.
// The lock is held while fetching, so concurrent first calls fetch once.
type Slot[T any] struct {
	mu      sync.Mutex
	fetched bool
	value   T
}

// Get returns the stored value, calling fetch to populate the slot if it is empty
func (s *Slot[T]) Get(ctx context.Context, fetch func(ctx context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetched {
		return s.value, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	s.value = v
	s.fetched = true
	return v, nil
}

// Fetched reports whether the slot holds a value
func (s *Slot[T]) Fetched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetched
}
