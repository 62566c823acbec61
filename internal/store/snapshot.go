package store

import (
	"sync"
	"sync/atomic"
)

// snapshot holds an immutable slice that is replaced wholesale on every write.
// Readers never block and always observe a complete version.
type snapshot[T any] struct {
	mu  sync.Mutex
	cur atomic.Pointer[[]T]
}

func newSnapshot[T any](initial []T) *snapshot[T] {
	s := &snapshot[T]{}
	s.cur.Store(&initial)
	return s
}

func (s *snapshot[T]) load() []T {
	return *s.cur.Load()
}

// update builds the next version from the current one. The current slice must
// not be modified by fn. On error nothing is replaced.
func (s *snapshot[T]) update(fn func(cur []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.load())
	if err != nil {
		return err
	}
	s.cur.Store(&next)
	return nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

// without returns a new slice with the element at i removed.
func without[T any](items []T, i int) []T {
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...)
}

// replaced returns a new slice with the element at i set to v.
func replaced[T any](items []T, i int, v T) []T {
	next := make([]T, len(items))
	copy(next, items)
	next[i] = v
	return next
}

// appended returns a new slice with v added at the end.
func appended[T any](items []T, v T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, v)
}
