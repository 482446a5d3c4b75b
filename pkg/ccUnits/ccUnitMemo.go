package ccunits

import "sync"

// memo is a compute-once cache. Concurrent callers may block on the first
// computation but always observe the same value afterwards.
type memo[T any] struct {
	once sync.Once
	val  T
}

func (m *memo[T]) get(compute func() T) T {
	m.once.Do(func() {
		m.val = compute()
	})
	return m.val
}

// seed stores v unless a value was computed already
func (m *memo[T]) seed(v T) {
	m.once.Do(func() {
		m.val = v
	})
}
