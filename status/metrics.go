package status

import (
	"iter"
	"slices"
	"sync"
)

// MetricMap is a named set of metrics of type T
// Registration takes the lock; callers cache the returned pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// All yields metrics in key order over a snapshot of the key set
func (m *MetricMap[T]) All() iter.Seq2[string, *T] {
	m.mu.RLock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	ptrs := make(map[string]*T, len(m.items))
	for k, v := range m.items {
		ptrs[k] = v
	}
	m.mu.RUnlock()
	slices.Sort(keys)

	return func(yield func(string, *T) bool) {
		for _, k := range keys {
			if !yield(k, ptrs[k]) {
				return
			}
		}
	}
}
