package cache

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Map is a thread-safe memoization map, concurrent loads of the same key are computed once
type Map[K comparable, V any] struct {
	m     map[K]V
	mux   sync.RWMutex
	group singleflight.Group
	keyOf func(K) string
}

// Get returns a value from the map
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

// Put adds a value to the map
func (m *Map[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.m[k] = v
}

// Len returns number of cached entries
func (m *Map[K, V]) Len() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.m)
}

// GetOrLoad returns cached value or stores the one computed by load, errors are not cached
func (m *Map[K, V]) GetOrLoad(k K, load func() (V, error)) (V, error) {
	if v, ok := m.Get(k); ok {
		return v, nil
	}
	ret, err, _ := m.group.Do(m.keyOf(k), func() (interface{}, error) {
		if v, ok := m.Get(k); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		m.Put(k, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return ret.(V), nil
}

// New creates a memoization map, keyOf has to return distinct flight keys for distinct map keys
func New[K comparable, V any](keyOf func(K) string) *Map[K, V] {
	if keyOf == nil {
		keyOf = func(k K) string { return fmt.Sprintf("%v", k) }
	}
	return &Map[K, V]{m: make(map[K]V), keyOf: keyOf}
}

// TypeKey returns flight key identifying t, distinct types with the same name get distinct keys
func TypeKey(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return strconv.FormatUint(uint64(reflect.ValueOf(t).Pointer()), 16)
}
