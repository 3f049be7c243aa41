package transcoder

import (
	"fmt"
	"iter"
)

// MapSlice maps each source element into T, it fails on the first element error
func MapSlice[S, T any](m *Mapper, source []S) ([]T, error) {
	if source == nil {
		return nil, nil
	}
	ret := make([]T, len(source))
	for i, item := range source {
		if err := m.Convert(item, &ret[i]); err != nil {
			return nil, fmt.Errorf("failed to map element %d: %w", i, err)
		}
	}
	return ret, nil
}

// MapSeq lazily maps each source element into T
func MapSeq[S, T any](m *Mapper, source iter.Seq[S]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for item := range source {
			ret, err := MapTo[T](m, item)
			if !yield(ret, err) {
				return
			}
		}
	}
}

// MapValues maps map values into T, keys are kept
func MapValues[K comparable, V, T any](m *Mapper, source map[K]V) (map[K]T, error) {
	if source == nil {
		return nil, nil
	}
	ret := make(map[K]T, len(source))
	for k, v := range source {
		item, err := MapTo[T](m, v)
		if err != nil {
			return nil, fmt.Errorf("failed to map value %v: %w", k, err)
		}
		ret[k] = item
	}
	return ret, nil
}

// MapPtr maps pointed value into a new T, nil source maps to nil
func MapPtr[S, T any](m *Mapper, source *S) (*T, error) {
	if source == nil {
		return nil, nil
	}
	ret := new(T)
	if err := m.Convert(*source, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
