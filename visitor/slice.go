package visitor

import (
	"fmt"
	"reflect"
)

// SliceVisitor implements Visitor[int, E] for []E
type SliceVisitor[E any] struct {
	data []E
}

// SliceVisitorOf creates a Visitor for []E
func SliceVisitorOf[E any](slice []E) Visitor[int, E] {
	visitor := &SliceVisitor[E]{data: slice}
	return visitor.Visit
}

// Visit iterates over the slice, calling the provided function for each element.
// The key is the slice index.
func (sw *SliceVisitor[E]) Visit(f func(key int, element E) (bool, error)) error {
	for i, elem := range sw.data {
		continueVisit, err := f(i, elem)
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

// ElementsOf creates a visitor for slice, array, iter.Seq or set map (map[K]struct{}) value.
// It returns element count, or -1 when the count is unknown before iterating.
func ElementsOf(value interface{}) (Visitor[int, any], int, error) {
	switch actual := value.(type) {
	case []string:
		return AnyTypedSliceVisitorOf[string](actual), len(actual), nil
	case []int:
		return AnyTypedSliceVisitorOf[int](actual), len(actual), nil
	case []int64:
		return AnyTypedSliceVisitorOf[int64](actual), len(actual), nil
	case []float64:
		return AnyTypedSliceVisitorOf[float64](actual), len(actual), nil
	case []interface{}:
		return AnyTypedSliceVisitorOf[interface{}](actual), len(actual), nil
	}
	val := reflect.ValueOf(value)
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		visitor := &AnySliceVisitor{data: val}
		return visitor.Visit, val.Len(), nil
	case reflect.Map:
		if !IsSet(val.Type()) {
			break
		}
		visitor := &SetVisitor{data: val}
		return visitor.Visit, val.Len(), nil
	case reflect.Func:
		if !IsSeq(val.Type()) {
			break
		}
		visitor := &SeqVisitor{data: val}
		return visitor.Visit, -1, nil
	}
	return nil, 0, fmt.Errorf("expected slice, array, sequence or set, got %T", value)
}

// AnyTypedSliceVisitorOf return visitor
func AnyTypedSliceVisitorOf[E any](slice []E) Visitor[int, any] {
	visit := SliceVisitorOf(slice)
	return func(f func(key int, element any) (bool, error)) error {
		return visit(func(key int, element E) (bool, error) {
			return f(key, element)
		})
	}
}

// AnySliceVisitor implements Visitor[int, any] for slices and arrays of any type.
type AnySliceVisitor struct {
	data reflect.Value
}

// Visit iterates over any slice or array type via reflection.
func (v *AnySliceVisitor) Visit(f func(key int, element any) (bool, error)) error {
	for i := 0; i < v.data.Len(); i++ {
		continueVisit, err := f(i, v.data.Index(i).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
