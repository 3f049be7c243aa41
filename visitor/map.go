package visitor

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

var emptyStructType = reflect.TypeFor[struct{}]()

// MapVisitor holds a map of type map[K]E and implements the Visitor interface.
type MapVisitor[K cmp.Ordered, E any] struct {
	data map[K]E
}

// MapVisitorOf creates a new MapVisitor visiting entries in key order.
func MapVisitorOf[K cmp.Ordered, E any](aMap map[K]E) Visitor[K, E] {
	visitor := &MapVisitor[K, E]{data: aMap}
	return visitor.Visit
}

// Visit iterates over the map and calls f for each (key, element).
// - If f returns (true, nil), iteration continues.
// - If f returns (false, nil), iteration stops early.
// - If f returns an error, iteration stops with that error.
func (v *MapVisitor[K, E]) Visit(f func(key K, element E) (bool, error)) error {
	keys := make([]K, 0, len(v.data))
	for k := range v.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		continueVisit, err := f(k, v.data[k])
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

// IsSet returns true for map[K]struct{} types
func IsSet(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem() == emptyStructType
}

// EntriesOf dynamically creates a map visitor from any map value, entries are visited in sorted key order.
func EntriesOf(value interface{}) (Visitor[any, any], int, error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		return AnyTypedMapVisitorOf(actual), len(actual), nil
	case map[string]string:
		return AnyTypedMapVisitorOf(actual), len(actual), nil
	case map[string]int:
		return AnyTypedMapVisitorOf(actual), len(actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map {
		return nil, 0, fmt.Errorf("expected map, got %T", value)
	}
	visitor := &AnyMapVisitor{data: val}
	return visitor.Visit, val.Len(), nil
}

// AnyTypedMapVisitorOf returns visitor of typed map entries in key order
func AnyTypedMapVisitorOf[K cmp.Ordered, E any](aMap map[K]E) Visitor[any, any] {
	visit := MapVisitorOf(aMap)
	return func(f func(key any, element any) (bool, error)) error {
		return visit(func(key K, element E) (bool, error) {
			return f(key, element)
		})
	}
}

// AnyMapVisitor defines any map visitor
type AnyMapVisitor struct {
	data reflect.Value
}

// Visit iterates over the map via reflection and calls f for each entry.
func (v *AnyMapVisitor) Visit(f func(key any, element any) (bool, error)) error {
	for _, key := range SortedKeys(v.data) {
		continueVisit, err := f(key.Interface(), v.data.MapIndex(key).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

// SetVisitor visits set map keys in sorted order, key is the element position
type SetVisitor struct {
	data reflect.Value
}

// Visit iterates over set members
func (v *SetVisitor) Visit(f func(key int, element any) (bool, error)) error {
	for i, key := range SortedKeys(v.data) {
		continueVisit, err := f(i, key.Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

// SortedKeys returns map keys ordered by value, keys of kinds without natural order are ordered by their formatted value
func SortedKeys(aMap reflect.Value) []reflect.Value {
	keys := aMap.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.Bool:
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}
	return cmp.Compare(format(a), format(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func format(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	return fmt.Sprintf("%T:%v", v.Interface(), v.Interface())
}
