package values

import (
	"fmt"
	"reflect"
)

// IsNil returns true if value is nil or holds a nil reference
func IsNil(value interface{}) bool {
	if value == nil {
		return true
	}
	return IsNilValue(reflect.ValueOf(value))
}

// IsNilValue returns true if value is invalid or holds a nil reference
func IsNilValue(value reflect.Value) bool {
	if !value.IsValid() {
		return true
	}
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return value.IsNil()
	}
	return false
}

// Assign sets src to dst, converting between types of the same kind when needed
func Assign(dst reflect.Value, src interface{}) error {
	if src == nil {
		dst.SetZero()
		return nil
	}
	return AssignValue(dst, reflect.ValueOf(src))
}

// AssignValue sets src to dst, converting between types of the same kind when needed
func AssignValue(dst reflect.Value, src reflect.Value) error {
	if !src.IsValid() {
		dst.SetZero()
		return nil
	}
	srcType, dstType := src.Type(), dst.Type()
	if srcType.AssignableTo(dstType) {
		dst.Set(src)
		return nil
	}
	if src.Kind() == reflect.Interface {
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		return AssignValue(dst, src.Elem())
	}
	if src.Kind() == dst.Kind() && srcType.ConvertibleTo(dstType) {
		dst.Set(src.Convert(dstType))
		return nil
	}
	return fmt.Errorf("cannot assign %v to %v", srcType, dstType)
}

// Holder returns addressable pointer to a struct held by value
func Holder(value interface{}) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr:
		if rValue.IsNil() || rValue.Elem().Kind() != reflect.Struct {
			return reflect.Value{}, false
		}
		return rValue, true
	case reflect.Struct:
		ptr := reflect.New(rValue.Type())
		ptr.Elem().Set(rValue)
		return ptr, true
	}
	return reflect.Value{}, false
}

// Indirect dereferences pointers and interfaces until a concrete value is reached
func Indirect(value reflect.Value) reflect.Value {
	for value.IsValid() && (value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}
		}
		value = value.Elem()
	}
	return value
}
