package types

import (
	"encoding"
	"fmt"
	"net/netip"
	"reflect"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var (
	anyType             = reflect.TypeFor[any]()
	errorType           = reflect.TypeFor[error]()
	timeType            = reflect.TypeFor[time.Time]()
	timePtrType         = reflect.TypeFor[*time.Time]()
	durationType        = reflect.TypeFor[time.Duration]()
	timestampType       = reflect.TypeFor[*timestamppb.Timestamp]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

var immutables = map[reflect.Type]bool{
	timeType:                          true,
	reflect.TypeFor[uuid.UUID]():      true,
	reflect.TypeFor[netip.Addr]():     true,
	reflect.TypeFor[netip.AddrPort](): true,
	reflect.TypeFor[netip.Prefix]():   true,
	reflect.TypeFor[language.Tag]():   true,
}

// Any returns empty interface type
func Any() reflect.Type {
	return anyType
}

// IsNillable returns true if values of supplied type can be nil
func IsNillable(t reflect.Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// IsImmutable returns true for scalar value types that can be shared without copying
func IsImmutable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if immutables[t] {
		return true
	}
	return isBasic(t.Kind())
}

func isBasic(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// IsNumeric returns true for integer, float and complex kinds
func IsNumeric(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// IsText returns true for string kinds
func IsText(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.String
}

// IsBytes returns true for byte slices
func IsBytes(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// IsDateLike returns true for time.Time, *time.Time and *timestamppb.Timestamp
func IsDateLike(t reflect.Type) bool {
	return t == timeType || t == timePtrType || t == timestampType
}

// IsEpoch returns true for int64 kinds other than time.Duration
func IsEpoch(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Int64 && t != durationType
}

// IsDuration returns true for time.Duration
func IsDuration(t reflect.Type) bool {
	return t == durationType
}

// IsIterable returns true for slices and range over func sequences
func IsIterable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Slice {
		return true
	}
	_, ok := seqElem(t)
	return ok
}

// IsStringer returns true if type implements fmt.Stringer
func IsStringer(t reflect.Type) bool {
	return t != nil && t.Implements(stringerType)
}

// IsTextMarshaler returns true if type implements encoding.TextMarshaler
func IsTextMarshaler(t reflect.Type) bool {
	return t != nil && t.Implements(textMarshalerType)
}

// IsTextUnmarshaler returns true if type or pointer to type implements encoding.TextUnmarshaler
func IsTextUnmarshaler(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		return t.Implements(textUnmarshalerType)
	}
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// seqElem returns element type of iter.Seq shaped function
func seqElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return yield.In(0), true
}

// SeqOf returns iter.Seq type for supplied element type
func SeqOf(elem reflect.Type) reflect.Type {
	yield := reflect.FuncOf([]reflect.Type{elem}, []reflect.Type{reflect.TypeFor[bool]()}, false)
	return reflect.FuncOf([]reflect.Type{yield}, nil, false)
}

// nativeArgs returns generic arguments implied by Go composite types
func nativeArgs(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Chan:
		return []reflect.Type{t.Elem()}
	case reflect.Map:
		return []reflect.Type{t.Key(), t.Elem()}
	case reflect.Func:
		if elem, ok := seqElem(t); ok {
			return []reflect.Type{elem}
		}
		return nil
	}
	if box := BoxOf(t); box != nil {
		if inner := box.Inner(t); inner != nil {
			return []reflect.Type{inner}
		}
	}
	return nil
}
