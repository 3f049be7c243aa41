package types

import (
	"net/netip"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var registry sync.Map // map[string]reflect.Type

func init() {
	for _, t := range []reflect.Type{
		reflect.TypeFor[bool](), reflect.TypeFor[string](),
		reflect.TypeFor[int](), reflect.TypeFor[int8](), reflect.TypeFor[int16](), reflect.TypeFor[int32](), reflect.TypeFor[int64](),
		reflect.TypeFor[uint](), reflect.TypeFor[uint8](), reflect.TypeFor[uint16](), reflect.TypeFor[uint32](), reflect.TypeFor[uint64](),
		reflect.TypeFor[uintptr](), reflect.TypeFor[float32](), reflect.TypeFor[float64](),
		reflect.TypeFor[complex64](), reflect.TypeFor[complex128](),
		timeType, durationType,
		reflect.TypeFor[uuid.UUID](),
		reflect.TypeFor[netip.Addr](), reflect.TypeFor[netip.AddrPort](), reflect.TypeFor[netip.Prefix](),
		reflect.TypeFor[language.Tag](),
		reflect.TypeFor[timestamppb.Timestamp](),
		reflect.TypeFor[time.Month](), reflect.TypeFor[time.Weekday](),
	} {
		Register(t.String(), t)
	}
	Register("byte", reflect.TypeFor[byte]())
	Register("rune", reflect.TypeFor[rune]())
	Register("any", anyType)
	Register("error", errorType)
}

// Register registers type under supplied name, registered names are used by expression parser
func Register(name string, t reflect.Type) {
	registry.Store(name, t)
}

// Lookup returns registered type
func Lookup(name string) (reflect.Type, bool) {
	if ret, ok := registry.Load(name); ok {
		return ret.(reflect.Type), true
	}
	return nil, false
}

// hintNames collects named types reachable from supplied types
func hintNames(hints ...reflect.Type) map[string]reflect.Type {
	ret := map[string]reflect.Type{}
	for _, hint := range hints {
		collectNames(hint, ret, 0)
	}
	return ret
}

func collectNames(t reflect.Type, names map[string]reflect.Type, depth int) {
	if t == nil || depth > 8 {
		return
	}
	if t.Name() != "" {
		if _, ok := names[t.Name()]; !ok {
			names[t.Name()] = t
		}
		names[t.String()] = t
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
		collectNames(t.Elem(), names, depth+1)
	case reflect.Map:
		collectNames(t.Key(), names, depth+1)
		collectNames(t.Elem(), names, depth+1)
	}
}
