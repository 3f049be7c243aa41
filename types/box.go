package types

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/viant/transcoder/internal/values"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// BoxKind defines wrapper category
type BoxKind uint8

const (
	//BoxPointer represents plain *T
	BoxPointer BoxKind = iota + 1
	//BoxOptional represents sql.Null[T] like optional values
	BoxOptional
	//BoxReference represents atomic.Pointer, atomic.Value and weak.Pointer
	BoxReference
	//BoxScalar represents atomic scalars
	BoxScalar
	//BoxWrapper represents protobuf well known wrappers
	BoxWrapper
)

// Box represents a wrapper holding a single inner value
type Box interface {
	Kind() BoxKind
	//Inner returns type of the held value
	Inner(t reflect.Type) reflect.Type
	//Empty returns canonical empty wrapper, false if absence is represented by nil
	Empty(t reflect.Type) (reflect.Value, bool)
	//Unwrap returns held value, false if wrapper is empty
	Unwrap(v reflect.Value) (reflect.Value, bool)
	//Wrap returns wrapper holding inner value, invalid inner produces empty wrapper
	Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool)
}

type boxMatcher struct {
	match func(t reflect.Type) bool
	box   Box
}

var (
	boxMux   sync.RWMutex
	boxes    []*boxMatcher
	wrappers = map[reflect.Type]bool{
		reflect.TypeFor[*wrapperspb.DoubleValue](): true,
		reflect.TypeFor[*wrapperspb.FloatValue]():  true,
		reflect.TypeFor[*wrapperspb.Int64Value]():  true,
		reflect.TypeFor[*wrapperspb.UInt64Value](): true,
		reflect.TypeFor[*wrapperspb.Int32Value]():  true,
		reflect.TypeFor[*wrapperspb.UInt32Value](): true,
		reflect.TypeFor[*wrapperspb.BoolValue]():   true,
		reflect.TypeFor[*wrapperspb.StringValue](): true,
		reflect.TypeFor[*wrapperspb.BytesValue]():  true,
	}
	atomicScalars = map[reflect.Type]bool{
		reflect.TypeFor[*atomic.Int32]():  true,
		reflect.TypeFor[*atomic.Int64]():  true,
		reflect.TypeFor[*atomic.Uint32](): true,
		reflect.TypeFor[*atomic.Uint64](): true,
		reflect.TypeFor[*atomic.Bool]():   true,
	}
	atomicValueType = reflect.TypeFor[*atomic.Value]()
)

func init() {
	boxes = []*boxMatcher{
		{match: isSQLNull, box: nullBox{}},
		{match: func(t reflect.Type) bool { return atomicScalars[t] }, box: atomicBox{kind: BoxScalar}},
		{match: isAtomicPointer, box: atomicBox{kind: BoxReference}},
		{match: func(t reflect.Type) bool { return t == atomicValueType }, box: atomicValueBox{}},
		{match: isWeakPointer, box: weakBox{}},
		{match: func(t reflect.Type) bool { return wrappers[t] }, box: wrapperBox{}},
		{match: func(t reflect.Type) bool { return t.Kind() == reflect.Ptr }, box: pointerBox{}},
	}
}

// RegisterBox registers a box matched before the built-in ones
func RegisterBox(match func(t reflect.Type) bool, box Box) {
	boxMux.Lock()
	defer boxMux.Unlock()
	boxes = append([]*boxMatcher{{match: match, box: box}}, boxes...)
}

// BoxOf returns box for supplied type or nil
func BoxOf(t reflect.Type) Box {
	if t == nil {
		return nil
	}
	boxMux.RLock()
	defer boxMux.RUnlock()
	for _, candidate := range boxes {
		if candidate.match(t) {
			return candidate.box
		}
	}
	return nil
}

func isSQLNull(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.PkgPath() != "database/sql" || !strings.HasPrefix(t.Name(), "Null") {
		return false
	}
	return t.NumField() == 2 && t.Field(1).Name == "Valid" && t.Field(1).Type.Kind() == reflect.Bool
}

func isAtomicPointer(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr && t.Elem().PkgPath() == "sync/atomic" && strings.HasPrefix(t.Elem().Name(), "Pointer[")
}

func isWeakPointer(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.PkgPath() == "weak" && strings.HasPrefix(t.Name(), "Pointer[")
}

type nullBox struct{}

func (nullBox) Kind() BoxKind { return BoxOptional }

func (nullBox) Inner(t reflect.Type) reflect.Type { return t.Field(0).Type }

func (nullBox) Empty(t reflect.Type) (reflect.Value, bool) { return reflect.Zero(t), true }

func (nullBox) Unwrap(v reflect.Value) (reflect.Value, bool) {
	if !v.Field(1).Bool() {
		return reflect.Value{}, false
	}
	return v.Field(0), true
}

func (nullBox) Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool) {
	ret := reflect.New(t).Elem()
	if !inner.IsValid() {
		return ret, true
	}
	if err := values.AssignValue(ret.Field(0), inner); err != nil {
		return reflect.Value{}, false
	}
	ret.Field(1).SetBool(true)
	return ret, true
}

// atomicBox handles atomic scalars and atomic.Pointer through their Load and Store methods
type atomicBox struct {
	kind BoxKind
}

func (b atomicBox) Kind() BoxKind { return b.kind }

func (atomicBox) Inner(t reflect.Type) reflect.Type {
	if method, ok := t.MethodByName("Load"); ok {
		return method.Type.Out(0)
	}
	return nil
}

func (atomicBox) Empty(t reflect.Type) (reflect.Value, bool) { return reflect.New(t.Elem()), true }

func (atomicBox) Unwrap(v reflect.Value) (reflect.Value, bool) {
	if v.IsNil() {
		return reflect.Value{}, false
	}
	ret := v.MethodByName("Load").Call(nil)[0]
	if ret.Kind() == reflect.Ptr && ret.IsNil() {
		return reflect.Value{}, false
	}
	return ret, true
}

func (b atomicBox) Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool) {
	ret := reflect.New(t.Elem())
	if !inner.IsValid() {
		return ret, true
	}
	store := ret.MethodByName("Store")
	arg := reflect.New(store.Type().In(0)).Elem()
	if err := values.AssignValue(arg, inner); err != nil {
		return reflect.Value{}, false
	}
	store.Call([]reflect.Value{arg})
	return ret, true
}

type atomicValueBox struct{}

func (atomicValueBox) Kind() BoxKind { return BoxReference }

func (atomicValueBox) Inner(reflect.Type) reflect.Type { return anyType }

func (atomicValueBox) Empty(t reflect.Type) (reflect.Value, bool) { return reflect.New(t.Elem()), true }

func (atomicValueBox) Unwrap(v reflect.Value) (reflect.Value, bool) {
	if v.IsNil() {
		return reflect.Value{}, false
	}
	ret := v.MethodByName("Load").Call(nil)[0]
	if ret.IsNil() {
		return reflect.Value{}, false
	}
	return ret.Elem(), true
}

func (atomicValueBox) Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool) {
	ret := reflect.New(t.Elem())
	if values.IsNilValue(inner) {
		return ret, true
	}
	arg := reflect.New(anyType).Elem()
	arg.Set(inner)
	ret.MethodByName("Store").Call([]reflect.Value{arg})
	return ret, true
}

// weakBox unwraps weak.Pointer, weak pointers can only be created by weak.Make
type weakBox struct{}

func (weakBox) Kind() BoxKind { return BoxReference }

func (weakBox) Inner(t reflect.Type) reflect.Type {
	if method, ok := t.MethodByName("Value"); ok {
		return method.Type.Out(0)
	}
	return nil
}

func (weakBox) Empty(t reflect.Type) (reflect.Value, bool) { return reflect.Zero(t), true }

func (weakBox) Unwrap(v reflect.Value) (reflect.Value, bool) {
	ret := v.MethodByName("Value").Call(nil)[0]
	if ret.IsNil() {
		return reflect.Value{}, false
	}
	return ret, true
}

func (weakBox) Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool) {
	if values.IsNilValue(inner) {
		return reflect.Zero(t), true
	}
	return reflect.Value{}, false
}

type wrapperBox struct{}

func (wrapperBox) Kind() BoxKind { return BoxWrapper }

func (wrapperBox) Inner(t reflect.Type) reflect.Type {
	if field, ok := t.Elem().FieldByName("Value"); ok {
		return field.Type
	}
	return nil
}

func (wrapperBox) Empty(reflect.Type) (reflect.Value, bool) { return reflect.Value{}, false }

func (wrapperBox) Unwrap(v reflect.Value) (reflect.Value, bool) {
	if v.IsNil() {
		return reflect.Value{}, false
	}
	return v.Elem().FieldByName("Value"), true
}

func (wrapperBox) Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool) {
	if !inner.IsValid() {
		return reflect.Zero(t), true
	}
	ret := reflect.New(t.Elem())
	if err := values.AssignValue(ret.Elem().FieldByName("Value"), inner); err != nil {
		return reflect.Value{}, false
	}
	return ret, true
}

type pointerBox struct{}

func (pointerBox) Kind() BoxKind { return BoxPointer }

func (pointerBox) Inner(t reflect.Type) reflect.Type { return t.Elem() }

func (pointerBox) Empty(reflect.Type) (reflect.Value, bool) { return reflect.Value{}, false }

func (pointerBox) Unwrap(v reflect.Value) (reflect.Value, bool) {
	if v.IsNil() {
		return reflect.Value{}, false
	}
	return v.Elem(), true
}

func (pointerBox) Wrap(t reflect.Type, inner reflect.Value) (reflect.Value, bool) {
	if !inner.IsValid() {
		return reflect.Zero(t), true
	}
	ret := reflect.New(t.Elem())
	if err := values.AssignValue(ret.Elem(), inner); err != nil {
		return reflect.Value{}, false
	}
	return ret, true
}
