package conv

import (
	"fmt"
	"reflect"
	"sync"
)

// Converter converts source value into the context target type
type Converter interface {
	Convert(ctx *Context, source interface{}) (Conversion, error)
}

// ConverterFunc adapts a function to Converter
type ConverterFunc func(ctx *Context, source interface{}) (Conversion, error)

// Convert calls fn
func (fn ConverterFunc) Convert(ctx *Context, source interface{}) (Conversion, error) {
	return fn(ctx, source)
}

// ConversionFunc defines a custom conversion function for a registered type pair
type ConversionFunc func(ctx *Context, source interface{}) (interface{}, error)

type typeKey struct {
	srcType  reflect.Type
	destType reflect.Type
}

// Registry is a Converter dispatching exact source/target type pairs to registered functions
type Registry struct {
	conversions sync.Map // map[typeKey]ConversionFunc
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterConversion registers a custom conversion function between source and destination types
func (r *Registry) RegisterConversion(srcType, destType reflect.Type, fn ConversionFunc) *Registry {
	r.conversions.Store(typeKey{srcType, destType}, fn)
	return r
}

// Name returns strategy name
func (r *Registry) Name() string {
	return "Registry"
}

// Convert converts non nil source when its dynamic type and the target type were registered
func (r *Registry) Convert(ctx *Context, source interface{}) (Conversion, error) {
	if source == nil {
		return No(), nil
	}
	v, ok := r.conversions.Load(typeKey{reflect.TypeOf(source), ctx.Target.Type.Raw()})
	if !ok {
		return No(), nil
	}
	value, err := v.(ConversionFunc)(ctx, source)
	if err != nil {
		return No(), fmt.Errorf("failed to convert %T: %w", source, err)
	}
	return Of(value), nil
}

// Func returns converter for a single exact type pair
func Func(srcType, destType reflect.Type, fn ConversionFunc) Converter {
	return NewRegistry().RegisterConversion(srcType, destType, fn)
}

func nameOf(converter Converter) string {
	if named, ok := converter.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", converter)
}
