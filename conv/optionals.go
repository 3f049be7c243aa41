package conv

import (
	"reflect"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

// Optionals converts from and into optional boxes (sql.Null[T] like types)
type Optionals struct{}

// Name returns strategy name
func (Optionals) Name() string { return "Optionals" }

// Convert converts optional pairs
func (Optionals) Convert(ctx *Context, source interface{}) (Conversion, error) {
	sourceType, targetType := ctx.Source.Type, ctx.Target.Type
	sourceBox := optionalOf(sourceType.Raw())
	targetBox := optionalOf(targetType.Raw())
	switch {
	case sourceBox != nil && targetBox != nil:
		inner, ok := unwrap(sourceBox, source)
		if !ok {
			return empty(targetBox, targetType.Raw())
		}
		conversion, err := ctx.DependentPath(sourceType.Generic(0), targetType.Generic(0), "value").Convert(inner)
		if err != nil || !conversion.Matched() {
			return No(), err
		}
		return wrap(targetBox, targetType.Raw(), conversion)
	case sourceBox != nil && types.IsNillable(targetType.Raw()) && !implementedBy(targetType.Raw(), source):
		inner, ok := unwrap(sourceBox, source)
		if !ok {
			return Nil(), nil
		}
		return ctx.DependentSource(sourceType.Generic(0), "value").Convert(inner)
	case targetBox != nil:
		if values.IsNil(source) {
			return empty(targetBox, targetType.Raw())
		}
		conversion, err := ctx.DependentTarget(targetType.Generic(0), "value").Convert(source)
		if err != nil || !conversion.Matched() {
			return No(), err
		}
		return wrap(targetBox, targetType.Raw(), conversion)
	}
	return No(), nil
}

func optionalOf(t reflect.Type) types.Box {
	box := types.BoxOf(t)
	if box == nil || box.Kind() != types.BoxOptional {
		return nil
	}
	return box
}

// unwrap returns boxed value, false for absent source or empty box
func unwrap(box types.Box, source interface{}) (interface{}, bool) {
	if values.IsNil(source) {
		return nil, false
	}
	inner, ok := box.Unwrap(reflect.ValueOf(source))
	if !ok || !inner.CanInterface() {
		return nil, false
	}
	return inner.Interface(), true
}

func empty(box types.Box, t reflect.Type) (Conversion, error) {
	ret, ok := box.Empty(t)
	if !ok {
		return Nil(), nil
	}
	return Of(ret.Interface()), nil
}

// wrap boxes converted value, matched nil yields empty box
func wrap(box types.Box, t reflect.Type, conversion Conversion) (Conversion, error) {
	var inner reflect.Value
	if !conversion.IsNull() {
		inner = reflect.ValueOf(conversion.Value())
	}
	ret, ok := box.Wrap(t, inner)
	if !ok {
		return No(), nil
	}
	return Of(ret.Interface()), nil
}
