package conv

import (
	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

// References converts box to box: pointers, atomics, weak pointers and protobuf wrappers
type References struct{}

// Name returns strategy name
func (References) Name() string { return "References" }

// Convert unwraps source, converts held value and wraps it into target box
func (References) Convert(ctx *Context, source interface{}) (Conversion, error) {
	sourceType, targetType := ctx.Source.Type, ctx.Target.Type
	sourceBox, targetBox := types.BoxOf(sourceType.Raw()), types.BoxOf(targetType.Raw())
	if sourceBox == nil || targetBox == nil {
		return No(), nil
	}
	inner, ok := unwrap(sourceBox, source)
	if !ok {
		return empty(targetBox, targetType.Raw())
	}
	conversion, err := ctx.DependentPath(sourceType.Generic(0), targetType.Generic(0), "value").Convert(inner)
	if err != nil || !conversion.Matched() {
		return No(), err
	}
	return wrap(targetBox, targetType.Raw(), conversion)
}

// Unboxing converts box to plain target through the held value
type Unboxing struct{}

// Name returns strategy name
func (Unboxing) Name() string { return "Unboxing" }

// Convert converts held value, empty box is converted as nil
func (Unboxing) Convert(ctx *Context, source interface{}) (Conversion, error) {
	sourceType, targetType := ctx.Source.Type, ctx.Target.Type
	sourceBox := types.BoxOf(sourceType.Raw())
	if sourceBox == nil || types.BoxOf(targetType.Raw()) != nil || implementedBy(targetType.Raw(), source) {
		return No(), nil
	}
	inner, _ := unwrap(sourceBox, source)
	return ctx.DependentSource(sourceType.Generic(0), "value").Convert(inner)
}

// Boxing converts plain source into target box
type Boxing struct{}

// Name returns strategy name
func (Boxing) Name() string { return "Boxing" }

// Convert converts source into held type and wraps it
func (Boxing) Convert(ctx *Context, source interface{}) (Conversion, error) {
	sourceType, targetType := ctx.Source.Type, ctx.Target.Type
	targetBox := types.BoxOf(targetType.Raw())
	if targetBox == nil || types.BoxOf(sourceType.Raw()) != nil {
		return No(), nil
	}
	if values.IsNil(source) {
		return empty(targetBox, targetType.Raw())
	}
	conversion, err := ctx.DependentTarget(targetType.Generic(0), "value").Convert(source)
	if err != nil || !conversion.Matched() {
		return No(), err
	}
	return wrap(targetBox, targetType.Raw(), conversion)
}
