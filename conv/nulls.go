package conv

import (
	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

// NullsToBoxed converts absent source into canonical empty box (optional, atomic, weak pointer)
type NullsToBoxed struct{}

// Name returns strategy name
func (NullsToBoxed) Name() string { return "NullsToBoxed" }

// Convert converts absent source
func (NullsToBoxed) Convert(ctx *Context, source interface{}) (Conversion, error) {
	if !values.IsNil(source) {
		return No(), nil
	}
	target := ctx.Target.Type.Raw()
	box := types.BoxOf(target)
	if box == nil {
		return No(), nil
	}
	empty, ok := box.Empty(target)
	if !ok {
		return No(), nil
	}
	return Of(empty.Interface()), nil
}

// Nulls converts absent source to nil for nillable targets
type Nulls struct{}

// Name returns strategy name
func (Nulls) Name() string { return "Nulls" }

// Convert converts absent source
func (Nulls) Convert(ctx *Context, source interface{}) (Conversion, error) {
	if !values.IsNil(source) || !types.IsNillable(ctx.Target.Type.Raw()) {
		return No(), nil
	}
	return Nil(), nil
}
