package conv

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

// Texts converts text into encoding.TextUnmarshaler targets (uuid, netip, language tags) and into []byte
type Texts struct{}

// Name returns strategy name
func (Texts) Name() string { return "Texts" }

// Convert converts text source
func (Texts) Convert(ctx *Context, source interface{}) (Conversion, error) {
	target := ctx.Target.Type.Raw()
	if values.IsNil(source) || target == nil {
		return No(), nil
	}
	value := reflect.ValueOf(source)
	var text []byte
	switch {
	case types.IsText(value.Type()):
		text = []byte(value.String())
	case types.IsBytes(value.Type()):
		text = value.Bytes()
	default:
		return No(), nil
	}
	switch {
	case types.IsTextUnmarshaler(target):
		return unmarshalText(text, target)
	case types.IsBytes(target) && types.IsText(value.Type()):
		return Of(reflect.ValueOf(text).Convert(target).Interface()), nil
	}
	return No(), nil
}

func unmarshalText(text []byte, t reflect.Type) (Conversion, error) {
	isPtr := t.Kind() == reflect.Ptr && t.Implements(reflect.TypeFor[encoding.TextUnmarshaler]())
	holder := reflect.New(t)
	if isPtr {
		holder = reflect.New(t.Elem())
	}
	if err := holder.Interface().(encoding.TextUnmarshaler).UnmarshalText(text); err != nil {
		return No(), fmt.Errorf("cannot convert '%s' to %v: %w", text, t, err)
	}
	if isPtr {
		return Of(holder.Interface()), nil
	}
	return Of(holder.Elem().Interface()), nil
}
