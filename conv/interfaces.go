package conv

import (
	"reflect"

	"github.com/viant/transcoder/types"
)

// Interfaces converts into interface targets: the source is converted deep into its own dynamic type
// when that type implements the target, and passed through when no strategy can copy it
type Interfaces struct{}

// Name returns strategy name
func (Interfaces) Name() string { return "Interfaces" }

// Convert converts source for interface target
func (Interfaces) Convert(ctx *Context, source interface{}) (Conversion, error) {
	if !implementedBy(ctx.Target.Type.Raw(), source) {
		return No(), nil
	}
	dynamic := reflect.TypeOf(source)
	targetType := ctx.Source.Type
	if targetType.Raw() != dynamic {
		targetType = types.ClassOf(dynamic)
	}
	conversion, err := ctx.WithTypes(ctx.Source.Type, targetType).Convert(source)
	if err != nil {
		return No(), err
	}
	if !conversion.Matched() {
		return Of(source), nil
	}
	return conversion, nil
}

// implementedBy returns true for interface target implemented by the source dynamic type
func implementedBy(target reflect.Type, source interface{}) bool {
	if source == nil || target == nil || target.Kind() != reflect.Interface {
		return false
	}
	return reflect.TypeOf(source).Implements(target)
}
