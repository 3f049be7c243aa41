package conv

import (
	"reflect"

	"github.com/viant/transcoder/types"
)

// Immutables passes through values of immutable target types assignable from the source type.
// Opaque structs, with unexported state only and no mutators, are passed through as well.
type Immutables struct {
	custom map[reflect.Type]bool
}

// NewImmutables creates strategy, supplied types are treated as immutable in addition to built-in ones
func NewImmutables(immutables ...reflect.Type) *Immutables {
	ret := &Immutables{custom: make(map[reflect.Type]bool, len(immutables))}
	for _, t := range immutables {
		ret.custom[t] = true
	}
	return ret
}

// Name returns strategy name
func (i *Immutables) Name() string { return "Immutables" }

// IsImmutable returns true for built-in or registered immutable types
func (i *Immutables) IsImmutable(t reflect.Type) bool {
	return types.IsImmutable(t) || (i != nil && i.custom[t])
}

// Convert passes through source
func (i *Immutables) Convert(ctx *Context, source interface{}) (Conversion, error) {
	if source == nil {
		return No(), nil
	}
	if target := ctx.Target.Type.Raw(); !i.IsImmutable(target) && !isOpaque(ctx, target) {
		return No(), nil
	}
	if !ctx.Target.Type.IsAssignableFrom(ctx.Source.Type) {
		return No(), nil
	}
	return Of(source), nil
}

// isOpaque returns true for struct without mutators holding unexported state
func isOpaque(ctx *Context, t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct || types.BoxOf(t) != nil || ctx.Inspector == nil {
		return false
	}
	mutators, err := ctx.Inspector.Mutators(types.ClassOf(t))
	if err != nil || len(mutators.Items) > 0 {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if field := t.Field(i); !field.IsExported() && field.Name != "_" {
			return true
		}
	}
	return false
}
