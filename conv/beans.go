package conv

import (
	"fmt"
	"reflect"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

// Beans converts struct source into struct target attribute by attribute.
// Absent and unmatched attributes leave the target attribute unset, opaque targets are unmatched.
type Beans struct {
	immutables *Immutables
}

// NewBeans creates strategy, immutable struct targets are left to Immutables
func NewBeans(immutables *Immutables) *Beans {
	return &Beans{immutables: immutables}
}

// Name returns strategy name
func (b *Beans) Name() string { return "Beans" }

// Convert constructs target and maps present source attributes
func (b *Beans) Convert(ctx *Context, source interface{}) (Conversion, error) {
	target := ctx.Target.Type.Raw()
	if target.Kind() != reflect.Struct || b.immutables.IsImmutable(target) || types.BoxOf(target) != nil || ctx.Inspector == nil {
		return No(), nil
	}
	if isOpaque(ctx, target) {
		return No(), nil
	}
	sourceHolder, ok := values.Holder(source)
	if !ok {
		return No(), nil
	}
	sourceOwner, targetOwner := ownerOf(ctx.Source.Type, sourceHolder.Type()), ctx.Target.Type
	mappings, err := ctx.Inspector.Mappings(sourceOwner, targetOwner)
	if err != nil {
		return No(), err
	}
	targetHolder := reflect.New(target)
	for _, mapping := range mappings {
		if !mapping.Accessor.Present(sourceHolder) {
			continue
		}
		dependent := ctx.Dependent(mapping.Accessor.Type(sourceOwner), mapping.Accessor.Name(), mapping.Mutator.Type(targetOwner), mapping.Mutator.Name())
		value, err := mapping.Accessor.Access(sourceHolder)
		if err != nil {
			return No(), Fault(dependent, fmt.Errorf("failed to access %v: %w", mapping.Name, err))
		}
		conversion, err := dependent.Convert(value)
		if err != nil {
			return No(), err
		}
		if !conversion.Matched() {
			continue
		}
		if err = mapping.Mutator.Mutate(targetHolder, conversion.Value()); err != nil {
			return No(), Fault(dependent, fmt.Errorf("failed to mutate %v: %w", mapping.Name, err))
		}
	}
	return Of(targetHolder.Elem().Interface()), nil
}

// ownerOf returns struct descriptor of the source, pointer descriptors are viewed through their element
func ownerOf(declared *types.Typed, holderType reflect.Type) *types.Typed {
	structType := holderType.Elem()
	switch raw := declared.Raw(); {
	case raw == structType:
		return declared
	case raw != nil && raw.Kind() == reflect.Ptr && raw.Elem() == structType:
		return declared.Generic(0)
	}
	return types.ClassOf(structType)
}
