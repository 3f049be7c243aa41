package conv

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
	"github.com/viant/transcoder/visitor"
)

// Iterables converts slices, arrays, sequences, sets and maps element by element.
// Container conversion is all or nothing: any unmatched element makes the container unmatched.
type Iterables struct {
	Factory CollectionFactory
}

// NewIterables creates strategy with factories consulted before Builtin
func NewIterables(factories ...CollectionFactory) *Iterables {
	return &Iterables{Factory: append(Factories(factories), Builtin)}
}

// Name returns strategy name
func (s *Iterables) Name() string { return "Iterables" }

// Convert converts container source
func (s *Iterables) Convert(ctx *Context, source interface{}) (Conversion, error) {
	target := ctx.Target.Type.Raw()
	if values.IsNil(source) || target == nil {
		return No(), nil
	}
	sourceValue := reflect.ValueOf(source)
	sourceType := sourceValue.Type()
	if sourceType.Kind() == reflect.Map && !visitor.IsSet(sourceType) {
		switch target.Kind() {
		case reflect.Map, reflect.Interface:
			return s.mapToMap(ctx, source)
		}
		return No(), nil
	}
	if !isElements(sourceType) {
		return No(), nil
	}
	if target.Kind() == reflect.Array {
		return s.toArray(ctx, source)
	}
	switch target.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Interface:
		return s.toCollection(ctx, source)
	}
	return No(), nil
}

func isElements(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Map:
		return visitor.IsSet(t)
	case reflect.Func:
		return visitor.IsSeq(t)
	}
	return false
}

func elementOf(t *types.Typed) *types.Typed {
	if t.IsArray() {
		return t.Component()
	}
	return t.Generic(0)
}

func (s *Iterables) toCollection(ctx *Context, source interface{}) (Conversion, error) {
	visit, size, err := visitor.ElementsOf(source)
	if err != nil {
		return No(), err
	}
	collection, ok := s.Factory.Collection(ctx, size)
	if !ok {
		return No(), nil
	}
	sourceElem, targetElem := elementOf(ctx.Source.Type), elementOf(ctx.Target.Type)
	matched := true
	err = visit(func(index int, element any) (bool, error) {
		conversion, err := ctx.DependentPath(sourceElem, targetElem, strconv.Itoa(index)).Convert(element)
		if err != nil {
			return false, err
		}
		if !conversion.Matched() {
			matched = false
			return false, nil
		}
		return true, collection.Add(conversion.Value())
	})
	if err != nil || !matched {
		return No(), err
	}
	return Of(collection.Value()), nil
}

func (s *Iterables) toArray(ctx *Context, source interface{}) (Conversion, error) {
	visit, size, err := visitor.ElementsOf(source)
	if err != nil {
		return No(), err
	}
	arrayType := ctx.Target.Type.Raw()
	if size > arrayType.Len() {
		return No(), nil
	}
	array := reflect.New(arrayType).Elem()
	sourceElem, targetElem := elementOf(ctx.Source.Type), ctx.Target.Type.Component()
	matched := true
	err = visit(func(index int, element any) (bool, error) {
		if index >= array.Len() {
			matched = false
			return false, nil
		}
		conversion, err := ctx.DependentPath(sourceElem, targetElem, strconv.Itoa(index)).Convert(element)
		if err != nil {
			return false, err
		}
		if !conversion.Matched() {
			matched = false
			return false, nil
		}
		if err = values.Assign(array.Index(index), conversion.Value()); err != nil {
			return false, fmt.Errorf("failed to set element %d: %w", index, err)
		}
		return true, nil
	})
	if err != nil || !matched {
		return No(), err
	}
	return Of(array.Interface()), nil
}

func (s *Iterables) mapToMap(ctx *Context, source interface{}) (Conversion, error) {
	visit, size, err := visitor.EntriesOf(source)
	if err != nil {
		return No(), err
	}
	aMap, ok := s.Factory.Map(ctx, size)
	if !ok {
		return No(), nil
	}
	sourceKey, sourceValue := ctx.Source.Type.Generic(0), ctx.Source.Type.Generic(1)
	targetKey, targetValue := ctx.Target.Type.Generic(0), ctx.Target.Type.Generic(1)
	matched := true
	index := 0
	err = visit(func(key any, element any) (bool, error) {
		entry := strconv.Itoa(index)
		index++
		keyConversion, err := ctx.DependentPath(sourceKey, targetKey, "entries", entry, "key").Convert(key)
		if err != nil {
			return false, err
		}
		if !keyConversion.Matched() {
			matched = false
			return false, nil
		}
		valueConversion, err := ctx.DependentPath(sourceValue, targetValue, "entries", entry, "value").Convert(element)
		if err != nil {
			return false, err
		}
		if !valueConversion.Matched() {
			matched = false
			return false, nil
		}
		return true, aMap.Put(keyConversion.Value(), valueConversion.Value())
	})
	if err != nil || !matched {
		return No(), err
	}
	return Of(aMap.Value()), nil
}
