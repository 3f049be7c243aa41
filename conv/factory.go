package conv

import (
	"reflect"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
	"github.com/viant/transcoder/visitor"
)

type (
	//Collection accumulates converted elements
	Collection interface {
		Add(element interface{}) error
		//Value returns the built container
		Value() interface{}
	}

	//MapCollection accumulates converted entries
	MapCollection interface {
		Put(key, value interface{}) error
		//Value returns the built map
		Value() interface{}
	}

	//CollectionFactory creates containers for the context target type, size < 0 means unknown size
	CollectionFactory interface {
		Collection(ctx *Context, size int) (Collection, bool)
		Map(ctx *Context, size int) (MapCollection, bool)
	}

	//Factories is a chain of factories, the first one supporting the target wins
	Factories []CollectionFactory

	builtin struct{}
)

// Builtin creates slices, sequences, set maps and maps
var Builtin CollectionFactory = builtin{}

// Collection returns collection of the first factory supporting target
func (f Factories) Collection(ctx *Context, size int) (Collection, bool) {
	for _, factory := range f {
		if ret, ok := factory.Collection(ctx, size); ok {
			return ret, true
		}
	}
	return nil, false
}

// Map returns map of the first factory supporting target
func (f Factories) Map(ctx *Context, size int) (MapCollection, bool) {
	for _, factory := range f {
		if ret, ok := factory.Map(ctx, size); ok {
			return ret, true
		}
	}
	return nil, false
}

func (builtin) Collection(ctx *Context, size int) (Collection, bool) {
	t := ctx.Target.Type.Raw()
	if t == nil {
		return nil, false
	}
	switch t.Kind() {
	case reflect.Slice:
		return newSliceCollection(t, size), true
	case reflect.Map:
		if visitor.IsSet(t) {
			return &setCollection{value: reflect.MakeMapWithSize(t, max(size, 0))}, true
		}
	case reflect.Func:
		if visitor.IsSeq(t) {
			return &seqCollection{seqType: t, items: newSliceCollection(reflect.SliceOf(t.In(0).In(0)), size)}, true
		}
	case reflect.Interface:
		if !ctx.Target.Type.HasGenerics() {
			return nil, false
		}
		sliceType := reflect.SliceOf(rawOrAny(ctx.Target.Type.Generic(0)))
		if sliceType.Implements(t) {
			return newSliceCollection(sliceType, size), true
		}
	}
	return nil, false
}

func (builtin) Map(ctx *Context, size int) (MapCollection, bool) {
	t := ctx.Target.Type.Raw()
	if t == nil {
		return nil, false
	}
	switch t.Kind() {
	case reflect.Map:
		return &mapCollection{value: reflect.MakeMapWithSize(t, max(size, 0))}, true
	case reflect.Interface:
		if len(ctx.Target.Type.Generics()) != 2 {
			return nil, false
		}
		key := rawOrAny(ctx.Target.Type.Generic(0))
		if !key.Comparable() {
			return nil, false
		}
		mapType := reflect.MapOf(key, rawOrAny(ctx.Target.Type.Generic(1)))
		if mapType.Implements(t) {
			return &mapCollection{value: reflect.MakeMapWithSize(mapType, max(size, 0))}, true
		}
	}
	return nil, false
}

func rawOrAny(t *types.Typed) reflect.Type {
	if raw := t.Raw(); raw != nil {
		return raw
	}
	return types.Any()
}

type sliceCollection struct {
	value reflect.Value
}

func newSliceCollection(t reflect.Type, size int) *sliceCollection {
	return &sliceCollection{value: reflect.MakeSlice(t, 0, max(size, 0))}
}

func (c *sliceCollection) Add(element interface{}) error {
	item := reflect.New(c.value.Type().Elem()).Elem()
	if err := values.Assign(item, element); err != nil {
		return err
	}
	c.value = reflect.Append(c.value, item)
	return nil
}

func (c *sliceCollection) Value() interface{} {
	return c.value.Interface()
}

type setCollection struct {
	value reflect.Value
}

func (c *setCollection) Add(element interface{}) error {
	key := reflect.New(c.value.Type().Key()).Elem()
	if err := values.Assign(key, element); err != nil {
		return err
	}
	c.value.SetMapIndex(key, reflect.Zero(c.value.Type().Elem()))
	return nil
}

func (c *setCollection) Value() interface{} {
	return c.value.Interface()
}

// seqCollection collects elements and replays them from an iter.Seq shaped function
type seqCollection struct {
	seqType reflect.Type
	items   *sliceCollection
}

func (c *seqCollection) Add(element interface{}) error {
	return c.items.Add(element)
}

func (c *seqCollection) Value() interface{} {
	items := c.items.value
	return reflect.MakeFunc(c.seqType, func(args []reflect.Value) []reflect.Value {
		yield := args[0]
		for i := 0; i < items.Len(); i++ {
			if !yield.Call([]reflect.Value{items.Index(i)})[0].Bool() {
				break
			}
		}
		return nil
	}).Interface()
}

type mapCollection struct {
	value reflect.Value
}

func (c *mapCollection) Put(key, value interface{}) error {
	k := reflect.New(c.value.Type().Key()).Elem()
	if err := values.Assign(k, key); err != nil {
		return err
	}
	v := reflect.New(c.value.Type().Elem()).Elem()
	if err := values.Assign(v, value); err != nil {
		return err
	}
	c.value.SetMapIndex(k, v)
	return nil
}

func (c *mapCollection) Value() interface{} {
	return c.value.Interface()
}
