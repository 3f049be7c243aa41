package inspect

import (
	"fmt"
	"reflect"

	"github.com/viant/transcoder/internal/cache"
	"github.com/viant/transcoder/tags"
	"github.com/viant/transcoder/types"
)

type (
	//Inspector returns attributes of struct types
	Inspector interface {
		//Accessors returns readable attributes of owner
		Accessors(owner *types.Typed) (*Accessors, error)
		//Mutators returns writable attributes of owner
		Mutators(owner *types.Typed) (*Mutators, error)
		//Mappings returns source accessors paired with equally named target mutators, in source order
		Mappings(source, target *types.Typed) ([]*Mapping, error)
	}

	//Accessor reads attribute value
	Accessor interface {
		Name() string
		//Access returns attribute value, holder is a pointer to owner struct
		Access(holder reflect.Value) (interface{}, error)
		//Present returns false if attribute value is known to be absent
		Present(holder reflect.Value) bool
		//Type returns declared attribute type resolved against owner
		Type(owner *types.Typed) *types.Typed
	}

	//Mutator writes attribute value
	Mutator interface {
		Name() string
		//Mutate sets attribute value, holder is a pointer to owner struct
		Mutate(holder reflect.Value, value interface{}) error
		//Type returns declared attribute type resolved against owner
		Type(owner *types.Typed) *types.Typed
	}

	//Mapping represents accessor and mutator sharing the same name
	Mapping struct {
		Name     string
		Accessor Accessor
		Mutator  Mutator
	}

	typePair struct {
		source reflect.Type
		target reflect.Type
	}
)

// Caching is Inspector memoizing attributes per struct type
type Caching struct {
	options   Options
	accessors *cache.Map[reflect.Type, *Accessors]
	mutators  *cache.Map[reflect.Type, *Mutators]
	mappings  *cache.Map[typePair, []*Mapping]
}

// Accessors returns readable attributes of owner
func (c *Caching) Accessors(owner *types.Typed) (*Accessors, error) {
	t, err := ownerType(owner)
	if err != nil {
		return nil, err
	}
	return c.accessors.GetOrLoad(t, func() (*Accessors, error) {
		return c.newAccessors(t)
	})
}

// Mutators returns writable attributes of owner
func (c *Caching) Mutators(owner *types.Typed) (*Mutators, error) {
	t, err := ownerType(owner)
	if err != nil {
		return nil, err
	}
	return c.mutators.GetOrLoad(t, func() (*Mutators, error) {
		return c.newMutators(t)
	})
}

// Mappings returns source accessors paired with equally named target mutators
func (c *Caching) Mappings(source, target *types.Typed) ([]*Mapping, error) {
	sourceType, err := ownerType(source)
	if err != nil {
		return nil, err
	}
	targetType, err := ownerType(target)
	if err != nil {
		return nil, err
	}
	return c.mappings.GetOrLoad(typePair{source: sourceType, target: targetType}, func() ([]*Mapping, error) {
		accessors, err := c.Accessors(source)
		if err != nil {
			return nil, err
		}
		mutators, err := c.Mutators(target)
		if err != nil {
			return nil, err
		}
		var ret []*Mapping
		for _, accessor := range accessors.Items {
			if mutator := mutators.Lookup(accessor.Name()); mutator != nil {
				ret = append(ret, &Mapping{Name: accessor.Name(), Accessor: accessor, Mutator: mutator})
			}
		}
		return ret, nil
	})
}

func (c *Caching) newAccessors(t reflect.Type) (*Accessors, error) {
	marker, err := NewMarker(t)
	if err != nil {
		return nil, fmt.Errorf("invalid %v presence marker: %w", t, err)
	}
	fields, err := c.fields(t, marker, false)
	if err != nil {
		return nil, err
	}
	ret := &Accessors{Attributes: newAttributes[Accessor](), Marker: marker}
	for _, f := range fields {
		ret.add(f.name, f)
	}
	methods := reflect.PointerTo(t)
	for i := 0; i < methods.NumMethod(); i++ {
		method := methods.Method(i)
		if name, ok := getterLabel(method); ok {
			ret.put(name, &getter{name: name, method: method, declaring: t})
		}
	}
	return ret, nil
}

func (c *Caching) newMutators(t reflect.Type) (*Mutators, error) {
	marker, err := NewMarker(t)
	if err != nil {
		return nil, fmt.Errorf("invalid %v presence marker: %w", t, err)
	}
	fields, err := c.fields(t, marker, true)
	if err != nil {
		return nil, err
	}
	ret := &Mutators{Attributes: newAttributes[Mutator](), Marker: marker}
	for _, f := range fields {
		ret.add(f.name, f)
	}
	methods := reflect.PointerTo(t)
	for i := 0; i < methods.NumMethod(); i++ {
		method := methods.Method(i)
		if name, ok := setterLabel(method); ok {
			ret.put(name, &setter{name: name, method: method, declaring: t})
		}
	}
	return ret, nil
}

func (c *Caching) fields(t reflect.Type, marker *Marker, mutable bool) ([]*field, error) {
	if _, err := types.DeclarationOf(t); err != nil {
		return nil, err
	}
	var ret []*field
	for _, structField := range reflect.VisibleFields(t) {
		if structField.Name == "_" || IsMarker(structField.Tag) {
			continue
		}
		if structField.Anonymous && structOf(structField.Type) != nil {
			continue
		}
		if !structField.IsExported() && !c.options.AccessUnexported {
			continue
		}
		tag, err := tags.Parse(structField.Tag)
		if err != nil {
			return nil, fmt.Errorf("%v.%v: %w", t, structField.Name, err)
		}
		if tag.Ignore || (mutable && tag.ReadOnly) {
			continue
		}
		name := structField.Name
		if tag.Name != "" {
			name = tag.Name
		}
		ret = append(ret, newField(t, structField, name, marker))
	}
	return ret, nil
}

func ownerType(owner *types.Typed) (reflect.Type, error) {
	ret := structOf(owner.Raw())
	if ret == nil {
		return nil, fmt.Errorf("unsupported attribute owner: %v", owner)
	}
	return ret, nil
}

// NewCaching creates caching inspector
func NewCaching(opts ...Option) *Caching {
	ret := &Caching{
		accessors: cache.New[reflect.Type, *Accessors](cache.TypeKey),
		mutators:  cache.New[reflect.Type, *Mutators](cache.TypeKey),
		mappings: cache.New[typePair, []*Mapping](func(pair typePair) string {
			return cache.TypeKey(pair.source) + "/" + cache.TypeKey(pair.target)
		}),
	}
	ret.options.Apply(opts)
	return ret
}
