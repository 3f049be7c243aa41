package inspect

import (
	"reflect"
	"unsafe"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
	"github.com/viant/xunsafe"
)

// field represents a possibly promoted struct field
type field struct {
	name      string
	chain     []*xunsafe.Field
	leaf      *xunsafe.Field
	declaring reflect.Type
	declared  reflect.StructField
	marker    *Marker
}

func newField(owner reflect.Type, structField reflect.StructField, name string, marker *Marker) *field {
	ret := &field{name: name}
	current := owner
	for _, index := range structField.Index[:len(structField.Index)-1] {
		embedded := current.Field(index)
		ret.chain = append(ret.chain, xunsafe.NewField(embedded))
		current = structOf(embedded.Type)
	}
	ret.declaring = current
	ret.declared = current.Field(structField.Index[len(structField.Index)-1])
	ret.leaf = xunsafe.NewField(ret.declared)
	if len(ret.chain) == 0 {
		ret.marker = marker
	}
	return ret
}

// holderPointer returns pointer of the struct declaring the field, nil when an embedded pointer is nil and alloc is false
func (f *field) holderPointer(root unsafe.Pointer, alloc bool) unsafe.Pointer {
	current := root
	for _, embedded := range f.chain {
		ptr := embedded.Pointer(current)
		if embedded.Type.Kind() != reflect.Ptr {
			current = ptr
			continue
		}
		next := (*unsafe.Pointer)(ptr)
		if *next == nil {
			if !alloc {
				return nil
			}
			*next = reflect.New(embedded.Type.Elem()).UnsafePointer()
		}
		current = *next
	}
	return current
}

func (f *field) Name() string {
	return f.name
}

func (f *field) Access(holder reflect.Value) (interface{}, error) {
	ptr := f.holderPointer(holder.UnsafePointer(), false)
	if ptr == nil {
		return nil, nil
	}
	return f.leaf.Value(ptr), nil
}

func (f *field) Present(holder reflect.Value) bool {
	root := holder.UnsafePointer()
	if f.holderPointer(root, false) == nil {
		return false
	}
	return f.marker.IsSet(root, f.declared.Name)
}

func (f *field) Mutate(holder reflect.Value, value interface{}) error {
	root := holder.UnsafePointer()
	ptr := f.holderPointer(root, true)
	if value != nil && reflect.TypeOf(value) == f.leaf.Type {
		f.leaf.SetValue(ptr, value)
	} else if err := values.Assign(reflect.NewAt(f.leaf.Type, f.leaf.Pointer(ptr)).Elem(), value); err != nil {
		return err
	}
	f.marker.Set(root, f.declared.Name, true)
	return nil
}

func (f *field) Type(owner *types.Typed) *types.Typed {
	return types.FieldOf(owner, f.declaring, f.declared)
}
