package inspect

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/viant/xunsafe"
)

const (
	//MarkerTag defines presence marker tag
	MarkerTag = "presenceMarker"

	legacyMarkerTag = "setMarker"
)

// IsMarker returns true if field tag defines presence marker holder
func IsMarker(tag reflect.StructTag) bool {
	if _, ok := tag.Lookup(MarkerTag); ok {
		return true
	}
	value, ok := tag.Lookup(legacyMarkerTag)
	return ok && strings.EqualFold(value, "true")
}

// Marker tracks which struct fields carry a value with per field bool flags
type Marker struct {
	holder *xunsafe.Field
	flags  map[string]*xunsafe.Field
}

// IsSet returns true if field flag is set, fields are assumed set when there is no flag holder
func (m *Marker) IsSet(ptr unsafe.Pointer, name string) bool {
	if m == nil {
		return true
	}
	flag, ok := m.flags[name]
	if !ok {
		return true
	}
	holderPtr := m.holderPointer(ptr)
	if holderPtr == nil {
		return true
	}
	return flag.Bool(holderPtr)
}

// Set sets field flag, nil flag holder is allocated
func (m *Marker) Set(ptr unsafe.Pointer, name string, value bool) {
	if m == nil {
		return
	}
	flag, ok := m.flags[name]
	if !ok {
		return
	}
	m.EnsureHolder(ptr)
	flag.SetBool(m.holderPointer(ptr), value)
}

// EnsureHolder allocates nil pointer flag holder
func (m *Marker) EnsureHolder(ptr unsafe.Pointer) {
	if m.holder.Type.Kind() != reflect.Ptr {
		return
	}
	next := (*unsafe.Pointer)(m.holder.Pointer(ptr))
	if *next == nil {
		*next = reflect.New(m.holder.Type.Elem()).UnsafePointer()
	}
}

func (m *Marker) holderPointer(ptr unsafe.Pointer) unsafe.Pointer {
	if m.holder.Type.Kind() != reflect.Ptr {
		return m.holder.Pointer(ptr)
	}
	return *(*unsafe.Pointer)(m.holder.Pointer(ptr))
}

// NewMarker returns presence marker of supplied struct type or nil if the type has no marker field
func NewMarker(t reflect.Type) (*Marker, error) {
	if t = structOf(t); t == nil {
		return nil, fmt.Errorf("supplied type is not struct")
	}
	var ret *Marker
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !IsMarker(field.Tag) {
			continue
		}
		holderType := structOf(field.Type)
		if holderType == nil {
			return nil, fmt.Errorf("marker field %v: expected struct, but had %v", field.Name, field.Type)
		}
		ret = &Marker{holder: xunsafe.NewField(field), flags: map[string]*xunsafe.Field{}}
		for j := 0; j < holderType.NumField(); j++ {
			flag := holderType.Field(j)
			if flag.Type.Kind() != reflect.Bool {
				continue
			}
			if _, ok := t.FieldByName(flag.Name); !ok {
				return nil, fmt.Errorf("marker field: '%v' does not have corresponding struct field", flag.Name)
			}
			ret.flags[flag.Name] = xunsafe.NewField(flag)
		}
	}
	return ret, nil
}

func structOf(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return t
	}
	return nil
}
