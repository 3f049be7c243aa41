package types

import (
	"reflect"
	"strconv"
)

// SiteKind defines declaration site kind
type SiteKind uint8

const (
	//NoSite represents descriptor created outside of any declaration
	NoSite SiteKind = iota
	//FieldSite represents struct field declaration
	FieldSite
	//ResultSite represents method result declaration
	ResultSite
	//ParamSite represents method parameter declaration
	ParamSite
	//SuperSite represents embedded supertype declaration
	SuperSite
	//InterfaceSite represents declared interface
	InterfaceSite
)

// Site represents a declaration site
type Site struct {
	Kind  SiteKind
	Owner reflect.Type
	Name  string
	Index int
}

// Tag returns struct tag of a field site
func (s Site) Tag() reflect.StructTag {
	if s.Kind != FieldSite || s.Owner == nil || s.Owner.Kind() != reflect.Struct {
		return ""
	}
	if field, ok := s.Owner.FieldByName(s.Name); ok {
		return field.Tag
	}
	return ""
}

func (s Site) String() string {
	switch s.Kind {
	case FieldSite:
		return s.Owner.String() + "." + s.Name
	case ResultSite:
		return s.Owner.String() + "." + s.Name + "()"
	case ParamSite:
		return s.Owner.String() + "." + s.Name + "(#" + strconv.Itoa(s.Index) + ")"
	case SuperSite:
		return s.Owner.String() + "^" + strconv.Itoa(s.Index)
	case InterfaceSite:
		return s.Owner.String() + "~" + strconv.Itoa(s.Index)
	}
	return ""
}
