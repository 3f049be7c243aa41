package types

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/transcoder/tags"
)

// Declaration represents generic declaration of a type
type Declaration struct {
	//Params type parameters
	Params []*VarExpr
	//Supers generic views of embedded types, in field order
	Supers []Expr
	//Interfaces declared generic interfaces
	Interfaces []Expr
	//Members declared types of fields, method results and setter params keyed by member name
	Members map[string]Expr
}

type declared struct {
	declaration *Declaration
	err         error
}

var (
	declarations     sync.Map // map[reflect.Type]*declared
	emptyDeclaration = &Declaration{}
)

// Declare registers declaration for supplied type, it has to be called before the type is used
func Declare(t reflect.Type, declaration *Declaration) {
	if declaration == nil {
		declaration = emptyDeclaration
	}
	declarations.Store(t, &declared{declaration: declaration})
}

// DeclarationOf returns declaration of supplied type, struct types are declared with transcoder tags
func DeclarationOf(t reflect.Type) (*Declaration, error) {
	if t == nil {
		return emptyDeclaration, nil
	}
	if ret, ok := declarations.Load(t); ok {
		entry := ret.(*declared)
		return entry.declaration, entry.err
	}
	declaration, err := declareWithTags(t)
	if err != nil {
		declaration = emptyDeclaration
		err = fmt.Errorf("failed to declare %v: %w", t, err)
	}
	ret, _ := declarations.LoadOrStore(t, &declared{declaration: declaration, err: err})
	entry := ret.(*declared)
	return entry.declaration, entry.err
}

func declarationOf(t reflect.Type) *Declaration {
	ret, _ := DeclarationOf(t)
	return ret
}

func (d *Declaration) member(name string) Expr {
	if d.Members == nil {
		return nil
	}
	return d.Members[name]
}

func declareWithTags(t reflect.Type) (*Declaration, error) {
	if t.Kind() != reflect.Struct {
		return emptyDeclaration, nil
	}
	ret := &Declaration{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Name != "_" {
			continue
		}
		tag, err := tags.Parse(field.Tag)
		if err != nil {
			return nil, err
		}
		if len(tag.Params) == 0 {
			continue
		}
		params, err := parseParams(tag.Params, t)
		if err != nil {
			return nil, err
		}
		ret.Params = append(ret.Params, params...)
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Name == "_" {
			continue
		}
		tag, err := tags.Parse(field.Tag)
		if err != nil {
			return nil, fmt.Errorf("field %v: %w", field.Name, err)
		}
		var expr Expr
		if tag.Type != "" {
			if expr, err = parseExpr(tag.Type, newScope(ret.Params, t, field.Type)); err != nil {
				return nil, fmt.Errorf("field %v: %w", field.Name, err)
			}
		}
		if embedded := structOf(field.Type); field.Anonymous && embedded != nil {
			if expr == nil {
				expr = Class(embedded)
			}
			ret.Supers = append(ret.Supers, expr)
			continue
		}
		if expr == nil {
			continue
		}
		if ret.Members == nil {
			ret.Members = map[string]Expr{}
		}
		ret.Members[field.Name] = expr
	}
	return ret, nil
}

func structOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return t
	}
	return nil
}
