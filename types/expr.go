package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Expr represents a declared type expression
type Expr interface {
	String() string
	erasure(seen map[*VarExpr]bool) reflect.Type
}

type (
	//ClassExpr represents a concrete runtime type
	ClassExpr struct {
		Type reflect.Type
	}

	//ParamExpr represents a parameterized type, Raw holds its erasure
	ParamExpr struct {
		Raw   reflect.Type
		Args  []Expr
		Owner Expr
	}

	//VarExpr represents a type variable
	VarExpr struct {
		Name   string
		Bounds []Expr
	}

	//WildcardExpr represents an upper or lower bounded wildcard
	WildcardExpr struct {
		Upper []Expr
		Lower []Expr
	}

	//ArrayExpr represents fixed size array of generic component
	ArrayExpr struct {
		Len       int
		Component Expr
	}
)

var classExprs sync.Map // map[reflect.Type]*ClassExpr

// Class returns canonical class expression
func Class(t reflect.Type) *ClassExpr {
	if ret, ok := classExprs.Load(t); ok {
		return ret.(*ClassExpr)
	}
	ret, _ := classExprs.LoadOrStore(t, &ClassExpr{Type: t})
	return ret.(*ClassExpr)
}

// Generic returns parameterized expression
func Generic(raw reflect.Type, args ...Expr) *ParamExpr {
	return &ParamExpr{Raw: raw, Args: args}
}

// Var returns type variable expression
func Var(name string, bounds ...Expr) *VarExpr {
	return &VarExpr{Name: name, Bounds: bounds}
}

// Extends returns upper bounded wildcard
func Extends(bounds ...Expr) *WildcardExpr {
	return &WildcardExpr{Upper: bounds}
}

// Super returns lower bounded wildcard
func Super(bounds ...Expr) *WildcardExpr {
	return &WildcardExpr{Lower: bounds}
}

// Unbounded returns unbounded wildcard
func Unbounded() *WildcardExpr {
	return &WildcardExpr{}
}

// Array returns array expression, concrete components collapse to a class expression
func Array(n int, component Expr) Expr {
	if c, ok := component.(*ClassExpr); ok {
		return Class(reflect.ArrayOf(n, c.Type))
	}
	return &ArrayExpr{Len: n, Component: component}
}

// SliceOf returns slice expression, concrete elements collapse to a class expression
func SliceOf(elem Expr) Expr {
	if c, ok := elem.(*ClassExpr); ok {
		return Class(reflect.SliceOf(c.Type))
	}
	return Generic(reflect.SliceOf(Erasure(elem)), elem)
}

// PointerTo returns pointer expression, concrete elements collapse to a class expression
func PointerTo(elem Expr) Expr {
	if c, ok := elem.(*ClassExpr); ok {
		return Class(reflect.PointerTo(c.Type))
	}
	return Generic(reflect.PointerTo(Erasure(elem)), elem)
}

// MapOf returns map expression, concrete key and value collapse to a class expression
func MapOf(key, value Expr) (Expr, error) {
	keyType := Erasure(key)
	if !keyType.Comparable() {
		return nil, fmt.Errorf("invalid map key type: %v", key)
	}
	k, isKeyClass := key.(*ClassExpr)
	v, isValueClass := value.(*ClassExpr)
	if isKeyClass && isValueClass {
		return Class(reflect.MapOf(k.Type, v.Type)), nil
	}
	return Generic(reflect.MapOf(keyType, Erasure(value)), key, value), nil
}

// Erasure returns runtime type used to store values of supplied expression
func Erasure(expr Expr) reflect.Type {
	if expr == nil {
		return anyType
	}
	return expr.erasure(map[*VarExpr]bool{})
}

func (e *ClassExpr) erasure(map[*VarExpr]bool) reflect.Type {
	return e.Type
}

func (e *ParamExpr) erasure(map[*VarExpr]bool) reflect.Type {
	return e.Raw
}

func (e *VarExpr) erasure(seen map[*VarExpr]bool) reflect.Type {
	if seen[e] || len(e.Bounds) == 0 {
		return anyType
	}
	seen[e] = true
	return e.Bounds[0].erasure(seen)
}

func (e *WildcardExpr) erasure(seen map[*VarExpr]bool) reflect.Type {
	if len(e.Upper) == 0 {
		return anyType
	}
	return e.Upper[0].erasure(seen)
}

func (e *ArrayExpr) erasure(seen map[*VarExpr]bool) reflect.Type {
	return reflect.ArrayOf(e.Len, e.Component.erasure(seen))
}

func (e *ClassExpr) String() string {
	if e.Type == nil {
		return "?"
	}
	return e.Type.String()
}

func (e *ParamExpr) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return formatGeneric(e.Raw, args)
}

func (e *VarExpr) String() string {
	return e.Name
}

func (e *WildcardExpr) String() string {
	switch {
	case len(e.Upper) > 0:
		return "? extends " + joinExprs(e.Upper, " & ")
	case len(e.Lower) > 0:
		return "? super " + joinExprs(e.Lower, " & ")
	}
	return "?"
}

func (e *ArrayExpr) String() string {
	return "[" + strconv.Itoa(e.Len) + "]" + e.Component.String()
}

func joinExprs(exprs []Expr, sep string) string {
	items := make([]string, len(exprs))
	for i, expr := range exprs {
		items[i] = expr.String()
	}
	return strings.Join(items, sep)
}

// formatGeneric renders raw type with its arguments using Go syntax
func formatGeneric(raw reflect.Type, args []string) string {
	switch raw.Kind() {
	case reflect.Slice:
		if len(args) == 1 {
			return "[]" + args[0]
		}
	case reflect.Ptr:
		if len(args) == 1 {
			return "*" + args[0]
		}
	case reflect.Chan:
		if len(args) == 1 {
			return "chan " + args[0]
		}
	case reflect.Map:
		if len(args) == 2 {
			return "map[" + args[0] + "]" + args[1]
		}
	}
	return raw.String() + "[" + strings.Join(args, ",") + "]"
}

func exprEqual(a, b Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch x := a.(type) {
	case *ClassExpr:
		y, ok := b.(*ClassExpr)
		return ok && x.Type == y.Type
	case *ParamExpr:
		y, ok := b.(*ParamExpr)
		return ok && x.Raw == y.Raw && exprsEqual(x.Args, y.Args) && exprEqual(x.Owner, y.Owner)
	case *VarExpr:
		y, ok := b.(*VarExpr)
		return ok && x.Name == y.Name
	case *WildcardExpr:
		y, ok := b.(*WildcardExpr)
		return ok && exprsEqual(x.Upper, y.Upper) && exprsEqual(x.Lower, y.Lower)
	case *ArrayExpr:
		y, ok := b.(*ArrayExpr)
		return ok && x.Len == y.Len && exprEqual(x.Component, y.Component)
	}
	return false
}

func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !exprEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
