package types

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// maxDepth bounds variable resolution chains
const maxDepth = 64

// CacheSize defines capacity of generic descriptor cache
const CacheSize = 4096

// Typed represents possibly generic type descriptor
type Typed struct {
	expr    Expr
	site    Site
	context *Typed

	rawOnce        sync.Once
	raw            reflect.Type
	genericsOnce   sync.Once
	generics       []*Typed
	supersOnce     sync.Once
	supers         []*Typed
	interfacesOnce sync.Once
	interfaces     []*Typed
}

// None represents missing descriptor
var None = &Typed{}

type classKey struct {
	rType reflect.Type
	site  Site
}

type typedKey struct {
	expr    Expr
	site    Site
	context *Typed
}

var (
	classes   sync.Map // map[classKey]*Typed
	genericMu sync.Mutex
	generic   = newGenericCache(CacheSize)
)

func newGenericCache(size int) *lru.Cache[typedKey, *Typed] {
	ret, err := lru.New[typedKey, *Typed](size)
	if err != nil {
		panic(err)
	}
	return ret
}

// ClassOf returns canonical class descriptor
func ClassOf(rType reflect.Type) *Typed {
	if rType == nil {
		return None
	}
	return typed(Class(rType), Site{}, nil)
}

// For returns class descriptor of T
func For[T any]() *Typed {
	return ClassOf(reflect.TypeFor[T]())
}

// TypeOf returns descriptor for supplied expression
func TypeOf(expr Expr) *Typed {
	return typed(expr, Site{}, nil)
}

// Parse parses type expression into a descriptor
func Parse(text string) (*Typed, error) {
	expr, err := ParseExpr(text)
	if err != nil {
		return nil, err
	}
	return TypeOf(expr), nil
}

// MustParse parses type expression or panics
func MustParse(text string) *Typed {
	ret, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return ret
}

// FieldOf returns declared type of a struct field resolved against owner viewed as declaring type
func FieldOf(owner *Typed, declaring reflect.Type, field reflect.StructField) *Typed {
	expr := declarationOf(declaring).member(field.Name)
	if expr == nil {
		expr = Class(field.Type)
	}
	return typed(expr, Site{Kind: FieldSite, Owner: declaring, Name: field.Name}, owner.As(declaring))
}

// ResultOf returns declared result type of a method
func ResultOf(owner *Typed, declaring reflect.Type, method reflect.Method) *Typed {
	expr := declarationOf(declaring).member(method.Name)
	if expr == nil {
		expr = Class(method.Type.Out(0))
	}
	return typed(expr, Site{Kind: ResultSite, Owner: declaring, Name: method.Name}, owner.As(declaring))
}

// ParameterOf returns declared type of a method parameter, index excludes receiver
func ParameterOf(owner *Typed, declaring reflect.Type, method reflect.Method, index int) *Typed {
	expr := declarationOf(declaring).member(method.Name)
	if expr == nil {
		expr = Class(method.Type.In(index + 1))
	}
	return typed(expr, Site{Kind: ParamSite, Owner: declaring, Name: method.Name, Index: index}, owner.As(declaring))
}

func typed(expr Expr, site Site, context *Typed) *Typed {
	if expr == nil {
		return None
	}
	if class, ok := expr.(*ClassExpr); ok {
		if class.Type == nil {
			return None
		}
		key := classKey{rType: class.Type, site: site}
		if ret, ok := classes.Load(key); ok {
			return ret.(*Typed)
		}
		ret, _ := classes.LoadOrStore(key, &Typed{expr: Class(class.Type), site: site})
		return ret.(*Typed)
	}
	if context.IsNone() {
		context = nil
	}
	key := typedKey{expr: expr, site: site, context: context}
	genericMu.Lock()
	defer genericMu.Unlock()
	if ret, ok := generic.Get(key); ok {
		return ret
	}
	ret := &Typed{expr: expr, site: site, context: context}
	generic.Add(key, ret)
	return ret
}

// IsNone returns true for missing descriptor
func (t *Typed) IsNone() bool {
	return t == nil || t.expr == nil
}

// Expr returns type expression
func (t *Typed) Expr() Expr {
	if t.IsNone() {
		return nil
	}
	return t.expr
}

// Site returns declaration site
func (t *Typed) Site() Site {
	if t.IsNone() {
		return Site{}
	}
	return t.site
}

// Context returns resolution context
func (t *Typed) Context() *Typed {
	if t.IsNone() || t.context == nil {
		return None
	}
	return t.context
}

// Raw returns runtime type or nil if descriptor can not be resolved
func (t *Typed) Raw() reflect.Type {
	if t.IsNone() {
		return nil
	}
	t.rawOnce.Do(func() {
		switch e := t.resolved().expr.(type) {
		case *ClassExpr:
			t.raw = e.Type
		case *ParamExpr:
			t.raw = e.Raw
		case *ArrayExpr:
			t.raw = Erasure(e)
		}
	})
	return t.raw
}

// IsResolved returns true if descriptor resolves to a runtime type
func (t *Typed) IsResolved() bool {
	return t.Raw() != nil
}

// resolved follows variables and wildcards until class, parameterized or array descriptor
func (t *Typed) resolved() *Typed {
	current := t
	for i := 0; i < maxDepth; i++ {
		if current.IsNone() {
			return None
		}
		switch current.expr.(type) {
		case *VarExpr, *WildcardExpr:
			current = current.resolveType()
		default:
			return current
		}
	}
	return None
}

// resolveType resolves variable or wildcard one step
func (t *Typed) resolveType() *Typed {
	switch e := t.expr.(type) {
	case *WildcardExpr:
		if len(e.Upper) > 0 && !isAnyExpr(e.Upper[0]) {
			return typed(e.Upper[0], Site{}, t.context)
		}
		if len(e.Lower) > 0 {
			return typed(e.Lower[0], Site{}, t.context)
		}
		return ClassOf(anyType)
	case *VarExpr:
		if t.context != nil {
			if ret := t.context.resolveVariable(e); ret != nil {
				return ret
			}
		}
		if len(e.Bounds) > 0 && !isAnyExpr(e.Bounds[0]) {
			return typed(e.Bounds[0], Site{}, t.context)
		}
	}
	return None
}

func isAnyExpr(expr Expr) bool {
	class, ok := expr.(*ClassExpr)
	return ok && class.Type == anyType
}

// resolveVariable resolves variable against this descriptor acting as resolution context
func (t *Typed) resolveVariable(variable *VarExpr) *Typed {
	current := t
	for i := 0; i < maxDepth && !current.IsNone(); i++ {
		resolved := current.resolved()
		if resolved.IsNone() {
			return nil
		}
		if param, ok := resolved.expr.(*ParamExpr); ok {
			for j, candidate := range declarationOf(param.Raw).Params {
				if candidate.Name == variable.Name && j < len(param.Args) {
					return typed(param.Args[j], Site{}, resolved.context)
				}
			}
			if param.Owner != nil {
				if ret := typed(param.Owner, Site{}, resolved.context).resolveVariable(variable); ret != nil {
					return ret
				}
			}
		}
		current = resolved.context
	}
	return nil
}

// Generics returns generic arguments
func (t *Typed) Generics() []*Typed {
	if t.IsNone() {
		return nil
	}
	t.genericsOnce.Do(func() {
		resolved := t.resolved()
		switch e := resolved.expr.(type) {
		case *ParamExpr:
			t.generics = make([]*Typed, len(e.Args))
			for i, arg := range e.Args {
				t.generics[i] = typed(arg, Site{}, resolved.context)
			}
		case *ClassExpr:
			if params := declarationOf(e.Type).Params; len(params) > 0 {
				t.generics = make([]*Typed, len(params))
				for i, param := range params {
					t.generics[i] = typed(param, Site{}, nil)
				}
				return
			}
			for _, arg := range nativeArgs(e.Type) {
				t.generics = append(t.generics, ClassOf(arg))
			}
		}
	})
	return t.generics
}

// Generic returns generic argument at nested index path, first argument without indexes
func (t *Typed) Generic(indexes ...int) *Typed {
	if len(indexes) == 0 {
		indexes = []int{0}
	}
	current := t
	for _, index := range indexes {
		generics := current.Generics()
		if index < 0 || index >= len(generics) {
			return None
		}
		current = generics[index]
	}
	return current
}

// HasGenerics returns true if descriptor has generic arguments
func (t *Typed) HasGenerics() bool {
	return len(t.Generics()) > 0
}

// Component returns array component descriptor
func (t *Typed) Component() *Typed {
	if t.IsNone() {
		return None
	}
	resolved := t.resolved()
	switch e := resolved.expr.(type) {
	case *ArrayExpr:
		return typed(e.Component, Site{}, resolved.context)
	case *ClassExpr:
		if e.Type.Kind() == reflect.Array {
			return ClassOf(e.Type.Elem())
		}
	}
	return None
}

// IsArray returns true for fixed size arrays
func (t *Typed) IsArray() bool {
	return !t.Component().IsNone()
}

// Supertypes returns generic views of embedded structs
func (t *Typed) Supertypes() []*Typed {
	if t.IsNone() {
		return nil
	}
	t.supersOnce.Do(func() {
		resolved := t.resolved()
		raw := resolved.Raw()
		for i, super := range declarationOf(raw).Supers {
			t.supers = append(t.supers, typed(super, Site{Kind: SuperSite, Owner: raw, Index: i}, resolved))
		}
	})
	return t.supers
}

// SuperType returns first supertype or None
func (t *Typed) SuperType() *Typed {
	if supers := t.Supertypes(); len(supers) > 0 {
		return supers[0]
	}
	return None
}

// Interfaces returns declared generic interfaces
func (t *Typed) Interfaces() []*Typed {
	if t.IsNone() {
		return nil
	}
	t.interfacesOnce.Do(func() {
		resolved := t.resolved()
		raw := resolved.Raw()
		for i, iface := range declarationOf(raw).Interfaces {
			t.interfaces = append(t.interfaces, typed(iface, Site{Kind: InterfaceSite, Owner: raw, Index: i}, resolved))
		}
	})
	return t.interfaces
}

// As returns this descriptor viewed as supplied raw supertype or interface, None if unrelated
func (t *Typed) As(raw reflect.Type) *Typed {
	return t.as(raw, map[*Typed]bool{})
}

func (t *Typed) as(raw reflect.Type, visited map[*Typed]bool) *Typed {
	if t.IsNone() || raw == nil || visited[t] {
		return None
	}
	visited[t] = true
	resolved := t.resolved()
	if resolved.IsNone() {
		return None
	}
	if resolved.Raw() == raw {
		return resolved
	}
	for _, iface := range resolved.Interfaces() {
		if ret := iface.as(raw, visited); !ret.IsNone() {
			return ret
		}
	}
	for _, super := range resolved.Supertypes() {
		if ret := super.as(raw, visited); !ret.IsNone() {
			return ret
		}
	}
	return None
}

// Equal returns true if descriptors have equal expression, site and resolution context
func (t *Typed) Equal(other *Typed) bool {
	if t == other {
		return true
	}
	if t.IsNone() || other.IsNone() {
		return t.IsNone() && other.IsNone()
	}
	return t.site == other.site && exprEqual(t.expr, other.expr) && t.Context().Equal(other.Context())
}

// String returns Go syntax representation, unresolved parts are rendered as ?
func (t *Typed) String() string {
	return t.format(map[*VarExpr]bool{})
}

func (t *Typed) format(visiting map[*VarExpr]bool) string {
	if t.IsNone() {
		return "?"
	}
	if variable, ok := t.expr.(*VarExpr); ok {
		if visiting[variable] {
			return "?"
		}
		visiting[variable] = true
		defer delete(visiting, variable)
	}
	resolved := t.resolved()
	switch e := resolved.expr.(type) {
	case *ClassExpr:
		return e.Type.String()
	case *ArrayExpr:
		return "[" + strconv.Itoa(e.Len) + "]" + resolved.Component().format(visiting)
	case *ParamExpr:
		generics := resolved.Generics()
		args := make([]string, len(generics))
		for i, arg := range generics {
			args[i] = arg.format(visiting)
		}
		return formatGeneric(e.Raw, args)
	}
	return "?"
}

// GoString returns expression with its declaration site
func (t *Typed) GoString() string {
	if t.IsNone() {
		return "types.None"
	}
	builder := strings.Builder{}
	builder.WriteString(t.expr.String())
	if site := t.site.String(); site != "" {
		builder.WriteString("@")
		builder.WriteString(site)
	}
	return builder.String()
}
