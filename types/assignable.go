package types

import "reflect"

type boundKind uint8

const (
	upperBound boundKind = iota
	lowerBound
)

type wildcardBounds struct {
	kind   boundKind
	bounds []*Typed
}

// IsAssignableFrom returns true if a value described by other can be assigned to a value described by t,
// generic arguments are matched exactly
func (t *Typed) IsAssignableFrom(other *Typed) bool {
	return t.isAssignableFrom(other, true, nil, false)
}

// IsAssignableFromResolvedPart is IsAssignableFrom that accepts unresolvable parts of other
func (t *Typed) IsAssignableFromResolvedPart(other *Typed) bool {
	return t.isAssignableFrom(other, false, nil, true)
}

// AssignableTo returns true if t can be assigned to target
func (t *Typed) AssignableTo(target *Typed) bool {
	return target.IsAssignableFrom(t)
}

// IsInstance returns true if supplied value can be assigned to t
func (t *Typed) IsInstance(value any) bool {
	if value == nil {
		return IsNillable(t.Raw())
	}
	return t.IsAssignableFrom(ClassOf(reflect.TypeOf(value)))
}

func (t *Typed) isAssignableFrom(other *Typed, strict bool, matched map[Expr]Expr, upUntilUnresolvable bool) bool {
	if t.IsNone() || other.IsNone() {
		return false
	}
	if matched != nil {
		if prev, ok := matched[t.expr]; ok && prev == other.expr {
			return true
		}
	} else if our, ok := t.expr.(*ClassExpr); ok {
		if their, ok := other.expr.(*ClassExpr); ok && our.Type.Kind() != reflect.Array && their.Type.Kind() != reflect.Array {
			return their.Type.AssignableTo(our.Type)
		}
	}
	if t.IsArray() {
		if !other.IsArray() || t.Raw().Len() != other.Raw().Len() {
			return false
		}
		return t.Component().isAssignableFrom(other.Component(), true, matched, upUntilUnresolvable)
	}
	if upUntilUnresolvable && (other.isUnresolvableVar() || other.isUnboundedWildcard()) {
		return true
	}
	exactMatch := strict && matched != nil

	ourBounds := t.wildcardBounds()
	theirBounds := other.wildcardBounds()
	if theirBounds != nil {
		switch {
		case ourBounds != nil:
			return ourBounds.kind == theirBounds.kind && ourBounds.isAssignableFromAll(theirBounds.bounds)
		case upUntilUnresolvable:
			return theirBounds.isAssignableFrom(t)
		case !exactMatch:
			return theirBounds.isAssignableTo(t)
		}
		return false
	}
	if ourBounds != nil {
		return ourBounds.isAssignableFrom(other)
	}

	checkGenerics := true
	var ourRaw reflect.Type
	if variable, ok := t.expr.(*VarExpr); ok {
		if resolved := t.Context().resolveVariable(variable); resolved != nil {
			ourRaw = resolved.Raw()
		}
		if ourRaw == nil {
			if resolved := other.Context().resolveVariable(variable); resolved != nil {
				if ourRaw = resolved.Raw(); ourRaw != nil {
					checkGenerics = false
				}
			}
		}
		if ourRaw == nil {
			exactMatch = false
		}
	}
	if ourRaw == nil {
		ourRaw = rawOrAny(t)
	}
	otherRaw := rawOrAny(other)

	view := other
	if isStructural(ourRaw) {
		if ourRaw.Kind() != otherRaw.Kind() {
			return false
		}
		if exactMatch && !t.HasGenerics() && ourRaw != otherRaw {
			return false
		}
	} else {
		if exactMatch {
			if ourRaw != otherRaw {
				return false
			}
		} else if !otherRaw.AssignableTo(ourRaw) {
			return false
		}
		if ourRaw != anyType {
			view = other.As(ourRaw)
		}
	}
	if !checkGenerics {
		return true
	}
	ourGenerics := t.Generics()
	theirGenerics := view.Generics()
	if len(ourGenerics) != len(theirGenerics) {
		return false
	}
	if len(ourGenerics) == 0 {
		return true
	}
	if matched == nil {
		matched = map[Expr]Expr{}
	}
	matched[t.expr] = other.expr
	for i, generic := range ourGenerics {
		if !generic.isAssignableFrom(theirGenerics[i], true, matched, upUntilUnresolvable) {
			return false
		}
	}
	return true
}

// isStructural returns true for composite kinds whose erasure is not a supertype of their instances
func isStructural(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr, reflect.Chan:
		return true
	case reflect.Func:
		_, ok := seqElem(t)
		return ok
	}
	return false
}

func rawOrAny(t *Typed) reflect.Type {
	if raw := t.Raw(); raw != nil {
		return raw
	}
	return anyType
}

func (t *Typed) isUnresolvableVar() bool {
	variable, ok := t.expr.(*VarExpr)
	if !ok {
		return false
	}
	if t.Context().resolveVariable(variable) != nil {
		return false
	}
	for _, bound := range variable.Bounds {
		if !isAnyExpr(bound) {
			return false
		}
	}
	return true
}

func (t *Typed) isUnboundedWildcard() bool {
	wildcard, ok := t.expr.(*WildcardExpr)
	if !ok {
		return false
	}
	if len(wildcard.Lower) > 0 {
		return false
	}
	return len(wildcard.Upper) == 0 || (len(wildcard.Upper) == 1 && isAnyExpr(wildcard.Upper[0]))
}

// wildcardBounds returns bounds of a wildcard, variables are resolved first
func (t *Typed) wildcardBounds() *wildcardBounds {
	current := t
	for i := 0; i < maxDepth && !current.IsNone(); i++ {
		switch e := current.expr.(type) {
		case *VarExpr:
			current = current.resolveType()
			continue
		case *WildcardExpr:
			ret := &wildcardBounds{kind: upperBound}
			exprs := e.Upper
			if len(e.Lower) > 0 {
				ret.kind, exprs = lowerBound, e.Lower
			}
			if len(exprs) == 0 {
				exprs = []Expr{Class(anyType)}
			}
			for _, expr := range exprs {
				ret.bounds = append(ret.bounds, typed(expr, Site{}, current.context))
			}
			return ret
		}
		return nil
	}
	return nil
}

func (b *wildcardBounds) isAssignableFrom(other *Typed) bool {
	for _, bound := range b.bounds {
		if !b.isAssignable(bound, other) {
			return false
		}
	}
	return true
}

func (b *wildcardBounds) isAssignableFromAll(others []*Typed) bool {
	for _, other := range others {
		if !b.isAssignableFrom(other) {
			return false
		}
	}
	return true
}

func (b *wildcardBounds) isAssignableTo(target *Typed) bool {
	if b.kind == lowerBound {
		return rawOrAny(target) == anyType
	}
	for _, bound := range b.bounds {
		if target.isAssignableFrom(bound, false, nil, false) {
			return true
		}
	}
	return false
}

func (b *wildcardBounds) isAssignable(bound, other *Typed) bool {
	if b.kind == upperBound {
		return bound.isAssignableFrom(other, false, nil, false)
	}
	return other.isAssignableFrom(bound, false, nil, false)
}
