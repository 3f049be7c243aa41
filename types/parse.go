package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/parsly"
)

type scope struct {
	vars  map[string]*VarExpr
	names map[string]reflect.Type
}

func newScope(params []*VarExpr, hints ...reflect.Type) *scope {
	ret := &scope{vars: map[string]*VarExpr{}, names: hintNames(hints...)}
	for _, param := range params {
		ret.vars[param.Name] = param
	}
	return ret
}

func (s *scope) lookup(name string) (reflect.Type, bool) {
	if t, ok := s.names[name]; ok {
		return t, true
	}
	return Lookup(name)
}

// ParseExpr parses type expression, names are resolved against registered types
func ParseExpr(text string) (Expr, error) {
	return parseExpr(text, newScope(nil))
}

func parseExpr(text string, s *scope) (Expr, error) {
	p := &parser{cursor: parsly.NewCursor("", []byte(text), 0), scope: s}
	ret, err := p.parseType()
	if err == nil && p.peek() != 0 {
		err = p.unexpected()
	}
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", text, err)
	}
	return ret, nil
}

// parseParams parses type parameter declarations, i.e. "K", "V extends fmt.Stringer"
func parseParams(items []string, hints ...reflect.Type) ([]*VarExpr, error) {
	ret := make([]*VarExpr, len(items))
	bounds := make([]string, len(items))
	for i, item := range items {
		name := item
		if index := strings.Index(item, " extends "); index != -1 {
			name, bounds[i] = item[:index], strings.TrimSpace(item[index+len(" extends "):])
		}
		name = strings.TrimSpace(name)
		if name == "" || (identifier{}).Match(parsly.NewCursor("", []byte(name), 0)) != len(name) {
			return nil, fmt.Errorf("invalid type parameter: %q", item)
		}
		ret[i] = Var(name)
	}
	s := newScope(ret, hints...)
	for i, bound := range bounds {
		if bound == "" {
			continue
		}
		p := &parser{cursor: parsly.NewCursor("", []byte(bound), 0), scope: s}
		exprs, err := p.parseBounds()
		if err == nil && p.peek() != 0 {
			err = p.unexpected()
		}
		if err != nil {
			return nil, fmt.Errorf("invalid %v bound %q: %w", ret[i].Name, bound, err)
		}
		ret[i].Bounds = exprs
	}
	return ret, nil
}

type parser struct {
	cursor *parsly.Cursor
	scope  *scope
}

func (p *parser) skip() {
	p.cursor.MatchAny(whitespaceMatcher)
}

// peek returns next non whitespace byte or 0
func (p *parser) peek() byte {
	p.skip()
	if p.cursor.Pos < len(p.cursor.Input) {
		return p.cursor.Input[p.cursor.Pos]
	}
	return 0
}

func (p *parser) unexpected() error {
	if p.cursor.Pos >= len(p.cursor.Input) {
		return fmt.Errorf("unexpected end of input")
	}
	return fmt.Errorf("unexpected %q at %d", p.cursor.Input[p.cursor.Pos:], p.cursor.Pos)
}

func (p *parser) expect(token *parsly.Token) error {
	p.skip()
	if match := p.cursor.MatchAny(token); match.Code != token.Code {
		return fmt.Errorf("expected %v: %w", token.Name, p.unexpected())
	}
	return nil
}

func (p *parser) parseType() (Expr, error) {
	p.skip()
	match := p.cursor.MatchAny(questionMatcher, starMatcher, openBracketMatcher, identifierMatcher)
	switch match.Code {
	case questionToken:
		return p.parseWildcard()
	case starToken:
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return PointerTo(elem), nil
	case openBracketToken:
		p.skip()
		match = p.cursor.MatchAny(closeBracketMatcher, digitsMatcher)
		switch match.Code {
		case closeBracketToken:
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return SliceOf(elem), nil
		case digitsToken:
			n, err := strconv.Atoi(match.Text(p.cursor))
			if err != nil {
				return nil, err
			}
			if err = p.expect(closeBracketMatcher); err != nil {
				return nil, err
			}
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return Array(n, elem), nil
		}
		return nil, p.unexpected()
	case identifierToken:
		return p.parseNamed(match.Text(p.cursor))
	}
	return nil, p.unexpected()
}

func (p *parser) parseNamed(name string) (Expr, error) {
	if name == "map" {
		if err := p.expect(openBracketMatcher); err != nil {
			return nil, err
		}
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err = p.expect(closeBracketMatcher); err != nil {
			return nil, err
		}
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return MapOf(key, value)
	}
	var args []Expr
	if p.peek() == '[' {
		p.cursor.MatchAny(openBracketMatcher)
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skip()
			match := p.cursor.MatchAny(commaMatcher, closeBracketMatcher)
			if match.Code == closeBracketToken {
				break
			}
			if match.Code != commaToken {
				return nil, p.unexpected()
			}
		}
	}
	if variable, ok := p.scope.vars[name]; ok {
		if len(args) > 0 {
			return nil, fmt.Errorf("type variable %v can not have arguments", name)
		}
		return variable, nil
	}
	rType, ok := p.scope.lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %v", name)
	}
	if len(args) == 0 {
		return Class(rType), nil
	}
	return Generic(rType, args...), nil
}

func (p *parser) parseWildcard() (Expr, error) {
	p.skip()
	pos := p.cursor.Pos
	if match := p.cursor.MatchAny(identifierMatcher); match.Code == identifierToken {
		switch match.Text(p.cursor) {
		case "extends":
			bounds, err := p.parseBounds()
			if err != nil {
				return nil, err
			}
			return Extends(bounds...), nil
		case "super":
			bounds, err := p.parseBounds()
			if err != nil {
				return nil, err
			}
			return Super(bounds...), nil
		}
	}
	p.cursor.Pos = pos
	return Unbounded(), nil
}

func (p *parser) parseBounds() ([]Expr, error) {
	var ret []Expr
	for {
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ret = append(ret, bound)
		if p.peek() != '&' {
			return ret, nil
		}
		p.cursor.MatchAny(ampersandMatcher)
	}
}
