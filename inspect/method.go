package inspect

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

var (
	boolType  = reflect.TypeFor[bool]()
	errorType = reflect.TypeFor[error]()
)

// getter represents GetX() or IsX() bool method
type getter struct {
	name      string
	method    reflect.Method
	declaring reflect.Type
}

func (g *getter) Name() string {
	return g.name
}

func (g *getter) Access(holder reflect.Value) (interface{}, error) {
	result, err := call(holder.Method(g.method.Index), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %v.%v: %w", g.declaring, g.method.Name, err)
	}
	return result[0].Interface(), nil
}

func (g *getter) Present(reflect.Value) bool {
	return true
}

func (g *getter) Type(owner *types.Typed) *types.Typed {
	return types.ResultOf(owner, g.declaring, g.method)
}

// setter represents SetX(v) method optionally returning an error
type setter struct {
	name      string
	method    reflect.Method
	declaring reflect.Type
}

func (s *setter) Name() string {
	return s.name
}

func (s *setter) Mutate(holder reflect.Value, value interface{}) error {
	arg := reflect.New(s.method.Type.In(1)).Elem()
	if err := values.Assign(arg, value); err != nil {
		return err
	}
	result, err := call(holder.Method(s.method.Index), []reflect.Value{arg})
	if err != nil {
		return fmt.Errorf("failed to call %v.%v: %w", s.declaring, s.method.Name, err)
	}
	if len(result) == 1 && !result[0].IsNil() {
		return result[0].Interface().(error)
	}
	return nil
}

func (s *setter) Type(owner *types.Typed) *types.Typed {
	return types.ParameterOf(owner, s.declaring, s.method, 0)
}

// call invokes method converting panics into errors
func call(method reflect.Value, args []reflect.Value) (result []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return method.Call(args), nil
}

// getterLabel returns attribute label of a getter method
func getterLabel(method reflect.Method) (string, bool) {
	if !method.IsExported() || method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
		return "", false
	}
	if label, ok := label(method.Name, "Get"); ok {
		return label, true
	}
	if method.Type.Out(0) == boolType {
		return label(method.Name, "Is")
	}
	return "", false
}

// setterLabel returns attribute label of a setter method
func setterLabel(method reflect.Method) (string, bool) {
	if !method.IsExported() || method.Type.NumIn() != 2 {
		return "", false
	}
	switch method.Type.NumOut() {
	case 0:
	case 1:
		if method.Type.Out(0) != errorType {
			return "", false
		}
	default:
		return "", false
	}
	return label(method.Name, "Set")
}

func label(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return "", false
	}
	ret := name[len(prefix):]
	if r, _ := utf8.DecodeRuneInString(ret); !unicode.IsUpper(r) {
		return "", false
	}
	return ret, true
}
