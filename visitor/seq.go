package visitor

import (
	"reflect"
)

var boolType = reflect.TypeFor[bool]()

// IsSeq returns true for func(yield func(E) bool) shaped types
func IsSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func && yield.NumIn() == 1 && yield.NumOut() == 1 && yield.Out(0) == boolType
}

// SeqVisitor implements Visitor[int, any] for iter.Seq of any element type
type SeqVisitor struct {
	data reflect.Value
}

// Visit calls the sequence with a yield function forwarding each element to f, key is the element position.
func (v *SeqVisitor) Visit(f func(key int, element any) (bool, error)) error {
	if v.data.IsNil() {
		return nil
	}
	var err error
	index := 0
	yieldType := v.data.Type().In(0)
	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		continueVisit, visitErr := f(index, args[0].Interface())
		index++
		if visitErr != nil {
			err = visitErr
			continueVisit = false
		}
		return []reflect.Value{reflect.ValueOf(continueVisit)}
	})
	v.data.Call([]reflect.Value{yield})
	return err
}
