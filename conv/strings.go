package conv

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

// Strings converts any value into text target
type Strings struct{}

// Name returns strategy name
func (Strings) Name() string { return "Strings" }

// Convert formats source
func (Strings) Convert(ctx *Context, source interface{}) (Conversion, error) {
	target := ctx.Target.Type.Raw()
	if values.IsNil(source) || !types.IsText(target) {
		return No(), nil
	}
	text, err := formatText(reflect.ValueOf(source))
	if err != nil {
		return No(), err
	}
	return Of(reflect.ValueOf(text).Convert(target).Interface()), nil
}

func formatText(value reflect.Value) (string, error) {
	switch actual := value.Interface().(type) {
	case encoding.TextMarshaler:
		text, err := actual.MarshalText()
		if err != nil {
			return "", fmt.Errorf("failed to marshal %T: %w", actual, err)
		}
		return string(text), nil
	case fmt.Stringer:
		return actual.String(), nil
	}
	switch value.Kind() {
	case reflect.String:
		return value.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(value.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(value.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(value.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(value.Float(), 'f', -1, 64), nil
	case reflect.Slice:
		if types.IsBytes(value.Type()) {
			return string(value.Bytes()), nil
		}
	}
	return fmt.Sprint(value.Interface()), nil
}
