package conv

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/types"
)

var (
	bigIntType   = reflect.TypeFor[*big.Int]()
	bigFloatType = reflect.TypeFor[*big.Float]()
)

// Numbers converts between numeric kinds, *big.Int, *big.Float and parses numeric, bool and duration text.
// Narrowing follows Go conversion semantics without overflow checks, text parsing failure is fatal.
type Numbers struct{}

// Name returns strategy name
func (Numbers) Name() string { return "Numbers" }

// Convert converts numeric pairs
func (Numbers) Convert(ctx *Context, source interface{}) (Conversion, error) {
	target := ctx.Target.Type.Raw()
	if values.IsNil(source) || target == nil {
		return No(), nil
	}
	value := reflect.ValueOf(source)
	isText := types.IsText(value.Type())
	switch {
	case isText && types.IsDuration(target):
		duration, err := time.ParseDuration(value.String())
		if err != nil {
			return No(), fmt.Errorf("cannot convert '%s' to %v: %w", value.String(), target, err)
		}
		return Of(duration), nil
	case isText && target.Kind() == reflect.Bool:
		flag, err := strconv.ParseBool(value.String())
		if err != nil {
			return No(), fmt.Errorf("cannot convert '%s' to %v: %w", value.String(), target, err)
		}
		return Of(reflect.ValueOf(flag).Convert(target).Interface()), nil
	case isText && isNumber(target):
		return parseNumber(value.String(), target)
	case isNumber(value.Type()) && isNumber(target):
		return convertNumber(value, target)
	}
	return No(), nil
}

func isNumber(t reflect.Type) bool {
	return t == bigIntType || t == bigFloatType || types.IsNumeric(t)
}

func parseNumber(text string, t reflect.Type) (Conversion, error) {
	var ret interface{}
	var err error
	switch t {
	case bigIntType:
		if v, ok := new(big.Int).SetString(text, 10); ok {
			ret = v
		} else {
			err = fmt.Errorf("invalid integer")
		}
	case bigFloatType:
		ret, _, err = big.ParseFloat(text, 10, 0, big.ToNearestEven)
	default:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ret, err = strconv.ParseInt(text, 10, t.Bits())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			ret, err = strconv.ParseUint(text, 10, t.Bits())
		case reflect.Float32, reflect.Float64:
			ret, err = strconv.ParseFloat(text, t.Bits())
		case reflect.Complex64, reflect.Complex128:
			ret, err = strconv.ParseComplex(text, t.Bits())
		}
		if err == nil {
			ret = reflect.ValueOf(ret).Convert(t).Interface()
		}
	}
	if err != nil {
		return No(), fmt.Errorf("cannot convert '%s' to %v: %w", text, t, err)
	}
	return Of(ret), nil
}

func convertNumber(value reflect.Value, t reflect.Type) (Conversion, error) {
	switch value.Type() {
	case bigIntType:
		return fromBigInt(value.Interface().(*big.Int), t)
	case bigFloatType:
		return fromBigFloat(value.Interface().(*big.Float), t)
	}
	switch t {
	case bigIntType:
		switch {
		case value.CanInt():
			return Of(big.NewInt(value.Int())), nil
		case value.CanUint():
			return Of(new(big.Int).SetUint64(value.Uint())), nil
		case value.CanFloat():
			f, err := bigFloat(value.Float())
			if err != nil {
				return No(), err
			}
			ret, _ := f.Int(nil)
			return Of(ret), nil
		}
		return No(), nil
	case bigFloatType:
		switch {
		case value.CanInt():
			return Of(new(big.Float).SetInt64(value.Int())), nil
		case value.CanUint():
			return Of(new(big.Float).SetUint64(value.Uint())), nil
		case value.CanFloat():
			f, err := bigFloat(value.Float())
			if err != nil {
				return No(), err
			}
			return Of(f), nil
		}
		return No(), nil
	}
	if !value.Type().ConvertibleTo(t) {
		return No(), nil
	}
	return Of(value.Convert(t).Interface()), nil
}

func bigFloat(f float64) (*big.Float, error) {
	if math.IsNaN(f) {
		return nil, fmt.Errorf("cannot convert NaN to big number")
	}
	return big.NewFloat(f), nil
}

func fromBigInt(v *big.Int, t reflect.Type) (Conversion, error) {
	switch t {
	case bigIntType:
		return Of(new(big.Int).Set(v)), nil
	case bigFloatType:
		return Of(new(big.Float).SetInt(v)), nil
	}
	return fromBig(v.Int64(), v.Uint64(), func() float64 {
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	}, t)
}

func fromBigFloat(v *big.Float, t reflect.Type) (Conversion, error) {
	switch t {
	case bigIntType:
		ret, _ := v.Int(nil)
		return Of(ret), nil
	case bigFloatType:
		return Of(new(big.Float).Copy(v)), nil
	}
	i, _ := v.Int64()
	u, _ := v.Uint64()
	return fromBig(i, u, func() float64 {
		f, _ := v.Float64()
		return f
	}, t)
}

func fromBig(i int64, u uint64, f func() float64, t reflect.Type) (Conversion, error) {
	var ret reflect.Value
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ret = reflect.ValueOf(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		ret = reflect.ValueOf(u)
	case reflect.Float32, reflect.Float64:
		ret = reflect.ValueOf(f())
	default:
		return No(), nil
	}
	return Of(ret.Convert(t).Interface()), nil
}
