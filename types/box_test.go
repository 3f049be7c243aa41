package types

import (
	"database/sql"
	"reflect"
	"sync/atomic"
	"testing"
	"weak"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestBoxOf(t *testing.T) {
	var testCases = []struct {
		description string
		rType       reflect.Type
		expectKind  BoxKind
		expectInner reflect.Type
	}{
		{description: "pointer", rType: reflect.TypeFor[*int](), expectKind: BoxPointer, expectInner: reflect.TypeFor[int]()},
		{description: "sql null", rType: reflect.TypeFor[sql.NullString](), expectKind: BoxOptional, expectInner: reflect.TypeFor[string]()},
		{description: "atomic scalar", rType: reflect.TypeFor[*atomic.Int64](), expectKind: BoxScalar, expectInner: reflect.TypeFor[int64]()},
		{description: "atomic pointer", rType: reflect.TypeFor[*atomic.Pointer[string]](), expectKind: BoxReference, expectInner: reflect.TypeFor[*string]()},
		{description: "atomic value", rType: reflect.TypeFor[*atomic.Value](), expectKind: BoxReference, expectInner: reflect.TypeFor[any]()},
		{description: "weak pointer", rType: reflect.TypeFor[weak.Pointer[int]](), expectKind: BoxReference, expectInner: reflect.TypeFor[*int]()},
		{description: "protobuf wrapper", rType: reflect.TypeFor[*wrapperspb.Int64Value](), expectKind: BoxWrapper, expectInner: reflect.TypeFor[int64]()},
	}

	for _, testCase := range testCases {
		box := BoxOf(testCase.rType)
		if !assert.NotNil(t, box, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectKind, box.Kind(), testCase.description)
		assert.Equal(t, testCase.expectInner, box.Inner(testCase.rType), testCase.description)
	}
	assert.Nil(t, BoxOf(reflect.TypeFor[int]()))
	assert.Nil(t, BoxOf(reflect.TypeFor[[]int]()))
}

func TestBox_WrapUnwrap(t *testing.T) {
	var testCases = []struct {
		description string
		rType       reflect.Type
		inner       any
		emptyAbsent bool
	}{
		{description: "pointer", rType: reflect.TypeFor[*int](), inner: 3, emptyAbsent: true},
		{description: "sql null", rType: reflect.TypeFor[sql.NullString](), inner: "abc", emptyAbsent: true},
		{description: "atomic scalar", rType: reflect.TypeFor[*atomic.Int64](), inner: int64(7)},
		{description: "protobuf wrapper", rType: reflect.TypeFor[*wrapperspb.StringValue](), inner: "xyz", emptyAbsent: true},
	}

	for _, testCase := range testCases {
		box := BoxOf(testCase.rType)
		wrapped, ok := box.Wrap(testCase.rType, reflect.ValueOf(testCase.inner))
		if !assert.True(t, ok, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.rType, wrapped.Type(), testCase.description)
		inner, ok := box.Unwrap(wrapped)
		assert.True(t, ok, testCase.description)
		assert.Equal(t, testCase.inner, inner.Interface(), testCase.description)

		empty, _ := box.Wrap(testCase.rType, reflect.Value{})
		_, ok = box.Unwrap(empty)
		assert.Equal(t, !testCase.emptyAbsent, ok, testCase.description)
	}
}

func TestBox_Weak(t *testing.T) {
	rType := reflect.TypeFor[weak.Pointer[int]]()
	box := BoxOf(rType)
	value := 5
	inner, ok := box.Unwrap(reflect.ValueOf(weak.Make(&value)))
	assert.True(t, ok)
	assert.Equal(t, 5, inner.Elem().Interface())
	_, ok = box.Wrap(rType, reflect.ValueOf(&value))
	assert.False(t, ok)
	_, ok = box.Wrap(rType, reflect.Value{})
	assert.True(t, ok)
}
