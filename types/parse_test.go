package types

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpr(t *testing.T) {
	var testCases = []struct {
		description string
		text        string
		expect      string
		expectRaw   reflect.Type
		expectError bool
	}{
		{description: "basic", text: "int", expect: "int", expectRaw: reflect.TypeFor[int]()},
		{description: "slice of pointers", text: "[]*int", expect: "[]*int", expectRaw: reflect.TypeFor[[]*int]()},
		{description: "array", text: "[2]string", expect: "[2]string", expectRaw: reflect.TypeFor[[2]string]()},
		{description: "map", text: "map[string][]int", expect: "map[string][]int", expectRaw: reflect.TypeFor[map[string][]int]()},
		{description: "generic", text: "holder[int]", expect: "holder[int]", expectRaw: holderType},
		{description: "pointer to generic", text: "*holder[int]", expect: "*holder[int]", expectRaw: reflect.TypeFor[*holder]()},
		{description: "nested generic", text: "holder[ holder[ string ] ]", expect: "holder[holder[string]]", expectRaw: holderType},
		{description: "wildcard", text: "holder[?]", expect: "holder[?]", expectRaw: holderType},
		{description: "bounded wildcard", text: "holder[? extends time.Duration]", expect: "holder[? extends time.Duration]", expectRaw: holderType},
		{description: "unknown type", text: "unknown", expectError: true},
		{description: "unterminated", text: "holder[int", expectError: true},
		{description: "trailing input", text: "int int", expectError: true},
		{description: "invalid map key", text: "map[[]int]string", expectError: true},
	}

	for _, testCase := range testCases {
		actual, err := ParseExpr(testCase.text)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectRaw, Erasure(actual), testCase.description)
		if _, ok := actual.(*ClassExpr); !ok {
			assert.Equal(t, testCase.expect, stripPackage(actual.String()), testCase.description)
		}
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"K", "V extends time.Duration"})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(params))
	assert.Equal(t, "K", params[0].Name)
	assert.Equal(t, reflect.TypeFor[any](), Erasure(params[0]))
	assert.Equal(t, reflect.TypeFor[time.Duration](), Erasure(params[1]))

	_, err = parseParams([]string{"1K"})
	assert.NotNil(t, err)
}

func TestDeclarationOf(t *testing.T) {
	type invalid struct {
		Value any `transcoder:"type=missing[int]"`
	}
	_, err := DeclarationOf(reflect.TypeFor[invalid]())
	assert.NotNil(t, err)

	declaration, err := DeclarationOf(holderType)
	assert.Nil(t, err)
	assert.Equal(t, "T", declaration.Params[0].Name)
	assert.Equal(t, "T", declaration.Members["Value"].String())
}

func stripPackage(text string) string {
	return strings.ReplaceAll(text, "types.", "")
}
