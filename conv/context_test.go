package conv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/transcoder/types"
)

func TestConversion(t *testing.T) {
	var testCases = []struct {
		description string
		conversion  Conversion
		matched     bool
		isNull      bool
		value       interface{}
	}{
		{description: "unmatched", conversion: No()},
		{description: "nil", conversion: Nil(), matched: true, isNull: true},
		{description: "of nil", conversion: Of(nil), matched: true, isNull: true},
		{description: "value", conversion: Of(1), matched: true, value: 1},
		{description: "zero value", conversion: Of(0), matched: true, value: 0},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.matched, testCase.conversion.Matched(), testCase.description)
		assert.Equal(t, testCase.isNull, testCase.conversion.IsNull(), testCase.description)
		assert.Equal(t, testCase.value, testCase.conversion.Value(), testCase.description)
	}
}

func TestConversion_Map(t *testing.T) {
	double := func(v interface{}) (interface{}, error) { return v.(int) * 2, nil }
	actual, err := Of(2).Map(double)
	assert.Nil(t, err)
	assert.Equal(t, 4, actual.Value())

	actual, err = Nil().Map(double)
	assert.Nil(t, err)
	assert.True(t, actual.IsNull())

	actual, err = No().Map(double)
	assert.Nil(t, err)
	assert.False(t, actual.Matched())

	_, err = Of(1).Map(func(v interface{}) (interface{}, error) { return nil, errors.New("boom") })
	assert.EqualError(t, err, "boom")
}

func TestPath(t *testing.T) {
	var root *Path
	assert.Equal(t, "", root.String())
	path := root.Append("items", "", "0").Append("name")
	assert.Equal(t, []string{"items", "0", "name"}, path.Names())
	assert.Equal(t, "items.0.name", path.String())
}

func TestContext_String(t *testing.T) {
	root := NewContext(types.For[map[string]string](), types.For[map[string]int](), nil, nil, true)
	assert.Equal(t, "source: map[string]string, target: map[string]int", root.String())

	entry := root.DependentPath(types.For[string](), types.For[int](), "entries", "0", "value")
	assert.Equal(t, "source: entries.0.value::string, target: entries.0.value::int", entry.String())

	renamed := root.Dependent(types.For[string](), "Id", types.For[int](), "ID")
	assert.Equal(t, "source: Id::string, target: ID::int", renamed.String())

	sourceOnly := renamed.DependentSource(types.For[int](), "value")
	assert.Equal(t, "Id.value", sourceOnly.Source.Path().String())
	assert.Equal(t, "ID", sourceOnly.Target.Path().String())

	untraced := NewContext(types.For[string](), types.For[int](), nil, nil, false).DependentPath(types.For[string](), types.For[int](), "a")
	assert.Nil(t, untraced.Source.Path())
	assert.Equal(t, "source: string, target: int", untraced.String())
}

func TestFault(t *testing.T) {
	ctx := NewContext(types.For[string](), types.For[int](), nil, nil, true).DependentPath(types.For[string](), types.For[int](), "id")
	cause := errors.New("invalid")
	err := Fault(ctx, cause)
	assert.EqualError(t, err, "invalid[ctx: source: id::string, target: id::int]")
	assert.True(t, errors.Is(err, cause))

	wrapped := Fault(NewContext(nil, nil, nil, nil, false), fmt.Errorf("outer: %w", err))
	var mappingErr *MappingError
	assert.True(t, errors.As(wrapped, &mappingErr))
	assert.Equal(t, "id", mappingErr.Context.Target.Path().String())
	assert.Nil(t, Fault(ctx, nil))
}
