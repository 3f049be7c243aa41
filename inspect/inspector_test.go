package inspect

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/transcoder/types"
)

type Audit struct {
	Created string
}

type EntityHas struct {
	ID   bool
	Name bool
}

type Entity struct {
	*Audit
	ID       int `transcoder:"name=Id"`
	Name     string
	Secret   string `transcoder:"-"`
	Version  int    `transcoder:"readonly"`
	internal string
	Address  Address
	Has      *EntityHas `presenceMarker:"true"`
}

type Address struct {
	City string
}

func (e *Entity) GetLabel() string { return "label:" + e.Name }

func (e *Entity) IsValid() bool { return e.ID > 0 }

func (e *Entity) SetLabel(label string) error {
	if label == "" {
		return errors.New("empty label")
	}
	e.Name = label
	return nil
}

type Summary struct {
	Id    int
	Label string
	Other string
}

type Page struct {
	_     struct{} `transcoder:"params={T}"`
	Items []any    `transcoder:"type=[]T"`
}

func init() {
	types.Register("Page", reflect.TypeFor[Page]())
}

func TestCaching_Names(t *testing.T) {
	var testCases = []struct {
		description     string
		options         []Option
		owner           *types.Typed
		expectAccessors []string
		expectMutators  []string
		expectError     bool
	}{
		{
			description:     "fields, promoted fields and methods",
			owner:           types.For[Entity](),
			expectAccessors: []string{"Created", "Id", "Name", "Version", "Address", "Label", "Valid"},
			expectMutators:  []string{"Created", "Id", "Name", "Address", "Label"},
		},
		{
			description:     "unexported fields",
			options:         []Option{WithAccessUnexported(true)},
			owner:           types.For[*Entity](),
			expectAccessors: []string{"Created", "Id", "Name", "Version", "internal", "Address", "Label", "Valid"},
			expectMutators:  []string{"Created", "Id", "Name", "internal", "Address", "Label"},
		},
		{
			description:     "declared generic struct",
			owner:           types.MustParse("Page[string]"),
			expectAccessors: []string{"Items"},
			expectMutators:  []string{"Items"},
		},
		{
			description: "not a struct",
			owner:       types.For[[]int](),
			expectError: true,
		},
		{
			description: "invalid tag",
			owner: types.For[struct {
				Name string `transcoder:"bogus"`
			}](),
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		inspector := NewCaching(testCase.options...)
		accessors, err := inspector.Accessors(testCase.owner)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expectAccessors, accessors.Names(), testCase.description)
		mutators, err := inspector.Mutators(testCase.owner)
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expectMutators, mutators.Names(), testCase.description)
	}
}

func TestCaching_Memoization(t *testing.T) {
	inspector := NewCaching()
	first, err := inspector.Accessors(types.For[Entity]())
	require.Nil(t, err)
	second, err := inspector.Accessors(types.For[*Entity]())
	require.Nil(t, err)
	assert.True(t, first == second)

	mappings, err := inspector.Mappings(types.For[Entity](), types.For[Summary]())
	require.Nil(t, err)
	again, err := inspector.Mappings(types.For[Entity](), types.For[Summary]())
	require.Nil(t, err)
	assert.Equal(t, mappings, again)
	var names []string
	for _, mapping := range mappings {
		names = append(names, mapping.Name)
	}
	assert.Equal(t, []string{"Id", "Label"}, names)
}

func TestAccessor_Access(t *testing.T) {
	inspector := NewCaching()
	accessors, err := inspector.Accessors(types.For[Entity]())
	require.Nil(t, err)
	entity := &Entity{ID: 3, Name: "abc", Has: &EntityHas{ID: true}}
	holder := reflect.ValueOf(entity)

	var testCases = []struct {
		description   string
		name          string
		expect        interface{}
		expectPresent bool
		expectType    reflect.Type
	}{
		{description: "renamed field", name: "Id", expect: 3, expectPresent: true, expectType: reflect.TypeFor[int]()},
		{description: "unset presence flag", name: "Name", expect: "abc", expectPresent: false, expectType: reflect.TypeFor[string]()},
		{description: "field without flag", name: "Version", expect: 0, expectPresent: true, expectType: reflect.TypeFor[int]()},
		{description: "nil embedded struct", name: "Created", expect: nil, expectPresent: false, expectType: reflect.TypeFor[string]()},
		{description: "getter", name: "Label", expect: "label:abc", expectPresent: true, expectType: reflect.TypeFor[string]()},
		{description: "bool getter", name: "Valid", expect: true, expectPresent: true, expectType: reflect.TypeFor[bool]()},
	}

	for _, testCase := range testCases {
		accessor := accessors.Lookup(testCase.name)
		if !assert.NotNil(t, accessor, testCase.description) {
			continue
		}
		actual, err := accessor.Access(holder)
		assert.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
		assert.Equal(t, testCase.expectPresent, accessor.Present(holder), testCase.description)
		assert.Equal(t, testCase.expectType, accessor.Type(types.For[Entity]()).Raw(), testCase.description)
	}
}

func TestMutator_Mutate(t *testing.T) {
	inspector := NewCaching()
	mutators, err := inspector.Mutators(types.For[Entity]())
	require.Nil(t, err)
	entity := &Entity{}
	holder := reflect.ValueOf(entity)

	assert.Nil(t, mutators.Lookup("Created").Mutate(holder, "yesterday"))
	require.NotNil(t, entity.Audit)
	assert.Equal(t, "yesterday", entity.Audit.Created)

	assert.Nil(t, mutators.Lookup("Name").Mutate(holder, "xyz"))
	assert.Equal(t, "xyz", entity.Name)
	require.NotNil(t, entity.Has)
	assert.True(t, entity.Has.Name)
	assert.False(t, entity.Has.ID)

	assert.Nil(t, mutators.Lookup("Address").Mutate(holder, Address{City: "Paris"}))
	assert.Equal(t, "Paris", entity.Address.City)

	assert.Nil(t, mutators.Lookup("Label").Mutate(holder, "label"))
	assert.Equal(t, "label", entity.Name)
	assert.NotNil(t, mutators.Lookup("Label").Mutate(holder, ""))

	assert.NotNil(t, mutators.Lookup("Id").Mutate(holder, "not a number"))
	assert.Nil(t, mutators.Lookup("Version"))
}

func TestAccessor_DeclaredType(t *testing.T) {
	owner := types.MustParse("Page[string]")
	accessors, err := NewCaching().Accessors(owner)
	require.Nil(t, err)
	assert.Equal(t, "[]string", accessors.Lookup("Items").Type(owner).String())
}

func TestNewMarker(t *testing.T) {
	type invalidHas struct {
		Missing bool
	}
	type invalid struct {
		Name string
		Has  *invalidHas `presenceMarker:"true"`
	}
	_, err := NewMarker(reflect.TypeFor[invalid]())
	assert.NotNil(t, err)

	marker, err := NewMarker(reflect.TypeFor[Summary]())
	assert.Nil(t, err)
	assert.Nil(t, marker)
}
