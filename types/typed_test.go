package types

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holder struct {
	_     struct{} `transcoder:"params={T}"`
	Value any      `transcoder:"type=T"`
}

type base struct {
	_     struct{} `transcoder:"params={T}"`
	Items []any    `transcoder:"type=[]T"`
}

type derived struct {
	base `transcoder:"type=base[string]"`
	Name string
}

type Cell[T any] struct {
	Value T
}

var (
	holderType = reflect.TypeFor[holder]()
	baseType   = reflect.TypeFor[base]()
)

func init() {
	Register("holder", holderType)
}

func field(t reflect.Type, name string) reflect.StructField {
	ret, _ := t.FieldByName(name)
	return ret
}

func TestTyped_Resolution(t *testing.T) {
	var testCases = []struct {
		description  string
		typed        func() *Typed
		expectRaw    reflect.Type
		expectString string
	}{
		{
			description: "declared variable resolved through owner",
			typed: func() *Typed {
				return FieldOf(MustParse("holder[holder[int]]"), holderType, field(holderType, "Value"))
			},
			expectRaw:    holderType,
			expectString: "types.holder[int]",
		},
		{
			description: "nested declared variable",
			typed: func() *Typed {
				outer := FieldOf(MustParse("holder[holder[int]]"), holderType, field(holderType, "Value"))
				return FieldOf(outer, holderType, field(holderType, "Value"))
			},
			expectRaw:    reflect.TypeFor[int](),
			expectString: "int",
		},
		{
			description: "native generic field",
			typed: func() *Typed {
				owner := reflect.TypeFor[Cell[Cell[int]]]()
				return FieldOf(ClassOf(owner), owner, field(owner, "Value"))
			},
			expectRaw:    reflect.TypeFor[Cell[int]](),
			expectString: reflect.TypeFor[Cell[int]]().String(),
		},
		{
			description: "embedded supertype argument",
			typed: func() *Typed {
				return FieldOf(ClassOf(reflect.TypeFor[derived]()), baseType, field(baseType, "Items"))
			},
			expectRaw:    reflect.TypeFor[[]any](),
			expectString: "[]string",
		},
		{
			description: "unresolved variable",
			typed: func() *Typed {
				return TypeOf(Var("T"))
			},
			expectString: "?",
		},
		{
			description: "nested maps with unresolved element",
			typed: func() *Typed {
				inner, _ := MapOf(Class(reflect.TypeFor[string]()), SliceOf(Var("T")))
				outer, _ := MapOf(Class(reflect.TypeFor[string]()), inner)
				return TypeOf(outer)
			},
			expectRaw:    reflect.TypeFor[map[string]map[string][]any](),
			expectString: "map[string]map[string][]?",
		},
		{
			description: "self referencing bound",
			typed: func() *Typed {
				params, err := parseParams([]string{"T extends holder[T]"})
				if err != nil {
					return None
				}
				return TypeOf(params[0])
			},
			expectRaw:    holderType,
			expectString: "types.holder[?]",
		},
	}

	for _, testCase := range testCases {
		actual := testCase.typed()
		assert.Equal(t, testCase.expectRaw, actual.Raw(), testCase.description)
		assert.Equal(t, testCase.expectString, actual.String(), testCase.description)
	}
}

func TestTyped_Generics(t *testing.T) {
	var testCases = []struct {
		description string
		typed       *Typed
		indexes     []int
		expect      reflect.Type
	}{
		{description: "slice element", typed: For[[]string](), expect: reflect.TypeFor[string]()},
		{description: "map key", typed: For[map[string]int](), indexes: []int{0}, expect: reflect.TypeFor[string]()},
		{description: "map value", typed: For[map[string]int](), indexes: []int{1}, expect: reflect.TypeFor[int]()},
		{description: "nested map value", typed: For[map[string][]int](), indexes: []int{1, 0}, expect: reflect.TypeFor[int]()},
		{description: "pointer", typed: For[*int](), expect: reflect.TypeFor[int]()},
		{description: "sql null", typed: For[sql.NullInt64](), expect: reflect.TypeFor[int64]()},
		{description: "declared argument", typed: MustParse("holder[string]"), expect: reflect.TypeFor[string]()},
		{description: "out of range", typed: For[[]int](), indexes: []int{3}},
		{description: "no generics", typed: For[int]()},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.typed.Generic(testCase.indexes...).Raw(), testCase.description)
	}
}

func TestTyped_As(t *testing.T) {
	view := ClassOf(reflect.TypeFor[derived]()).As(baseType)
	require.False(t, view.IsNone())
	assert.Equal(t, "types.base[string]", view.String())
	assert.Equal(t, reflect.TypeFor[string](), view.Generic().Raw())
	assert.True(t, ClassOf(reflect.TypeFor[derived]()).As(holderType).IsNone())
	assert.Equal(t, reflect.TypeFor[derived](), ClassOf(reflect.TypeFor[derived]()).SuperType().Site().Owner)
}

func TestTyped_Equal(t *testing.T) {
	assert.True(t, ClassOf(reflect.TypeFor[int]()) == For[int]())
	assert.True(t, MustParse("[]int") == For[[]int]())
	assert.True(t, TypeOf(Var("T")).Equal(TypeOf(Var("T"))))
	assert.True(t, MustParse("holder[int]").Equal(MustParse("holder[int]")))
	assert.False(t, MustParse("holder[int]").Equal(MustParse("holder[int32]")))
	fieldTyped := FieldOf(For[Cell[int]](), reflect.TypeFor[Cell[int]](), field(reflect.TypeFor[Cell[int]](), "Value"))
	assert.False(t, fieldTyped.Equal(For[int]()))
	assert.Equal(t, FieldSite, fieldTyped.Site().Kind)
	assert.True(t, None.Equal(nil))
}

func TestTyped_IsAssignableFrom(t *testing.T) {
	var testCases = []struct {
		description string
		to          *Typed
		from        *Typed
		expect      bool
	}{
		{description: "same class", to: For[int](), from: For[int](), expect: true},
		{description: "interface", to: For[any](), from: For[int](), expect: true},
		{description: "unrelated class", to: For[int](), from: For[int32]()},
		{description: "slices are invariant", to: For[[]any](), from: For[[]int]()},
		{description: "arrays are covariant", to: For[[2]any](), from: For[[2]int](), expect: true},
		{description: "array length", to: For[[3]any](), from: For[[2]int]()},
		{description: "same arguments", to: MustParse("holder[int]"), from: MustParse("holder[int]"), expect: true},
		{description: "generic invariance", to: MustParse("holder[int]"), from: MustParse("holder[int32]")},
		{description: "nested arguments", to: MustParse("holder[holder[int]]"), from: MustParse("holder[holder[int]]"), expect: true},
		{description: "nested invariance", to: MustParse("holder[holder[int]]"), from: MustParse("holder[holder[int8]]")},
		{description: "unbounded wildcard", to: MustParse("holder[?]"), from: MustParse("holder[int32]"), expect: true},
		{description: "upper bound", to: MustParse("holder[? extends time.Duration]"), from: MustParse("holder[time.Duration]"), expect: true},
		{description: "upper bound mismatch", to: MustParse("holder[? extends time.Duration]"), from: MustParse("holder[int64]")},
		{description: "lower bound", to: MustParse("holder[? super int]"), from: MustParse("holder[any]"), expect: true},
		{description: "lower bound mismatch", to: MustParse("holder[? super int]"), from: MustParse("holder[string]")},
		{description: "parameterized slice", to: TypeOf(SliceOf(Var("T"))), from: For[[]int](), expect: true},
		{description: "slice of declared", to: MustParse("[]holder[int]"), from: MustParse("[]holder[int]"), expect: true},
		{description: "none", to: For[int](), from: None},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.to.IsAssignableFrom(testCase.from), testCase.description)
		if testCase.expect {
			assert.True(t, testCase.from.AssignableTo(testCase.to), testCase.description)
		}
	}
}

func TestTyped_IsInstance(t *testing.T) {
	assert.True(t, For[any]().IsInstance(1))
	assert.True(t, For[*int]().IsInstance(nil))
	assert.False(t, For[int]().IsInstance(nil))
	assert.False(t, For[string]().IsInstance(1))
}
