package transcoder

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/transcoder/conv"
	"github.com/viant/transcoder/metrics"
	"github.com/viant/transcoder/types"
)

type Address struct {
	City string
	Zip  int
}

type AddressView struct {
	City string
	Zip  string
}

type Customer struct {
	ID        int
	Name      string
	CreatedAt time.Time
	Address   *Address
	Labels    map[string]int
}

type CustomerView struct {
	ID        string
	Name      string
	CreatedAt int64
	Address   *AddressView
	Labels    map[string]string
}

type Cents struct {
	value int64
}

type Ledger struct {
	Entries map[string]string
}

type LedgerView struct {
	Entries map[string]int
}

func TestMapper_Map(t *testing.T) {
	created := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	var testCases = []struct {
		description string
		options     []Option
		source      interface{}
		target      *types.Typed
		expect      interface{}
		unmatched   bool
	}{
		{description: "nil source", source: nil, target: types.For[string]()},
		{description: "text to int", source: "42", target: types.For[int](), expect: 42},
		{description: "int to pointer", source: 42, target: types.For[*string](), expect: func() *string { s := "42"; return &s }()},
		{description: "slice", source: []int{1, 2}, target: types.For[[]string](), expect: []string{"1", "2"}},
		{
			description: "bean",
			source:      Customer{ID: 1, Name: "Ann", CreatedAt: created, Address: &Address{City: "Oslo", Zip: 150}, Labels: map[string]int{"vip": 1}},
			target:      types.For[CustomerView](),
			expect:      CustomerView{ID: "1", Name: "Ann", CreatedAt: 1700000000000, Address: &AddressView{City: "Oslo", Zip: "150"}, Labels: map[string]string{"vip": "1"}},
		},
		{description: "unmatched", source: struct{}{}, target: types.For[int](), unmatched: true},
		{description: "unmatched as nil", options: []Option{WithUnmatchedAsNil()}, source: struct{}{}, target: types.For[int]()},
		{
			description: "custom conversion",
			options: []Option{WithConversion(reflect.TypeFor[string](), reflect.TypeFor[Cents](), func(ctx *conv.Context, source interface{}) (interface{}, error) {
				f, err := strconv.ParseFloat(source.(string), 64)
				return Cents{value: int64(f * 100)}, err
			})},
			source: "1.25",
			target: types.For[Cents](),
			expect: Cents{value: 125},
		},
		{description: "immutable", options: []Option{WithImmutables(reflect.TypeFor[Cents]())}, source: Cents{value: 3}, target: types.For[Cents](), expect: Cents{value: 3}},
		{description: "time layout", options: []Option{WithTimeLayout(time.DateOnly)}, source: created, target: types.For[string](), expect: "2023-11-14"},
	}

	for _, testCase := range testCases {
		mapper := New(testCase.options...)
		actual, err := mapper.Map(testCase.source, testCase.target)
		if testCase.unmatched {
			assert.True(t, errors.Is(err, ErrUnmatched), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestMapper_MapFrom(t *testing.T) {
	mapper := New()
	actual, err := mapper.MapFrom(types.For[*int](), (*int)(nil), types.For[*string]())
	require.Nil(t, err)
	assert.Nil(t, actual)

	_, err = mapper.MapFrom(types.For[*int](), (*int)(nil), types.For[int]())
	assert.True(t, errors.Is(err, ErrUnmatched))
}

func TestMapper_Convert(t *testing.T) {
	mapper := New()

	view := CustomerView{}
	err := mapper.Convert(&Customer{ID: 7, Name: "Bob"}, &view)
	require.Nil(t, err)
	assert.Equal(t, "7", view.ID)
	assert.Equal(t, "Bob", view.Name)
	assert.Nil(t, view.Address)

	name := "set"
	namePtr := &name
	require.Nil(t, mapper.Convert(nil, &namePtr))
	assert.Nil(t, namePtr)

	assert.NotNil(t, mapper.Convert("1", view))
	assert.NotNil(t, mapper.Convert("1", (*int)(nil)))
}

func TestMapTo(t *testing.T) {
	mapper := New()
	actual, err := MapTo[int64](mapper, "12")
	require.Nil(t, err)
	assert.Equal(t, int64(12), actual)

	_, err = MapTo[int](mapper, "x")
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestMapper_Fault(t *testing.T) {
	mapper := New(WithTracing(true))
	_, err := MapTo[LedgerView](mapper, Ledger{Entries: map[string]string{"a": "1", "b": "x"}})
	require.NotNil(t, err)
	mappingErr := &conv.MappingError{}
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, "Entries.entries.1.value", mappingErr.Context.Source.Path().String())
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestMapper_WithStrategies(t *testing.T) {
	mapper := New(WithStrategies(conv.ConverterFunc(func(ctx *conv.Context, source interface{}) (conv.Conversion, error) {
		return conv.Of("fixed"), nil
	})))
	actual, err := mapper.Map(1, types.For[string]())
	require.Nil(t, err)
	assert.Equal(t, "fixed", actual)
}

type recordingMetrics struct {
	matched   []string
	unmatched int
	timed     int
}

type recordingTimer struct {
	metrics *recordingMetrics
}

func (t recordingTimer) ObserveDuration() { t.metrics.timed++ }

func (m *recordingMetrics) Matched(strategy string) { m.matched = append(m.matched, strategy) }
func (m *recordingMetrics) Unmatched()              { m.unmatched++ }
func (m *recordingMetrics) Fault()                  {}
func (m *recordingMetrics) MapDuration() metrics.Timer {
	return recordingTimer{metrics: m}
}

func TestMapper_WithMetrics(t *testing.T) {
	recorder := &recordingMetrics{}
	mapper := New(WithMetrics(recorder))
	_, err := mapper.Map("5", types.For[int]())
	require.Nil(t, err)
	_, err = mapper.Map(struct{}{}, types.For[int]())
	require.NotNil(t, err)
	assert.Equal(t, []string{"Numbers"}, recorder.matched)
	assert.Equal(t, 1, recorder.unmatched)
	assert.Equal(t, 2, recorder.timed)
}

type Matcher struct {
	Pattern *regexp.Regexp
	Payload any
}

func TestMapper_OpaqueAndInterfaces(t *testing.T) {
	mapper := New()
	source := Matcher{Pattern: regexp.MustCompile("b+"), Payload: &Address{City: "Oslo", Zip: 150}}
	actual, err := MapTo[Matcher](mapper, source)
	require.Nil(t, err)
	require.NotNil(t, actual.Pattern)
	assert.Equal(t, "b+", actual.Pattern.String())
	assert.True(t, actual.Pattern.MatchString("bbb"))

	payload, ok := actual.Payload.(*Address)
	require.True(t, ok)
	assert.Equal(t, &Address{City: "Oslo", Zip: 150}, payload)
	assert.NotSame(t, source.Payload, payload)
}
