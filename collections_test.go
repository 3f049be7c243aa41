package transcoder

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	mapper := New()
	actual, err := MapSlice[Address, AddressView](mapper, []Address{{City: "Oslo", Zip: 150}, {City: "Rome", Zip: 100}})
	require.Nil(t, err)
	assert.Equal(t, []AddressView{{City: "Oslo", Zip: "150"}, {City: "Rome", Zip: "100"}}, actual)

	_, err = MapSlice[string, int](mapper, []string{"1", "x"})
	assert.NotNil(t, err)

	empty, err := MapSlice[string, int](mapper, nil)
	require.Nil(t, err)
	assert.Nil(t, empty)
}

func TestMapSeq(t *testing.T) {
	mapper := New()
	var actual []int
	var errs int
	for item, err := range MapSeq[string, int](mapper, slices.Values([]string{"1", "x", "3"})) {
		if err != nil {
			errs++
			continue
		}
		actual = append(actual, item)
	}
	assert.Equal(t, []int{1, 3}, actual)
	assert.Equal(t, 1, errs)

	count := 0
	for range MapSeq[int, string](mapper, slices.Values([]int{1, 2, 3})) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestMapValues(t *testing.T) {
	mapper := New()
	actual, err := MapValues[string, int, string](mapper, map[string]int{"a": 1, "b": 2})
	require.Nil(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, actual)

	_, err = MapValues[string, string, int](mapper, map[string]string{"a": "x"})
	assert.NotNil(t, err)
}

func TestMapPtr(t *testing.T) {
	mapper := New()
	actual, err := MapPtr[Address, AddressView](mapper, &Address{City: "Oslo", Zip: 150})
	require.Nil(t, err)
	assert.Equal(t, &AddressView{City: "Oslo", Zip: "150"}, actual)

	none, err := MapPtr[Address, AddressView](mapper, nil)
	require.Nil(t, err)
	assert.Nil(t, none)
}
