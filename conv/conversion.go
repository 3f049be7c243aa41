package conv

// State represents conversion outcome
type State uint8

const (
	//Unmatched means strategy does not handle the source/target pair
	Unmatched State = iota
	//MatchedNull means conversion succeeded with nil result
	MatchedNull
	//MatchedValue means conversion succeeded with a value
	MatchedValue
)

// Conversion represents tri-state conversion result
type Conversion struct {
	state State
	value interface{}
}

var (
	unmatched   = Conversion{state: Unmatched}
	matchedNull = Conversion{state: MatchedNull}
)

// No returns unmatched conversion
func No() Conversion {
	return unmatched
}

// Nil returns conversion matched to nil
func Nil() Conversion {
	return matchedNull
}

// Of returns conversion matched to value, nil value yields Nil()
func Of(value interface{}) Conversion {
	if value == nil {
		return matchedNull
	}
	return Conversion{state: MatchedValue, value: value}
}

// Matched returns true unless conversion is unmatched
func (c Conversion) Matched() bool {
	return c.state != Unmatched
}

// IsNull returns true for conversion matched to nil
func (c Conversion) IsNull() bool {
	return c.state == MatchedNull
}

// State returns conversion state
func (c Conversion) State() State {
	return c.state
}

// Value returns converted value, nil unless state is MatchedValue
func (c Conversion) Value() interface{} {
	return c.value
}

// Map transforms matched value, unmatched and nil conversions are returned as is
func (c Conversion) Map(fn func(value interface{}) (interface{}, error)) (Conversion, error) {
	if c.state != MatchedValue {
		return c, nil
	}
	value, err := fn(c.value)
	if err != nil {
		return unmatched, err
	}
	return Of(value), nil
}

func (s State) String() string {
	switch s {
	case MatchedNull:
		return "matchedNull"
	case MatchedValue:
		return "matchedValue"
	}
	return "unmatched"
}
