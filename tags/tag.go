package tags

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName defines struct tag name
const TagName = "transcoder"

// Tag represents transcoder struct tag
type Tag struct {
	//Name overrides attribute name
	Name string
	//Type declares generic type expression of a field
	Type string
	//Params declares type parameters, used on a blank field
	Params []string
	//Ignore excludes attribute
	Ignore bool
	//ReadOnly excludes attribute from mutators
	ReadOnly bool
}

// Parse parses transcoder tag
func Parse(tag reflect.StructTag) (*Tag, error) {
	ret := &Tag{}
	literal, ok := tag.Lookup(TagName)
	if !ok {
		return ret, nil
	}
	if literal == "-" {
		ret.Ignore = true
		return ret, nil
	}
	err := Values(literal).MatchPairs(func(key, value string) error {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			ret.Name = strings.TrimSpace(value)
		case "type":
			ret.Type = TrimBlock(value)
		case "params":
			ret.Params = Values(TrimBlock(value)).Elements()
		case "ignore", "-":
			ret.Ignore = true
		case "readonly":
			ret.ReadOnly = true
		default:
			return fmt.Errorf("unsupported %v tag option: %v", TagName, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
