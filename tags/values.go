package tags

import (
	"strings"

	"github.com/viant/parsly"
)

// Values represents tag values
type Values string

// MatchPairs match paris separated by ,
func (v Values) MatchPairs(onMatch func(key, value string) error) error {
	cursor := parsly.NewCursor("", []byte(v), 0)
	for cursor.Pos < len(cursor.Input) {
		key, value := matchPair(cursor)
		if key == "" {
			continue
		}
		if err := onMatch(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Elements returns comma separated elements, blocks and quoted values are kept whole
func (v Values) Elements() []string {
	cursor := parsly.NewCursor("", []byte(v), 0)
	var result []string
	for cursor.Pos < len(cursor.Input) {
		if element := strings.TrimSpace(matchElement(cursor)); element != "" {
			result = append(result, element)
		}
	}
	return result
}

// TrimBlock removes enclosing curly braces
func TrimBlock(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 1 && value[0] == '{' && value[len(value)-1] == '}' {
		return strings.TrimSpace(value[1 : len(value)-1])
	}
	return value
}
