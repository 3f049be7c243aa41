package tags

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
)

// pairTerminator returns whichever of '=' or ',' comes first in the remaining input
func pairTerminator(cursor *parsly.Cursor) *parsly.Token {
	rest := cursor.Input[cursor.Pos:]
	eq := bytes.IndexByte(rest, '=')
	sep := bytes.IndexByte(rest, ',')
	if eq != -1 && (sep == -1 || eq < sep) {
		return assign
	}
	return comma
}

// remainder consumes the rest of the input
func remainder(cursor *parsly.Cursor) string {
	if cursor.Pos >= len(cursor.Input) {
		return ""
	}
	ret := string(cursor.Input[cursor.Pos:])
	cursor.Pos = len(cursor.Input)
	return ret
}

func trimTerminator(text string) string {
	return text[:len(text)-1]
}

func matchPair(cursor *parsly.Cursor) (string, string) {
	var key, value string
	match := cursor.MatchAny(block, pairTerminator(cursor))
	switch match.Code {
	case blockCode:
		value = match.Text(cursor)
		cursor.MatchAny(comma)
	case commaCode:
		value = trimTerminator(match.Text(cursor))
	case assignCode:
		key = trimTerminator(match.Text(cursor))
		value = matchAssigned(cursor)
		if key != "" {
			return key, value
		}
	default:
		value = remainder(cursor)
	}
	return splitPair(value)
}

// matchAssigned matches the value following key=
func matchAssigned(cursor *parsly.Cursor) string {
	match := cursor.MatchAny(block, quoted, comma)
	switch match.Code {
	case blockCode, quotedCode:
		value := match.Text(cursor)
		cursor.MatchAny(comma)
		return value
	case commaCode:
		value := trimTerminator(match.Text(cursor))
		cursor.Pos--
		return value
	}
	return remainder(cursor)
}

func splitPair(text string) (string, string) {
	if index := strings.Index(text, "="); index != -1 {
		return text[:index], text[index+1:]
	}
	return text, ""
}

func matchElement(cursor *parsly.Cursor) string {
	match := cursor.MatchAfterOptional(whitespace, block, quoted, comma)
	switch match.Code {
	case blockCode, quotedCode:
		value := match.Text(cursor)
		cursor.MatchAny(comma)
		return value
	case commaCode:
		return trimTerminator(match.Text(cursor))
	}
	return remainder(cursor)
}
