package types

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	identifierToken
	digitsToken
	openBracketToken
	closeBracketToken
	commaToken
	starToken
	questionToken
	ampersandToken
)

var (
	whitespaceMatcher   = parsly.NewToken(whitespaceToken, "whitespace", matcher.NewWhiteSpace())
	identifierMatcher   = parsly.NewToken(identifierToken, "identifier", identifier{})
	digitsMatcher       = parsly.NewToken(digitsToken, "digits", digits{})
	openBracketMatcher  = parsly.NewToken(openBracketToken, "[", char('['))
	closeBracketMatcher = parsly.NewToken(closeBracketToken, "]", char(']'))
	commaMatcher        = parsly.NewToken(commaToken, ",", char(','))
	starMatcher         = parsly.NewToken(starToken, "*", char('*'))
	questionMatcher     = parsly.NewToken(questionToken, "?", char('?'))
	ampersandMatcher    = parsly.NewToken(ampersandToken, "&", char('&'))
)

// char matches a single byte
type char byte

func (c char) Match(cursor *parsly.Cursor) int {
	if cursor.Pos < len(cursor.Input) && cursor.Input[cursor.Pos] == byte(c) {
		return 1
	}
	return 0
}

// identifier matches possibly package qualified Go identifier
type identifier struct{}

func (identifier) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:]
	if len(input) == 0 || !(isLetter(input[0]) || input[0] == '_') {
		return 0
	}
	i := 1
	for i < len(input) && (isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' || input[i] == '.') {
		i++
	}
	return i
}

type digits struct{}

func (digits) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:]
	i := 0
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	return i
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
