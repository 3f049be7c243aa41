package tags

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota
	commaCode
	assignCode
	blockCode
	quotedCode
)

var (
	whitespace = parsly.NewToken(whitespaceCode, "whitespace", matcher.NewWhiteSpace())
	comma      = parsly.NewToken(commaCode, ",", matcher.NewTerminator(',', true))
	assign     = parsly.NewToken(assignCode, "=", matcher.NewTerminator('=', true))
	block      = parsly.NewToken(blockCode, "{...}", matcher.NewBlock('{', '}', '\\'))
	quoted     = parsly.NewToken(quotedCode, "'...'", matcher.NewQuote('\'', '\\'))
)
