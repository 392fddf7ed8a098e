// Package token defines the token type produced by the lexer and consumed by the parser.
package token

import (
	"fmt"

	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/keyword"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/position"
)

type Token struct {
	Keyword      keyword.Keyword
	Literal      string
	TextPosition position.Position
}

func (t Token) String() string {
	return fmt.Sprintf("token:: Keyword: %s, Literal: %q, Pos: %s", t.Keyword, t.Literal, t.TextPosition)
}

// EOF is the sentinel the parser sees when it peeks past the last token.
var EOF = Token{Keyword: keyword.EOF}
