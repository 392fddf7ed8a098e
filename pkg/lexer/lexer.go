// Package lexer turns the source text of one GraphQL operations file into a token sequence.
//
// The grammar is deliberately small: no floats, no negative numbers, no
// comments and no string literals. Lexing is fail-fast, the first invalid
// character aborts with its source position.
package lexer

import (
	"fmt"

	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/keyword"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/position"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/token"
)

// ErrUnexpectedCharacter is returned for any character the grammar has no rule for.
type ErrUnexpectedCharacter struct {
	Char         rune
	Path         string
	TextPosition position.Position
}

func (e ErrUnexpectedCharacter) Error() string {
	return fmt.Sprintf("%s:%s: unexpected character '%c'", e.Path, e.TextPosition, e.Char)
}

// ErrExpectingToken is returned when a token starts out valid but diverges,
// which can only happen for the '...' spread.
type ErrExpectingToken struct {
	Expected     string
	Path         string
	TextPosition position.Position
}

func (e ErrExpectingToken) Error() string {
	return fmt.Sprintf("%s:%s: expecting '%s'", e.Path, e.TextPosition, e.Expected)
}

// Lexer emits tokens from one input file
type Lexer struct {
	path          string
	input         string
	inputPosition int
	textPosition  position.Position
}

func NewLexer() *Lexer {
	return &Lexer{}
}

// SetInput sets a new source file as input and resets all position stats
func (l *Lexer) SetInput(path, input string) {
	l.path = path
	l.input = input
	l.inputPosition = 0
	l.textPosition = position.Position{Line: 1, Char: 0}
}

// Tokenize is a convenience wrapper lexing one whole file.
func Tokenize(path, input string) ([]token.Token, error) {
	l := NewLexer()
	l.SetInput(path, input)
	return l.Tokenize()
}

// Tokenize consumes the full input and returns the complete token sequence,
// or the first error together with its position.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	tokens := make([]token.Token, 0, 48)
	for {
		tok, ok, err := l.read()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// read emits the next token. ok is false once the input is exhausted.
func (l *Lexer) read() (tok token.Token, ok bool, err error) {
	for {
		pos := l.textPosition
		r, more := l.readRune()
		if !more {
			return tok, false, nil
		}

		switch r {
		case ' ', ',', '\r', '\t', '\n':
			continue
		case ':':
			return l.singleRuneToken(keyword.COLON, ":", pos), true, nil
		case '{':
			return l.singleRuneToken(keyword.CURLYBRACKETOPEN, "{", pos), true, nil
		case '}':
			return l.singleRuneToken(keyword.CURLYBRACKETCLOSE, "}", pos), true, nil
		case '(':
			return l.singleRuneToken(keyword.BRACKETOPEN, "(", pos), true, nil
		case ')':
			return l.singleRuneToken(keyword.BRACKETCLOSE, ")", pos), true, nil
		case '[':
			return l.singleRuneToken(keyword.SQUAREBRACKETOPEN, "[", pos), true, nil
		case ']':
			return l.singleRuneToken(keyword.SQUAREBRACKETCLOSE, "]", pos), true, nil
		case '!':
			return l.singleRuneToken(keyword.BANG, "!", pos), true, nil
		case '.':
			tok, err = l.readSpread(pos)
			return tok, err == nil, err
		case '$':
			return l.readVariable(pos), true, nil
		}

		if runeIsDigit(r) {
			return l.readInteger(pos), true, nil
		}
		if runeIsIdentStart(r) {
			return l.readIdent(pos), true, nil
		}

		return tok, false, ErrUnexpectedCharacter{Char: r, Path: l.path, TextPosition: pos}
	}
}

func (l *Lexer) singleRuneToken(k keyword.Keyword, literal string, pos position.Position) token.Token {
	return token.Token{Keyword: k, Literal: literal, TextPosition: pos}
}

// readSpread consumes the two remaining dots of '...'. The first dot is
// already consumed; any divergence fails at the spread's start position.
func (l *Lexer) readSpread(pos position.Position) (token.Token, error) {
	for i := 0; i < 2; i++ {
		r, ok := l.readRune()
		if !ok || r != '.' {
			return token.Token{}, ErrExpectingToken{Expected: "...", Path: l.path, TextPosition: pos}
		}
	}
	return token.Token{Keyword: keyword.SPREAD, Literal: "...", TextPosition: pos}, nil
}

// readVariable consumes the ident run after '$'. The literal excludes the '$'.
func (l *Lexer) readVariable(pos position.Position) token.Token {
	start := l.inputPosition
	l.swallowIdentRun()
	return token.Token{
		Keyword:      keyword.VARIABLE,
		Literal:      l.input[start:l.inputPosition],
		TextPosition: pos,
	}
}

func (l *Lexer) readInteger(pos position.Position) token.Token {
	start := l.inputPosition - 1
	for {
		r, ok := l.peekRune()
		if !ok || !runeIsDigit(r) {
			break
		}
		l.readRune()
	}
	return token.Token{
		Keyword:      keyword.INTEGER,
		Literal:      l.input[start:l.inputPosition],
		TextPosition: pos,
	}
}

func (l *Lexer) readIdent(pos position.Position) token.Token {
	start := l.inputPosition - 1
	l.swallowIdentRun()
	literal := l.input[start:l.inputPosition]
	return token.Token{
		Keyword:      keywordFromIdentString(literal),
		Literal:      literal,
		TextPosition: pos,
	}
}

func (l *Lexer) swallowIdentRun() {
	for {
		r, ok := l.peekRune()
		if !ok || !runeIsIdent(r) {
			return
		}
		l.readRune()
	}
}

func (l *Lexer) readRune() (r rune, ok bool) {
	if l.inputPosition >= len(l.input) {
		return 0, false
	}
	r = rune(l.input[l.inputPosition])
	l.inputPosition++
	if r == '\n' {
		l.textPosition.Line++
		l.textPosition.Char = 0
	} else {
		l.textPosition.Char++
	}
	return r, true
}

func (l *Lexer) peekRune() (r rune, ok bool) {
	if l.inputPosition >= len(l.input) {
		return 0, false
	}
	return rune(l.input[l.inputPosition]), true
}

func keywordFromIdentString(ident string) keyword.Keyword {
	switch ident {
	case "fragment":
		return keyword.FRAGMENT
	case "query":
		return keyword.QUERY
	case "mutation":
		return keyword.MUTATION
	case "on":
		return keyword.ON
	case "String":
		return keyword.STRINGTYPE
	case "Int":
		return keyword.INTTYPE
	case "Bool":
		return keyword.BOOLTYPE
	default:
		return keyword.IDENT
	}
}

func runeIsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func runeIsIdentStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func runeIsIdent(r rune) bool {
	return runeIsIdentStart(r) || runeIsDigit(r)
}
