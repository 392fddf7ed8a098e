// Package astparser builds the document AST from a token sequence using
// recursive descent with a single token of lookahead.
//
// Parsing is strictly fail-fast: the first structural mismatch aborts the
// whole parse, there is no recovery and no partial document.
package astparser

import (
	"fmt"
	"strconv"

	"github.com/swiftgql/graphql-swift-gen/pkg/ast"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/keyword"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/position"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/token"
)

// ErrUnexpectedToken carries what the parser was expecting and the position
// of the token it saw instead (or of the last token when input ran out).
type ErrUnexpectedToken struct {
	Expected     string
	TextPosition position.Position
}

func (e ErrUnexpectedToken) Error() string {
	return fmt.Sprintf("syntax error at %s: expecting %s", e.TextPosition, e.Expected)
}

type Parser struct {
	tokens   []token.Token
	position int
	document ast.Document
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseDocument is a convenience wrapper parsing one full token sequence.
func ParseDocument(tokens []token.Token) (ast.Document, error) {
	return NewParser().Parse(tokens)
}

// Parse consumes the entire token sequence and returns the Document.
func (p *Parser) Parse(tokens []token.Token) (ast.Document, error) {
	p.tokens = tokens
	p.position = 0
	p.document = ast.Document{}

	for p.position < len(p.tokens) {
		if err := p.parseRootDefinition(); err != nil {
			return ast.Document{}, err
		}
	}

	return p.document, nil
}

// current peeks at the next token without consuming it.
func (p *Parser) current() token.Token {
	if p.position < len(p.tokens) {
		return p.tokens[p.position]
	}
	return token.EOF
}

// advance consumes and returns the next token.
func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.position < len(p.tokens) {
		p.position++
	}
	return tok
}

// errExpecting reports against the current token, falling back to the last
// token when the sequence is exhausted.
func (p *Parser) errExpecting(expected string) error {
	var pos position.Position
	if len(p.tokens) != 0 {
		i := p.position
		if i > len(p.tokens)-1 {
			i = len(p.tokens) - 1
		}
		pos = p.tokens[i].TextPosition
	}
	return ErrUnexpectedToken{Expected: expected, TextPosition: pos}
}

func (p *Parser) expect(k keyword.Keyword, expected string) error {
	if p.advance().Keyword != k {
		return p.errExpecting(expected)
	}
	return nil
}

func (p *Parser) parseRootDefinition() error {
	switch p.advance().Keyword {
	case keyword.QUERY:
		return p.parseQuery()
	case keyword.MUTATION:
		return p.parseMutation()
	case keyword.FRAGMENT:
		return p.parseFragment()
	default:
		return p.errExpecting("query, mutation or fragment at top level")
	}
}

func (p *Parser) parseName() (string, error) {
	tok := p.advance()
	if tok.Keyword != keyword.IDENT {
		return "", p.errExpecting("identifier")
	}
	return tok.Literal, nil
}

func (p *Parser) parseType() (ast.Type, error) {
	var t ast.Type

	tok := p.advance()
	switch tok.Keyword {
	case keyword.IDENT:
		t = ast.Type{TypeKind: ast.TypeKindNamed, Name: tok.Literal}
	case keyword.STRINGTYPE:
		t = ast.Type{TypeKind: ast.TypeKindString}
	case keyword.INTTYPE:
		t = ast.Type{TypeKind: ast.TypeKindInt}
	case keyword.BOOLTYPE:
		t = ast.Type{TypeKind: ast.TypeKindBoolean}
	case keyword.SQUAREBRACKETOPEN:
		elem, err := p.parseType()
		if err != nil {
			return t, err
		}
		if err := p.expect(keyword.SQUAREBRACKETCLOSE, "]"); err != nil {
			return t, err
		}
		t = ast.Type{TypeKind: ast.TypeKindList, OfType: &elem}
	default:
		return t, p.errExpecting("type")
	}

	if p.current().Keyword == keyword.BANG {
		p.advance()
		inner := t
		return ast.Type{TypeKind: ast.TypeKindNonNull, OfType: &inner}, nil
	}
	return t, nil
}

func (p *Parser) parseValue() (ast.Value, error) {
	tok := p.advance()
	switch tok.Keyword {
	case keyword.VARIABLE:
		return ast.Value{Kind: ast.ValueKindVariable, VariableName: tok.Literal}, nil
	case keyword.INTEGER:
		i, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return ast.Value{}, p.errExpecting("integer value")
		}
		return ast.Value{Kind: ast.ValueKindInteger, Int: i}, nil
	case keyword.STRING:
		return ast.Value{Kind: ast.ValueKindString, String: tok.Literal}, nil
	default:
		return ast.Value{}, p.errExpecting("value")
	}
}

// parseArguments parses '(name: value ...)'. The list is absent when the
// next token opens a selection set or continues the surrounding one.
func (p *Parser) parseArguments() ([]ast.Argument, error) {
	switch p.current().Keyword {
	case keyword.CURLYBRACKETOPEN, keyword.IDENT, keyword.SPREAD, keyword.CURLYBRACKETCLOSE:
		return nil, nil
	case keyword.BRACKETOPEN:
		p.advance()
	default:
		return nil, p.errExpecting("{ or (")
	}

	var args []ast.Argument
	for {
		tok := p.advance()
		switch tok.Keyword {
		case keyword.IDENT:
			if err := p.expect(keyword.COLON, ":"); err != nil {
				return nil, err
			}
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			args = append(args, ast.Argument{Name: tok.Literal, Value: value})
		case keyword.BRACKETCLOSE:
			return args, nil
		default:
			return nil, p.errExpecting("identifier")
		}
	}
}

// parseVariableDefinitions parses '($name: Type ...)'. The list is absent
// when the next token opens the selection set.
func (p *Parser) parseVariableDefinitions() ([]ast.VariableDefinition, error) {
	switch p.current().Keyword {
	case keyword.CURLYBRACKETOPEN:
		return nil, nil
	case keyword.BRACKETOPEN:
		p.advance()
	default:
		return nil, p.errExpecting("{ or (")
	}

	var defs []ast.VariableDefinition
	for {
		tok := p.advance()
		switch tok.Keyword {
		case keyword.VARIABLE:
			if err := p.expect(keyword.COLON, ":"); err != nil {
				return nil, err
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			defs = append(defs, ast.VariableDefinition{Name: tok.Literal, Type: t})
		case keyword.BRACKETCLOSE:
			return defs, nil
		default:
			return nil, p.errExpecting("identifier")
		}
	}
}

// parseOptionalSelectionSet decides with one token of lookahead whether a
// selection set follows: '{' opens one; an identifier, '}' or '...' means
// the field is scalar-shaped and has none.
func (p *Parser) parseOptionalSelectionSet() ([]ast.Selection, error) {
	switch p.current().Keyword {
	case keyword.IDENT, keyword.CURLYBRACKETCLOSE, keyword.SPREAD:
		return nil, nil
	case keyword.CURLYBRACKETOPEN:
		return p.parseSelectionSet()
	default:
		return nil, p.errExpecting("{ or \\n")
	}
}

func (p *Parser) parseSelectionSet() ([]ast.Selection, error) {
	if err := p.expect(keyword.CURLYBRACKETOPEN, "{"); err != nil {
		return nil, err
	}

	var selections []ast.Selection
	for p.current().Keyword != keyword.CURLYBRACKETCLOSE {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)
	}
	p.advance()

	return selections, nil
}

func (p *Parser) parseSelection() (ast.Selection, error) {
	tok := p.advance()
	switch tok.Keyword {
	case keyword.IDENT:
		return p.parseField(tok.Literal)
	case keyword.SPREAD:
		return p.parseFragmentSelection()
	default:
		return ast.Selection{}, p.errExpecting("field or spread")
	}
}

func (p *Parser) parseField(name string) (ast.Selection, error) {
	args, err := p.parseArguments()
	if err != nil {
		return ast.Selection{}, err
	}
	selections, err := p.parseOptionalSelectionSet()
	if err != nil {
		return ast.Selection{}, err
	}
	return ast.Selection{
		Kind:         ast.SelectionKindField,
		Name:         name,
		Arguments:    args,
		SelectionSet: selections,
	}, nil
}

// parseFragmentSelection handles what follows '...': a fragment name or an
// 'on Type { ... }' inline fragment.
func (p *Parser) parseFragmentSelection() (ast.Selection, error) {
	tok := p.advance()
	switch tok.Keyword {
	case keyword.IDENT:
		return ast.Selection{Kind: ast.SelectionKindFragmentSpread, FragmentName: tok.Literal}, nil
	case keyword.ON:
		typeCondition, err := p.parseType()
		if err != nil {
			return ast.Selection{}, err
		}
		selections, err := p.parseSelectionSet()
		if err != nil {
			return ast.Selection{}, err
		}
		return ast.Selection{
			Kind:          ast.SelectionKindInlineFragment,
			TypeCondition: typeCondition,
			SelectionSet:  selections,
		}, nil
	default:
		return ast.Selection{}, p.errExpecting("inline fragment or fragment")
	}
}

func (p *Parser) parseQuery() error {
	name, err := p.parseName()
	if err != nil {
		return err
	}
	defs, err := p.parseVariableDefinitions()
	if err != nil {
		return err
	}
	selections, err := p.parseSelectionSet()
	if err != nil {
		return err
	}
	p.document.Queries = append(p.document.Queries, ast.OperationDefinition{
		OperationType:       ast.OperationTypeQuery,
		Name:                name,
		VariableDefinitions: defs,
		SelectionSet:        selections,
	})
	return nil
}

func (p *Parser) parseMutation() error {
	name, err := p.parseName()
	if err != nil {
		return err
	}
	defs, err := p.parseVariableDefinitions()
	if err != nil {
		return err
	}
	selections, err := p.parseOptionalSelectionSet()
	if err != nil {
		return err
	}
	p.document.Mutations = append(p.document.Mutations, ast.OperationDefinition{
		OperationType:       ast.OperationTypeMutation,
		Name:                name,
		VariableDefinitions: defs,
		SelectionSet:        selections,
	})
	return nil
}

func (p *Parser) parseFragment() error {
	name, err := p.parseName()
	if err != nil {
		return err
	}
	if err := p.expect(keyword.ON, "on Type"); err != nil {
		return err
	}
	typeCondition, err := p.parseType()
	if err != nil {
		return err
	}
	defs, err := p.parseVariableDefinitions()
	if err != nil {
		return err
	}
	selections, err := p.parseSelectionSet()
	if err != nil {
		return err
	}
	p.document.Fragments = append(p.document.Fragments, ast.FragmentDefinition{
		Name:                name,
		TypeCondition:       typeCondition,
		VariableDefinitions: defs,
		SelectionSet:        selections,
	})
	return nil
}
