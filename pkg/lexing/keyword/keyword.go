// Package keyword enumerates the token kinds emitted by the lexer.
package keyword

import "fmt"

type Keyword int

const (
	UNDEFINED Keyword = iota
	EOF
	IDENT
	VARIABLE
	INTEGER
	STRING

	FRAGMENT
	QUERY
	MUTATION
	ON
	STRINGTYPE
	INTTYPE
	BOOLTYPE

	COLON
	BANG
	SPREAD
	BRACKETOPEN
	BRACKETCLOSE
	SQUAREBRACKETOPEN
	SQUAREBRACKETCLOSE
	CURLYBRACKETOPEN
	CURLYBRACKETCLOSE
)

func (k Keyword) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case VARIABLE:
		return "VARIABLE"
	case INTEGER:
		return "INTEGER"
	case STRING:
		return "STRING"
	case FRAGMENT:
		return "FRAGMENT"
	case QUERY:
		return "QUERY"
	case MUTATION:
		return "MUTATION"
	case ON:
		return "ON"
	case STRINGTYPE:
		return "STRINGTYPE"
	case INTTYPE:
		return "INTTYPE"
	case BOOLTYPE:
		return "BOOLTYPE"
	case COLON:
		return "COLON"
	case BANG:
		return "BANG"
	case SPREAD:
		return "SPREAD"
	case BRACKETOPEN:
		return "BRACKETOPEN"
	case BRACKETCLOSE:
		return "BRACKETCLOSE"
	case SQUAREBRACKETOPEN:
		return "SQUAREBRACKETOPEN"
	case SQUAREBRACKETCLOSE:
		return "SQUAREBRACKETCLOSE"
	case CURLYBRACKETOPEN:
		return "CURLYBRACKETOPEN"
	case CURLYBRACKETCLOSE:
		return "CURLYBRACKETCLOSE"
	default:
		return fmt.Sprintf("#undefined String case for %d# (see keyword.go)", k)
	}
}
