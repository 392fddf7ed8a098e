package lexer

import (
	"fmt"
	"testing"

	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/keyword"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexing/position"
)

func TestLexer_Read(t *testing.T) {

	type checkFunc func(lex *Lexer, i int)

	run := func(input string, checks ...checkFunc) {
		lex := NewLexer()
		lex.SetInput("test.graphql", input)
		for i := range checks {
			checks[i](lex, i+1)
		}
	}

	mustRead := func(k keyword.Keyword, wantLiteral string) checkFunc {
		return func(lex *Lexer, i int) {
			tok, ok, err := lex.read()
			if err != nil {
				panic(fmt.Errorf("mustRead: want(keyword): %s, got err: %v [check: %d]", k, err, i))
			}
			if !ok {
				panic(fmt.Errorf("mustRead: want(keyword): %s, got EOF [check: %d]", k, i))
			}
			if k != tok.Keyword {
				panic(fmt.Errorf("mustRead: want(keyword): %s, got: %s [check: %d]", k, tok.Keyword, i))
			}
			if wantLiteral != tok.Literal {
				panic(fmt.Errorf("mustRead: want(literal): %q, got: %q [check: %d]", wantLiteral, tok.Literal, i))
			}
		}
	}

	mustReadPosition := func(line, char uint32) checkFunc {
		return func(lex *Lexer, i int) {
			tok, _, err := lex.read()
			if err != nil {
				panic(fmt.Errorf("mustReadPosition: got err: %v [check: %d]", err, i))
			}
			if line != tok.TextPosition.Line {
				panic(fmt.Errorf("mustReadPosition: want(line): %d, got: %d [check: %d]", line, tok.TextPosition.Line, i))
			}
			if char != tok.TextPosition.Char {
				panic(fmt.Errorf("mustReadPosition: want(char): %d, got: %d [check: %d]", char, tok.TextPosition.Char, i))
			}
		}
	}

	mustErrUnexpectedCharacter := func(char rune, line, charPos uint32) checkFunc {
		return func(lex *Lexer, i int) {
			_, _, err := lex.read()
			unexpected, ok := err.(ErrUnexpectedCharacter)
			if !ok {
				panic(fmt.Errorf("mustErrUnexpectedCharacter: want ErrUnexpectedCharacter, got: %v [check: %d]", err, i))
			}
			if unexpected.Char != char {
				panic(fmt.Errorf("mustErrUnexpectedCharacter: want(char): %q, got: %q [check: %d]", char, unexpected.Char, i))
			}
			wantPos := position.Position{Line: line, Char: charPos}
			if unexpected.TextPosition != wantPos {
				panic(fmt.Errorf("mustErrUnexpectedCharacter: want(position): %s, got: %s [check: %d]", wantPos, unexpected.TextPosition, i))
			}
		}
	}

	mustErrExpectingSpread := func(line, charPos uint32) checkFunc {
		return func(lex *Lexer, i int) {
			_, _, err := lex.read()
			expecting, ok := err.(ErrExpectingToken)
			if !ok {
				panic(fmt.Errorf("mustErrExpectingSpread: want ErrExpectingToken, got: %v [check: %d]", err, i))
			}
			if expecting.Expected != "..." {
				panic(fmt.Errorf("mustErrExpectingSpread: want(expected): %q, got: %q [check: %d]", "...", expecting.Expected, i))
			}
			wantPos := position.Position{Line: line, Char: charPos}
			if expecting.TextPosition != wantPos {
				panic(fmt.Errorf("mustErrExpectingSpread: want(position): %s, got: %s [check: %d]", wantPos, expecting.TextPosition, i))
			}
		}
	}

	mustEOF := func() checkFunc {
		return func(lex *Lexer, i int) {
			_, ok, err := lex.read()
			if err != nil {
				panic(fmt.Errorf("mustEOF: got err: %v [check: %d]", err, i))
			}
			if ok {
				panic(fmt.Errorf("mustEOF: got another token [check: %d]", i))
			}
		}
	}

	t.Run("punctuation", func(t *testing.T) {
		run(":{}()[]!",
			mustRead(keyword.COLON, ":"),
			mustRead(keyword.CURLYBRACKETOPEN, "{"),
			mustRead(keyword.CURLYBRACKETCLOSE, "}"),
			mustRead(keyword.BRACKETOPEN, "("),
			mustRead(keyword.BRACKETCLOSE, ")"),
			mustRead(keyword.SQUAREBRACKETOPEN, "["),
			mustRead(keyword.SQUAREBRACKETCLOSE, "]"),
			mustRead(keyword.BANG, "!"),
			mustEOF(),
		)
	})
	t.Run("keywords and identifiers", func(t *testing.T) {
		run("fragment query mutation on String Int Bool userProfile _private x1",
			mustRead(keyword.FRAGMENT, "fragment"),
			mustRead(keyword.QUERY, "query"),
			mustRead(keyword.MUTATION, "mutation"),
			mustRead(keyword.ON, "on"),
			mustRead(keyword.STRINGTYPE, "String"),
			mustRead(keyword.INTTYPE, "Int"),
			mustRead(keyword.BOOLTYPE, "Bool"),
			mustRead(keyword.IDENT, "userProfile"),
			mustRead(keyword.IDENT, "_private"),
			mustRead(keyword.IDENT, "x1"),
			mustEOF(),
		)
	})
	t.Run("integer", func(t *testing.T) {
		run("1337 0 42",
			mustRead(keyword.INTEGER, "1337"),
			mustRead(keyword.INTEGER, "0"),
			mustRead(keyword.INTEGER, "42"),
			mustEOF(),
		)
	})
	t.Run("variable literal excludes dollar", func(t *testing.T) {
		run("$episodeId:$x",
			mustRead(keyword.VARIABLE, "episodeId"),
			mustRead(keyword.COLON, ":"),
			mustRead(keyword.VARIABLE, "x"),
			mustEOF(),
		)
	})
	t.Run("spread", func(t *testing.T) {
		run("...userFields ... on",
			mustRead(keyword.SPREAD, "..."),
			mustRead(keyword.IDENT, "userFields"),
			mustRead(keyword.SPREAD, "..."),
			mustRead(keyword.ON, "on"),
			mustEOF(),
		)
	})
	t.Run("insignificant characters are skipped", func(t *testing.T) {
		run(" \t\r\n,a,\t b ",
			mustRead(keyword.IDENT, "a"),
			mustRead(keyword.IDENT, "b"),
			mustEOF(),
		)
	})
	t.Run("positions are line and char of the first character", func(t *testing.T) {
		run("query GetUser {\n  user {\n    id\n  }\n}",
			mustReadPosition(1, 0),  // query
			mustReadPosition(1, 6),  // GetUser
			mustReadPosition(1, 14), // {
			mustReadPosition(2, 2),  // user
			mustReadPosition(2, 7),  // {
			mustReadPosition(3, 4),  // id
			mustReadPosition(4, 2),  // }
			mustReadPosition(5, 0),  // }
			mustEOF(),
		)
	})
	t.Run("unexpected character", func(t *testing.T) {
		run("user @skip",
			mustRead(keyword.IDENT, "user"),
			mustErrUnexpectedCharacter('@', 1, 5),
		)
	})
	t.Run("string literals are not part of the grammar", func(t *testing.T) {
		run(`name: "Luke"`,
			mustRead(keyword.IDENT, "name"),
			mustRead(keyword.COLON, ":"),
			mustErrUnexpectedCharacter('"', 1, 6),
		)
	})
	t.Run("malformed spread fails at the first dot", func(t *testing.T) {
		run("{ .x }",
			mustRead(keyword.CURLYBRACKETOPEN, "{"),
			mustErrExpectingSpread(1, 2),
		)
		run("..",
			mustErrExpectingSpread(1, 0),
		)
		run("..x",
			mustErrExpectingSpread(1, 0),
		)
	})
}

func TestTokenize(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		tokens, err := Tokenize("likes.graphql", "mutation Like($postId: Int!) {\n\tlike(postId: $postId)\n}")
		if err != nil {
			t.Fatal(err)
		}
		want := []keyword.Keyword{
			keyword.MUTATION, keyword.IDENT,
			keyword.BRACKETOPEN, keyword.VARIABLE, keyword.COLON, keyword.INTTYPE, keyword.BANG, keyword.BRACKETCLOSE,
			keyword.CURLYBRACKETOPEN,
			keyword.IDENT,
			keyword.BRACKETOPEN, keyword.IDENT, keyword.COLON, keyword.VARIABLE, keyword.BRACKETCLOSE,
			keyword.CURLYBRACKETCLOSE,
		}
		if len(tokens) != len(want) {
			t.Fatalf("want %d tokens, got %d", len(want), len(tokens))
		}
		for i := range want {
			if tokens[i].Keyword != want[i] {
				t.Fatalf("token %d: want %s, got %s", i, want[i], tokens[i].Keyword)
			}
		}
	})
	t.Run("error carries the file path", func(t *testing.T) {
		_, err := Tokenize("broken.graphql", "query { % }")
		if err == nil {
			t.Fatal("want err")
		}
		if want := "broken.graphql:1:8: unexpected character '%'"; err.Error() != want {
			t.Fatalf("want %q, got %q", want, err.Error())
		}
	})
	t.Run("no tokens survive a lexing error", func(t *testing.T) {
		tokens, err := Tokenize("broken.graphql", "query Broken { .bad }")
		if err == nil {
			t.Fatal("want err")
		}
		if tokens != nil {
			t.Fatalf("want nil tokens, got %v", tokens)
		}
	})
	t.Run("empty input", func(t *testing.T) {
		tokens, err := Tokenize("empty.graphql", "")
		if err != nil {
			t.Fatal(err)
		}
		if len(tokens) != 0 {
			t.Fatalf("want no tokens, got %d", len(tokens))
		}
	})
}
