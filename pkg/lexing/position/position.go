// Package position locates tokens and errors inside a source file.
package position

import "fmt"

// Position is the location of a token's first character.
// Line is 1-based, Char counts characters from 0 at the start of each line.
type Position struct {
	Line uint32
	Char uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Char)
}
