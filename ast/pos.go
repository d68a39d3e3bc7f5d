package ast

import "fmt"

// Pos is a single position in a source file: a byte offset plus the
// 1-based line and column it corresponds to.
type Pos struct {
	Byte   int
	Line   int
	Column int
}

// Range is a contiguous byte span in a named source file, carried by
// every AST node and diagnostic so callers can report or highlight
// exactly where something came from.
type Range struct {
	Filename string
	Start    Pos
	End      Pos
}

// String renders r as "filename:line:column", or "line:column" when
// Filename is empty.
func (r Range) String() string {
	if r.Filename == "" {
		return fmt.Sprintf("%d:%d", r.Start.Line, r.Start.Column)
	}
	return fmt.Sprintf("%s:%d:%d", r.Filename, r.Start.Line, r.Start.Column)
}

// ContainsOffset reports whether the byte offset off falls within r.
func (r Range) ContainsOffset(off int) bool {
	return off >= r.Start.Byte && off < r.End.Byte
}
