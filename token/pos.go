// Package token provides the hand-rolled byte-level scanning primitives
// shared by the schema parser, the expression IR parser, and the
// S-expression codec's tokenizer. None of these grammars are regular
// enough to delegate to text/scanner, and all three want the same
// notion of source position for error messages.
package token

import "fmt"

// Pos is a source position within a single parse. Line and Col are
// 1-based; Offset is the 0-based byte offset.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d (offset %d)", p.Line, p.Col, p.Offset)
}

// Cursor tracks a position while scanning a byte slice.
type Cursor struct {
	Src []byte
	Pos Pos
}

func NewCursor(src []byte) *Cursor {
	return &Cursor{Src: src, Pos: Pos{Line: 1, Col: 1}}
}

func (c *Cursor) Eof() bool { return c.Pos.Offset >= len(c.Src) }

func (c *Cursor) Peek() byte {
	if c.Eof() {
		return 0
	}
	return c.Src[c.Pos.Offset]
}

func (c *Cursor) PeekAt(n int) byte {
	i := c.Pos.Offset + n
	if i < 0 || i >= len(c.Src) {
		return 0
	}
	return c.Src[i]
}

// Advance consumes one byte and updates line/col bookkeeping.
func (c *Cursor) Advance() byte {
	b := c.Src[c.Pos.Offset]
	c.Pos.Offset++
	if b == '\n' {
		c.Pos.Line++
		c.Pos.Col = 1
	} else {
		c.Pos.Col++
	}
	return b
}

// SkipWhile advances past bytes satisfying pred, returning the count skipped.
func (c *Cursor) SkipWhile(pred func(byte) bool) int {
	n := 0
	for !c.Eof() && pred(c.Peek()) {
		c.Advance()
		n++
	}
	return n
}
