package token

import "strings"

// QuoteString renders v as a double-quoted string literal, escaping
// embedded backslashes and double quotes.
//
// The S-expression reference codec the original dessser ships is marked
// FIXME for not escaping embedded double quotes. QuoteString and
// ScanQuotedString below escape and unescape, so together they
// round-trip any string, including one containing `"` or `\`. The
// IR that codec/sexpr builds does not use them: it writes and reads
// quoted string content verbatim.
func QuoteString(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ScanQuotedString consumes a double-quoted string literal starting at
// the cursor's current '"' byte and returns its unescaped content.
func ScanQuotedString(c *Cursor) (string, error) {
	if c.Peek() != '"' {
		return "", &SyntaxError{Pos: c.Pos, Msg: "expected '\"'"}
	}
	c.Advance()
	var b strings.Builder
	for {
		if c.Eof() {
			return "", &SyntaxError{Pos: c.Pos, Msg: "unterminated string"}
		}
		ch := c.Advance()
		if ch == '"' {
			return b.String(), nil
		}
		if ch == '\\' {
			if c.Eof() {
				return "", &SyntaxError{Pos: c.Pos, Msg: "unterminated escape"}
			}
			esc := c.Advance()
			switch esc {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
			continue
		}
		b.WriteByte(ch)
	}
}
