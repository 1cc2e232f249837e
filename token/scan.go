package token

// Byte-class predicates shared by every grammar this module parses.
// Grounded on the hand-written classifiers in the tony-format
// tokenizer (asciiDigit, etc.) rather than regexp or unicode tables,
// since schema/expression/S-expression syntax is ASCII-only by design.

func IsDigit(b byte) bool { return b >= '0' && b <= '9' }

func IsAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsIdentStart(b byte) bool { return IsAlpha(b) || b == '_' }

func IsIdentCont(b byte) bool { return IsIdentStart(b) || IsDigit(b) }

func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// SkipBlanksAndComments advances the cursor past whitespace and "--"
// line comments, per the schema grammar's rule that "blanks and --
// line-comments are permitted anywhere whitespace is".
func SkipBlanksAndComments(c *Cursor) {
	for {
		if c.SkipWhile(IsSpace) > 0 {
			continue
		}
		if c.Peek() == '-' && c.PeekAt(1) == '-' {
			for !c.Eof() && c.Peek() != '\n' {
				c.Advance()
			}
			continue
		}
		return
	}
}

// ScanIdent consumes a [A-Za-z_][A-Za-z0-9_]* identifier starting at the
// cursor and returns it. The caller must have checked IsIdentStart first.
func ScanIdent(c *Cursor) string {
	start := c.Pos.Offset
	c.Advance()
	c.SkipWhile(IsIdentCont)
	return string(c.Src[start:c.Pos.Offset])
}

// ScanDigits consumes a run of ASCII digits and returns it.
func ScanDigits(c *Cursor) string {
	start := c.Pos.Offset
	c.SkipWhile(IsDigit)
	return string(c.Src[start:c.Pos.Offset])
}
