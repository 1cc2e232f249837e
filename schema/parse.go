package schema

import (
	"fmt"
	"strconv"

	"github.com/rixed/dessser/token"
)

// Parse parses a MaybeNullable from src using the DefaultCatalogue for
// user-type lookups. The grammar (§4.1):
//
//	mn      := vt '?'?
//	vt      := scalar | '(' mn (';' mn)* ')' | '{' field (';' field)* '}' | user
//	           | mn '[' nat ']'            -- vector
//	           | mn '[' ']'                -- list
//	           | mn '[' mn ']'             -- map
//	field   := ident ':' mn
//	scalar  := "bool" | "boolean" | "char" | "float" | "string"
//	         | ('u'|'i') ('8'|'16'|'24'|'32'|'40'|'48'|'56'|'64'|'128')
//	user    := <any registered user-type name>
//
// Keywords match case-insensitively. Vector/list/map constructors bind
// tighter than the trailing '?'. Blanks and "--" line-comments are
// permitted anywhere whitespace is.
func Parse(src string) (*MaybeNullable, error) {
	return ParseWith(src, DefaultCatalogue)
}

func ParseWith(src string, cat *Catalogue) (*MaybeNullable, error) {
	c := token.NewCursor([]byte(src))
	mn, err := parseMN(c, cat)
	if err != nil {
		return nil, err
	}
	token.SkipBlanksAndComments(c)
	if !c.Eof() {
		return nil, token.Unexpected(c, fmt.Sprintf("trailing input %q", string(c.Src[c.Pos.Offset:])))
	}
	return mn, nil
}

func parseMN(c *token.Cursor, cat *Catalogue) (*MaybeNullable, error) {
	vt, err := parsePrimaryVT(c, cat)
	if err != nil {
		return nil, err
	}
	mn := wrapNullable(vt, c)
	for {
		token.SkipBlanksAndComments(c)
		if c.Peek() != '[' {
			return mn, nil
		}
		c.Advance() // '['
		token.SkipBlanksAndComments(c)
		var newVT *ValueType
		switch {
		case c.Peek() == ']':
			c.Advance()
			newVT = NewList(mn)
		case token.IsDigit(c.Peek()):
			digits := token.ScanDigits(c)
			n, convErr := strconv.Atoi(digits)
			if convErr != nil {
				return nil, token.Unexpected(c, "vector dimension "+digits)
			}
			token.SkipBlanksAndComments(c)
			if c.Peek() != ']' {
				return nil, token.Expected(c, "']'")
			}
			c.Advance()
			newVT, err = NewVec(n, mn)
			if err != nil {
				return nil, err
			}
		default:
			keyMN, kerr := parseMN(c, cat)
			if kerr != nil {
				return nil, kerr
			}
			token.SkipBlanksAndComments(c)
			if c.Peek() != ']' {
				return nil, token.Expected(c, "']'")
			}
			c.Advance()
			newVT = NewMap(keyMN, mn)
		}
		mn = wrapNullable(newVT, c)
	}
}

func wrapNullable(vt *ValueType, c *token.Cursor) *MaybeNullable {
	save := c.Pos
	token.SkipBlanksAndComments(c)
	if c.Peek() == '?' {
		c.Advance()
		return Nullable(vt)
	}
	c.Pos = save
	return NotNullable(vt)
}

func parsePrimaryVT(c *token.Cursor, cat *Catalogue) (*ValueType, error) {
	token.SkipBlanksAndComments(c)
	switch {
	case c.Peek() == '(':
		c.Advance()
		children := []*MaybeNullable{}
		mn, err := parseMN(c, cat)
		if err != nil {
			return nil, err
		}
		children = append(children, mn)
		for {
			token.SkipBlanksAndComments(c)
			if c.Peek() != ';' {
				break
			}
			c.Advance()
			mn, err = parseMN(c, cat)
			if err != nil {
				return nil, err
			}
			children = append(children, mn)
		}
		token.SkipBlanksAndComments(c)
		if c.Peek() != ')' {
			return nil, token.Expected(c, "')'")
		}
		c.Advance()
		return NewTup(children...)

	case c.Peek() == '{':
		c.Advance()
		fields := []RecField{}
		f, err := parseField(c, cat)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		for {
			token.SkipBlanksAndComments(c)
			if c.Peek() != ';' {
				break
			}
			c.Advance()
			f, err = parseField(c, cat)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		token.SkipBlanksAndComments(c)
		if c.Peek() != '}' {
			return nil, token.Expected(c, "'}'")
		}
		c.Advance()
		return NewRec(fields...)

	case token.IsIdentStart(c.Peek()):
		ident := token.ScanIdent(c)
		lower := lowerASCII(ident)
		if k, ok := scalarSynonyms[lower]; ok {
			return NewScalar(k), nil
		}
		ut, ok := cat.Lookup(ident)
		if !ok {
			return nil, fmt.Errorf("schema: unknown user type %q", ident)
		}
		return NewUser(ut), nil

	default:
		return nil, token.Unexpected(c, "start of value-type")
	}
}

func parseField(c *token.Cursor, cat *Catalogue) (RecField, error) {
	token.SkipBlanksAndComments(c)
	if !token.IsIdentStart(c.Peek()) {
		return RecField{}, token.Expected(c, "field name")
	}
	name := token.ScanIdent(c)
	token.SkipBlanksAndComments(c)
	if c.Peek() != ':' {
		return RecField{}, token.Expected(c, "':'")
	}
	c.Advance()
	mn, err := parseMN(c, cat)
	if err != nil {
		return RecField{}, err
	}
	return RecField{Name: name, Type: mn}, nil
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
