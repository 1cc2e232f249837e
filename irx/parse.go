package irx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rixed/dessser/schema"
	"github.com/rixed/dessser/token"
)

var scalarSuffixes = map[string]schema.ScalarKind{
	"u8": schema.U8, "u16": schema.U16, "u24": schema.U24, "u32": schema.U32,
	"u40": schema.U40, "u48": schema.U48, "u56": schema.U56, "u64": schema.U64,
	"u128": schema.U128,
	"i8": schema.I8, "i16": schema.I16, "i24": schema.I24, "i32": schema.I32,
	"i40": schema.I40, "i48": schema.I48, "i56": schema.I56, "i64": schema.I64,
	"i128": schema.I128,
}

// Parse parses the textual form Print emits back into an Expr. It is
// a debug/golden-file round trip, not a surface language: every
// constructor spells its Op's name followed by a parenthesised,
// comma-separated operand list, except the handful of literal forms
// (bool, char, string, int, bare identifier).
func Parse(src string) (*Expr, error) {
	c := token.NewCursor([]byte(src))
	e, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	token.SkipBlanksAndComments(c)
	if !c.Eof() {
		return nil, token.Unexpected(c, "trailing input")
	}
	return e, nil
}

func parseExpr(c *token.Cursor) (*Expr, error) {
	token.SkipBlanksAndComments(c)
	switch {
	case c.Peek() == '"':
		s, err := token.ScanQuotedString(c)
		if err != nil {
			return nil, err
		}
		return Str(s), nil

	case c.Peek() == '\'':
		return parseCharLiteral(c)

	case c.Peek() == '-' || token.IsDigit(c.Peek()):
		return parseNumberLiteral(c)

	case token.IsIdentStart(c.Peek()):
		name := token.ScanIdent(c)
		switch name {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		token.SkipBlanksAndComments(c)
		if c.Peek() != '(' {
			return Identifier(name), nil
		}
		return parseCall(c, name)

	default:
		return nil, token.Unexpected(c, "start of expression")
	}
}

func parseCharLiteral(c *token.Cursor) (*Expr, error) {
	start := c.Pos
	c.Advance() // opening '
	if c.Eof() {
		return nil, &token.SyntaxError{Pos: start, Msg: "unterminated char literal"}
	}
	r := rune(c.Advance())
	if r == '\\' {
		if c.Eof() {
			return nil, &token.SyntaxError{Pos: start, Msg: "unterminated char literal"}
		}
		esc := c.Advance()
		switch esc {
		case 'n':
			r = '\n'
		case 't':
			r = '\t'
		case '\'':
			r = '\''
		case '\\':
			r = '\\'
		default:
			r = rune(esc)
		}
	}
	if c.Peek() != '\'' {
		return nil, token.Expected(c, "closing '\\''")
	}
	c.Advance()
	return Char(r), nil
}

func parseNumberLiteral(c *token.Cursor) (*Expr, error) {
	start := c.Pos.Offset
	if c.Peek() == '-' {
		c.Advance()
	}
	token.ScanDigits(c)
	if c.Peek() == '.' {
		c.Advance()
		token.ScanDigits(c)
		f, err := strconv.ParseFloat(string(c.Src[start:c.Pos.Offset]), 64)
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	}
	digits := string(c.Src[start:c.Pos.Offset])
	suffixStart := c.Pos.Offset
	for token.IsAlpha(c.Peek()) || token.IsDigit(c.Peek()) {
		c.Advance()
	}
	suffix := string(c.Src[suffixStart:c.Pos.Offset])
	if suffix == "" {
		// A bare, unsuffixed integer: used for positional arguments
		// like Param/Function's function ids and indices rather than
		// for a schema-typed value.
		return &Expr{Op: OpIntConst, IntVal: digits}, nil
	}
	k, ok := scalarSuffixes[suffix]
	if !ok {
		return nil, token.Unexpected(c, fmt.Sprintf("scalar suffix %q", suffix))
	}
	return Int(k, digits), nil
}

func parseCall(c *token.Cursor, name string) (*Expr, error) {
	c.Advance() // '('
	switch name {
	case "Null":
		// parseBalancedArg already consumes the matching ')'.
		mnSrc, err := parseBalancedArg(c)
		if err != nil {
			return nil, err
		}
		mn, err := schema.Parse(mnSrc)
		if err != nil {
			return nil, err
		}
		return Null(mn), nil

	case "Param":
		args, err := parseArgList(c)
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("irx: Param takes 2 arguments, got %d", len(args))
		}
		fid, err := exprAsUint(args[0])
		if err != nil {
			return nil, err
		}
		idx, err := exprAsUint(args[1])
		if err != nil {
			return nil, err
		}
		return Param(fid, int(idx)), nil

	case "Let":
		token.SkipBlanksAndComments(c)
		if !token.IsIdentStart(c.Peek()) {
			return nil, token.Expected(c, "binding name")
		}
		bname := token.ScanIdent(c)
		if err := expectComma(c); err != nil {
			return nil, err
		}
		value, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := expectComma(c); err != nil {
			return nil, err
		}
		body, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := expectClose(c); err != nil {
			return nil, err
		}
		return Let(bname, value, body), nil

	case "Seq":
		args, err := parseArgList(c)
		if err != nil {
			return nil, err
		}
		return Seq(args...), nil

	case "Cast":
		to, err := parseType(c)
		if err != nil {
			return nil, err
		}
		if err := expectComma(c); err != nil {
			return nil, err
		}
		e, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := expectClose(c); err != nil {
			return nil, err
		}
		return Cast(to, e), nil

	case "OfString":
		token.SkipBlanksAndComments(c)
		if !token.IsIdentStart(c.Peek()) {
			return nil, token.Expected(c, "scalar kind")
		}
		kindName := token.ScanIdent(c)
		k, ok := scalarSuffixes[kindName]
		if !ok {
			return nil, fmt.Errorf("irx: unknown scalar kind %q", kindName)
		}
		if err := expectComma(c); err != nil {
			return nil, err
		}
		e, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := expectClose(c); err != nil {
			return nil, err
		}
		return OfString(k, e), nil

	case "Function":
		fidExpr, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		fid, err := exprAsUint(fidExpr)
		if err != nil {
			return nil, err
		}
		if err := expectComma(c); err != nil {
			return nil, err
		}
		token.SkipBlanksAndComments(c)
		if c.Peek() != '[' {
			return nil, token.Expected(c, "'['")
		}
		c.Advance()
		var params []*Type
		token.SkipBlanksAndComments(c)
		if c.Peek() != ']' {
			for {
				t, err := parseType(c)
				if err != nil {
					return nil, err
				}
				params = append(params, t)
				token.SkipBlanksAndComments(c)
				if c.Peek() == ',' {
					c.Advance()
					continue
				}
				break
			}
		}
		if c.Peek() != ']' {
			return nil, token.Expected(c, "']'")
		}
		c.Advance()
		if err := expectComma(c); err != nil {
			return nil, err
		}
		body, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := expectClose(c); err != nil {
			return nil, err
		}
		return Function(fid, params, body), nil

	default:
		if _, base, ok := splitEndianOp(name); ok {
			token.SkipBlanksAndComments(c)
			if !token.IsIdentStart(c.Peek()) {
				return nil, token.Expected(c, "endianness")
			}
			endianWord := token.ScanIdent(c)
			var e Endian
			switch endianWord {
			case "little":
				e = LittleEndian
			case "big":
				e = BigEndian
			default:
				return nil, fmt.Errorf("irx: unknown endianness %q", endianWord)
			}
			if err := expectComma(c); err != nil {
				return nil, err
			}
			args, err := parseArgList(c)
			if err != nil {
				return nil, err
			}
			return &Expr{Op: base, Endian: e, Kids: args}, nil
		}

		op, ok := opByName[name]
		if !ok {
			return nil, fmt.Errorf("irx: unknown constructor %q", name)
		}
		args, err := parseArgList(c)
		if err != nil {
			return nil, err
		}
		return &Expr{Op: op, Kids: args}, nil
	}
}

func splitEndianOp(name string) (Endian, Op, bool) {
	if op, ok := endianOpByName[name]; ok {
		return LittleEndian, op, true
	}
	return 0, 0, false
}

var endianOpByName = func() map[string]Op {
	m := make(map[string]Op, len(endianOpNames))
	for op, name := range endianOpNames {
		m[name] = op
	}
	return m
}()

// parseArgList parses a comma-separated list of expressions up to
// and including the closing ')'. The caller has already consumed '('.
func parseArgList(c *token.Cursor) ([]*Expr, error) {
	var args []*Expr
	token.SkipBlanksAndComments(c)
	if c.Peek() == ')' {
		c.Advance()
		return args, nil
	}
	for {
		e, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		token.SkipBlanksAndComments(c)
		switch c.Peek() {
		case ',':
			c.Advance()
			continue
		case ')':
			c.Advance()
			return args, nil
		default:
			return nil, token.Expected(c, "',' or ')'")
		}
	}
}

func parseBalancedArg(c *token.Cursor) (string, error) {
	start := c.Pos.Offset
	depth := 1
	for {
		if c.Eof() {
			return "", token.Unexpected(c, "unterminated argument")
		}
		switch c.Peek() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s := strings.TrimSpace(string(c.Src[start:c.Pos.Offset]))
				c.Advance()
				return s, nil
			}
		}
		c.Advance()
	}
}

func expectClose(c *token.Cursor) error {
	token.SkipBlanksAndComments(c)
	if c.Peek() != ')' {
		return token.Expected(c, "')'")
	}
	c.Advance()
	return nil
}

func expectComma(c *token.Cursor) error {
	token.SkipBlanksAndComments(c)
	if c.Peek() != ',' {
		return token.Expected(c, "','")
	}
	c.Advance()
	return nil
}

func exprAsUint(e *Expr) (uint64, error) {
	if e.Op != OpIntConst {
		return 0, fmt.Errorf("irx: expected an integer literal")
	}
	v, err := strconv.ParseUint(e.IntVal, 10, 64)
	return v, err
}
