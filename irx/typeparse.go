package irx

import (
	"fmt"

	"github.com/rixed/dessser/schema"
	"github.com/rixed/dessser/token"
)

// parseType parses the textual form Type.String emits: a bare keyword
// for the unparametrised IR types, or one of ValuePtr(mn), Value(mn),
// Pair(t1, t2), Function(t1, ..., tn) -> result.
func parseType(c *token.Cursor) (*Type, error) {
	token.SkipBlanksAndComments(c)
	if !token.IsIdentStart(c.Peek()) {
		return nil, token.Unexpected(c, "start of type")
	}
	name := token.ScanIdent(c)
	switch name {
	case "Void":
		return Void(), nil
	case "DataPtr":
		return DataPtr(), nil
	case "Size":
		return SizeT(), nil
	case "Bit":
		return BitT(), nil
	case "Byte":
		return ByteT(), nil
	case "Word":
		return WordT(), nil
	case "DWord":
		return DWordT(), nil
	case "QWord":
		return QWordT(), nil
	case "OWord":
		return OWordT(), nil
	case "Bytes":
		return BytesT(), nil

	case "ValuePtr", "Value":
		token.SkipBlanksAndComments(c)
		if c.Peek() != '(' {
			return nil, token.Expected(c, "'('")
		}
		c.Advance()
		mnSrc, err := parseBalancedArg(c)
		if err != nil {
			return nil, err
		}
		mn, err := schema.Parse(mnSrc)
		if err != nil {
			return nil, err
		}
		if name == "ValuePtr" {
			return ValuePtr(mn), nil
		}
		return Value(mn), nil

	case "Pair":
		token.SkipBlanksAndComments(c)
		if c.Peek() != '(' {
			return nil, token.Expected(c, "'('")
		}
		c.Advance()
		a, err := parseType(c)
		if err != nil {
			return nil, err
		}
		if err := expectComma(c); err != nil {
			return nil, err
		}
		b, err := parseType(c)
		if err != nil {
			return nil, err
		}
		if err := expectClose(c); err != nil {
			return nil, err
		}
		return PairT(a, b), nil

	case "Function":
		token.SkipBlanksAndComments(c)
		if c.Peek() != '(' {
			return nil, token.Expected(c, "'('")
		}
		c.Advance()
		var args []*Type
		token.SkipBlanksAndComments(c)
		if c.Peek() != ')' {
			for {
				a, err := parseType(c)
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				token.SkipBlanksAndComments(c)
				if c.Peek() == ',' {
					c.Advance()
					continue
				}
				break
			}
		}
		if c.Peek() != ')' {
			return nil, token.Expected(c, "')'")
		}
		c.Advance()
		token.SkipBlanksAndComments(c)
		if c.Peek() != '-' || c.PeekAt(1) != '>' {
			return nil, token.Expected(c, "'->'")
		}
		c.Advance()
		c.Advance()
		result, err := parseType(c)
		if err != nil {
			return nil, err
		}
		return FunctionT(args, result), nil

	default:
		return nil, fmt.Errorf("irx: unknown type constructor %q", name)
	}
}
