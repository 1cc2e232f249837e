// Package interp is a tree-walking evaluator for the staged IR
// (package irx), dispatching on an Expr's Op the same way package
// eval's Op.Eval dispatches on an ir.Node's tag without inspecting
// what the document it walks actually means. It exists so the
// boundary cases the reference codec (package codec/sexpr) and the
// generic recursion (package driver) are built to satisfy can be
// checked against literal wire bytes in a unit test, without lowering
// the same expression through backend/golang and invoking a compiler.
//
// Coverage is deliberately partial: only the Ops codec/sexpr and
// driver actually emit are implemented. Word/DWord/QWord/OWord-kind
// Ops, ValuePtr/DerefValuePtr, bit bundling (SetBit/BlitByte/TestBit)
// and shifts are outside that set and return an error naming the Op,
// the same scope decision backend/golang/emit.go makes for Ops its Go
// backend doesn't lower.
package interp

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// Cursor is the runtime counterpart of a DataPtr: an offset into a
// byte slice shared by every Cursor derived from it, so a write made
// down one branch of a Choose is visible to whatever reads the same
// buffer afterwards. Cursor values are never mutated in place; every
// read or write returns a new Cursor at the advanced position, the
// way irx's DataPtr-typed Ops are themselves pure.
type Cursor struct {
	buf *[]byte
	pos int
}

// NewReader wraps data for decoding. The slice is copied so the
// caller's original bytes are untouched regardless of what the
// interpreted expression does with the cursor.
func NewReader(data []byte) *Cursor {
	b := append([]byte(nil), data...)
	return &Cursor{buf: &b}
}

// NewWriter starts an empty buffer for encoding.
func NewWriter() *Cursor {
	b := make([]byte, 0, 64)
	return &Cursor{buf: &b}
}

// Bytes returns the full underlying buffer, not just what's left to
// read — for a writer cursor that's every byte written so far.
func (c *Cursor) Bytes() []byte { return *c.buf }

// Pos is the cursor's current offset into its buffer.
func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) readByte() (byte, *Cursor, error) {
	if c.pos >= len(*c.buf) {
		return 0, nil, fmt.Errorf("interp: read past end of buffer at offset %d", c.pos)
	}
	return (*c.buf)[c.pos], &Cursor{buf: c.buf, pos: c.pos + 1}, nil
}

func (c *Cursor) peekByte(off int) (byte, error) {
	if off < 0 || c.pos+off >= len(*c.buf) {
		return 0, fmt.Errorf("interp: peek past end of buffer at offset %d", c.pos+off)
	}
	return (*c.buf)[c.pos+off], nil
}

func (c *Cursor) readBytes(n int) ([]byte, *Cursor, error) {
	if n < 0 || c.pos+n > len(*c.buf) {
		return nil, nil, fmt.Errorf("interp: read %d bytes past end of buffer at offset %d", n, c.pos)
	}
	out := append([]byte(nil), (*c.buf)[c.pos:c.pos+n]...)
	return out, &Cursor{buf: c.buf, pos: c.pos + n}, nil
}

func (c *Cursor) writeByte(b byte) *Cursor {
	*c.buf = append((*c.buf)[:c.pos], b)
	return &Cursor{buf: c.buf, pos: c.pos + 1}
}

func (c *Cursor) writeBytes(data []byte) *Cursor {
	*c.buf = append((*c.buf)[:c.pos], data...)
	return &Cursor{buf: c.buf, pos: c.pos + len(data)}
}

// Pair is the runtime counterpart of a Pair(t1, t2) value.
type Pair struct{ A, B any }

// Null is the runtime counterpart of a Value(Nullable(scalar)): either
// the null case, or a wrapped not-null payload.
type Null struct {
	IsNull bool
	Value  any
}

// closure is the runtime counterpart of a Function: the body together
// with the environment it closed over, so a Function built inside a
// Let still sees that Let's binding when it's later invoked from
// ReadWhile, LoopWhile, Repeat, or MapPair.
type closure struct {
	fid  uint64
	body *irx.Expr
	env  *env
}

// env is an immutable binding chain: either a named Let binding or a
// Function invocation's argument list, mirroring irx.Env's split
// between bindVar and bindParams but carrying values instead of types.
type env struct {
	parent *env
	name   string
	value  any
	fid    uint64
	args   []any
}

func bindVar(parent *env, name string, v any) *env {
	return &env{parent: parent, name: name, value: v}
}

func bindArgs(parent *env, fid uint64, args []any) *env {
	return &env{parent: parent, fid: fid, args: args}
}

func (e *env) lookupVar(name string) (any, bool) {
	for p := e; p != nil; p = p.parent {
		if p.name == name {
			return p.value, true
		}
	}
	return nil, false
}

func (e *env) lookupArg(fid uint64, idx int) (any, bool) {
	for p := e; p != nil; p = p.parent {
		if p.args != nil && p.fid == fid {
			if idx < 0 || idx >= len(p.args) {
				return nil, false
			}
			return p.args[idx], true
		}
	}
	return nil, false
}

// Run interprets fn — which must be an irx.Function — by binding args
// to its parameters and evaluating its body. Use this for the
// top-level converter driver.Desser and cmd/dessserc's buildConverter
// both produce.
func Run(fn *irx.Expr, args ...any) (any, error) {
	if fn.Op != irx.OpFunction {
		return eval(nil, fn)
	}
	return eval(bindArgs(nil, fn.Fid, args), fn.Kids[0])
}

func kid(en *env, e *irx.Expr, i int) (any, error) { return eval(en, e.Kids[i]) }

func callClosure(c *closure, args []any) (any, error) {
	return eval(bindArgs(c.env, c.fid, args), c.body)
}

func eval(en *env, e *irx.Expr) (any, error) {
	switch e.Op {

	case irx.OpBoolConst:
		return e.BoolVal, nil
	case irx.OpCharConst:
		return e.CharVal, nil
	case irx.OpFloatConst:
		return e.FloatVal, nil
	case irx.OpStringConst:
		return e.StrVal, nil
	case irx.OpIntConst:
		n := new(big.Int)
		if _, ok := n.SetString(e.IntVal, 10); !ok {
			return nil, fmt.Errorf("interp: bad integer constant %q", e.IntVal)
		}
		return n, nil
	case irx.OpNullConst:
		return &Null{IsNull: true}, nil

	case irx.OpIdentifier:
		v, ok := en.lookupVar(e.Name)
		if !ok {
			return nil, fmt.Errorf("interp: unbound identifier %q", e.Name)
		}
		return v, nil
	case irx.OpParam:
		v, ok := en.lookupArg(e.Fid, e.ParamIdx)
		if !ok {
			return nil, fmt.Errorf("interp: no argument %d of function %d in scope", e.ParamIdx, e.Fid)
		}
		return v, nil
	case irx.OpLet:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		return eval(bindVar(en, e.Name, v), e.Kids[1])
	case irx.OpFunction:
		return &closure{fid: e.Fid, body: e.Kids[0], env: en}, nil
	case irx.OpSeq:
		if len(e.Seq) == 0 {
			return nil, fmt.Errorf("interp: empty Seq")
		}
		var v any
		var err error
		for _, s := range e.Seq {
			if v, err = eval(en, s); err != nil {
				return nil, err
			}
		}
		return v, nil

	case irx.OpNot:
		b, err := kidBool(en, e, 0)
		if err != nil {
			return nil, err
		}
		return !b, nil
	case irx.OpLogNot:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		switch x := v.(type) {
		case bool:
			return !x, nil
		case uint64:
			return ^x, nil
		default:
			return nil, fmt.Errorf("interp: LogNot on %T", v)
		}
	case irx.OpIsNull:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		nb, ok := v.(*Null)
		if !ok {
			return nil, fmt.Errorf("interp: IsNull on non-nullable %T", v)
		}
		return nb.IsNull, nil
	case irx.OpToNullable:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		return &Null{Value: v}, nil
	case irx.OpToNotNullable:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		nb, ok := v.(*Null)
		if !ok {
			return nil, fmt.Errorf("interp: ToNotNullable on non-nullable %T", v)
		}
		if nb.IsNull {
			return nil, fmt.Errorf("interp: ToNotNullable on a null value")
		}
		return nb.Value, nil
	case irx.OpFst:
		p, err := kidPair(en, e, 0)
		if err != nil {
			return nil, err
		}
		return p.A, nil
	case irx.OpSnd:
		p, err := kidPair(en, e, 0)
		if err != nil {
			return nil, err
		}
		return p.B, nil
	case irx.OpStringLength:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("interp: StringLength on %T", v)
		}
		return uint64(len(s)), nil
	case irx.OpListLength:
		return nil, fmt.Errorf("interp: ListLength not supported")
	case irx.OpRemSize:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		return uint64(len(*c.buf) - c.pos), nil
	case irx.OpDataPtrPush, irx.OpDataPtrPop:
		return kid(en, e, 0)
	case irx.OpDerefValuePtr:
		return nil, fmt.Errorf("interp: DerefValuePtr not supported")
	case irx.OpDump:
		return nil, nil
	case irx.OpIgnore:
		if _, err := kid(en, e, 0); err != nil {
			return nil, err
		}
		return nil, nil
	case irx.OpReadByte:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, next, err := c.readByte()
		if err != nil {
			return nil, err
		}
		return &Pair{A: b, B: next}, nil

	case irx.OpCast:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		return castValue(e.To, v)
	case irx.OpOfString:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("interp: OfString operand is %T, not string", v)
		}
		return parseScalar(e.ScalarK, s)
	case irx.OpToString:
		v, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		return formatValue(v)

	case irx.OpGt, irx.OpGe, irx.OpEq, irx.OpNe:
		a, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kid(en, e, 1)
		if err != nil {
			return nil, err
		}
		return compareValues(e.Op, a, b)
	case irx.OpAdd, irx.OpSub, irx.OpMul, irx.OpDiv, irx.OpRem:
		a, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kid(en, e, 1)
		if err != nil {
			return nil, err
		}
		return arith(e.Op, a, b)
	case irx.OpLogAnd, irx.OpLogOr, irx.OpLogXor:
		a, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kid(en, e, 1)
		if err != nil {
			return nil, err
		}
		return logicOp(e.Op, a, b)
	case irx.OpLeftShift, irx.OpRightShift:
		return nil, fmt.Errorf("interp: shifts not supported")
	case irx.OpAppendBytes:
		a, err := kidBytes(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kidBytes(en, e, 1)
		if err != nil {
			return nil, err
		}
		return append(append([]byte(nil), a...), b...), nil
	case irx.OpAppendString:
		a, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kid(en, e, 1)
		if err != nil {
			return nil, err
		}
		as, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("interp: AppendString operand is %T", a)
		}
		bs, ok := b.(string)
		if !ok {
			return nil, fmt.Errorf("interp: AppendString operand is %T", b)
		}
		return as + bs, nil
	case irx.OpTestBit:
		return nil, fmt.Errorf("interp: TestBit not supported")
	case irx.OpReadBytes:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		n, err := kidSize(en, e, 1)
		if err != nil {
			return nil, err
		}
		data, next, err := c.readBytes(int(n))
		if err != nil {
			return nil, err
		}
		return &Pair{A: data, B: next}, nil
	case irx.OpPeekByte:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		off, err := kidSize(en, e, 1)
		if err != nil {
			return nil, err
		}
		return c.peekByte(int(off))
	case irx.OpWriteByte, irx.OpPokeByte:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kidByte(en, e, 1)
		if err != nil {
			return nil, err
		}
		return c.writeByte(b), nil
	case irx.OpWriteBytes:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		data, err := kidBytes(en, e, 1)
		if err != nil {
			return nil, err
		}
		return c.writeBytes(data), nil
	case irx.OpDataPtrAdd:
		c, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		n, err := kidSize(en, e, 1)
		if err != nil {
			return nil, err
		}
		return &Cursor{buf: c.buf, pos: c.pos + int(n)}, nil
	case irx.OpDataPtrSub:
		a, err := kidCursor(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kidCursor(en, e, 1)
		if err != nil {
			return nil, err
		}
		return uint64(a.pos - b.pos), nil
	case irx.OpCoalesce:
		a, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		nb, ok := a.(*Null)
		if !ok {
			return nil, fmt.Errorf("interp: Coalesce first operand is %T", a)
		}
		if nb.IsNull {
			return kid(en, e, 1)
		}
		return nb.Value, nil
	case irx.OpPair:
		a, err := kid(en, e, 0)
		if err != nil {
			return nil, err
		}
		b, err := kid(en, e, 1)
		if err != nil {
			return nil, err
		}
		return &Pair{A: a, B: b}, nil
	case irx.OpMapPair:
		p, err := kidPair(en, e, 0)
		if err != nil {
			return nil, err
		}
		fn, err := kidClosure(en, e, 1)
		if err != nil {
			return nil, err
		}
		return callClosure(fn, []any{p.A, p.B})

	case irx.OpSetBit, irx.OpBlitByte:
		return nil, fmt.Errorf("interp: %v not supported", e.Op)

	case irx.OpChoose:
		cond, err := kidBool(en, e, 0)
		if err != nil {
			return nil, err
		}
		if cond {
			return eval(en, e.Kids[1])
		}
		return eval(en, e.Kids[2])
	case irx.OpLoopWhile:
		cond, err := kidClosure(en, e, 0)
		if err != nil {
			return nil, err
		}
		body, err := kidClosure(en, e, 1)
		if err != nil {
			return nil, err
		}
		acc, err := kid(en, e, 2)
		if err != nil {
			return nil, err
		}
		for {
			c, err := callClosure(cond, []any{acc})
			if err != nil {
				return nil, err
			}
			cb, ok := c.(bool)
			if !ok {
				return nil, fmt.Errorf("interp: LoopWhile condition is %T", c)
			}
			if !cb {
				return acc, nil
			}
			if acc, err = callClosure(body, []any{acc}); err != nil {
				return nil, err
			}
		}
	case irx.OpLoopUntil:
		body, err := kidClosure(en, e, 0)
		if err != nil {
			return nil, err
		}
		cond, err := kidClosure(en, e, 1)
		if err != nil {
			return nil, err
		}
		acc, err := kid(en, e, 2)
		if err != nil {
			return nil, err
		}
		for {
			if acc, err = callClosure(body, []any{acc}); err != nil {
				return nil, err
			}
			c, err := callClosure(cond, []any{acc})
			if err != nil {
				return nil, err
			}
			cb, ok := c.(bool)
			if !ok {
				return nil, fmt.Errorf("interp: LoopUntil condition is %T", c)
			}
			if cb {
				return acc, nil
			}
		}
	case irx.OpReadWhile:
		cond, err := kidClosure(en, e, 0)
		if err != nil {
			return nil, err
		}
		reduce, err := kidClosure(en, e, 1)
		if err != nil {
			return nil, err
		}
		acc, err := kid(en, e, 2)
		if err != nil {
			return nil, err
		}
		c, err := kidCursor(en, e, 3)
		if err != nil {
			return nil, err
		}
		for c.pos < len(*c.buf) {
			b := (*c.buf)[c.pos]
			ok, err := callClosure(cond, []any{b})
			if err != nil {
				return nil, err
			}
			okb, isBool := ok.(bool)
			if !isBool {
				return nil, fmt.Errorf("interp: ReadWhile condition is %T", ok)
			}
			if !okb {
				break
			}
			if acc, err = callClosure(reduce, []any{acc, b}); err != nil {
				return nil, err
			}
			c = &Cursor{buf: c.buf, pos: c.pos + 1}
		}
		return &Pair{A: acc, B: c}, nil
	case irx.OpRepeat:
		from, err := kidBigInt(en, e, 0)
		if err != nil {
			return nil, err
		}
		to, err := kidBigInt(en, e, 1)
		if err != nil {
			return nil, err
		}
		body, err := kidClosure(en, e, 2)
		if err != nil {
			return nil, err
		}
		acc, err := kid(en, e, 3)
		if err != nil {
			return nil, err
		}
		for i := from.Int64(); i < to.Int64(); i++ {
			if acc, err = callClosure(body, []any{acc, big.NewInt(i)}); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}

	return nil, fmt.Errorf("interp: unhandled Op %v", e.Op)
}

func kidBool(en *env, e *irx.Expr, i int) (bool, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("interp: expected Bit, got %T", v)
	}
	return b, nil
}

func kidByte(en *env, e *irx.Expr, i int) (byte, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return 0, err
	}
	b, ok := v.(byte)
	if !ok {
		return 0, fmt.Errorf("interp: expected Byte, got %T", v)
	}
	return b, nil
}

func kidSize(en *env, e *irx.Expr, i int) (uint64, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return 0, err
	}
	n, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("interp: expected Size, got %T", v)
	}
	return n, nil
}

func kidBytes(en *env, e *irx.Expr, i int) ([]byte, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("interp: expected Bytes, got %T", v)
	}
	return b, nil
}

func kidCursor(en *env, e *irx.Expr, i int) (*Cursor, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return nil, err
	}
	c, ok := v.(*Cursor)
	if !ok {
		return nil, fmt.Errorf("interp: expected DataPtr, got %T", v)
	}
	return c, nil
}

func kidPair(en *env, e *irx.Expr, i int) (*Pair, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return nil, err
	}
	p, ok := v.(*Pair)
	if !ok {
		return nil, fmt.Errorf("interp: expected Pair, got %T", v)
	}
	return p, nil
}

func kidClosure(en *env, e *irx.Expr, i int) (*closure, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return nil, err
	}
	c, ok := v.(*closure)
	if !ok {
		return nil, fmt.Errorf("interp: expected Function, got %T", v)
	}
	return c, nil
}

func kidBigInt(en *env, e *irx.Expr, i int) (*big.Int, error) {
	v, err := kid(en, e, i)
	if err != nil {
		return nil, err
	}
	return asNumeric(v)
}

// asNumeric widens any of the representations a numeric Cast can
// produce into a big.Int, so arithmetic and comparisons don't need a
// case per host width.
func asNumeric(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		return x, nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case byte:
		return new(big.Int).SetUint64(uint64(x)), nil
	case rune:
		return big.NewInt(int64(x)), nil
	default:
		return nil, fmt.Errorf("interp: expected a numeric value, got %T", v)
	}
}

// castValue implements the irx.legalCast table at the value level: one
// case per Kind a Cast can target, mirroring which Go representation
// that Kind uses elsewhere in this file.
func castValue(to *irx.Type, v any) (any, error) {
	switch to.Kind {
	case irx.SizeKind:
		n, err := asNumeric(v)
		if err != nil {
			return nil, err
		}
		return n.Uint64(), nil
	case irx.ByteKind:
		n, err := asNumeric(v)
		if err != nil {
			return nil, err
		}
		return byte(n.Uint64()), nil
	case irx.BitKind:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("interp: Cast to Bit from %T", v)
		}
		return b, nil
	case irx.BytesKind:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("interp: Cast to Bytes from %T", v)
		}
		return []byte(s), nil
	case irx.ValueKind:
		if to.MN == nil || to.MN.Type.Kind != schema.ScalarValue {
			return nil, fmt.Errorf("interp: Cast to non-scalar Value unsupported")
		}
		switch to.MN.Type.Scalar {
		case schema.Bool:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("interp: Cast to Value(bool) from %T", v)
			}
			return b, nil
		case schema.String:
			b, ok := v.([]byte)
			if !ok {
				return nil, fmt.Errorf("interp: Cast to Value(string) from %T", v)
			}
			return string(b), nil
		case schema.Char:
			n, err := asNumeric(v)
			if err != nil {
				return nil, err
			}
			return rune(n.Int64()), nil
		default:
			return asNumeric(v)
		}
	}
	return nil, fmt.Errorf("interp: Cast to %s unsupported", to)
}

func parseScalar(k schema.ScalarKind, s string) (any, error) {
	switch k {
	case schema.Bool:
		return s == "true", nil
	case schema.Char:
		r := []rune(s)
		if len(r) == 0 {
			return nil, fmt.Errorf("interp: empty char literal")
		}
		return r[0], nil
	case schema.Float:
		return strconv.ParseFloat(s, 64)
	case schema.String:
		return s, nil
	default:
		n := new(big.Int)
		if _, ok := n.SetString(s, 10); !ok {
			return nil, fmt.Errorf("interp: bad %s literal %q", k, s)
		}
		return n, nil
	}
}

func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	case rune:
		return string(x), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case string:
		return x, nil
	case *big.Int:
		return x.Text(10), nil
	default:
		return "", fmt.Errorf("interp: ToString unsupported operand %T", v)
	}
}

func compareValues(op irx.Op, a, b any) (any, error) {
	switch op {
	case irx.OpEq:
		return valuesEqual(a, b), nil
	case irx.OpNe:
		return !valuesEqual(a, b), nil
	}
	an, aErr := asNumeric(a)
	bn, bErr := asNumeric(b)
	if aErr != nil || bErr != nil {
		return nil, fmt.Errorf("interp: %v requires numeric operands, got %T and %T", op, a, b)
	}
	c := an.Cmp(bn)
	switch op {
	case irx.OpGt:
		return c > 0, nil
	case irx.OpGe:
		return c >= 0, nil
	}
	return nil, fmt.Errorf("interp: unsupported comparison op %v", op)
}

func valuesEqual(a, b any) bool {
	an, aErr := asNumeric(a)
	bn, bErr := asNumeric(b)
	if aErr == nil && bErr == nil {
		return an.Cmp(bn) == 0
	}
	return a == b
}

func arith(op irx.Op, a, b any) (any, error) {
	switch x := a.(type) {
	case uint64:
		y, ok := b.(uint64)
		if !ok {
			return nil, fmt.Errorf("interp: %v operand types differ (%T, %T)", op, a, b)
		}
		switch op {
		case irx.OpAdd:
			return x + y, nil
		case irx.OpSub:
			return x - y, nil
		case irx.OpMul:
			return x * y, nil
		case irx.OpDiv:
			return x / y, nil
		case irx.OpRem:
			return x % y, nil
		}
	case *big.Int:
		y, ok := b.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("interp: %v operand types differ (%T, %T)", op, a, b)
		}
		z := new(big.Int)
		switch op {
		case irx.OpAdd:
			return z.Add(x, y), nil
		case irx.OpSub:
			return z.Sub(x, y), nil
		case irx.OpMul:
			return z.Mul(x, y), nil
		case irx.OpDiv:
			return z.Quo(x, y), nil
		case irx.OpRem:
			return z.Rem(x, y), nil
		}
	}
	return nil, fmt.Errorf("interp: %v unsupported operand type %T", op, a)
}

func logicOp(op irx.Op, a, b any) (any, error) {
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if !aok || !bok {
		return nil, fmt.Errorf("interp: %v unsupported operand types (%T, %T)", op, a, b)
	}
	switch op {
	case irx.OpLogAnd:
		return ab && bb, nil
	case irx.OpLogOr:
		return ab || bb, nil
	case irx.OpLogXor:
		return ab != bb, nil
	}
	return nil, fmt.Errorf("interp: unreachable logic op %v", op)
}
