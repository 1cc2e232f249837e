package sexpr

import (
	"fmt"
	"strconv"

	"github.com/rixed/dessser/codec"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// Deserializer and Serializer implement codec.Deserializer/codec.Serializer
// against the textual grammar spec §6 calls "S-expression encoding": a
// parenthesised, space-separated tree with double-quoted strings/chars,
// single-byte T/F booleans, a four-byte null literal, and an optional
// decimal length prefix on lists. Both types carry nothing but their
// settings — the format needs no per-run state, so State is always nil.
type Deserializer struct{ opts settings }

type Serializer struct{ opts settings }

func NewDeserializer(opts ...Option) *Deserializer { return &Deserializer{opts: apply(opts)} }

func NewSerializer(opts ...Option) *Serializer { return &Serializer{opts: apply(opts)} }

func (d *Deserializer) Start(root *schema.MaybeNullable, ptr codec.Ptr) (codec.State, codec.Ptr, error) {
	return nil, ptr, nil
}

func (d *Deserializer) Stop(st codec.State, ptr codec.Ptr) (codec.Ptr, error) { return ptr, nil }

func (s *Serializer) Start(root *schema.MaybeNullable, ptr codec.Ptr) (codec.State, codec.Ptr, error) {
	return nil, ptr, nil
}

func (s *Serializer) Stop(st codec.State, ptr codec.Ptr) (codec.Ptr, error) { return ptr, nil }

// --- scalars ---

// decodeBool reads the single T/F byte the format uses for bool (§6);
// every other scalar goes through decodeToken or decodeQuoted below.
func decodeBool(ptr *irx.Expr) *irx.Expr {
	return irx.Let("dsxBoolByte", irx.ReadByte(ptr),
		irx.MkPair(
			irx.Choose(irx.Eq(irx.Fst(irx.Identifier("dsxBoolByte")), byteLit(trueByte)), irx.Bool(true), irx.Bool(false)),
			irx.Snd(irx.Identifier("dsxBoolByte"))))
}

// decodeQuoted scans a double-quoted span (char and string, §6: "Strings
// and chars are double-quoted"). Escaping is unspecified by §6, so the
// content between the quotes is taken verbatim.
func decodeQuoted(ptr *irx.Expr) *irx.Expr {
	notQuote := fn1(irx.ByteT(), func(b *irx.Expr) *irx.Expr {
		return irx.Ne(b, byteLit('"'))
	})
	reduce := fn2(irx.SizeT(), irx.ByteT(), func(acc, _ *irx.Expr) *irx.Expr {
		return irx.Add(acc, sizeLit(1))
	})
	afterOpen := irx.Snd(irx.ReadByte(ptr))
	return irx.Let("dsxQOpen", afterOpen,
		irx.Let("dsxQScan", irx.ReadWhile(notQuote, reduce, sizeLit(0), irx.Identifier("dsxQOpen")),
			irx.Let("dsxQBody", irx.ReadBytes(irx.Identifier("dsxQOpen"), irx.Fst(irx.Identifier("dsxQScan"))),
				irx.MkPair(
					irx.Cast(irx.Value(stringMN), irx.Fst(irx.Identifier("dsxQBody"))),
					irx.Snd(irx.ReadByte(irx.Snd(irx.Identifier("dsxQBody"))))))))
}

// viaToken turns a Pair(Value(string), DataPtr) token (whichever of
// decodeToken/decodeQuoted produced it) into Pair(Value(k), DataPtr) by
// handing its text to OfString; the backend supplies the actual
// per-scalar parsing (spec §4.2's OfString is deliberately generic over
// ScalarKind).
func viaToken(k schema.ScalarKind, tok *irx.Expr) *irx.Expr {
	return irx.Let("dsxTok", tok,
		irx.MkPair(irx.OfString(k, irx.Fst(irx.Identifier("dsxTok"))), irx.Snd(irx.Identifier("dsxTok"))))
}

func (d *Deserializer) DScalar(st codec.State, k schema.ScalarKind, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (*irx.Expr, error) {
	switch k {
	case schema.Bool:
		return decodeBool(ptr), nil
	case schema.Char, schema.String:
		return viaToken(k, decodeQuoted(ptr)), nil
	default:
		return viaToken(k, decodeToken(ptr)), nil
	}
}

func writeQuoted(ptr, s *irx.Expr) *irx.Expr {
	return irx.Let("dsxWQOpen", irx.WriteByte(ptr, byteLit('"')),
		irx.Let("dsxWQBody", irx.WriteBytes(irx.Identifier("dsxWQOpen"), irx.Cast(irx.BytesT(), s)),
			irx.WriteByte(irx.Identifier("dsxWQBody"), byteLit('"'))))
}

func (s *Serializer) SScalar(st codec.State, k schema.ScalarKind, root *schema.MaybeNullable, path schema.Path, value, ptr codec.Ptr) (codec.Ptr, error) {
	switch k {
	case schema.Bool:
		return irx.Choose(irx.Cast(irx.BitT(), value), irx.WriteByte(ptr, byteLit(trueByte)), irx.WriteByte(ptr, byteLit(falseByte))), nil
	case schema.Char, schema.String:
		return writeQuoted(ptr, irx.ToStringExpr(value)), nil
	default:
		return irx.WriteBytes(ptr, irx.Cast(irx.BytesT(), irx.ToStringExpr(value))), nil
	}
}

// --- nullability ---

// isNullProbe implements §6's is-null rule literally: peek the four
// bytes "null" and require the byte past them to be either absent,
// space, or ')'.
func isNullProbe(ptr *irx.Expr) *irx.Expr {
	lit := andAll(
		irx.Eq(irx.PeekByte(ptr, sizeLit(0)), byteLit('n')),
		irx.Eq(irx.PeekByte(ptr, sizeLit(1)), byteLit('u')),
		irx.Eq(irx.PeekByte(ptr, sizeLit(2)), byteLit('l')),
		irx.Eq(irx.PeekByte(ptr, sizeLit(3)), byteLit('l')),
	)
	boundary := irx.Choose(irx.Ge(irx.RemSize(ptr), sizeLit(5)),
		orAll(irx.Eq(irx.PeekByte(ptr, sizeLit(4)), byteLit(' ')), irx.Eq(irx.PeekByte(ptr, sizeLit(4)), byteLit(')'))),
		bitLit(true))
	return irx.LogAnd(lit, boundary)
}

func (d *Deserializer) IsNull(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (*irx.Expr, error) {
	return isNullProbe(ptr), nil
}

func (d *Deserializer) DNull(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return irx.DataPtrAdd(ptr, sizeLit(len(nullLiteral))), nil
}

func (d *Deserializer) DNotNull(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return ptr, nil
}

// Nullable is the unconditional framing hook the driver's ordering rule
// (spec §4.4) requires before the null/not-null Choose; the
// S-expression format has no marker distinct from the four-byte "null"
// literal itself, so there is nothing to write here.
func (s *Serializer) Nullable(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return ptr, nil
}

func (s *Serializer) SNull(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return irx.WriteBytes(ptr, irx.Cast(irx.BytesT(), irx.Str(nullLiteral))), nil
}

func (s *Serializer) SNotNull(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return ptr, nil
}

// --- tuple / record / vector framing ---

func openParen(ptr *irx.Expr) *irx.Expr  { return irx.WriteByte(ptr, byteLit('(')) }
func closeParen(ptr *irx.Expr) *irx.Expr { return irx.WriteByte(ptr, byteLit(')')) }
func spaceSep(ptr *irx.Expr) *irx.Expr   { return irx.WriteByte(ptr, byteLit(' ')) }

func consumeOpenParen(ptr *irx.Expr) *irx.Expr  { return irx.Snd(irx.ReadByte(ptr)) }
func consumeCloseParen(ptr *irx.Expr) *irx.Expr { return irx.Snd(irx.ReadByte(ptr)) }
func consumeSpaceSep(ptr *irx.Expr) *irx.Expr   { return irx.Snd(irx.ReadByte(ptr)) }

func (d *Deserializer) TupOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeOpenParen(ptr), nil
}
func (d *Deserializer) TupSep(st codec.State, idx int, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeSpaceSep(ptr), nil
}
func (d *Deserializer) TupCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeCloseParen(ptr), nil
}

func (s *Serializer) TupOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return openParen(ptr), nil
}
func (s *Serializer) TupSep(st codec.State, idx int, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return spaceSep(ptr), nil
}
func (s *Serializer) TupCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return closeParen(ptr), nil
}

// Records use the same parenthesised, space-separated framing as
// tuples (spec §4.4: "Record behaves identically, keyed by field
// name") — the field name is schema-level only, never written to the
// wire.

func (d *Deserializer) RecOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeOpenParen(ptr), nil
}
func (d *Deserializer) RecSep(st codec.State, idx int, fieldName string, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeSpaceSep(ptr), nil
}
func (d *Deserializer) RecCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeCloseParen(ptr), nil
}

func (s *Serializer) RecOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return openParen(ptr), nil
}
func (s *Serializer) RecSep(st codec.State, idx int, fieldName string, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return spaceSep(ptr), nil
}
func (s *Serializer) RecCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return closeParen(ptr), nil
}

func (d *Deserializer) VecOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeOpenParen(ptr), nil
}
func (d *Deserializer) VecSep(st codec.State, idx int, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeSpaceSep(ptr), nil
}
func (d *Deserializer) VecCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeCloseParen(ptr), nil
}

func (s *Serializer) VecOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return openParen(ptr), nil
}
func (s *Serializer) VecSep(st codec.State, idx int, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return spaceSep(ptr), nil
}
func (s *Serializer) VecCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return closeParen(ptr), nil
}

// --- lists ---

// ListOpn consumes, when list_prefix_length is enabled, the decimal
// count and its separator space ahead of the elements themselves —
// "<count> (<elem> ...)", per §6 — before the '(' that opens the
// element list; with it disabled there is no count, just '('. See
// codec.ListOpener's doc comment for why the framing is fully
// consumed here rather than deferred to a closure.
func (d *Deserializer) ListOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.ListOpener, codec.Ptr, error) {
	if !d.opts.listPrefixLength {
		return codec.ListOpener{
			Kind: codec.UnknownSize,
			EndOfList: func(root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (*irx.Expr, error) {
				return irx.Eq(irx.PeekByte(ptr, sizeLit(0)), byteLit(')')), nil
			},
		}, consumeOpenParen(ptr), nil
	}
	raw := decodeToken(ptr)
	count := irx.OfString(schema.I32, irx.Fst(raw))
	afterSep := consumeSpaceSep(irx.Snd(raw))
	afterParen := consumeOpenParen(afterSep)
	return codec.ListOpener{Kind: codec.KnownSize, Count: count}, afterParen, nil
}

func (d *Deserializer) ListSep(st codec.State, isFirst *irx.Expr, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return irx.Choose(isFirst, ptr, consumeSpaceSep(ptr)), nil
}

func (d *Deserializer) ListCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return consumeCloseParen(ptr), nil
}

func (s *Serializer) ListOpn(st codec.State, root *schema.MaybeNullable, path schema.Path, count codec.Count, ptr codec.Ptr) (codec.Ptr, error) {
	if !s.opts.listPrefixLength {
		return openParen(ptr), nil
	}
	if !count.Known {
		return nil, fmt.Errorf("sexpr: list_prefix_length requires a known element count at %s", path)
	}
	withCount := irx.WriteBytes(ptr, irx.Cast(irx.BytesT(), irx.ToStringExpr(count.N)))
	return openParen(spaceSep(withCount)), nil
}

func (s *Serializer) ListSep(st codec.State, isFirst *irx.Expr, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return irx.Choose(isFirst, ptr, spaceSep(ptr)), nil
}

func (s *Serializer) ListCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return closeParen(ptr), nil
}

// --- sums ---

// SumOpn/SumCls exist only to satisfy the Serializer contract (spec
// §4.3, §6): "(label value)" where label is a U16. codec.Serializer's
// doc comment explains why the driver never reaches these.
func (s *Serializer) SumOpn(st codec.State, label uint16, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	opened := openParen(ptr)
	labelExpr := irx.Int(schema.U16, strconv.Itoa(int(label)))
	withLabel := irx.WriteBytes(opened, irx.Cast(irx.BytesT(), irx.ToStringExpr(labelExpr)))
	return spaceSep(withLabel), nil
}

func (s *Serializer) SumCls(st codec.State, root *schema.MaybeNullable, path schema.Path, ptr codec.Ptr) (codec.Ptr, error) {
	return closeParen(ptr), nil
}

// --- static size hints ---

// scalarSsizeHint is a generous textual-width approximation, not an
// exact count: the format's variable-length scalars (everything but
// bool) cannot be sized exactly without the value itself, and Ssize's
// signature (spec §4.3) gives this hook no access to one. A backend
// that needs an exact figure recomputes it from the materialised value
// via sersize (§4.5) instead of trusting this hint.
func scalarSsizeHint(k schema.ScalarKind) uint64 {
	switch k {
	case schema.Bool:
		return 1
	case schema.Char:
		return 3
	case schema.String:
		return 18
	default:
		return 42
	}
}

func (d *Deserializer) Ssize(st codec.State, root *schema.MaybeNullable, path schema.Path) codec.Ssize {
	return ssizeOf(root, path)
}

func (s *Serializer) Ssize(st codec.State, root *schema.MaybeNullable, path schema.Path) codec.Ssize {
	return ssizeOf(root, path)
}

func ssizeOf(root *schema.MaybeNullable, path schema.Path) codec.Ssize {
	mn, err := schema.Navigate(root, path)
	if err != nil {
		return codec.Const(0)
	}
	total := codec.Const(2) // opening + closing paren, or quotes; refined below
	vt := mn.Type
	for vt.Kind == schema.UserValue {
		vt = vt.User.Def
	}
	switch vt.Kind {
	case schema.ScalarValue:
		return codec.Const(scalarSsizeHint(vt.Scalar))
	case schema.TupValue:
		s := codec.Const(uint64(len(vt.Tup) + 1))
		for _, child := range vt.Tup {
			s = s.Add(ssizeOf(child, nil))
		}
		return s
	case schema.RecValue:
		s := codec.Const(uint64(len(vt.Rec) + 1))
		for _, f := range vt.Rec {
			s = s.Add(ssizeOf(f.Type, nil))
		}
		return s
	case schema.VecValue:
		elem := ssizeOf(vt.Elem, nil)
		if elem.Kind == codec.ConstSize {
			return codec.Const(uint64(vt.VecDim)*elem.Bytes + uint64(vt.VecDim+1))
		}
		return total
	case schema.ListValue:
		return codec.Const(64)
	default:
		return total
	}
}
