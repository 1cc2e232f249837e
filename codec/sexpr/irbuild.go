package sexpr

import (
	"strconv"

	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// Small IR-construction helpers shared by Deserializer and Serializer.
// None of these carry codec state; they just spell out common shapes
// (a one-byte literal, a one-argument lambda, an n-ary LogAnd) so the
// per-method bodies below read close to the wire-format prose in
// spec §6 instead of drowning in irx.Function/irx.Param boilerplate.

var stringMN = schema.NotNullable(schema.NewScalar(schema.String))

func sizeLit(n int) *irx.Expr {
	return irx.Cast(irx.SizeT(), irx.Int(schema.U64, strconv.Itoa(n)))
}

func byteLit(b byte) *irx.Expr {
	return irx.Cast(irx.ByteT(), irx.Int(schema.U8, strconv.Itoa(int(b))))
}

// bitLit bridges a Go bool into the IR's Bit type via the bit↔bool
// pair of irx's legal-cast table.
func bitLit(v bool) *irx.Expr {
	return irx.Cast(irx.BitT(), irx.Bool(v))
}

func fn1(argT *irx.Type, body func(a *irx.Expr) *irx.Expr) *irx.Expr {
	fid := irx.NextFid()
	return irx.Function(fid, []*irx.Type{argT}, body(irx.Param(fid, 0)))
}

func fn2(a, b *irx.Type, body func(x, y *irx.Expr) *irx.Expr) *irx.Expr {
	fid := irx.NextFid()
	return irx.Function(fid, []*irx.Type{a, b}, body(irx.Param(fid, 0), irx.Param(fid, 1)))
}

func andAll(conds ...*irx.Expr) *irx.Expr {
	acc := conds[0]
	for _, c := range conds[1:] {
		acc = irx.LogAnd(acc, c)
	}
	return acc
}

func orAll(conds ...*irx.Expr) *irx.Expr {
	acc := conds[0]
	for _, c := range conds[1:] {
		acc = irx.LogOr(acc, c)
	}
	return acc
}

// decodeToken scans ptr for the longest run of bytes that are none of
// ' ', '(', ')' — the unquoted scalar spelling every non-string,
// non-char, non-bool value uses — and returns Pair(Value(string),
// DataPtr) without consuming the delimiter.
func decodeToken(ptr *irx.Expr) *irx.Expr {
	notDelim := fn1(irx.ByteT(), func(b *irx.Expr) *irx.Expr {
		return andAll(irx.Ne(b, byteLit(' ')), irx.Ne(b, byteLit('(')), irx.Ne(b, byteLit(')')))
	})
	reduce := fn2(irx.SizeT(), irx.ByteT(), func(acc, _ *irx.Expr) *irx.Expr {
		return irx.Add(acc, sizeLit(1))
	})
	scan := irx.ReadWhile(notDelim, reduce, sizeLit(0), ptr)
	return irx.Let("dsxTokScan", scan,
		irx.MkPair(
			irx.Cast(irx.Value(stringMN),
				irx.Fst(irx.ReadBytes(ptr, irx.Fst(irx.Identifier("dsxTokScan"))))),
			irx.Snd(irx.Identifier("dsxTokScan"))))
}
