// Package driver implements the generic, schema-directed des-ser
// recursion spec §4.4 describes: given any codec.Deserializer and
// codec.Serializer pair, Desser walks a schema term once and threads
// both pointers through in lock-step. It knows nothing about any
// particular wire format — that is entirely the codec's job — mirroring
// how package mergeop dispatches on an Op's Name without
// knowing what any individual operator actually does to the document
// (mergeop/op.go).
package driver

import (
	"fmt"
	"log/slog"

	"github.com/rixed/dessser/codec"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// Desser runs D and S over root in lock-step and returns an IR
// expression of type Pair(srcPtrType, dstPtrType) — src' and dst' in
// spec §4.4's desser(root_mn, src, dst). Logs at debug level directly
// against slog.Default, the way cmd/convert-image logs its own
// top-level steps, since Desser has no long-lived object of its own to
// carry a *slog.Logger field on.
func Desser(D codec.Deserializer, S codec.Serializer, root *schema.MaybeNullable, src, dst codec.Ptr) (*irx.Expr, error) {
	slog.Debug("desser: starting recursion", "root", root.String())
	ds, src2, err := D.Start(root, src)
	if err != nil {
		slog.Error("desser: deserializer Start failed", "error", err)
		return nil, err
	}
	ss, dst2, err := S.Start(root, dst)
	if err != nil {
		slog.Error("desser: serializer Start failed", "error", err)
		return nil, err
	}
	body, err := walk(D, S, ds, ss, root, nil, src2, dst2)
	if err != nil {
		slog.Error("desser: walk failed", "error", err)
		return nil, err
	}
	slog.Debug("desser: recursion complete")
	return irx.Let("dsxDesserBody", body,
		irx.MkPair(
			letStop(D, ds, irx.Fst(irx.Identifier("dsxDesserBody"))),
			letStopSer(S, ss, irx.Snd(irx.Identifier("dsxDesserBody"))))), nil
}

func letStop(D codec.Deserializer, ds codec.State, ptr *irx.Expr) *irx.Expr {
	stopped, err := D.Stop(ds, ptr)
	if err != nil {
		// Stop on a well-formed codec never fails once Start/walk
		// succeeded; codecs that can fail here should do so through
		// the ptr expression itself (out of scope for this reference
		// driver).
		panic(err)
	}
	return stopped
}

func letStopSer(S codec.Serializer, ss codec.State, ptr *irx.Expr) *irx.Expr {
	stopped, err := S.Stop(ss, ptr)
	if err != nil {
		panic(err)
	}
	return stopped
}

// childPath appends idx to path without aliasing its backing array —
// every recursive walk call needs its own slice since siblings build
// theirs concurrently (well, sequentially, but each keeps a reference).
func childPath(path schema.Path, idx int) schema.Path {
	p := make(schema.Path, len(path)+1)
	copy(p, path)
	p[len(path)] = idx
	return p
}

func walk(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path schema.Path, src, dst codec.Ptr) (*irx.Expr, error) {
	mn, err := schema.Navigate(root, path)
	if err != nil {
		return nil, err
	}
	if mn.Nullable {
		return walkNullable(D, S, ds, ss, mn, root, path, src, dst)
	}
	return dispatch(D, S, ds, ss, mn.Type, root, path, src, dst)
}

func dispatch(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, vt *schema.ValueType, root *schema.MaybeNullable, path schema.Path, src, dst codec.Ptr) (*irx.Expr, error) {
	for vt.Kind == schema.UserValue {
		vt = vt.User.Def
	}
	switch vt.Kind {
	case schema.ScalarValue:
		return walkScalar(D, S, ds, ss, vt.Scalar, root, path, src, dst)
	case schema.TupValue:
		return walkTup(D, S, ds, ss, root, path, vt.Tup, src, dst)
	case schema.RecValue:
		return walkRec(D, S, ds, ss, root, path, vt.Rec, src, dst)
	case schema.VecValue:
		return walkVec(D, S, ds, ss, root, path, vt.VecDim, src, dst)
	case schema.ListValue:
		return walkList(D, S, ds, ss, root, path, src, dst)
	case schema.MapValue:
		return nil, fmt.Errorf("driver: cannot walk into a map at %s", path)
	default:
		return nil, fmt.Errorf("driver: unsupported value kind at %s", path)
	}
}

// walkNullable implements spec §4.4's ordering rule: S.Nullable is
// emitted unconditionally, before the Choose decides which of
// DNull/SNull or DNotNull/SNotNull+value runs, so both branches see the
// same number of framing calls regardless of which one a stateful
// codec actually takes.
func walkNullable(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, mn *schema.MaybeNullable, root *schema.MaybeNullable, path schema.Path, src, dst codec.Ptr) (*irx.Expr, error) {
	cond, err := D.IsNull(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	dst, err = S.Nullable(ss, root, path, dst)
	if err != nil {
		return nil, err
	}

	srcNull, err := D.DNull(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	dstNull, err := S.SNull(ss, root, path, dst)
	if err != nil {
		return nil, err
	}
	nullBranch := irx.MkPair(srcNull, dstNull)

	srcNotNull, err := D.DNotNull(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	dstNotNull, err := S.SNotNull(ss, root, path, dst)
	if err != nil {
		return nil, err
	}
	valueBranch, err := dispatch(D, S, ds, ss, mn.Type, root, path, srcNotNull, dstNotNull)
	if err != nil {
		return nil, err
	}

	return irx.Choose(cond, nullBranch, valueBranch), nil
}

func walkScalar(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, k schema.ScalarKind, root *schema.MaybeNullable, path schema.Path, src, dst codec.Ptr) (*irx.Expr, error) {
	dRes, err := D.DScalar(ds, k, root, path, src)
	if err != nil {
		return nil, err
	}
	sRes, err := S.SScalar(ss, k, root, path, irx.Fst(irx.Identifier("dsxScalar")), dst)
	if err != nil {
		return nil, err
	}
	return irx.Let("dsxScalar", dRes, irx.MkPair(irx.Snd(irx.Identifier("dsxScalar")), sRes)), nil
}

// step is one link of a sequence: given the current (src, dst) pair it
// returns the next one. sequence threads a chain of steps through
// nested Lets so each step's builder can Fst/Snd the previous result
// without the caller needing the materialised pointers up front —
// every compound (tuple, record, vector, list) is built from one.
type step func(src, dst *irx.Expr) (*irx.Expr, error)

func sequence(init *irx.Expr, steps []step) (*irx.Expr, error) {
	cur := init
	for i, st := range steps {
		name := fmt.Sprintf("dsxSeq%d", i)
		next, err := st(irx.Fst(irx.Identifier(name)), irx.Snd(irx.Identifier(name)))
		if err != nil {
			return nil, err
		}
		cur = irx.Let(name, cur, next)
	}
	return cur, nil
}

func walkTup(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path schema.Path, children []*schema.MaybeNullable, src, dst codec.Ptr) (*irx.Expr, error) {
	srcOpn, err := D.TupOpn(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	dstOpn, err := S.TupOpn(ss, root, path, dst)
	if err != nil {
		return nil, err
	}
	steps := make([]step, 0, len(children)+1)
	for i := range children {
		i := i
		steps = append(steps, func(s, d *irx.Expr) (*irx.Expr, error) {
			if i > 0 {
				var err error
				s, err = D.TupSep(ds, i, root, path, s)
				if err != nil {
					return nil, err
				}
				d, err = S.TupSep(ss, i, root, path, d)
				if err != nil {
					return nil, err
				}
			}
			return walk(D, S, ds, ss, root, childPath(path, i), s, d)
		})
	}
	steps = append(steps, func(s, d *irx.Expr) (*irx.Expr, error) {
		s2, err := D.TupCls(ds, root, path, s)
		if err != nil {
			return nil, err
		}
		d2, err := S.TupCls(ss, root, path, d)
		if err != nil {
			return nil, err
		}
		return irx.MkPair(s2, d2), nil
	})
	return sequence(irx.MkPair(srcOpn, dstOpn), steps)
}

// walkRec is walkTup with record framing and field names carried
// through for the codec's benefit; the driver itself never inspects a
// field name (spec §4.4: "Record behaves identically, keyed by field
// name" — the keying is the schema's, not the wire format's).
func walkRec(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path schema.Path, fields []schema.RecField, src, dst codec.Ptr) (*irx.Expr, error) {
	srcOpn, err := D.RecOpn(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	dstOpn, err := S.RecOpn(ss, root, path, dst)
	if err != nil {
		return nil, err
	}
	steps := make([]step, 0, len(fields)+1)
	for i, f := range fields {
		i, name := i, f.Name
		steps = append(steps, func(s, d *irx.Expr) (*irx.Expr, error) {
			if i > 0 {
				var err error
				s, err = D.RecSep(ds, i, name, root, path, s)
				if err != nil {
					return nil, err
				}
				d, err = S.RecSep(ss, i, name, root, path, d)
				if err != nil {
					return nil, err
				}
			}
			return walk(D, S, ds, ss, root, childPath(path, i), s, d)
		})
	}
	steps = append(steps, func(s, d *irx.Expr) (*irx.Expr, error) {
		s2, err := D.RecCls(ds, root, path, s)
		if err != nil {
			return nil, err
		}
		d2, err := S.RecCls(ss, root, path, d)
		if err != nil {
			return nil, err
		}
		return irx.MkPair(s2, d2), nil
	})
	return sequence(irx.MkPair(srcOpn, dstOpn), steps)
}

// walkVec unrolls a Vec(dim, elem) into dim straight-line copies of
// the same recursion (spec §4.4). A Repeat-based loop is explicitly
// optional ("implementations MAY switch... when dim exceeds a
// backend-chosen threshold"); this driver always unrolls, which is
// simplest and satisfies the MUST-identical-semantics requirement on
// its own.
func walkVec(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path schema.Path, dim int, src, dst codec.Ptr) (*irx.Expr, error) {
	srcOpn, err := D.VecOpn(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	dstOpn, err := S.VecOpn(ss, root, path, dst)
	if err != nil {
		return nil, err
	}
	steps := make([]step, 0, dim+1)
	for i := 0; i < dim; i++ {
		i := i
		steps = append(steps, func(s, d *irx.Expr) (*irx.Expr, error) {
			if i > 0 {
				var err error
				s, err = D.VecSep(ds, i, root, path, s)
				if err != nil {
					return nil, err
				}
				d, err = S.VecSep(ss, i, root, path, d)
				if err != nil {
					return nil, err
				}
			}
			return walk(D, S, ds, ss, root, childPath(path, i), s, d)
		})
	}
	steps = append(steps, func(s, d *irx.Expr) (*irx.Expr, error) {
		s2, err := D.VecCls(ds, root, path, s)
		if err != nil {
			return nil, err
		}
		d2, err := S.VecCls(ss, root, path, d)
		if err != nil {
			return nil, err
		}
		return irx.MkPair(s2, d2), nil
	})
	return sequence(irx.MkPair(srcOpn, dstOpn), steps)
}

// walkList dispatches on the deserializer's list-opener shape (spec
// §4.4): KnownSize drives a Repeat over the decoded count; UnknownSize
// drives a LoopWhile carrying a first? flag alongside the (src, dst)
// pair, so the separator is suppressed exactly once, on entry.
func walkList(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path schema.Path, src, dst codec.Ptr) (*irx.Expr, error) {
	opener, srcAfterOpn, err := D.ListOpn(ds, root, path, src)
	if err != nil {
		return nil, err
	}
	elemPath := childPath(path, 0)

	if opener.Kind == codec.KnownSize {
		dstAfterOpn, err := S.ListOpn(ss, root, path, codec.KnownCount(opener.Count), dst)
		if err != nil {
			return nil, err
		}
		return walkKnownSizeList(D, S, ds, ss, root, path, elemPath, opener.Count, srcAfterOpn, dstAfterOpn)
	}

	dstAfterOpn, err := S.ListOpn(ss, root, path, codec.UnknownCount(), dst)
	if err != nil {
		return nil, err
	}
	return walkUnknownSizeList(D, S, ds, ss, root, path, elemPath, opener.EndOfList, srcAfterOpn, dstAfterOpn)
}

func walkKnownSizeList(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path, elemPath schema.Path, count *irx.Expr, src, dst codec.Ptr) (*irx.Expr, error) {
	ptrPairT := irx.PairT(irx.DataPtr(), irx.DataPtr())

	bodyFid := irx.NextFid()
	accParam := irx.Param(bodyFid, 0)
	idxParam := irx.Param(bodyFid, 1)
	isFirst := irx.Eq(idxParam, irx.Int(schema.I32, "0"))
	srcSep, err := D.ListSep(ds, isFirst, root, path, irx.Fst(accParam))
	if err != nil {
		return nil, err
	}
	dstSep, err := S.ListSep(ss, isFirst, root, path, irx.Snd(accParam))
	if err != nil {
		return nil, err
	}
	elem, err := walk(D, S, ds, ss, root, elemPath, srcSep, dstSep)
	if err != nil {
		return nil, err
	}
	bodyFn := irx.Function(bodyFid, []*irx.Type{ptrPairT, irx.Value(schema.NotNullable(schema.NewScalar(schema.I32)))}, elem)

	loop := irx.Repeat(irx.Int(schema.I32, "0"), count, bodyFn, irx.MkPair(src, dst))
	return sequence(loop, []step{func(s, d *irx.Expr) (*irx.Expr, error) {
		s2, err := D.ListCls(ds, root, path, s)
		if err != nil {
			return nil, err
		}
		d2, err := S.ListCls(ss, root, path, d)
		if err != nil {
			return nil, err
		}
		return irx.MkPair(s2, d2), nil
	}})
}

func walkUnknownSizeList(D codec.Deserializer, S codec.Serializer, ds, ss codec.State, root *schema.MaybeNullable, path, elemPath schema.Path, endOfList codec.EndOfListFn, src, dst codec.Ptr) (*irx.Expr, error) {
	stateT := irx.PairT(irx.BitT(), irx.PairT(irx.DataPtr(), irx.DataPtr()))

	firstOf := func(s *irx.Expr) *irx.Expr { return irx.Fst(s) }
	srcOf := func(s *irx.Expr) *irx.Expr { return irx.Fst(irx.Snd(s)) }
	dstOf := func(s *irx.Expr) *irx.Expr { return irx.Snd(irx.Snd(s)) }

	condFid := irx.NextFid()
	condParam := irx.Param(condFid, 0)
	eol, err := endOfList(root, path, srcOf(condParam))
	if err != nil {
		return nil, err
	}
	condFn := irx.Function(condFid, []*irx.Type{stateT}, irx.LogNot(eol))

	bodyFid := irx.NextFid()
	bodyParam := irx.Param(bodyFid, 0)
	isFirst := firstOf(bodyParam)
	srcSep, err := D.ListSep(ds, isFirst, root, path, srcOf(bodyParam))
	if err != nil {
		return nil, err
	}
	dstSep, err := S.ListSep(ss, isFirst, root, path, dstOf(bodyParam))
	if err != nil {
		return nil, err
	}
	elem, err := walk(D, S, ds, ss, root, elemPath, srcSep, dstSep)
	if err != nil {
		return nil, err
	}
	bodyExpr := irx.Let("dsxListElem", elem,
		irx.MkPair(boolFalseBit(), irx.Identifier("dsxListElem")))
	bodyFn := irx.Function(bodyFid, []*irx.Type{stateT}, bodyExpr)

	init := irx.MkPair(boolTrueBit(), irx.MkPair(src, dst))
	loop := irx.LoopWhile(condFn, bodyFn, init)

	loopResult := irx.Identifier("dsxListLoop")
	s2, err := D.ListCls(ds, root, path, srcOf(loopResult))
	if err != nil {
		return nil, err
	}
	d2, err := S.ListCls(ss, root, path, dstOf(loopResult))
	if err != nil {
		return nil, err
	}
	return irx.Let("dsxListLoop", loop, irx.MkPair(s2, d2)), nil
}

func boolTrueBit() *irx.Expr  { return irx.Cast(irx.BitT(), irx.Bool(true)) }
func boolFalseBit() *irx.Expr { return irx.Cast(irx.BitT(), irx.Bool(false)) }
