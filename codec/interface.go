package codec

import (
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// Ptr is an IR expression of type DataPtr or ValuePtr(root_mn) —
// whichever pointer type the concrete codec's Ptr(root_mn) resolves
// to (spec §4.3: "ptr for either DataPtr or ValuePtr(root_mn)").
type Ptr = *irx.Expr

// State is the opaque per-run bookkeeping a codec's Start returns and
// every subsequent call threads back in. Wire codecs typically carry
// none (State is nil); a codec that needs to patch a length prefix
// after the fact (RowBinary-style) would carry the DataPtr of that
// prefix here.
type State any

// Ssize is a codec's static size hint for a scalar or compound (spec
// §4.3, the "ssize family"): either a byte count known at generation
// time, or an IR expression to be evaluated over the already
// materialised heap value.
type Ssize struct {
	Kind  SizeKind
	Bytes uint64
	Expr  *irx.Expr
}

func Const(n uint64) Ssize  { return Ssize{Kind: ConstSize, Bytes: n} }
func Dyn(e *irx.Expr) Ssize { return Ssize{Kind: DynSize, Expr: e} }

// Add combines two static size hints: a sum of two constants stays
// constant, anything else becomes dynamic (spec §4.5: "the total is
// their sum").
func (s Ssize) Add(o Ssize) Ssize {
	if s.Kind == ConstSize && o.Kind == ConstSize {
		return Const(s.Bytes + o.Bytes)
	}
	parts := []*irx.Expr{s.asExpr(), o.asExpr()}
	return Dyn(irx.Add(parts[0], parts[1]))
}

func (s Ssize) asExpr() *irx.Expr {
	if s.Kind == ConstSize {
		return irx.Cast(irx.SizeT(), irx.Int(schema.U64, itoa(s.Bytes)))
	}
	return s.Expr
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// EndOfListFn reports whether the list has no further element,
// exposed by an UnknownSize list opener. Called before every element,
// including the first, so that a separator can be suppressed on entry.
type EndOfListFn func(root *schema.MaybeNullable, path schema.Path, ptr Ptr) (*irx.Expr, error)

// ListOpener is the discriminated union §4.3 requires: a deserializer
// exposes exactly one of the two shapes for any given List(mn). Unlike
// a bare KnownSize(fn) closure, the opening framing (the '(' and,
// for formats that carry one, the count-and-separator prefix) has
// already been consumed by the time ListOpn returns this struct — see
// Deserializer.ListOpn — so Count here is the decoded element count
// itself rather than a closure still needing to read it.
type ListOpener struct {
	Kind      ListOpenerKind
	Count     *irx.Expr   // Value(i32)-ish count, set iff Kind == KnownSize
	EndOfList EndOfListFn // set iff Kind == UnknownSize
}

// Count is an optional element count supplied to a serializer's
// ListOpn; formats that require a count must fail when it is absent.
type Count struct {
	Known bool
	N     *irx.Expr // Value(i32)-ish count expression, valid iff Known
}

func KnownCount(n *irx.Expr) Count { return Count{Known: true, N: n} }
func UnknownCount() Count          { return Count{} }

// Deserializer is the contract a concrete wire-format deserializer
// satisfies so the generic driver (package driver) can walk any
// schema against it (spec §4.3). Every method receives the full path
// to the subterm being visited, because a stateful codec may special
// case a path (e.g. the root) differently from nested occurrences.
//
// The per-scalar family d8/d16/.../dFloat/dString §4.3 enumerates
// collapses here into one DScalar method parameterised by
// schema.ScalarKind: the width is only ever known at generation time
// from the schema term already in hand, so a Go switch inside one
// method is the idiomatic shape rather than twenty-two near-identical
// exported methods.
type Deserializer interface {
	// Start begins reading root from ptr; returns per-run state (nil
	// if the codec needs none) and the possibly-advanced pointer.
	Start(root *schema.MaybeNullable, ptr Ptr) (State, Ptr, error)
	Stop(st State, ptr Ptr) (Ptr, error)

	DScalar(st State, k schema.ScalarKind, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (*irx.Expr, error)

	IsNull(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (*irx.Expr, error)
	DNull(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	DNotNull(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	TupOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	TupSep(st State, idx int, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	TupCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	RecOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	RecSep(st State, idx int, fieldName string, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	RecCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	VecOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	VecSep(st State, idx int, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	VecCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	// ListOpn consumes the opening framing (the '(' and, for
	// list_prefix_length formats, the decimal count and its
	// separator) and returns the resulting ListOpener together with
	// the pointer past that framing.
	ListOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (ListOpener, Ptr, error)
	ListSep(st State, isFirst *irx.Expr, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	ListCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	Ssize(st State, root *schema.MaybeNullable, path schema.Path) Ssize
}

// Serializer is the dual of Deserializer. Nullable requires its own
// unconditional-before-the-branch emission documented in spec §4.4's
// ordering rule: Nullable must be called before the Choose that
// decides which of SNull/SNotNull+value runs.
type Serializer interface {
	Start(root *schema.MaybeNullable, ptr Ptr) (State, Ptr, error)
	Stop(st State, ptr Ptr) (Ptr, error)

	SScalar(st State, k schema.ScalarKind, root *schema.MaybeNullable, path schema.Path, value, ptr Ptr) (Ptr, error)

	Nullable(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	SNull(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	SNotNull(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	TupOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	TupSep(st State, idx int, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	TupCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	RecOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	RecSep(st State, idx int, fieldName string, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	RecCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	VecOpn(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	VecSep(st State, idx int, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	VecCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	ListOpn(st State, root *schema.MaybeNullable, path schema.Path, count Count, ptr Ptr) (Ptr, error)
	ListSep(st State, isFirst *irx.Expr, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	ListCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	// SumOpn/SumCls frame a sum's (label value) pair (spec §6); the
	// schema algebra (schema.ValueKind) has no constructible Sum
	// value-type, so the generic driver never calls these. They exist because the
	// interface in §4.3 requires them of every Serializer; codec/sexpr
	// implements them against the day a Sum value-type is added.
	SumOpn(st State, label uint16, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)
	SumCls(st State, root *schema.MaybeNullable, path schema.Path, ptr Ptr) (Ptr, error)

	Ssize(st State, root *schema.MaybeNullable, path schema.Path) Ssize
}
