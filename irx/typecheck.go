package irx

import (
	"github.com/rixed/dessser/schema"
)

// Env is an immutable lexical scope used while inferring types:
// each binding points at its enclosing scope rather than mutating a
// shared map, so that sibling branches of Choose/Let never see each
// other's bindings.
type Env struct {
	parent *Env

	varName string
	varType *Type

	fid    uint64
	params []*Type
}

func bindVar(parent *Env, name string, t *Type) *Env {
	return &Env{parent: parent, varName: name, varType: t}
}

func bindParams(parent *Env, fid uint64, params []*Type) *Env {
	return &Env{parent: parent, fid: fid, params: params}
}

func (env *Env) lookupVar(name string) (*Type, bool) {
	for e := env; e != nil; e = e.parent {
		if e.varName == name {
			return e.varType, true
		}
	}
	return nil, false
}

func (env *Env) lookupParam(fid uint64, idx int) (*Type, bool) {
	for e := env; e != nil; e = e.parent {
		if e.params != nil && e.fid == fid {
			if idx < 0 || idx >= len(e.params) {
				return nil, false
			}
			return e.params[idx], true
		}
	}
	return nil, false
}

// TypeOf infers the type of e under env, applying the small-step
// rules of §4.2. A nil env is the empty environment: any Identifier or
// Param in e must then be self-contained (e.g. inside a closed
// Function body or Let).
func TypeOf(env *Env, e *Expr) (*Type, error) {
	switch e.Op {
	case OpBoolConst:
		return Value(schema.NotNullable(schema.NewScalar(schema.Bool))), nil
	case OpCharConst:
		return Value(schema.NotNullable(schema.NewScalar(schema.Char))), nil
	case OpFloatConst:
		return Value(schema.NotNullable(schema.NewScalar(schema.Float))), nil
	case OpStringConst:
		return Value(schema.NotNullable(schema.NewScalar(schema.String))), nil
	case OpIntConst:
		return Value(schema.NotNullable(schema.NewScalar(e.ScalarK))), nil
	case OpNullConst:
		if !e.NullMN.Nullable {
			return nil, typeErr(e.Op, "Null's schema type must be nullable, got %s", schema.Print(e.NullMN))
		}
		return Value(e.NullMN), nil

	case OpIdentifier:
		t, ok := env.lookupVar(e.Name)
		if !ok {
			return nil, &UnboundError{Name: e.Name}
		}
		return t, nil

	case OpParam:
		t, ok := env.lookupParam(e.Fid, e.ParamIdx)
		if !ok {
			return nil, typeErr(e.Op, "no parameter %d of function %d in scope", e.ParamIdx, e.Fid)
		}
		return t, nil

	case OpLet:
		vt, err := TypeOf(env, e.Kids[0])
		if err != nil {
			return nil, err
		}
		return TypeOf(bindVar(env, e.Name, vt), e.Kids[1])

	case OpFunction:
		inner := bindParams(env, e.Fid, e.ParamTypes)
		result, err := TypeOf(inner, e.Kids[0])
		if err != nil {
			return nil, err
		}
		return FunctionT(e.ParamTypes, result), nil

	case OpSeq:
		if len(e.Seq) == 0 {
			return nil, typeErr(e.Op, "empty Seq has no type")
		}
		for _, s := range e.Seq[:len(e.Seq)-1] {
			if _, err := TypeOf(env, s); err != nil {
				return nil, err
			}
		}
		return TypeOf(env, e.Seq[len(e.Seq)-1])
	}

	if t, err, handled := typeOfGenericOp(env, e); handled {
		return t, err
	}
	return nil, typeErr(e.Op, "type_of: unhandled constructor")
}

func kid(env *Env, e *Expr, i int) (*Type, error) { return TypeOf(env, e.Kids[i]) }

func typeOfGenericOp(env *Env, e *Expr) (*Type, error, bool) {
	switch e.Op {
	case OpNot:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != BitKind {
			return nil, mismatch(e.Op, "operand", BitT(), t), true
		}
		return BitT(), nil, true

	case OpLogNot:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if !isBitfield(t) {
			return nil, typeErr(e.Op, "operand %s is not a bit-carrying type", t), true
		}
		return t, nil, true

	case OpIsNull:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		switch t.Kind {
		case ValueKind, ValuePtrKind:
			if !t.MN.Nullable {
				return nil, typeErr(e.Op, "operand %s is not nullable", t), true
			}
			return BitT(), nil, true
		}
		return nil, typeErr(e.Op, "operand %s is neither Value nor ValuePtr", t), true

	case OpToNullable:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != ValueKind {
			return nil, typeErr(e.Op, "operand %s is not a Value", t), true
		}
		if t.MN.Nullable {
			return nil, typeErr(e.Op, "operand %s is already nullable", t), true
		}
		return Value(schema.Nullable(t.MN.Type)), nil, true

	case OpToNotNullable:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != ValueKind || !t.MN.Nullable {
			return nil, typeErr(e.Op, "operand %s is not a nullable Value", t), true
		}
		return Value(schema.NotNullable(t.MN.Type)), nil, true

	case OpFst:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != PairKind {
			return nil, typeErr(e.Op, "operand %s is not a Pair", t), true
		}
		return t.Elems[0], nil, true

	case OpSnd:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != PairKind {
			return nil, typeErr(e.Op, "operand %s is not a Pair", t), true
		}
		return t.Elems[1], nil, true

	case OpStringLength, OpListLength:
		if _, err := kid(env, e, 0); err != nil {
			return nil, err, true
		}
		return SizeT(), nil, true

	case OpRemSize:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != DataPtrKind {
			return nil, typeErr(e.Op, "operand %s is not a DataPtr", t), true
		}
		return SizeT(), nil, true

	case OpDataPtrPush, OpDataPtrPop:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != DataPtrKind {
			return nil, typeErr(e.Op, "operand %s is not a DataPtr", t), true
		}
		return DataPtr(), nil, true

	case OpDerefValuePtr:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != ValuePtrKind {
			return nil, typeErr(e.Op, "operand %s is not a ValuePtr", t), true
		}
		return Value(t.MN), nil, true

	case OpDump, OpIgnore:
		if _, err := kid(env, e, 0); err != nil {
			return nil, err, true
		}
		return Void(), nil, true

	case OpReadByte:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != DataPtrKind {
			return nil, typeErr(e.Op, "operand %s is not a DataPtr", t), true
		}
		return PairT(ByteT(), DataPtr()), nil, true

	case OpCast:
		from, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if !legalCast(from, e.To) {
			return nil, typeErr(e.Op, "no cast from %s to %s", from, e.To), true
		}
		return e.To, nil, true

	case OpOfString:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != ValueKind || t.MN.Nullable || t.MN.Type.Kind != schema.ScalarValue || t.MN.Type.Scalar != schema.String {
			return nil, typeErr(e.Op, "operand %s is not Value(string)", t), true
		}
		return Value(schema.NotNullable(schema.NewScalar(e.ScalarK))), nil, true

	case OpToString:
		t, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if t.Kind != ValueKind || t.MN.Nullable || t.MN.Type.Kind != schema.ScalarValue {
			return nil, typeErr(e.Op, "operand %s is not a not-nullable scalar Value", t), true
		}
		return Value(schema.NotNullable(schema.NewScalar(schema.String))), nil, true
	}

	return typeOfBinaryOp(env, e)
}

// legalCast reports whether Cast may bridge from's type to to's type
// (either direction). The table is the closed list of §3.3 ("casts
// between every numeric representation: byte↔u8, word↔u16, dword↔u32,
// qword↔u64, oword↔u128, float↔qword, size↔u32, bit↔bool, char↔u8"),
// extended by two pairs no shipping codec can do without:
//
//   - size↔u64, alongside size↔u32: a Ssize's Bytes field and every
//     size literal derived from it (codec.Ssize.asExpr, codec/sexpr's
//     sizeLit) are host uint64s; truncating through u32 before the
//     cast would silently corrupt sizes above 4GiB.
//   - bytes↔string: the S-expression codec's wire format spells
//     scalars as token or quoted text, so decoding and encoding must
//     cross between a raw byte range and a Value(string) somewhere
//     (codec/sexpr's decodeToken, decodeQuoted, writeQuoted), and no
//     other Op performs that crossing.
func legalCast(from, to *Type) bool {
	pairs := [][2]*Type{
		{ByteT(), scalarT(schema.U8)},
		{WordT(), scalarT(schema.U16)},
		{DWordT(), scalarT(schema.U32)},
		{QWordT(), scalarT(schema.U64)},
		{OWordT(), scalarT(schema.U128)},
		{QWordT(), scalarT(schema.Float)},
		{SizeT(), scalarT(schema.U32)},
		{SizeT(), scalarT(schema.U64)},
		{BitT(), scalarT(schema.Bool)},
		{scalarT(schema.Char), scalarT(schema.U8)},
		{BytesT(), scalarT(schema.String)},
	}
	for _, p := range pairs {
		if (from.Equal(p[0]) && to.Equal(p[1])) || (from.Equal(p[1]) && to.Equal(p[0])) {
			return true
		}
	}
	return false
}

func scalarT(k schema.ScalarKind) *Type {
	return Value(schema.NotNullable(schema.NewScalar(k)))
}

func isBitfield(t *Type) bool {
	switch t.Kind {
	case BitKind, ByteKind, WordKind, DWordKind, QWordKind, OWordKind, SizeKind:
		return true
	}
	return false
}

func sameType(op Op, a, b *Type) error {
	if !a.Equal(b) {
		return mismatch(op, "operands have different types", a, b)
	}
	return nil
}

func typeOfBinaryOp(env *Env, e *Expr) (*Type, error, bool) {
	switch e.Op {
	case OpGt, OpGe, OpEq, OpNe:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if err := sameType(e.Op, a, b); err != nil {
			return nil, err, true
		}
		return BitT(), nil, true

	case OpAdd, OpSub, OpMul, OpDiv, OpRem:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if !a.IsNumeric() {
			return nil, typeErr(e.Op, "operand %s is not numeric", a), true
		}
		if err := sameType(e.Op, a, b); err != nil {
			return nil, err, true
		}
		return a, nil, true

	case OpLogAnd, OpLogOr, OpLogXor:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if !isBitfield(a) {
			return nil, typeErr(e.Op, "operand %s is not a bit-carrying type", a), true
		}
		if err := sameType(e.Op, a, b); err != nil {
			return nil, err, true
		}
		return a, nil, true

	case OpLeftShift, OpRightShift:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		n, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if !isBitfield(a) {
			return nil, typeErr(e.Op, "operand %s is not a bit-carrying type", a), true
		}
		if n.Kind != SizeKind {
			return nil, mismatch(e.Op, "shift amount", SizeT(), n), true
		}
		return a, nil, true

	case OpAppendBytes:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if a.Kind != BytesKind || b.Kind != BytesKind {
			return nil, typeErr(e.Op, "both operands must be Bytes"), true
		}
		return BytesT(), nil, true

	case OpAppendString:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if !isStringValue(a) || !isStringValue(b) {
			return nil, typeErr(e.Op, "both operands must be Value(string)"), true
		}
		return a, nil, true

	case OpTestBit:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		n, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if !isBitfield(a) {
			return nil, typeErr(e.Op, "operand %s is not a bit-carrying type", a), true
		}
		if n.Kind != SizeKind {
			return nil, mismatch(e.Op, "bit index", SizeT(), n), true
		}
		return BitT(), nil, true

	case OpReadBytes:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		n, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind {
			return nil, mismatch(e.Op, "first operand", DataPtr(), ptr), true
		}
		if n.Kind != SizeKind {
			return nil, mismatch(e.Op, "second operand", SizeT(), n), true
		}
		return PairT(BytesT(), DataPtr()), nil, true

	case OpPeekByte:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		off, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind || off.Kind != SizeKind {
			return nil, typeErr(e.Op, "expected (DataPtr, Size)"), true
		}
		return ByteT(), nil, true

	case OpWriteByte, OpPokeByte:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		v, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind || v.Kind != ByteKind {
			return nil, typeErr(e.Op, "expected (DataPtr, Byte)"), true
		}
		return DataPtr(), nil, true

	case OpWriteBytes:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		v, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind || v.Kind != BytesKind {
			return nil, typeErr(e.Op, "expected (DataPtr, Bytes)"), true
		}
		return DataPtr(), nil, true

	case OpDataPtrAdd:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		n, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind || n.Kind != SizeKind {
			return nil, typeErr(e.Op, "expected (DataPtr, Size)"), true
		}
		return DataPtr(), nil, true

	case OpDataPtrSub:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if a.Kind != DataPtrKind || b.Kind != DataPtrKind {
			return nil, typeErr(e.Op, "both operands must be DataPtr"), true
		}
		return SizeT(), nil, true

	case OpCoalesce:
		nullable, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		fallback, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if nullable.Kind != ValueKind || !nullable.MN.Nullable {
			return nil, typeErr(e.Op, "first operand must be a nullable Value"), true
		}
		if fallback.Kind != ValueKind || fallback.MN.Nullable {
			return nil, typeErr(e.Op, "second operand must be a not-nullable Value"), true
		}
		if !schema.Equal(nullable.MN.Type, fallback.MN.Type) {
			return nil, typeErr(e.Op, "operand schemas disagree"), true
		}
		return fallback, nil, true

	case OpPair:
		a, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		return PairT(a, b), nil, true

	case OpMapPair:
		p, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		fn, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if p.Kind != PairKind {
			return nil, typeErr(e.Op, "first operand must be a Pair"), true
		}
		if fn.Kind != FunctionKind || len(fn.FuncArgs) != 2 {
			return nil, typeErr(e.Op, "second operand must be a 2-argument Function"), true
		}
		if !fn.FuncArgs[0].Equal(p.Elems[0]) || !fn.FuncArgs[1].Equal(p.Elems[1]) {
			return nil, typeErr(e.Op, "function parameters do not match the pair's element types"), true
		}
		return fn.FuncResult, nil, true
	}

	if t, err, handled := typeOfEndianOp(env, e); handled {
		return t, err, true
	}
	return typeOfTernaryAndQuaternaryOp(env, e)
}

func isStringValue(t *Type) bool {
	return t.Kind == ValueKind && !t.MN.Nullable && t.MN.Type.Kind == schema.ScalarValue && t.MN.Type.Scalar == schema.String
}

func typeOfEndianOp(env *Env, e *Expr) (*Type, error, bool) {
	widths := map[Op]*Type{
		OpReadWord: WordT(), OpReadDWord: DWordT(), OpReadQWord: QWordT(), OpReadOWord: OWordT(),
		OpPeekWord: WordT(), OpPeekDWord: DWordT(), OpPeekQWord: QWordT(), OpPeekOWord: OWordT(),
	}
	if w, ok := widths[e.Op]; ok {
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind {
			return nil, mismatch(e.Op, "operand", DataPtr(), ptr), true
		}
		switch e.Op {
		case OpReadWord, OpReadDWord, OpReadQWord, OpReadOWord:
			return PairT(w, DataPtr()), nil, true
		default:
			return w, nil, true
		}
	}

	writeWidths := map[Op]*Type{
		OpWriteWord: WordT(), OpWriteDWord: DWordT(), OpWriteQWord: QWordT(), OpWriteOWord: OWordT(),
	}
	if w, ok := writeWidths[e.Op]; ok {
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		v, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind {
			return nil, mismatch(e.Op, "first operand", DataPtr(), ptr), true
		}
		if !v.Equal(w) {
			return nil, mismatch(e.Op, "second operand", w, v), true
		}
		return DataPtr(), nil, true
	}

	return nil, nil, false
}

func typeOfTernaryAndQuaternaryOp(env *Env, e *Expr) (*Type, error, bool) {
	switch e.Op {
	case OpSetBit:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		idx, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		val, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind || idx.Kind != SizeKind || val.Kind != BitKind {
			return nil, typeErr(e.Op, "expected (DataPtr, Size, Bit)"), true
		}
		return DataPtr(), nil, true

	case OpBlitByte:
		ptr, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		b, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		n, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		if ptr.Kind != DataPtrKind || b.Kind != ByteKind || n.Kind != SizeKind {
			return nil, typeErr(e.Op, "expected (DataPtr, Byte, Size)"), true
		}
		return DataPtr(), nil, true

	case OpChoose:
		cond, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		if cond.Kind != BitKind {
			return nil, mismatch(e.Op, "condition", BitT(), cond), true
		}
		then, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		els, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		if err := sameType(e.Op, then, els); err != nil {
			return nil, err, true
		}
		return then, nil, true

	case OpLoopWhile:
		cond, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		body, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		init, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		if err := checkLoopFuncs(e.Op, cond, body, init); err != nil {
			return nil, err, true
		}
		return init, nil, true

	case OpLoopUntil:
		body, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		cond, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		init, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		if err := checkLoopFuncs(e.Op, cond, body, init); err != nil {
			return nil, err, true
		}
		return init, nil, true

	case OpReadWhile:
		cond, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		reduce, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		init, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		pos, err := kid(env, e, 3)
		if err != nil {
			return nil, err, true
		}
		if cond.Kind != FunctionKind || len(cond.FuncArgs) != 1 || cond.FuncArgs[0].Kind != ByteKind || cond.FuncResult.Kind != BitKind {
			return nil, typeErr(e.Op, "cond must be Function(Byte) -> Bit"), true
		}
		if reduce.Kind != FunctionKind || len(reduce.FuncArgs) != 2 || !reduce.FuncArgs[1].Equal(ByteT()) || !reduce.FuncArgs[0].Equal(init) || !reduce.FuncResult.Equal(init) {
			return nil, typeErr(e.Op, "reduce must be Function(%s, Byte) -> %s", init, init), true
		}
		if pos.Kind != DataPtrKind {
			return nil, mismatch(e.Op, "pos", DataPtr(), pos), true
		}
		return PairT(init, DataPtr()), nil, true

	case OpRepeat:
		from, err := kid(env, e, 0)
		if err != nil {
			return nil, err, true
		}
		to, err := kid(env, e, 1)
		if err != nil {
			return nil, err, true
		}
		body, err := kid(env, e, 2)
		if err != nil {
			return nil, err, true
		}
		init, err := kid(env, e, 3)
		if err != nil {
			return nil, err, true
		}
		if !isI32Value(from) || !isI32Value(to) {
			return nil, typeErr(e.Op, "from/to must be Value(i32)"), true
		}
		if body.Kind != FunctionKind || len(body.FuncArgs) != 2 || !body.FuncArgs[0].Equal(init) || !isI32Value(body.FuncArgs[1]) || !body.FuncResult.Equal(init) {
			return nil, typeErr(e.Op, "body must be Function(%s, Value(i32)) -> %s", init, init), true
		}
		return init, nil, true
	}
	return nil, nil, false
}

func checkLoopFuncs(op Op, cond, body, init *Type) error {
	if cond.Kind != FunctionKind || len(cond.FuncArgs) != 1 || !cond.FuncArgs[0].Equal(init) || cond.FuncResult.Kind != BitKind {
		return typeErr(op, "condition must be Function(%s) -> Bit", init)
	}
	if body.Kind != FunctionKind || len(body.FuncArgs) != 1 || !body.FuncArgs[0].Equal(init) || !body.FuncResult.Equal(init) {
		return typeErr(op, "body must be Function(%s) -> %s", init, init)
	}
	return nil
}

func isI32Value(t *Type) bool {
	return t.Kind == ValueKind && !t.MN.Nullable && t.MN.Type.Kind == schema.ScalarValue && t.MN.Type.Scalar == schema.I32
}
