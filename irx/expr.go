package irx

import "github.com/rixed/dessser/schema"

// Op tags the constructor of an Expr (§3.3). Each Op fixes the shape
// of the payload fields Expr uses and the arity of Kids.
type Op int

const (
	// Constants. Each carries its value in the matching payload field
	// and its declared Type on the Expr itself.
	OpBoolConst Op = iota
	OpCharConst
	OpFloatConst
	OpStringConst
	OpIntConst  // IntVal + ScalarKind picks width/signedness
	OpNullConst // NullMN: the declared Value(mn?) type of a null

	// Variables and binding.
	OpIdentifier // Name
	OpParam      // Fid, ParamIdx
	OpLet        // Name, Kids[0]=value, Kids[1]=body
	OpFunction   // Fid, ParamTypes, Kids[0]=body
	OpSeq        // Seq []*Expr, value is that of the last

	// Unary.
	OpNot
	OpLogNot
	OpIsNull
	OpToNullable
	OpToNotNullable
	OpFst
	OpSnd
	OpStringLength
	OpListLength
	OpRemSize
	OpDataPtrPush
	OpDataPtrPop
	OpDerefValuePtr
	OpDump
	OpIgnore
	OpReadByte // DataPtr -> Pair(Byte, DataPtr)
	OpCast     // To: target Type
	OpOfString // ScalarK: target ScalarKind, parses a Value(string) into Value(scalar)
	OpToString // not-nullable Value(scalar) to Value(string)

	// Binary.
	OpGt
	OpGe
	OpEq
	OpNe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpLogAnd
	OpLogOr
	OpLogXor
	OpLeftShift
	OpRightShift
	OpAppendBytes
	OpAppendString
	OpTestBit
	OpReadBytes
	OpPeekByte
	OpWriteByte
	OpWriteBytes
	OpPokeByte
	OpDataPtrAdd
	OpDataPtrSub
	OpCoalesce
	OpPair
	OpMapPair

	// Endian-parameterised stream ops; Endian holds Little or Big.
	OpReadWord
	OpWriteWord
	OpPeekWord
	OpReadDWord
	OpWriteDWord
	OpPeekDWord
	OpReadQWord
	OpWriteQWord
	OpPeekQWord
	OpReadOWord
	OpWriteOWord
	OpPeekOWord

	// Ternary.
	OpSetBit
	OpBlitByte
	OpChoose
	OpLoopWhile
	OpLoopUntil

	// Quaternary.
	OpReadWhile
	OpRepeat
)

type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// Expr is one node of the staged expression IR. It is the single
// tagged struct shape ir.Node also uses: which fields matter
// is determined by Op.
type Expr struct {
	Op Op

	// Constants.
	BoolVal   bool
	CharVal   rune
	FloatVal  float64
	StrVal    string
	IntVal    string // decimal text; widths beyond 64 bits don't fit int64
	ScalarK   schema.ScalarKind
	NullMN    *schema.MaybeNullable

	// Variables and binding.
	Name       string
	Fid        uint64
	ParamIdx   int
	ParamTypes []*Type

	// Casts.
	To *Type

	// Stream endianness.
	Endian Endian

	// Children, arity implied by Op.
	Kids []*Expr

	// Seq.
	Seq []*Expr
}

func newOp(op Op, kids ...*Expr) *Expr { return &Expr{Op: op, Kids: kids} }

// --- Constants ---

func Bool(v bool) *Expr       { return &Expr{Op: OpBoolConst, BoolVal: v} }
func Char(v rune) *Expr        { return &Expr{Op: OpCharConst, CharVal: v} }
func Float(v float64) *Expr    { return &Expr{Op: OpFloatConst, FloatVal: v} }
func Str(v string) *Expr       { return &Expr{Op: OpStringConst, StrVal: v} }

// Int builds an integer constant of the given scalar width/signedness
// from its decimal textual representation, so that widths above 64
// bits never need to round-trip through a machine int.
func Int(k schema.ScalarKind, decimal string) *Expr {
	return &Expr{Op: OpIntConst, IntVal: decimal, ScalarK: k}
}

// Null builds the null value of a nullable schema type.
func Null(mn *schema.MaybeNullable) *Expr {
	return &Expr{Op: OpNullConst, NullMN: mn}
}

// --- Variables and binding ---

func Identifier(name string) *Expr { return &Expr{Op: OpIdentifier, Name: name} }

func Param(fid uint64, idx int) *Expr {
	return &Expr{Op: OpParam, Fid: fid, ParamIdx: idx}
}

func Let(name string, value, body *Expr) *Expr {
	return &Expr{Op: OpLet, Name: name, Kids: []*Expr{value, body}}
}

func Function(fid uint64, paramTypes []*Type, body *Expr) *Expr {
	return &Expr{Op: OpFunction, Fid: fid, ParamTypes: paramTypes, Kids: []*Expr{body}}
}

func Seq(exprs ...*Expr) *Expr { return &Expr{Op: OpSeq, Seq: exprs} }

// --- Unary ---

func Not(e *Expr) *Expr            { return newOp(OpNot, e) }
func LogNot(e *Expr) *Expr         { return newOp(OpLogNot, e) }
func IsNull(e *Expr) *Expr         { return newOp(OpIsNull, e) }
func ToNullable(e *Expr) *Expr     { return newOp(OpToNullable, e) }
func ToNotNullable(e *Expr) *Expr  { return newOp(OpToNotNullable, e) }
func Fst(e *Expr) *Expr            { return newOp(OpFst, e) }
func Snd(e *Expr) *Expr            { return newOp(OpSnd, e) }
func StringLength(e *Expr) *Expr   { return newOp(OpStringLength, e) }
func ListLength(e *Expr) *Expr     { return newOp(OpListLength, e) }
func RemSize(e *Expr) *Expr        { return newOp(OpRemSize, e) }
func DataPtrPush(e *Expr) *Expr    { return newOp(OpDataPtrPush, e) }
func DataPtrPop(e *Expr) *Expr     { return newOp(OpDataPtrPop, e) }
func DerefValuePtr(e *Expr) *Expr  { return newOp(OpDerefValuePtr, e) }
func Dump(e *Expr) *Expr           { return newOp(OpDump, e) }
func Ignore(e *Expr) *Expr         { return newOp(OpIgnore, e) }

// Cast converts between low-level numeric IR representations (bit,
// byte, word, dword, qword, oword, size) or between such a
// representation and a Value(scalar); the target is given explicitly
// since it cannot always be inferred from the operand alone.
func Cast(to *Type, e *Expr) *Expr { return &Expr{Op: OpCast, To: to, Kids: []*Expr{e}} }

func OfString(k schema.ScalarKind, e *Expr) *Expr {
	return &Expr{Op: OpOfString, ScalarK: k, Kids: []*Expr{e}}
}

func ToStringExpr(e *Expr) *Expr { return newOp(OpToString, e) }

// --- Binary ---

func Gt(a, b *Expr) *Expr           { return newOp(OpGt, a, b) }
func Ge(a, b *Expr) *Expr           { return newOp(OpGe, a, b) }
func Eq(a, b *Expr) *Expr           { return newOp(OpEq, a, b) }
func Ne(a, b *Expr) *Expr           { return newOp(OpNe, a, b) }
func Add(a, b *Expr) *Expr          { return newOp(OpAdd, a, b) }
func Sub(a, b *Expr) *Expr          { return newOp(OpSub, a, b) }
func Mul(a, b *Expr) *Expr          { return newOp(OpMul, a, b) }
func Div(a, b *Expr) *Expr          { return newOp(OpDiv, a, b) }
func Rem(a, b *Expr) *Expr          { return newOp(OpRem, a, b) }
func LogAnd(a, b *Expr) *Expr       { return newOp(OpLogAnd, a, b) }
func LogOr(a, b *Expr) *Expr        { return newOp(OpLogOr, a, b) }
func LogXor(a, b *Expr) *Expr       { return newOp(OpLogXor, a, b) }
func LeftShift(a, b *Expr) *Expr    { return newOp(OpLeftShift, a, b) }
func RightShift(a, b *Expr) *Expr   { return newOp(OpRightShift, a, b) }
func AppendBytes(a, b *Expr) *Expr  { return newOp(OpAppendBytes, a, b) }
func AppendString(a, b *Expr) *Expr { return newOp(OpAppendString, a, b) }
func TestBit(a, b *Expr) *Expr      { return newOp(OpTestBit, a, b) }
func ReadBytes(a, b *Expr) *Expr    { return newOp(OpReadBytes, a, b) }
func PeekByte(a, b *Expr) *Expr     { return newOp(OpPeekByte, a, b) }
func WriteByte(a, b *Expr) *Expr    { return newOp(OpWriteByte, a, b) }
func WriteBytes(a, b *Expr) *Expr   { return newOp(OpWriteBytes, a, b) }
func PokeByte(a, b *Expr) *Expr     { return newOp(OpPokeByte, a, b) }
func DataPtrAdd(a, b *Expr) *Expr   { return newOp(OpDataPtrAdd, a, b) }
func DataPtrSub(a, b *Expr) *Expr   { return newOp(OpDataPtrSub, a, b) }
func Coalesce(a, b *Expr) *Expr     { return newOp(OpCoalesce, a, b) }
func MkPair(a, b *Expr) *Expr       { return newOp(OpPair, a, b) }
func MapPair(a, b *Expr) *Expr      { return newOp(OpMapPair, a, b) }

func ReadByte(ptr *Expr) *Expr { return newOp(OpReadByte, ptr) }

func readEndian(op Op, e Endian, ptr *Expr) *Expr { return &Expr{Op: op, Endian: e, Kids: []*Expr{ptr}} }
func writeEndian(op Op, e Endian, ptr, v *Expr) *Expr {
	return &Expr{Op: op, Endian: e, Kids: []*Expr{ptr, v}}
}

func ReadWord(e Endian, ptr *Expr) *Expr         { return readEndian(OpReadWord, e, ptr) }
func WriteWord(e Endian, ptr, v *Expr) *Expr     { return writeEndian(OpWriteWord, e, ptr, v) }
func PeekWord(e Endian, ptr *Expr) *Expr         { return readEndian(OpPeekWord, e, ptr) }
func ReadDWord(e Endian, ptr *Expr) *Expr        { return readEndian(OpReadDWord, e, ptr) }
func WriteDWord(e Endian, ptr, v *Expr) *Expr    { return writeEndian(OpWriteDWord, e, ptr, v) }
func PeekDWord(e Endian, ptr *Expr) *Expr        { return readEndian(OpPeekDWord, e, ptr) }
func ReadQWord(e Endian, ptr *Expr) *Expr        { return readEndian(OpReadQWord, e, ptr) }
func WriteQWord(e Endian, ptr, v *Expr) *Expr    { return writeEndian(OpWriteQWord, e, ptr, v) }
func PeekQWord(e Endian, ptr *Expr) *Expr        { return readEndian(OpPeekQWord, e, ptr) }
func ReadOWord(e Endian, ptr *Expr) *Expr        { return readEndian(OpReadOWord, e, ptr) }
func WriteOWord(e Endian, ptr, v *Expr) *Expr    { return writeEndian(OpWriteOWord, e, ptr, v) }
func PeekOWord(e Endian, ptr *Expr) *Expr        { return readEndian(OpPeekOWord, e, ptr) }

// --- Ternary ---

func SetBit(ptr, bitIdx, val *Expr) *Expr  { return newOp(OpSetBit, ptr, bitIdx, val) }
func BlitByte(ptr, b, n *Expr) *Expr       { return newOp(OpBlitByte, ptr, b, n) }
func Choose(cond, then, els *Expr) *Expr   { return newOp(OpChoose, cond, then, els) }
func LoopWhile(cond, body, init *Expr) *Expr { return newOp(OpLoopWhile, cond, body, init) }
func LoopUntil(body, cond, init *Expr) *Expr { return newOp(OpLoopUntil, body, cond, init) }

// --- Quaternary ---

// ReadWhile(cond, reduce, init, pos) repeatedly peeks the byte at pos;
// while cond(byte) holds it folds reduce(acc, byte) into the
// accumulator (seeded by init) and advances pos by one, stopping at
// the first byte cond rejects (which is left unconsumed, exactly like
// the S-expression decoder's quote/paren/space scan needs). Operand
// order matches spec §3.3's "ReadWhile(cond, reduce, init, pos)".
func ReadWhile(cond, reduce, init, pos *Expr) *Expr {
	return newOp(OpReadWhile, cond, reduce, init, pos)
}
func Repeat(from, to, body, init *Expr) *Expr { return newOp(OpRepeat, from, to, body, init) }
