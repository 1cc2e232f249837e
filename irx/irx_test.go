package irx_test

import (
	"testing"

	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

func mustType(t *testing.T, e *irx.Expr) *irx.Type {
	t.Helper()
	ty, err := irx.TypeOf(nil, e)
	if err != nil {
		t.Fatalf("TypeOf(%s): %v", irx.Print(e), err)
	}
	return ty
}

func roundTrip(t *testing.T, e *irx.Expr) *irx.Expr {
	t.Helper()
	src := irx.Print(e)
	e2, err := irx.Parse(src)
	if err != nil {
		t.Fatalf("Parse(Print(e)) = Parse(%q): %v", src, err)
	}
	if irx.Print(e2) != src {
		t.Fatalf("round trip not stable: %q -> %q", src, irx.Print(e2))
	}
	return e2
}

func TestConstantTypes(t *testing.T) {
	cases := []struct {
		e    *irx.Expr
		want string
	}{
		{irx.Bool(true), "Value(bool)"},
		{irx.Char('x'), "Value(char)"},
		{irx.Float(3.5), "Value(float)"},
		{irx.Str("hi"), "Value(string)"},
		{irx.Int(schema.U8, "200"), "Value(u8)"},
	}
	for _, c := range cases {
		ty := mustType(t, c.e)
		if ty.String() != c.want {
			t.Errorf("%s: type = %s, want %s", irx.Print(c.e), ty, c.want)
		}
		roundTrip(t, c.e)
	}
}

func TestNullRequiresNullableSchema(t *testing.T) {
	notNullable, _ := schema.Parse("u8")
	n := irx.Null(notNullable)
	if _, err := irx.TypeOf(nil, n); err == nil {
		t.Fatalf("expected Null over a not-nullable schema to be rejected")
	}

	nullable, _ := schema.Parse("u8?")
	n2 := irx.Null(nullable)
	ty := mustType(t, n2)
	if ty.String() != "Value(u8?)" {
		t.Fatalf("Null(u8?) type = %s", ty)
	}
	roundTrip(t, n2)
}

func TestArithmeticRequiresMatchingTypes(t *testing.T) {
	a := irx.Int(schema.U32, "1")
	b := irx.Int(schema.U32, "2")
	sum := irx.Add(a, b)
	ty := mustType(t, sum)
	if ty.String() != "Value(u32)" {
		t.Fatalf("Add(u32,u32) type = %s", ty)
	}
	roundTrip(t, sum)

	mismatched := irx.Add(a, irx.Int(schema.U64, "2"))
	if _, err := irx.TypeOf(nil, mismatched); err == nil {
		t.Fatalf("expected Add over mismatched scalar widths to be rejected")
	}
}

func TestChooseRequiresMatchingBranches(t *testing.T) {
	cond := irx.Not(irx.Bool(true)) // ill-typed on purpose: Not wants Bit not Value(bool)
	if _, err := irx.TypeOf(nil, cond); err == nil {
		t.Fatalf("expected Not(Value(bool)) to be rejected, Not operates on Bit")
	}

	choice := irx.Choose(irx.Eq(irx.Int(schema.U8, "1"), irx.Int(schema.U8, "1")),
		irx.Int(schema.U8, "1"), irx.Int(schema.U8, "2"))
	ty := mustType(t, choice)
	if ty.String() != "Value(u8)" {
		t.Fatalf("Choose type = %s", ty)
	}
	roundTrip(t, choice)

	badChoice := irx.Choose(irx.Eq(irx.Int(schema.U8, "1"), irx.Int(schema.U8, "1")),
		irx.Int(schema.U8, "1"), irx.Bool(false))
	if _, err := irx.TypeOf(nil, badChoice); err == nil {
		t.Fatalf("expected Choose with mismatched branches to be rejected")
	}
}

func TestLetAndIdentifier(t *testing.T) {
	e := irx.Let("x", irx.Int(schema.U16, "7"), irx.Add(irx.Identifier("x"), irx.Int(schema.U16, "1")))
	ty := mustType(t, e)
	if ty.String() != "Value(u16)" {
		t.Fatalf("Let type = %s", ty)
	}
	roundTrip(t, e)
}

func TestUnboundIdentifier(t *testing.T) {
	_, err := irx.TypeOf(nil, irx.Identifier("nope"))
	if err == nil {
		t.Fatalf("expected an UnboundError")
	}
	if _, ok := err.(*irx.UnboundError); !ok {
		t.Fatalf("expected *irx.UnboundError, got %T", err)
	}
}

func TestFunctionParamAndCall(t *testing.T) {
	fn := irx.Function(1, []*irx.Type{irx.ByteT()}, irx.Param(1, 0))
	ty := mustType(t, fn)
	if ty.String() != "Function(Byte) -> Byte" {
		t.Fatalf("Function type = %s", ty)
	}
	roundTrip(t, fn)
}

func TestDataPtrPipeline(t *testing.T) {
	fn := irx.Function(30, []*irx.Type{irx.DataPtr()}, irx.DataPtrPush(irx.Param(30, 0)))
	fnTy := mustType(t, fn)
	if fnTy.FuncResult.Kind != irx.DataPtrKind {
		t.Fatalf("DataPtrPush should stay a DataPtr, got %s", fnTy.FuncResult)
	}

	rb := irx.Function(31, []*irx.Type{irx.DataPtr()}, irx.ReadByte(irx.Param(31, 0)))
	rbTy := mustType(t, rb)
	if rbTy.FuncResult.String() != "Pair(Byte, DataPtr)" {
		t.Fatalf("ReadByte type = %s", rbTy.FuncResult)
	}
	roundTrip(t, rb)
}

func TestEndianReadWrite(t *testing.T) {
	r := irx.Function(32, []*irx.Type{irx.DataPtr()}, irx.ReadWord(irx.LittleEndian, irx.Param(32, 0)))
	rTy := mustType(t, r)
	if rTy.FuncResult.String() != "Pair(Word, DataPtr)" {
		t.Fatalf("ReadWord type = %s", rTy.FuncResult)
	}
	roundTrip(t, r)

	w := irx.Function(33, []*irx.Type{irx.DataPtr()},
		irx.WriteDWord(irx.BigEndian, irx.Param(33, 0), irx.Cast(irx.DWordT(), irx.Int(schema.U32, "9"))))
	wTy := mustType(t, w)
	if wTy.FuncResult.Kind != irx.DataPtrKind {
		t.Fatalf("WriteDWord type = %s", wTy.FuncResult)
	}
}

func TestIsNullToNullableToNotNullable(t *testing.T) {
	mn, _ := schema.Parse("u8?")
	val := irx.Null(mn)
	isNull := irx.IsNull(val)
	ty := mustType(t, isNull)
	if ty.Kind != irx.BitKind {
		t.Fatalf("IsNull type = %s", ty)
	}

	asNullable := irx.ToNullable(irx.Int(schema.U8, "1"))
	ty2 := mustType(t, asNullable)
	if ty2.String() != "Value(u8?)" {
		t.Fatalf("ToNullable type = %s", ty2)
	}
	backToNotNullable := irx.ToNotNullable(asNullable)
	ty3 := mustType(t, backToNotNullable)
	if ty3.String() != "Value(u8)" {
		t.Fatalf("ToNotNullable type = %s", ty3)
	}
}

func TestLoopWhile(t *testing.T) {
	i32 := func(n string) *irx.Expr { return irx.Int(schema.I32, n) }
	cond := irx.Function(10, []*irx.Type{irx.Value(mustMN(t, "i32"))}, irx.Gt(irx.Param(10, 0), i32("0")))
	body := irx.Function(11, []*irx.Type{irx.Value(mustMN(t, "i32"))}, irx.Sub(irx.Param(11, 0), i32("1")))
	loop := irx.LoopWhile(cond, body, i32("5"))
	ty := mustType(t, loop)
	if ty.String() != "Value(i32)" {
		t.Fatalf("LoopWhile type = %s", ty)
	}
}

func TestRepeat(t *testing.T) {
	i32 := func(n string) *irx.Expr { return irx.Int(schema.I32, n) }
	accT := irx.ByteT()
	body := irx.Function(20, []*irx.Type{accT, irx.Value(mustMN(t, "i32"))}, irx.Param(20, 0))
	rep := irx.Repeat(i32("0"), i32("10"), body, irx.Cast(irx.ByteT(), irx.Int(schema.U8, "0")))
	ty := mustType(t, rep)
	if ty.Kind != irx.ByteKind {
		t.Fatalf("Repeat type = %s", ty)
	}
}

func TestPairFstSnd(t *testing.T) {
	p := irx.MkPair(irx.Int(schema.U8, "1"), irx.Bool(true))
	ty := mustType(t, p)
	if ty.Kind != irx.PairKind {
		t.Fatalf("Pair type = %s", ty)
	}
	if fstTy := mustType(t, irx.Fst(p)); fstTy.String() != "Value(u8)" {
		t.Fatalf("Fst type = %s", fstTy)
	}
	if sndTy := mustType(t, irx.Snd(p)); sndTy.String() != "Value(bool)" {
		t.Fatalf("Snd type = %s", sndTy)
	}
	roundTrip(t, p)
}

func TestCastU16ToWord(t *testing.T) {
	c := irx.Cast(irx.WordT(), irx.Int(schema.U16, "3"))
	ty := mustType(t, c)
	if ty.Kind != irx.WordKind {
		t.Fatalf("Cast type = %s", ty)
	}
	roundTrip(t, c)
}

func TestOfStringAndToString(t *testing.T) {
	parsed := irx.OfString(schema.U16, irx.Str("12345"))
	ty := mustType(t, parsed)
	if ty.String() != "Value(u16)" {
		t.Fatalf("OfString type = %s", ty)
	}
	roundTrip(t, parsed)

	printed := irx.ToStringExpr(irx.Int(schema.U16, "7"))
	ty2 := mustType(t, printed)
	if ty2.String() != "Value(string)" {
		t.Fatalf("ToString type = %s", ty2)
	}
}

func TestFreeVars(t *testing.T) {
	e := irx.Let("x", irx.Identifier("y"), irx.Add(irx.Identifier("x"), irx.Identifier("z")))
	fv := irx.FreeVars(e)
	if !fv["y"] || !fv["z"] || fv["x"] {
		t.Fatalf("FreeVars = %v, want {y, z}", fv)
	}
}

func TestPrintParseRoundTripComplex(t *testing.T) {
	mnCh, err := schema.Parse("(u8; bool)")
	if err != nil {
		t.Fatal(err)
	}
	e := irx.Let("v", irx.Null(schema.Nullable(mnCh.Type)),
		irx.Choose(irx.IsNull(irx.Identifier("v")), irx.Int(schema.U8, "0"), irx.Int(schema.U8, "1")))
	roundTrip(t, e)
}

func mustMN(t *testing.T, src string) *schema.MaybeNullable {
	t.Helper()
	mn, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("schema.Parse(%q): %v", src, err)
	}
	return mn
}
