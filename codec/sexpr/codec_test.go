package sexpr_test

import (
	"testing"

	"github.com/rixed/dessser/codec"
	"github.com/rixed/dessser/codec/sexpr"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// wrapDataPtrFn closes body (built from a DataPtr parameter) into a
// Function(DataPtr) -> T and type-checks it, mirroring how a backend
// would see the same expression once lowered by the generic driver.
func wrapDataPtrFn(t *testing.T, build func(ptr *irx.Expr) (*irx.Expr, error)) *irx.Type {
	t.Helper()
	fid := irx.NextFid()
	ptr := irx.Param(fid, 0)
	body, err := build(ptr)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fn := irx.Function(fid, []*irx.Type{irx.DataPtr()}, body)
	typ, err := irx.TypeOf(nil, fn)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	return typ
}

func TestDScalarBoolTypes(t *testing.T) {
	d := sexpr.NewDeserializer()
	typ := wrapDataPtrFn(t, func(ptr *irx.Expr) (*irx.Expr, error) {
		return d.DScalar(nil, schema.Bool, nil, nil, ptr)
	})
	if typ.FuncResult.Kind != irx.PairKind {
		t.Fatalf("DScalar(Bool) result kind = %v, want Pair", typ.FuncResult.Kind)
	}
}

func TestDScalarIntAndStringTypes(t *testing.T) {
	d := sexpr.NewDeserializer()
	for _, k := range []schema.ScalarKind{schema.I32, schema.U64, schema.Float, schema.String, schema.Char} {
		k := k
		typ := wrapDataPtrFn(t, func(ptr *irx.Expr) (*irx.Expr, error) {
			return d.DScalar(nil, k, nil, nil, ptr)
		})
		if typ.FuncResult.Kind != irx.PairKind {
			t.Fatalf("DScalar(%v) result kind = %v, want Pair", k, typ.FuncResult.Kind)
		}
	}
}

func TestSScalarRoundTripTypes(t *testing.T) {
	s := sexpr.NewSerializer()
	i32MN := schema.NotNullable(schema.NewScalar(schema.I32))
	fid := irx.NextFid()
	ptr := irx.Param(fid, 1)
	value := irx.Param(fid, 0)
	body, err := s.SScalar(nil, schema.I32, nil, nil, value, ptr)
	if err != nil {
		t.Fatalf("SScalar: %v", err)
	}
	fn := irx.Function(fid, []*irx.Type{irx.Value(i32MN), irx.DataPtr()}, body)
	typ, err := irx.TypeOf(nil, fn)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	if typ.FuncResult.Kind != irx.DataPtrKind {
		t.Fatalf("SScalar(i32) result kind = %v, want DataPtr", typ.FuncResult.Kind)
	}
}

func TestIsNullProbeIsBit(t *testing.T) {
	d := sexpr.NewDeserializer()
	typ := wrapDataPtrFn(t, func(ptr *irx.Expr) (*irx.Expr, error) {
		return d.IsNull(nil, nil, nil, ptr)
	})
	if typ.FuncResult.Kind != irx.BitKind {
		t.Fatalf("IsNull result kind = %v, want Bit", typ.FuncResult.Kind)
	}
}

func TestTupFramingTypes(t *testing.T) {
	d := sexpr.NewDeserializer()
	s := sexpr.NewSerializer()
	for _, call := range []func(ptr *irx.Expr) (*irx.Expr, error){
		func(ptr *irx.Expr) (*irx.Expr, error) { return d.TupOpn(nil, nil, nil, ptr) },
		func(ptr *irx.Expr) (*irx.Expr, error) { return d.TupSep(nil, 1, nil, nil, ptr) },
		func(ptr *irx.Expr) (*irx.Expr, error) { return d.TupCls(nil, nil, nil, ptr) },
		func(ptr *irx.Expr) (*irx.Expr, error) { return s.TupOpn(nil, nil, nil, ptr) },
		func(ptr *irx.Expr) (*irx.Expr, error) { return s.TupSep(nil, 1, nil, nil, ptr) },
		func(ptr *irx.Expr) (*irx.Expr, error) { return s.TupCls(nil, nil, nil, ptr) },
	} {
		typ := wrapDataPtrFn(t, call)
		if typ.FuncResult.Kind != irx.DataPtrKind {
			t.Fatalf("tuple framing result kind = %v, want DataPtr", typ.FuncResult.Kind)
		}
	}
}

func TestListOpnerWithPrefixLength(t *testing.T) {
	d := sexpr.NewDeserializer()
	fid := irx.NextFid()
	ptr := irx.Param(fid, 0)
	opener, afterParen, err := d.ListOpn(nil, nil, nil, ptr)
	if err != nil {
		t.Fatalf("ListOpn: %v", err)
	}
	if opener.Kind != codec.KnownSize {
		t.Fatalf("ListOpn kind = %v, want KnownSize", opener.Kind)
	}
	fn := irx.Function(fid, []*irx.Type{irx.DataPtr()}, irx.MkPair(opener.Count, afterParen))
	if _, err := irx.TypeOf(nil, fn); err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
}

func TestListOpnerWithoutPrefixLength(t *testing.T) {
	d := sexpr.NewDeserializer(sexpr.WithListPrefixLength(false))
	fid := irx.NextFid()
	ptr := irx.Param(fid, 0)
	opener, _, err := d.ListOpn(nil, nil, nil, ptr)
	if err != nil {
		t.Fatalf("ListOpn: %v", err)
	}
	if opener.Kind != codec.UnknownSize {
		t.Fatalf("ListOpn kind = %v, want UnknownSize", opener.Kind)
	}
	if _, err := opener.EndOfList(nil, nil, ptr); err != nil {
		t.Fatalf("EndOfList: %v", err)
	}
}

func TestSerializerListOpnRequiresCountWhenPrefixed(t *testing.T) {
	s := sexpr.NewSerializer()
	ptr := irx.Param(irx.NextFid(), 0)
	if _, err := s.ListOpn(nil, nil, nil, codec.UnknownCount(), ptr); err == nil {
		t.Fatalf("expected an error when list_prefix_length is on but count is unknown")
	}
}

func TestParseFormatI128DecimalRoundTrip(t *testing.T) {
	cases := []string{"0", "-1", "170141183460469231731687303715884105727", "-170141183460469231731687303715884105728"}
	for _, c := range cases {
		v, err := sexpr.ParseI128Decimal(c)
		if err != nil {
			t.Fatalf("ParseI128Decimal(%q): %v", c, err)
		}
		if got := sexpr.FormatI128Decimal(v); got != c {
			t.Fatalf("FormatI128Decimal(ParseI128Decimal(%q)) = %q", c, got)
		}
		if !sexpr.CheckI128Range(v) {
			t.Fatalf("CheckI128Range(%q) = false", c)
		}
	}
}

func TestParseI128DecimalRejectsMalformed(t *testing.T) {
	for _, c := range []string{"", "-", "12x3", "+"} {
		if _, err := sexpr.ParseI128Decimal(c); err == nil {
			t.Fatalf("ParseI128Decimal(%q) should have failed", c)
		}
	}
}

func TestSplitJoinI128RoundTrip(t *testing.T) {
	cases := []string{"0", "1", "-1", "170141183460469231731687303715884105727", "-170141183460469231731687303715884105728"}
	for _, c := range cases {
		v, err := sexpr.ParseI128Decimal(c)
		if err != nil {
			t.Fatalf("ParseI128Decimal(%q): %v", c, err)
		}
		hi, lo := sexpr.SplitI128(v)
		got := sexpr.JoinI128(hi, lo)
		if got.Cmp(v) != 0 {
			t.Fatalf("JoinI128(SplitI128(%s)) = %s, want %s", c, got.Text(10), c)
		}
	}
}

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	src := `hello "world"`
	quoted := sexpr.Quote(src)
	got, err := sexpr.Unquote(quoted)
	if err != nil {
		t.Fatalf("Unquote(%q): %v", quoted, err)
	}
	if got != src {
		t.Fatalf("Unquote(Quote(%q)) = %q", src, got)
	}
}
