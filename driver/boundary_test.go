package driver_test

import (
	"testing"

	"github.com/rixed/dessser/codec/sexpr"
	"github.com/rixed/dessser/driver"
	"github.com/rixed/dessser/interp"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// buildDesser wraps a Desser recursion between two sexpr codec
// instances into a callable Function(DataPtr, DataPtr), the same shape
// wrapDesser builds in driver_test.go but returned unwrapped (as an *irx.Expr, not
// its type) so interp.Run can actually execute it.
func buildDesser(t *testing.T, root *schema.MaybeNullable, opts ...sexpr.Option) *irx.Expr {
	t.Helper()
	D := sexpr.NewDeserializer(opts...)
	S := sexpr.NewSerializer(opts...)
	fid := irx.NextFid()
	src := irx.Param(fid, 0)
	dst := irx.Param(fid, 1)
	body, err := driver.Desser(D, S, root, src, dst)
	if err != nil {
		t.Fatalf("Desser: %v", err)
	}
	fn := irx.Function(fid, []*irx.Type{irx.DataPtr(), irx.DataPtr()}, body)
	if _, err := irx.TypeOf(nil, fn); err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	return fn
}

// reencode decodes input through D and immediately re-encodes through
// S, the same sexpr instance standing in for both ends of the wire so
// a boundary case can be checked against literal bytes without a heap
// codec to materialize into (package driver ships none — see
// driver/heap.go).
func reencode(t *testing.T, root *schema.MaybeNullable, input string, opts ...sexpr.Option) string {
	t.Helper()
	fn := buildDesser(t, root, opts...)
	src := interp.NewReader([]byte(input))
	dst := interp.NewWriter()
	res, err := interp.Run(fn, src, dst)
	if err != nil {
		t.Fatalf("interp.Run: %v", err)
	}
	p, ok := res.(*interp.Pair)
	if !ok {
		t.Fatalf("Desser result = %T, want *interp.Pair", res)
	}
	out, ok := p.B.(*interp.Cursor)
	if !ok {
		t.Fatalf("Desser dst = %T, want *interp.Cursor", p.B)
	}
	return string(out.Bytes())
}

// Scenario 1: a lone scalar round-trips through its unquoted token
// spelling byte for byte.
func TestBoundaryScalarToken(t *testing.T) {
	root := schema.NotNullable(schema.NewScalar(schema.U8))
	got := reencode(t, root, "0")
	if got != "0" {
		t.Fatalf("round trip = %q, want %q", got, "0")
	}
}

// Scenario 2: an empty list, prefixed by its decimal element count,
// round-trips with no elements consumed or emitted.
func TestBoundaryEmptyList(t *testing.T) {
	root, err := schema.Parse("u8[]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := reencode(t, root, "0 ()")
	if got != "0 ()" {
		t.Fatalf("round trip = %q, want %q", got, "0 ()")
	}
}

// Scenario 3: a nullable record field spelled as the "null" literal
// round-trips without ever touching the field's String branch.
func TestBoundaryNullableRecordField(t *testing.T) {
	root, err := schema.Parse("{a: u8; b: string?}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := reencode(t, root, "(42 null)")
	if got != "(42 null)" {
		t.Fatalf("round trip = %q, want %q", got, "(42 null)")
	}
}

// Scenario 4: a fixed-size vector of chars round-trips element by
// element with no count prefix and no loop machinery at all.
func TestBoundaryCharVector(t *testing.T) {
	root, err := schema.Parse("char[2]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := reencode(t, root, `("a" "b")`)
	if got != `("a" "b")` {
		t.Fatalf("round trip = %q, want %q", got, `("a" "b")`)
	}
}

// Scenario 5: a schema nesting tuples, lists, vectors, maps and
// nullability several levels deep. The original boundary case
// round-trips a value of this shape against RowBinary, a collaborator
// out of scope here (SPEC_FULL.md §1); what's checked instead is that
// the schema's own text form is stable under Print(Parse(.)) — which
// holds regardless of Map, since schema.Parse/Print need no driver
// support — and that a Map-free schema of comparable nesting depth
// (list of tuples of a scalar and a fixed vector, nullable) survives
// an sexpr round trip, since package driver has no Map case at all
// (driver.go's dispatch errors on schema.MapValue).
func TestBoundaryNestedSchema(t *testing.T) {
	text := "(u8; bool[string])[]?[string?[u8?]]"
	mn, err := schema.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := schema.Print(mn); got != text {
		t.Fatalf("Print(Parse(%q)) = %q, want %q", text, got, text)
	}

	elem, err := schema.Parse("(u8; bool[2])[]?")
	if err != nil {
		t.Fatalf("Parse element type: %v", err)
	}
	const wire = "1 ((1 (T F)))"
	got := reencode(t, elem, wire)
	if got != wire {
		t.Fatalf("round trip = %q, want %q", got, wire)
	}
}

// Scenario 6: a 128-bit integer round-trips its full decimal spelling
// through the Value(i128) path's big.Int-based OfString/ToString
// rather than through any host machine-word arithmetic.
func TestBoundaryI128Decimal(t *testing.T) {
	root := schema.NotNullable(schema.NewScalar(schema.I128))
	const want = "85070591730234615865843651857942052864" // 2^126
	got := reencode(t, root, want)
	if got != want {
		t.Fatalf("round trip = %q, want %q", got, want)
	}
}

// WithListPrefixLength(false) switches codec/sexpr's list framing to
// rely solely on the closing ')' — the other of the two ListOpener
// strategies driver.walkList builds, exercised nowhere else in this
// package's tests.
func TestBoundaryUnknownSizeList(t *testing.T) {
	root, err := schema.Parse("u8[]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := reencode(t, root, "(1 2 3)", sexpr.WithListPrefixLength(false))
	if got != "(1 2 3)" {
		t.Fatalf("round trip = %q, want %q", got, "(1 2 3)")
	}
}
