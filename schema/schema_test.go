package schema_test

import (
	"strings"
	"testing"

	"github.com/rixed/dessser/schema"
)

func mustParse(t *testing.T, src string) *schema.MaybeNullable {
	t.Helper()
	mn, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return mn
}

func TestRoundTripScalars(t *testing.T) {
	cases := []string{
		"bool", "char", "float", "string",
		"u8", "u16", "u24", "u32", "u40", "u48", "u56", "u64", "u128",
		"i8", "i16", "i24", "i32", "i40", "i48", "i56", "i64", "i128",
		"u8?",
	}
	for _, src := range cases {
		mn := mustParse(t, src)
		printed := schema.Print(mn)
		mn2 := mustParse(t, printed)
		if !schema.EqualMN(mn, mn2) {
			t.Errorf("round trip %q -> %q not equal", src, printed)
		}
	}
}

func TestCaseInsensitiveKeywords(t *testing.T) {
	mn1 := mustParse(t, "BOOLEAN")
	mn2 := mustParse(t, "bool")
	if !schema.EqualMN(mn1, mn2) {
		t.Fatalf("BOOLEAN should parse the same as bool")
	}
}

func TestRoundTripCompounds(t *testing.T) {
	cases := []string{
		"(u8; bool)",
		"{a: u8; b: string?}",
		"char[2]",
		"u8[]",
		"u8[string]",
		"(u8; bool[string])[]?[string?[u8?]]",
	}
	for _, src := range cases {
		mn := mustParse(t, src)
		printed := schema.Print(mn)
		mn2, err := schema.Parse(printed)
		if err != nil {
			t.Fatalf("re-parsing printed form %q of %q: %v", printed, src, err)
		}
		if !schema.EqualMN(mn, mn2) {
			t.Errorf("round trip %q -> %q not structurally equal", src, printed)
		}
	}
}

func TestCommentsAndBlanks(t *testing.T) {
	mn := mustParse(t, "  { -- a comment\n  a : u8 ; -- another\n  b : bool }  ")
	if mn.Type.Kind != schema.RecValue || len(mn.Type.Rec) != 2 {
		t.Fatalf("expected a 2-field record, got %#v", mn.Type)
	}
}

func TestVectorDimensionMustBePositive(t *testing.T) {
	if _, err := schema.Parse("u8[0]"); err == nil {
		t.Fatalf("expected an error for zero-dimension vector")
	}
}

func TestDuplicateRecordFields(t *testing.T) {
	if _, err := schema.Parse("{a: u8; a: bool}"); err == nil {
		t.Fatalf("expected an error for duplicate record field")
	}
}

func TestUnknownUserType(t *testing.T) {
	if _, err := schema.Parse("nope"); err == nil {
		t.Fatalf("expected an error for unknown user type")
	}
}

func TestUserTypeRegistrationIsOneShot(t *testing.T) {
	cat := schema.NewCatalogue()
	ipv4 := &schema.UserType{Name: "Ipv4", Def: schema.NewScalar(schema.U32)}
	if _, err := cat.Register(ipv4); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := cat.Register(ipv4); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	mn, err := schema.ParseWith("Ipv4", cat)
	if err != nil {
		t.Fatalf("parsing registered user type: %v", err)
	}
	if mn.Type.Kind != schema.UserValue || mn.Type.User.Name != "Ipv4" {
		t.Fatalf("expected a User(Ipv4) value-type, got %#v", mn.Type)
	}
}

func TestUserTypeEqualityByNameOnly(t *testing.T) {
	a := &schema.UserType{Name: "Ipv4", Def: schema.NewScalar(schema.U32)}
	b := &schema.UserType{Name: "Ipv4", Def: schema.NewScalar(schema.U64)} // deliberately inconsistent def
	if !a.Equal(b) {
		t.Fatalf("user types with the same name must compare equal regardless of Def")
	}
}

func TestNavigatePath(t *testing.T) {
	mn := mustParse(t, "{a: u8; b: (bool; char)[3]}")

	aField, err := schema.Navigate(mn, schema.Path{0})
	if err != nil || aField.Type.Scalar != schema.U8 {
		t.Fatalf("navigating to field a: %v, %#v", err, aField)
	}

	bField, err := schema.Navigate(mn, schema.Path{1})
	if err != nil || bField.Type.Kind != schema.VecValue {
		t.Fatalf("navigating to field b: %v, %#v", err, bField)
	}

	elt, err := schema.Navigate(mn, schema.Path{1, 2, 0})
	if err != nil || elt.Type.Kind != schema.ScalarValue || elt.Type.Scalar != schema.Bool {
		t.Fatalf("navigating into tuple element: %v, %#v", err, elt)
	}

	if _, err := schema.Navigate(mn, schema.Path{1, 3, 0}); err == nil {
		t.Fatalf("expected out-of-bounds vector index to fail")
	}
}

func TestNavigateCrossesNullableAndUserTypeTransparently(t *testing.T) {
	cat := schema.NewCatalogue()
	ipv4 := &schema.UserType{Name: "Ipv4Test", Def: schema.NewScalar(schema.U32)}
	if _, err := cat.Register(ipv4); err != nil {
		t.Fatal(err)
	}
	mn, err := schema.ParseWith("{addr: Ipv4Test?}", cat)
	if err != nil {
		t.Fatal(err)
	}
	addr, err := schema.Navigate(mn, schema.Path{0})
	if err != nil {
		t.Fatal(err)
	}
	if !addr.Nullable || addr.Type.Kind != schema.UserValue {
		t.Fatalf("expected Nullable(User(Ipv4Test)), got %#v", addr)
	}
}

func TestNavigateIntoMapOrScalarIsAnError(t *testing.T) {
	mn := mustParse(t, "u8[string]")
	if _, err := schema.Navigate(mn, schema.Path{0}); err == nil {
		t.Fatalf("expected navigating into a map to fail")
	}
	scalar := mustParse(t, "u8")
	if _, err := schema.Navigate(scalar, schema.Path{0}); err == nil {
		t.Fatalf("expected navigating into a scalar to fail")
	}
}

func TestEqualStructural(t *testing.T) {
	a := mustParse(t, "{a: u8; b: string?}")
	b := mustParse(t, "{ a : u8 ; b : string ? }")
	if !schema.EqualMN(a, b) {
		t.Fatalf("expected structurally identical schemas parsed with different whitespace to be equal")
	}
	c := mustParse(t, "{a: u8; b: string}")
	if schema.EqualMN(a, c) {
		t.Fatalf("nullability difference must break equality")
	}
}

func TestFieldIndex(t *testing.T) {
	mn := mustParse(t, "{a: u8; b: bool}")
	i, err := schema.FieldIndex(mn.Type, "b")
	if err != nil || i != 1 {
		t.Fatalf("FieldIndex(b) = %d, %v; want 1, nil", i, err)
	}
}

func TestPathString(t *testing.T) {
	p := schema.Path{1, 2}
	if got, want := p.String(), "[1][2]"; got != want {
		t.Fatalf("Path.String() = %q, want %q", got, want)
	}
}

func TestTrailingInputRejected(t *testing.T) {
	_, err := schema.Parse("u8 garbage")
	if err == nil {
		t.Fatalf("expected trailing input to be rejected")
	}
	if !strings.Contains(err.Error(), "unexpected") {
		t.Fatalf("expected an 'unexpected' error, got %v", err)
	}
}
