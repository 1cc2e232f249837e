package schema

import "fmt"

// ValueKind tags the shape of a ValueType. Following the Design Notes'
// recommendation for representing a sum-typed tree in a systems
// language, ValueType is a single struct carrying one tag plus the
// payload fields relevant to that tag, rather than an interface with
// seven implementations.
type ValueKind int

const (
	ScalarValue ValueKind = iota
	UserValue
	VecValue
	ListValue
	TupValue
	RecValue
	MapValue
)

// MaybeNullable wraps a ValueType with the nullable bit from the
// grammar's trailing '?'.
type MaybeNullable struct {
	Type     *ValueType
	Nullable bool
}

func NotNullable(vt *ValueType) *MaybeNullable { return &MaybeNullable{Type: vt} }
func Nullable(vt *ValueType) *MaybeNullable    { return &MaybeNullable{Type: vt, Nullable: true} }

// RecField is one named, typed slot of a Rec value-type. Field names
// must be unique within a Rec (§3.4).
type RecField struct {
	Name string
	Type *MaybeNullable
}

// ValueType is one of: a machine Scalar; a named User-type refinement;
// Vec(dim, elem) with dim>=1; List(elem); Tup(children...) with at
// least one child; Rec(fields...) with unique field names; or
// Map(key, val), which is declared for type expressions only — no
// runtime value of Map shape is ever constructed (walking into one is
// always a navigation error, and the generic driver treats it as a
// static error to reach one).
type ValueType struct {
	Kind ValueKind

	Scalar ScalarKind // ScalarValue
	User   *UserType  // UserValue

	VecDim int            // VecValue
	Elem   *MaybeNullable // VecValue, ListValue

	Tup []*MaybeNullable // TupValue
	Rec []RecField        // RecValue

	MapKey *MaybeNullable // MapValue
	MapVal *MaybeNullable // MapValue
}

func NewScalar(k ScalarKind) *ValueType { return &ValueType{Kind: ScalarValue, Scalar: k} }

func NewUser(ut *UserType) *ValueType { return &ValueType{Kind: UserValue, User: ut} }

// NewVec builds a Vec(n, elem); n must be >= 1 per §3.1/§3.4.
func NewVec(n int, elem *MaybeNullable) (*ValueType, error) {
	if n < 1 {
		return nil, fmt.Errorf("schema: vector dimension must be >= 1, got %d", n)
	}
	return &ValueType{Kind: VecValue, VecDim: n, Elem: elem}, nil
}

func NewList(elem *MaybeNullable) *ValueType {
	return &ValueType{Kind: ListValue, Elem: elem}
}

// NewTup builds Tup(children...); at least one child is required (k>=1).
func NewTup(children ...*MaybeNullable) (*ValueType, error) {
	if len(children) < 1 {
		return nil, fmt.Errorf("schema: tuple must have at least one child")
	}
	return &ValueType{Kind: TupValue, Tup: children}, nil
}

// NewRec builds Rec(fields...); field names must be unique.
func NewRec(fields ...RecField) (*ValueType, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("schema: duplicate record field %q", f.Name)
		}
		seen[f.Name] = true
	}
	return &ValueType{Kind: RecValue, Rec: fields}, nil
}

func NewMap(key, val *MaybeNullable) *ValueType {
	return &ValueType{Kind: MapValue, MapKey: key, MapVal: val}
}

func (vt *ValueType) String() string { return Print(NotNullable(vt)) }

func (mn *MaybeNullable) String() string { return Print(mn) }
