// Package irx is the staged expression intermediate representation: a
// typed IR of programs producing pointers, bytes, integers, pairs, and
// user values. Grounded on package ir's ir.Node — a single tagged
// struct carrying whichever payload fields its Op needs — but irx.Expr
// is statically typed against irx.Type rather than dynamically typed
// like a Tony document, since every dessser expression is specialised
// to one schema at generation time (no runtime reflection, §1
// Non-goals).
package irx

import (
	"fmt"
	"strings"

	"github.com/rixed/dessser/schema"
)

// Kind tags the shape of a low-level IR Type (§3.2).
type Kind int

const (
	VoidKind Kind = iota
	DataPtrKind
	ValuePtrKind
	SizeKind
	BitKind
	ByteKind
	WordKind
	DWordKind
	QWordKind
	OWordKind
	BytesKind
	PairKind
	FunctionKind
	ValueKind
)

func (k Kind) String() string {
	names := [...]string{
		"Void", "DataPtr", "ValuePtr", "Size", "Bit", "Byte", "Word",
		"DWord", "QWord", "OWord", "Bytes", "Pair", "Function", "Value",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "<invalid-kind>"
}

// Type is a low-level IR type: one of Void, DataPtr, ValuePtr(mn),
// Size, Bit, Byte, Word, DWord, QWord, OWord, Bytes, Pair(t1,t2),
// Function(args,result), or Value(mn).
type Type struct {
	Kind Kind

	MN *schema.MaybeNullable // ValuePtrKind, ValueKind

	Elems [2]*Type // PairKind

	FuncArgs   []*Type // FunctionKind
	FuncResult *Type   // FunctionKind
}

func Void() *Type     { return &Type{Kind: VoidKind} }
func DataPtr() *Type  { return &Type{Kind: DataPtrKind} }
func SizeT() *Type    { return &Type{Kind: SizeKind} }
func BitT() *Type     { return &Type{Kind: BitKind} }
func ByteT() *Type    { return &Type{Kind: ByteKind} }
func WordT() *Type    { return &Type{Kind: WordKind} }
func DWordT() *Type   { return &Type{Kind: DWordKind} }
func QWordT() *Type   { return &Type{Kind: QWordKind} }
func OWordT() *Type   { return &Type{Kind: OWordKind} }
func BytesT() *Type   { return &Type{Kind: BytesKind} }

func ValuePtr(mn *schema.MaybeNullable) *Type { return &Type{Kind: ValuePtrKind, MN: mn} }
func Value(mn *schema.MaybeNullable) *Type    { return &Type{Kind: ValueKind, MN: mn} }

func PairT(a, b *Type) *Type { return &Type{Kind: PairKind, Elems: [2]*Type{a, b}} }

func FunctionT(args []*Type, result *Type) *Type {
	return &Type{Kind: FunctionKind, FuncArgs: args, FuncResult: result}
}

// Equal is structural equality of IR types (§3.2).
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case ValuePtrKind, ValueKind:
		return schema.EqualMN(t.MN, o.MN)
	case PairKind:
		return t.Elems[0].Equal(o.Elems[0]) && t.Elems[1].Equal(o.Elems[1])
	case FunctionKind:
		if len(t.FuncArgs) != len(o.FuncArgs) {
			return false
		}
		for i := range t.FuncArgs {
			if !t.FuncArgs[i].Equal(o.FuncArgs[i]) {
				return false
			}
		}
		return t.FuncResult.Equal(o.FuncResult)
	default:
		return true
	}
}

func (t *Type) String() string {
	var b strings.Builder
	t.print(&b)
	return b.String()
}

func (t *Type) print(b *strings.Builder) {
	switch t.Kind {
	case ValuePtrKind:
		fmt.Fprintf(b, "ValuePtr(%s)", schema.Print(t.MN))
	case ValueKind:
		fmt.Fprintf(b, "Value(%s)", schema.Print(t.MN))
	case PairKind:
		b.WriteString("Pair(")
		t.Elems[0].print(b)
		b.WriteString(", ")
		t.Elems[1].print(b)
		b.WriteByte(')')
	case FunctionKind:
		b.WriteString("Function(")
		for i, a := range t.FuncArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			a.print(b)
		}
		b.WriteString(") -> ")
		t.FuncResult.print(b)
	default:
		b.WriteString(t.Kind.String())
	}
}

// IsNumeric reports whether t is one of the IR types arithmetic and
// comparison operators accept (§4.2: "drawn from the numeric set").
func (t *Type) IsNumeric() bool {
	switch t.Kind {
	case SizeKind, BitKind, ByteKind, WordKind, DWordKind, QWordKind, OWordKind:
		return true
	case ValueKind:
		return t.MN != nil && !t.MN.Nullable && t.MN.Type.Kind == schema.ScalarValue &&
			t.MN.Type.Scalar != schema.String && t.MN.Type.Scalar != schema.Char
	default:
		return false
	}
}
