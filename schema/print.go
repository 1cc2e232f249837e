package schema

import (
	"strconv"
	"strings"
)

// Print renders mn in the grammar documented on Parse. Print always
// chooses one canonical spelling per construct (e.g. "bool" rather than
// the synonym "boolean") so that Parse(Print(mn)) == mn holds even
// though Parse itself is more permissive.
func Print(mn *MaybeNullable) string {
	var b strings.Builder
	printMN(&b, mn)
	return b.String()
}

func printMN(b *strings.Builder, mn *MaybeNullable) {
	printVT(b, mn.Type)
	if mn.Nullable {
		b.WriteByte('?')
	}
}

func printVT(b *strings.Builder, vt *ValueType) {
	switch vt.Kind {
	case ScalarValue:
		b.WriteString(scalarNames[vt.Scalar])
	case UserValue:
		b.WriteString(vt.User.Name)
	case TupValue:
		b.WriteByte('(')
		for i, c := range vt.Tup {
			if i > 0 {
				b.WriteString("; ")
			}
			printMN(b, c)
		}
		b.WriteByte(')')
	case RecValue:
		b.WriteByte('{')
		for i, f := range vt.Rec {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			printMN(b, f.Type)
		}
		b.WriteByte('}')
	case VecValue:
		printMN(b, vt.Elem)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(vt.VecDim))
		b.WriteByte(']')
	case ListValue:
		printMN(b, vt.Elem)
		b.WriteString("[]")
	case MapValue:
		printMN(b, vt.MapVal)
		b.WriteByte('[')
		printMN(b, vt.MapKey)
		b.WriteByte(']')
	}
}
