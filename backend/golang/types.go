package golang

import (
	"fmt"

	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// goType maps an IR type to its Go spelling in generated source. Scalar
// Value types map to native Go numeric types where one exists exactly
// (matching width and signedness) and to dessserrt.I128 for the two
// 128-bit kinds a native Go type cannot hold.
func goType(t *irx.Type) (string, error) {
	switch t.Kind {
	case irx.VoidKind:
		return "struct{}", nil
	case irx.DataPtrKind:
		return "dessserrt.Ptr", nil
	case irx.ValuePtrKind:
		gt, err := goValueType(t.MN)
		if err != nil {
			return "", err
		}
		return "*" + gt, nil
	case irx.SizeKind:
		return "int", nil
	case irx.BitKind:
		return "bool", nil
	case irx.ByteKind:
		return "byte", nil
	case irx.WordKind:
		return "uint16", nil
	case irx.DWordKind:
		return "uint32", nil
	case irx.QWordKind:
		return "uint64", nil
	case irx.OWordKind:
		return "dessserrt.I128", nil
	case irx.BytesKind:
		return "[]byte", nil
	case irx.PairKind:
		a, err := goType(t.Elems[0])
		if err != nil {
			return "", err
		}
		b, err := goType(t.Elems[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("dessserrt.Pair[%s, %s]", a, b), nil
	case irx.FunctionKind:
		args := make([]string, len(t.FuncArgs))
		for i, a := range t.FuncArgs {
			g, err := goType(a)
			if err != nil {
				return "", err
			}
			args[i] = g
		}
		res, err := goType(t.FuncResult)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("func(%s) %s", joinComma(args), res), nil
	case irx.ValueKind:
		return goValueType(t.MN)
	default:
		return "", fmt.Errorf("golang backend: unsupported IR type kind %v", t.Kind)
	}
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// goValueType maps a schema.MaybeNullable to a Go type: nullable values
// become pointers (nil standing in for null), matching the idiom
// gomap/codegen's own generated struct fields use for optional fields
// (gomap/codegen/type_mapping.go's pointer wrapping for Go's zero-value
// ambiguity on scalars).
func goValueType(mn *schema.MaybeNullable) (string, error) {
	inner, err := goScalarOrCompound(mn.Type)
	if err != nil {
		return "", err
	}
	if mn.Nullable {
		return "*" + inner, nil
	}
	return inner, nil
}

func goScalarOrCompound(vt *schema.ValueType) (string, error) {
	switch vt.Kind {
	case schema.ScalarValue:
		return goScalarType(vt.Scalar)
	case schema.UserValue:
		return sanitizeIdent(vt.User.Name), nil
	case schema.VecValue:
		elem, err := goValueType(vt.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%d]%s", vt.VecDim, elem), nil
	case schema.ListValue:
		elem, err := goValueType(vt.Elem)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case schema.TupValue:
		fields := make([]string, len(vt.Tup))
		for i, mn := range vt.Tup {
			f, err := goValueType(mn)
			if err != nil {
				return "", err
			}
			fields[i] = fmt.Sprintf("F%d %s", i, f)
		}
		return fmt.Sprintf("struct{ %s }", joinSemi(fields)), nil
	case schema.RecValue:
		fields := make([]string, len(vt.Rec))
		for i, f := range vt.Rec {
			ft, err := goValueType(f.Type)
			if err != nil {
				return "", err
			}
			fields[i] = fmt.Sprintf("%s %s", exportedField(f.Name), ft)
		}
		return fmt.Sprintf("struct{ %s }", joinSemi(fields)), nil
	case schema.MapValue:
		return "", fmt.Errorf("golang backend: Map has no runtime value representation (schema §3.1)")
	default:
		return "", fmt.Errorf("golang backend: unsupported value kind %v", vt.Kind)
	}
}

func joinSemi(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}

func exportedField(name string) string {
	id := sanitizeIdent(name)
	if id == "" {
		return "F"
	}
	if id[0] >= 'a' && id[0] <= 'z' {
		return string(id[0]-32) + id[1:]
	}
	return id
}

func sanitizeIdent(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

func goScalarType(k schema.ScalarKind) (string, error) {
	switch k {
	case schema.Bool:
		return "bool", nil
	case schema.Char:
		return "rune", nil
	case schema.Float:
		return "float64", nil
	case schema.String:
		return "string", nil
	case schema.U8:
		return "uint8", nil
	case schema.U16:
		return "uint16", nil
	case schema.U24, schema.U32:
		return "uint32", nil
	case schema.U40, schema.U48, schema.U56, schema.U64:
		return "uint64", nil
	case schema.U128:
		return "dessserrt.I128", nil
	case schema.I8:
		return "int8", nil
	case schema.I16:
		return "int16", nil
	case schema.I24, schema.I32:
		return "int32", nil
	case schema.I40, schema.I48, schema.I56, schema.I64:
		return "int64", nil
	case schema.I128:
		return "dessserrt.I128", nil
	default:
		return "", fmt.Errorf("golang backend: unsupported scalar kind %v", k)
	}
}
