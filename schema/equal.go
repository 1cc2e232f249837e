package schema

// Equal implements structural equality of value-types, with the one
// concession §3.1 calls out: two user types are equal iff their names
// match.
func Equal(a, b *ValueType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ScalarValue:
		return a.Scalar == b.Scalar
	case UserValue:
		return a.User.Equal(b.User)
	case VecValue:
		return a.VecDim == b.VecDim && EqualMN(a.Elem, b.Elem)
	case ListValue:
		return EqualMN(a.Elem, b.Elem)
	case TupValue:
		if len(a.Tup) != len(b.Tup) {
			return false
		}
		for i := range a.Tup {
			if !EqualMN(a.Tup[i], b.Tup[i]) {
				return false
			}
		}
		return true
	case RecValue:
		if len(a.Rec) != len(b.Rec) {
			return false
		}
		for i := range a.Rec {
			if a.Rec[i].Name != b.Rec[i].Name || !EqualMN(a.Rec[i].Type, b.Rec[i].Type) {
				return false
			}
		}
		return true
	case MapValue:
		return EqualMN(a.MapKey, b.MapKey) && EqualMN(a.MapVal, b.MapVal)
	default:
		return false
	}
}

func EqualMN(a, b *MaybeNullable) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Nullable == b.Nullable && Equal(a.Type, b.Type)
}
