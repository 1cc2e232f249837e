package schema

import (
	"fmt"
	"strings"
)

// Path is a finite ordered sequence of non-negative child indices
// addressing a subtree of a schema. The empty path denotes the root.
// Follows the kpath navigation style (ir/kpath.go): a per-kind
// switch walking one index at a time, except our indices are always
// positional (tuples and records are selected by child index, not by
// name) since that is how §3.1 defines Path.
type Path []int

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprintf("[%d]", idx)
	}
	return strings.Join(parts, "")
}

// Navigate walks mn according to path, returning the MaybeNullable at
// that subtree. Nullable wrappers and user-type defs are crossed
// transparently (they do not themselves consume a path element); Vec
// and Tup/Rec indices are bounds-checked against the static dimension;
// List has no static dimension, so no bound is enforced; Map and
// scalars are terminal — navigating into either is an error.
func Navigate(mn *MaybeNullable, path Path) (*MaybeNullable, error) {
	cur := mn
	for i, idx := range path {
		if idx < 0 {
			return nil, fmt.Errorf("schema: negative path index %d at %s", idx, path[:i])
		}
		vt := deref(cur.Type)
		switch vt.Kind {
		case VecValue:
			if idx >= vt.VecDim {
				return nil, fmt.Errorf("schema: index %d out of bounds for vec[%d] at %s", idx, vt.VecDim, path[:i])
			}
			cur = vt.Elem
		case ListValue:
			cur = vt.Elem
		case TupValue:
			if idx >= len(vt.Tup) {
				return nil, fmt.Errorf("schema: index %d out of bounds for tuple of %d at %s", idx, len(vt.Tup), path[:i])
			}
			cur = vt.Tup[idx]
		case RecValue:
			if idx >= len(vt.Rec) {
				return nil, fmt.Errorf("schema: index %d out of bounds for record of %d fields at %s", idx, len(vt.Rec), path[:i])
			}
			cur = vt.Rec[idx].Type
		case MapValue:
			return nil, fmt.Errorf("schema: cannot navigate into a map at %s", path[:i])
		case ScalarValue:
			return nil, fmt.Errorf("schema: cannot navigate into scalar %s at %s", vt.Scalar, path[:i])
		default:
			return nil, fmt.Errorf("schema: cannot navigate at %s", path[:i])
		}
	}
	return cur, nil
}

// deref follows user-type Defs transparently, as Navigate requires.
func deref(vt *ValueType) *ValueType {
	for vt.Kind == UserValue {
		vt = vt.User.Def
	}
	return vt
}

// FieldIndex returns the child index of a named Rec field, for callers
// that know field names rather than positions (e.g. the generic driver
// walking a record, §4.4).
func FieldIndex(vt *ValueType, name string) (int, error) {
	vt = deref(vt)
	if vt.Kind != RecValue {
		return 0, fmt.Errorf("schema: not a record: %s", vt)
	}
	for i, f := range vt.Rec {
		if f.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("schema: record has no field %q", name)
}
