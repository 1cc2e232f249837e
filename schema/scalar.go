package schema

// ScalarKind enumerates the fixed, closed set of machine scalars: booleans,
// characters, IEEE-754 doubles, strings, and signed/unsigned integers at
// every width dessser commits to serializing exactly, including the odd
// ones (24/40/48/56 bits) that most wire formats don't offer a native
// primitive for.
type ScalarKind int

const (
	Bool ScalarKind = iota
	Char
	Float
	String
	U8
	U16
	U24
	U32
	U40
	U48
	U56
	U64
	U128
	I8
	I16
	I24
	I32
	I40
	I48
	I56
	I64
	I128
)

// scalarNames gives the canonical spelling Print emits for each scalar.
// Parse accepts this spelling plus the case-insensitive synonyms in
// scalarSynonyms below (keywords match case-insensitively, per the
// schema grammar).
var scalarNames = map[ScalarKind]string{
	Bool:   "bool",
	Char:   "char",
	Float:  "float",
	String: "string",
	U8:     "u8",
	U16:    "u16",
	U24:    "u24",
	U32:    "u32",
	U40:    "u40",
	U48:    "u48",
	U56:    "u56",
	U64:    "u64",
	U128:   "u128",
	I8:     "i8",
	I16:    "i16",
	I24:    "i24",
	I32:    "i32",
	I40:    "i40",
	I48:    "i48",
	I56:    "i56",
	I64:    "i64",
	I128:   "i128",
}

var scalarSynonyms = map[string]ScalarKind{
	"bool":    Bool,
	"boolean": Bool,
	"char":    Char,
	"float":   Float,
	"string":  String,
	"u8":      U8,
	"u16":     U16,
	"u24":     U24,
	"u32":     U32,
	"u40":     U40,
	"u48":     U48,
	"u56":     U56,
	"u64":     U64,
	"u128":    U128,
	"i8":      I8,
	"i16":     I16,
	"i24":     I24,
	"i32":     I32,
	"i40":     I40,
	"i48":     I48,
	"i56":     I56,
	"i64":     I64,
	"i128":    I128,
}

// Width returns the bit width of an integer scalar, and ok=false for
// bool/char/float/string which have no "width" in the integer sense.
func (k ScalarKind) Width() (width int, ok bool) {
	switch k {
	case U8, I8:
		return 8, true
	case U16, I16:
		return 16, true
	case U24, I24:
		return 24, true
	case U32, I32:
		return 32, true
	case U40, I40:
		return 40, true
	case U48, I48:
		return 48, true
	case U56, I56:
		return 56, true
	case U64, I64:
		return 64, true
	case U128, I128:
		return 128, true
	default:
		return 0, false
	}
}

func (k ScalarKind) Signed() bool {
	switch k {
	case I8, I16, I24, I32, I40, I48, I56, I64, I128:
		return true
	default:
		return false
	}
}

func (k ScalarKind) String() string {
	if s, ok := scalarNames[k]; ok {
		return s
	}
	return "<invalid-scalar>"
}
