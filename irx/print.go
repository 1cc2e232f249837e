package irx

import (
	"fmt"
	"strings"

	"github.com/rixed/dessser/schema"
)

var opNames = map[Op]string{
	OpBoolConst: "Bool", OpCharConst: "Char", OpFloatConst: "Float",
	OpStringConst: "String", OpIntConst: "Int", OpNullConst: "Null",
	OpIdentifier: "Identifier", OpParam: "Param", OpLet: "Let",
	OpFunction: "Function", OpSeq: "Seq",
	OpNot: "Not", OpLogNot: "LogNot", OpIsNull: "IsNull",
	OpToNullable: "ToNullable", OpToNotNullable: "ToNotNullable",
	OpFst: "Fst", OpSnd: "Snd", OpStringLength: "StringLength",
	OpListLength: "ListLength", OpRemSize: "RemSize",
	OpDataPtrPush: "DataPtrPush", OpDataPtrPop: "DataPtrPop",
	OpDerefValuePtr: "DerefValuePtr", OpDump: "Dump", OpIgnore: "Ignore",
	OpReadByte: "ReadByte", OpCast: "Cast", OpOfString: "OfString",
	OpToString: "ToString",
	OpGt: "Gt", OpGe: "Ge", OpEq: "Eq", OpNe: "Ne",
	OpAdd: "Add", OpSub: "Sub", OpMul: "Mul", OpDiv: "Div", OpRem: "Rem",
	OpLogAnd: "LogAnd", OpLogOr: "LogOr", OpLogXor: "LogXor",
	OpLeftShift: "LeftShift", OpRightShift: "RightShift",
	OpAppendBytes: "AppendBytes", OpAppendString: "AppendString",
	OpTestBit: "TestBit", OpReadBytes: "ReadBytes", OpPeekByte: "PeekByte",
	OpWriteByte: "WriteByte", OpWriteBytes: "WriteBytes", OpPokeByte: "PokeByte",
	OpDataPtrAdd: "DataPtrAdd", OpDataPtrSub: "DataPtrSub",
	OpCoalesce: "Coalesce", OpPair: "Pair", OpMapPair: "MapPair",
	OpReadWord: "ReadWord", OpWriteWord: "WriteWord", OpPeekWord: "PeekWord",
	OpReadDWord: "ReadDWord", OpWriteDWord: "WriteDWord", OpPeekDWord: "PeekDWord",
	OpReadQWord: "ReadQWord", OpWriteQWord: "WriteQWord", OpPeekQWord: "PeekQWord",
	OpReadOWord: "ReadOWord", OpWriteOWord: "WriteOWord", OpPeekOWord: "PeekOWord",
	OpSetBit: "SetBit", OpBlitByte: "BlitByte", OpChoose: "Choose",
	OpLoopWhile: "LoopWhile", OpLoopUntil: "LoopUntil",
	OpReadWhile: "ReadWhile", OpRepeat: "Repeat",
}

var opByName map[string]Op

func init() {
	opByName = make(map[string]Op, len(opNames))
	for op, name := range opNames {
		opByName[name] = op
	}
}

// Print renders e in the textual form Parse accepts: one constructor
// name followed by its parenthesised operands, in source order. It is
// meant for debug dumps and golden-file tests, not for generated
// output (that is the backend's job, §4.6).
func Print(e *Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func printExpr(b *strings.Builder, e *Expr) {
	switch e.Op {
	case OpBoolConst:
		fmt.Fprintf(b, "%t", e.BoolVal)
		return
	case OpCharConst:
		fmt.Fprintf(b, "%q", e.CharVal)
		return
	case OpFloatConst:
		fmt.Fprintf(b, "%g", e.FloatVal)
		return
	case OpStringConst:
		b.WriteString(quoteIR(e.StrVal))
		return
	case OpIntConst:
		fmt.Fprintf(b, "%s%s", e.IntVal, e.ScalarK)
		return
	case OpNullConst:
		fmt.Fprintf(b, "Null(%s)", schema.Print(e.NullMN))
		return
	case OpIdentifier:
		b.WriteString(e.Name)
		return
	case OpParam:
		fmt.Fprintf(b, "Param(%d, %d)", e.Fid, e.ParamIdx)
		return
	case OpLet:
		fmt.Fprintf(b, "Let(%s, ", e.Name)
		printExpr(b, e.Kids[0])
		b.WriteString(", ")
		printExpr(b, e.Kids[1])
		b.WriteByte(')')
		return
	case OpFunction:
		fmt.Fprintf(b, "Function(%d, [", e.Fid)
		for i, t := range e.ParamTypes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		b.WriteString("], ")
		printExpr(b, e.Kids[0])
		b.WriteByte(')')
		return
	case OpSeq:
		b.WriteString("Seq(")
		for i, s := range e.Seq {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, s)
		}
		b.WriteByte(')')
		return
	case OpCast:
		fmt.Fprintf(b, "Cast(%s, ", e.To)
		printExpr(b, e.Kids[0])
		b.WriteByte(')')
		return
	case OpOfString:
		fmt.Fprintf(b, "OfString(%s, ", e.ScalarK)
		printExpr(b, e.Kids[0])
		b.WriteByte(')')
		return
	}

	if name, ok := endianOpNames[e.Op]; ok {
		fmt.Fprintf(b, "%s(%s, ", name, e.Endian)
		for i, k := range e.Kids {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, k)
		}
		b.WriteByte(')')
		return
	}

	name, ok := opNames[e.Op]
	if !ok {
		b.WriteString("<?>")
		return
	}
	b.WriteString(name)
	b.WriteByte('(')
	for i, k := range e.Kids {
		if i > 0 {
			b.WriteString(", ")
		}
		printExpr(b, k)
	}
	b.WriteByte(')')
}

var endianOpNames = map[Op]string{
	OpReadWord: "ReadWord", OpWriteWord: "WriteWord", OpPeekWord: "PeekWord",
	OpReadDWord: "ReadDWord", OpWriteDWord: "WriteDWord", OpPeekDWord: "PeekDWord",
	OpReadQWord: "ReadQWord", OpWriteQWord: "WriteQWord", OpPeekQWord: "PeekQWord",
	OpReadOWord: "ReadOWord", OpWriteOWord: "WriteOWord", OpPeekOWord: "PeekOWord",
}

func quoteIR(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
