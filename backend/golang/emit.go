package golang

import (
	"fmt"
	"strconv"

	"github.com/rixed/dessser/irx"
)

// emitExpr renders e as a single Go expression. Compound control flow
// (Let, Choose, LoopWhile, Repeat, ReadWhile) that Go has no expression
// form for is emitted as an immediately-invoked function literal — the
// same trick gomap's template-based generators lean on when a
// target construct doesn't map onto a single expression (gomap's
// generated conversion functions are themselves one big function body
// per struct, built the same way: assemble statements, wrap once).
func emitExpr(e *irx.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("golang backend: nil expression")
	}
	switch e.Op {
	case irx.OpBoolConst:
		return strconv.FormatBool(e.BoolVal), nil
	case irx.OpCharConst:
		return strconv.QuoteRune(e.CharVal), nil
	case irx.OpFloatConst:
		return strconv.FormatFloat(e.FloatVal, 'g', -1, 64), nil
	case irx.OpStringConst:
		return strconv.Quote(e.StrVal), nil
	case irx.OpIntConst:
		return e.IntVal, nil
	case irx.OpNullConst:
		return "nil", nil
	case irx.OpIdentifier:
		return sanitizeIdent(e.Name), nil
	case irx.OpParam:
		return paramName(e.Fid, e.ParamIdx), nil
	case irx.OpLet:
		return emitLet(e)
	case irx.OpFunction:
		return emitFunction(e)
	case irx.OpFst:
		v, err := emitExpr(e.Kids[0])
		if err != nil {
			return "", err
		}
		return v + ".Fst", nil
	case irx.OpSnd:
		v, err := emitExpr(e.Kids[0])
		if err != nil {
			return "", err
		}
		return v + ".Snd", nil
	case irx.OpPair:
		return emitBinaryCall("dessserrt.MkPair", e)
	case irx.OpCast:
		return emitCast(e)
	case irx.OpOfString:
		return emitOfString(e)
	case irx.OpToString:
		v, err := emitExpr(e.Kids[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("fmt.Sprint(%s)", v), nil
	case irx.OpGe:
		return emitBinaryOp(">=", e)
	case irx.OpEq:
		return emitBinaryOp("==", e)
	case irx.OpNe:
		return emitBinaryOp("!=", e)
	case irx.OpAdd:
		return emitBinaryOp("+", e)
	case irx.OpLogAnd:
		return emitBinaryOp("&&", e)
	case irx.OpLogOr:
		return emitBinaryOp("||", e)
	case irx.OpLogNot:
		v, err := emitExpr(e.Kids[0])
		if err != nil {
			return "", err
		}
		return "!(" + v + ")", nil
	case irx.OpRemSize:
		v, err := emitExpr(e.Kids[0])
		if err != nil {
			return "", err
		}
		return v + ".RemSize()", nil
	case irx.OpDataPtrAdd:
		return emitMethodCall(".Add", e)
	case irx.OpReadByte:
		return emitReadByte(e)
	case irx.OpReadBytes:
		return emitReadBytes(e)
	case irx.OpPeekByte:
		return emitPeekByte(e)
	case irx.OpWriteByte:
		return emitMethodCall(".WriteByte", e)
	case irx.OpWriteBytes:
		return emitMethodCall(".WriteBytes", e)
	case irx.OpChoose:
		return emitChoose(e)
	case irx.OpLoopWhile:
		return emitLoopWhile(e)
	case irx.OpRepeat:
		return emitRepeat(e)
	case irx.OpReadWhile:
		return emitReadWhile(e)
	default:
		return "", fmt.Errorf("golang backend: emission of op %v is not implemented; add a case to backend/golang/emit.go", e.Op)
	}
}

func paramName(fid uint64, idx int) string {
	return fmt.Sprintf("p%d_%d", fid, idx)
}

func emitLet(e *irx.Expr) (string, error) {
	value, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	valType, err := irx.TypeOf(nil, e.Kids[0])
	if err != nil {
		return "", err
	}
	bodyType, err := irx.TypeOf(nil, e.Kids[1])
	if err != nil {
		return "", err
	}
	bodyGoT, err := goType(bodyType)
	if err != nil {
		return "", err
	}
	body, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	valGoT, err := goType(valType)
	if err != nil {
		return "", err
	}
	name := sanitizeIdent(e.Name)
	return fmt.Sprintf("func() %s { var %s %s = %s; return %s }()", bodyGoT, name, valGoT, value, body), nil
}

func emitFunction(e *irx.Expr) (string, error) {
	params := make([]string, len(e.ParamTypes))
	for i, pt := range e.ParamTypes {
		gt, err := goType(pt)
		if err != nil {
			return "", err
		}
		params[i] = fmt.Sprintf("%s %s", paramName(e.Fid, i), gt)
	}
	bodyType, err := irx.TypeOf(nil, e)
	if err != nil {
		return "", err
	}
	resGoT, err := goType(bodyType.FuncResult)
	if err != nil {
		return "", err
	}
	body, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func(%s) %s { return %s }", joinComma(params), resGoT, body), nil
}

func emitBinaryOp(op string, e *irx.Expr) (string, error) {
	a, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	b, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s)", a, op, b), nil
}

func emitBinaryCall(fn string, e *irx.Expr) (string, error) {
	a, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	b, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s)", fn, a, b), nil
}

func emitMethodCall(method string, e *irx.Expr) (string, error) {
	recv, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	arg, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s(%s)", recv, method, arg), nil
}

func emitCast(e *irx.Expr) (string, error) {
	v, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	goT, err := goType(e.To)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", goT, v), nil
}

// emitOfString parses a Value(string) into a Value(scalar) at runtime.
// bool and rune get their own conversions; every numeric width goes
// through strconv, and the two 128-bit widths go through dessserrt.
func emitOfString(e *irx.Expr) (string, error) {
	v, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	goT, err := goScalarType(e.ScalarK)
	if err != nil {
		return "", err
	}
	switch goT {
	case "bool":
		return fmt.Sprintf("(%s == \"true\")", v), nil
	case "string":
		return v, nil
	case "rune":
		return fmt.Sprintf("[]rune(%s)[0]", v), nil
	case "float64":
		return fmt.Sprintf("mustParseFloat(%s)", v), nil
	case "dessserrt.I128":
		return fmt.Sprintf("mustParseI128(%s)", v), nil
	default:
		return fmt.Sprintf("%s(mustParseInt(%s))", goT, v), nil
	}
}

func emitReadByte(e *irx.Expr) (string, error) {
	v, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mustPair2(%s.ReadByte())", v), nil
}

func emitReadBytes(e *irx.Expr) (string, error) {
	ptr, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	n, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mustPair2(%s.ReadBytes(%s))", ptr, n), nil
}

func emitPeekByte(e *irx.Expr) (string, error) {
	ptr, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	at, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mustSingle(%s.PeekByte(%s))", ptr, at), nil
}

func emitChoose(e *irx.Expr) (string, error) {
	cond, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	thenT, err := irx.TypeOf(nil, e.Kids[1])
	if err != nil {
		return "", err
	}
	goT, err := goType(thenT)
	if err != nil {
		return "", err
	}
	then, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	els, err := emitExpr(e.Kids[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func() %s { if %s { return %s }; return %s }()", goT, cond, then, els), nil
}

func emitLoopWhile(e *irx.Expr) (string, error) {
	condFn, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	bodyFn, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	init, err := emitExpr(e.Kids[2])
	if err != nil {
		return "", err
	}
	initT, err := irx.TypeOf(nil, e.Kids[2])
	if err != nil {
		return "", err
	}
	goT, err := goType(initT)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func() %s { state := %s; cond := %s; body := %s; for cond(state) { state = body(state) }; return state }()",
		goT, init, condFn, bodyFn), nil
}

func emitRepeat(e *irx.Expr) (string, error) {
	from, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	to, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	bodyFn, err := emitExpr(e.Kids[2])
	if err != nil {
		return "", err
	}
	init, err := emitExpr(e.Kids[3])
	if err != nil {
		return "", err
	}
	initT, err := irx.TypeOf(nil, e.Kids[3])
	if err != nil {
		return "", err
	}
	goT, err := goType(initT)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func() %s { state := %s; body := %s; for i := %s; i < %s; i++ { state = body(state, i) }; return state }()",
		goT, init, bodyFn, from, to), nil
}

func emitReadWhile(e *irx.Expr) (string, error) {
	condFn, err := emitExpr(e.Kids[0])
	if err != nil {
		return "", err
	}
	reduceFn, err := emitExpr(e.Kids[1])
	if err != nil {
		return "", err
	}
	init, err := emitExpr(e.Kids[2])
	if err != nil {
		return "", err
	}
	pos, err := emitExpr(e.Kids[3])
	if err != nil {
		return "", err
	}
	initT, err := irx.TypeOf(nil, e.Kids[2])
	if err != nil {
		return "", err
	}
	accGoT, err := goType(initT)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`func() dessserrt.Pair[%s, dessserrt.Ptr] {
		acc := %s
		cur := %s
		cond := %s
		reduce := %s
		for cur.RemSize() > 0 {
			b, _ := cur.PeekByte(0)
			if !cond(b) {
				break
			}
			acc = reduce(acc, b)
			cur = cur.Add(1)
		}
		return dessserrt.MkPair(acc, cur)
	}()`, accGoT, init, pos, condFn, reduceFn), nil
}

// helperPreamble is emitted once at the top of every generated file: a
// handful of tiny wrappers translating this package's (value, error)
// idiom into the panic-on-malformed-input semantics of a converter
// whose invariant is "the schema already validated this", matching
// gomap's own generated code, which never expects a schema mismatch
// at runtime (gomap's generated Marshal/Unmarshal functions likewise
// never return an error for a well-typed conversion).
const helperPreamble = `
func mustSingle[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustPair2[A, B any](a A, b B, err error) dessserrt.Pair[A, B] {
	if err != nil {
		panic(err)
	}
	return dessserrt.MkPair(a, b)
}

func mustParseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic(err)
	}
	return n
}

func mustParseFloat(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return n
}

func mustParseI128(s string) dessserrt.I128 {
	v, err := dessserrt.I128FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}
`
