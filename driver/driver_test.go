package driver_test

import (
	"testing"

	"github.com/rixed/dessser/codec"
	"github.com/rixed/dessser/codec/sexpr"
	"github.com/rixed/dessser/driver"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// wrapDesser closes a Desser call into Function(DataPtr, DataPtr) ->
// Pair(DataPtr, DataPtr) and type-checks it — the shape every backend
// eventually lowers to a real function definition.
func wrapDesser(t *testing.T, root *schema.MaybeNullable) *irx.Type {
	t.Helper()
	D := sexpr.NewDeserializer()
	S := sexpr.NewSerializer()
	fid := irx.NextFid()
	src := irx.Param(fid, 0)
	dst := irx.Param(fid, 1)
	body, err := driver.Desser(D, S, root, src, dst)
	if err != nil {
		t.Fatalf("Desser: %v", err)
	}
	fn := irx.Function(fid, []*irx.Type{irx.DataPtr(), irx.DataPtr()}, body)
	typ, err := irx.TypeOf(nil, fn)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	return typ
}

func requirePairOfDataPtrs(t *testing.T, typ *irx.Type) {
	t.Helper()
	res := typ.FuncResult
	if res.Kind != irx.PairKind {
		t.Fatalf("Desser result kind = %v, want Pair", res.Kind)
	}
	if res.Elems[0].Kind != irx.DataPtrKind || res.Elems[1].Kind != irx.DataPtrKind {
		t.Fatalf("Desser result = Pair(%v, %v), want Pair(DataPtr, DataPtr)", res.Elems[0].Kind, res.Elems[1].Kind)
	}
}

func TestDesserScalar(t *testing.T) {
	root := schema.NotNullable(schema.NewScalar(schema.I32))
	requirePairOfDataPtrs(t, wrapDesser(t, root))
}

func TestDesserNullableScalar(t *testing.T) {
	root := schema.Nullable(schema.NewScalar(schema.String))
	requirePairOfDataPtrs(t, wrapDesser(t, root))
}

func TestDesserTuple(t *testing.T) {
	tup, err := schema.NewTup(
		schema.NotNullable(schema.NewScalar(schema.I32)),
		schema.Nullable(schema.NewScalar(schema.Bool)),
		schema.NotNullable(schema.NewScalar(schema.String)),
	)
	if err != nil {
		t.Fatalf("NewTup: %v", err)
	}
	requirePairOfDataPtrs(t, wrapDesser(t, schema.NotNullable(tup)))
}

func TestDesserRecord(t *testing.T) {
	rec, err := schema.NewRec(
		schema.RecField{Name: "id", Type: schema.NotNullable(schema.NewScalar(schema.U64))},
		schema.RecField{Name: "name", Type: schema.NotNullable(schema.NewScalar(schema.String))},
	)
	if err != nil {
		t.Fatalf("NewRec: %v", err)
	}
	requirePairOfDataPtrs(t, wrapDesser(t, schema.NotNullable(rec)))
}

func TestDesserVec(t *testing.T) {
	vec, err := schema.NewVec(3, schema.NotNullable(schema.NewScalar(schema.Float)))
	if err != nil {
		t.Fatalf("NewVec: %v", err)
	}
	requirePairOfDataPtrs(t, wrapDesser(t, schema.NotNullable(vec)))
}

func TestDesserListWithPrefixLength(t *testing.T) {
	list := schema.NewList(schema.NotNullable(schema.NewScalar(schema.I32)))
	requirePairOfDataPtrs(t, wrapDesser(t, schema.NotNullable(list)))
}

func TestDesserListWithoutPrefixLength(t *testing.T) {
	root := schema.NotNullable(schema.NewList(schema.NotNullable(schema.NewScalar(schema.I32))))
	D := sexpr.NewDeserializer(sexpr.WithListPrefixLength(false))
	S := sexpr.NewSerializer(sexpr.WithListPrefixLength(false))
	fid := irx.NextFid()
	src := irx.Param(fid, 0)
	dst := irx.Param(fid, 1)
	body, err := driver.Desser(D, S, root, src, dst)
	if err != nil {
		t.Fatalf("Desser: %v", err)
	}
	fn := irx.Function(fid, []*irx.Type{irx.DataPtr(), irx.DataPtr()}, body)
	typ, err := irx.TypeOf(nil, fn)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	requirePairOfDataPtrs(t, typ)
}

func TestDesserNestedCompound(t *testing.T) {
	inner, err := schema.NewTup(
		schema.NotNullable(schema.NewScalar(schema.I32)),
		schema.Nullable(schema.NewScalar(schema.Float)),
	)
	if err != nil {
		t.Fatalf("NewTup: %v", err)
	}
	list := schema.NewList(schema.NotNullable(inner))
	root, err := schema.NewRec(
		schema.RecField{Name: "items", Type: schema.NotNullable(list)},
	)
	if err != nil {
		t.Fatalf("NewRec: %v", err)
	}
	requirePairOfDataPtrs(t, wrapDesser(t, schema.NotNullable(root)))
}

func TestSersizeDelegatesToCodec(t *testing.T) {
	S := sexpr.NewSerializer()
	root := schema.NotNullable(schema.NewScalar(schema.Bool))
	size := driver.Sersize(S, nil, root)
	if size.Kind != codec.ConstSize || size.Bytes != 1 {
		t.Fatalf("Sersize(Bool) = %+v, want Const(1)", size)
	}
}
