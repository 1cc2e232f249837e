package driver

import (
	"github.com/rixed/dessser/codec"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// Materialize and Serialize are the two directions of spec §4.5's
// heap-value bridge, expressed as what they actually are: Desser
// called with one side's codec swapped for a heap codec. Desser never
// allocates anything — it only threads whatever src/dst pointers it is
// handed — so the interesting part of "materialize a wire value onto
// the heap" is entirely in how dst was obtained before this call, and
// that is unavoidably backend-specific: irx's only ValuePtr-related
// primitive is DerefValuePtr, a whole-value read with no counterpart
// for allocating a fresh ValuePtr or writing into one field at a time
// (see DESIGN.md's driver ledger entry). A concrete heap codec is
// therefore something backend/golang builds against its own runtime
// value representation, not something this package can ship generic.
//
// Materialize decodes root from src using D and writes it into the
// heap value at dst using heapS.
func Materialize(D codec.Deserializer, heapS codec.Serializer, root *schema.MaybeNullable, src, dst codec.Ptr) (*irx.Expr, error) {
	return Desser(D, heapS, root, src, dst)
}

// Serialize reads root out of the heap value at src using heapD and
// encodes it to dst using S.
func Serialize(heapD codec.Deserializer, S codec.Serializer, root *schema.MaybeNullable, src, dst codec.Ptr) (*irx.Expr, error) {
	return Desser(heapD, S, root, src, dst)
}

// Sersize computes the static size hint for root under S (spec §4.5's
// sersize combinator), delegating to the codec's own Ssize which
// already recurses the schema (see codec/sexpr.ssizeOf for the
// reference implementation of that recursion).
func Sersize(S codec.Serializer, st codec.State, root *schema.MaybeNullable) codec.Ssize {
	return S.Ssize(st, root, nil)
}
