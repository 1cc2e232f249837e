// Package codec is the contract every concrete wire-format
// Deserializer/Serializer must satisfy (spec §4.3) so that the generic
// driver (package driver) can weave any pair of them into one IR
// expression. It fixes the shared vocabulary only: list-opener
// variants, static size hints, and the small runtime-side Bytes type
// backing the IR's Bytes kind. Concrete codecs (package codec/sexpr is
// the one this module ships) each add their own functional-options
// record, following the
// stream.StreamOption / encode.EncodeOption pattern.
package codec

import "fmt"

// Bytes is the runtime-side counterpart of the IR's Bytes kind: a
// shared byte range, grounded on
// Bytes.h ("shared_ptr<Byte[]> buffer; size_t size; size_t offset").
// A Go slice already carries this buffer/offset/length triple, so
// Bytes is a thin wrapper rather than a reimplementation — it exists
// so codecs that need to hand around a sub-range without copying (the
// S-expression decoder's raw-capture mode, a backend's constant-fold
// of a literal byte string) have one named type instead of passing
// three loose slice/offset/size values around.
type Bytes struct {
	buf    []byte
	offset int
	size   int
}

// NewBytes wraps buf in its entirety; offset is 0, size is len(buf).
func NewBytes(buf []byte) Bytes { return Bytes{buf: buf, size: len(buf)} }

// Slice returns the sub-range [start, start+n) of b, sharing the same
// backing array (Bytes.h's copy constructor semantics: the buffer is
// shared, only size/offset change).
func (b Bytes) Slice(start, n int) (Bytes, error) {
	if start < 0 || n < 0 || start+n > b.size {
		return Bytes{}, fmt.Errorf("codec: Bytes.Slice(%d, %d) out of range for size %d", start, n, b.size)
	}
	return Bytes{buf: b.buf, offset: b.offset + start, size: n}, nil
}

func (b Bytes) Len() int { return b.size }

func (b Bytes) Bytes() []byte { return b.buf[b.offset : b.offset+b.size] }

func (b Bytes) String() string { return string(b.Bytes()) }

// SizeKind tags a Ssize as either a compile-time constant or one that
// can only be computed from an already-materialised heap value.
type SizeKind int

const (
	ConstSize SizeKind = iota
	DynSize
)

// ListOpenerKind tags which of the two list-opener shapes a
// deserializer exposes for a given List(mn) (spec §4.3).
type ListOpenerKind int

const (
	// KnownSize formats carry an explicit element count ahead of the
	// elements.
	KnownSize ListOpenerKind = iota
	// UnknownSize formats are terminated instead; the deserializer
	// exposes a per-element end-of-list probe.
	UnknownSize
)

func (k ListOpenerKind) String() string {
	if k == KnownSize {
		return "KnownSize"
	}
	return "UnknownSize"
}
