// Package dessserrt is the small runtime support library the Go
// backend's generated converters link against — the Go analogue of the
// original C++ runtime headers (original_source/src/dessser/{Bytes,
// runtime}.h): a shared byte-range pointer and a 128-bit integer
// helper, not a full reimplementation of the generator itself.
package dessserrt

import (
	"fmt"
	"math/big"
)

// Ptr is a cursor into a byte buffer, the generated-code counterpart of
// codec.Bytes/the C++ runtime's Pointer.h: a shared backing array plus
// an offset, so slicing never copies.
type Ptr struct {
	Buf    []byte
	Offset int
}

func NewPtr(buf []byte) Ptr { return Ptr{Buf: buf} }

func (p Ptr) RemSize() int { return len(p.Buf) - p.Offset }

func (p Ptr) PeekByte(at int) (byte, error) {
	if p.Offset+at >= len(p.Buf) {
		return 0, fmt.Errorf("dessserrt: peek past end of buffer at offset %d", p.Offset+at)
	}
	return p.Buf[p.Offset+at], nil
}

func (p Ptr) ReadByte() (byte, Ptr, error) {
	b, err := p.PeekByte(0)
	if err != nil {
		return 0, p, err
	}
	return b, Ptr{Buf: p.Buf, Offset: p.Offset + 1}, nil
}

func (p Ptr) ReadBytes(n int) ([]byte, Ptr, error) {
	if p.Offset+n > len(p.Buf) {
		return nil, p, fmt.Errorf("dessserrt: read of %d bytes past end of buffer", n)
	}
	return p.Buf[p.Offset : p.Offset+n], Ptr{Buf: p.Buf, Offset: p.Offset + n}, nil
}

func (p Ptr) WriteByte(b byte) Ptr {
	buf := append(p.Buf[:p.Offset:p.Offset], b)
	return Ptr{Buf: buf, Offset: p.Offset + 1}
}

func (p Ptr) WriteBytes(bs []byte) Ptr {
	buf := append(p.Buf[:p.Offset:p.Offset], bs...)
	return Ptr{Buf: buf, Offset: p.Offset + len(bs)}
}

func (p Ptr) Add(n int) Ptr { return Ptr{Buf: p.Buf, Offset: p.Offset + n} }

// Pair mirrors the IR's Pair(t1, t2) type in generated Go, used
// wherever a Choose/LoopWhile/Repeat needs to thread more than one
// pointer through as a single value.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

func MkPair[A, B any](a A, b B) Pair[A, B] { return Pair[A, B]{Fst: a, Snd: b} }

// I128/U128 are the generated representation of scalar widths beyond
// what a native Go integer holds, backed by math/big exactly as the
// generator's own codec/sexpr/bignum.go parses/formats them at
// generation time — deliberately not a port of the original runtime's
// recursive hi/lo string splitter, which has a documented leading-sign
// bug (original_source/src/dessser/runtime.h, i128_of_string).
type I128 struct{ v *big.Int }

func I128FromString(s string) (I128, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return I128{}, fmt.Errorf("dessserrt: %q is not a valid 128-bit decimal", s)
	}
	return I128{v: v}, nil
}

func (i I128) String() string {
	if i.v == nil {
		return "0"
	}
	return i.v.String()
}
