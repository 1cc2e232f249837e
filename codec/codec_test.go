package codec_test

import (
	"testing"

	"github.com/rixed/dessser/codec"
)

func TestBytesSliceSharesBuffer(t *testing.T) {
	b := codec.NewBytes([]byte("hello world"))
	sub, err := b.Slice(6, 5)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if sub.String() != "world" {
		t.Fatalf("Slice(6,5) = %q, want %q", sub.String(), "world")
	}
	if b.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", b.Len())
	}
}

func TestBytesSliceOutOfRange(t *testing.T) {
	b := codec.NewBytes([]byte("abc"))
	if _, err := b.Slice(1, 10); err == nil {
		t.Fatalf("expected an out-of-range error")
	}
}

func TestSsizeAddConstants(t *testing.T) {
	total := codec.Const(4).Add(codec.Const(6))
	if total.Kind != codec.ConstSize || total.Bytes != 10 {
		t.Fatalf("Const(4).Add(Const(6)) = %+v, want Const(10)", total)
	}
}
