package sexpr

import (
	"fmt"
	"math/big"
)

// The original dessser runtime (original_source/src/dessser/runtime.h,
// i128_of_string) parses a decimal string into a 128-bit integer by
// recursively splitting it into a high and a low chunk of
// E10_INT64 (19) digits each, because C++ has no native 128-bit
// division. Its own comment flags the bug this reimplementation
// exists to avoid:
//
//	// FIXME: do not split just after the leading minus sign!
//
// i128_of_string computes max_len to account for a leading sign, but
// the recursive call that peels off the high chunk (s.substr(0,
// hi_len)) still cuts the string purely by byte count — for an input
// one digit longer than int64 range, hi_len can land exactly on the
// sign character, so the low chunk inherits it and is parsed as
// negative while the high chunk no longer carries it, corrupting the
// arithmetic `hi * P10_INT64 ± lo` recombination.
//
// Go's math/big has native arbitrary-precision decimal parsing, so
// there is no need to port the recursive splitting at all: strip an
// optional leading sign once, parse the unsigned run of digits as a
// big.Int, then reapply the sign. FormatI128Decimal is
// ParseI128Decimal's dual. Code generated by backend/golang parses
// 128-bit literals through its own runtime (dessserrt), not through
// these helpers.
func ParseI128Decimal(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("sexpr: empty i128 literal")
	}
	neg := false
	digits := s
	switch s[0] {
	case '-':
		neg, digits = true, s[1:]
	case '+':
		digits = s[1:]
	}
	if digits == "" {
		return nil, fmt.Errorf("sexpr: i128 literal %q has no digits", s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, fmt.Errorf("sexpr: i128 literal %q has a non-digit at offset %d", s, i)
		}
	}
	v := new(big.Int)
	if _, ok := v.SetString(digits, 10); !ok {
		return nil, fmt.Errorf("sexpr: malformed i128 literal %q", s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

func FormatI128Decimal(v *big.Int) string { return v.Text(10) }

var (
	i128Min = mustBig("-170141183460469231731687303715884105728")
	i128Max = mustBig("170141183460469231731687303715884105727")
	u128Max = mustBig("340282366920938463463374607431768211455")
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("sexpr: bad built-in big constant " + s)
	}
	return v
}

// CheckI128Range reports whether v fits a signed 128-bit integer.
func CheckI128Range(v *big.Int) bool {
	return v.Cmp(i128Min) >= 0 && v.Cmp(i128Max) <= 0
}

// CheckU128Range reports whether v fits an unsigned 128-bit integer.
func CheckU128Range(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(u128Max) <= 0
}

// SplitI128 decomposes v into a (hi, lo) pair of 64-bit words: lo
// holds the unsigned low 64 bits, hi holds the signed high 64 bits
// (two's complement for negative v).
func SplitI128(v *big.Int) (hi int64, lo uint64) {
	var u big.Int
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		u.Add(mod, v)
	} else {
		u.Set(v)
	}
	mask64 := new(big.Int).SetUint64(^uint64(0))
	loBig := new(big.Int).And(&u, mask64)
	hiBig := new(big.Int).Rsh(&u, 64)
	lo = loBig.Uint64()
	hi = int64(hiBig.Uint64())
	return hi, lo
}

// JoinI128 is SplitI128's inverse.
func JoinI128(hi int64, lo uint64) *big.Int {
	hiBig := new(big.Int).SetUint64(uint64(hi))
	hiBig.Lsh(hiBig, 64)
	v := new(big.Int).SetUint64(lo)
	v.Or(v, hiBig)
	// Reinterpret as signed 128-bit two's complement.
	mod := new(big.Int).Lsh(big.NewInt(1), 128)
	half := new(big.Int).Lsh(big.NewInt(1), 127)
	if v.Cmp(half) >= 0 {
		v.Sub(v, mod)
	}
	return v
}
