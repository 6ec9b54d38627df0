// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package u128 implements 128-bit unsigned arithmetic on top of 64-bit words.
//
// Stake accounting must produce the same results on every platform, so the
// multiply and divide routines below are written against 32-bit partial
// products and never rely on a native wide-integer primitive.
package u128

import "fmt"

const mask32 = 1<<32 - 1

// Uint128 is an unsigned 128-bit value. The zero value is ready to use.
// Values order lexicographically by (Hi, Lo).
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// From64 converts a 64-bit value to a Uint128.
func From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero returns whether the value is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// IsUint64 returns whether the value fits in 64 bits.
func (u Uint128) IsUint64() bool {
	return u.Hi == 0
}

// Cmp returns -1, 0 or 1 depending on whether u is less than, equal to or
// greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	default:
		return 0
	}
}

// String implements the stringer interface.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return fmt.Sprintf("(%#x, %#x)", u.Hi, u.Lo)
}

// Mul64 returns the exact 128-bit product of two 64-bit values.
//
// The operands are split into 32-bit halves and the four partial products are
// recombined schoolbook style. mid cannot overflow: it is bounded by
// 3*(2^32-1) which fits comfortably in 64 bits.
func Mul64(a, b uint64) Uint128 {
	a0, a1 := a&mask32, a>>32
	b0, b1 := b&mask32, b>>32

	lolo := a0 * b0
	lohi := a0 * b1
	hilo := a1 * b0
	hihi := a1 * b1

	mid := (lolo >> 32) + (lohi & mask32) + (hilo & mask32)

	return Uint128{
		Hi: hihi + (lohi >> 32) + (hilo >> 32) + (mid >> 32),
		Lo: (lolo & mask32) | (mid << 32),
	}
}

// CheckedMul64 multiplies u by a 64-bit value. The second return value is
// false if the true product exceeds 128 bits; no truncated result is ever
// returned.
func (u Uint128) CheckedMul64(rhs uint64) (Uint128, bool) {
	lo := Mul64(u.Lo, rhs)
	hi := Mul64(u.Hi, rhs)
	if hi.Hi != 0 {
		return Uint128{}, false
	}
	sum := lo.Hi + hi.Lo
	if sum < lo.Hi {
		return Uint128{}, false
	}
	return Uint128{Hi: sum, Lo: lo.Lo}, true
}

// CheckedAdd adds two 128-bit values. The second return value is false on
// overflow.
func (u Uint128) CheckedAdd(v Uint128) (Uint128, bool) {
	lo := u.Lo + v.Lo
	var carry uint64
	if lo < u.Lo {
		carry = 1
	}
	hi := u.Hi + v.Hi
	if hi < u.Hi {
		return Uint128{}, false
	}
	hi += carry
	if hi < carry {
		return Uint128{}, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}

// CheckedAdd64 adds a 64-bit value. The second return value is false on
// overflow.
func (u Uint128) CheckedAdd64(v uint64) (Uint128, bool) {
	return u.CheckedAdd(From64(v))
}

// FloorDivClamped returns min(floor(numerator/denominator), clamp), or 0 when
// the denominator, the numerator or the clamp is zero.
//
// There is no wide-division primitive here. After the cheap short circuits the
// quotient is found by binary search over [0, clamp], testing each candidate
// with CheckedMul64. The midpoint is biased upward so the low bound always
// advances and the search terminates within 64 iterations.
func FloorDivClamped(numerator, denominator Uint128, clamp uint64) uint64 {
	if clamp == 0 || numerator.IsZero() || denominator.IsZero() {
		return 0
	}
	if numerator.Cmp(denominator) < 0 {
		return 0
	}
	if numerator.IsUint64() && denominator.IsUint64() {
		return min(numerator.Lo/denominator.Lo, clamp)
	}
	if p, ok := denominator.CheckedMul64(clamp); ok && p.Cmp(numerator) <= 0 {
		return clamp
	}

	lo, hi := uint64(0), clamp
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if p, ok := denominator.CheckedMul64(mid); ok && p.Cmp(numerator) <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
