package fix

import (
	"fmt"
	"math/big"
	"math/bits"
)

// I256 is a signed integer with 256 bits of precision: two's complement
// across the full width, with the sign carried by the hi limb. The
// represented value is hi<<128 | lo.
//
// Like U256, I256 only ever lives for the duration of a single fixed-point
// multiply or divide.
type I256 struct {
	hi I128
	lo U128
}

func I256FromRaw(hi I128, lo U128) I256 { return I256{hi: hi, lo: lo} }

// I256From128 sign-extends an I128 to 256 bits.
func I256From128(v I128) I256 { return v.WideLsh(0) }

func I256From64(v int64) I256 { return I256From128(I128From64(v)) }

func (i I256) IsZero() bool { return i.hi.IsZero() && i.lo.IsZero() }

// Raw returns access to the I256 as its hi and lo limbs. See I256FromRaw()
// for the counterpart.
func (i I256) Raw() (hi I128, lo U128) { return i.hi, i.lo }

func (i I256) Sign() int {
	if i.hi.hi&signBit != 0 {
		return -1
	} else if i.hi.IsZero() && i.lo.IsZero() {
		return 0
	}
	return 1
}

func (i I256) String() string {
	return i.AsBigInt().String()
}

func (i I256) Format(s fmt.State, c rune) {
	i.AsBigInt().Format(s, c)
}

func (i I256) AsBigInt() (b *big.Int) {
	if i.hi.hi&signBit == 0 {
		return i.AsU256().AsBigInt()
	}
	// The minimum value wraps to itself under Neg, but its bit pattern read
	// unsigned is exactly the magnitude 1<<255.
	b = i.Neg().AsU256().AsBigInt()
	return b.Neg(b)
}

// AsU256 reinterprets the bit pattern of i as an unsigned 256-bit value.
func (i I256) AsU256() U256 {
	return U256{hi: i.hi.AsU128(), lo: i.lo}
}

// AsI128 truncates the I256 to its low 128 bits, reinterpreted as signed.
// See IsI128() if you want to check before you convert.
func (i I256) AsI128() I128 { return i.lo.AsI128() }

// IsI128 reports whether i can be represented in an I128.
func (i I256) IsI128() bool {
	return i.hi.Equal(i.lo.AsI128().Rsh(127))
}

func (i I256) Cmp(n I256) int {
	if c := i.hi.Cmp(n.hi); c != 0 {
		return c
	}
	return i.lo.Cmp(n.lo)
}

func (i I256) Equal(n I256) bool { return i.hi.Equal(n.hi) && i.lo.Equal(n.lo) }

// Neg returns the two's complement negation of i, wrapping.
func (i I256) Neg() I256 {
	return i.AsU256().Neg().AsI256()
}

// Abs returns the absolute value of i, wrapping for the minimum value.
func (i I256) Abs() I256 {
	if i.hi.hi&signBit != 0 {
		return i.Neg()
	}
	return i
}

// Rsh shifts i right by n bits, sign-extending from the top. The shift
// count must be in [0, 128].
func (i I256) Rsh(n uint) (v I256) {
	if n == 0 {
		return i
	} else if n == 128 {
		return I256{hi: i.hi.Rsh(127), lo: i.hi.AsU128()}
	}
	v.lo = i.lo.Rsh(n).Or(i.hi.AsU128().Lsh(128 - n))
	v.hi = i.hi.Rsh(n)
	return v
}

// RshNarrow shifts i right by n bits (n in [0, 128]) and narrows the result
// to 128 bits, reporting whether the discarded high bits differed from the
// sign extension of the kept bits. The flag is how signed fixed-point
// multiplication detects that a rescaled product does not fit.
func (i I256) RshNarrow(n uint) (v I128, overflow bool) {
	if n == 128 {
		return i.hi, false
	} else if n == 0 {
		v = i.lo.AsI128()
		return v, !i.hi.Equal(v.Rsh(127))
	}
	v = i.lo.Rsh(n).Or(i.hi.AsU128().Lsh(128 - n)).AsI128()
	return v, !i.hi.Rsh(n).Equal(v.Rsh(127))
}

// WideMul returns the exact 256-bit product of i and n. No overflow is
// possible: two 128-bit operands always fit in 256 bits.
//
// The decomposition mirrors the unsigned WideMul, except that each operand
// splits into an unsigned low half and a *signed* high half, the cross terms
// use a mixed signed-times-unsigned primitive, and the top column
// accumulates in signed arithmetic.
func (i I128) WideMul(n I128) (out I256) {
	ll, lh := i.lo, int64(i.hi)
	rl, rh := n.lo, int64(n.hi)

	// llrl must be unsigned to hold its full range.
	llrl := mul64(ll, rl)     // unit is 1
	lhrl := mulI64U64(lh, rl) // unit is 2^64
	llrh := mulI64U64(rh, ll) // unit is 2^64
	lhrh := mulI64(lh, rh)    // unit is 2^128

	// 0 <= col0 <= 2^64 - 1; 0 <= col64a <= 2^64 - 2.
	col0, col64a := llrl.lo, llrl.hi

	// col64a + lhrl stays within [-2^127 + 2^63, 2^127 - 2^63 - 1].
	col64b := lhrl.Add(I128FromU64(col64a))

	// 0 <= col64c <= 2^64 - 1; -2^63 <= col128a <= 2^63 - 1.
	col64c, col128a := col64b.lo, int64(col64b.hi)

	// col64c + llrh stays within [-2^127 + 2^63, 2^127 - 2^63].
	col64d := llrh.Add(I128FromU64(col64c))

	// 0 <= col64 <= 2^64 - 1; -2^63 <= col128b <= 2^63 - 1.
	col64, col128b := col64d.lo, int64(col64d.hi)

	out.lo = U128{hi: col64, lo: col0}
	// i*n fits in 256 bits, so the top column cannot overflow.
	out.hi = lhrh.Add(I128From64(col128a)).Add(I128From64(col128b))
	return out
}

// WideLsh shifts i left by n bits (n in [0, 128]) into a sign-extended
// 256-bit result.
func (i I128) WideLsh(n uint) I256 {
	return I256{hi: i.Rsh(128 - n), lo: i.AsU128().Lsh(n)}
}

// mulI64U64 multiplies a signed 64-bit half-limb by an unsigned one into an
// exact signed 128-bit product.
func mulI64U64(s int64, u uint64) (out I128) {
	out.hi, out.lo = bits.Mul64(uint64(s), u)
	// uint64(s) overstates a negative s by 2^64, which inflates the raw
	// product by u<<64; pull it back out of the high limb.
	if s < 0 {
		out.hi -= u
	}
	return out
}

// mulI64 multiplies two signed 64-bit half-limbs into an exact signed
// 128-bit product.
func mulI64(a, b int64) (out I128) {
	out.hi, out.lo = bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		out.hi -= uint64(b)
	}
	if b < 0 {
		out.hi -= uint64(a)
	}
	return out
}

// QuoRem128 divides i by the non-zero 128-bit divisor 'by', returning a
// 256-bit quotient and a 128-bit remainder. The quotient truncates toward
// zero and the remainder takes the dividend's sign, so q*by + r == i and
// |r| < |by|.
//
// The one case with no representable answer is a dividend of -2^255 divided
// by -1, whose quotient wraps; callers that stay within a widened 128-bit
// dividend can never hit it.
func (i I256) QuoRem128(by NonZeroI128) (q I256, r I128) {
	d := by.Get()

	nNeg := i.hi.hi&signBit != 0
	nAbs := i.AsU256()
	if nNeg {
		nAbs = nAbs.Neg()
	}

	dNeg := d.hi&signBit != 0
	// MinI128's bit pattern read unsigned is already its magnitude.
	dAbs := d.Abs().AsU128()

	qAbs, rAbs := nAbs.QuoRem128(NonZeroU128{v: dAbs})

	if nNeg == dNeg {
		q = qAbs.AsI256()
	} else {
		q = qAbs.Neg().AsI256()
	}
	if nNeg {
		r = rAbs.AsI128().Neg()
	} else {
		r = rAbs.AsI128()
	}
	return q, r
}
