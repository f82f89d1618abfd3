package fix

import (
	"math/bits"
)

// FracBits64 is the number of fractional bits in UFix64 and Fix64: both are
// Q32.32 numbers, so a value is its raw bits scaled by 2^-32.
const FracBits64 = 32

var (
	MaxUFix64   = UFix64{bits: maxUint64}
	UFix64One   = UFix64{bits: 1 << FracBits64}
	UFix64Delta = UFix64{bits: 1}

	MaxFix64   = Fix64{bits: maxInt64}
	MinFix64   = Fix64{bits: -1 << 63}
	Fix64One   = Fix64{bits: 1 << FracBits64}
	Fix64Delta = Fix64{bits: 1}
)

// UFix64 is an unsigned binary fixed-point number: 64 bits, of which the low
// 32 are fractional. The representable range is [0, 2^32) with a step of
// 2^-32.
//
// UFix64 satisfies the same contract as UFix128, but 64 bits is below the
// widest native width here, so the exact double-width intermediates come
// straight from the machine's widening multiply and divide rather than a
// synthesized 256-bit type.
type UFix64 struct {
	bits uint64
}

// UFix64FromBits creates a UFix64 from its raw representation; the value is
// v scaled by 2^-32.
func UFix64FromBits(v uint64) UFix64 { return UFix64{bits: v} }

// UFix64From32 creates a UFix64 holding the integer v. All uint32 values are
// exactly representable.
func UFix64From32(v uint32) UFix64 { return UFix64{bits: uint64(v) << FracBits64} }

// Bits returns the raw representation of f.
func (f UFix64) Bits() uint64 { return f.bits }

// Floor returns the largest integer less than or equal to f.
func (f UFix64) Floor() uint32 { return uint32(f.bits >> FracBits64) }

// Frac returns the fractional bits of f as a 0.32 fixed-point value.
func (f UFix64) Frac() uint32 { return uint32(f.bits) }

func (f UFix64) IsZero() bool { return f.bits == 0 }

func (f UFix64) Cmp(n UFix64) int {
	if f.bits > n.bits {
		return 1
	} else if f.bits < n.bits {
		return -1
	}
	return 0
}

func (f UFix64) Equal(n UFix64) bool    { return f.bits == n.bits }
func (f UFix64) LessThan(n UFix64) bool { return f.bits < n.bits }

// OverflowingAdd returns f + n, wrapped, and whether the true sum
// overflowed.
func (f UFix64) OverflowingAdd(n UFix64) (UFix64, bool) {
	sum, carry := bits.Add64(f.bits, n.bits, 0)
	return UFix64{bits: sum}, carry != 0
}

func (f UFix64) WrappingAdd(n UFix64) UFix64 {
	v, _ := f.OverflowingAdd(n)
	return v
}

func (f UFix64) SaturatingAdd(n UFix64) UFix64 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		return MaxUFix64
	}
	return v
}

// Add returns f + n, panicking on overflow.
func (f UFix64) Add(n UFix64) UFix64 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		panic("fix: ufix64 add overflow")
	}
	return v
}

// OverflowingSub returns f - n, wrapped, and whether the true difference
// underflowed below zero.
func (f UFix64) OverflowingSub(n UFix64) (UFix64, bool) {
	diff, borrow := bits.Sub64(f.bits, n.bits, 0)
	return UFix64{bits: diff}, borrow != 0
}

func (f UFix64) WrappingSub(n UFix64) UFix64 {
	v, _ := f.OverflowingSub(n)
	return v
}

func (f UFix64) SaturatingSub(n UFix64) UFix64 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		return UFix64{}
	}
	return v
}

// Sub returns f - n, panicking on underflow.
func (f UFix64) Sub(n UFix64) UFix64 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		panic("fix: ufix64 sub overflow")
	}
	return v
}

// OverflowingMul returns f * n truncated to the type's precision and
// wrapped, along with whether the true product overflowed. The exact
// 128-bit product comes from the native widening multiply; the rescaled
// result keeps bits 32..96 of it.
func (f UFix64) OverflowingMul(n UFix64) (UFix64, bool) {
	hi, lo := bits.Mul64(f.bits, n.bits)
	v := (lo >> FracBits64) | (hi << (64 - FracBits64))
	return UFix64{bits: v}, hi>>FracBits64 != 0
}

func (f UFix64) WrappingMul(n UFix64) UFix64 {
	v, _ := f.OverflowingMul(n)
	return v
}

func (f UFix64) SaturatingMul(n UFix64) UFix64 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		return MaxUFix64
	}
	return v
}

// Mul returns f * n, panicking on overflow.
func (f UFix64) Mul(n UFix64) UFix64 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		panic("fix: ufix64 mul overflow")
	}
	return v
}

// OverflowingDiv returns f / n truncated toward zero and wrapped, along
// with whether the true quotient overflowed. If n is zero, a
// division-by-zero run-time panic occurs.
func (f UFix64) OverflowingDiv(n UFix64) (UFix64, bool) {
	q, overflow := divWide64(f.bits, n.bits)
	return UFix64{bits: q}, overflow
}

func (f UFix64) WrappingDiv(n UFix64) UFix64 {
	v, _ := f.OverflowingDiv(n)
	return v
}

func (f UFix64) SaturatingDiv(n UFix64) UFix64 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		return MaxUFix64
	}
	return v
}

// Div returns f / n, panicking on overflow or if n is zero.
func (f UFix64) Div(n UFix64) UFix64 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		panic("fix: ufix64 div overflow")
	}
	return v
}

// divWide64 widens the dividend by the fractional width and divides by d
// using the native 128-by-64 divide, returning the wrapped 64-bit quotient
// and whether the true quotient needed more bits.
func divWide64(num, d uint64) (q uint64, overflow bool) {
	if d == 0 {
		panic("fix: division by zero")
	}
	nhi, nlo := num>>(64-FracBits64), num<<FracBits64

	// bits.Div64 requires its high word to be less than the divisor;
	// dividing out the part of the quotient above 2^64 first both satisfies
	// that and tells us whether the result wraps.
	qhi := nhi / d
	q, _ = bits.Div64(nhi%d, nlo, d)
	return q, qhi != 0
}

// Fix64 is a signed binary fixed-point number: 64 bits, of which the low 32
// are fractional. The representable range is [-2^31, 2^31) with a step of
// 2^-32. See UFix64 for how the native double-width path is used.
type Fix64 struct {
	bits int64
}

// Fix64FromBits creates a Fix64 from its raw representation; the value is v
// scaled by 2^-32.
func Fix64FromBits(v int64) Fix64 { return Fix64{bits: v} }

// Fix64From32 creates a Fix64 holding the integer v. All int32 values are
// exactly representable.
func Fix64From32(v int32) Fix64 { return Fix64{bits: int64(v) << FracBits64} }

// Bits returns the raw representation of f.
func (f Fix64) Bits() int64 { return f.bits }

// Floor returns the largest integer less than or equal to f.
func (f Fix64) Floor() int32 { return int32(f.bits >> FracBits64) }

func (f Fix64) IsZero() bool { return f.bits == 0 }

func (f Fix64) Sign() int {
	if f.bits > 0 {
		return 1
	} else if f.bits < 0 {
		return -1
	}
	return 0
}

func (f Fix64) Cmp(n Fix64) int {
	if f.bits > n.bits {
		return 1
	} else if f.bits < n.bits {
		return -1
	}
	return 0
}

func (f Fix64) Equal(n Fix64) bool    { return f.bits == n.bits }
func (f Fix64) LessThan(n Fix64) bool { return f.bits < n.bits }

// OverflowingAdd returns f + n, wrapped, and whether the true sum
// overflowed.
func (f Fix64) OverflowingAdd(n Fix64) (Fix64, bool) {
	sum := f.bits + n.bits
	overflow := (f.bits^n.bits) >= 0 && (f.bits^sum) < 0
	return Fix64{bits: sum}, overflow
}

func (f Fix64) WrappingAdd(n Fix64) Fix64 {
	v, _ := f.OverflowingAdd(n)
	return v
}

func (f Fix64) SaturatingAdd(n Fix64) Fix64 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		return fix64Saturate(f.bits >= 0)
	}
	return v
}

// Add returns f + n, panicking on overflow.
func (f Fix64) Add(n Fix64) Fix64 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		panic("fix: fix64 add overflow")
	}
	return v
}

// OverflowingSub returns f - n, wrapped, and whether the true difference
// overflowed.
func (f Fix64) OverflowingSub(n Fix64) (Fix64, bool) {
	diff := f.bits - n.bits
	overflow := (f.bits^n.bits) < 0 && (f.bits^diff) < 0
	return Fix64{bits: diff}, overflow
}

func (f Fix64) WrappingSub(n Fix64) Fix64 {
	v, _ := f.OverflowingSub(n)
	return v
}

func (f Fix64) SaturatingSub(n Fix64) Fix64 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		return fix64Saturate(f.bits >= 0)
	}
	return v
}

// Sub returns f - n, panicking on overflow.
func (f Fix64) Sub(n Fix64) Fix64 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		panic("fix: fix64 sub overflow")
	}
	return v
}

// OverflowingMul returns f * n truncated (toward negative infinity) to the
// type's precision and wrapped, along with whether the true product
// overflowed.
func (f Fix64) OverflowingMul(n Fix64) (Fix64, bool) {
	// Signed widening multiply: the unsigned product corrected for each
	// negative operand's implicit 2^64 excess.
	hi, lo := bits.Mul64(uint64(f.bits), uint64(n.bits))
	if f.bits < 0 {
		hi -= uint64(n.bits)
	}
	if n.bits < 0 {
		hi -= uint64(f.bits)
	}
	v := int64((lo >> FracBits64) | (hi << (64 - FracBits64)))
	overflow := int64(hi)>>FracBits64 != v>>63
	return Fix64{bits: v}, overflow
}

func (f Fix64) WrappingMul(n Fix64) Fix64 {
	v, _ := f.OverflowingMul(n)
	return v
}

func (f Fix64) SaturatingMul(n Fix64) Fix64 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		return fix64Saturate((f.bits < 0) == (n.bits < 0))
	}
	return v
}

// Mul returns f * n, panicking on overflow.
func (f Fix64) Mul(n Fix64) Fix64 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		panic("fix: fix64 mul overflow")
	}
	return v
}

// OverflowingDiv returns f / n truncated toward zero and wrapped, along
// with whether the true quotient overflowed. If n is zero, a
// division-by-zero run-time panic occurs.
func (f Fix64) OverflowingDiv(n Fix64) (Fix64, bool) {
	neg := (f.bits < 0) != (n.bits < 0)

	// uint64 of a wrapped negation is the magnitude, even for MinFix64.
	fa, na := uint64(f.bits), uint64(n.bits)
	if f.bits < 0 {
		fa = -fa
	}
	if n.bits < 0 {
		na = -na
	}

	q, overflow := divWide64(fa, na)
	if neg {
		return Fix64{bits: -int64(q)}, overflow || q > 1<<63
	}
	return Fix64{bits: int64(q)}, overflow || q > maxInt64
}

func (f Fix64) WrappingDiv(n Fix64) Fix64 {
	v, _ := f.OverflowingDiv(n)
	return v
}

func (f Fix64) SaturatingDiv(n Fix64) Fix64 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		return fix64Saturate((f.bits < 0) == (n.bits < 0))
	}
	return v
}

// Div returns f / n, panicking on overflow or if n is zero.
func (f Fix64) Div(n Fix64) Fix64 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		panic("fix: fix64 div overflow")
	}
	return v
}

// OverflowingNeg returns -f, wrapped, and whether it overflowed (only
// MinFix64 does).
func (f Fix64) OverflowingNeg() (Fix64, bool) {
	return Fix64{bits: -f.bits}, f.bits == MinFix64.bits
}

func (f Fix64) WrappingNeg() Fix64 {
	v, _ := f.OverflowingNeg()
	return v
}

func (f Fix64) SaturatingNeg() Fix64 {
	v, overflow := f.OverflowingNeg()
	if overflow {
		return MaxFix64
	}
	return v
}

// Neg returns -f, panicking for MinFix64.
func (f Fix64) Neg() Fix64 {
	v, overflow := f.OverflowingNeg()
	if overflow {
		panic("fix: fix64 neg overflow")
	}
	return v
}

// Abs returns the absolute value of f, panicking for MinFix64.
func (f Fix64) Abs() Fix64 {
	if f.bits < 0 {
		return f.Neg()
	}
	return f
}

// SaturatingAbs returns the absolute value of f, clamping MinFix64 to
// MaxFix64.
func (f Fix64) SaturatingAbs() Fix64 {
	if f.bits < 0 {
		return f.SaturatingNeg()
	}
	return f
}

func fix64Saturate(positive bool) Fix64 {
	if positive {
		return MaxFix64
	}
	return MinFix64
}
