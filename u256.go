package fix

import (
	"fmt"
	"math/big"
	"math/bits"
)

// U256 is an unsigned integer with 256 bits of precision, built from two
// U128 limbs: the represented value is hi<<128 | lo. Every bit pattern is a
// valid value.
//
// U256 exists to carry the exact intermediate of 128-bit fixed-point
// arithmetic: the full product of a multiply, or the widened dividend of a
// divide. Values are created transiently inside a single operation and never
// persisted.
type U256 struct {
	hi, lo U128
}

func U256FromRaw(hi, lo U128) U256 { return U256{hi: hi, lo: lo} }

// U256From128 zero-extends a U128 to 256 bits.
func U256From128(v U128) U256 { return U256{lo: v} }

func U256From64(v uint64) U256 { return U256{lo: U128{lo: v}} }

// U256FromBigInt creates a U256 from a big.Int. Overflow truncates to
// MaxU256 and sets accurate to 'false'; negative values truncate to zero.
func U256FromBigInt(v *big.Int) (out U256, accurate bool) {
	if v.Sign() < 0 {
		return out, false
	}
	if v.BitLen() > 256 {
		return MaxU256, false
	}
	var t big.Int
	out.lo, _ = U128FromBigInt(t.And(v, maxBigU128))
	out.hi, _ = U128FromBigInt(t.Rsh(v, 128))
	return out, true
}

func (u U256) IsZero() bool { return u.hi.IsZero() && u.lo.IsZero() }

// Raw returns access to the U256 as a pair of U128 limbs. See U256FromRaw()
// for the counterpart.
func (u U256) Raw() (hi, lo U128) { return u.hi, u.lo }

func (u U256) String() string {
	if u.hi.IsZero() {
		return u.lo.String()
	}
	return u.AsBigInt().String()
}

func (u U256) Format(s fmt.State, c rune) {
	u.AsBigInt().Format(s, c)
}

func (u U256) AsBigInt() (b *big.Int) {
	b = u.hi.AsBigInt()
	b.Lsh(b, 128)
	return b.Or(b, u.lo.AsBigInt())
}

// AsI256 reinterprets the bit pattern of u as a signed 256-bit value. This
// is a wrapping cast, used when a result is known to fit.
func (u U256) AsI256() I256 {
	return I256{hi: u.hi.AsI128(), lo: u.lo}
}

// AsU128 truncates the U256 to its low 128 bits. See IsU128() if you want to
// check before you convert.
func (u U256) AsU128() U128 { return u.lo }

// IsU128 reports whether u can be represented in a U128.
func (u U256) IsU128() bool { return u.hi.IsZero() }

func (u U256) Cmp(n U256) int {
	if c := u.hi.Cmp(n.hi); c != 0 {
		return c
	}
	return u.lo.Cmp(n.lo)
}

func (u U256) Equal(n U256) bool    { return u.hi.Equal(n.hi) && u.lo.Equal(n.lo) }
func (u U256) LessThan(n U256) bool { return u.Cmp(n) < 0 }

// Add returns u + n; overflow wraps around the 256-bit boundary.
func (u U256) Add(n U256) (v U256) {
	v, _ = u.OverflowingAdd(n)
	return v
}

// OverflowingAdd returns u + n along with whether a carry out of the top
// limb occurred.
func (u U256) OverflowingAdd(n U256) (v U256, carry bool) {
	var c0, c1, c2 uint64
	v.lo, c0 = u.lo.addCarry(n.lo)
	v.hi, c1 = u.hi.addCarry(n.hi)
	v.hi, c2 = v.hi.addCarry(U128{lo: c0})
	return v, c1|c2 != 0
}

// Sub returns u - n; underflow wraps around zero.
func (u U256) Sub(n U256) (v U256) {
	var borrow uint64
	v.lo, borrow = u.lo.subBorrow(n.lo)
	v.hi = u.hi.Sub(n.hi).Sub(U128{lo: borrow})
	return v
}

// Neg returns the two's complement negation of u, wrapping.
func (u U256) Neg() (v U256) {
	var carry uint64
	v.lo, carry = u.lo.Not().addCarry(U128{lo: 1})
	v.hi = u.hi.Not().Add(U128{lo: carry})
	return v
}

// AddU128 returns u + n (zero-extended); overflow wraps.
func (u U256) AddU128(n U128) (v U256) {
	var carry uint64
	v.lo, carry = u.lo.addCarry(n)
	v.hi = u.hi.Add(U128{lo: carry})
	return v
}

func (u U256) LeadingZeros() uint {
	if u.hi.IsZero() {
		return u.lo.LeadingZeros() + 128
	}
	return u.hi.LeadingZeros()
}

// Rsh shifts u right by n bits, shifting in zeros. The shift count must be
// in [0, 128]; this covers every rescale the fixed-point layer performs, and
// the 0 and 128 counts are handled without relying on full-width shifts.
func (u U256) Rsh(n uint) (v U256) {
	if n == 0 {
		return u
	} else if n == 128 {
		return U256{lo: u.hi}
	}
	v.lo = u.lo.Rsh(n).Or(u.hi.Lsh(128 - n))
	v.hi = u.hi.Rsh(n)
	return v
}

// Lsh shifts u left by n bits, n in [0, 128].
func (u U256) Lsh(n uint) (v U256) {
	if n == 0 {
		return u
	} else if n == 128 {
		return U256{hi: u.lo}
	}
	v.hi = u.hi.Lsh(n).Or(u.lo.Rsh(128 - n))
	v.lo = u.lo.Lsh(n)
	return v
}

// RshNarrow shifts u right by n bits (n in [0, 128]) and narrows the result
// to 128 bits, reporting whether any discarded high bits were non-zero. The
// flag is how fixed-point multiplication detects that a rescaled product
// does not fit back into the native width.
func (u U256) RshNarrow(n uint) (v U128, overflow bool) {
	if n == 128 {
		return u.hi, false
	} else if n == 0 {
		return u.lo, !u.hi.IsZero()
	}
	v = u.lo.Rsh(n).Or(u.hi.Lsh(128 - n))
	return v, !u.hi.Rsh(n).IsZero()
}

// WideMul returns the exact 256-bit product of u and n. No overflow is
// possible: two 128-bit operands always fit in 256 bits.
//
// A 128x128 multiply is not a primitive here, so each operand is split into
// two 64-bit halves and the four 64x64->128 partial products are accumulated
// into three 128-bit columns at bit offsets 0, 64 and 128, with each
// column's overflow carried explicitly into the next. The bounds noted at
// each step show that no accumulation can overflow its 128-bit column.
func (u U128) WideMul(n U128) (out U256) {
	// 0 <= each partial product <= 2^128 - 2^65 + 1.
	llrl := mul64(u.lo, n.lo) // unit is 1
	lhrl := mul64(u.hi, n.lo) // unit is 2^64
	llrh := mul64(u.lo, n.hi) // unit is 2^64
	lhrh := mul64(u.hi, n.hi) // unit is 2^128

	// 0 <= col0 <= 2^64 - 1; 0 <= col64a <= 2^64 - 2.
	col0, col64a := llrl.lo, llrl.hi

	// col64a + lhrl <= 2^128 - 2^64 - 1: no carry out.
	col64b := lhrl.Add(U128{lo: col64a})

	// 0 <= col64c <= 2^64 - 1; 0 <= col128a <= 2^64 - 2.
	col64c, col128a := col64b.lo, col64b.hi

	// col64c + llrh <= 2^128 - 2^64: no carry out.
	col64d := llrh.Add(U128{lo: col64c})

	// 0 <= col64 <= 2^64 - 1; 0 <= col128b <= 2^64 - 1.
	col64, col128b := col64d.lo, col64d.hi

	out.lo = U128{hi: col64, lo: col0}
	// u*n fits in 256 bits, so the top column cannot overflow.
	out.hi = lhrh.Add(U128{lo: col128a}).Add(U128{lo: col128b})
	return out
}

// WideLsh shifts u left by n bits (n in [0, 128]) into a zero-extended
// 256-bit result. Fixed-point division widens its dividend this way before
// dividing, so the fractional alignment survives the division.
func (u U128) WideLsh(n uint) U256 {
	return U256{hi: u.Rsh(128 - n), lo: u.Lsh(n)}
}

func mul64(a, b uint64) (out U128) {
	out.hi, out.lo = bits.Mul64(a, b)
	return out
}

// QuoRem128 divides u by the non-zero 128-bit divisor 'by', returning a
// 256-bit quotient and a 128-bit remainder such that q*by + r == u and
// 0 <= r < by.
//
// The division is performed as normalized long division in 64-bit half-limb
// steps: divisor and dividend are first shifted left by the divisor's
// leading zero count so the divisor's top bit is set, which is what bounds
// the per-step estimate's error (see divStep128by64); the remainder is
// shifted back down at the end.
func (u U256) QuoRem128(by NonZeroU128) (q U256, r U128) {
	d := by.Get()
	n := u

	z := d.LeadingZeros()
	if z > 0 {
		r = n.hi.Rsh(128 - z)
		n.hi = n.hi.Lsh(z).Or(n.lo.Rsh(128 - z))
		n.lo = n.lo.Lsh(z)
		d = d.Lsh(z)
	}

	// d now has its most significant bit set; each step consumes one 64-bit
	// half-limb of the normalized dividend, most significant first.
	var qhh, qhl, qlh, qll uint64
	r, qhh = divStep128by64(r, d, n.hi.hi)
	r, qhl = divStep128by64(r, d, n.hi.lo)
	r, qlh = divStep128by64(r, d, n.lo.hi)
	r, qll = divStep128by64(r, d, n.lo.lo)

	q = U256{
		hi: U128{hi: qhh, lo: qhl},
		lo: U128{hi: qlh, lo: qll},
	}
	r = r.Rsh(z)
	return q, r
}

// Quo128 returns just the quotient of QuoRem128.
func (u U256) Quo128(by NonZeroU128) (q U256) {
	q, _ = u.QuoRem128(by)
	return q
}

// Rem128 returns just the remainder of QuoRem128.
func (u U256) Rem128(by NonZeroU128) (r U128) {
	_, r = u.QuoRem128(by)
	return r
}

// divStep128by64 performs one half-limb step of normalized long division:
// it divides r<<64 | next by d, returning the new remainder and the 64-bit
// quotient half-limb.
//
// Preconditions, maintained by QuoRem128 and not rechecked here: d is
// normalized (top bit set, so d.hi is non-zero), and r < d.
func divStep128by64(r U128, d U128, next uint64) (U128, uint64) {
	// Estimate the quotient from the remainder and the divisor's high limb.
	// r < d means r.hi <= d.hi; the equal case pushes the estimate to
	// 2^64 + r.lo/d.hi, one past what a single 64-bit divide can produce, so
	// the estimate is tracked as a U128. It exceeds the true quotient
	// half-limb by at most 2.
	var q U128
	var rr uint64
	if r.hi < d.hi {
		q.lo, rr = bits.Div64(r.hi, r.lo, d.hi)
	} else {
		q.hi = 1
		q.lo = r.lo / d.hi
		rr = r.lo % d.hi
	}

	// m = estimate * d.lo. Estimate <= 2^64 + 1 and d.lo <= 2^64 - 1, so
	// m <= 2^128 - 1: the U128 cannot overflow.
	m := mul64(q.lo, d.lo)
	if q.hi != 0 {
		m.hi += d.lo
	}

	rem := U128{hi: rr, lo: next}
	if rem.LessThan(m) {
		q = q.Dec()
		fixed, carry := rem.addCarry(d)
		if carry == 0 && fixed.LessThan(m) {
			q = q.Dec()
			fixed = fixed.Add(d)
		}
		rem = fixed
	}
	rem = rem.Sub(m)
	return rem, q.lo
}
