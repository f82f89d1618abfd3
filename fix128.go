package fix

// FracBits128 is the number of fractional bits in UFix128 and Fix128: both
// are Q64.64 numbers, so a value is its raw bits scaled by 2^-64.
const FracBits128 = 64

var (
	MaxUFix128   = UFix128{bits: MaxU128}
	UFix128One   = UFix128{bits: U128{hi: 1}}
	UFix128Delta = UFix128{bits: U128{lo: 1}}

	MaxFix128   = Fix128{bits: MaxI128}
	MinFix128   = Fix128{bits: MinI128}
	Fix128One   = Fix128{bits: I128{hi: 1}}
	Fix128Delta = Fix128{bits: I128{lo: 1}}
)

// UFix128 is an unsigned binary fixed-point number: 128 bits, of which the
// low 64 are fractional. The representable range is [0, 2^64) with a step of
// 2^-64.
//
// Arithmetic comes in four flavours; see the package documentation. The
// Overflowing form is primitive: it always returns the wrapped result plus a
// flag, computed from the exact double-width intermediate, and the wrapping,
// saturating and panicking forms are built on it.
type UFix128 struct {
	bits U128
}

// UFix128FromBits creates a UFix128 from its raw representation; the value
// is v scaled by 2^-64.
func UFix128FromBits(v U128) UFix128 { return UFix128{bits: v} }

// UFix128From64 creates a UFix128 holding the integer v. All uint64 values
// are exactly representable.
func UFix128From64(v uint64) UFix128 { return UFix128{bits: U128{hi: v}} }

// Bits returns the raw representation of f.
func (f UFix128) Bits() U128 { return f.bits }

// Floor returns the largest integer less than or equal to f.
func (f UFix128) Floor() uint64 { return f.bits.hi }

// Frac returns the fractional bits of f as a 0.64 fixed-point value.
func (f UFix128) Frac() uint64 { return f.bits.lo }

func (f UFix128) IsZero() bool            { return f.bits.IsZero() }
func (f UFix128) Cmp(n UFix128) int       { return f.bits.Cmp(n.bits) }
func (f UFix128) Equal(n UFix128) bool    { return f.bits.Equal(n.bits) }
func (f UFix128) LessThan(n UFix128) bool { return f.bits.LessThan(n.bits) }

// OverflowingAdd returns f + n, wrapped to the type's width, and whether the
// true sum overflowed.
func (f UFix128) OverflowingAdd(n UFix128) (UFix128, bool) {
	v, carry := f.bits.addCarry(n.bits)
	return UFix128{bits: v}, carry != 0
}

func (f UFix128) WrappingAdd(n UFix128) UFix128 {
	v, _ := f.OverflowingAdd(n)
	return v
}

func (f UFix128) SaturatingAdd(n UFix128) UFix128 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		return MaxUFix128
	}
	return v
}

// Add returns f + n, panicking on overflow.
func (f UFix128) Add(n UFix128) UFix128 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		panic("fix: ufix128 add overflow")
	}
	return v
}

// OverflowingSub returns f - n, wrapped to the type's width, and whether the
// true difference underflowed below zero.
func (f UFix128) OverflowingSub(n UFix128) (UFix128, bool) {
	v, borrow := f.bits.subBorrow(n.bits)
	return UFix128{bits: v}, borrow != 0
}

func (f UFix128) WrappingSub(n UFix128) UFix128 {
	v, _ := f.OverflowingSub(n)
	return v
}

func (f UFix128) SaturatingSub(n UFix128) UFix128 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		return UFix128{}
	}
	return v
}

// Sub returns f - n, panicking on underflow.
func (f UFix128) Sub(n UFix128) UFix128 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		panic("fix: ufix128 sub overflow")
	}
	return v
}

// OverflowingMul returns f * n truncated to the type's precision and
// wrapped to its width, along with whether the true product overflowed.
//
// The product is computed exactly in 256 bits and rescaled by the
// fractional width; the overflow flag reports whether the rescaled product
// had any bits above the 128th.
func (f UFix128) OverflowingMul(n UFix128) (UFix128, bool) {
	v, overflow := f.bits.WideMul(n.bits).RshNarrow(FracBits128)
	return UFix128{bits: v}, overflow
}

func (f UFix128) WrappingMul(n UFix128) UFix128 {
	v, _ := f.OverflowingMul(n)
	return v
}

func (f UFix128) SaturatingMul(n UFix128) UFix128 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		return MaxUFix128
	}
	return v
}

// Mul returns f * n, panicking on overflow.
func (f UFix128) Mul(n UFix128) UFix128 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		panic("fix: ufix128 mul overflow")
	}
	return v
}

// OverflowingDiv returns f / n truncated toward zero and wrapped to the
// type's width, along with whether the true quotient overflowed. If n is
// zero, a division-by-zero run-time panic occurs.
//
// The dividend is widened by the fractional width before dividing, so the
// quotient comes out already scaled; overflow means the quotient's integer
// part needed more than 64 bits.
func (f UFix128) OverflowingDiv(n UFix128) (UFix128, bool) {
	nz, err := NewNonZeroU128(n.bits)
	if err != nil {
		panic("fix: division by zero")
	}
	q, _ := f.bits.WideLsh(FracBits128).QuoRem128(nz)
	return UFix128{bits: q.lo}, !q.hi.IsZero()
}

func (f UFix128) WrappingDiv(n UFix128) UFix128 {
	v, _ := f.OverflowingDiv(n)
	return v
}

func (f UFix128) SaturatingDiv(n UFix128) UFix128 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		return MaxUFix128
	}
	return v
}

// Div returns f / n, panicking on overflow or if n is zero.
func (f UFix128) Div(n UFix128) UFix128 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		panic("fix: ufix128 div overflow")
	}
	return v
}

// Fix128 is a signed binary fixed-point number: 128 bits, of which the low
// 64 are fractional. The representable range is [-2^63, 2^63) with a step
// of 2^-64. See UFix128 for the arithmetic flavours.
type Fix128 struct {
	bits I128
}

// Fix128FromBits creates a Fix128 from its raw representation; the value is
// v scaled by 2^-64.
func Fix128FromBits(v I128) Fix128 { return Fix128{bits: v} }

// Fix128From64 creates a Fix128 holding the integer v. All int64 values are
// exactly representable.
func Fix128From64(v int64) Fix128 {
	return Fix128{bits: I128{hi: uint64(v)}}
}

// Bits returns the raw representation of f.
func (f Fix128) Bits() I128 { return f.bits }

// Floor returns the largest integer less than or equal to f.
func (f Fix128) Floor() int64 { return int64(f.bits.hi) }

func (f Fix128) IsZero() bool           { return f.bits.IsZero() }
func (f Fix128) Sign() int              { return f.bits.Sign() }
func (f Fix128) Cmp(n Fix128) int       { return f.bits.Cmp(n.bits) }
func (f Fix128) Equal(n Fix128) bool    { return f.bits.Equal(n.bits) }
func (f Fix128) LessThan(n Fix128) bool { return f.bits.LessThan(n.bits) }

// OverflowingAdd returns f + n, wrapped to the type's width, and whether
// the true sum overflowed.
func (f Fix128) OverflowingAdd(n Fix128) (Fix128, bool) {
	v := f.bits.Add(n.bits)
	// Overflow iff the operands agree in sign and the result does not.
	overflow := (f.bits.hi^n.bits.hi)&signBit == 0 && (f.bits.hi^v.hi)&signBit != 0
	return Fix128{bits: v}, overflow
}

func (f Fix128) WrappingAdd(n Fix128) Fix128 {
	v, _ := f.OverflowingAdd(n)
	return v
}

func (f Fix128) SaturatingAdd(n Fix128) Fix128 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		return fix128Saturate(f.bits.hi&signBit == 0)
	}
	return v
}

// Add returns f + n, panicking on overflow.
func (f Fix128) Add(n Fix128) Fix128 {
	v, overflow := f.OverflowingAdd(n)
	if overflow {
		panic("fix: fix128 add overflow")
	}
	return v
}

// OverflowingSub returns f - n, wrapped to the type's width, and whether
// the true difference overflowed.
func (f Fix128) OverflowingSub(n Fix128) (Fix128, bool) {
	v := f.bits.Sub(n.bits)
	overflow := (f.bits.hi^n.bits.hi)&signBit != 0 && (f.bits.hi^v.hi)&signBit != 0
	return Fix128{bits: v}, overflow
}

func (f Fix128) WrappingSub(n Fix128) Fix128 {
	v, _ := f.OverflowingSub(n)
	return v
}

func (f Fix128) SaturatingSub(n Fix128) Fix128 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		return fix128Saturate(f.bits.hi&signBit == 0)
	}
	return v
}

// Sub returns f - n, panicking on overflow.
func (f Fix128) Sub(n Fix128) Fix128 {
	v, overflow := f.OverflowingSub(n)
	if overflow {
		panic("fix: fix128 sub overflow")
	}
	return v
}

// OverflowingMul returns f * n truncated (toward negative infinity) to the
// type's precision and wrapped to its width, along with whether the true
// product overflowed.
func (f Fix128) OverflowingMul(n Fix128) (Fix128, bool) {
	v, overflow := f.bits.WideMul(n.bits).RshNarrow(FracBits128)
	return Fix128{bits: v}, overflow
}

func (f Fix128) WrappingMul(n Fix128) Fix128 {
	v, _ := f.OverflowingMul(n)
	return v
}

func (f Fix128) SaturatingMul(n Fix128) Fix128 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		return fix128Saturate(f.bits.hi&signBit == n.bits.hi&signBit)
	}
	return v
}

// Mul returns f * n, panicking on overflow.
func (f Fix128) Mul(n Fix128) Fix128 {
	v, overflow := f.OverflowingMul(n)
	if overflow {
		panic("fix: fix128 mul overflow")
	}
	return v
}

// OverflowingDiv returns f / n truncated toward zero and wrapped to the
// type's width, along with whether the true quotient overflowed. If n is
// zero, a division-by-zero run-time panic occurs.
func (f Fix128) OverflowingDiv(n Fix128) (Fix128, bool) {
	nz, err := NewNonZeroI128(n.bits)
	if err != nil {
		panic("fix: division by zero")
	}
	q, _ := f.bits.WideLsh(FracBits128).QuoRem128(nz)
	return Fix128{bits: q.AsI128()}, !q.IsI128()
}

func (f Fix128) WrappingDiv(n Fix128) Fix128 {
	v, _ := f.OverflowingDiv(n)
	return v
}

func (f Fix128) SaturatingDiv(n Fix128) Fix128 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		return fix128Saturate(f.bits.hi&signBit == n.bits.hi&signBit)
	}
	return v
}

// Div returns f / n, panicking on overflow or if n is zero.
func (f Fix128) Div(n Fix128) Fix128 {
	v, overflow := f.OverflowingDiv(n)
	if overflow {
		panic("fix: fix128 div overflow")
	}
	return v
}

// OverflowingNeg returns -f, wrapped, and whether it overflowed (only
// MinFix128 does).
func (f Fix128) OverflowingNeg() (Fix128, bool) {
	return Fix128{bits: f.bits.Neg()}, f.bits == MinI128
}

func (f Fix128) WrappingNeg() Fix128 {
	v, _ := f.OverflowingNeg()
	return v
}

func (f Fix128) SaturatingNeg() Fix128 {
	v, overflow := f.OverflowingNeg()
	if overflow {
		return MaxFix128
	}
	return v
}

// Neg returns -f, panicking for MinFix128.
func (f Fix128) Neg() Fix128 {
	v, overflow := f.OverflowingNeg()
	if overflow {
		panic("fix: fix128 neg overflow")
	}
	return v
}

// Abs returns the absolute value of f, panicking for MinFix128.
func (f Fix128) Abs() Fix128 {
	if f.bits.hi&signBit != 0 {
		return f.Neg()
	}
	return f
}

// SaturatingAbs returns the absolute value of f, clamping MinFix128 to
// MaxFix128.
func (f Fix128) SaturatingAbs() Fix128 {
	if f.bits.hi&signBit != 0 {
		return f.SaturatingNeg()
	}
	return f
}

func fix128Saturate(positive bool) Fix128 {
	if positive {
		return MaxFix128
	}
	return MinFix128
}
