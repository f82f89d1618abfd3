package fix

import (
	"fmt"
	"math/big"
	"math/bits"
)

// I128 is a signed two's complement integer with 128 bits of precision. The
// sign lives in the top bit of the hi limb; lo always holds the raw low bits.
type I128 struct {
	hi, lo uint64
}

// I128FromRaw is the complement to I128.Raw(); it creates an I128 from two
// uint64s representing the hi and lo bits.
func I128FromRaw(hi, lo uint64) I128 {
	return I128{hi: hi, lo: lo}
}

func I128From64(v int64) I128 {
	var hi uint64
	if v < 0 {
		hi = maxUint64
	}
	return I128{hi: hi, lo: uint64(v)}
}

func I128From32(v int32) I128   { return I128From64(int64(v)) }
func I128From16(v int16) I128   { return I128From64(int64(v)) }
func I128From8(v int8) I128     { return I128From64(int64(v)) }
func I128FromInt(v int) I128    { return I128From64(int64(v)) }
func I128FromU64(v uint64) I128 { return I128{lo: v} }

// I128FromString creates an I128 from a string. Overflow truncates to
// MaxI128/MinI128 and sets accurate to 'false'. Only decimal strings are
// currently supported.
func I128FromString(s string) (out I128, accurate bool, err error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return out, false, fmt.Errorf("fix: i128 string %q invalid", s)
	}
	out, accurate = I128FromBigInt(b)
	return out, accurate, nil
}

// I128FromBigInt creates an I128 from a big.Int. Overflow truncates to
// MaxI128/MinI128 and sets accurate to 'false'.
func I128FromBigInt(v *big.Int) (out I128, accurate bool) {
	neg := v.Sign() < 0
	u, uacc := U128FromBigInt(new(big.Int).Abs(v))

	if !neg {
		if !uacc || u.GreaterThan(maxI128AsU128) {
			return MaxI128, false
		}
		return u.AsI128(), true
	}

	if !uacc || u.GreaterThan(minI128AsAbsU128) {
		return MinI128, false
	}
	return u.AsI128().Neg(), true
}

func (i I128) IsZero() bool { return i == zeroI128 }

// Raw returns access to the I128 as a pair of uint64s. See I128FromRaw() for
// the counterpart.
func (i I128) Raw() (hi, lo uint64) { return i.hi, i.lo }

func (i I128) String() string {
	return i.AsBigInt().String()
}

func (i I128) Format(s fmt.State, c rune) {
	i.AsBigInt().Format(s, c)
}

// AsBigInt allocates a new big.Int and copies this I128 into it.
func (i I128) AsBigInt() (b *big.Int) {
	if i.hi&signBit == 0 {
		return i.AsU128().AsBigInt()
	}
	// Negate to the magnitude first; MinI128 wraps to itself under Neg, but
	// its bit pattern read unsigned is exactly the magnitude 1<<127.
	b = i.Neg().AsU128().AsBigInt()
	return b.Neg(b)
}

func (i I128) AsBigFloat() (b *big.Float) {
	return new(big.Float).SetInt(i.AsBigInt())
}

// AsU128 performs a direct cast of an I128 to a U128. Negative numbers
// become values > MaxI128.
func (i I128) AsU128() U128 {
	return U128{hi: i.hi, lo: i.lo}
}

// IsU128 reports whether i can be represented in a U128.
func (i I128) IsU128() bool {
	return i.hi&signBit == 0
}

// AsInt64 truncates the I128 to fit in an int64. Values outside the range
// will over/underflow. See IsInt64() if you want to check before you convert.
func (i I128) AsInt64() int64 {
	return int64(i.lo)
}

// IsInt64 reports whether i can be represented as an int64.
func (i I128) IsInt64() bool {
	if i.hi&signBit != 0 {
		return i.hi == maxUint64 && i.lo >= signBit
	}
	return i.hi == 0 && i.lo <= maxInt64
}

func (i I128) Sign() int {
	if i == zeroI128 {
		return 0
	} else if i.hi&signBit == 0 {
		return 1
	}
	return -1
}

func (i I128) Inc() (v I128) {
	var carry uint64
	v.lo, carry = bits.Add64(i.lo, 1, 0)
	v.hi = i.hi + carry
	return v
}

func (i I128) Dec() (v I128) {
	var borrow uint64
	v.lo, borrow = bits.Sub64(i.lo, 1, 0)
	v.hi = i.hi - borrow
	return v
}

// Add returns i + n; overflow wraps around the 128-bit boundary.
func (i I128) Add(n I128) (v I128) {
	var carry uint64
	v.lo, carry = bits.Add64(i.lo, n.lo, 0)
	v.hi, _ = bits.Add64(i.hi, n.hi, carry)
	return v
}

// Sub returns i - n; overflow wraps around the 128-bit boundary.
func (i I128) Sub(n I128) (v I128) {
	var borrow uint64
	v.lo, borrow = bits.Sub64(i.lo, n.lo, 0)
	v.hi, _ = bits.Sub64(i.hi, n.hi, borrow)
	return v
}

// Neg returns the two's complement negation of i. Neg of MinI128 wraps back
// to MinI128; use Abs().AsU128() if you need the true magnitude.
func (i I128) Neg() (v I128) {
	var borrow uint64
	v.lo, borrow = bits.Sub64(0, i.lo, 0)
	v.hi, _ = bits.Sub64(0, i.hi, borrow)
	return v
}

// Abs returns the absolute value of i. Abs of MinI128 wraps back to MinI128;
// its unsigned reinterpretation is the true magnitude.
func (i I128) Abs() I128 {
	if i.hi&signBit != 0 {
		return i.Neg()
	}
	return i
}

// Cmp compares i to n and returns:
//
//	< 0 if i <  n
//	  0 if i == n
//	> 0 if i >  n
func (i I128) Cmp(n I128) int {
	if i.hi == n.hi && i.lo == n.lo {
		return 0
	} else if i.LessThan(n) {
		return -1
	}
	return 1
}

func (i I128) Equal(n I128) bool {
	return i.hi == n.hi && i.lo == n.lo
}

func (i I128) GreaterThan(n I128) bool {
	return n.LessThan(i)
}

func (i I128) GreaterOrEqualTo(n I128) bool {
	return !i.LessThan(n)
}

func (i I128) LessThan(n I128) bool {
	// Flipping the sign bits makes the signed order coincide with the
	// unsigned order.
	ih, nh := i.hi^signBit, n.hi^signBit
	return ih < nh || (ih == nh && i.lo < n.lo)
}

func (i I128) LessOrEqualTo(n I128) bool {
	return !n.LessThan(i)
}

// Lsh shifts i left by n bits. Bits shifted beyond 128 are discarded.
func (i I128) Lsh(n uint) (v I128) {
	return i.AsU128().Lsh(n).AsI128()
}

// Rsh shifts i right by n bits, sign-extending from the top. Shifts of 128
// or more produce 0 or -1 according to i's sign.
func (i I128) Rsh(n uint) (v I128) {
	if n == 0 {
		return i
	}
	fill := uint64(int64(i.hi) >> 63)
	if n < 64 {
		v.lo = (i.lo >> n) | (i.hi << (64 - n))
		v.hi = uint64(int64(i.hi) >> n)
	} else if n == 64 {
		v.lo = i.hi
		v.hi = fill
	} else if n < 128 {
		v.lo = uint64(int64(i.hi) >> (n - 64))
		v.hi = fill
	} else {
		v.lo = fill
		v.hi = fill
	}
	return v
}

// Mul returns the low 128 bits of the product of i and n; overflow wraps
// around, as per the Go spec. See WideMul for the exact product.
func (i I128) Mul(n I128) (v I128) {
	// Wrapping two's complement multiplication is bit-identical to the
	// unsigned version.
	return i.AsU128().Mul(n.AsU128()).AsI128()
}

// QuoRem returns the quotient q and remainder r for by != 0. If by == 0, a
// division-by-zero run-time panic occurs.
//
// QuoRem implements T-division and modulus (like Go): the quotient truncates
// toward zero, and the remainder takes the dividend's sign.
func (i I128) QuoRem(by I128) (q, r I128) {
	qSign, rSign := 1, 1
	if i.LessThan(zeroI128) {
		qSign, rSign = -1, -1
		i = i.Neg()
	}
	if by.LessThan(zeroI128) {
		qSign = -qSign
		by = by.Neg()
	}

	qu, ru := i.AsU128().QuoRem(by.AsU128())
	q, r = qu.AsI128(), ru.AsI128()
	if qSign < 0 {
		q = q.Neg()
	}
	if rSign < 0 {
		r = r.Neg()
	}
	return q, r
}

// Quo returns the quotient i/by for by != 0. If by == 0, a division-by-zero
// run-time panic occurs. Quo implements truncated division (like Go); see
// QuoRem for more details.
func (i I128) Quo(by I128) (q I128) {
	q, _ = i.QuoRem(by)
	return q
}

// Rem returns the remainder of i%by for by != 0. If by == 0, a
// division-by-zero run-time panic occurs. Rem implements truncated modulus
// (like Go); see QuoRem for more details.
func (i I128) Rem(by I128) (r I128) {
	_, r = i.QuoRem(by)
	return r
}

func (i I128) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *I128) UnmarshalText(bts []byte) (err error) {
	v, _, err := I128FromString(string(bts))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i I128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

func (i *I128) UnmarshalJSON(bts []byte) (err error) {
	if bts[0] == '"' {
		ln := len(bts)
		if bts[ln-1] != '"' {
			return fmt.Errorf("fix: i128 invalid JSON %q", string(bts))
		}
		bts = bts[1 : ln-1]
	}

	v, _, err := I128FromString(string(bts))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
