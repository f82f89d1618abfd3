package fix

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// formatFixedBits renders the signed raw bits b of a fixed-point number with
// fracBits fractional bits as an exact decimal string. A fraction of n binary
// digits always terminates within n decimal digits, because f/2^n == f*5^n/10^n,
// so no rounding is ever needed; trailing zeros are trimmed.
func formatFixedBits(b *big.Int, fracBits uint) string {
	var sign string
	if b.Sign() < 0 {
		sign = "-"
	}
	a := new(big.Int).Abs(b)

	fp := new(big.Int)
	ip, _ := new(big.Int).QuoRem(a, new(big.Int).Lsh(big1, fracBits), fp)
	if fp.Sign() == 0 {
		return sign + ip.String()
	}

	fp.Mul(fp, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(fracBits)), nil))
	digits := fp.String()
	if pad := int(fracBits) - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return sign + ip.String() + "." + strings.TrimRight(digits, "0")
}

// parseFixedBits parses a plain decimal string, optionally signed and with an
// optional fractional part, into the raw bits of a fixed-point number with
// fracBits fractional bits. Fractional precision beyond what the format can
// hold truncates toward zero. Range checking is left to the caller.
func parseFixedBits(s string, fracBits uint) (*big.Int, error) {
	digits := s
	neg := false
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		neg = digits[0] == '-'
		digits = digits[1:]
	}

	ipStr, fpStr := digits, ""
	if idx := strings.IndexByte(digits, '.'); idx >= 0 {
		ipStr, fpStr = digits[:idx], digits[idx+1:]
	}
	if len(ipStr) == 0 && len(fpStr) == 0 {
		return nil, errors.Errorf("fix: invalid fixed-point string %q", s)
	}
	for i := 0; i < len(ipStr); i++ {
		if ipStr[i] < '0' || ipStr[i] > '9' {
			return nil, errors.Errorf("fix: invalid fixed-point string %q", s)
		}
	}
	for i := 0; i < len(fpStr); i++ {
		if fpStr[i] < '0' || fpStr[i] > '9' {
			return nil, errors.Errorf("fix: invalid fixed-point string %q", s)
		}
	}

	// ip.fp scaled by 10^len(fp) is the integer ip||fp; scale up by the
	// fractional width first so the decimal divide is the only truncation.
	num, _ := new(big.Int).SetString(ipStr+fpStr, 10)
	num.Lsh(num, fracBits)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fpStr))), nil)
	num.Quo(num, scale)
	if neg {
		num.Neg(num)
	}
	return num, nil
}

// ParseUFix128 parses a decimal string like "1234.5" into a UFix128,
// truncating excess fractional precision toward zero. Values outside the
// type's range are an error.
func ParseUFix128(s string) (UFix128, error) {
	b, err := parseFixedBits(s, FracBits128)
	if err != nil {
		return UFix128{}, err
	}
	v, acc := U128FromBigInt(b)
	if !acc {
		return UFix128{}, errors.Errorf("fix: ufix128 value %s out of range", s)
	}
	return UFix128{bits: v}, nil
}

// ParseFix128 parses a decimal string into a Fix128. See ParseUFix128.
func ParseFix128(s string) (Fix128, error) {
	b, err := parseFixedBits(s, FracBits128)
	if err != nil {
		return Fix128{}, err
	}
	v, acc := I128FromBigInt(b)
	if !acc {
		return Fix128{}, errors.Errorf("fix: fix128 value %s out of range", s)
	}
	return Fix128{bits: v}, nil
}

// ParseUFix64 parses a decimal string into a UFix64. See ParseUFix128.
func ParseUFix64(s string) (UFix64, error) {
	b, err := parseFixedBits(s, FracBits64)
	if err != nil {
		return UFix64{}, err
	}
	if b.Sign() < 0 || b.BitLen() > 64 {
		return UFix64{}, errors.Errorf("fix: ufix64 value %s out of range", s)
	}
	return UFix64{bits: b.Uint64()}, nil
}

// ParseFix64 parses a decimal string into a Fix64. See ParseUFix128.
func ParseFix64(s string) (Fix64, error) {
	b, err := parseFixedBits(s, FracBits64)
	if err != nil {
		return Fix64{}, err
	}
	if !b.IsInt64() {
		return Fix64{}, errors.Errorf("fix: fix64 value %s out of range", s)
	}
	return Fix64{bits: b.Int64()}, nil
}

func (f UFix128) String() string { return formatFixedBits(f.bits.AsBigInt(), FracBits128) }
func (f Fix128) String() string  { return formatFixedBits(f.bits.AsBigInt(), FracBits128) }
func (f UFix64) String() string  { return formatFixedBits(new(big.Int).SetUint64(f.bits), FracBits64) }
func (f Fix64) String() string   { return formatFixedBits(big.NewInt(f.bits), FracBits64) }

// AsFloat64 converts f to the nearest float64. The raw bits round to 53
// significant bits once; the scale adjustment is exact.
func (f UFix128) AsFloat64() float64 {
	v, _ := f.bits.AsBigFloat().Float64()
	return math.Ldexp(v, -FracBits128)
}

func (f Fix128) AsFloat64() float64 {
	v, _ := f.bits.AsBigFloat().Float64()
	return math.Ldexp(v, -FracBits128)
}

func (f UFix64) AsFloat64() float64 { return math.Ldexp(float64(f.bits), -FracBits64) }
func (f Fix64) AsFloat64() float64  { return math.Ldexp(float64(f.bits), -FracBits64) }

// UFix128FromFloat64 converts v to a UFix128, truncating excess fractional
// precision toward zero. inRange is false, and the result zero, if v is NaN,
// infinite, or outside the type's range after truncation.
func UFix128FromFloat64(v float64) (out UFix128, inRange bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return UFix128{}, false
	}
	bf := new(big.Float).SetFloat64(v)
	bf.SetMantExp(bf, FracBits128)
	b, _ := bf.Int(nil)
	bits, acc := U128FromBigInt(b)
	if !acc {
		return UFix128{}, false
	}
	return UFix128{bits: bits}, true
}

// Fix128FromFloat64 converts v to a Fix128. See UFix128FromFloat64.
func Fix128FromFloat64(v float64) (out Fix128, inRange bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fix128{}, false
	}
	bf := new(big.Float).SetFloat64(v)
	bf.SetMantExp(bf, FracBits128)
	b, _ := bf.Int(nil)
	bits, acc := I128FromBigInt(b)
	if !acc {
		return Fix128{}, false
	}
	return Fix128{bits: bits}, true
}

// UFix64FromFloat64 converts v to a UFix64. See UFix128FromFloat64.
func UFix64FromFloat64(v float64) (out UFix64, inRange bool) {
	if math.IsNaN(v) {
		return UFix64{}, false
	}
	scaled := math.Trunc(math.Ldexp(v, FracBits64))
	if scaled < 0 || scaled >= 1<<64 {
		return UFix64{}, false
	}
	return UFix64{bits: uint64(scaled)}, true
}

// Fix64FromFloat64 converts v to a Fix64. See UFix128FromFloat64.
func Fix64FromFloat64(v float64) (out Fix64, inRange bool) {
	if math.IsNaN(v) {
		return Fix64{}, false
	}
	scaled := math.Trunc(math.Ldexp(v, FracBits64))
	if scaled >= 1<<63 || scaled < -(1<<63) {
		return Fix64{}, false
	}
	return Fix64{bits: int64(scaled)}, true
}

func unquoteJSON(bts []byte, typ string) ([]byte, error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if bts[ln-1] != '"' {
			return nil, errors.Errorf("fix: %s invalid JSON %q", typ, string(bts))
		}
		bts = bts[1 : ln-1]
	}
	return bts, nil
}

func (f UFix128) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *UFix128) UnmarshalText(bts []byte) error {
	v, err := ParseUFix128(string(bts))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f UFix128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *UFix128) UnmarshalJSON(bts []byte) error {
	bts, err := unquoteJSON(bts, "ufix128")
	if err != nil {
		return err
	}
	return f.UnmarshalText(bts)
}

func (f Fix128) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Fix128) UnmarshalText(bts []byte) error {
	v, err := ParseFix128(string(bts))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Fix128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *Fix128) UnmarshalJSON(bts []byte) error {
	bts, err := unquoteJSON(bts, "fix128")
	if err != nil {
		return err
	}
	return f.UnmarshalText(bts)
}

func (f UFix64) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *UFix64) UnmarshalText(bts []byte) error {
	v, err := ParseUFix64(string(bts))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f UFix64) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *UFix64) UnmarshalJSON(bts []byte) error {
	bts, err := unquoteJSON(bts, "ufix64")
	if err != nil {
		return err
	}
	return f.UnmarshalText(bts)
}

func (f Fix64) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Fix64) UnmarshalText(bts []byte) error {
	v, err := ParseFix64(string(bts))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Fix64) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *Fix64) UnmarshalJSON(bts []byte) error {
	bts, err := unquoteJSON(bts, "fix64")
	if err != nil {
		return err
	}
	return f.UnmarshalText(bts)
}
