package fix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func uf128(s string) UFix128 {
	v, err := ParseUFix128(s)
	if err != nil {
		panic(err)
	}
	return v
}

func f128(s string) Fix128 {
	v, err := ParseFix128(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestUFix128Constants(t *testing.T) {
	require.Equal(t, uint64(1), UFix128One.Floor())
	require.Equal(t, uint64(0), UFix128One.Frac())
	require.Equal(t, uint64(maxUint64), MaxUFix128.Floor())
	require.Equal(t, uint64(maxUint64), MaxUFix128.Frac())
	require.True(t, UFix128Delta.LessThan(UFix128One))
	require.True(t, MaxUFix128.Equal(UFix128FromBits(MaxU128)))
}

func TestUFix128Add(t *testing.T) {
	require.True(t, uf128("3").Equal(uf128("1").Add(uf128("2"))))
	require.True(t, uf128("2").Equal(uf128("0.5").Add(uf128("1.5"))))

	v, overflow := MaxUFix128.OverflowingAdd(UFix128Delta)
	require.True(t, overflow)
	require.True(t, v.IsZero()) // wraps

	require.True(t, MaxUFix128.Equal(MaxUFix128.SaturatingAdd(UFix128One)))
	require.True(t, UFix128{}.Equal(MaxUFix128.WrappingAdd(UFix128Delta)))
	require.Panics(t, func() { MaxUFix128.Add(UFix128Delta) })
}

func TestUFix128Sub(t *testing.T) {
	require.True(t, uf128("1").Equal(uf128("3").Sub(uf128("2"))))
	require.True(t, uf128("0.25").Equal(uf128("1").Sub(uf128("0.75"))))

	v, overflow := UFix128{}.OverflowingSub(UFix128Delta)
	require.True(t, overflow)
	require.True(t, v.Equal(MaxUFix128)) // wraps

	require.True(t, UFix128{}.Equal(uf128("1").SaturatingSub(uf128("2"))))
	require.Panics(t, func() { uf128("1").Sub(uf128("2")) })
}

func TestUFix128Mul(t *testing.T) {
	require.True(t, uf128("3").Equal(uf128("1.5").Mul(uf128("2"))))
	require.True(t, uf128("0.25").Equal(uf128("0.5").Mul(uf128("0.5"))))
	require.True(t, UFix128FromBits(MaxU128.Sub(u64(1))).Equal(MaxUFix128.WrappingMul(uf128("2"))))

	// The product of two deltas is below the type's precision and truncates
	// to zero.
	require.True(t, UFix128Delta.Mul(UFix128Delta).IsZero())

	big := UFix128From64(1 << 32)
	v, overflow := big.OverflowingMul(big) // 2^64 is one past the range
	require.True(t, overflow)
	require.True(t, v.IsZero())
	require.True(t, MaxUFix128.Equal(big.SaturatingMul(big)))
	require.Panics(t, func() { big.Mul(big) })
}

func TestUFix128Div(t *testing.T) {
	require.True(t, uf128("1.5").Equal(uf128("3").Div(uf128("2"))))
	require.True(t, uf128("4").Equal(uf128("1").Div(uf128("0.25"))))

	// 1/3 truncates to floor(2^64/3) fractional bits.
	third := uf128("1").Div(uf128("3"))
	require.True(t, third.Bits().Equal(u64(6148914691236517205)))

	v, overflow := MaxUFix128.OverflowingDiv(UFix128Delta)
	require.True(t, overflow)
	require.True(t, v.Equal(UFix128FromBits(MaxU128.Lsh(64)))) // wrapped low bits
	require.True(t, MaxUFix128.Equal(MaxUFix128.SaturatingDiv(UFix128Delta)))
	require.Panics(t, func() { MaxUFix128.Div(UFix128Delta) })

	require.Panics(t, func() { uf128("1").WrappingDiv(UFix128{}) })
}

func TestUFix128Cmp(t *testing.T) {
	require.Equal(t, -1, uf128("1").Cmp(uf128("1.5")))
	require.Equal(t, 0, uf128("1.5").Cmp(uf128("1.5")))
	require.Equal(t, 1, uf128("2").Cmp(uf128("1.5")))
	require.True(t, uf128("0.1").LessThan(uf128("0.2")))
}

func TestFix128Constants(t *testing.T) {
	require.Equal(t, int64(1), Fix128One.Floor())
	require.Equal(t, int64(maxInt64), MaxFix128.Floor())
	require.Equal(t, int64(-1<<63), MinFix128.Floor())
	require.True(t, MinFix128.LessThan(MaxFix128))
}

func TestFix128Add(t *testing.T) {
	require.True(t, f128("1").Equal(f128("3").Add(f128("-2"))))
	require.True(t, f128("-3.5").Equal(f128("-1.5").Add(f128("-2"))))

	v, overflow := MaxFix128.OverflowingAdd(Fix128Delta)
	require.True(t, overflow)
	require.True(t, v.Equal(MinFix128)) // wraps

	require.True(t, MaxFix128.Equal(MaxFix128.SaturatingAdd(Fix128One)))
	require.True(t, MinFix128.Equal(MinFix128.SaturatingAdd(Fix128One.Neg())))
	require.Panics(t, func() { MaxFix128.Add(Fix128Delta) })
}

func TestFix128Sub(t *testing.T) {
	require.True(t, f128("5").Equal(f128("3").Sub(f128("-2"))))

	v, overflow := MinFix128.OverflowingSub(Fix128Delta)
	require.True(t, overflow)
	require.True(t, v.Equal(MaxFix128)) // wraps

	require.True(t, MinFix128.Equal(MinFix128.SaturatingSub(Fix128Delta)))
	require.True(t, MaxFix128.Equal(MaxFix128.SaturatingSub(Fix128Delta.Neg())))
	require.Panics(t, func() { MinFix128.Sub(Fix128Delta) })
}

func TestFix128Mul(t *testing.T) {
	require.True(t, f128("-3").Equal(f128("-1.5").Mul(f128("2"))))
	require.True(t, f128("3").Equal(f128("-1.5").Mul(f128("-2"))))
	require.True(t, f128("0.25").Equal(f128("-0.5").Mul(f128("-0.5"))))

	// Rescaling is an arithmetic shift, so sub-precision negative products
	// truncate toward negative infinity, not toward zero.
	require.True(t, Fix128Delta.Neg().Equal(Fix128Delta.Neg().Mul(Fix128Delta)))

	big := Fix128From64(1 << 32)
	_, overflow := big.OverflowingMul(big) // 2^64 is past the signed range
	require.True(t, overflow)
	require.True(t, MaxFix128.Equal(big.SaturatingMul(big)))
	require.True(t, MinFix128.Equal(big.Neg().SaturatingMul(big)))
	require.Panics(t, func() { big.Mul(big) })
}

func TestFix128Div(t *testing.T) {
	require.True(t, f128("-1.5").Equal(f128("-3").Div(f128("2"))))
	require.True(t, f128("-1.5").Equal(f128("3").Div(f128("-2"))))
	require.True(t, f128("1.5").Equal(f128("-3").Div(f128("-2"))))

	// Signed division truncates toward zero.
	third := f128("-1").Div(f128("3"))
	require.True(t, third.Bits().Equal(i64(-6148914691236517205)))

	_, overflow := MinFix128.OverflowingDiv(Fix128Delta.Neg())
	require.True(t, overflow)
	require.True(t, MaxFix128.Equal(MinFix128.SaturatingDiv(Fix128Delta.Neg())))
	require.True(t, MinFix128.Equal(MinFix128.SaturatingDiv(Fix128Delta)))
	require.Panics(t, func() { MaxFix128.Div(Fix128Delta) })

	require.Panics(t, func() { f128("1").WrappingDiv(Fix128{}) })
}

func TestFix128NegAbs(t *testing.T) {
	require.True(t, f128("-1.5").Equal(f128("1.5").Neg()))
	require.True(t, f128("1.5").Equal(f128("-1.5").Abs()))

	v, overflow := MinFix128.OverflowingNeg()
	require.True(t, overflow)
	require.True(t, v.Equal(MinFix128)) // wraps to itself

	require.True(t, MaxFix128.Equal(MinFix128.SaturatingNeg()))
	require.True(t, MaxFix128.Equal(MinFix128.SaturatingAbs()))
	require.Panics(t, func() { MinFix128.Neg() })
	require.Panics(t, func() { MinFix128.Abs() })
}

func TestUFix128Identities(t *testing.T) {
	bts := make([]byte, 16)

	for i := 0; i < fuzzIterations; i++ {
		x := UFix128FromBits(randU128(bts))
		require.True(t, x.Equal(x.Mul(UFix128One)), "%s * 1", x)
		require.True(t, x.Equal(x.Div(UFix128One)), "%s / 1", x)
		require.True(t, x.Equal(x.Add(UFix128{})), "%s + 0", x)

		// Multiplying by a whole number and dividing it back out is exact.
		y := UFix128From64(uint64(globalRNG.Intn(1000)) + 1)
		prod, overflow := x.OverflowingMul(y)
		if !overflow {
			require.True(t, x.Equal(prod.Div(y)), "(%s * %s) / %s", x, y, y)
		}
	}
}

func TestFix128Identities(t *testing.T) {
	bts := make([]byte, 16)

	for i := 0; i < fuzzIterations; i++ {
		x := Fix128FromBits(randI128(bts))
		require.True(t, x.Equal(x.Mul(Fix128One)), "%s * 1", x)
		require.True(t, x.Equal(x.Div(Fix128One)), "%s / 1", x)
		require.True(t, x.Equal(x.Sub(Fix128{})), "%s - 0", x)

		y := Fix128From64(int64(globalRNG.Intn(1000)) + 1)
		prod, overflow := x.OverflowingMul(y)
		if !overflow {
			require.True(t, x.Equal(prod.Div(y)), "(%s * %s) / %s", x, y, y)
		}
	}
}

func TestFix128Sign(t *testing.T) {
	require.Equal(t, -1, f128("-0.5").Sign())
	require.Equal(t, 0, Fix128{}.Sign())
	require.Equal(t, 1, f128("0.5").Sign())
}
