package fix

import (
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestI128AsBigInt(t *testing.T) {
	for idx, tc := range []struct {
		a I128
		b *big.Int
	}{
		{i64(0), bigI64(0)},
		{i64(1), bigI64(1)},
		{i64(-1), bigI64(-1)},
		{i64(-9223372036854775808), bigI64(-9223372036854775808)},
		{I128{hi: 1}, bigs("18446744073709551616")},
		{MaxI128, maxBigI128},
		{MinI128, minBigI128},
	} {
		t.Run(fmt.Sprintf("%d/%d,%d=%s", idx, tc.a.hi, tc.a.lo, tc.b), func(t *testing.T) {
			tt := assert.WrapTB(t)
			v := tc.a.AsBigInt()
			tt.MustAssert(tc.b.Cmp(v) == 0, "found: %s", v)
		})
	}
}

func TestI128FromBigInt(t *testing.T) {
	tt := assert.WrapTB(t)

	for _, tc := range []struct {
		in       *big.Int
		out      I128
		accurate bool
	}{
		{bigI64(0), i64(0), true},
		{bigI64(-1), i64(-1), true},
		{maxBigI128, MaxI128, true},
		{minBigI128, MinI128, true},
		{new(big.Int).Add(maxBigI128, big1), MaxI128, false},
		{new(big.Int).Sub(minBigI128, big1), MinI128, false},
	} {
		out, accurate := I128FromBigInt(tc.in)
		tt.MustAssert(tc.out.Equal(out), "%s: found %s", tc.in, out)
		tt.MustEqual(tc.accurate, accurate)
	}
}

func TestI128NegAbs(t *testing.T) {
	tt := assert.WrapTB(t)
	tt.MustAssert(i64(-1).Equal(i64(1).Neg()))
	tt.MustAssert(i64(1).Equal(i64(-1).Neg()))
	tt.MustAssert(i64(0).Equal(i64(0).Neg()))
	tt.MustAssert(MinI128.Equal(MinI128.Neg())) // wraps to itself
	tt.MustAssert(i64(1).Equal(i64(-1).Abs()))
	tt.MustAssert(MinI128.Equal(MinI128.Abs()))
	tt.MustAssert(minI128AsAbsU128.Equal(MinI128.Abs().AsU128()))
}

func TestI128AddSub(t *testing.T) {
	tt := assert.WrapTB(t)
	tt.MustAssert(i64(3).Equal(i64(1).Add(i64(2))))
	tt.MustAssert(i64(-1).Equal(i64(1).Add(i64(-2))))
	tt.MustAssert(MinI128.Equal(MaxI128.Add(i64(1)))) // wraps
	tt.MustAssert(i64(-3).Equal(i64(-1).Sub(i64(2))))
	tt.MustAssert(MaxI128.Equal(MinI128.Sub(i64(1)))) // wraps
}

func TestI128Cmp(t *testing.T) {
	tt := assert.WrapTB(t)
	tt.MustAssert(i64(-1).LessThan(i64(0)))
	tt.MustAssert(i64(-2).LessThan(i64(-1)))
	tt.MustAssert(MinI128.LessThan(MaxI128))
	tt.MustAssert(MinI128.LessThan(i64(-1)))
	tt.MustAssert(i64(1).GreaterThan(i64(-1)))
	tt.MustEqual(-1, i64(-1).Cmp(i64(1)))
	tt.MustEqual(0, i64(-1).Cmp(i64(-1)))
	tt.MustEqual(1, MaxI128.Cmp(MinI128))
	tt.MustEqual(-1, MinI128.Sign())
	tt.MustEqual(0, i64(0).Sign())
	tt.MustEqual(1, MaxI128.Sign())
}

func TestI128Rsh(t *testing.T) {
	for _, tc := range []struct {
		a I128
		n uint
		b I128
	}{
		{i64(4), 1, i64(2)},
		{i64(-4), 1, i64(-2)},
		{i64(-1), 1, i64(-1)}, // arithmetic shift keeps the sign fill
		{i64(-1), 127, i64(-1)},
		{i64(-1), 200, i64(-1)},
		{MaxI128, 128, i64(0)},
		{MinI128, 128, i64(-1)},
		{MinI128, 127, i64(-1)},
		{MinI128, 64, I128{hi: maxUint64, lo: signBit}},
		{I128{hi: 1}, 64, i64(1)},
	} {
		t.Run(fmt.Sprintf("%s>>%d=%s", tc.a, tc.n, tc.b), func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustAssert(tc.b.Equal(tc.a.Rsh(tc.n)), "found: %s", tc.a.Rsh(tc.n))
		})
	}
}

func TestI128MulWrapFuzz(t *testing.T) {
	tt := assert.WrapTB(t)
	bts := make([]byte, 16)

	for i := 0; i < fuzzIterations; i++ {
		a, b := randI128(bts), randI128(bts)
		rb := wrapBigI128(new(big.Int).Mul(a.AsBigInt(), b.AsBigInt()))
		tt.MustAssert(accI128FromBigInt(rb).Equal(a.Mul(b)), "%s * %s", a, b)
	}
}

func TestI128QuoRem(t *testing.T) {
	for _, tc := range []struct {
		i, by, q, r I128
	}{
		{i64(7), i64(2), i64(3), i64(1)},
		{i64(-7), i64(2), i64(-3), i64(-1)}, // truncates toward zero
		{i64(7), i64(-2), i64(-3), i64(1)},  // remainder takes dividend sign
		{i64(-7), i64(-2), i64(3), i64(-1)},
		{MinI128, i64(1), MinI128, i64(0)},
		{MinI128, i64(2), i128s("-85070591730234615865843651857942052864"), i64(0)},
		{MaxI128, MaxI128, i64(1), i64(0)},
	} {
		t.Run(fmt.Sprintf("%s/%s", tc.i, tc.by), func(t *testing.T) {
			tt := assert.WrapTB(t)
			q, r := tc.i.QuoRem(tc.by)
			tt.MustAssert(tc.q.Equal(q), "quotient: found %s", q)
			tt.MustAssert(tc.r.Equal(r), "remainder: found %s", r)
		})
	}
}

func TestI128QuoRemFuzz(t *testing.T) {
	tt := assert.WrapTB(t)
	bts := make([]byte, 16)

	for i := 0; i < fuzzIterations; i++ {
		n, by := randI128(bts), randI128(bts)
		if by.IsZero() {
			by = i64(1)
		}
		if n.Equal(MinI128) && by.Equal(i64(-1)) {
			continue // the one quotient that wraps
		}
		q, r := n.QuoRem(by)

		qb, rb := new(big.Int).QuoRem(n.AsBigInt(), by.AsBigInt(), new(big.Int))
		tt.MustAssert(accI128FromBigInt(qb).Equal(q), "%s / %s: found q %s", n, by, q)
		tt.MustAssert(accI128FromBigInt(rb).Equal(r), "%s %% %s: found r %s", n, by, r)
	}
}

func TestI128AsInt64(t *testing.T) {
	tt := assert.WrapTB(t)
	tt.MustAssert(i64(-1).IsInt64())
	tt.MustAssert(i64(maxInt64).IsInt64())
	tt.MustAssert(i64(-9223372036854775808).IsInt64())
	tt.MustAssert(!MaxI128.IsInt64())
	tt.MustAssert(!MinI128.IsInt64())
	tt.MustEqual(int64(-42), i64(-42).AsInt64())
}

func TestI128JSON(t *testing.T) {
	tt := assert.WrapTB(t)

	for _, i := range []I128{i64(0), i64(-1), MaxI128, MinI128} {
		bts, err := json.Marshal(i)
		tt.MustOK(err)

		var back I128
		tt.MustOK(json.Unmarshal(bts, &back))
		tt.MustAssert(i.Equal(back), "found: %s", back)
	}
}
