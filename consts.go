package fix

import (
	"math/big"
)

const (
	maxUint64 = 1<<64 - 1
	maxInt64  = 1<<63 - 1

	signBit = 0x8000000000000000
)

var (
	MaxU128 = U128{hi: maxUint64, lo: maxUint64}
	MaxI128 = I128{hi: 0x7FFFFFFFFFFFFFFF, lo: maxUint64}
	MinI128 = I128{hi: signBit, lo: 0}

	MaxU256 = U256{hi: MaxU128, lo: MaxU128}

	zeroU128 U128
	zeroI128 I128

	minI128AsAbsU128 = U128{hi: signBit, lo: 0}
	maxI128AsU128    = U128{hi: 0x7FFFFFFFFFFFFFFF, lo: maxUint64}

	big1 = new(big.Int).SetInt64(1)

	maxBigUint64 = new(big.Int).SetUint64(maxUint64)

	maxBigU128, _ = new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	maxBigI128, _ = new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	minBigI128, _ = new(big.Int).SetString("-170141183460469231731687303715884105728", 10)

	// wrapBigU128 is 1 << 128, used to simulate over/underflow:
	wrapBigU128, _ = new(big.Int).SetString("340282366920938463463374607431768211456", 10)

	// wrapBigU256 is 1 << 256:
	wrapBigU256 = new(big.Int).Lsh(big1, 256)
)
