package fix

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math/big"
	"math/rand"
	"os"
	"strings"
	"testing"
	"time"
)

const fuzzDefaultIterations = 10000

var (
	fuzzIterations = fuzzDefaultIterations
	fuzzSeed       int64

	globalRNG *rand.Rand
)

func TestMain(m *testing.M) {
	flag.IntVar(&fuzzIterations, "fix.fuzziter", fuzzIterations, "Number of iterations for each randomised test")
	flag.Int64Var(&fuzzSeed, "fix.fuzzseed", fuzzSeed, "Seed the RNG (0 == current nanotime)")
	flag.Parse()

	if fuzzSeed == 0 {
		fuzzSeed = time.Now().UnixNano()
	}
	globalRNG = rand.New(rand.NewSource(fuzzSeed))

	log.Println("rando seed:", fuzzSeed) // classic rando!
	log.Println("iterations:", fuzzIterations)

	os.Exit(m.Run())
}

var (
	u64 = U128From64
	i64 = I128From64
)

func bigU64(u uint64) *big.Int { return new(big.Int).SetUint64(u) }
func bigI64(i int64) *big.Int  { return new(big.Int).SetInt64(i) }

func bigs(s string) *big.Int {
	v, _ := new(big.Int).SetString(strings.Replace(s, " ", "", -1), 0)
	return v
}

func u128s(s string) U128 {
	s = strings.Replace(s, " ", "", -1)
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic(fmt.Errorf("fix: u128 string %q invalid", s))
	}
	out, acc := U128FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("fix: inaccurate u128 %s", s))
	}
	return out
}

func i128s(s string) I128 {
	s = strings.Replace(s, " ", "", -1)
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic(fmt.Errorf("fix: i128 string %q invalid", s))
	}
	i, acc := I128FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("fix: inaccurate i128 %s", s))
	}
	return i
}

func u256s(s string) U256 {
	s = strings.Replace(s, " ", "", -1)
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic(fmt.Errorf("fix: u256 string %q invalid", s))
	}
	out, acc := U256FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("fix: inaccurate u256 %s", s))
	}
	return out
}

func accU128FromBigInt(b *big.Int) U128 {
	u, acc := U128FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("fix: inaccurate conversion to U128 in fuzz tester for %s", b))
	}
	return u
}

func accI128FromBigInt(b *big.Int) I128 {
	i, acc := I128FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("fix: inaccurate conversion to I128 in fuzz tester for %s", b))
	}
	return i
}

func accU256FromBigInt(b *big.Int) U256 {
	u, acc := U256FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("fix: inaccurate conversion to U256 in fuzz tester for %s", b))
	}
	return u
}

func randU128(scratch []byte) U128 {
	globalRNG.Read(scratch)
	u := U128{}
	u.lo = binary.LittleEndian.Uint64(scratch)

	if scratch[0]%2 == 1 {
		// if we always generate hi bits, the universe will die before we
		// test a number < maxInt64
		u.hi = binary.LittleEndian.Uint64(scratch[8:])
	}
	return u
}

func randI128(scratch []byte) I128 {
	i := randU128(scratch).AsI128()
	if scratch[1]%2 == 1 {
		i = i.Neg()
	}
	return i
}

func randU256(scratch []byte) U256 {
	u := U256{lo: randU128(scratch)}
	if scratch[2]%2 == 1 {
		u.hi = randU128(scratch)
	}
	return u
}

// wrapBigI128 folds a big.Int into I128's two's complement range, matching
// the kernel's wrapping semantics.
func wrapBigI128(b *big.Int) *big.Int {
	b.Mod(b, wrapBigU128)
	if b.Cmp(maxBigI128) > 0 {
		b.Sub(b, wrapBigU128)
	}
	return b
}
