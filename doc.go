/*
Package fix provides binary fixed-point numbers with selectable overflow
policies, together with the wide integer types that make their arithmetic
exact.

Two fixed-point layouts are provided. UFix128 and Fix128 hold 128 bits with
64 fractional bits (Q64.64); their multiply and divide routines widen into a
synthesized 256-bit intermediate (U256, I256) so that no precision is lost
before rescaling. UFix64 and Fix64 hold 64 bits with 32 fractional bits
(Q32.32) and satisfy the same contract directly with the machine's native
widening multiply and divide.

All types are value types; operations return new values. Each fixed-point
operation that can lose information comes in four flavours:

	Mul            panics on overflow
	WrappingMul    reduces modulo the type's width
	SaturatingMul  clamps to the type's minimum or maximum
	OverflowingMul returns the wrapped value and an overflow flag

The wrapped value and flag returned by the Overflowing form are the primitive
the other three are built from; the flag is set if and only if discarded high
bits were not a plain sign extension of the kept bits.

Division by zero panics at the fixed-point boundary. The integer kernel
itself never checks: U256.QuoRem128 and I256.QuoRem128 accept only the
NonZeroU128/NonZeroI128 wrapper types, so the zero check happens once, where
a zero can first appear.

U128 and I128 are general-purpose 128-bit integers implementing most of the
big.Int API surface, and can be used independently of the fixed-point types:

	u1 := U128From64(math.MaxUint64)
	u2 := U128From64(math.MaxUint64)
	fmt.Println(u1.Mul(u2))
	// Output: 340282366920938463426481119284349108225

Every routine in this package is a pure function of its inputs; there is no
shared state and all operations are safe for concurrent use.
*/
package fix
