package fix

import (
	"github.com/pkg/errors"
)

// NonZeroU128 is a U128 that is known not to be zero. Division routines
// accept only this wrapper, so the zero check happens once, at the point
// where a zero can first appear, instead of inside every division.
//
// The zero value of NonZeroU128 is invalid; obtain one through
// NewNonZeroU128 or MustNonZeroU128.
type NonZeroU128 struct {
	v U128
}

// NewNonZeroU128 wraps v, failing if v is zero.
func NewNonZeroU128(v U128) (NonZeroU128, error) {
	if v.IsZero() {
		return NonZeroU128{}, errors.New("fix: non-zero u128 constructed from zero")
	}
	return NonZeroU128{v: v}, nil
}

// MustNonZeroU128 wraps v, panicking if v is zero. Intended for constants
// and for callers that have already excluded zero.
func MustNonZeroU128(v U128) NonZeroU128 {
	nz, err := NewNonZeroU128(v)
	if err != nil {
		panic(err)
	}
	return nz
}

// Get returns the wrapped value.
func (n NonZeroU128) Get() U128 { return n.v }

// NonZeroI128 is an I128 that is known not to be zero. See NonZeroU128.
type NonZeroI128 struct {
	v I128
}

// NewNonZeroI128 wraps v, failing if v is zero.
func NewNonZeroI128(v I128) (NonZeroI128, error) {
	if v.IsZero() {
		return NonZeroI128{}, errors.New("fix: non-zero i128 constructed from zero")
	}
	return NonZeroI128{v: v}, nil
}

// MustNonZeroI128 wraps v, panicking if v is zero.
func MustNonZeroI128(v I128) NonZeroI128 {
	nz, err := NewNonZeroI128(v)
	if err != nil {
		panic(err)
	}
	return nz
}

// Get returns the wrapped value.
func (n NonZeroI128) Get() I128 { return n.v }
