package types

import (
	"fmt"
	"math"
)

// Value is an amount of the chain's base unit. All arithmetic that can
// overflow or underflow goes through the checked helpers below; a wallet
// that silently wraps an amount builds transactions the network rejects.
type Value uint64

// Add returns v + o, or an error if the sum overflows uint64.
func (v Value) Add(o Value) (Value, error) {
	if uint64(v) > math.MaxUint64-uint64(o) {
		return 0, fmt.Errorf("value overflow: %d + %d", v, o)
	}
	return v + o, nil
}

// Sub returns v - o, or an error if o exceeds v.
func (v Value) Sub(o Value) (Value, error) {
	if o > v {
		return 0, fmt.Errorf("value underflow: %d - %d", v, o)
	}
	return v - o, nil
}

// U64 returns the value as a plain uint64.
func (v Value) U64() uint64 { return uint64(v) }

// SumValues adds a slice of values with overflow checking.
func SumValues(values []Value) (Value, error) {
	var total Value
	for _, v := range values {
		t, err := total.Add(v)
		if err != nil {
			return 0, err
		}
		total = t
	}
	return total, nil
}
