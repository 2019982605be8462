// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/spf13/cast"
)

// Uint64ToInt64 safely converts a uint64 to int64 using cast and checks for overflow
func Uint64ToInt64(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, fmt.Errorf("value %d exceeds int64 range", value)
	}

	return cast.ToInt64E(value)
}

// BigToUint64 converts a non negative big integer that fits in 64 bits.
func BigToUint64(value *big.Int) (uint64, error) {
	if value == nil {
		return 0, fmt.Errorf("value is nil")
	}
	if value.Sign() < 0 || !value.IsUint64() {
		return 0, fmt.Errorf("value %s exceeds uint64 range", value)
	}

	return value.Uint64(), nil
}

// SecondsToDuration converts an on-chain number of seconds into a time.Duration.
func SecondsToDuration(seconds *big.Int) (time.Duration, error) {
	u, err := BigToUint64(seconds)
	if err != nil {
		return 0, err
	}
	if u > uint64(math.MaxInt64/int64(time.Second)) {
		return 0, fmt.Errorf("value %d seconds exceeds duration range", u)
	}

	s, err := Uint64ToInt64(u)
	if err != nil {
		return 0, err
	}

	return time.Duration(s) * time.Second, nil
}
