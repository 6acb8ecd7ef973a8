package grid

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Seed selects the pseudo-random sequence of a generation. The zero value
// is Fixed(0).
type Seed struct {
	value  int64
	random bool
}

// Fixed returns a seed that always resolves to v.
func Fixed(v int64) Seed { return Seed{value: v} }

// Random returns a seed that resolves to a fresh clock-derived value on
// every generation.
func Random() Seed { return Seed{random: true} }

// IsRandom reports whether the seed is resolved from the clock.
func (s Seed) IsRandom() bool { return s.random }

// ParseSeed parses "random" or a decimal integer.
func ParseSeed(str string) (Seed, error) {
	if str == "random" {
		return Random(), nil
	}
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return Seed{}, err
	}
	return Fixed(v), nil
}

func (s Seed) String() string {
	if s.random {
		return "random"
	}
	return strconv.FormatInt(s.value, 10)
}

// lastRandom holds the last clock seed handed out, so consecutive random
// seeds are strictly increasing even when the clock does not advance.
var lastRandom atomic.Int64

// Resolve returns the concrete seed value.
func (s Seed) Resolve() int64 {
	if !s.random {
		return s.value
	}
	for {
		prev := lastRandom.Load()
		next := time.Now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if lastRandom.CompareAndSwap(prev, next) {
			return next
		}
	}
}
