// Package random holds the sampling helpers used by the mock data generator
// and by every randomized timer in the feed simulation.
//
// All helpers take an explicit Source so tests can pass a seeded generator
// and get repeatable orders, delays and drop decisions.
package random

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the helpers need.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// New returns a PCG-backed generator. A zero seed seeds from the clock.
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // demo randomness
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // demo randomness
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return src.IntN(hi-lo+1) + lo
}

// FloatBetween returns a uniform float in [lo, hi) rounded to digits decimals.
func FloatBetween(src Source, lo, hi float64, digits int) float64 {
	value := src.Float64()*(hi-lo) + lo
	scale := math.Pow10(digits)
	return math.Round(value*scale) / scale
}

// DurationBetween returns a uniform millisecond-granular duration in [lo, hi].
func DurationBetween(src Source, lo, hi time.Duration) time.Duration {
	ms := IntBetween(src, int(lo.Milliseconds()), int(hi.Milliseconds()))
	return time.Duration(ms) * time.Millisecond
}

// Chance reports whether a uniform draw falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Sample returns a uniformly chosen element. It panics on an empty slice.
func Sample[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Shuffle returns a shuffled copy of items.
func Shuffle[T any](src Source, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// DateWithinDays returns now minus a whole number of days in [0, days].
func DateWithinDays(src Source, now time.Time, days int) time.Time {
	offset := IntBetween(src, 0, days)
	return now.Add(-time.Duration(offset) * 24 * time.Hour)
}
