package random_test

import (
	"testing"
	"time"

	"dashboard/internal/pkg/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed draws so edge values can be exercised.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) IntN(n int) int {
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func TestIntBetween(t *testing.T) {
	t.Run("stays within inclusive bounds", func(t *testing.T) {
		src := random.New(42)
		for range 1000 {
			v := random.IntBetween(src, 3, 7)
			assert.GreaterOrEqual(t, v, 3)
			assert.LessOrEqual(t, v, 7)
		}
	})

	t.Run("reaches both ends", func(t *testing.T) {
		src := &scripted{ints: []int{0, 4}}
		assert.Equal(t, 3, random.IntBetween(src, 3, 7))
		assert.Equal(t, 7, random.IntBetween(src, 3, 7))
	})

	t.Run("collapsed range returns lower bound", func(t *testing.T) {
		assert.Equal(t, 5, random.IntBetween(&scripted{}, 5, 5))
	})
}

func TestFloatBetween(t *testing.T) {
	src := &scripted{floats: []float64{0.5, 0.123456}}

	assert.InDelta(t, 96.0, random.FloatBetween(src, 12, 180, 2), 1e-9)
	assert.InDelta(t, 32.74, random.FloatBetween(src, 12, 180, 2), 1e-9)
}

func TestDurationBetween(t *testing.T) {
	src := random.New(7)
	for range 500 {
		d := random.DurationBetween(src, 3*time.Second, 5*time.Second)
		require.GreaterOrEqual(t, d, 3*time.Second)
		require.LessOrEqual(t, d, 5*time.Second)
		assert.Zero(t, d%time.Millisecond)
	}
}

func TestChance(t *testing.T) {
	src := &scripted{floats: []float64{0.11, 0.12, 0.99}}

	assert.True(t, random.Chance(src, 0.12))
	assert.False(t, random.Chance(src, 0.12))
	assert.False(t, random.Chance(src, 0.12))
}

func TestSampleAndShuffle(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	t.Run("sample picks by index", func(t *testing.T) {
		assert.Equal(t, "c", random.Sample(&scripted{ints: []int{2}}, items))
	})

	t.Run("shuffle keeps elements and leaves input untouched", func(t *testing.T) {
		shuffled := random.Shuffle(random.New(3), items)

		assert.ElementsMatch(t, items, shuffled)
		assert.Equal(t, []string{"a", "b", "c", "d"}, items)
	})
}

func TestDateWithinDays(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	src := &scripted{ints: []int{30, 0}}

	assert.Equal(t, now.AddDate(0, 0, -30), random.DateWithinDays(src, now, 30))
	assert.Equal(t, now, random.DateWithinDays(src, now, 30))
}

func TestNew_SameSeedIsRepeatable(t *testing.T) {
	a, b := random.New(99), random.New(99)
	for range 10 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
