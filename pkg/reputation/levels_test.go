package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelBoundaries(t *testing.T) {
	lt := NewLevelTable(nil)

	cases := map[uint64]string{
		0:    "Novice",
		100:  "Novice",
		249:  "Novice",
		250:  "Intermediate",
		499:  "Intermediate",
		500:  "Advanced",
		749:  "Advanced",
		750:  "Expert",
		899:  "Expert",
		900:  "Legendary",
		5000: "Legendary",
	}

	for rep, want := range cases {
		assert.Equal(t, want, lt.LevelFor(rep), "reputation %d", rep)
	}
}

func TestLevelMonotonic(t *testing.T) {
	lt := NewLevelTable(nil)

	rank := map[string]int{}
	for i, tier := range DefaultTiers {
		rank[tier.Label] = len(DefaultTiers) - i
	}

	prev := 0
	for rep := uint64(0); rep <= 1000; rep += 5 {
		cur := rank[lt.LevelFor(rep)]
		assert.GreaterOrEqual(t, cur, prev, "reputation %d", rep)
		prev = cur
	}
}

func TestLevelCustomLabels(t *testing.T) {
	lt := NewLevelTable([]Tier{
		{900, "S"},
		{750, "A"},
		{500, "B"},
		{250, "C"},
		{0, "D"},
	})

	assert.Equal(t, "D", lt.Base())
	assert.Equal(t, "A", lt.LevelFor(800))
}
