package model

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAndAttributesDeterministic(t *testing.T) {
	// Arrange
	scenarios := [][2]int{
		{1, 1},
		{5, 6},
		{6, 8},
		{7, 3},
		{2, 12},
	}

	for _, scenario := range scenarios {
		days, periods := scenario[0], scenario[1]

		// Act
		indexer := newSlotIndexer(days, periods)

		indices := make([]int, 0, days*periods)
		for day := range days {
			for period := range periods {
				indices = append(indices, indexer.Index(day, period))
			}
		}

		// Assert
		for _, index := range indices {
			day, period := indexer.Attributes(index)
			assert.Equal(t, index, indexer.Index(day, period))
		}

		// Indices are a dense enumeration of the week
		sorted := slices.Clone(indices)
		slices.Sort(sorted)
		assert.Equal(t, len(sorted), len(slices.Compact(sorted)))
		assert.Equal(t, 0, sorted[0])
		assert.Equal(t, days*periods-1, sorted[len(sorted)-1])
	}
}

func TestIndexAndAttributesNonDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 10 {
		// Arrange
		days := rng.IntN(7) + 1
		periods := rng.IntN(12) + 1
		indexer := newSlotIndexer(days, periods)

		for range 50 {
			day, period := rng.IntN(days), rng.IntN(periods)

			// Act
			index := indexer.Index(day, period)
			gotDay, gotPeriod := indexer.Attributes(index)

			// Assert
			assert.Equal(t, day, gotDay)
			assert.Equal(t, period, gotPeriod)
		}
	}
}
