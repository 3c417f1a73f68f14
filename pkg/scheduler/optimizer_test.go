package scheduler

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id, hard int, soft float64) individual {
	return individual{
		timetable: newTimetable([]Placement{{Start: id, Room: 0, Teacher: 0}}),
		fitness:   Fitness{Hard: hard, Soft: soft},
		id:        id,
	}
}

func TestCompareIndividualsPrefersEarlierDiscovery(t *testing.T) {
	earlier, later := candidate(3, 0, 2), candidate(5, 0, 2)
	fitter := candidate(9, 0, 1)

	assert.Negative(t, compareIndividuals(earlier, later))
	assert.Positive(t, compareIndividuals(later, earlier))
	assert.Negative(t, compareIndividuals(fitter, earlier), "fitness comes before discovery order")
	assert.Negative(t, compareIndividuals(candidate(8, 0, 50), candidate(1, 1, 0)), "any hard violation ranks last")
}

func TestTournamentBreaksTiesByDiscovery(t *testing.T) {
	//** Arrange
	optimizer := &evolutionaryOptimizer{config: RunConfig{TournamentSize: 64}}
	population := []individual{candidate(4, 0, 2), candidate(2, 0, 2), candidate(7, 0, 2)}
	rng := rand.New(rand.NewPCG(1, 2))

	//** Act
	winners := lo.Times(10, func(_ int) individual { return optimizer.tournament(population, rng) })

	//** Assert
	for _, winner := range winners {
		assert.Equal(t, 2, winner.id)
	}
}

func TestImproveKeepsFirstDiscoveredBest(t *testing.T) {
	best := candidate(0, 0, 3)

	tied := improve(best, []individual{candidate(7, 0, 3), candidate(8, 1, 0)})
	better := improve(best, []individual{candidate(7, 0, 3), candidate(9, 0, 1)})

	assert.Equal(t, 0, tied.id, "an equally fit newcomer does not replace the best")
	assert.Equal(t, 9, better.id)
}

func TestNextGenerationCarriesElitesUnchanged(t *testing.T) {
	//** Arrange
	optimizer := &evolutionaryOptimizer{config: RunConfig{EliteCount: 2}}
	ranked := []individual{candidate(1, 0, 1), candidate(0, 0, 2), candidate(2, 1, 0)}
	slices.SortStableFunc(ranked, compareIndividuals)
	children := []*Timetable{
		newTimetable([]Placement{{Start: 10}}),
		newTimetable([]Placement{{Start: 11}}),
	}
	fitnesses := []Fitness{{Hard: 0, Soft: 0}, {Hard: 2, Soft: 0}}

	//** Act
	next, nextID := optimizer.nextGeneration(ranked, children, fitnesses, 3)

	//** Assert
	require.Len(t, next, 4)
	assert.Equal(t, 5, nextID)
	for i := range 2 {
		assert.Same(t, ranked[i].timetable, next[i].timetable)
		assert.Equal(t, ranked[i].id, next[i].id)
		assert.Equal(t, ranked[i].fitness, next[i].fitness)
	}
	assert.Equal(t, []int{1, 0}, []int{next[0].id, next[1].id})
	assert.Same(t, children[0], next[2].timetable)
	assert.Equal(t, []int{3, 4}, []int{next[2].id, next[3].id})
	assert.Equal(t, fitnesses[1], next[3].fitness)
}
