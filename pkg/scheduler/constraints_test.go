package scheduler

import (
	"testing"

	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds a placement on the lunch roster grid (6 periods per day)
func at(day, period, teacher int) Placement {
	return Placement{Start: period + 6*day, Room: 0, Teacher: teacher}
}

func evaluateLunchRoster(t *testing.T, roster model.Roster, config RunConfig, placements ...Placement) Fitness {
	t.Helper()
	p, err := newProblem(roster, config)
	require.NoError(t, err)
	require.Len(t, placements, len(p.sessions))
	return newFitnessEvaluator(p, config).Evaluate(newTimetable(placements))
}

func TestSoftPenaltiesOfSpreadTimetable(t *testing.T) {
	//** Act
	// PHY sessions 0-2 by T1, CHEM sessions 3-5 by T2
	fitness := evaluateLunchRoster(t, lunchRoster(), DefaultRunConfig(),
		at(0, 2, 0), at(1, 0, 0), at(2, 0, 0),
		at(0, 3, 1), at(3, 0, 1), at(4, 0, 1),
	)

	//** Assert
	assert.Equal(t, 0, fitness.Hard)
	assert.Equal(t, 1.0, fitness.Penalties[lunchQuality], "both lunch periods of day 0 are taken")
	assert.Equal(t, 0.0, fitness.Penalties[loadDistribution])
	assert.Equal(t, 0.0, fitness.Penalties[gapMinimization])
	assert.Equal(t, 0.0, fitness.Penalties[teacherLoadCap])
	assert.Equal(t, 5.0, fitness.Soft)
}

func TestSoftPenaltiesOfClusteredTimetable(t *testing.T) {
	//** Act
	fitness := evaluateLunchRoster(t, lunchRoster(), DefaultRunConfig(),
		at(0, 0, 0), at(0, 1, 0), at(0, 5, 0),
		at(1, 0, 1), at(1, 1, 1), at(1, 4, 1),
	)

	//** Assert
	assert.Equal(t, 0, fitness.Hard)
	assert.Equal(t, 0.0, fitness.Penalties[lunchQuality])
	assert.Equal(t, 8.0, fitness.Penalties[loadDistribution], "three same-day sessions cost (3-1)^2 per subject")
	assert.Equal(t, 3.0, fitness.Penalties[gapMinimization], "one free lunch period is allowed per day")
	assert.Equal(t, 8*3.0+3*1.0, fitness.Soft)
}

func TestTeacherLoadCap(t *testing.T) {
	//** Arrange
	roster := lunchRoster()
	roster.Teachers[0].MaxSessionsPerDay = 1
	placements := []Placement{
		at(0, 0, 0), at(0, 1, 0), at(0, 4, 0),
		at(1, 0, 1), at(2, 0, 1), at(3, 0, 1),
	}
	hard := DefaultRunConfig()
	hard.HardTeacherCap = true

	//** Act
	soft := evaluateLunchRoster(t, roster, DefaultRunConfig(), placements...)
	promoted := evaluateLunchRoster(t, roster, hard, placements...)

	//** Assert
	assert.Equal(t, 0, soft.Hard)
	assert.Equal(t, 2.0, soft.Penalties[teacherLoadCap])
	assert.Equal(t, 2, promoted.Hard)
	assert.Equal(t, 0.0, promoted.Penalties[teacherLoadCap])
}

func TestHardViolations(t *testing.T) {
	//** Act
	fitness := evaluateLunchRoster(t, lunchRoster(), DefaultRunConfig(),
		at(0, 0, 0), at(1, 0, 1), at(2, 0, 0), // Session 1 is taught by T2, who is not qualified for PHY
		at(0, 0, 1), at(3, 0, 1), at(4, 0, 1), // Session 3 collides with session 0 in section and room
	)

	//** Assert
	assert.Equal(t, 3, fitness.Hard)
}

func TestUnavailableTeacherIsHardViolation(t *testing.T) {
	//** Arrange
	roster := lunchRoster()
	roster.Teachers[1].Availability = make([][]bool, 5)
	for day := range roster.Teachers[1].Availability {
		roster.Teachers[1].Availability[day] = []bool{day != 4, true, true, true, true, true}
	}

	//** Act
	fitness := evaluateLunchRoster(t, roster, DefaultRunConfig(),
		at(0, 0, 0), at(1, 0, 0), at(2, 0, 0),
		at(0, 1, 1), at(3, 0, 1), at(4, 0, 1),
	)

	//** Assert
	assert.Equal(t, 1, fitness.Hard)
}

func TestFitnessOrdering(t *testing.T) {
	feasible := Fitness{Hard: 0, Soft: 1_000}
	infeasible := Fitness{Hard: 1, Soft: 0}
	better := Fitness{Hard: 0, Soft: 10}

	assert.True(t, feasible.Less(infeasible), "any hard violation dominates soft penalties")
	assert.True(t, better.Less(feasible))
	assert.False(t, feasible.Less(feasible))
	assert.Equal(t, 1_000_010.0, Fitness{Hard: 1, Soft: 10}.Score(1_000_000))
}
