package scheduler

import (
	"testing"

	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Two sections of one period each on a one-day, two-period grid
func pairRoster(teachers []model.Teacher, rooms []model.Room) model.Roster {
	return model.Roster{
		Grid:     model.GridConfig{Days: 1, Periods: 2, LunchStart: 1, LunchEnd: 1},
		Subjects: []model.Subject{{Id: "PHY"}},
		Sections: []model.Section{
			{Id: "A", Semester: 1, Size: 30, Requirements: []model.SectionRequirement{lecture("PHY", 1)}},
			{Id: "B", Semester: 1, Size: 30, Requirements: []model.SectionRequirement{lecture("PHY", 1)}},
		},
		Teachers: teachers,
		Rooms:    rooms,
	}
}

func repair(t *testing.T, roster model.Roster, placements ...Placement) (*problem, repairOutcome) {
	t.Helper()
	p, err := newProblem(roster, DefaultRunConfig())
	require.NoError(t, err)
	return p, newLocalRepairer(p, DefaultRunConfig(), zap.NewNop()).Repair(newTimetable(placements))
}

func TestRepairRematchesRooms(t *testing.T) {
	//** Arrange
	roster := pairRoster(
		[]model.Teacher{
			{Id: "T1", Assignments: teaches("PHY", "A")},
			{Id: "T2", Assignments: teaches("PHY", "B")},
		},
		[]model.Room{
			{Id: "R1", Capacity: 40, Kind: model.Lecture},
			{Id: "R2", Capacity: 40, Kind: model.Lecture},
		},
	)

	//** Act
	p, outcome := repair(t, roster,
		Placement{Start: 0, Room: 0, Teacher: 0},
		Placement{Start: 0, Room: 0, Teacher: 1},
	)

	//** Assert
	assert.Equal(t, 1, outcome.rematched)
	assert.Equal(t, 0, outcome.relocated)
	assert.Empty(t, outcome.unresolved)

	first, second := outcome.timetable.Placement(0), outcome.timetable.Placement(1)
	assert.Equal(t, 0, first.Start, "room re-matching keeps the period")
	assert.Equal(t, 0, second.Start)
	assert.NotEqual(t, first.Room, second.Room)
	assert.Equal(t, 0, newFitnessEvaluator(p, DefaultRunConfig()).Evaluate(outcome.timetable).Hard)
}

func TestRepairRelocatesToFirstFreeSlot(t *testing.T) {
	//** Arrange
	roster := pairRoster(
		[]model.Teacher{{Id: "T1", Assignments: teaches("PHY", "A", "B")}},
		[]model.Room{{Id: "R1", Capacity: 40, Kind: model.Lecture}},
	)

	//** Act
	p, outcome := repair(t, roster,
		Placement{Start: 0, Room: 0, Teacher: 0},
		Placement{Start: 0, Room: 0, Teacher: 0},
	)

	//** Assert
	assert.Equal(t, 0, outcome.rematched, "a single room cannot host both sessions")
	assert.Equal(t, 1, outcome.relocated)
	assert.Empty(t, outcome.unresolved)
	assert.Equal(t, 0, outcome.timetable.Placement(0).Start, "the first session put back keeps its period")
	assert.Equal(t, 1, outcome.timetable.Placement(1).Start)
	assert.Equal(t, 0, newFitnessEvaluator(p, DefaultRunConfig()).Evaluate(outcome.timetable).Hard)
}

func TestRepairFlagsUnresolvedSessions(t *testing.T) {
	//** Arrange
	p, err := newProblem(overConstrainedRoster(), DefaultRunConfig())
	require.NoError(t, err)
	clashing := newTimetable([]Placement{
		{Start: 0, Room: 0, Teacher: 0},
		{Start: 0, Room: 1, Teacher: 0},
	})

	//** Act
	outcome := newLocalRepairer(p, DefaultRunConfig(), zap.NewNop()).Repair(clashing)

	//** Assert
	assert.Equal(t, []int{1}, outcome.unresolved)
	assert.Equal(t, clashing.Placements(), outcome.timetable.Placements(), "unresolved sessions keep their last placement")
}

func TestRepairMovesTheLessConstrainedSession(t *testing.T) {
	//** Arrange
	// T1 can only teach in period 0, where B's session already sits
	roster := pairRoster(
		[]model.Teacher{
			{Id: "T1", Assignments: teaches("PHY", "A"), Availability: [][]bool{{true, false}}},
			{Id: "T2", Assignments: teaches("PHY", "B")},
		},
		[]model.Room{{Id: "R1", Capacity: 40, Kind: model.Lecture}},
	)

	//** Act
	p, outcome := repair(t, roster,
		Placement{Start: 0, Room: 0, Teacher: 0},
		Placement{Start: 0, Room: 0, Teacher: 1},
	)

	//** Assert
	assert.Empty(t, outcome.unresolved)
	assert.Equal(t, []Placement{
		{Start: 0, Room: 0, Teacher: 0},
		{Start: 1, Room: 0, Teacher: 1},
	}, outcome.timetable.Placements())
	assert.Equal(t, 0, newFitnessEvaluator(p, DefaultRunConfig()).Evaluate(outcome.timetable).Hard)
}

func TestRepairDisplacesBlockingSessions(t *testing.T) {
	//** Arrange
	roster := pairRoster(
		[]model.Teacher{
			{Id: "T1", Assignments: teaches("PHY", "A"), Availability: [][]bool{{true, false}}},
			{Id: "T2", Assignments: teaches("PHY", "B")},
		},
		[]model.Room{{Id: "R1", Capacity: 40, Kind: model.Lecture}},
	)
	p, err := newProblem(roster, DefaultRunConfig())
	require.NoError(t, err)
	repairer := newLocalRepairer(p, DefaultRunConfig(), zap.NewNop())
	placements := []Placement{
		{Start: 1, Room: 0, Teacher: 0}, // Outside T1's availability
		{Start: 0, Room: 0, Teacher: 1},
	}
	board := boardOf(p, false, placements)
	board.remove(0, placements[0])
	onBoard := []bool{false, true}

	//** Act
	moved, ok := repairer.displace(0, placements, board, onBoard)

	//** Assert
	require.True(t, ok)
	assert.Equal(t, 2, moved)
	assert.Equal(t, []Placement{
		{Start: 0, Room: 0, Teacher: 0},
		{Start: 1, Room: 0, Teacher: 1},
	}, placements)
	assert.Equal(t, []bool{true, true}, onBoard)
}
