package scheduler

import (
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/samber/lo"
)

type predicateEvaluator interface {
	// Checks whether the teacher is assigned to teach the subject to the section
	Qualified(teacher, section, subject int) bool

	// Checks whether the teacher is available to teach at the given day and period
	TeacherAvailable(teacher, day, period int) bool

	// Checks whether the room is of the given session kind
	KindMatches(room int, kind model.SessionKind) bool

	// Checks whether the section's size is smaller than or equal to the room's capacity (i.e. the section fits in the room)
	Fits(section, room int) bool
}

type predicateEvaluatorStandard struct {
	roster    model.Roster
	grid      *model.Grid
	qualified map[[3]int]bool // (teacher, section, subject)
}

func newPredicateEvaluator(roster model.Roster, grid *model.Grid) predicateEvaluator {
	sectionIndex := lo.SliceToMap(lo.Range(len(roster.Sections)), func(i int) (string, int) { return roster.Sections[i].Id, i })
	subjectIndex := lo.SliceToMap(lo.Range(len(roster.Subjects)), func(i int) (string, int) { return roster.Subjects[i].Id, i })

	evaluator := predicateEvaluatorStandard{
		roster:    roster,
		grid:      grid,
		qualified: make(map[[3]int]bool),
	}
	for teacher := range roster.Teachers {
		for _, assignment := range roster.Teachers[teacher].Assignments {
			section, ok := sectionIndex[assignment.Section]
			if !ok { // Sections outside this run's snapshot
				continue
			}
			evaluator.qualified[[3]int{teacher, section, subjectIndex[assignment.Subject]}] = true
		}
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) Qualified(teacher, section, subject int) bool {
	return evaluator.qualified[[3]int{teacher, section, subject}]
}

func (evaluator *predicateEvaluatorStandard) TeacherAvailable(teacher, day, period int) bool {
	availability := evaluator.roster.Teachers[teacher].Availability
	return availability == nil || availability[day][period]
}

func (evaluator *predicateEvaluatorStandard) KindMatches(room int, kind model.SessionKind) bool {
	return evaluator.roster.Rooms[room].Kind == kind
}

func (evaluator *predicateEvaluatorStandard) Fits(section, room int) bool {
	return evaluator.roster.Rooms[room].Capacity >= evaluator.roster.Sections[section].Size
}
