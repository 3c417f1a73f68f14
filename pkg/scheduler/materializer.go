package scheduler

import (
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"github.com/samber/lo"
)

// materialize turns the final candidate into the result handed to callers. Unresolved sessions are
// reported apart, at the placement they were last attempted in.
func materialize(p *problem, final *Timetable, unresolved []int, summary timetable.Summary) *timetable.Result {
	isUnresolved := lo.SliceToMap(unresolved, func(s int) (int, bool) { return s, true })

	assignments := make([]timetable.Assignment, 0, final.Len()-len(unresolved))
	pending := make([]timetable.Assignment, 0, len(unresolved))
	for s, placement := range final.placements {
		if placement.Start < 0 {
			continue
		}
		assignment := assignmentOf(p, s, placement)
		if isUnresolved[s] {
			pending = append(pending, assignment)
		} else {
			assignments = append(assignments, assignment)
		}
	}

	return timetable.NewResult(summary, assignments, pending)
}

func assignmentOf(p *problem, s int, placement Placement) timetable.Assignment {
	r := p.requirementOf(s)
	subject := p.roster.Subjects[r.subject]
	teacher := p.roster.Teachers[placement.Teacher]
	slot := p.grid.Slot(placement.Start)

	assignment := timetable.Assignment{
		Section:     p.roster.Sections[r.section].Id,
		Subject:     subject.Id,
		SubjectName: subject.Name,
		Kind:        r.kind,
		Teacher:     teacher.Id,
		TeacherName: teacher.Name,
		Room:        p.roster.Rooms[placement.Room].Id,
		Slot:        slot,
		DayName:     p.grid.DayName(slot.Day),
	}
	if r.duration > 1 {
		assignment.Partner = &model.Slot{Day: slot.Day, Period: slot.Period + r.duration - 1}
	}
	if start, end, ok := p.grid.PeriodTimes(slot.Period, r.duration); ok {
		assignment.StartTime, assignment.EndTime = start, end
	}

	return assignment
}
