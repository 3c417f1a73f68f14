package scheduler

import (
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"github.com/samber/lo"
)

// verify re-walks a materialized result against the roster it was built from and reports whether it
// satisfies every hard constraint
func verify(result *timetable.Result, roster model.Roster) bool {
	grid, err := model.NewGrid(roster.Grid)
	if err != nil {
		return false
	}
	if len(result.Unresolved()) > 0 {
		return false
	}

	sections := lo.SliceToMap(roster.Sections, func(section model.Section) (string, model.Section) { return section.Id, section })
	teachers := lo.SliceToMap(roster.Teachers, func(teacher model.Teacher) (string, model.Teacher) { return teacher.Id, teacher })
	rooms := lo.SliceToMap(roster.Rooms, func(room model.Room) (string, model.Room) { return room.Id, room })
	requirements := lo.SliceToMap(roster.Requirements(), func(requirement model.Requirement) ([3]string, model.Requirement) {
		return [3]string{requirement.Section, requirement.Subject, string(requirement.Kind)}, requirement
	})

	//** Initialize assistance
	teacherAssistance := make(map[string][]bool)
	sectionAssistance := make(map[string][]bool)
	roomAssistance := make(map[string][]bool)
	assistance := func(assistances map[string][]bool, id string) []bool {
		if assistances[id] == nil {
			assistances[id] = make([]bool, grid.Size())
		}
		return assistances[id]
	}

	derivedSessions := make(map[[3]string]int)
	requirementTeacher := make(map[[3]string]string)

	for _, assignment := range result.Assignments() {
		key := [3]string{assignment.Section, assignment.Subject, string(assignment.Kind)}
		requirement, required := requirements[key]
		section, teacher, room := sections[assignment.Section], teachers[assignment.Teacher], rooms[assignment.Room]
		duration := assignment.Kind.Duration()
		partner := assignment.Partner

		// Check that:
		// - The session is required and its resources exist
		// - Every session of a requirement shares one teacher, the preassigned one if any
		// - Teacher is qualified for the subject and section
		// - The session covers duration contiguous schedulable periods of one day
		// - Room matches the session kind and fits the section
		if !required || teacher.Id == "" || room.Id == "" ||
			(requirement.Teacher != "" && requirement.Teacher != teacher.Id) ||
			(requirementTeacher[key] != "" && requirementTeacher[key] != teacher.Id) ||
			!lo.Contains(roster.QualifiedTeachers(section.Id, assignment.Subject), teacher.Id) ||
			!grid.Fits(assignment.Slot, duration) ||
			(duration > 1) != (partner != nil) ||
			(partner != nil && *partner != model.Slot{Day: assignment.Slot.Day, Period: assignment.Slot.Period + duration - 1}) ||
			room.Kind != assignment.Kind ||
			room.Capacity < section.Size {
			return false
		}

		for offset := range duration {
			slot := model.Slot{Day: assignment.Slot.Day, Period: assignment.Slot.Period + offset}
			index := grid.Index(slot)

			// Check that the teacher is available and no resource is already assisting in the period and day
			if (teacher.Availability != nil && !teacher.Availability[slot.Day][slot.Period]) ||
				assistance(teacherAssistance, teacher.Id)[index] ||
				assistance(sectionAssistance, section.Id)[index] ||
				assistance(roomAssistance, room.Id)[index] {
				return false
			}

			teacherAssistance[teacher.Id][index] = true // Store teacher assistance
			sectionAssistance[section.Id][index] = true // Store section assistance
			roomAssistance[room.Id][index] = true       // Store room assistance
		}

		derivedSessions[key]++
		requirementTeacher[key] = teacher.Id
	}

	// Check whether the number of sessions scheduled for each requirement equals the required count
	for key, requirement := range requirements {
		if derivedSessions[key] != requirement.Count {
			return false
		}
	}
	return true
}
