package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type SessionKind string

const (
	Lecture SessionKind = "lecture"
	Lab     SessionKind = "lab"
)

// Duration is the number of contiguous periods a session of this kind occupies
func (kind SessionKind) Duration() int {
	if kind == Lab {
		return 2
	}
	return 1
}

type SemesterParity string

const (
	AnySemester  SemesterParity = ""
	OddSemester  SemesterParity = "odd"
	EvenSemester SemesterParity = "even"
)

type Subject struct {
	Id   string `json:"id" mapstructure:"id" validate:"required"`
	Name string `json:"name" mapstructure:"name"`
}

// SectionRequirement states how many weekly sessions of one kind a subject needs for the enclosing
// section. Teacher optionally pins the requirement to one qualified teacher.
type SectionRequirement struct {
	Subject string      `json:"subject" mapstructure:"subject" validate:"required"`
	Kind    SessionKind `json:"kind" mapstructure:"kind" validate:"oneof=lecture lab"`
	Count   int         `json:"count" mapstructure:"count" validate:"gt=0"`
	Teacher string      `json:"teacher,omitempty" mapstructure:"teacher"`
}

type Section struct {
	Id           string               `json:"id" mapstructure:"id" validate:"required"`
	Semester     int                  `json:"semester" mapstructure:"semester" validate:"gte=0"`
	Branch       string               `json:"branch" mapstructure:"branch"`
	Size         int                  `json:"size" mapstructure:"size" validate:"gte=0"`
	Requirements []SectionRequirement `json:"requirements" mapstructure:"requirements" validate:"dive"`
}

type TeacherAssignment struct {
	Subject string `json:"subject" mapstructure:"subject" validate:"required"`
	Section string `json:"section" mapstructure:"section" validate:"required"`
}

type Teacher struct {
	Id                string              `json:"id" mapstructure:"id" validate:"required"`
	Name              string              `json:"name" mapstructure:"name"`
	MaxSessionsPerDay int                 `json:"maxSessionsPerDay,omitempty" mapstructure:"maxSessionsPerDay" validate:"gte=0"`
	Assignments       []TeacherAssignment `json:"assignments" mapstructure:"assignments" validate:"dive"`
	Availability      [][]bool            `json:"availability,omitempty" mapstructure:"availability"` // Availability[day][period]; nil means always available
}

type Room struct {
	Id       string      `json:"id" mapstructure:"id" validate:"required"`
	Name     string      `json:"name" mapstructure:"name"`
	Capacity int         `json:"capacity" mapstructure:"capacity" validate:"gte=0"`
	Kind     SessionKind `json:"kind" mapstructure:"kind" validate:"oneof=lecture lab"`
}

// Requirement is a flattened (section, subject, kind, count) tuple
type Requirement struct {
	Section string
	Subject string
	Kind    SessionKind
	Count   int
	Teacher string
}

// Roster is the read-only snapshot a scheduling run consumes
type Roster struct {
	Grid     GridConfig `json:"grid" mapstructure:"grid"`
	Subjects []Subject  `json:"subjects" mapstructure:"subjects" validate:"dive"`
	Sections []Section  `json:"sections" mapstructure:"sections" validate:"required,dive"`
	Teachers []Teacher  `json:"teachers" mapstructure:"teachers" validate:"required,dive"`
	Rooms    []Room     `json:"rooms" mapstructure:"rooms" validate:"required,dive"`
}

var validate = validator.New()

// Requirements flattens the sections' requirements in section order
func (roster Roster) Requirements() []Requirement {
	return lo.FlatMap(roster.Sections, func(section Section, _ int) []Requirement {
		return lo.Map(section.Requirements, func(requirement SectionRequirement, _ int) Requirement {
			return Requirement{
				Section: section.Id,
				Subject: requirement.Subject,
				Kind:    requirement.Kind,
				Count:   requirement.Count,
				Teacher: requirement.Teacher,
			}
		})
	})
}

// QualifiedTeachers returns the ids of the teachers assigned to teach subject to section
func (roster Roster) QualifiedTeachers(section, subject string) []string {
	qualified := lo.Filter(roster.Teachers, func(teacher Teacher, _ int) bool {
		return lo.Contains(teacher.Assignments, TeacherAssignment{Subject: subject, Section: section})
	})
	return lo.Map(qualified, func(teacher Teacher, _ int) string { return teacher.Id })
}

// FilterSemester keeps only the sections whose semester matches parity
func (roster Roster) FilterSemester(parity SemesterParity) Roster {
	if parity == AnySemester {
		return roster
	}
	filtered := roster
	filtered.Sections = lo.Filter(roster.Sections, func(section Section, _ int) bool {
		return (section.Semester%2 == 1) == (parity == OddSemester)
	})
	return filtered
}

// Validate rejects rosters that cannot be scheduled at all. Every returned error wraps
// ErrConfiguration.
func (roster Roster) Validate() error {
	if err := validate.Struct(roster); err != nil {
		return configurationErrorf("invalid roster: %v", err)
	}
	if _, err := NewGrid(roster.Grid); err != nil {
		return err
	}

	//** Unique identifiers
	for kind, ids := range map[string][]string{
		"subject": lo.Map(roster.Subjects, func(subject Subject, _ int) string { return subject.Id }),
		"section": lo.Map(roster.Sections, func(section Section, _ int) string { return section.Id }),
		"teacher": lo.Map(roster.Teachers, func(teacher Teacher, _ int) string { return teacher.Id }),
		"room":    lo.Map(roster.Rooms, func(room Room, _ int) string { return room.Id }),
	} {
		if duplicates := lo.FindDuplicates(ids); len(duplicates) > 0 {
			return configurationErrorf("duplicate %s ids: %v", kind, strings.Join(duplicates, ", "))
		}
	}

	//** Teachers
	subjects := lo.SliceToMap(roster.Subjects, func(subject Subject) (string, bool) { return subject.Id, true })
	for _, teacher := range roster.Teachers {
		for _, assignment := range teacher.Assignments {
			if !subjects[assignment.Subject] {
				return configurationErrorf("teacher %q is assigned to unknown subject %q", teacher.Id, assignment.Subject)
			}
		}
		if teacher.Availability == nil {
			continue
		}
		if len(teacher.Availability) != roster.Grid.Days || lo.SomeBy(teacher.Availability, func(day []bool) bool {
			return len(day) != roster.Grid.Periods
		}) {
			return configurationErrorf("availability of teacher %q must be a %dx%d matrix", teacher.Id, roster.Grid.Days, roster.Grid.Periods)
		}
	}

	//** Requirements
	sections := lo.SliceToMap(roster.Sections, func(section Section) (string, Section) { return section.Id, section })
	seen := make(map[[3]string]bool)
	for _, requirement := range roster.Requirements() {
		name := fmt.Sprintf("%v~%v (%v)", requirement.Section, requirement.Subject, requirement.Kind)
		key := [3]string{requirement.Section, requirement.Subject, string(requirement.Kind)}
		if seen[key] {
			return configurationErrorf("duplicate requirement %s", name)
		}
		seen[key] = true

		if !subjects[requirement.Subject] {
			return configurationErrorf("requirement %s references unknown subject", name)
		}

		qualified := roster.QualifiedTeachers(requirement.Section, requirement.Subject)
		if len(qualified) == 0 {
			return configurationErrorf("requirement %s has no qualified teacher", name)
		}
		if requirement.Teacher != "" && !lo.Contains(qualified, requirement.Teacher) {
			return configurationErrorf("requirement %s references unqualified teacher %q", name, requirement.Teacher)
		}

		size := sections[requirement.Section].Size
		if !lo.SomeBy(roster.Rooms, func(room Room) bool {
			return room.Kind == requirement.Kind && room.Capacity >= size
		}) {
			return configurationErrorf("requirement %s has no %s room for %d students", name, requirement.Kind, size)
		}
	}

	return nil
}
