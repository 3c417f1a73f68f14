package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoster() Roster {
	return Roster{
		Grid:     GridConfig{Days: 5, Periods: 6, LunchStart: 2, LunchEnd: 3},
		Subjects: []Subject{{Id: "PHY"}, {Id: "CHEM"}},
		Sections: []Section{
			{Id: "A", Semester: 1, Size: 30, Requirements: []SectionRequirement{
				{Subject: "PHY", Kind: Lecture, Count: 3},
				{Subject: "PHY", Kind: Lab, Count: 1},
			}},
			{Id: "B", Semester: 2, Size: 30, Requirements: []SectionRequirement{
				{Subject: "CHEM", Kind: Lecture, Count: 2, Teacher: "T2"},
			}},
		},
		Teachers: []Teacher{
			{Id: "T1", Assignments: []TeacherAssignment{{Subject: "PHY", Section: "A"}}},
			{Id: "T2", Assignments: []TeacherAssignment{{Subject: "CHEM", Section: "B"}}},
		},
		Rooms: []Room{
			{Id: "R1", Capacity: 40, Kind: Lecture},
			{Id: "L1", Capacity: 40, Kind: Lab},
		},
	}
}

func TestRosterValidate(t *testing.T) {
	assert.NoError(t, sampleRoster().Validate())
}

func TestRosterValidateConfigurationErrors(t *testing.T) {
	scenarios := map[string]func(roster *Roster){
		"invalid grid": func(roster *Roster) {
			roster.Grid.LunchStart, roster.Grid.LunchEnd = 4, 1
		},
		"unqualified teacher": func(roster *Roster) {
			roster.Sections[1].Requirements[0].Teacher = "T1"
		},
		"no qualified teacher": func(roster *Roster) {
			roster.Teachers[1].Assignments = nil
		},
		"no lab room": func(roster *Roster) {
			roster.Rooms = roster.Rooms[:1]
		},
		"room too small": func(roster *Roster) {
			roster.Sections[0].Size = 41
		},
		"duplicate section": func(roster *Roster) {
			roster.Sections[1].Id = "A"
		},
		"unknown subject": func(roster *Roster) {
			roster.Sections[0].Requirements[0].Subject = "BIO"
		},
		"invalid kind": func(roster *Roster) {
			roster.Rooms[0].Kind = "studio"
		},
		"zero count": func(roster *Roster) {
			roster.Sections[0].Requirements[0].Count = 0
		},
		"availability shape": func(roster *Roster) {
			roster.Teachers[0].Availability = [][]bool{{true}}
		},
	}

	for name, mutate := range scenarios {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			roster := sampleRoster()
			mutate(&roster)

			//** Act
			err := roster.Validate()

			//** Assert
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "unexpected error: %v", err)
		})
	}
}

func TestRosterRequirementsAndQualifiedTeachers(t *testing.T) {
	roster := sampleRoster()

	requirements := roster.Requirements()

	assert.Equal(t, []Requirement{
		{Section: "A", Subject: "PHY", Kind: Lecture, Count: 3},
		{Section: "A", Subject: "PHY", Kind: Lab, Count: 1},
		{Section: "B", Subject: "CHEM", Kind: Lecture, Count: 2, Teacher: "T2"},
	}, requirements)
	assert.Equal(t, []string{"T1"}, roster.QualifiedTeachers("A", "PHY"))
	assert.Empty(t, roster.QualifiedTeachers("B", "PHY"))
}

func TestRosterFilterSemester(t *testing.T) {
	roster := sampleRoster()

	odd := roster.FilterSemester(OddSemester)
	even := roster.FilterSemester(EvenSemester)
	all := roster.FilterSemester(AnySemester)

	assert.Len(t, odd.Sections, 1)
	assert.Equal(t, "A", odd.Sections[0].Id)
	assert.Len(t, even.Sections, 1)
	assert.Equal(t, "B", even.Sections[0].Id)
	assert.Len(t, all.Sections, 2)
	assert.Len(t, roster.Sections, 2, "filtering must not touch the original snapshot")
}

func TestSessionKindDuration(t *testing.T) {
	assert.Equal(t, 1, Lecture.Duration())
	assert.Equal(t, 2, Lab.Duration())
}
