package timetable

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/samber/lo"
)

type StopReason string

const (
	StopAccepted        StopReason = "accepted"
	StopGenerationLimit StopReason = "generation-limit"
	StopTimeBudget      StopReason = "time-budget"
	StopCancelled       StopReason = "cancelled"
)

// Assignment is one scheduled session as handed to downstream consumers
type Assignment struct {
	Section     string            `json:"section"`
	Subject     string            `json:"subject"`
	SubjectName string            `json:"subjectName,omitempty"`
	Kind        model.SessionKind `json:"kind"`
	Teacher     string            `json:"teacher"`
	TeacherName string            `json:"teacherName,omitempty"`
	Room        string            `json:"room"`
	Slot        model.Slot        `json:"slot"`
	Partner     *model.Slot       `json:"partner,omitempty"` // Second period of a lab
	DayName     string            `json:"dayName"`
	StartTime   string            `json:"startTime,omitempty"`
	EndTime     string            `json:"endTime,omitempty"`
}

// Score is a (hard violations, soft penalty) pair
type Score struct {
	Hard int     `json:"hard"`
	Soft float64 `json:"soft"`
}

// Summary describes how a run went. Equal roster, configuration and seed reproduce every field
// except RunID, which is unique per run so stored results never collide.
type Summary struct {
	RunID          string             `json:"runId"`
	Seed           uint64             `json:"seed"`
	HardViolations int                `json:"hardViolations"`
	SoftPenalty    float64            `json:"softPenalty"`
	Penalties      map[string]float64 `json:"penalties"` // Unweighted penalty per soft constraint
	Generations    int                `json:"generations"`
	StopReason     StopReason         `json:"stopReason"`
	Stalled        bool               `json:"stalled"` // The acceptance threshold was not reached
	Relocated      int                `json:"relocated"`
	History        []Score            `json:"history"` // Best-known score after seeding and after every generation
}

// Result is the finalized timetable of one run. It exposes no mutation entry points: every
// accessor hands out copies.
type Result struct {
	summary     Summary
	assignments []Assignment
	unresolved  []Assignment
}

func NewResult(summary Summary, assignments, unresolved []Assignment) *Result {
	summary.Penalties = maps.Clone(summary.Penalties)
	summary.History = slices.Clone(summary.History)
	result := &Result{
		summary:     summary,
		assignments: slices.Clone(assignments),
		unresolved:  slices.Clone(unresolved),
	}
	slices.SortStableFunc(result.assignments, compareAssignments)
	slices.SortStableFunc(result.unresolved, compareAssignments)
	return result
}

func compareAssignments(a, b Assignment) int {
	if a.Slot.Day != b.Slot.Day {
		return a.Slot.Day - b.Slot.Day
	}
	if a.Slot.Period != b.Slot.Period {
		return a.Slot.Period - b.Slot.Period
	}
	return strings.Compare(a.Section, b.Section)
}

func (result *Result) Summary() Summary {
	summary := result.summary
	summary.Penalties = maps.Clone(summary.Penalties)
	summary.History = slices.Clone(summary.History)
	return summary
}

func (result *Result) RunID() string       { return result.summary.RunID }
func (result *Result) HardViolations() int { return result.summary.HardViolations }
func (result *Result) SoftPenalty() float64 {
	return result.summary.SoftPenalty
}

// Feasible reports whether every required session was placed without a hard violation
func (result *Result) Feasible() bool {
	return result.summary.HardViolations == 0 && len(result.unresolved) == 0
}

func (result *Result) Assignments() []Assignment { return slices.Clone(result.assignments) }

// Unresolved returns the sessions Local Repair could not place without a hard violation, at the
// slot they were last attempted in
func (result *Result) Unresolved() []Assignment { return slices.Clone(result.unresolved) }

func (result *Result) BySection(section string) []Assignment {
	return lo.Filter(result.assignments, func(assignment Assignment, _ int) bool {
		return assignment.Section == section
	})
}

func (result *Result) ByTeacher(teacher string) []Assignment {
	return lo.Filter(result.assignments, func(assignment Assignment, _ int) bool {
		return assignment.Teacher == teacher
	})
}

func (result *Result) ByRoom(room string) []Assignment {
	return lo.Filter(result.assignments, func(assignment Assignment, _ int) bool {
		return assignment.Room == room
	})
}

func (result *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Summary
		Assignments []Assignment `json:"assignments"`
		Unresolved  []Assignment `json:"unresolved"`
	}{
		Summary:     result.summary,
		Assignments: lo.Ternary(result.assignments == nil, []Assignment{}, result.assignments),
		Unresolved:  lo.Ternary(result.unresolved == nil, []Assignment{}, result.unresolved),
	})
}
