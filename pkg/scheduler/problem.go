package scheduler

import (
	"slices"

	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type requirement struct {
	section  int
	subject  int
	kind     model.SessionKind
	duration int
	count    int
	first    int   // Index of the requirement's first session
	teachers []int // Qualified teachers (a single one when the requirement pins it)
	rooms    []int // Rooms of the right kind that fit the section
	options  int   // Number of (teacher, room, start) combinations; lower is harder to place
}

type session struct {
	requirement int
	ordinal     int
}

// problem is the preprocessed, read-only view of a roster shared by every stage of a run
type problem struct {
	roster       model.Roster
	grid         *model.Grid
	evaluator    predicateEvaluator
	requirements []requirement
	sessions     []session
	order        []int         // Requirements, most constrained first
	starts       map[int][]int // Duration -> slot indices where such a session may start
	teacherCaps  []int
}

func newProblem(roster model.Roster, config RunConfig) (*problem, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	grid, err := model.NewGrid(roster.Grid)
	if err != nil {
		return nil, err
	}

	//** Index entities
	sectionIndex := lo.SliceToMap(lo.Range(len(roster.Sections)), func(i int) (string, int) { return roster.Sections[i].Id, i })
	subjectIndex := lo.SliceToMap(lo.Range(len(roster.Subjects)), func(i int) (string, int) { return roster.Subjects[i].Id, i })
	teacherIndex := lo.SliceToMap(lo.Range(len(roster.Teachers)), func(i int) (string, int) { return roster.Teachers[i].Id, i })

	p := &problem{
		roster:    roster,
		grid:      grid,
		evaluator: newPredicateEvaluator(roster, grid),
		starts:    make(map[int][]int),
		teacherCaps: lo.Map(roster.Teachers, func(teacher model.Teacher, _ int) int {
			return lo.Ternary(teacher.MaxSessionsPerDay > 0, teacher.MaxSessionsPerDay, config.TeacherDailyCap)
		}),
	}

	//** Build requirements and sessions
	for _, raw := range roster.Requirements() {
		qualified := lo.Ternary(raw.Teacher != "", []string{raw.Teacher}, roster.QualifiedTeachers(raw.Section, raw.Subject))

		r := requirement{
			section:  sectionIndex[raw.Section],
			subject:  subjectIndex[raw.Subject],
			kind:     raw.Kind,
			duration: raw.Kind.Duration(),
			count:    raw.Count,
			first:    len(p.sessions),
			teachers: lo.Map(qualified, func(id string, _ int) int { return teacherIndex[id] }),
		}
		for room := range roster.Rooms {
			if p.evaluator.KindMatches(room, r.kind) && p.evaluator.Fits(r.section, room) {
				r.rooms = append(r.rooms, room)
			}
		}

		if _, ok := p.starts[r.duration]; !ok {
			p.starts[r.duration] = lo.Map(grid.Starts(r.duration), func(slot model.Slot, _ int) int { return grid.Index(slot) })
		}
		if len(p.starts[r.duration]) == 0 {
			return nil, errors.Wrapf(model.ErrConfiguration, "no %d contiguous schedulable periods for %s sessions of section %s", r.duration, r.kind, raw.Section)
		}
		for _, teacher := range r.teachers {
			available := lo.CountBy(p.starts[r.duration], func(start int) bool {
				return p.teacherAvailable(teacher, start, r.duration)
			})
			r.options += available * len(r.rooms)
		}

		for ordinal := range r.count {
			p.sessions = append(p.sessions, session{requirement: len(p.requirements), ordinal: ordinal})
		}
		p.requirements = append(p.requirements, r)
	}

	//** Most-constrained-first order: fewest options per required session, then more sessions first
	p.order = lo.Range(len(p.requirements))
	slices.SortStableFunc(p.order, func(a, b int) int {
		ra, rb := p.requirements[a], p.requirements[b]
		if left, right := ra.options*rb.count, rb.options*ra.count; left != right {
			return left - right
		}
		return rb.count - ra.count
	})

	return p, nil
}

func (p *problem) requirementOf(s int) requirement {
	return p.requirements[p.sessions[s].requirement]
}

// covers enumerates the slot indices occupied by a session of duration starting at start. Periods
// running past the end of the day are dropped.
func (p *problem) covers(start, duration int) []int {
	if start < 0 || start >= p.grid.Size() {
		return nil
	}
	period := p.grid.Slot(start).Period
	return lo.RangeFrom(start, min(duration, p.grid.Periods()-period))
}

func (p *problem) teacherAvailable(teacher, start, duration int) bool {
	for _, index := range p.covers(start, duration) {
		slot := p.grid.Slot(index)
		if !p.evaluator.TeacherAvailable(teacher, slot.Day, slot.Period) {
			return false
		}
	}
	return true
}

// violations counts the hard violations a placement carries on its own, regardless of any other
// session: unschedulable or non-contiguous periods, unqualified or unavailable teacher, wrong room
func (p *problem) violations(s int, placement Placement) int {
	r := p.requirementOf(s)
	if placement.Start < 0 || placement.Start >= p.grid.Size() {
		return 1
	}
	count := 0
	start := p.grid.Slot(placement.Start)
	if !p.grid.Fits(start, r.duration) {
		count++
	}
	if !p.evaluator.Qualified(placement.Teacher, r.section, r.subject) {
		count++
	}
	for _, index := range p.covers(placement.Start, r.duration) {
		slot := p.grid.Slot(index)
		if !p.evaluator.TeacherAvailable(placement.Teacher, slot.Day, slot.Period) {
			count++
		}
	}
	if !p.evaluator.KindMatches(placement.Room, r.kind) || !p.evaluator.Fits(r.section, placement.Room) {
		count++
	}
	return count
}

func slotAt(day, period int) model.Slot {
	return model.Slot{Day: day, Period: period}
}
