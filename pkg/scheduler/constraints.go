package scheduler

import "github.com/samber/lo"

// Soft constraint variants, in the order their penalties are reported
const (
	lunchQuality = iota
	loadDistribution
	gapMinimization
	teacherLoadCap
	constraintCount
)

// ConstraintNames maps every soft constraint variant to the name it is reported under
var ConstraintNames = [constraintCount]string{
	lunchQuality:     "lunch-quality",
	loadDistribution: "load-distribution",
	gapMinimization:  "gap-minimization",
	teacherLoadCap:   "teacher-load-cap",
}

// softConstraint returns the unweighted, non-negative penalty of a candidate. The board must hold
// exactly the candidate's placements.
type softConstraint interface {
	Evaluate(p *problem, timetable *Timetable, b *board) float64
}

func softConstraints(config RunConfig) [constraintCount]softConstraint {
	return [constraintCount]softConstraint{
		lunchQuality:     lunchQualityConstraint{},
		loadDistribution: loadDistributionConstraint{},
		gapMinimization:  gapMinimizationConstraint{},
		teacherLoadCap:   teacherLoadCapConstraint{hard: config.HardTeacherCap},
	}
}

func (weights Weights) array() [constraintCount]float64 {
	return [constraintCount]float64{
		lunchQuality:     weights.LunchQuality,
		loadDistribution: weights.LoadDistribution,
		gapMinimization:  weights.GapMinimization,
		teacherLoadCap:   weights.TeacherLoadCap,
	}
}

//** Hard constraints

// hardViolations counts resource collisions, unplaced sessions, invalid placements and, when the cap
// is hard, sessions beyond a teacher's daily cap
func hardViolations(p *problem, timetable *Timetable, b *board) int {
	count := 0
	for _, matrix := range [][][]int{b.teachers, b.sections, b.rooms} {
		for _, row := range matrix {
			for _, occupants := range row {
				count += max(occupants-1, 0)
			}
		}
	}
	for s, placement := range timetable.placements {
		count += p.violations(s, placement)
	}
	if b.hardCap {
		count += capExcess(p, b)
	}
	return count
}

func capExcess(p *problem, b *board) int {
	excess := 0
	for teacher, days := range b.teacherDay {
		limit := p.teacherCaps[teacher]
		if limit == 0 {
			continue
		}
		excess += lo.SumBy(days, func(sessions int) int { return max(sessions-limit, 0) })
	}
	return excess
}

//** Soft constraints

// Each section should keep exactly one contiguous free run inside the lunch window every day
type lunchQualityConstraint struct{}

func (lunchQualityConstraint) Evaluate(p *problem, _ *Timetable, b *board) float64 {
	start, end := p.grid.LunchWindow()
	penalty := 0
	for section := range b.sections {
		for day := range p.grid.Days() {
			runs, inRun := 0, false
			for period := start; period <= end; period++ {
				free := b.sections[section][p.grid.Index(slotAt(day, period))] == 0
				if free && !inRun {
					runs++
				}
				inRun = free
			}
			penalty += lo.Ternary(runs == 0, 1, runs-1)
		}
	}
	return float64(penalty)
}

// Sessions of one subject for a section should not cluster on the same day
type loadDistributionConstraint struct{}

func (loadDistributionConstraint) Evaluate(p *problem, timetable *Timetable, _ *board) float64 {
	days := p.grid.Days()
	counts := make(map[[2]int][]int) // (section, subject) -> sessions per day
	for s, placement := range timetable.placements {
		if placement.Start < 0 {
			continue
		}
		r := p.requirementOf(s)
		key := [2]int{r.section, r.subject}
		if counts[key] == nil {
			counts[key] = make([]int, days)
		}
		counts[key][p.grid.Slot(placement.Start).Day]++
	}

	penalty := 0
	for _, perDay := range counts {
		for _, sessions := range perDay {
			if sessions > 1 {
				penalty += (sessions - 1) * (sessions - 1)
			}
		}
	}
	return float64(penalty)
}

// Idle schedulable periods between a section's first and last class of a day; one free period in
// the lunch window is allowed
type gapMinimizationConstraint struct{}

func (gapMinimizationConstraint) Evaluate(p *problem, _ *Timetable, b *board) float64 {
	penalty := 0
	for section := range b.sections {
		for day := range p.grid.Days() {
			occupied := lo.Filter(lo.Range(p.grid.Periods()), func(period int, _ int) bool {
				return b.sections[section][p.grid.Index(slotAt(day, period))] > 0
			})
			if len(occupied) < 2 {
				continue
			}

			lunch := false
			for period := occupied[0] + 1; period < occupied[len(occupied)-1]; period++ {
				slot := slotAt(day, period)
				if b.sections[section][p.grid.Index(slot)] > 0 || !p.grid.IsSchedulable(slot) {
					continue
				}
				if p.grid.InLunchWindow(period) && !lunch {
					lunch = true
					continue
				}
				penalty++
			}
		}
	}
	return float64(penalty)
}

// Sessions beyond a teacher's daily cap. Zero when the cap is enforced as a hard constraint.
type teacherLoadCapConstraint struct {
	hard bool
}

func (constraint teacherLoadCapConstraint) Evaluate(p *problem, _ *Timetable, b *board) float64 {
	if constraint.hard {
		return 0
	}
	return float64(capExcess(p, b))
}
