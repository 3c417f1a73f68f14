package scheduler

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// board is the mutable occupancy scratchpad an operator uses while it builds a new timetable. It is
// always local to one operator call and never shared.
type board struct {
	problem    *problem
	hardCap    bool
	teachers   [][]int // Teacher x slot
	sections   [][]int // Section x slot
	rooms      [][]int // Room x slot
	teacherDay [][]int // Teacher x day, in sessions
}

func newBoard(p *problem, hardCap bool) *board {
	size := p.grid.Size()
	matrix := func(rows, columns int) [][]int {
		return lo.Times(rows, func(_ int) []int { return make([]int, columns) })
	}
	return &board{
		problem:    p,
		hardCap:    hardCap,
		teachers:   matrix(len(p.roster.Teachers), size),
		sections:   matrix(len(p.roster.Sections), size),
		rooms:      matrix(len(p.roster.Rooms), size),
		teacherDay: matrix(len(p.roster.Teachers), p.grid.Days()),
	}
}

// boardOf lays every placed session of placements on a fresh board
func boardOf(p *problem, hardCap bool, placements []Placement) *board {
	b := newBoard(p, hardCap)
	for s, placement := range placements {
		b.place(s, placement)
	}
	return b
}

func (b *board) place(s int, placement Placement)  { b.apply(s, placement, 1) }
func (b *board) remove(s int, placement Placement) { b.apply(s, placement, -1) }

func (b *board) apply(s int, placement Placement, delta int) {
	if placement.Start < 0 {
		return
	}
	r := b.problem.requirementOf(s)
	for _, index := range b.problem.covers(placement.Start, r.duration) {
		b.teachers[placement.Teacher][index] += delta
		b.sections[r.section][index] += delta
		b.rooms[placement.Room][index] += delta
	}
	b.teacherDay[placement.Teacher][b.problem.grid.Slot(placement.Start).Day] += delta
}

// cost is the number of hard violations session s would add if it were placed on the board
func (b *board) cost(s int, placement Placement) int {
	count := b.problem.violations(s, placement)
	if placement.Start < 0 {
		return count
	}
	r := b.problem.requirementOf(s)
	for _, index := range b.problem.covers(placement.Start, r.duration) {
		count += b.teachers[placement.Teacher][index] + b.sections[r.section][index] + b.rooms[placement.Room][index]
	}
	if b.hardCap {
		limit := b.problem.teacherCaps[placement.Teacher]
		if limit > 0 && b.teacherDay[placement.Teacher][b.problem.grid.Slot(placement.Start).Day] >= limit {
			count++
		}
	}
	return count
}

// options enumerates every placement of session s with the given teacher: starts in grid order,
// then rooms in roster order
func (b *board) options(s, teacher int) []Placement {
	r := b.problem.requirementOf(s)
	starts := b.problem.starts[r.duration]
	options := make([]Placement, 0, len(starts)*len(r.rooms))
	for _, start := range starts {
		for _, room := range r.rooms {
			options = append(options, Placement{Start: start, Room: room, Teacher: teacher})
		}
	}
	return options
}

// choose picks a start uniformly at random among those offering a conflict-free option for session s,
// then one of its conflict-free rooms. When there is none, it picks among the least conflicting
// options instead.
func (b *board) choose(s, teacher int, rng *rand.Rand) Placement {
	best, candidates := -1, []Placement{}
	for _, option := range b.options(s, teacher) {
		cost := b.cost(s, option)
		switch {
		case best < 0 || cost < best:
			best, candidates = cost, []Placement{option}
		case cost == best:
			candidates = append(candidates, option)
		}
	}
	if len(candidates) == 0 {
		return Placement{Start: -1, Room: -1, Teacher: teacher}
	}
	starts := lo.Uniq(lo.Map(candidates, func(option Placement, _ int) int { return option.Start }))
	start := starts[rng.IntN(len(starts))]
	rooms := lo.Filter(candidates, func(option Placement, _ int) bool { return option.Start == start })
	return rooms[rng.IntN(len(rooms))]
}
