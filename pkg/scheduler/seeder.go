package scheduler

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

type candidateSeeder interface {
	// Seed builds a complete, possibly imperfect, candidate
	Seed(rng *rand.Rand) *Timetable
}

type candidateSeederStandard struct {
	problem *problem
	hardCap bool
}

func newCandidateSeeder(p *problem, config RunConfig) candidateSeeder {
	return &candidateSeederStandard{problem: p, hardCap: config.HardTeacherCap}
}

func (seeder *candidateSeederStandard) Seed(rng *rand.Rand) *Timetable {
	p := seeder.problem
	placements := lo.Times(len(p.sessions), func(_ int) Placement { return unplaced })
	b := newBoard(p, seeder.hardCap)
	teacherLoad := make([]int, len(p.roster.Teachers))

	//** Place the hardest requirements first
	for _, index := range p.order {
		r := p.requirements[index]
		teacher := seeder.chooseTeacher(r, teacherLoad, rng)
		teacherLoad[teacher] += r.count

		for s := r.first; s < r.first+r.count; s++ {
			placements[s] = b.choose(s, teacher, rng)
			b.place(s, placements[s])
		}
	}

	return newTimetable(placements)
}

// chooseTeacher picks the least loaded qualified teacher, breaking ties at random
func (seeder *candidateSeederStandard) chooseTeacher(r requirement, load []int, rng *rand.Rand) int {
	least := lo.MinBy(r.teachers, func(a, b int) bool { return load[a] < load[b] })
	candidates := lo.Filter(r.teachers, func(teacher int, _ int) bool { return load[teacher] == load[least] })
	return candidates[rng.IntN(len(candidates))]
}
