package scheduler

import (
	"math/rand/v2"
	"slices"
)

// breeder builds children out of parent candidates. Each call works on fresh copies, parents are
// never touched.
type breeder struct {
	problem      *problem
	hardCap      bool
	mutationSize int
}

func newBreeder(p *problem, config RunConfig) *breeder {
	return &breeder{problem: p, hardCap: config.HardTeacherCap, mutationSize: config.MutationSize}
}

// crossover takes the placements of every requirement from one of the two parents, chosen uniformly,
// then relocates the sessions colliding with the ones kept before them
func (breeder *breeder) crossover(a, b *Timetable, rng *rand.Rand) *Timetable {
	p := breeder.problem
	placements := make([]Placement, len(p.sessions))
	for _, r := range p.requirements {
		parent := a
		if rng.IntN(2) == 1 {
			parent = b
		}
		copy(placements[r.first:r.first+r.count], parent.placements[r.first:r.first+r.count])
	}

	//** Keep every session that fits, most constrained requirements first
	board := newBoard(p, breeder.hardCap)
	colliding := []int{}
	for _, index := range p.order {
		r := p.requirements[index]
		for s := r.first; s < r.first+r.count; s++ {
			if board.cost(s, placements[s]) > 0 {
				colliding = append(colliding, s)
				continue
			}
			board.place(s, placements[s])
		}
	}

	//** Re-place the colliding ones
	for _, s := range colliding {
		placements[s] = board.choose(s, placements[s].Teacher, rng)
		board.place(s, placements[s])
	}

	return newTimetable(placements)
}

// mutate relocates between one and mutationSize random sessions, keeping their teacher
func (breeder *breeder) mutate(timetable *Timetable, rng *rand.Rand) *Timetable {
	if timetable.Len() == 0 {
		return timetable
	}

	placements := slices.Clone(timetable.placements)
	board := boardOf(breeder.problem, breeder.hardCap, placements)
	moves := 1 + rng.IntN(min(breeder.mutationSize, len(placements)))
	for range moves {
		s := rng.IntN(len(placements))
		board.remove(s, placements[s])
		placements[s] = board.choose(s, placements[s].Teacher, rng)
		board.place(s, placements[s])
	}

	return newTimetable(placements)
}
