package scheduler

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type individual struct {
	timetable *Timetable
	fitness   Fitness
	id        int // Discovery order; the earlier individual wins ties
}

func compareIndividuals(a, b individual) int {
	switch {
	case a.fitness.Less(b.fitness):
		return -1
	case b.fitness.Less(a.fitness):
		return 1
	}
	return a.id - b.id
}

func (fitness Fitness) score() timetable.Score {
	return timetable.Score{Hard: fitness.Hard, Soft: fitness.Soft}
}

type optimizerOutcome struct {
	best        individual
	generations int
	stop        timetable.StopReason
	history     []timetable.Score
}

type evolutionaryOptimizer struct {
	config    RunConfig
	logger    *zap.Logger
	seeder    candidateSeeder
	evaluator fitnessEvaluator
	breeder   *breeder
}

func newEvolutionaryOptimizer(p *problem, config RunConfig, logger *zap.Logger) *evolutionaryOptimizer {
	return &evolutionaryOptimizer{
		config:    config,
		logger:    logger,
		seeder:    newCandidateSeeder(p, config),
		evaluator: newFitnessEvaluator(p, config),
		breeder:   newBreeder(p, config),
	}
}

// Run evolves the population until the best candidate is accepted, the generation ceiling is hit
// or ctx is done. The best candidate ever seen is returned in every case.
func (optimizer *evolutionaryOptimizer) Run(ctx context.Context, rng *rand.Rand) (optimizerOutcome, error) {
	config := optimizer.config
	nextID := 0

	//** Seed the initial population. It is always evaluated in full so there is a best candidate to return.
	seeds := make([]*Timetable, config.PopulationSize)
	for i := range seeds {
		seeds[i] = optimizer.seeder.Seed(rng)
	}
	fitnesses, err := optimizer.evaluator.EvaluateAll(context.WithoutCancel(ctx), seeds)
	if err != nil {
		return optimizerOutcome{}, errors.Wrap(err, "cannot evaluate initial population")
	}
	population := make([]individual, len(seeds))
	for i := range seeds {
		population[i] = individual{timetable: seeds[i], fitness: fitnesses[i], id: nextID}
		nextID++
	}

	best := slices.MinFunc(population, compareIndividuals)
	outcome := optimizerOutcome{history: []timetable.Score{best.fitness.score()}}

	//** Evolve
	for {
		if best.fitness.Hard == 0 && best.fitness.Soft <= config.AcceptanceThreshold {
			outcome.stop = timetable.StopAccepted
			break
		}
		if outcome.generations >= config.MaxGenerations {
			outcome.stop = timetable.StopGenerationLimit
			break
		}
		if err := ctx.Err(); err != nil {
			outcome.stop = stopReason(err)
			break
		}

		slices.SortStableFunc(population, compareIndividuals)

		children := make([]*Timetable, 0, config.PopulationSize-config.EliteCount)
		for len(children) < cap(children) {
			a, b := optimizer.tournament(population, rng), optimizer.tournament(population, rng)
			child := a.timetable
			if rng.Float64() < config.CrossoverRate {
				child = optimizer.breeder.crossover(a.timetable, b.timetable, rng)
			}
			if rng.Float64() < config.MutationRate {
				child = optimizer.breeder.mutate(child, rng)
			}
			children = append(children, child)
		}

		fitnesses, err := optimizer.evaluator.EvaluateAll(ctx, children)
		if err != nil { // Cancelled mid-generation: the partial generation is discarded
			outcome.stop = stopReason(err)
			break
		}

		population, nextID = optimizer.nextGeneration(population, children, fitnesses, nextID)
		outcome.generations++

		best = improve(best, population)
		outcome.history = append(outcome.history, best.fitness.score())

		optimizer.logger.Debug("generation evolved",
			zap.Int("generation", outcome.generations),
			zap.Int("hard", best.fitness.Hard),
			zap.Float64("soft", best.fitness.Soft),
		)
	}

	outcome.best = best
	return outcome, nil
}

// nextGeneration keeps the EliteCount fittest of the ranked population unchanged and appends the
// children, numbered in discovery order from nextID
func (optimizer *evolutionaryOptimizer) nextGeneration(ranked []individual, children []*Timetable, fitnesses []Fitness, nextID int) ([]individual, int) {
	next := slices.Clone(ranked[:optimizer.config.EliteCount])
	for i, child := range children {
		next = append(next, individual{timetable: child, fitness: fitnesses[i], id: nextID})
		nextID++
	}
	return next, nextID
}

// improve returns the best-ever individual once population is taken into account. An equally fit
// newcomer never replaces it.
func improve(best individual, population []individual) individual {
	if candidate := slices.MinFunc(population, compareIndividuals); compareIndividuals(candidate, best) < 0 {
		return candidate
	}
	return best
}

// tournament draws tournamentSize individuals with replacement and returns the fittest
func (optimizer *evolutionaryOptimizer) tournament(population []individual, rng *rand.Rand) individual {
	winner := population[rng.IntN(len(population))]
	for range optimizer.config.TournamentSize - 1 {
		if contender := population[rng.IntN(len(population))]; compareIndividuals(contender, winner) < 0 {
			winner = contender
		}
	}
	return winner
}

func stopReason(err error) timetable.StopReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return timetable.StopTimeBudget
	}
	return timetable.StopCancelled
}
