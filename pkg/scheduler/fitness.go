package scheduler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Fitness ranks candidates lexicographically: fewer hard violations first, then lower soft penalty
type Fitness struct {
	Hard      int
	Soft      float64                  // Weighted sum of the soft penalties
	Penalties [constraintCount]float64 // Unweighted penalty per soft constraint
}

func (fitness Fitness) Less(other Fitness) bool {
	if fitness.Hard != other.Hard {
		return fitness.Hard < other.Hard
	}
	return fitness.Soft < other.Soft
}

// Score collapses the fitness to hard*hardWeight + soft
func (fitness Fitness) Score(hardWeight float64) float64 {
	return float64(fitness.Hard)*hardWeight + fitness.Soft
}

type fitnessEvaluator interface {
	// Evaluate scores a single candidate. It is pure: the same candidate always yields the same fitness.
	Evaluate(timetable *Timetable) Fitness

	// EvaluateAll scores candidates in parallel; the i-th fitness belongs to the i-th candidate
	EvaluateAll(ctx context.Context, timetables []*Timetable) ([]Fitness, error)
}

type fitnessEvaluatorStandard struct {
	problem     *problem
	hardCap     bool
	weights     [constraintCount]float64
	constraints [constraintCount]softConstraint
	workers     int
}

func newFitnessEvaluator(p *problem, config RunConfig) fitnessEvaluator {
	return &fitnessEvaluatorStandard{
		problem:     p,
		hardCap:     config.HardTeacherCap,
		weights:     config.Weights.array(),
		constraints: softConstraints(config),
		workers:     workerCount(config.Workers),
	}
}

func (evaluator *fitnessEvaluatorStandard) Evaluate(timetable *Timetable) Fitness {
	b := boardOf(evaluator.problem, evaluator.hardCap, timetable.placements)

	fitness := Fitness{Hard: hardViolations(evaluator.problem, timetable, b)}
	for i, constraint := range evaluator.constraints {
		fitness.Penalties[i] = constraint.Evaluate(evaluator.problem, timetable, b)
		fitness.Soft += fitness.Penalties[i] * evaluator.weights[i]
	}
	return fitness
}

func (evaluator *fitnessEvaluatorStandard) EvaluateAll(ctx context.Context, timetables []*Timetable) ([]Fitness, error) {
	fitnesses := make([]Fitness, len(timetables))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(evaluator.workers)
	for i, timetable := range timetables {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fitnesses[i] = evaluator.Evaluate(timetable) // Every worker writes its own index only
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return fitnesses, nil
}

func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.GOMAXPROCS(0)
}
