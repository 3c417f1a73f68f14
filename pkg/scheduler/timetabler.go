package scheduler

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"go.uber.org/zap"
)

type Timetabler interface {
	// Build runs one scheduling batch over an immutable roster snapshot. Configuration errors are
	// returned before any search starts; infeasibility and stalls are reported in the result.
	Build(
		ctx context.Context,
		roster model.Roster,
		config RunConfig,
	) (*timetable.Result, error)

	Verify(
		result *timetable.Result,
		roster model.Roster,
	) bool
}

type evolutionaryTimetabler struct {
	logger *zap.Logger
}

func NewEvolutionaryTimetabler(logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &evolutionaryTimetabler{
		logger: logger,
	}
}

// GenerateTimetable builds a timetable with a silent evolutionary timetabler
func GenerateTimetable(ctx context.Context, roster model.Roster, config RunConfig) (*timetable.Result, error) {
	return NewEvolutionaryTimetabler(nil).Build(ctx, roster, config)
}

func (timetabler *evolutionaryTimetabler) Build(ctx context.Context, roster model.Roster, config RunConfig) (*timetable.Result, error) {
	//** Validate input
	if err := config.Validate(); err != nil {
		return nil, err
	}
	roster = roster.FilterSemester(config.Semester)
	p, err := newProblem(roster, config)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := timetabler.logger.With(zap.String("run", runID))

	if config.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.TimeBudget)
		defer cancel()
	}

	//** Evolve
	rng := rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15))
	outcome, err := newEvolutionaryOptimizer(p, config, logger).Run(ctx, rng)
	if err != nil {
		return nil, err
	}

	//** Repair
	final, fitness := outcome.best.timetable, outcome.best.fitness
	var repaired repairOutcome
	if fitness.Hard > 0 {
		repaired = newLocalRepairer(p, config, logger).Repair(final)
		final = repaired.timetable
		fitness = newFitnessEvaluator(p, config).Evaluate(final)
	}

	//** Materialize
	penalties := make(map[string]float64, constraintCount)
	for i, name := range ConstraintNames {
		penalties[name] = fitness.Penalties[i]
	}
	summary := timetable.Summary{
		RunID:          runID,
		Seed:           config.Seed,
		HardViolations: fitness.Hard,
		SoftPenalty:    fitness.Soft,
		Penalties:      penalties,
		Generations:    outcome.generations,
		StopReason:     outcome.stop,
		Stalled:        outcome.stop != timetable.StopAccepted,
		Relocated:      repaired.relocated,
		History:        outcome.history,
	}

	logger.Info("timetable generated",
		zap.Int("sessions", len(p.sessions)),
		zap.Int("generations", outcome.generations),
		zap.String("stop", string(outcome.stop)),
		zap.Int("hard", fitness.Hard),
		zap.Float64("soft", fitness.Soft),
		zap.Int("unresolved", len(repaired.unresolved)),
	)

	return materialize(p, final, repaired.unresolved, summary), nil
}

func (timetabler *evolutionaryTimetabler) Verify(result *timetable.Result, roster model.Roster) bool {
	return verify(result, roster)
}
