package scheduler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/pkg/errors"
)

var ErrInvalidRunConfig = errors.New("invalid run configuration")

// Weights multiply the unweighted soft penalties before they are summed
type Weights struct {
	LunchQuality     float64 `json:"lunchQuality" validate:"gte=0"`
	LoadDistribution float64 `json:"loadDistribution" validate:"gte=0"`
	GapMinimization  float64 `json:"gapMinimization" validate:"gte=0"`
	TeacherLoadCap   float64 `json:"teacherLoadCap" validate:"gte=0"`
}

type RunConfig struct {
	PopulationSize      int                  `json:"populationSize" validate:"gte=2"`
	MaxGenerations      int                  `json:"maxGenerations" validate:"gte=0"`
	EliteCount          int                  `json:"eliteCount" validate:"gte=0,ltfield=PopulationSize"`
	TournamentSize      int                  `json:"tournamentSize" validate:"gte=1"`
	CrossoverRate       float64              `json:"crossoverRate" validate:"gte=0,lte=1"`
	MutationRate        float64              `json:"mutationRate" validate:"gte=0,lte=1"`
	MutationSize        int                  `json:"mutationSize" validate:"gte=1"` // Upper bound of sessions relocated by one mutation
	Weights             Weights              `json:"weights"`
	HardWeight          float64              `json:"hardWeight" validate:"gt=0"`
	AcceptanceThreshold float64              `json:"acceptanceThreshold" validate:"gte=0"`
	TimeBudget          time.Duration        `json:"timeBudget" validate:"gte=0"` // Zero means no wall-clock budget
	Seed                uint64               `json:"seed"`
	Workers             int                  `json:"workers" validate:"gte=0"`         // Parallel fitness evaluators; zero means GOMAXPROCS
	TeacherDailyCap     int                  `json:"teacherDailyCap" validate:"gte=0"` // Used for teachers without their own cap; zero means unlimited
	HardTeacherCap      bool                 `json:"hardTeacherCap"`
	Semester            model.SemesterParity `json:"semester" validate:"omitempty,oneof=odd even"`
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		PopulationSize: 50,
		MaxGenerations: 300,
		EliteCount:     2,
		TournamentSize: 3,
		CrossoverRate:  0.9,
		MutationRate:   0.3,
		MutationSize:   3,
		Weights: Weights{
			LunchQuality:     5,
			LoadDistribution: 3,
			GapMinimization:  1,
			TeacherLoadCap:   2,
		},
		HardWeight:          1_000_000,
		AcceptanceThreshold: 0,
		Seed:                1,
	}
}

var validate = validator.New()

func (config RunConfig) Validate() error {
	if err := validate.Struct(config); err != nil {
		return errors.Wrapf(ErrInvalidRunConfig, "%v", err)
	}
	return nil
}
