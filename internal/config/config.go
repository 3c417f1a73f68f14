package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/scheduler"
	"go.uber.org/zap"
)

const Prefix = "TIMETABLE_"

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"120"` // Generation runs synchronously within the request
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		MaxRosterBytes  int64  `env:"MAX_ROSTER_BYTES" envDefault:"4194304"`
		MaxResults      int    `env:"MAX_RESULTS" envDefault:"64"`
	} `envPrefix:"SERVER_"`
	Run struct {
		PopulationSize      int           `env:"POPULATION_SIZE" envDefault:"50"`
		MaxGenerations      int           `env:"MAX_GENERATIONS" envDefault:"300"`
		EliteCount          int           `env:"ELITE_COUNT" envDefault:"2"`
		TournamentSize      int           `env:"TOURNAMENT_SIZE" envDefault:"3"`
		CrossoverRate       float64       `env:"CROSSOVER_RATE" envDefault:"0.9"`
		MutationRate        float64       `env:"MUTATION_RATE" envDefault:"0.3"`
		MutationSize        int           `env:"MUTATION_SIZE" envDefault:"3"`
		HardWeight          float64       `env:"HARD_WEIGHT" envDefault:"1000000"`
		AcceptanceThreshold float64       `env:"ACCEPTANCE_THRESHOLD" envDefault:"0"`
		TimeBudget          time.Duration `env:"TIME_BUDGET" envDefault:"0s"`
		Seed                uint64        `env:"SEED" envDefault:"1"`
		Workers             int           `env:"WORKERS" envDefault:"0"`
		TeacherDailyCap     int           `env:"TEACHER_DAILY_CAP" envDefault:"0"`
		HardTeacherCap      bool          `env:"HARD_TEACHER_CAP" envDefault:"false"`
		Semester            string        `env:"SEMESTER"`
		Weights             struct {
			LunchQuality     float64 `env:"LUNCH_QUALITY" envDefault:"5"`
			LoadDistribution float64 `env:"LOAD_DISTRIBUTION" envDefault:"3"`
			GapMinimization  float64 `env:"GAP_MINIMIZATION" envDefault:"1"`
			TeacherLoadCap   float64 `env:"TEACHER_LOAD_CAP" envDefault:"2"`
		} `envPrefix:"WEIGHT_"`
	}
}

// LoadConfig reads the configuration from TIMETABLE_ prefixed environment variables
func LoadConfig() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// Defaults returns the configuration as if no variable were set
func Defaults() *Config {
	cfg, _ := parse(env.Options{Prefix: Prefix, Environment: map[string]string{}})
	return cfg
}

func parse(options env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, options); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

// RunConfig converts the environment defaults into a scheduler run configuration
func (cfg *Config) RunConfig() scheduler.RunConfig {
	run := cfg.Run
	return scheduler.RunConfig{
		PopulationSize: run.PopulationSize,
		MaxGenerations: run.MaxGenerations,
		EliteCount:     run.EliteCount,
		TournamentSize: run.TournamentSize,
		CrossoverRate:  run.CrossoverRate,
		MutationRate:   run.MutationRate,
		MutationSize:   run.MutationSize,
		Weights: scheduler.Weights{
			LunchQuality:     run.Weights.LunchQuality,
			LoadDistribution: run.Weights.LoadDistribution,
			GapMinimization:  run.Weights.GapMinimization,
			TeacherLoadCap:   run.Weights.TeacherLoadCap,
		},
		HardWeight:          run.HardWeight,
		AcceptanceThreshold: run.AcceptanceThreshold,
		TimeBudget:          run.TimeBudget,
		Seed:                run.Seed,
		Workers:             run.Workers,
		TeacherDailyCap:     run.TeacherDailyCap,
		HardTeacherCap:      run.HardTeacherCap,
		Semester:            model.SemesterParity(run.Semester),
	}
}

// Logger builds a development logger when ENVIRONMENT is "development", a production one otherwise
func (cfg *Config) Logger() (*zap.Logger, error) {
	if cfg.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
