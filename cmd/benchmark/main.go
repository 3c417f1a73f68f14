package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/scheduler"
	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const MB float32 = 1024 * 1024

type TestMetadata struct {
	Name     string
	Sections int
	Teachers int
	Rooms    int
	Sessions int
}

type ConfigurationMetadata struct {
	Name   string
	Config scheduler.RunConfig
}

type BenchmarkResult struct {
	Configuration  string  `csv:"configuration"`
	Test           string  `csv:"test"`
	Sections       int     `csv:"sections"`
	Teachers       int     `csv:"teachers"`
	Rooms          int     `csv:"rooms"`
	Sessions       int     `csv:"sessions"`
	Seed           uint64  `csv:"seed"`
	Duration       int64   `csv:"duration_ms"`
	Memory         float32 `csv:"allocated_mb"`
	Generations    int     `csv:"generations"`
	HardViolations int     `csv:"hard_violations"`
	SoftPenalty    float64 `csv:"soft_penalty"`
	Unresolved     int     `csv:"unresolved"`
	Relocated      int     `csv:"relocated"`
	Result         string  `csv:"result"`
}

func main() {
	directoryPtr := flag.String("dir", "pkg/model/testdata", "Directory holding the roster files to benchmark")
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path to the CSV report")
	seedsPtr := flag.Int("seeds", 3, "Number of seeds run per roster and configuration")
	flag.Parse()

	tests, rosters := getTests(*directoryPtr)
	configurations := getConfigurations()
	seeds := lo.Map(lo.Range(max(*seedsPtr, 1)), func(seed int, _ int) uint64 { return uint64(seed + 1) })
	results := make([]*BenchmarkResult, 0, len(tests)*len(configurations)*len(seeds))

	timetabler := scheduler.NewEvolutionaryTimetabler(zap.NewNop())
	for i, test := range tests {
		for _, configuration := range configurations {
			for _, seed := range seeds {
				fmt.Printf("Benchmarking test \"%v\" with configuration \"%v\" and seed %v\n", test.Name, configuration.Name, seed)

				config := configuration.Config
				config.Seed = seed
				results = append(results, measure(timetabler, test, rosters[i], configuration.Name, config))
			}
		}
	}

	toCsv(*outFilePtr, results)
}

func getTests(directory string) ([]TestMetadata, []model.Roster) {
	files, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(files))
	rosters := make([]model.Roster, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		filename := filepath.Join(directory, file.Name())
		roster, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, describe(filename, roster))
		rosters = append(rosters, roster)
	}

	return tests, rosters
}

func describe(name string, roster model.Roster) TestMetadata {
	return TestMetadata{
		Name:     name,
		Sections: len(roster.Sections),
		Teachers: len(roster.Teachers),
		Rooms:    len(roster.Rooms),
		Sessions: lo.SumBy(roster.Requirements(), func(requirement model.Requirement) int { return requirement.Count }),
	}
}

func getConfigurations() []ConfigurationMetadata {
	small := scheduler.DefaultRunConfig()
	small.PopulationSize = 20
	small.MaxGenerations = 100

	wide := scheduler.DefaultRunConfig()
	wide.PopulationSize = 100
	wide.TournamentSize = 5
	wide.EliteCount = 4

	disruptive := scheduler.DefaultRunConfig()
	disruptive.MutationRate = 0.6
	disruptive.MutationSize = 6

	capped := scheduler.DefaultRunConfig()
	capped.TeacherDailyCap = 3
	capped.HardTeacherCap = true

	return []ConfigurationMetadata{
		{Name: "default", Config: scheduler.DefaultRunConfig()},
		{Name: "small", Config: small},
		{Name: "wide", Config: wide},
		{Name: "disruptive", Config: disruptive},
		{Name: "hard-cap", Config: capped},
	}
}

func measure(timetabler scheduler.Timetabler, test TestMetadata, roster model.Roster, configuration string, config scheduler.RunConfig) *BenchmarkResult {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	result, err := timetabler.Build(context.Background(), roster, config)
	duration := time.Since(start)
	if err != nil {
		log.Fatalf("an error occurred while building test \"%v\" with configuration \"%v\": %v", test.Name, configuration, err)
	}
	runtime.ReadMemStats(&after)

	return report(test, configuration, config.Seed, duration, float32(after.TotalAlloc-before.TotalAlloc)/MB, result, timetabler.Verify(result, roster))
}

func report(test TestMetadata, configuration string, seed uint64, duration time.Duration, memory float32, result *timetable.Result, verified bool) *BenchmarkResult {
	summary := result.Summary()
	outcome := "infeasible"
	if result.Feasible() {
		outcome = lo.Ternary(verified, "scheduled", "unverified")
	}

	return &BenchmarkResult{
		Configuration:  configuration,
		Test:           test.Name,
		Sections:       test.Sections,
		Teachers:       test.Teachers,
		Rooms:          test.Rooms,
		Sessions:       test.Sessions,
		Seed:           seed,
		Duration:       duration.Milliseconds(),
		Memory:         memory,
		Generations:    summary.Generations,
		HardViolations: summary.HardViolations,
		SoftPenalty:    summary.SoftPenalty,
		Unresolved:     len(result.Unresolved()),
		Relocated:      summary.Relocated,
		Result:         outcome,
	}
}

func toCsv(path string, results []*BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV report: %v", err)
	}
}
