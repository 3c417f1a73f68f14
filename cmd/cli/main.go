package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/paarthsiloiya/SIH25011/internal/config"
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/scheduler"
	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"go.uber.org/zap"
)

// Exit codes
const (
	scheduled    = 10 // Every session placed without hard violations
	unverifiable = 15 // The result contradicts the roster
	infeasible   = 20 // Hard violations or unresolved sessions remain
)

var (
	validFormats   = []string{"json", "csv"}
	validSemesters = []string{"", "odd", "even"}
	writers        = map[string]func(io.Writer, *timetable.Result) error{
		"json": timetable.WriteJSON,
		"csv":  timetable.WriteCSV,
	}
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	run := cfg.RunConfig()

	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the roster file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", "json", `Output format. Allowed values are "json" and "csv", where "json" is the default`)
	semesterPtr := flag.String("semester", string(run.Semester), `Semester parity to schedule. Allowed values are "odd" and "even"; empty schedules every section`)
	seedPtr := flag.Uint64("seed", run.Seed, "Seed of the run; equal seeds reproduce equal timetables")
	populationPtr := flag.Int("population", run.PopulationSize, "Number of candidates per generation")
	generationsPtr := flag.Int("generations", run.MaxGenerations, "Maximum number of generations")
	budgetPtr := flag.Duration("budget", run.TimeBudget, "Wall-clock budget of the run, e.g. 30s; zero disables it")
	capPtr := flag.Int("cap", run.TeacherDailyCap, "Maximum sessions per teacher and day; zero uses each teacher's own cap")
	hardCapPtr := flag.Bool("hard-cap", run.HardTeacherCap, "Count teacher cap excess as hard violations")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr
	format := strings.ToLower(*formatPtr)
	semester := strings.ToLower(*semesterPtr)

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if !slices.Contains(validSemesters, semester) {
		log.Fatalf("%v is not a valid semester", semester)
	}

	run.Semester = model.SemesterParity(semester)
	run.Seed = *seedPtr
	run.PopulationSize = *populationPtr
	run.MaxGenerations = *generationsPtr
	run.TimeBudget = *budgetPtr
	run.TeacherDailyCap = *capPtr
	run.HardTeacherCap = *hardCapPtr

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Extract input
	roster, err := model.InputFromJson(filePath)
	if err != nil {
		logger.Fatal("cannot parse input file", zap.Error(err))
	}

	// Interrupting the run keeps the best timetable found so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Build timetable
	timetabler := scheduler.NewEvolutionaryTimetabler(logger)
	start := time.Now()
	result, err := timetabler.Build(ctx, roster, run)
	if err != nil {
		logger.Fatal("an error occurred during timetable construction", zap.Error(err))
	}
	logger.Info("timetable built", zap.Duration("elapsed", time.Since(start)))

	// Write results
	output := os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			logger.Fatal("cannot create output file", zap.Error(err))
		}
		defer file.Close()
		output = file
	}
	if err := writers[format](output, result); err != nil {
		logger.Fatal("an error occurred while writing the output", zap.Error(err))
	}

	if !result.Feasible() {
		exit(output, infeasible)
	}
	// Verify timetable correctness
	if !timetabler.Verify(result, roster.FilterSemester(run.Semester)) {
		exit(output, unverifiable)
	}
	exit(output, scheduled)
}

// exit flushes the output file before leaving, since os.Exit skips deferred calls
func exit(output *os.File, code int) {
	if output != os.Stdout {
		output.Close()
	}
	os.Exit(code)
}
