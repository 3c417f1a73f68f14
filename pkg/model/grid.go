package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

const clockLayout = "15:04"

// Slot is a (day, period) coordinate in the weekly grid
type Slot struct {
	Day    int `json:"day" mapstructure:"day"`
	Period int `json:"period" mapstructure:"period"`
}

// GridConfig holds the constructor-time parameters of the weekly grid. LunchStart and LunchEnd
// are inclusive period bounds of the lunch window.
type GridConfig struct {
	Days          int      `json:"days" mapstructure:"days" validate:"gt=0"`
	Periods       int      `json:"periods" mapstructure:"periods" validate:"gt=0"`
	LunchStart    int      `json:"lunchStart" mapstructure:"lunchStart" validate:"gte=0"`
	LunchEnd      int      `json:"lunchEnd" mapstructure:"lunchEnd" validate:"gte=0"`
	BreakPeriods  []int    `json:"breakPeriods,omitempty" mapstructure:"breakPeriods"`
	BlockedSlots  []Slot   `json:"blockedSlots,omitempty" mapstructure:"blockedSlots"`
	DayNames      []string `json:"dayNames,omitempty" mapstructure:"dayNames"`
	StartTime     string   `json:"startTime,omitempty" mapstructure:"startTime"`
	PeriodMinutes int      `json:"periodMinutes,omitempty" mapstructure:"periodMinutes" validate:"gte=0"`
}

var defaultDayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Grid is the discrete time universe of a scheduling run. It is never mutated after construction.
type Grid struct {
	config      GridConfig
	indexer     slotIndexer
	schedulable []bool
	start       time.Time
	hasClock    bool
}

// NewGrid validates config eagerly and builds the grid
func NewGrid(config GridConfig) (*Grid, error) {
	//** Validate dimensions
	if config.Days <= 0 || config.Periods <= 0 {
		return nil, configurationErrorf("grid must have at least one day and one period, got %d days and %d periods", config.Days, config.Periods)
	}
	if config.LunchStart > config.LunchEnd {
		return nil, configurationErrorf("lunch window is empty: start %d is after end %d", config.LunchStart, config.LunchEnd)
	}
	if config.LunchStart < 0 || config.LunchEnd >= config.Periods {
		return nil, configurationErrorf("lunch window [%d, %d] is outside the day's periods [0, %d]", config.LunchStart, config.LunchEnd, config.Periods-1)
	}
	if len(config.DayNames) != 0 && len(config.DayNames) != config.Days {
		return nil, configurationErrorf("%d day names given for %d days", len(config.DayNames), config.Days)
	}

	grid := &Grid{
		config:      config,
		indexer:     newSlotIndexer(config.Days, config.Periods),
		schedulable: make([]bool, config.Days*config.Periods),
	}

	//** Validate clock
	if config.StartTime != "" {
		start, err := time.Parse(clockLayout, config.StartTime)
		if err != nil {
			return nil, configurationErrorf("start time %q is not in HH:MM format", config.StartTime)
		}
		if config.PeriodMinutes <= 0 {
			return nil, configurationErrorf("period minutes must be positive when a start time is given")
		}
		grid.start, grid.hasClock = start, true
	}

	//** Mark schedulable slots
	for i := range grid.schedulable {
		grid.schedulable[i] = true
	}
	for _, period := range config.BreakPeriods {
		if period < 0 || period >= config.Periods {
			return nil, configurationErrorf("break period %d is outside the day's periods [0, %d]", period, config.Periods-1)
		}
		for day := range config.Days {
			grid.schedulable[grid.indexer.Index(day, period)] = false
		}
	}
	for _, slot := range config.BlockedSlots {
		if !grid.Contains(slot) {
			return nil, configurationErrorf("blocked slot %v is outside the grid", slot)
		}
		grid.schedulable[grid.indexer.Index(slot.Day, slot.Period)] = false
	}

	if !slices.Contains(grid.schedulable, true) {
		return nil, configurationErrorf("grid has no schedulable slot")
	}

	return grid, nil
}

func (grid *Grid) Config() GridConfig {
	config := grid.config
	config.BreakPeriods = slices.Clone(config.BreakPeriods)
	config.BlockedSlots = slices.Clone(config.BlockedSlots)
	config.DayNames = slices.Clone(config.DayNames)
	return config
}

func (grid *Grid) Days() int    { return grid.config.Days }
func (grid *Grid) Periods() int { return grid.config.Periods }

// Size is the number of slots in the week, schedulable or not
func (grid *Grid) Size() int { return grid.config.Days * grid.config.Periods }

// Index returns the dense index of slot; Slot is its inverse
func (grid *Grid) Index(slot Slot) int { return grid.indexer.Index(slot.Day, slot.Period) }

func (grid *Grid) Slot(index int) Slot {
	day, period := grid.indexer.Attributes(index)
	return Slot{Day: day, Period: period}
}

func (grid *Grid) Contains(slot Slot) bool {
	return slot.Day >= 0 && slot.Day < grid.config.Days && slot.Period >= 0 && slot.Period < grid.config.Periods
}

func (grid *Grid) IsSchedulable(slot Slot) bool {
	return grid.Contains(slot) && grid.schedulable[grid.Index(slot)]
}

// Slots enumerates the schedulable slots of the week in (day, period) order
func (grid *Grid) Slots() []Slot {
	slots := make([]Slot, 0, len(grid.schedulable))
	for index, ok := range grid.schedulable {
		if ok {
			slots = append(slots, grid.Slot(index))
		}
	}
	return slots
}

// Starts enumerates the first slots of every run of duration contiguous schedulable periods within
// a single day
func (grid *Grid) Starts(duration int) []Slot {
	return lo.Filter(grid.Slots(), func(slot Slot, _ int) bool {
		return grid.Fits(slot, duration)
	})
}

// Fits checks whether duration periods starting at slot are all schedulable and on the same day
func (grid *Grid) Fits(slot Slot, duration int) bool {
	if duration <= 0 || slot.Period+duration > grid.config.Periods {
		return false
	}
	for offset := range duration {
		if !grid.IsSchedulable(Slot{Day: slot.Day, Period: slot.Period + offset}) {
			return false
		}
	}
	return true
}

func (grid *Grid) LunchWindow() (start, end int) {
	return grid.config.LunchStart, grid.config.LunchEnd
}

func (grid *Grid) InLunchWindow(period int) bool {
	return period >= grid.config.LunchStart && period <= grid.config.LunchEnd
}

func (grid *Grid) DayName(day int) string {
	if len(grid.config.DayNames) > 0 {
		return grid.config.DayNames[day]
	}
	if day < len(defaultDayNames) {
		return defaultDayNames[day]
	}
	return fmt.Sprintf("Day %d", day+1)
}

// PeriodTimes returns the wall-clock bounds of duration periods starting at period. ok is false when
// the grid carries no clock.
func (grid *Grid) PeriodTimes(period, duration int) (start, end string, ok bool) {
	if !grid.hasClock {
		return "", "", false
	}
	minutes := time.Duration(grid.config.PeriodMinutes) * time.Minute
	from := grid.start.Add(time.Duration(period) * minutes)
	to := from.Add(time.Duration(duration) * minutes)
	return from.Format(clockLayout), to.Format(clockLayout), true
}
