package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/paarthsiloiya/SIH25011/pkg/model"
	"github.com/paarthsiloiya/SIH25011/pkg/scheduler"
	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"github.com/pkg/errors"
)

// runOverrides holds the per-request changes to the environment's run defaults
type runOverrides struct {
	PopulationSize      *int               `json:"populationSize" validate:"omitempty,min=2"`
	MaxGenerations      *int               `json:"maxGenerations" validate:"omitempty,min=0"`
	EliteCount          *int               `json:"eliteCount" validate:"omitempty,min=0"`
	CrossoverRate       *float64           `json:"crossoverRate" validate:"omitempty,min=0,max=1"`
	MutationRate        *float64           `json:"mutationRate" validate:"omitempty,min=0,max=1"`
	AcceptanceThreshold *float64           `json:"acceptanceThreshold" validate:"omitempty,min=0"`
	TimeBudget          string             `json:"timeBudget"` // Go duration, e.g. "30s"
	Seed                *uint64            `json:"seed"`
	TeacherDailyCap     *int               `json:"teacherDailyCap" validate:"omitempty,min=0"`
	HardTeacherCap      *bool              `json:"hardTeacherCap"`
	Semester            string             `json:"semester" validate:"omitempty,oneof=odd even"`
	Weights             *scheduler.Weights `json:"weights"`
}

func (overrides *runOverrides) apply(config *scheduler.RunConfig) error {
	if overrides == nil {
		return nil
	}
	if overrides.PopulationSize != nil {
		config.PopulationSize = *overrides.PopulationSize
	}
	if overrides.MaxGenerations != nil {
		config.MaxGenerations = *overrides.MaxGenerations
	}
	if overrides.EliteCount != nil {
		config.EliteCount = *overrides.EliteCount
	}
	if overrides.CrossoverRate != nil {
		config.CrossoverRate = *overrides.CrossoverRate
	}
	if overrides.MutationRate != nil {
		config.MutationRate = *overrides.MutationRate
	}
	if overrides.AcceptanceThreshold != nil {
		config.AcceptanceThreshold = *overrides.AcceptanceThreshold
	}
	if overrides.TimeBudget != "" {
		budget, err := time.ParseDuration(overrides.TimeBudget)
		if err != nil {
			return errors.Wrap(err, "invalid time budget")
		}
		config.TimeBudget = budget
	}
	if overrides.Seed != nil {
		config.Seed = *overrides.Seed
	}
	if overrides.TeacherDailyCap != nil {
		config.TeacherDailyCap = *overrides.TeacherDailyCap
	}
	if overrides.HardTeacherCap != nil {
		config.HardTeacherCap = *overrides.HardTeacherCap
	}
	if overrides.Semester != "" {
		config.Semester = model.SemesterParity(overrides.Semester)
	}
	if overrides.Weights != nil {
		config.Weights = *overrides.Weights
	}
	return nil
}

// requestBudget bounds the run so the response is written before the server's write timeout. A zero
// budget means unbounded.
func requestBudget(budget, writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return budget
	}
	limit := writeTimeout * 9 / 10
	if budget == 0 || budget > limit {
		return limit
	}
	return budget
}

func (h *Handler) CreateTimetable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Roster map[string]any `json:"roster" validate:"required"`
		Run    *runOverrides  `json:"run"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Build the roster and the run configuration
	roster, err := model.DecodeRoster(req.Roster)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	config := h.config.RunConfig()
	if err := req.Run.apply(&config); err != nil {
		h.badRequest(w, r, err)
		return
	}
	config.TimeBudget = requestBudget(config.TimeBudget, time.Duration(h.config.Server.WriteTimeout)*time.Second)

	// Generate
	result, err := h.timetabler.Build(r.Context(), roster, config)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrConfiguration), errors.Is(err, scheduler.ErrInvalidRunConfig):
			h.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	h.store.Put(result)

	h.successResponse(w, r, http.StatusCreated, "timetable generated", result)
}

func (h *Handler) GetAllTimetables(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, http.StatusOK, "timetables retrieved", h.store.Summaries())
}

func (h *Handler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(TimetableCtx).(*timetable.Result)

	h.successResponse(w, r, http.StatusOK, "timetable retrieved", result)
}

func (h *Handler) ExportTimetable(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(TimetableCtx).(*timetable.Result)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+result.RunID()+".csv\"")
	if err := timetable.WriteCSV(w, result); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) GetSectionTimetable(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(TimetableCtx).(*timetable.Result)

	h.successResponse(w, r, http.StatusOK, "section timetable retrieved", result.BySection(chi.URLParam(r, "section")))
}

func (h *Handler) GetTeacherTimetable(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(TimetableCtx).(*timetable.Result)

	h.successResponse(w, r, http.StatusOK, "teacher timetable retrieved", result.ByTeacher(chi.URLParam(r, "teacher")))
}

func (h *Handler) GetRoomTimetable(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(TimetableCtx).(*timetable.Result)

	h.successResponse(w, r, http.StatusOK, "room timetable retrieved", result.ByRoom(chi.URLParam(r, "room")))
}

