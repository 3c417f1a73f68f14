package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/paarthsiloiya/SIH25011/internal/config"
	"github.com/paarthsiloiya/SIH25011/pkg/scheduler"
	"go.uber.org/zap"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	translator ut.Translator
	logger     *zap.Logger
	timetabler scheduler.Timetabler
	store      *Store

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, logger *zap.Logger, timetabler scheduler.Timetabler) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		translator: trans,
		logger:     logger,
		timetabler: timetabler,
		store:      NewStore(cfg.Server.MaxResults),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/timetables", func(r chi.Router) {
		r.Post("/", h.CreateTimetable)
		r.Get("/", h.GetAllTimetables)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.timetable)
			r.Get("/", h.GetTimetable)
			r.Get("/export.csv", h.ExportTimetable)
			r.Get("/sections/{section}", h.GetSectionTimetable)
			r.Get("/teachers/{teacher}", h.GetTeacherTimetable)
			r.Get("/rooms/{room}", h.GetRoomTimetable)
		})
	})
}
