package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paarthsiloiya/SIH25011/internal/config"
	"github.com/paarthsiloiya/SIH25011/internal/handler"
	"github.com/paarthsiloiya/SIH25011/pkg/scheduler"
	"go.uber.org/zap"
)

func main() {
	//** Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	//** Create logger
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	//** Create handler
	h, err := handler.NewHandler(cfg, logger, scheduler.NewEvolutionaryTimetabler(logger))
	if err != nil {
		logger.Fatal("cannot create handler", zap.Error(err))
	}
	h.RegisterRoutes()

	//** Start HTTP server
	errorLog, err := zap.NewStdLogAt(logger, zap.ErrorLevel)
	if err != nil {
		logger.Fatal("cannot create server error log", zap.Error(err))
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     errorLog,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server shut down")
}
