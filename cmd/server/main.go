package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/fleet"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/repository/mongodb"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/repository/sheets"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/scheduler"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/server/handlers"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/server/router"
	decisionssvc "github.com/ThanathipChokanantang/Airline-calculate/internal/service/decisions"
	routessvc "github.com/ThanathipChokanantang/Airline-calculate/internal/service/routes"
	"github.com/ThanathipChokanantang/Airline-calculate/pkg/clients/gemini"
	"github.com/ThanathipChokanantang/Airline-calculate/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var decisionSheet decisionssvc.Sheet
	if cfg.Sheets.Enabled() {
		sheetRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		decisionSheet = sheetRepo
		baseLogger.Info("decision spreadsheet log enabled")
	} else {
		baseLogger.Warn("decision spreadsheet log not configured, decisions stored in mongodb only")
	}

	oracle := gemini.NewClient(cfg.Gemini)
	catalog := fleet.Default()

	plannerSvc := routessvc.NewService(oracle, catalog, cfg.Route, baseLogger.Named("svc.routes"))
	recorderSvc := decisionssvc.NewService(mongoRepo, decisionSheet, baseLogger.Named("svc.decisions"))

	tableCache := routessvc.NewTableCache(cfg.Cache.TTL)

	routesHandler := handlers.NewRoutesHandler(
		plannerSvc,
		recorderSvc,
		tableCache,
		cfg.Route.OriginIATA,
		catalog.Version(),
		baseLogger.Named("handlers.routes"),
	)
	engine := router.New(routesHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, tableCache, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // seven sequential oracle calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
