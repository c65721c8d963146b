package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agrieye/config"
	"agrieye/database"
	"agrieye/pkg/catalog"
	"agrieye/pkg/logging"
	"agrieye/pkg/metrics"
	"agrieye/pkg/middleware"
	"agrieye/pkg/optimizer"
	"agrieye/router"

	// Auth
	authCtrlImp "agrieye/pkg/auth/controllerImp"

	// Optimize
	optCtrlImp "agrieye/pkg/optimize/controllerImp"
	optRepo "agrieye/pkg/optimize/repository"
	optRepoImp "agrieye/pkg/optimize/repositoryImp"
	optSvcImp "agrieye/pkg/optimize/serviceImp"

	// Catalog
	catCtrlImp "agrieye/pkg/catalog/controllerImp"
	catRepoImp "agrieye/pkg/catalog/repositoryImp"
	catSvcImp "agrieye/pkg/catalog/serviceImp"

	// Treatment plans
	tpCtrlImp "agrieye/pkg/treatmentplan/controllerImp"
	tpRepoImp "agrieye/pkg/treatmentplan/repositoryImp"

	// Health
	healthCtrlImp "agrieye/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Optimizer
	optCfg, err := config.LoadOptimizer(cfg.OptimizerConfig)
	if err != nil {
		logger.Fatal("optimizer config", zap.Error(err))
	}
	opt := optimizer.New(optCfg)
	rec := metrics.New()

	// 4) Services
	var runs optRepo.RunRepository
	if cfg.PersistRuns {
		runs = optRepoImp.New(db)
	}
	optSvc := optSvcImp.NewOptimizeService(opt, runs, logger, rec)
	fetch := catalog.NewFetcher(cfg.CatalogAllow, cfg.CatalogMaxBytes)
	catSvc := catSvcImp.New(catRepoImp.New(db), fetch, optSvc, logger, rec)

	// 5) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(logger.Named("http")))

	r := router.New(e, cfg.RequireAuth, router.Controllers{
		Auth:     authCtrlImp.NewAuthController(),
		Health:   healthCtrlImp.NewHealthCtrl(db, opt),
		Optimize: optCtrlImp.New(optSvc),
		Catalog:  catCtrlImp.New(catSvc),
		Plans:    tpCtrlImp.New(tpRepoImp.New(db), logger),
		Metrics:  rec.Handler(),
	})

	// 6) Start
	logger.Info("listening",
		zap.String("port", cfg.Port),
		zap.Bool("require_auth", cfg.RequireAuth),
		zap.Bool("persist_runs", cfg.PersistRuns),
		zap.Strings("catalog_allow", cfg.CatalogAllow),
	)
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
