package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-vote-api/api/swagger"
	"github.com/noah-isme/sma-vote-api/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-vote-api/internal/middleware"
	"github.com/noah-isme/sma-vote-api/internal/repository"
	"github.com/noah-isme/sma-vote-api/internal/service"
	"github.com/noah-isme/sma-vote-api/pkg/cache"
	"github.com/noah-isme/sma-vote-api/pkg/config"
	"github.com/noah-isme/sma-vote-api/pkg/database"
	"github.com/noah-isme/sma-vote-api/pkg/export"
	"github.com/noah-isme/sma-vote-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-vote-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-vote-api/pkg/middleware/requestid"
)

// @title School Vote API
// @version 1.0.0
// @description Backend for school student-council elections: access codes, ballots and results.
// @BasePath /api
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ResultsTTL, logr, cfg.Cache.Enabled)

	configRepo := repository.NewElectionConfigRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	reportRepo := repository.NewReportRepository(db)

	validate := validator.New()

	accessSvc := service.NewAccessService(configRepo, settingRepo, logr)
	ballotSvc := service.NewBallotService(configRepo, studentRepo, voteRepo, candidateRepo, metricsSvc, validate, logr)
	electionSvc := service.NewElectionService(configRepo, studentRepo, candidateRepo, voteRepo, cacheSvc, validate, logr,
		service.WithDefaultSchoolName(cfg.Election.DefaultSchoolName))
	rosterSvc := service.NewRosterService(studentRepo, candidateRepo, voteRepo, cacheSvc, validate, logr)
	importSvc := service.NewImportService(studentRepo, metricsSvc, cacheSvc, logr)
	reportSvc := service.NewReportService(studentRepo, candidateRepo, reportRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(studentRepo, reportRepo, export.NewCSVExporter(export.WithByteOrderMark()), export.NewPDFExporter(), logr)

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	router := handler.NewRouter(handler.Handlers{
		Ballot:  handler.NewBallotHandler(ballotSvc),
		Config:  handler.NewConfigHandler(electionSvc, accessSvc),
		Admin:   handler.NewAdminHandler(rosterSvc, electionSvc, importSvc, exportSvc),
		Reports: handler.NewReportHandler(reportSvc),
		Metrics: metricsHandler,
	}, accessSvc, logr)

	r := gin.New()
	r.Use(internalmiddleware.Recovery(logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	if metricsSvc != nil {
		r.GET(cfg.Metrics.Path, metricsHandler.Prometheus)
	}
	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	router.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
