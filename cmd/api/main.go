package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	httpadp "sme-finance-engine/internal/adapter/http"
	appmw "sme-finance-engine/internal/adapter/middleware"
	"sme-finance-engine/internal/adapter/repository/mysql"
	"sme-finance-engine/internal/config"
	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/financerequest"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/sme"
	"sme-finance-engine/internal/infrastructure/cache"
	"sme-finance-engine/internal/infrastructure/db"
	"sme-finance-engine/internal/jobs"
	"sme-finance-engine/internal/telemetry"
	"sme-finance-engine/internal/usecase/financing"
	"sme-finance-engine/internal/usecase/reporting"
	"sme-finance-engine/internal/usecase/scoring"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connect failed")
	}
	if err := gdb.AutoMigrate(
		&sme.SME{},
		&invoice.Invoice{},
		&financerequest.FinanceRequest{},
		&creditscore.CreditScore{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate failed")
	}

	rdb, err := cache.OpenRedis(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.WithError(err).Fatal("redis connect failed")
	}

	// repositories + unit of work
	smes := mysql.NewSMERepository(gdb)
	invoices := mysql.NewInvoiceRepository(gdb)
	requests := mysql.NewFinanceRequestRepository(gdb)
	scores := mysql.NewCreditScoreRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// usecases
	financeUC := financing.NewUsecase(requests, uow, cfg.ScoreMaxAge, log)
	scoringUC := scoring.NewUsecase(scores, uow, log)
	reportingUC := reporting.NewUsecase(smes, invoices, requests, scores)

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	// handlers
	h := httpadp.NewHandler()
	financeH := httpadp.NewFinanceHandler(financeUC, metrics)
	dashboardH := httpadp.NewDashboardHandler(reportingUC)
	scoreH := httpadp.NewCreditScoreHandler(scoringUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authed := e.Group("/api", appmw.ActorMiddleware(cfg.AuthSecret))
	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	authed.POST("/finance/requests", financeH.SubmitRequest, idemp)
	authed.PUT("/finance/requests/:request_id/decision", financeH.DecideRequest, idemp)
	authed.GET("/finance/requests/sme/:sme_id", financeH.ListBySME)
	authed.GET("/finance/requests/pending", financeH.ListPending)

	authed.GET("/dashboard/:sme_id/summary", dashboardH.Summary)
	authed.GET("/lenders/available-smes", dashboardH.AvailableSMEs)

	authed.POST("/credit-scores/:sme_id/assess", scoreH.Assess, idemp)
	authed.GET("/credit-scores/:sme_id/latest", scoreH.Latest)
	authed.GET("/credit-scores/:sme_id/history", scoreH.History)

	rescorer := jobs.NewRescorer(smes, uow, cfg.ScoreMaxAge, cfg.RescoreSchedule, log)
	if err := rescorer.Start(); err != nil {
		log.WithError(err).Fatal("rescore job failed to start")
	}
	defer rescorer.Stop()

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
