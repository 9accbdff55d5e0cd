package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "prestamist-backend/internal/adapter/http"
	appmw "prestamist-backend/internal/adapter/middleware"
	"prestamist-backend/internal/adapter/repository/mysql"
	"prestamist-backend/internal/config"
	"prestamist-backend/internal/infrastructure/cache"
	"prestamist-backend/internal/infrastructure/db"
	loanuc "prestamist-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gormDB)
	trRepo := mysql.NewTransitionRepository(gormDB)
	guow := mysql.NewGormUoW(gormDB)

	uc := loanuc.NewUsecase(loanRepo, trRepo, guow)
	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)
	e.POST("/loans", lh.CreateLoan)
	e.GET("/loans", lh.ListLoans)
	e.GET("/loans/summary", lh.Summary)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.PATCH("/loans/:loan_id/status", lh.UpdateLoanStatus)
	e.GET("/loans/:loan_id/history", lh.LoanHistory)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
