package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "communityfund-ledger/internal/adapter/http"
	"communityfund-ledger/internal/adapter/middleware"
	"communityfund-ledger/internal/adapter/repository/mysql"
	"communityfund-ledger/internal/config"
	"communityfund-ledger/internal/domain/fund"
	"communityfund-ledger/internal/domain/loan"
	"communityfund-ledger/internal/domain/repayment"
	"communityfund-ledger/internal/infrastructure/cache"
	"communityfund-ledger/internal/infrastructure/db"
	fundUC "communityfund-ledger/internal/usecase/fund"
	loanUC "communityfund-ledger/internal/usecase/loan"
	repayUC "communityfund-ledger/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// dev bootstrap; production schemas are managed outside the binary
	if err := gdb.AutoMigrate(&loan.Loan{}, &repayment.Repayment{}, &fund.Pool{}); err != nil {
		log.Fatal(err)
	}

	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	pool := mysql.NewPoolRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// singleton pool row must exist before the first reservation
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := pool.Seed(ctx); err != nil {
		cancel()
		log.Fatal(err)
	}
	cancel()

	loanUsecase := loanUC.NewUsecase(loans, tx)
	fundUsecase := fundUC.NewUsecase(tx)
	repayUsecase := repayUC.NewUsecase(loans, repayments, tx)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUsecase)
	fh := httpadp.NewFundHandler(fundUsecase)
	rh := httpadp.NewRepaymentHandler(repayUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.GET("/funds/status", fh.FundStatus)
	e.POST("/funds/refresh", fh.RefreshFunds)

	e.POST("/loans", lh.CreateLoan)
	e.GET("/loans", lh.ListLoans)
	e.GET("/loans/summary", lh.LoanSummary)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.PUT("/loans/:loan_id", lh.UpdateLoan)
	e.POST("/loans/:loan_id/status", lh.TransitionLoan)
	e.DELETE("/loans/:loan_id", lh.DeleteLoan)

	e.POST("/loans/:loan_id/repayments", rh.AddRepayment)
	e.GET("/loans/:loan_id/repayments", rh.LoanStatement)
	e.GET("/loans/:loan_id/outstanding", rh.LoanOutstanding)
	e.PUT("/repayments/:repayment_id", rh.UpdateRepayment)
	e.DELETE("/repayments/:repayment_id", rh.DeleteRepayment)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
