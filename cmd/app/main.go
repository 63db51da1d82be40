package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coffeeshop/cmd"
	httpserver "coffeeshop/internal/adapters/in/http"
	"coffeeshop/internal/adapters/out/postgres/orderrepo"
	"coffeeshop/internal/adapters/out/postgres/productrepo"
	"coffeeshop/internal/jobs"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load(".env")

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck //flushing on shutdown

	cfg, err := cmd.ParseConfig()
	if err != nil {
		logger.Fatal("failed to parse config", zap.Error(err))
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &productrepo.ProductDTO{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(cfg, gormDB, logger)

	if err = seedCatalog(context.Background(), root.ProductCatalog(), logger); err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}

	jobManager := jobs.NewJobManager(root.SessionStore(), cfg.SessionIdleTimeout, logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	server := httpserver.NewServer(
		root.CreateStartSessionCommandHandler(),
		root.CreateSubmitInputCommandHandler(),
		root.CreateFinalizeOrderCommandHandler(),
		root.CreateVerifyTokenCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateGetAwaitingPickupOrdersQueryHandler(),
		root.CreateGetCustomerOrdersQueryHandler(),
		root.ProductCatalog(),
		logger,
	)
	server.RegisterRoutes(e)

	go func() {
		if startErr := e.Start("0.0.0.0:" + cfg.HTTPPort); startErr != nil {
			logger.Info("http server stopped", zap.Error(startErr))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
