package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/config"
	"github.com/iliyamo/ticket-stock-reconciler/internal/database"
	"github.com/iliyamo/ticket-stock-reconciler/internal/handler"
	"github.com/iliyamo/ticket-stock-reconciler/internal/middleware"
	"github.com/iliyamo/ticket-stock-reconciler/internal/queue"
	"github.com/iliyamo/ticket-stock-reconciler/internal/reconcile"
	"github.com/iliyamo/ticket-stock-reconciler/internal/repository"
	"github.com/iliyamo/ticket-stock-reconciler/internal/router"
	"github.com/iliyamo/ticket-stock-reconciler/internal/sector"
	"github.com/iliyamo/ticket-stock-reconciler/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var blocks sector.BlockDB
	if cfg.VenueDBPath != "" {
		blocks, err = sector.LoadBlockDB(cfg.VenueDBPath)
		if err != nil {
			return fmt.Errorf("load venue db: %w", err)
		}
	}
	canon := sector.NewCanonicalizer(blocks)

	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	svc := &service.Reconciler{
		Root:    cfg.StockRoot,
		Builder: reconcile.NewBuilder(canon, logger),
		Runs:    repository.NewRunRepo(db),
		Logger:  logger,
	}
	if cfg.QueueEnabled {
		svc.Events = &service.AMQPPublisher{URL: cfg.RabbitURL}
		consumer := &queue.ReportConsumer{URL: cfg.RabbitURL, LogDir: cfg.ReportLogDir, Logger: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("report consumer stopped", "error", err)
			}
		}()
	}

	var limit, cache echo.MiddlewareFunc
	if rdb := config.NewRedisClient(ctx, config.LoadRedisConfig()); rdb != nil {
		defer func() { _ = rdb.Close() }()
		limit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	} else {
		logger.Warn("redis unavailable, cache and rate limit disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterOperator(e, router.OperatorHandlers{
		Stock:           &handler.StockHandler{Root: cfg.StockRoot, Logger: logger},
		Allocations:     &handler.AllocationHandler{Canon: canon},
		Reconciliations: &handler.ReconciliationHandler{Svc: svc},
		Lookup:          &handler.LookupHandler{Canon: canon},
	}, cfg.JWTSecret, limit, cache)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "stock_root", cfg.StockRoot)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
