package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"studentportal/config"
	"studentportal/domain"
	"studentportal/middleware"
	"studentportal/services/registration/delivery"
	"studentportal/services/registration/repository"
	"studentportal/services/registration/usecase"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var log *logrus.Logger

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	log = config.GetLogrusInstance()

	if err := startHTTP(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func startHTTP() error {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	app.Use(recover.New())
	app.Use(metrics.Instrument())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetCorsAllowOrigins(),
		AllowMethods: "GET,POST",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Errorf("Failed to boot DB: %v", err)
		return err
	}

	// Regis repo and Usecase Here
	registrationRepo := repository.NewRegistrationRepository(db)

	var cache domain.RegistrationCache
	rdb, err := config.InitRedis()
	if err != nil {
		log.Warnf("List cache disabled: %v", err)
	} else if rdb != nil {
		defer rdb.Close()
		cache = repository.NewRegistrationCache(rdb, config.GetCacheTTL())
	}

	var events domain.RegistrationEvents
	if writer := config.InitKafkaWriter(); writer != nil {
		defer writer.Close()
		events = repository.NewRegistrationEvents(writer)
	}

	registrationUC := usecase.NewRegistrationUseCase(registrationRepo, cache, events, config.GetRequestTimeout())

	// delivery here
	delivery.NewRegistrationDelivery(app, registrationUC, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		return app.Listen(config.GetFiberListenAddress())
	})

	var metricsServer *http.Server
	if addr := config.GetMetricsAddress(); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			log.Infof("Starting metrics server on %s", addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down the server...")

		if err := app.Shutdown(); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
		}
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Errorf("Error during metrics shutdown: %v", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("Server shut down gracefully")
	return nil
}
