package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nasreco-data/internal/config"
	"nasreco-data/internal/database"
	httpapi "nasreco-data/internal/http"
	"nasreco-data/internal/logger"
	"nasreco-data/internal/repository"
	"nasreco-data/internal/service"
	"nasreco-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "nasreco-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)

	// Repositories
	residentsRepo := repository.NewPostgresResidentsRepository(db)
	staffRepo := repository.NewPostgresStaffRepository(db)
	careRecordsRepo := repository.NewPostgresCareRecordsRepository(db)
	medicationRepo := repository.NewPostgresMedicationRepository(db)
	facilityRepo := repository.NewPostgresFacilityRepository(db)

	// Services
	authService := service.NewAuthService(staffRepo, kv, log)
	dailyService := service.NewDailyRecordService(careRecordsRepo, residentsRepo, staffRepo, log)
	medicationService := service.NewMedicationService(medicationRepo, residentsRepo, log)
	residentService := service.NewResidentService(residentsRepo, log)
	facilityService := service.NewFacilityService(facilityRepo, log)
	notifier := service.NewWebhookNotifier(cfg.Webhook, facilityRepo, log)

	// Handlers
	authHandler := httpapi.NewAuthHandler(authService, log)
	dailyHandler := httpapi.NewDailyRecordsHandler(dailyService, notifier, authHandler, log)
	medicationHandler := httpapi.NewMedicationHandler(medicationService, authHandler, log)
	residentHandler := httpapi.NewResidentHandler(residentService, authHandler, log)
	facilityHandler := httpapi.NewFacilityHandler(facilityService, authHandler, log)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(authHandler)
	router.RegisterRecordRoutes(dailyHandler, medicationHandler)
	router.RegisterAdminRoutes(residentHandler, facilityHandler)
	router.RegisterMetricsRoute()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server exited", zap.Error(err))
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}
