package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/adapter/handler"
	"github.com/tumansdev/angthong-poolvilla/internal/adapter/notifier"
	"github.com/tumansdev/angthong-poolvilla/internal/adapter/repository/memory"
	"github.com/tumansdev/angthong-poolvilla/internal/adapter/repository/postgres"
	"github.com/tumansdev/angthong-poolvilla/internal/adapter/repository/sheet"
	"github.com/tumansdev/angthong-poolvilla/internal/core/ports"
	"github.com/tumansdev/angthong-poolvilla/internal/core/services"
	"github.com/tumansdev/angthong-poolvilla/internal/platform/config"
	"github.com/tumansdev/angthong-poolvilla/internal/platform/database"
	"github.com/tumansdev/angthong-poolvilla/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	bookingRepo, cleanup, err := newBookingRepository(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize booking store", zap.Error(err))
	}
	if cleanup != nil {
		defer cleanup()
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	}

	var lineNotifier ports.Notifier
	if cfg.LineChannelToken != "" && cfg.LineRecipientID != "" {
		lineNotifier = notifier.NewLineNotifier(cfg.LineChannelToken, cfg.LineRecipientID, log)
	}

	catalog := memory.NewVillaCatalog()
	availability := services.NewAvailabilityService(bookingRepo, cache, log)
	bookingService := services.NewBookingService(catalog, bookingRepo, availability, lineNotifier, log)
	queryService := services.NewQueryService(bookingRepo, log)

	villaHandler := handler.NewVillaHandler(catalog, availability)
	bookingHandler := handler.NewBookingHandler(bookingService, queryService)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go bookingService.RunAutoComplete(workerCtx, cfg.AutoCompleteInterval)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /villas", villaHandler.ListVillas)
	mux.HandleFunc("GET /villas/{id}", villaHandler.GetVilla)
	mux.HandleFunc("GET /villas/{id}/blocked-dates", villaHandler.BlockedDates)
	mux.HandleFunc("POST /bookings", bookingHandler.CreateBooking)
	mux.HandleFunc("GET /bookings", bookingHandler.ListBookings)
	mux.HandleFunc("GET /bookings/{id}", bookingHandler.GetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", bookingHandler.UpdateStatus)
	mux.HandleFunc("GET /bookings/user/{lineUserId}", bookingHandler.ListByLineUser)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server startup failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}

func newBookingRepository(cfg *config.Config, log *zap.Logger) (ports.BookingRepository, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return memory.NewBookingRepository(), nil, nil
	case "sheet":
		return sheet.NewBookingStore(cfg.SheetPath, log), nil, nil
	case "postgres":
		db, err := database.NewPostgresDB(database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return postgres.NewBookingRepository(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
