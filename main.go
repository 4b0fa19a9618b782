package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/local-event-finder/config"
	"github.com/Eursukkul/local-event-finder/internal/consumer"
	"github.com/Eursukkul/local-event-finder/internal/middleware"
	"github.com/Eursukkul/local-event-finder/internal/repository"
	"github.com/Eursukkul/local-event-finder/internal/router"
	"github.com/Eursukkul/local-event-finder/internal/service"
	"github.com/Eursukkul/local-event-finder/pkg/cache"
	"github.com/Eursukkul/local-event-finder/pkg/database"
	"github.com/Eursukkul/local-event-finder/pkg/rabbitmq"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	db := openDB(cfg)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	interestRepo := repository.NewInterestRepository(db)

	// RabbitMQ: domain notifications out, resync requests in
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
	} else {
		log.Println("[RabbitMQ] RABBITMQ_URL not set, notifications disabled")
	}

	// Services
	reservationSvc := service.NewReservationService(eventRepo, interestRepo, publisher)

	var searchCache service.SearchCache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Printf("[Redis] %s unreachable, search cache disabled: %v", cfg.RedisAddr, err)
		} else {
			searchCache = rc
		}
		cancel()
	}

	eventSvc := service.NewEventService(eventRepo, interestRepo, reservationSvc, publisher, searchCache)

	var mqConsumer *rabbitmq.Consumer
	var resyncDone <-chan struct{}
	if cfg.RabbitURL != "" {
		var err error
		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		resyncDone = consumer.NewResyncConsumer(reservationSvc).Start(msgs)
	}

	limiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
	stopCleanup := make(chan struct{})
	go limiter.Cleanup(stopCleanup)

	e := router.New(router.Deps{
		Events:       eventSvc,
		Reservations: reservationSvc,
		Auth:         middleware.NewAuthenticator(cfg.JWTSecret),
		Limiter:      limiter,
	})

	go func() {
		log.Printf("Event Finder starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	close(stopCleanup)

	if mqConsumer != nil {
		mqConsumer.Close()
		select {
		case <-resyncDone:
		case <-ctx.Done():
		}
	}
}

func openDB(cfg *config.Config) *gorm.DB {
	if cfg.DBDriver == "sqlite" {
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite: %v", err)
		}
		return db
	}
	return database.NewPostgresDB(cfg.DSN())
}
