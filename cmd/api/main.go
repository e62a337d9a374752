package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/postgres"
	"github.com/example/storefront/internal/infrastructure/redis"
	"github.com/example/storefront/internal/messaging"
	"github.com/example/storefront/internal/payment"
	"github.com/example/storefront/internal/session"
)

func main() {
	_ = godotenv.Load()

	log := logrus.WithField("component", "api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}
	log.Info("connected to PostgreSQL")

	rdb, err := redis.Connect(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer rdb.Close()
	log.Info("connected to Redis")

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Stores
	products := catalog.NewPostgresStore(db)
	carts := cart.NewPostgresStore(db)
	sessions := session.NewManager(session.NewRedisStore(rdb), cfg.SessionCookieName, cfg.SessionTTL, cfg.SessionSecure)
	messages := messaging.NewService(messaging.NewPostgresStore(db), producer)
	payments := payment.NewClient(cfg.StripeSecretKey)

	jwtService := auth.NewJWTService(cfg.JWTSecret, 1*time.Hour)

	handlers := api.NewHandlers(products, carts, sessions, messages, payments)
	adminHandlers := api.NewAdminHandlers(jwtService, cfg.AdminEmail, cfg.AdminPasswordHash, products)
	router := api.NewRouter(api.RouterConfig{
		Handlers:      handlers,
		AdminHandlers: adminHandlers,
		JWTService:    jwtService,
		CORSOrigins:   cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("server started on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown did not complete cleanly")
	}
}
