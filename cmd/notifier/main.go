package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/notification"
)

func main() {
	_ = godotenv.Load()

	log := logrus.WithField("component", "notifier")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	emailService := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)
	handler := notification.NewHandler(emailService, cfg.SupportEmail)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, "notifier")
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
	}()

	log.Info("notifier started, consuming events")
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && err != context.Canceled {
		log.Fatalf("consumer error: %v", err)
	}
}
