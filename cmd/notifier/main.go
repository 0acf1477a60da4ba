package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/ec-shop-api/internal/config"
	"github.com/example/ec-shop-api/internal/email"
	"github.com/example/ec-shop-api/internal/kafka"
	"github.com/example/ec-shop-api/internal/notification"
	"github.com/example/ec-shop-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Notifier] Configuration error: %v", err)
	}
	if !cfg.EventsEnabled() {
		log.Fatal("[Notifier] KAFKA_BROKERS must be configured")
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Order Notification Service")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v topic=%s group=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	if cfg.SMTP.Host == "" {
		log.Println("[Notifier] SMTP not configured, emails will be logged only")
	}

	client, err := store.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("[Notifier] Failed to connect to MongoDB: %v", err)
	}
	defer store.Disconnect(client)

	users := store.NewMongoUserStore(client.Database(cfg.Mongo.DBName))
	mailer := email.NewService(cfg.SMTP)
	handler := notification.NewHandler(mailer, users)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[Notifier] Shutting down...")
		cancel()
	}()

	log.Println("[Notifier] Consuming order events...")
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
		log.Fatalf("[Notifier] Consumer error: %v", err)
	}
	log.Println("[Notifier] Stopped")
}
