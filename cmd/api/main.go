package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/ec-shop-api/internal/api"
	"github.com/example/ec-shop-api/internal/auth"
	"github.com/example/ec-shop-api/internal/config"
	"github.com/example/ec-shop-api/internal/kafka"
	"github.com/example/ec-shop-api/internal/service"
	"github.com/example/ec-shop-api/internal/store"
	"github.com/example/ec-shop-api/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Configuration error: %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] EC Shop API")
	log.Println("[API] ========================================")
	log.Printf("[API] Mongo: %s/%s", cfg.Mongo.URI, cfg.Mongo.DBName)
	if cfg.EventsEnabled() {
		log.Printf("[API] Kafka: %v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		log.Println("[API] Kafka: disabled (no brokers configured)")
	}

	client, err := store.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("[API] Failed to connect to MongoDB: %v", err)
	}
	defer store.Disconnect(client)
	log.Println("[API] Connected to MongoDB")

	db := client.Database(cfg.Mongo.DBName)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootCancel()
	if err := store.EnsureIndexes(bootCtx, db); err != nil {
		log.Fatalf("[API] Failed to create indexes: %v", err)
	}

	products := store.NewMongoProductStore(db)
	users := store.NewMongoUserStore(db)
	orders := store.NewMongoOrderStore(db)

	if err := store.SeedAdmin(bootCtx, users, cfg.Admin); err != nil {
		log.Fatalf("[API] Failed to seed admin account: %v", err)
	}

	var producer *kafka.Producer
	if cfg.EventsEnabled() {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
	}

	uploader, err := upload.NewLocalUploader(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatalf("[API] Failed to init uploads: %v", err)
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	orderSvc := service.NewOrderService(orders, products, producer)
	reviewSvc := service.NewReviewService(products)
	statsSvc := service.NewStatsService(users, products, orders)

	router := api.NewRouter(api.RouterConfig{
		Products:   api.NewProductHandlers(products, users, reviewSvc, orderSvc, uploader),
		Users:      api.NewUserHandlers(users, orderSvc, tokens, cfg.Auth.CookieName),
		Orders:     api.NewOrderHandlers(orders, orderSvc),
		Admin:      api.NewAdminHandlers(users, statsSvc),
		Tokens:     tokens,
		CookieName: cfg.Auth.CookieName,
		WebDir:     cfg.Server.WebDir,
		StaticDir:  cfg.Upload.Dir,
		StaticURL:  cfg.Upload.BaseURL,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("[API] Server started on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
