package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/throttle"
	"jobboard/pkg/rabbitmq"
	"jobboard/pkg/storage"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	flag.Parse()

	// --- Configuration ---
	settings, err := config.New(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg, err := config.FromViper(settings)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	opts := app.Options{
		Config:   cfg,
		Settings: settings,
		DB:       db,
	}

	// --- Login attempt counter ---
	if cfg.Redis.Addr != "" {
		counter, err := throttle.NewRedisCounter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.Prefix)
		if err != nil {
			log.Fatalf("Failed to initialize Redis counter: %v", err)
		}
		defer counter.Close()
		opts.Counter = counter
		log.Printf("Login attempts are counted in Redis at %s", cfg.Redis.Addr)
	}

	// --- RabbitMQ ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		opts.Events = mqClient
	}

	// --- CV storage ---
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinioStore(context.Background(), storage.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize CV storage: %v", err)
		}
		opts.CVStore = store
	}

	server := app.New(opts)

	// --- Event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for domain events...")
		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	log.Println("Server gracefully stopped")
}
