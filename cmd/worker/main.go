package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/msamy/portfolio-api/adapters/event"
	"github.com/msamy/portfolio-api/adapters/persistence"
	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/internal/config"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// The worker keeps the public cache honest: every section save invalidates
// the cached document and re-warms it from the store, so the next public
// fetch is a cache hit.
func main() {
	fmt.Println("Starting Portfolio Worker...")

	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.New(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	portfolioCache := persistence.NewRedisPortfolioCache(redisClient, cfg.Redis.CacheTTL, appLogger)

	// Worker Use Case
	loadPortfolioUC := portfolioUC.NewLoadPortfolioUseCase(portfolioRepo, portfolioCache, appLogger)

	// Kafka Consumer
	portfolioConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "portfolio-cache-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer portfolioConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicPortfolioEvents)

	ctx := context.Background()
	for {
		msg, err := portfolioConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.PortfolioEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(portfolioConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for sections: %v", payload.EventType, payload.Sections)

		portfolioCache.Invalidate(ctx)
		if _, err := loadPortfolioUC.Execute(ctx); err != nil {
			log.Printf("ERROR: Failed to re-warm portfolio cache: %v", err)
			continue
		}

		commitMessage(portfolioConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
