package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/msamy/portfolio-api/internal/config"
	"github.com/msamy/portfolio-api/internal/domain/portfolio"
)

const (
	TopicPortfolioEvents = "portfolio.events"

	EventTypeSectionSaved = "portfolio.section_saved"
)

// PortfolioEventPayload is the wire format on the portfolio.events topic.
type PortfolioEventPayload struct {
	EventType string              `json:"event_type"`
	Sections  []portfolio.Section `json:"sections"`
	SavedAt   time.Time           `json:"saved_at"`
}

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'portfolio.events'
	portfolioWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		PortfolioEventsWriter: portfolioWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishSectionSaved(ctx context.Context, sections ...portfolio.Section) error {
	payload := PortfolioEventPayload{
		EventType: EventTypeSectionSaved,
		Sections:  sections,
		SavedAt:   time.Now().UTC(),
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal portfolio event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(EventTypeSectionSaved),
		Value: value,
	}
	if err := c.PortfolioEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write portfolio event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
