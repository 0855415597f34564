// Package events publishes availability-search audit events. Publishing is
// fire-and-forget: a broker outage must never fail a search.
package events

import (
	"context"
	"time"

	"carve/pkg/kafka"
	kafka_config "carve/pkg/kafka/config"
	"carve/pkg/logger"
	"carve/pkg/model"
)

const eventTypeSearchPerformed = "availability.search.performed"

// SearchPerformedEvent is the payload published after each availability
// search.
type SearchPerformedEvent struct {
	LocationID    string    `json:"location_id"`
	ProgramID     string    `json:"program_id"`
	SessionTypeID string    `json:"session_type_id"`
	TrainerID     string    `json:"trainer_id"`
	DateRange     string    `json:"date_range"`
	SliceCount    int       `json:"slice_count"`
	SearchedAt    time.Time `json:"searched_at"`
}

type Publisher interface {
	SearchPerformed(ctx context.Context, criteria *model.SliceCriteria, sliceCount int)
	Close()
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no
// brokers or topic are configured.
func NewPublisher(cfg *kafka_config.Config, topic string, log *logger.Logger) Publisher {
	if !cfg.Enabled() || topic == "" {
		log.Info("Search event publishing disabled")
		return noopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg, topic)
	if err != nil {
		log.Warn("Failed to create search event producer, publishing disabled", "error", err)
		return noopPublisher{}
	}

	log.Info("Search event publishing enabled", "topic", topic)
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) SearchPerformed(ctx context.Context, criteria *model.SliceCriteria, sliceCount int) {
	event := SearchPerformedEvent{
		LocationID:    criteria.LocationID,
		ProgramID:     criteria.ProgramID,
		SessionTypeID: criteria.SessionTypeID,
		TrainerID:     criteria.TrainerID,
		DateRange:     criteria.DateRange,
		SliceCount:    sliceCount,
		SearchedAt:    time.Now(),
	}

	msg, err := kafka.NewMessage().
		WithKey(criteria.LocationID).
		WithValue(event).
		WithEventType(eventTypeSearchPerformed).
		WithSource("availability").
		Build()
	if err != nil {
		p.log.Warn("Failed to build search event", "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish search event", "error", err)
	}
}

func (p *kafkaPublisher) Close() {
	if err := p.producer.Close(); err != nil {
		p.log.Warn("Failed to close search event producer", "error", err)
	}
}

type noopPublisher struct{}

func (noopPublisher) SearchPerformed(context.Context, *model.SliceCriteria, int) {}
func (noopPublisher) Close()                                                     {}
