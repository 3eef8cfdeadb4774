package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
)

// KafkaPublisher publishes briefing events keyed by generation date.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

var _ drepo.Publisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Publish(ctx context.Context, ev models.BriefingEvent) error {
	key := []byte(ev.GeneratedAt.UTC().Format("2006-01-02"))
	return p.producer.Publish(ctx, key, ev)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// EventSink forwards a summary of each briefing to a publisher.
type EventSink struct {
	publisher drepo.Publisher
}

func NewEventSink(publisher drepo.Publisher) *EventSink {
	return &EventSink{publisher: publisher}
}

func (s *EventSink) Name() string { return "kafka" }

func (s *EventSink) Save(ctx context.Context, b *models.Briefing) error {
	return s.publisher.Publish(ctx, b.Event())
}
