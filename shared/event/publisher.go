package event

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nestling/config"
	"nestling/infras/kafka"
)

// Publisher hands a batch of drained events to the downstream sink. One call
// per application-service operation; the caller owns the ordering.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type payload struct {
	Type string `json:"type"`
	Data Event  `json:"data"`
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
}

func NewKafkaPublisher(cfg *config.Config, client kafka.Client) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		messages = append(messages, kafka.Message{
			Key:   evt.Key(),
			Value: payload{Type: evt.Kind(), Data: evt},
		})
	}

	if err := p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(events), err)
	}

	log.Info().Int("count", len(events)).Str("topic", p.topic).Msg("published domain events")

	return nil
}

// NewPublisher picks the Kafka-backed publisher when Kafka is enabled, and the
// in-process log otherwise.
func NewPublisher(cfg *config.Config, client kafka.Client) Publisher {
	if cfg.Kafka.Enable {
		return NewKafkaPublisher(cfg, client)
	}

	log.Warn().Msg("Kafka disabled, publishing domain events to in-memory log")

	return NewLog()
}
