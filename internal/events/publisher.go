package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TopicQuestionDeleted = "questions.deleted"
	TopicAttemptLogged   = "attempts.logged"
)

// QuestionDeleted is emitted once a question and its attempts are gone
type QuestionDeleted struct {
	QuestionID      string    `json:"question_id"`
	AttemptsRemoved int64     `json:"attempts_removed"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// AttemptLogged is emitted for every new practice session
type AttemptLogged struct {
	AttemptID  string    `json:"attempt_id"`
	QuestionID string    `json:"question_id"`
	Result     string    `json:"result"`
	TimeSpent  int       `json:"time_spent"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits domain events after successful writes
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Close() error
}

// Config selects the transport
type Config struct {
	Enabled      bool
	KafkaBrokers []string
}

// WatermillPublisher publishes JSON payloads through any watermill transport
type WatermillPublisher struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewPublisher builds a Kafka publisher when brokers are configured and an
// in-process channel otherwise. Disabled events yield a no-op publisher.
func NewPublisher(cfg Config, logger *slog.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}

	wmLogger := watermill.NewSlogLogger(logger)

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   cfg.KafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		logger.Info("Kafka event publisher created", "brokers", cfg.KafkaBrokers)
		return &WatermillPublisher{publisher: pub, logger: logger}, nil
	}

	logger.Info("In-process event publisher created")
	return NewInProcessPublisher(logger), nil
}

// NewInProcessPublisher publishes onto a gochannel that can also be subscribed to
func NewInProcessPublisher(logger *slog.Logger) *WatermillPublisher {
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &WatermillPublisher{publisher: ch, subscriber: ch, logger: logger}
}

// Publish marshals payload and sends it on topic
func (p *WatermillPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", topic)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", topic, err)
	}
	return nil
}

// Subscribe is only available on the in-process transport
func (p *WatermillPublisher) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if p.subscriber == nil {
		return nil, errors.New("subscribe not supported by this transport")
	}
	return p.subscriber.Subscribe(ctx, topic)
}

// Close releases the transport
func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

// LogEvents writes every in-process event on topics to the logger until ctx is done
func LogEvents(ctx context.Context, p *WatermillPublisher, logger *slog.Logger, topics ...string) error {
	for _, topic := range topics {
		messages, err := p.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				logger.Info("Domain event", "topic", topic, "message_id", msg.UUID, "payload", string(msg.Payload))
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}
