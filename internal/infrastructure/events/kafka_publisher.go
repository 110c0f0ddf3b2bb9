package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"rivalioo/internal/domain/entity"
	"rivalioo/pkg/logger"
)

type EventType string

const (
	EventTypeRedemptionCreated EventType = "redemption.order_created"
)

type RedemptionEvent struct {
	ID        string                  `json:"id"`
	Type      EventType               `json:"type"`
	OrderID   string                  `json:"order_id"`
	UserID    string                  `json:"user_id"`
	Order     *entity.RedemptionOrder `json:"order"`
	Timestamp time.Time               `json:"timestamp"`
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes redemption order events to Kafka.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return NewKafkaPublisherWithWriter(writer, topic)
}

func NewKafkaPublisherWithWriter(writer MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
	}
}

func (p *KafkaPublisher) PublishRedemptionCreated(ctx context.Context, order *entity.RedemptionOrder) error {
	event := &RedemptionEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeRedemptionCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Order:     order,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("Failed to publish %s for order %s: %v", event.Type, event.OrderID, err)
		return err
	}

	logger.Debug("Published %s for order %s", event.Type, event.OrderID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRedemptionCreated(context.Context, *entity.RedemptionOrder) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
