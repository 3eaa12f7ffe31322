// Package kafka publishes committed timeline entries to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"fulfillment/internal/core/domain/model/timeline"
)

const contentTypeJSON = "application/json"

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TimelineEntryMessage is the JSON value of one published entry.
type TimelineEntryMessage struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	OrderItemID *string   `json:"orderItemId,omitempty"`
	Action      string    `json:"action"`
	Actor       string    `json:"actor"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TimelinePublisher writes entries keyed by order id, so all entries of an
// order land on one partition in commit order.
type TimelinePublisher struct {
	writer messageWriter
	topic  string
}

// NewTimelinePublisher creates a synchronous writer for topic on brokers.
func NewTimelinePublisher(brokers []string, topic string) *TimelinePublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return newTimelinePublisher(writer, topic)
}

func newTimelinePublisher(writer messageWriter, topic string) *TimelinePublisher {
	return &TimelinePublisher{writer: writer, topic: topic}
}

// Publish writes the entries as one batch.
func (p *TimelinePublisher) Publish(ctx context.Context, entries []*timeline.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish %d timeline entries to topic %s: %w", len(messages), p.topic, err)
	}
	return nil
}

func (p *TimelinePublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e *timeline.Entry) (kafka.Message, error) {
	body := TimelineEntryMessage{
		ID:        e.ID().String(),
		OrderID:   e.OrderID().String(),
		Action:    string(e.Action()),
		Actor:     e.Actor(),
		Details:   e.Details(),
		CreatedAt: e.CreatedAt(),
	}
	if itemID := e.OrderItemID(); itemID != nil {
		s := itemID.String()
		body.OrderItemID = &s
	}

	data, err := json.Marshal(body)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal timeline entry %s: %w", body.ID, err)
	}

	return kafka.Message{
		Key:   []byte(body.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(body.Action)},
			{Key: "event-id", Value: []byte(body.ID)},
			{Key: "content-type", Value: []byte(contentTypeJSON)},
		},
		Time: body.CreatedAt,
	}, nil
}
