package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paymentapi/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes status events to a topic, keyed by record so one record's events stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev domain.StatusEvent) error {
	msg, err := statusMessage(ev)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish status event",
			zap.String("topic", p.writer.Topic), zap.String("key", string(msg.Key)), zap.Error(err))
		return fmt.Errorf("publish status event: %w", err)
	}
	p.logger.Debug("published status event", zap.String("key", string(msg.Key)))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

func statusMessage(ev domain.StatusEvent) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal status event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", ev.Record, ev.TransactionID)),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "status", Value: []byte(ev.Status)},
		},
	}, nil
}
