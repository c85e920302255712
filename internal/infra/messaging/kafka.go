package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	maxHandlerAttempts = 3
	handlerRetryBase   = 500 * time.Millisecond
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg config.KafkaConfig, writeTimeout time.Duration) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.NotificationsTopic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           writeTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes payload as JSON. Messages sharing a key land on the same partition.
func (p *Producer) Publish(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal payload")
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to write message to kafka")
	}
	slog.Debug("published to kafka", "topic", p.writer.Topic, "key", key)
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

type Handler func(ctx context.Context, msg kafka.Message) error

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             cfg.NotificationsTopic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume commits each message after its handler returns. A handler that keeps failing is
// logged and skipped so one poisoned message cannot stall the partition.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if herr := handleWithRetry(ctx, handler, msg); herr != nil {
			slog.Error("dropping kafka message after retries",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", herr.Error())
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return errs.Wrap(err, "failed to commit kafka offset")
		}
	}
}

func handleWithRetry(ctx context.Context, handler Handler, msg kafka.Message) error {
	var lastErr error
	for attempt := 0; attempt < maxHandlerAttempts; attempt++ {
		if lastErr = handler(ctx, msg); lastErr == nil {
			return nil
		}
		slog.Warn("kafka handler failed", "attempt", attempt+1, "offset", msg.Offset, "error", lastErr.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * handlerRetryBase):
		}
	}
	return lastErr
}
