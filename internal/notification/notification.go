package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/metrics"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// Notifier delivers a verification notice. Implemented by email.Sender and KafkaNotifier.
type Notifier interface {
	NotifyVerificationCode(ctx context.Context, notice domain.VerificationNotice) error
}

// KafkaNotifier hands notices to the worker through the notifications topic.
type KafkaNotifier struct {
	producer Publisher
	topic    string
}

func NewKafkaNotifier(producer Publisher, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (n *KafkaNotifier) NotifyVerificationCode(ctx context.Context, notice domain.VerificationNotice) error {
	key := ""
	if len(notice.OrderIDs) > 0 {
		key = strconv.FormatInt(notice.OrderIDs[0], 10)
	}
	if err := n.producer.Publish(ctx, n.topic, key, notice); err != nil {
		return fmt.Errorf("publish verification notice: %w", err)
	}
	return nil
}

const (
	defaultDeliveryAttempts = 3
	defaultRetryDelay       = 2 * time.Second
)

type handlerConfig struct {
	attempts int
	delay    time.Duration
}

type HandlerOption func(*handlerConfig)

// WithRetry sets how many times a notice is delivered before it is dropped and the
// pause between tries.
func WithRetry(attempts int, delay time.Duration) HandlerOption {
	return func(c *handlerConfig) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.delay = delay
	}
}

// Handler decodes notices from the notifications topic and delivers them. Malformed
// messages are skipped. A notice that still fails after the configured attempts is
// logged and skipped so it cannot block the partition. Only ctx cancellation is
// returned, which leaves the message uncommitted for the next run.
func Handler(deliver Notifier, log *zap.Logger, opts ...HandlerOption) func(context.Context, kafka.Message) error {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := handlerConfig{attempts: defaultDeliveryAttempts, delay: defaultRetryDelay}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, msg kafka.Message) error {
		fields := []zap.Field{zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset)}

		var notice domain.VerificationNotice
		if err := json.Unmarshal(msg.Value, &notice); err != nil {
			log.Error("skip malformed notification", append(fields, zap.Error(err))...)
			return nil
		}

		var err error
		for attempt := 1; attempt <= cfg.attempts; attempt++ {
			if err = deliver.NotifyVerificationCode(ctx, notice); err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("notification delivery failed", append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
			if attempt < cfg.attempts && cfg.delay > 0 {
				select {
				case <-time.After(cfg.delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		metrics.NotificationFailuresTotal.Inc()
		log.Error("drop undeliverable notification", append(fields, zap.String("email", notice.Email), zap.Error(err))...)
		return nil
	}
}

var _ Notifier = (*KafkaNotifier)(nil)
