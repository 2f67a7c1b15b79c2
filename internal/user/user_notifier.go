package user

import (
	"context"
	"encoding/json"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_notifier.go -destination=mock/user_notifier_mock.go -package=mock

// Notifier hands a provisioned-user event to the welcome-email pipeline.
// Callers fire it after commit and only log failures: a lost email never
// rolls back an account.
type Notifier interface {
	NotifyProvisioned(ctx context.Context, event events.UserProvisionedEvent) error
}

type kafkaNotifier struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewKafkaNotifier(writer *kafkago.Writer, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("user.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.notifier")
	}
	return &kafkaNotifier{writer: writer, logger: l}
}

func (n *kafkaNotifier) NotifyProvisioned(ctx context.Context, event events.UserProvisionedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Topic: events.UserProvisionedTopic,
		Key:   []byte(event.UserID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte("user")},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	n.logger.Debug("provisioned event published",
		zap.String("user_id", event.UserID),
		zap.String("topic", events.UserProvisionedTopic),
	)
	return nil
}

// NoopNotifier drops events. Used when the broker is not configured, so
// provisioning still works in a bare local setup.
type NoopNotifier struct{}

func (NoopNotifier) NotifyProvisioned(ctx context.Context, event events.UserProvisionedEvent) error {
	return nil
}
