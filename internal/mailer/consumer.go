package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ProvisionedConsumer turns provisioned-user events into welcome emails.
// Messages are committed even when the send fails: the payload carries a
// one-time credential, so redelivery loops that spam a user are worse than
// a single lost email, which an admin can fix by re-issuing the reset.
type ProvisionedConsumer struct {
	reader *kafka.Reader
	sender Sender
	logger *zap.Logger
}

func NewProvisionedConsumer(
	broker string,
	groupID string,
	sender Sender,
	logger ...*zap.Logger,
) *ProvisionedConsumer {
	l := zap.L().Named("mailer.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer.consumer")
	}

	return &ProvisionedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.UserProvisionedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		sender: sender,
		logger: l,
	}
}

func (c *ProvisionedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume user_provisioned failed", zap.Error(err))
				continue
			}

			var event events.UserProvisionedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode user_provisioned event failed", zap.Error(err))
				c.commit(ctx, msg)
				continue
			}

			subject, body, err := RenderWelcome(event)
			if err != nil {
				c.logger.Error("render welcome email failed",
					zap.String("user_id", event.UserID),
					zap.Error(err),
				)
				c.commit(ctx, msg)
				continue
			}

			if err := c.sender.Send(event.Email, subject, body); err != nil {
				c.logger.Error("send welcome email failed",
					zap.String("user_id", event.UserID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				c.commit(ctx, msg)
				continue
			}

			c.commit(ctx, msg)

			c.logger.Info("welcome email sent",
				zap.String("user_id", event.UserID),
				zap.String("company_id", event.CompanyID),
			)
		}
	}()
}

func (c *ProvisionedConsumer) Close() error {
	return c.reader.Close()
}

func (c *ProvisionedConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("commit user_provisioned event failed", zap.Error(err))
	}
}
