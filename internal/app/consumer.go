package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/mailer"

	"go.uber.org/zap"
)

// RunConsumer turns provisioned-user events into welcome emails.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	sender := mailer.NewSMTPSender()

	consumer := mailer.NewProvisionedConsumer(
		kafkaBroker,
		"identity-welcome-mailer",
		sender,
	)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
