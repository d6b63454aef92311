package app

import (
	"context"
	"fmt"
	"go-hrms/internal/events"
	"go-hrms/internal/mail"
	"go-hrms/internal/messaging/kafka/consumer"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return fmt.Errorf("SMTP_PORT must be a number: %w", err)
	}

	mailer, err := mail.NewMailer(mail.SMTPConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          smtpPort,
		Username:      os.Getenv("SMTP_USERNAME"),
		Password:      os.Getenv("SMTP_PASSWORD"),
		From:          os.Getenv("SMTP_FROM"),
		FromName:      os.Getenv("SMTP_FROM_NAME"),
		PortalBaseURL: os.Getenv("PORTAL_BASE_URL"),
	})
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		GroupTopics:    []string{events.LeaveRequestedTopic, events.LeaveDecidedTopic},
		GroupID:        "go-hrms-leave-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveNotifications(ctx, reader, mailer, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
