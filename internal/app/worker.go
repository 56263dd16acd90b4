package app

import (
	"context"

	"github.com/psyoonchild719/online-library-dashboard/internal/messaging/kafka"
	"github.com/psyoonchild719/online-library-dashboard/internal/messaging/kafka/producer"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/connection"
)

// RunWorker is the outbox relay: it polls outbox_events and publishes
// pending rows to Kafka until ctx is cancelled.
func (a *App) RunWorker(ctx context.Context) error {
	writer, err := connection.ConnectKafkaWithRetry(a.Cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(a.SQLDB)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, a.Logger, a.Cfg.OutboxPollInterval)
	return nil
}
