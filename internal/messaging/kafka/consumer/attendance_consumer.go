package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/psyoonchild719/online-library-dashboard/internal/attendance"
	"github.com/psyoonchild719/online-library-dashboard/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AttendanceConsumer keeps the cached member stats in step with the event
// log: every exit event triggers a recomputation for that member.
type AttendanceConsumer struct {
	reader  *kafkago.Reader
	service attendance.Service
	logger  *zap.Logger
}

func NewAttendanceConsumer(broker, groupID string, service attendance.Service, logger *zap.Logger) *AttendanceConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.AttendanceRecordedTopic,
	})

	return &AttendanceConsumer{
		reader:  reader,
		service: service,
		logger:  logger.Named("kafka.consumer.attendance"),
	}
}

// Run consumes until the context is cancelled. Processing failures are
// logged and the offset advances anyway: a missed refresh only delays the
// cached stats until the member's next exit.
func (c *AttendanceConsumer) Run(ctx context.Context) error {
	c.logger.Info("attendance consumer started", zap.String("topic", events.AttendanceRecordedTopic))

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info("attendance consumer stopped")
				return nil
			}
			return err
		}

		c.handle(ctx, msg)
	}
}

func (c *AttendanceConsumer) handle(ctx context.Context, msg kafkago.Message) {
	var event events.AttendanceRecordedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("decode attendance event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	if event.EventType != events.EventTypeAttendanceExited {
		return
	}

	if err := c.service.RefreshMemberStats(ctx, event.MemberID); err != nil {
		c.logger.Error("refresh member stats failed",
			zap.String("member_id", event.MemberID),
			zap.Error(err),
		)
		return
	}

	c.logger.Info("member stats refreshed",
		zap.String("member_id", event.MemberID),
		zap.String("log_id", event.LogID),
	)
}

func (c *AttendanceConsumer) Close() error {
	return c.reader.Close()
}
