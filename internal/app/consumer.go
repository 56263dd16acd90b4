package app

import (
	"context"

	"github.com/psyoonchild719/online-library-dashboard/internal/attendance"
	"github.com/psyoonchild719/online-library-dashboard/internal/member"
	"github.com/psyoonchild719/online-library-dashboard/internal/messaging/kafka/consumer"
)

// RunConsumer reads attendance events and refreshes the cached member stats
// on every exit event.
func (a *App) RunConsumer(ctx context.Context) error {
	memberRepo := member.NewRepository(a.DB)
	attendanceRepo := attendance.NewRepository(a.DB)

	attendanceService := attendance.NewService(a.SQLDB, attendanceRepo, memberRepo, a.Cfg.Location(), a.Logger)

	c := consumer.NewAttendanceConsumer(a.Cfg.KafkaBroker, a.Cfg.ConsumerGroupID, attendanceService, a.Logger)
	defer c.Close()

	return c.Run(ctx)
}
