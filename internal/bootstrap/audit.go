package bootstrap

import (
	"time"

	"go.uber.org/zap"
)

// AuditEvent records a lifecycle or administrative fact worth keeping
// outside the request logs.
type AuditEvent struct {
	Action   string
	Actor    string
	Resource string
	Detail   string
	At       time.Time
}

type AuditLogger interface {
	Log(event AuditEvent)
}

// ZapAuditLogger writes audit events through the structured logger under a
// dedicated name so they can be filtered or shipped separately.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

func (a *ZapAuditLogger) Log(event AuditEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	a.logger.Info(event.Action,
		zap.String("actor", event.Actor),
		zap.String("resource", event.Resource),
		zap.String("detail", event.Detail),
		zap.Time("at", event.At),
	)
}
