package notify

import (
	"context"
	"log/slog"
)

// LogSender writes events to the application log. Used when no broker
// or webhook is configured.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (l *LogSender) Name() string { return "log" }

func (l *LogSender) Send(ctx context.Context, ev Event) error {
	l.log.InfoContext(ctx, "notification",
		"event", ev.Event,
		"appointment_id", ev.AppointmentID,
		"barbershop", ev.BarbershopName,
		"datetimeISO8601", ev.DateTime,
		"services", ev.ServiceNames,
	)
	return nil
}
