package sms

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of a gateway. Development only.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (l *LogSender) SendSMS(ctx context.Context, to, message string) error {
	l.logger.InfoContext(ctx, "sms not sent (log provider)", "to", to, "message", message)
	return nil
}
