package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prerna-auth/internal/config"
)

// Sender delivers a text message to a 10-digit phone number.
type Sender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// NewSender builds the gateway named by cfg.SMSProvider.
func NewSender(ctx context.Context, cfg *config.Config) (Sender, error) {
	switch cfg.SMSProvider {
	case config.SMSProviderFast2SMS:
		return NewFast2SMS(cfg), nil
	case config.SMSProviderSNS:
		return NewSNSSender(ctx, cfg)
	case config.SMSProviderLog:
		return NewLogSender(slog.Default()), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.SMSProvider)
	}
}
