package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented counts dispatch attempts per provider and outcome.
type Instrumented struct {
	next     Sender
	provider string
	sent     *prometheus.CounterVec
}

// NewInstrumented wraps next and registers the dispatch counter on reg.
func NewInstrumented(next Sender, provider string, reg prometheus.Registerer) (*Instrumented, error) {
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth",
		Subsystem: "sms",
		Name:      "dispatch_total",
		Help:      "OTP text messages handed to the gateway, partitioned by provider and result.",
	}, []string{"provider", "result"})
	if err := reg.Register(sent); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("register sms counter: %w", err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("existing sms counter has unexpected type %T", already.ExistingCollector)
		}
		sent = existing
	}
	return &Instrumented{next: next, provider: provider, sent: sent}, nil
}

func (s *Instrumented) SendSMS(ctx context.Context, to, message string) error {
	err := s.next.SendSMS(ctx, to, message)
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.sent.WithLabelValues(s.provider, result).Inc()
	return err
}
