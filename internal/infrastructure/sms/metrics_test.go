package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct{ err error }

func (s stubSender) SendSMS(context.Context, string, string) error { return s.err }

func TestInstrumented_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	ok, err := NewInstrumented(stubSender{}, "log", reg)
	require.NoError(t, err)
	failing, err := NewInstrumented(stubSender{err: errors.New("down")}, "log", reg)
	require.NoError(t, err)

	require.NoError(t, ok.SendSMS(context.Background(), "9876543210", "hi"))
	require.NoError(t, ok.SendSMS(context.Background(), "9876543210", "hi"))
	assert.Error(t, failing.SendSMS(context.Background(), "9876543210", "hi"))

	assert.Equal(t, 2.0, testutil.ToFloat64(ok.sent.WithLabelValues("log", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ok.sent.WithLabelValues("log", "error")))
}
