package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prerna-auth/internal/config"
)

// Fast2SMS posts messages to the Fast2SMS bulk API, authenticating with the
// account API key in the "authorization" header.
type Fast2SMS struct {
	client *http.Client
	url    string
	apiKey string
	route  string
}

type fast2smsRequest struct {
	Route    string   `json:"route"`
	Message  string   `json:"message"`
	Language string   `json:"language"`
	Numbers  []string `json:"numbers"`
}

type fast2smsResponse struct {
	Return  bool            `json:"return"`
	Message json.RawMessage `json:"message"`
}

func NewFast2SMS(cfg *config.Config) *Fast2SMS {
	return &Fast2SMS{
		client: &http.Client{Timeout: cfg.SMSTimeout},
		url:    cfg.Fast2SMSURL,
		apiKey: cfg.Fast2SMSAPIKey,
		route:  cfg.Fast2SMSRoute,
	}
}

func (f *Fast2SMS) SendSMS(ctx context.Context, to, message string) error {
	body, err := json.Marshal(fast2smsRequest{
		Route:    f.route,
		Message:  message,
		Language: "english",
		Numbers:  []string{to},
	})
	if err != nil {
		return fmt.Errorf("marshal fast2sms request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build fast2sms request: %w", err)
	}
	req.Header.Set("authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fast2sms request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fast2sms returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	var out fast2smsResponse
	if err := json.Unmarshal(raw, &out); err == nil && !out.Return {
		return fmt.Errorf("fast2sms rejected message: %s", bytes.TrimSpace(out.Message))
	}
	return nil
}
