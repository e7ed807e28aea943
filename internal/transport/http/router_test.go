package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prerna-auth/internal/config"
	"github.com/prerna-auth/internal/domain"
	jwtinfra "github.com/prerna-auth/internal/infrastructure/jwt"
	appmiddleware "github.com/prerna-auth/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
	otps  map[string][]*domain.OtpRecord
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*domain.User{}, otps: map[string][]*domain.OtpRecord{}}
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.PhoneNumber == u.PhoneNumber {
			return domain.ErrConflict
		}
	}
	m.users[u.UserID] = u
	return nil
}

func (m memUsers) Get(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m memUsers) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memOtps struct{ *memStore }

func (m memOtps) Create(_ context.Context, o *domain.OtpRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[o.PhoneNumber] = append(m.otps[o.PhoneNumber], o)
	return nil
}

func (m memOtps) Latest(_ context.Context, phone string) (*domain.OtpRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.otps[phone]
	if len(rs) == 0 {
		return nil, domain.ErrNotFound
	}
	return rs[len(rs)-1], nil
}

func (m memOtps) DeleteAll(_ context.Context, phone string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.otps[phone])
	delete(m.otps, phone)
	return n, nil
}

type captureSMS struct {
	mu   sync.Mutex
	last string
}

func (c *captureSMS) SendSMS(_ context.Context, _, msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = strings.TrimPrefix(msg, "Your OTP is ")
	return nil
}

func newTestRouter(t *testing.T, burst int) (http.Handler, *captureSMS) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:      "s3cret",
		JWTExpiry:      time.Hour,
		BcryptCost:     4,
		OTPValidity:    5 * time.Minute,
		RateLimitRPS:   1,
		RateLimitBurst: burst,
		AllowedOrigins: []string{"*"},
	}
	tokens, err := jwtinfra.NewProvider(cfg)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	metrics, err := appmiddleware.NewHTTPMetrics(appmiddleware.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)

	store := newMemStore()
	sms := &captureSMS{}
	h, rl := NewRouter(cfg, &Deps{
		UserRepo:       memUsers{store},
		OtpRepo:        memOtps{store},
		SMSSender:      sms,
		JWTProvider:    tokens,
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	t.Cleanup(rl.Stop)
	return h, sms
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr.Code, out
}

func TestRouter_SignupLoginMe(t *testing.T) {
	h, _ := newTestRouter(t, 100)

	code, body := do(t, h, http.MethodPost, "/v1/auth/signup", `{"fullname":"Asha","phonenumber":"9876543210","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, code)
	signupID := body["user"].(map[string]any)["_id"]

	code, body = do(t, h, http.MethodPost, "/v1/auth/login", `{"phonenumber":"9876543210","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, code)
	token := body["token"].(string)

	code, body = do(t, h, http.MethodGet, "/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, signupID, body["user"].(map[string]any)["_id"])

	code, body = do(t, h, http.MethodPost, "/v1/auth/signup", `{"fullname":"Other","phonenumber":"9876543210","password":"secret1"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Phone number already registered", body["message"])
}

func TestRouter_OTPLogin(t *testing.T) {
	h, sms := newTestRouter(t, 100)

	code, _ := do(t, h, http.MethodPost, "/v1/auth/send-otp", `{"phonenumber":"9000000001"}`, "")
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, h, http.MethodPost, "/v1/auth/verify-otp", `{"phonenumber":"9000000001","otp":"`+sms.last+`"}`, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User", body["user"].(map[string]any)["fullname"])

	code, body = do(t, h, http.MethodPost, "/v1/auth/verify-otp", `{"phonenumber":"9000000001","otp":"`+sms.last+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "OTP not found or expired", body["message"])
}

func TestRouter_MeRequiresToken(t *testing.T) {
	h, _ := newTestRouter(t, 100)
	code, _ := do(t, h, http.MethodGet, "/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = do(t, h, http.MethodGet, "/v1/auth/me", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_RateLimitsAuthRoutes(t *testing.T) {
	h, _ := newTestRouter(t, 2)
	for i := 0; i < 2; i++ {
		code, _ := do(t, h, http.MethodPost, "/v1/auth/send-otp", `{"phonenumber":"123"}`, "")
		assert.Equal(t, http.StatusBadRequest, code)
	}
	code, _ := do(t, h, http.MethodPost, "/v1/auth/send-otp", `{"phonenumber":"123"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, code)

	code, _ = do(t, h, http.MethodGet, "/v1/health-check/ping", "", "")
	assert.Equal(t, http.StatusOK, code, "health check is not limited")
}

func TestRouter_MetricsExposed(t *testing.T) {
	h, _ := newTestRouter(t, 100)
	do(t, h, http.MethodGet, "/v1/health-check/ping", "", "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `auth_http_requests_total{method="GET",route="/v1/health-check/{action}",status="200"} 1`)
}
