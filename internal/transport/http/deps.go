package http

import (
	"context"
	"net/http"

	"github.com/prerna-auth/internal/domain"
	jwtinfra "github.com/prerna-auth/internal/infrastructure/jwt"
	appmiddleware "github.com/prerna-auth/internal/transport/http/middleware"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// OtpRepository is the minimal interface the router requires from an OTP store.
type OtpRepository interface {
	Create(ctx context.Context, o *domain.OtpRecord) error
	// Latest returns the newest record for phone, or domain.ErrNotFound.
	Latest(ctx context.Context, phone string) (*domain.OtpRecord, error)
	DeleteAll(ctx context.Context, phone string) (int, error)
}

// SMSSender delivers OTP text messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TokenProvider signs and verifies bearer tokens.
type TokenProvider interface {
	Sign(userID string) (string, error)
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	OtpRepo     OtpRepository
	SMSSender   SMSSender
	JWTProvider TokenProvider
	// Metrics and MetricsHandler are optional; nil disables instrumentation and /metrics.
	Metrics        *appmiddleware.HTTPMetrics
	MetricsHandler http.Handler
}
