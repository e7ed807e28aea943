package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prerna-auth/internal/application/auth"
	"github.com/prerna-auth/internal/application/user"
	"github.com/prerna-auth/internal/config"
	"github.com/prerna-auth/internal/transport/http/handler"
	appmiddleware "github.com/prerna-auth/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. The returned limiter
// runs a background sweep and should be stopped on shutdown.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, *appmiddleware.RateLimiter) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(deps.Metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		OtpRepo:     deps.OtpRepo,
		SMSSender:   deps.SMSSender,
		JWTProvider: deps.JWTProvider,
		BcryptCost:  cfg.BcryptCost,
		OTPValidity: cfg.OTPValidity,
	})
	userSvc := user.NewService(deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(sensitiveRL.Limit)
				r.Post("/login", authH.Login)
				r.Post("/signup", authH.Signup)
				r.Post("/send-otp", authH.SendOTP)
				r.Post("/verify-otp", authH.VerifyOTP)
			})

			// ── Authenticated routes ─────────────────────────────────────────
			r.With(appmiddleware.Auth(deps.JWTProvider)).Get("/me", userH.Me)
		})
	})

	return r, sensitiveRL
}
