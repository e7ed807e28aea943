package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prerna-auth/internal/config"
	"github.com/prerna-auth/internal/infrastructure/dynamo"
	jwtinfra "github.com/prerna-auth/internal/infrastructure/jwt"
	"github.com/prerna-auth/internal/infrastructure/mongostore"
	"github.com/prerna-auth/internal/infrastructure/sms"
	transporthttp "github.com/prerna-auth/internal/transport/http"
	appmiddleware "github.com/prerna-auth/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	users, otps, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sender, err := sms.NewSender(ctx, cfg)
	if err != nil {
		log.Fatalf("sms sender: %v", err)
	}
	smsSender, err := sms.NewInstrumented(sender, cfg.SMSProvider, registry)
	if err != nil {
		log.Fatalf("sms metrics: %v", err)
	}

	httpMetrics, err := appmiddleware.NewHTTPMetrics(appmiddleware.HTTPMetricsOptions{Registerer: registry})
	if err != nil {
		log.Fatalf("http metrics: %v", err)
	}

	router, limiter := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		UserRepo:       users,
		OtpRepo:        otps,
		SMSSender:      smsSender,
		JWTProvider:    jwtProvider,
		Metrics:        httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, store=%s, sms=%s)", cfg.AppPort, cfg.AppEnv, cfg.StoreBackend, cfg.SMSProvider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	limiter.Stop()
	if err := closeStore(shutdownCtx); err != nil {
		slog.Warn("store close failed", "err", err)
	}
	log.Println("Server stopped")
}

// openStores connects the configured backend and makes sure its tables or
// indexes exist.
func openStores(ctx context.Context, cfg *config.Config) (transporthttp.UserRepository, transporthttp.OtpRepository, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, nil, err
		}
		return mongostore.NewUserRepo(db.Collection(mongostore.CollectionUsers)),
			mongostore.NewOtpRepo(db.Collection(mongostore.CollectionOtps)),
			client.Disconnect,
			nil
	default:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		return dynamo.NewUserRepo(client, cfg.DynamoTables.Users),
			dynamo.NewOtpRepo(client, cfg.DynamoTables.Otps),
			func(context.Context) error { return nil },
			nil
	}
}
