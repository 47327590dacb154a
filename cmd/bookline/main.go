package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bookline/bookline/internal/activity"
	"github.com/bookline/bookline/internal/handlers"
	"github.com/bookline/bookline/internal/outbox"
	"github.com/bookline/bookline/internal/storage"
	"github.com/bookline/bookline/internal/worker"
	"github.com/bookline/bookline/libs/config"
	"github.com/bookline/bookline/libs/db"
	"github.com/bookline/bookline/libs/httpx"
	"github.com/bookline/bookline/libs/kafkax"
	otelx "github.com/bookline/bookline/libs/otel"
	"github.com/bookline/bookline/libs/runtime"
)

func main() {
	service := config.String("SERVICE_NAME", "bookline")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL, int32(config.Int("DB_MAX_CONNS", 10)))
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	repo := storage.NewRepository(pool)
	activityRepo := activity.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	kafkaBrokers := config.String("KAFKA_BROKERS", "")
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   kafkaBrokers,
		Topic:     config.String("KAFKA_TOPIC", "bookline.events"),
		PollEvery: config.Seconds("OUTBOX_POLL_SECONDS", 2*time.Second),
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go outboxPublisher.Run(ctx)

	drainer := worker.NewDrainer(repo, activityRepo, outboxRepo, logger, worker.Config{
		Every:       config.Seconds("QUEUE_DRAIN_INTERVAL_SECONDS", 30*time.Second),
		OwnerBatch:  config.Int("QUEUE_DRAIN_OWNER_BATCH", 100),
		MaxPerOwner: config.Int("QUEUE_DRAIN_MAX_PER_OWNER", 20),
	})
	go drainer.Run(ctx)

	h := handlers.New(repo, activityRepo, outboxRepo, logger)

	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if strings.TrimSpace(kafkaBrokers) != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(kafkaBrokers)})
	}
	mux := runtime.NewBaseMux(readyChecks...)

	mux.HandleFunc("/api/v1/appointments", h.List)
	mux.HandleFunc("/api/v1/appointments/create", h.Create)
	mux.HandleFunc("/api/v1/appointments/update", h.Update)
	mux.HandleFunc("/api/v1/appointments/cancel", h.Cancel)
	mux.HandleFunc("/api/v1/appointments/delete", h.Delete)
	mux.HandleFunc("/api/v1/queue", h.ListQueue)
	mux.HandleFunc("/api/v1/queue/assign", h.AssignFromQueue)
	mux.HandleFunc("/api/v1/staff", h.ListStaff)
	mux.HandleFunc("/api/v1/staff/create", h.CreateStaff)
	mux.HandleFunc("/api/v1/staff/update", h.UpdateStaff)
	mux.HandleFunc("/api/v1/staff/availability", h.SetAvailability)
	mux.HandleFunc("/api/v1/staff/delete", h.DeleteStaff)
	mux.HandleFunc("/api/v1/services", h.ListServices)
	mux.HandleFunc("/api/v1/services/create", h.CreateService)
	mux.HandleFunc("/api/v1/services/update", h.UpdateService)
	mux.HandleFunc("/api/v1/services/delete", h.DeleteService)
	mux.HandleFunc("/api/v1/services/types", h.Types)
	mux.HandleFunc("/api/v1/dashboard", h.Dashboard)
	mux.HandleFunc("/api/v1/activity", h.Activity)

	rateLimit := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	var limiter httpx.Middleware
	if redisAddr := config.String("REDIS_ADDR", ""); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer func() { _ = rdb.Close() }()
		limiter = httpx.NewRedisRateLimiter(rdb, rateLimit, time.Minute).Middleware(logger)
	} else {
		limiter = httpx.NewRateLimiter(rateLimit, time.Minute).Middleware()
	}

	var allowedOrigins []string
	for _, origin := range strings.Split(config.String("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1<<20),
		httpx.WithCORS(allowedOrigins),
		limiter,
	)
	httpHandler = otelhttp.NewHandler(httpHandler, service)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
