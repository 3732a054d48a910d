package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger("barber-booking", cfg.Log.Level)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	checks := []handlers.ReadyCheck{{Name: "database", Check: pingDB(db)}}

	// ======================================================
	// METRICS
	// ======================================================
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer, "barber_booking")
	}

	// ======================================================
	// LOCKS
	// ======================================================
	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.Lock.Driver == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPassword,
			DB:       cfg.Lock.RedisDB,
		})
		defer client.Close()
		locker = lock.NewRedisLocker(client, cfg.Lock.TTL.Duration, logger)
		checks = append(checks, handlers.ReadyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	// ======================================================
	// NOTIFICATIONS + AUDIT
	// ======================================================
	sender, closeSender, err := newSender(cfg.Notify, logger)
	if err != nil {
		return err
	}
	defer closeSender()

	notifier := notify.NewDispatcher(sender, logger, m, notify.DispatcherConfig{
		QueueSize: cfg.Notify.QueueSize,
		Workers:   cfg.Notify.Workers,
		Timeout:   cfg.Notify.Timeout.Duration,
	})
	defer notifier.Close()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger, 100)
	defer auditDispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	booking := ucAppointment.Deps{
		Repo:     infraRepo.NewAppointmentGormRepository(db),
		Locker:   locker,
		Notifier: notifier,
		Audit:    auditDispatcher,
		Metrics:  m,
		Clock:    ucAppointment.SystemClock{},
		Log:      logger,
		Policy: ucAppointment.Policy{
			GridStep:                  cfg.Booking.GridStep.Duration,
			PastGrace:                 cfg.Booking.PastGrace.Duration,
			OverrideEnforcesPastCheck: cfg.Booking.OverrideEnforcesPastCheck,
			PaymentMethod:             cfg.Booking.DefaultPaymentMethod,
		},
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.App{
		DB:          db,
		Config:      cfg,
		Booking:     booking,
		AuditLogger: auditLogger,
		Gatherer:    prometheus.DefaultGatherer,
		Log:         logger,
		ReadyChecks: checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newSender picks the notification transport. The returned close func is
// never nil.
func newSender(cfg config.NotifyConfig, logger *slog.Logger) (notify.Sender, func(), error) {
	closeWith := func(c io.Closer) func() {
		return func() {
			if err := c.Close(); err != nil {
				logger.Warn("close notification sender", "err", err)
			}
		}
	}

	switch cfg.Driver {
	case "", "log":
		return notify.NewLogSender(logger), func() {}, nil
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, nil, errors.New("NOTIFY_WEBHOOK_URL is required for the webhook driver")
		}
		return notify.NewWebhookSender(cfg.WebhookURL, &http.Client{Timeout: cfg.Timeout.Duration}), func() {}, nil
	case "amqp":
		s := notify.NewAMQPSender(cfg.AMQPURL)
		return s, closeWith(s), nil
	case "kafka":
		s := notify.NewKafkaSender(notify.SplitBrokers(cfg.KafkaBrokers), cfg.KafkaTopic)
		return s, closeWith(s), nil
	}
	return nil, nil, fmt.Errorf("unknown notify driver %q", cfg.Driver)
}

func pingDB(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
