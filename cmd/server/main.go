package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"seatreservation/config"
	_ "seatreservation/docs"
	"seatreservation/internal/adapters/auth"
	"seatreservation/internal/adapters/email"
	"seatreservation/internal/adapters/fanout"
	deliveryhttp "seatreservation/internal/delivery/http"
	"seatreservation/internal/delivery/http/controllers"
	"seatreservation/internal/delivery/http/middleware"
	"seatreservation/internal/domain"
	"seatreservation/internal/repository/memory"
	"seatreservation/internal/repository/postgres"
	"seatreservation/internal/services"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// @title Seat Reservation API
// @version 1.0
// @description Seat holds with expiry, confirmation and live seat status for ticketed events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// repositories is the storage seam chosen by STORAGE_BACKEND.
type repositories struct {
	ledger       domain.SeatLedger
	events       domain.EventRepository
	seats        domain.SeatRepository
	users        domain.UserRepository
	availability domain.AvailabilityRepository
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]controllers.HealthCheck{}
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Storage
	var repos repositories
	switch cfg.StorageBackend {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = repositories{
			ledger:       memory.NewSeatLedger(store),
			events:       memory.NewEventRepository(store),
			seats:        memory.NewSeatRepository(store),
			users:        memory.NewUserRepository(store),
			availability: memory.NewAvailabilityRepository(store),
		}
		if err := seedDemo(ctx, cfg, store, repos, logger); err != nil {
			return err
		}
	default:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			logger.Info("database migrations applied")
		}
		checks["postgres"] = db.PingContext
		repos = repositories{
			ledger:       postgres.NewSeatLedger(db),
			events:       postgres.NewEventRepository(db),
			seats:        postgres.NewSeatRepository(db),
			users:        postgres.NewUserRepository(db),
			availability: postgres.NewAvailabilityRepository(db),
		}
	}

	// Redis is shared by the Redis fanout backend and the rate limiter.
	var rdb *redis.Client
	if cfg.Fanout.Backend == config.FanoutRedis || cfg.RateLimit.Enabled {
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		switch {
		case err == nil:
			rdb = client
			closers = append(closers, func() { _ = rdb.Close() })
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		case cfg.Fanout.Backend == config.FanoutRedis:
			return err
		default:
			logger.Warn("redis unavailable, rate limiting disabled", "err", err)
		}
	}

	// Fanout
	hub := fanout.NewHub(cfg.Fanout.SubscriberBuffer, logger)
	var (
		publisher domain.SeatEventPublisher = hub
		relay     interface{ Run(context.Context) error }
	)
	switch cfg.Fanout.Backend {
	case config.FanoutRedis:
		publisher = fanout.NewRedisPublisher(rdb, cfg.Fanout.RedisPrefix)
		relay = fanout.NewRedisRelay(rdb, cfg.Fanout.RedisPrefix, hub, logger)
	case config.FanoutAMQP:
		amqpPublisher := fanout.NewAMQPPublisher(cfg.Fanout.RabbitMQURL, cfg.Fanout.AMQPExchange, logger)
		closers = append(closers, func() { _ = amqpPublisher.Close() })
		publisher = amqpPublisher
		relay = fanout.NewAMQPRelay(cfg.Fanout.RabbitMQURL, cfg.Fanout.AMQPExchange, hub, logger)
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := fanout.NewDispatcher(publisher, fanout.DispatcherConfig{
		Shards:    cfg.Fanout.Shards,
		QueueSize: cfg.Fanout.Buffer,
	}, logger)
	dispatcher.Start(dispatcherCtx)

	var wg sync.WaitGroup
	if relay != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := relay.Run(ctx); err != nil {
				logger.Error("seat relay stopped", "backend", cfg.Fanout.Backend, "err", err)
			}
		}()
	}

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		stopDispatcher()
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		stopDispatcher()
		return fmt.Errorf("load email templates: %w", err)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	// Services
	clock := domain.SystemClock{}
	reservationService := services.NewReservationService(services.ReservationDeps{
		Ledger:   repos.ledger,
		Users:    repos.users,
		Events:   repos.events,
		Seats:    repos.seats,
		Notifier: dispatcher,
		Emails:   emailService,
		Clock:    clock,
		Logger:   logger,
	}, cfg.HoldDuration, cfg.RequestTimeout)
	availabilityService := services.NewAvailabilityService(repos.events, repos.availability, clock, cfg.RequestTimeout)
	seatMapService := services.NewSeatMapService(repos.events, repos.seats, clock, cfg.RequestTimeout)

	// HTTP
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = middleware.NewRedisTokenBucket(rdb, cfg.RateLimit)
	}
	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Health:       controllers.NewHealthController(logger, checks),
		Events:       controllers.NewEventController(logger, availabilityService, seatMapService),
		Reservations: controllers.NewReservationController(logger, reservationService),
		SeatFeed:     controllers.NewSeatFeedController(logger, repos.events, hub, cfg.CORSAllowedOrigins),
	},
		middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger),
		middleware.RateLimit(limiter, cfg.RateLimit, logger),
	)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"port", cfg.Port, "storage", cfg.StorageBackend, "fanout", cfg.Fanout.Backend, "hold_duration", cfg.HoldDuration)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		stop()
		stopDispatcher()
		return fmt.Errorf("listen: %w", err)
	}

	// WebSocket connections are hijacked and not tracked by Shutdown; their
	// handlers end when the process exits.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", "err", err)
	}
	stopDispatcher()
	dispatcher.Wait()
	wg.Wait()
	logger.Info("server stopped cleanly")
	return nil
}

// seedDemo gives the in-memory backend one event with a full seat map and one verified user,
// and logs a token for that user.
func seedDemo(ctx context.Context, cfg *config.Config, store *memory.Store, repos repositories, logger *slog.Logger) error {
	start := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	event := domain.NewEvent("Demo Performance", start, start.Add(2*time.Hour), time.Now().UTC())
	store.PutEvent(event)
	user := &domain.User{Username: "demo", Email: "demo@example.com", IsVerified: true, CreatedAt: time.Now().UTC()}
	store.PutUser(user)

	report, err := services.NewProvisioningService(repos.events, repos.seats, logger).
		GenerateSeats(ctx, event.ID, domain.DefaultSeatRows, domain.DefaultSeatsPerRow)
	if err != nil {
		return fmt.Errorf("seed demo seats: %w", err)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(user.ID, user.Email, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("seed demo token: %w", err)
	}
	logger.Info("in-memory demo data ready",
		"event_id", event.ID, "seats", report.Total, "user_id", user.ID, "token", token)
	return nil
}
