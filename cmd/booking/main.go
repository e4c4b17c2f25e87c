package main // booking service entry point

import (
	"context"
	"database/sql"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/database"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/logging"
	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/router"
	"github.com/iliyamo/room-reservation/internal/server"
	"github.com/iliyamo/room-reservation/internal/service"
)

func main() {
	cfg, err := config.Load("booking", "8082")
	if err != nil {
		bootLog := logging.New("booking", "prod")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Service, cfg.Env)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("store init failed")
	}
	if db != nil {
		defer db.Close()
	}

	// Redis is optional; without it reservations are read straight from the store.
	if rdb := config.NewRedisClient(ctx, cfg.Redis); rdb != nil {
		defer func(c *redis.Client) { _ = c.Close() }(rdb)
		store = repository.NewCachedReservationRepo(store, rdb, "reservation", cfg.ReservationCacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("reservation cache enabled")
	}

	svc := service.NewBookingService(store, paymentGateway(cfg, log), eventPublisher(cfg, log), log)

	e := server.New(log)
	router.RegisterBooking(e, handler.NewBookingHandler(svc, log))

	if err := server.Run(ctx, e, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// openStore returns the configured reservation store.  db is non-nil only
// for the MySQL backend and must be closed by the caller.
func openStore(ctx context.Context, cfg config.Config) (repository.ReservationStore, *sql.DB, error) {
	if cfg.StoreBackend != config.StoreMySQL {
		return repository.NewMemoryReservationRepo(), nil, nil
	}
	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repository.NewMySQLReservationRepo(db), db, nil
}

func paymentGateway(cfg config.Config, log zerolog.Logger) service.PaymentGateway {
	if cfg.PaymentURL == "" {
		return payment.NewSimulator()
	}
	log.Info().Str("url", cfg.PaymentURL).Msg("using remote payment service")
	return payment.NewHTTPClient(cfg.PaymentURL, cfg.PaymentTimeout)
}

// eventPublisher returns nil when publishing is disabled; a nil interface
// value, not a typed nil pointer.
func eventPublisher(cfg config.Config, log zerolog.Logger) service.EventPublisher {
	if !cfg.PublishEvents {
		return nil
	}
	return queue.NewRabbitPublisher(cfg.RabbitURL, cfg.PublishDialTimeout, log)
}
