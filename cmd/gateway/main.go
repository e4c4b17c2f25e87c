package main // API gateway entry point

import (
	"context"
	"os"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/logging"
	"github.com/iliyamo/room-reservation/internal/router"
	"github.com/iliyamo/room-reservation/internal/server"
)

func main() {
	cfg, err := config.Load("gateway", "8080")
	if err != nil {
		bootLog := logging.New("gateway", "prod")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Service, cfg.Env)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	// Rate limiting and caching switch themselves off when rdb is nil.
	rdb := config.NewRedisClient(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.Redis.Enabled {
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unreachable; rate limit and cache disabled")
	}

	e := server.New(log)
	if err := router.RegisterGateway(e, cfg, rdb, log); err != nil {
		log.Fatal().Err(err).Msg("gateway routes")
	}

	if err := server.Run(ctx, e, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
