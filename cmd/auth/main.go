package main // auth service entry point

import (
	"context"
	"os"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/logging"
	"github.com/iliyamo/room-reservation/internal/router"
	"github.com/iliyamo/room-reservation/internal/server"
)

func main() {
	cfg, err := config.Load("auth", "8081")
	if err != nil {
		bootLog := logging.New("auth", "prod")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Service, cfg.Env)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	h, err := handler.NewAuthHandler(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("hash demo credential")
	}

	e := server.New(log)
	router.RegisterAuth(e, h)

	if err := server.Run(ctx, e, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
