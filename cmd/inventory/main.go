package main // inventory service entry point

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
	cfg, err := config.Load("inventory", "8083")
	if err != nil {
		bootLog := logging.New("inventory", "prod")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Service, cfg.Env)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	e := server.New(log)
	router.RegisterInventory(e, handler.NewInventoryHandler())

	if err := server.Run(ctx, e, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
