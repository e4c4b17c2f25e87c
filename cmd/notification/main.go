package main // notification service entry point

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/logging"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/router"
	"github.com/iliyamo/room-reservation/internal/server"
)

func main() {
	cfg, err := config.Load("notification", "8084")
	if err != nil {
		bootLog := logging.New("notification", "prod")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Service, cfg.Env)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	// The consumer reconnects on its own; it only stops with ctx.
	consumer := queue.NewNotificationConsumer(cfg.RabbitURL, cfg.NotificationLogPath, log)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	e := server.New(log)
	router.RegisterNotification(e)

	err = server.Run(ctx, e, cfg, log)
	stop()
	wg.Wait()
	if err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
