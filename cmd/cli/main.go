package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/cli"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/config"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextSlogLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "closing app", "error", err)
		}
	}()

	app.Run(ctx)
}
