package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/df07/go-recursive-raytracer/internal/config"
	"github.com/df07/go-recursive-raytracer/internal/logger"
	"github.com/df07/go-recursive-raytracer/web/server"
)

func main() {
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	webServer, err := server.NewServer(cfg, logger.Named("web"))
	if err != nil {
		logger.Fatal("Invalid server configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Recursive Raytracer Web Server",
		zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)),
		zap.String("scenes", cfg.Render.ScenesDir),
	)

	if err := webServer.Start(ctx); err != nil {
		logger.Error("Error starting server", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
