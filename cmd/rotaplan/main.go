package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotaplan/rotaplan/adapter/cli"
	"github.com/rotaplan/rotaplan/internal/roster/application/services"
	"github.com/rotaplan/rotaplan/pkg/config"
	"github.com/rotaplan/rotaplan/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       observability.LogLevel(cfg.LogLevel),
		Format:      observability.LogFormat(cfg.LogFormat),
		ServiceName: "rotaplan",
	})
	cli.SetLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	engine := services.NewEngine(services.EngineConfig{TimeLimit: cfg.SolveTimeLimit}, logger)
	cli.SetApp(&cli.App{Engine: engine})

	if err := cli.Execute(ctx); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
