package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocket-friend-club/companion-bot/app"
	"github.com/pocket-friend-club/companion-bot/config"
	"github.com/pocket-friend-club/companion-bot/internal/reconcile"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	// Collapse any duplicate guild rows left over from earlier deployments
	// before the services start handing out aggregated stats.
	reconciler := reconcile.New(application.DB().GetDB(), application.Logger)
	if err := reconciler.Run(ctx); err != nil {
		log.Fatalf("guild reconciliation failed: %v", err)
	}

	application.Logger.InfoContext(ctx, "companion-bot started",
		"environment", cfg.Observability.Environment,
		"bot_instance", cfg.Discord.BotInstance,
	)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-interrupt:
		application.Logger.Info("shutdown signal received")
	case <-ctx.Done():
		application.Logger.Info("application context canceled")
	}

	if err := application.Close(); err != nil {
		log.Printf("error closing database connection: %v", err)
	}
}
