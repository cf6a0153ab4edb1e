package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adprov/pkg/logger"
	"adprov/pkg/server"
	"adprov/pkg/settings"
)

func main() {
	settingsPath := flag.String("settings", os.Getenv("ADPROV_SETTINGS"), "Path to settings file (yaml, toml or json)")
	flag.Parse()

	log := logger.New("main").Function("main")

	cfg, err := settings.InitConfig(*settingsPath)
	if err != nil {
		log.Er("failed to load settings", err)
		os.Exit(1)
	}

	app := server.New(server.NewApp(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Er("shutdown failed", err)
		}
	}()

	log.Info("listening", "addr", cfg.ServerAddr, "variants", len(cfg.Variants))
	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
