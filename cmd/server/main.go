package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/api"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/infrastructure"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/server"
	"github.com/anuragsharanjuspay/jaf-agent-builder/migrations"
)

func main() {
	// Missing .env is fine; environment variables may come from elsewhere.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed: ", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed: ", err)
	}

	if err := infra.Database.Migrate(migrations.FS); err != nil {
		infra.Logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(cfg, infra)

	srv := server.New(&cfg.Server, handler, infra.Logger, cfg.ShutdownTimeoutDuration())
	if err := srv.Start(infra.Lifecycle); err != nil {
		infra.Logger.Error("server start failed", "error", err)
		os.Exit(1)
	}

	infra.Lifecycle.WaitForStartup()
	infra.Logger.Info("service started", "addr", cfg.Server.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	infra.Logger.Info("initiating shutdown")
	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		infra.Logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	infra.Logger.Info("service stopped gracefully")
}
