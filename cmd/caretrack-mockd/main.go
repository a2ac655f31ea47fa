// ABOUTME: Entry point for the CareTrack mock backend daemon
// ABOUTME: Serves the envelope API with seeded fixtures for development and demos

package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/caretrack/caretrack-go/config"
	"github.com/caretrack/caretrack-go/logger"
	"github.com/caretrack/caretrack-go/mockapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	srv := mockapi.NewServer(cfg.MockJWTSecret)

	addr := ":" + cfg.MockPort
	slog.Info("Mock CareTrack backend listening", "addr", addr)
	slog.Info("Seeded accounts", "admin", "admin@caretrack.test/admin-password", "carer", "carer@caretrack.test/carer-password")
	if err := http.ListenAndServe(addr, srv); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
