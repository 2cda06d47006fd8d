package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

var addrFlag = flag.String("addr", "", "listen address (overrides NUMGUESS_ADDR)")

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	gs := newGameServer(cfg, logger, prometheus.DefaultRegisterer)
	go gs.registry.reapLoop(cfg.SessionTTL, gs.metrics, logger, gs.stop)

	logger.Info("server starting",
		"addr", cfg.Addr,
		"tick_hz", cfg.TickHz,
		"frame_rate", cfg.FrameRate,
		"session_ttl", cfg.SessionTTL.String(),
	)
	if err := http.ListenAndServe(cfg.Addr, gs.router()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
