package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/jackyboi/asyncchess/internal/config"
	"github.com/jackyboi/asyncchess/internal/game"
	"github.com/jackyboi/asyncchess/internal/obslog"
	"github.com/jackyboi/asyncchess/internal/refresher"
	"github.com/jackyboi/asyncchess/internal/server"
	"github.com/jackyboi/asyncchess/internal/ui"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	gameID := flag.Uint("id", 0, "game id (overrides config)")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.L().Sync() }()

	// cleanenv gives env vars priority over the file, so a flag override
	// just becomes the env var
	if *gameID != 0 {
		_ = os.Setenv("CHESS_GAME_ID", strconv.FormatUint(uint64(*gameID), 10))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	obslog.L().Info("starting",
		zap.String("server", cfg.ServerBaseURL),
		zap.Uint32("game_id", cfg.GameID))

	client := server.NewClient(cfg.ServerBaseURL, server.WithTimeout(cfg.RequestTimeout))
	worker := refresher.Start(cfg.GameID, client, refresher.WithRefreshInterval(cfg.RefreshInterval))
	ctrl := game.New(cfg.GameID, worker)

	app, err := ui.New(ctrl, ui.DefaultTheme())
	if err != nil {
		ctrl.Close()
		log.Fatalf("terminal init error: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
	case s := <-sigCh:
		obslog.L().Info("signal received", zap.String("signal", s.String()))
		app.Stop()
		err = <-errCh
	}

	// explicit shutdown handshake: the worker invalidates the server
	// session before Close returns
	ctrl.Close()

	if err != nil {
		obslog.L().Error("ui loop failed", zap.Error(err))
		os.Exit(1)
	}
	obslog.L().Info("bye")
}
