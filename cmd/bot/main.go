package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"guard_bot/internal/blobstore"
	"guard_bot/internal/bot"
	"guard_bot/internal/capture"
	"guard_bot/internal/config"
	"guard_bot/internal/notify"
	"guard_bot/internal/pipeline"
	"guard_bot/internal/router"
	"guard_bot/internal/storage"
	"guard_bot/internal/sweeper"
	"guard_bot/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	blobs, err := blobstore.New(cfg.MediaDir)
	if err != nil {
		log.Error("create media store", "path", cfg.MediaDir, "error", err)
		os.Exit(1)
	}

	client, err := dialTransport(cfg, log)
	if err != nil {
		log.Error("connect transport", "error", err)
		os.Exit(1)
	}

	cap := capture.New(store, blobs, log)
	relay := notify.New(client, cfg.OwnerID, log)
	sw := sweeper.New(store, blobs, log)
	pipe := pipeline.New(client, store, cap, relay, cfg.OwnerID, cfg.Prefix, log)

	rt, err := router.New(client, store, cap, sw, router.Options{
		Prefix:   cfg.Prefix,
		OwnerID:  cfg.OwnerID,
		Cooldown: cfg.Cooldown,
		Location: cfg.Location(),
	}, log)
	if err != nil {
		log.Error("build command table", "error", err)
		os.Exit(1)
	}

	b := bot.New(client, store, cap, pipe, rt, relay, cfg.Prefix, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot", "prefix", cfg.Prefix)

	go sw.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// dialTransport connects the external messaging client. The concrete client
// (connection, pairing, frame encryption) lives outside this repository and
// is linked in through the transport.Client interface.
func dialTransport(cfg *config.Config, log *slog.Logger) (transport.Client, error) {
	return transport.Dial(transport.DialOptions{
		SessionDir: filepath.Join(filepath.Dir(cfg.DatabasePath), "session"),
		Log:        log,
	})
}
