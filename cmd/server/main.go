package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ganot/guildhall/internal/config"
	"github.com/ganot/guildhall/internal/domain/announcement"
	"github.com/ganot/guildhall/internal/domain/chat"
	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/notify"
	"github.com/ganot/guildhall/internal/sqlite"
	"github.com/ganot/guildhall/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	rosterRepo := sqlite.NewRosterRepository(db)
	partyRepo := sqlite.NewPartyRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	chatRepo := sqlite.NewChatRepository(db)
	announcementRepo := sqlite.NewAnnouncementRepository(db)
	deviceRepo := sqlite.NewDeviceRepository(db)

	rosterSvc := roster.NewService(rosterRepo, logger)
	chatSvc := chat.NewService(chatRepo, logger)
	dispatcher := notify.NewDispatcher(deviceRepo, logger)
	partySvc := party.NewService(partyRepo, rosterRepo, dispatcher, chatSvc, logger)
	eventSvc := event.NewService(eventRepo, logger)
	announcementSvc := announcement.NewService(announcementRepo, logger)

	auth := transport.NewAuthenticator(cfg.Auth.JWTSecret, rosterSvc)
	router := transport.NewRouter(transport.Services{
		Roster:        rosterSvc,
		Parties:       partySvc,
		Events:        eventSvc,
		Chat:          chatSvc,
		Announcements: announcementSvc,
		Notify:        dispatcher,
	}, auth, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
