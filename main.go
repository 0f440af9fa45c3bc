package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"presencehub/internal/config"
	"presencehub/internal/http/http_server"
	"presencehub/internal/services/presence"
	"presencehub/internal/session"
	"presencehub/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Session registry + presence service wired to the WS hub
	registry := session.NewRegistry()
	hub := ws.NewHub()
	presenceSvc := presence.NewPresenceService(registry, hub)

	// 4. Initialize the WS server
	wsSrv := ws.NewWsServer(hub, presenceSvc)

	// 5. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, cfg.CorsAllowOrigins, wsSrv, presenceSvc)

	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()

	Log.Info("Listening", zap.Uint16("port", cfg.HttpServerPort))
	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
