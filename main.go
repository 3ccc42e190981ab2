package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"watchpartygo/internal/config"
	"watchpartygo/internal/http/http_server"
	"watchpartygo/internal/services/room"
	"watchpartygo/internal/ws"
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

	// 3. Room state service (in-memory; rooms live for the process lifetime)
	roomService := room.NewRoomService(cfg.RoomIdLength)

	// 4. WebSockets hub (connection registry + room fan-out)
	hub := ws.NewHub()

	// 5. WS server + serialized event loop
	wsSrv := ws.NewWsServer(hub, roomService, cfg.WsReadLimit)
	go wsSrv.Run(ctx)

	// 6. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, roomService)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
