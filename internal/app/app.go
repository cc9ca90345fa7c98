package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cineroom/client/internal/controller"
	catalogredis "github.com/cineroom/client/internal/repository/catalog/redis"
	"github.com/cineroom/client/internal/repository/connection/inmemory"
	devicefile "github.com/cineroom/client/internal/repository/device/file"
	roomredis "github.com/cineroom/client/internal/repository/room/redis"
	"github.com/cineroom/client/internal/service/session"
	"github.com/cineroom/client/pkg/ctxlogger"
	"github.com/cineroom/client/pkg/redisclient"
)

type AppConfig struct {
	RoomCode      string `json:"room_code"`
	DisplayName   string `json:"display_name"`
	DeviceIdPath  string `json:"device_id_path"`
	InitialURL    string `json:"initial_url"`
	InitialTitle  string `json:"initial_title"`
	InitialRef    string `json:"initial_ref"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	ChatWindow    int    `json:"chat_window"`
	LogLevel      string `json:"log_level"`
	RedisPort     int    `json:"redis_port"`
	RedisHost     string `json:"redis_host"`
	RedisPassword string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.ChatWindow < 1 {
		return fmt.Errorf("chat window must be greater than 0")
	}
	if cfg.DeviceIdPath == "" {
		return fmt.Errorf("device id path must not be empty")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	roomRepo := roomredis.NewRepo(rc, 24*14*time.Hour)
	catalogRepo := catalogredis.NewRepo(rc, 24*14*time.Hour)
	deviceRepo := devicefile.NewRepo(cfg.DeviceIdPath)
	connectionRepo := inmemory.NewRepo()

	broadcaster := controller.NewBroadcaster(connectionRepo, logger)
	player := controller.NewBridgePlayer(broadcaster)

	sessionService := session.NewService(roomRepo, catalogRepo, deviceRepo, player, broadcaster, &session.Config{
		DisplayName: cfg.DisplayName,
		ChatWindow:  cfg.ChatWindow,
	}, logger)

	var initialItem *session.QueueItem
	if cfg.InitialURL != "" {
		initialItem = &session.QueueItem{
			Title:       cfg.InitialTitle,
			URL:         cfg.InitialURL,
			ExternalRef: cfg.InitialRef,
		}
	}

	joined, err := sessionService.JoinOrCreateRoom(ctx, &session.JoinOrCreateRoomParams{
		RoomCode:    cfg.RoomCode,
		InitialItem: initialItem,
	})
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}
	logger.InfoContext(ctx, "session established",
		"room_id", joined.RoomId,
		"role", joined.Role,
	)

	ctrl := controller.NewController(sessionService, player, broadcaster, connectionRepo, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: ctrl.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	engineErr := make(chan error, 1)
	go func() {
		engineErr <- sessionService.Run(serverCtx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		select {
		case <-sig:
		case err := <-engineErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorContext(serverCtx, "engine stopped", "error", err)
			}
		}

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting ui bridge", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
