package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cineroom/client/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	roomCode = configVar[string]{
		envKey:       "CINEROOM_ROOM_CODE",
		flagKey:      "room-code",
		defaultValue: "",
	}
	displayName = configVar[string]{
		envKey:       "CINEROOM_DISPLAY_NAME",
		flagKey:      "display-name",
		defaultValue: "",
	}
	deviceIdPath = configVar[string]{
		envKey:       "CINEROOM_DEVICE_ID_PATH",
		flagKey:      "device-id-path",
		defaultValue: "",
	}
	initialURL = configVar[string]{
		envKey:       "CINEROOM_INITIAL_URL",
		flagKey:      "initial-url",
		defaultValue: "",
	}
	initialTitle = configVar[string]{
		envKey:       "CINEROOM_INITIAL_TITLE",
		flagKey:      "initial-title",
		defaultValue: "",
	}
	initialRef = configVar[string]{
		envKey:       "CINEROOM_INITIAL_REF",
		flagKey:      "initial-ref",
		defaultValue: "",
	}
	port = configVar[int]{
		envKey:       "CINEROOM_PORT",
		flagKey:      "port",
		defaultValue: 8765,
	}
	host = configVar[string]{
		envKey:       "CINEROOM_HOST",
		flagKey:      "host",
		defaultValue: "127.0.0.1",
	}
	chatWindow = configVar[int]{
		envKey:       "CINEROOM_CHAT_WINDOW",
		flagKey:      "chat-window",
		defaultValue: 50,
	}
	logLevel = configVar[string]{
		envKey:       "CINEROOM_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(roomCode.flagKey, roomCode.defaultValue, "Room code to join, empty starts a new room")
	pflag.String(displayName.flagKey, displayName.defaultValue, "Display name used for chat messages")
	pflag.String(deviceIdPath.flagKey, deviceIdPath.defaultValue, "Path of the persistent device id file")
	pflag.String(initialURL.flagKey, initialURL.defaultValue, "Video url to seed a fresh queue with")
	pflag.String(initialTitle.flagKey, initialTitle.defaultValue, "Title of the seeded video")
	pflag.String(initialRef.flagKey, initialRef.defaultValue, "Catalog reference of the seeded video")
	pflag.Int(port.flagKey, port.defaultValue, "UI bridge port")
	pflag.String(host.flagKey, host.defaultValue, "UI bridge host")
	pflag.Int(chatWindow.flagKey, chatWindow.defaultValue, "Number of chat messages kept in the room snapshot")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(roomCode.flagKey, roomCode.envKey)
	viper.BindEnv(displayName.flagKey, displayName.envKey)
	viper.BindEnv(deviceIdPath.flagKey, deviceIdPath.envKey)
	viper.BindEnv(initialURL.flagKey, initialURL.envKey)
	viper.BindEnv(initialTitle.flagKey, initialTitle.envKey)
	viper.BindEnv(initialRef.flagKey, initialRef.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(chatWindow.flagKey, chatWindow.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)

	viper.SetDefault(roomCode.flagKey, roomCode.defaultValue)
	viper.SetDefault(displayName.flagKey, displayName.defaultValue)
	viper.SetDefault(deviceIdPath.flagKey, deviceIdPath.defaultValue)
	viper.SetDefault(initialURL.flagKey, initialURL.defaultValue)
	viper.SetDefault(initialTitle.flagKey, initialTitle.defaultValue)
	viper.SetDefault(initialRef.flagKey, initialRef.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(chatWindow.flagKey, chatWindow.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)

	config := &app.AppConfig{
		RoomCode:      viper.GetString(roomCode.flagKey),
		DisplayName:   viper.GetString(displayName.flagKey),
		DeviceIdPath:  viper.GetString(deviceIdPath.flagKey),
		InitialURL:    viper.GetString(initialURL.flagKey),
		InitialTitle:  viper.GetString(initialTitle.flagKey),
		InitialRef:    viper.GetString(initialRef.flagKey),
		Host:          viper.GetString(host.flagKey),
		Port:          viper.GetInt(port.flagKey),
		ChatWindow:    viper.GetInt(chatWindow.flagKey),
		LogLevel:      viper.GetString(logLevel.flagKey),
		RedisPort:     viper.GetInt(redisPort.flagKey),
		RedisHost:     viper.GetString(redisHost.flagKey),
		RedisPassword: viper.GetString(redisPassword.flagKey),
	}

	if config.DeviceIdPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		config.DeviceIdPath = filepath.Join(home, ".cineroom", "device-id")
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()
	if err := appConfig.Validate(); err != nil {
		log.Fatal(err)
	}

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting client with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
