package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"3000" validate:"min=1000,max=65535"`

	// RoomIdLength is the length of generated room identifiers.
	RoomIdLength int `env:"ROOM_ID_LENGTH" envDefault:"6" validate:"min=4,max=21"`

	// WsReadLimit caps a single inbound frame. Relayed WebRTC offers carry
	// full SDP blobs, so this must stay well above a few KiB.
	WsReadLimit int64 `env:"WS_READ_LIMIT" envDefault:"65536" validate:"min=1024"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
