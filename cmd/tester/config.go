package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr    string `envconfig:"LUDO_ADDR" default:"localhost:8080"`
	Players int    `envconfig:"LUDO_PLAYERS" default:"4"`
	// LUDO_COLOURS enables colorized output
	Colours bool `envconfig:"LUDO_COLOURS" default:"true"`
	// LUDO_DEBUG_JSON dumps every request/response body as JSON
	DebugJSON   bool          `envconfig:"LUDO_DEBUG_JSON" default:"false"`
	TurnDelay   time.Duration `envconfig:"LUDO_TURN_DELAY" default:"50ms"`
	MaxTurns    int           `envconfig:"LUDO_MAX_TURNS" default:"3000"`
	OperatorKey string        `envconfig:"LUDO_OPERATOR_KEY"`
	LogLevel    string        `envconfig:"LUDO_LOG_LEVEL" default:"INFO"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
