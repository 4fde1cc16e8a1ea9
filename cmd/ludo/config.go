package main

import (
	"fmt"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	DebugPort            int           `env:"DEBUG_PORT"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	BufferSize           int           `env:"BUFFER_SIZE,default=1024"`
	InboxSize            int           `env:"INBOX_SIZE,default=64"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=500ms"`
	StarterDrawDelay     time.Duration `env:"STARTER_DRAW_DELAY,default=2s"`
	NoMoveGrace          time.Duration `env:"NO_MOVE_GRACE,default=1500ms"`
	RoomIdleTTL          time.Duration `env:"ROOM_IDLE_TTL,default=30m"`
	JanitorInterval      time.Duration `env:"JANITOR_INTERVAL,default=1m"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=10s"`
	LatencyThreshold     time.Duration `env:"LATENCY_THRESHOLD,default=100ms"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=10"`
	// BadgerFilepath empty keeps the journal in memory.
	BadgerFilepath    string        `env:"BADGER_FILEPATH"`
	LimitEvents       *int          `env:"LIMIT_EVENTS"`
	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	OperatorKey       string        `env:"OPERATOR_KEY"`
	MaxNameLength     int           `env:"MAX_NAME_LENGTH,default=24"`
	CensoredChar      string        `env:"CENSORED_CHAR,default=*"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSORED_CHAR must be a single character, got %q", str)
	}
	return r[0], nil
}
