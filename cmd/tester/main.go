package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ludo-lab/infrastructure/grpc/client"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tester error: %v\n", err)
	}
	os.Exit(code)
}

// run seats LUDO_PLAYERS bots in a fresh room and plays until someone wins.
func run() (int, error) {
	config, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if config.Players < 2 || config.Players > 4 {
		return exitConfig, fmt.Errorf("LUDO_PLAYERS must be between 2 and 4, got %d", config.Players)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := grpc.NewClient(config.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(debugInterceptor(log, config.DebugJSON)),
	)
	if err != nil {
		return exitRuntime, fmt.Errorf("unable to reach %s: %w", config.Addr, err)
	}
	defer conn.Close()

	painter := NewPainter(config.Colours)
	bots := make([]*Bot, 0, config.Players)
	for i := 0; i < config.Players; i++ {
		name := fmt.Sprintf("bot-%d", i+1)
		key := ""
		if i == 0 {
			key = config.OperatorKey
		}
		bot, err := NewBot(ctx, log, name, client.NewLudoClient(conn), key)
		if err != nil {
			return exitRuntime, fmt.Errorf("%s failed to connect: %w", name, err)
		}
		bots = append(bots, bot)
	}

	game := NewGame(log, bots, painter, config.TurnDelay, config.MaxTurns)
	if err := game.Play(ctx); err != nil {
		return exitRuntime, err
	}
	if config.OperatorKey != "" {
		stats, err := bots[0].Client.Stats(ctx)
		if err != nil {
			log.Warn("Stats unavailable", "error", err)
		} else {
			RenderStats(os.Stdout, stats)
		}
	}
	return exitOK, nil
}

// debugInterceptor logs every call and, when asked, its JSON bodies.
func debugInterceptor(log *slog.Logger, debugJSON bool) grpc.UnaryClientInterceptor {
	marshaler := protojson.MarshalOptions{Multiline: true, EmitUnpopulated: true}
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		logBuilder := strings.Builder{}
		fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
		if debugJSON {
			fmt.Fprintln(&logBuilder, "\nREQUEST:")
			fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
			if err != nil {
				fmt.Fprintln(&logBuilder, "ERROR:", err)
			} else {
				fmt.Fprintln(&logBuilder, "RESPONSE:")
				fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
			}
		}
		log.Debug(logBuilder.String())
		return err
	}
}

// Painter renders text in the color of a seat when colours are enabled.
type Painter struct {
	enabled bool
}

func NewPainter(enabled bool) Painter {
	return Painter{enabled: enabled}
}

func (p Painter) Seat(seatColor, text string) string {
	if !p.enabled {
		return text
	}
	switch seatColor {
	case "orange":
		return color.HEX("#ff8c00").Sprint(text)
	case "green":
		return color.Green.Sprint(text)
	case "blue":
		return color.Blue.Sprint(text)
	case "yellow":
		return color.Yellow.Sprint(text)
	}
	return text
}

func (p Painter) Header(text string) string {
	if !p.enabled {
		return text
	}
	return color.New(color.BgBlack, color.FgGreen).Render(text)
}
