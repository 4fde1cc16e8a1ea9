package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ludo-lab/auth"
	"ludo-lab/domain/board"
	"ludo-lab/domain/rules"
	"ludo-lab/infrastructure/grpc/server"
	"ludo-lab/infrastructure/storage"
	"ludo-lab/internal"
	"ludo-lab/moderation"
	"ludo-lab/runtime"
	"ludo-lab/runtime/workers"
	"ludo-lab/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until a signal or a serve failure.
// Returning instead of exiting lets the deferred cleanups run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	censoredChar, err := CharacterRune(config.CensoredChar)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 2. Journal (BadgerDB)
	opts := badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING)
	if config.BadgerFilepath == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	journal := storage.NewJournalRepository(db, log, config.LimitEvents)

	// 3. Rooms & Orchestration
	engine := rules.NewEngine(board.Default(), rules.NewRandomDice(), nil)
	orchestrator := runtime.NewOrchestrator(log, engine, journal, runtime.Config{
		BufferSize:      config.BufferSize,
		InboxSize:       config.InboxSize,
		SinkTimeout:     config.SinkTimeout,
		RestartInterval: config.RestartInterval,
		Policy: workers.FollowUpPolicy{
			StarterDrawDelay: config.StarterDrawDelay,
			NoMoveGrace:      config.NoMoveGrace,
		},
		RoomIdleTTL:          config.RoomIdleTTL,
		JanitorInterval:      config.JanitorInterval,
		MetricInterval:       config.MetricInterval,
		LatencyThreshold:     config.LatencyThreshold,
		LowCapacityThreshold: config.LowCapacityThreshold,
	})

	// 4. Moderation
	censored, err := moderation.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("censored words loading failed: %w", err)
	}
	moderator, err := moderation.NewModerator(censored.Words, censoredChar, log)
	if err != nil {
		return fmt.Errorf("moderator creation failed: %w", err)
	}
	log.Info("Censored dictionaries loaded", "languages", censored.Languages, "words", len(censored.Words))
	names := moderation.NewNameModerator(moderator, config.MaxNameLength, orchestrator.Telemetry(), log)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}

	// 6. gRPC Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	tokens := auth.NewTokenManager(config.AuthSecret, config.AuthTokenDuration)
	game := services.NewGameService(orchestrator, names, log)
	ludo := server.NewLudoServer(log, game, tokens, orchestrator.Monitor(), config.ConnectionBufferSize, config.OperatorKey)

	s := grpc.NewServer(grpc.UnaryInterceptor(tokens.UnaryInterceptor(server.PublicMethods()...)))
	server.RegisterLudoServiceServer(s, ludo)

	if config.DebugPort > 0 {
		debug := internal.StartDebugServer(log, config.DebugPort, journal, func() any {
			return orchestrator.Monitor().GetLatest()
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = debug.Shutdown(shutdownCtx)
		}()
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		if err := s.Serve(listener); err != nil && err != grpc.ErrServerStopped {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		orchestrator.Stop()
		return err
	}

	// 8. Final Cleanup, connection streams never end on their own
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		s.Stop()
	}
	orchestrator.Stop()
	log.Info("Program stopped cleanly")
	return nil
}
