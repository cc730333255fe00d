package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"room-lab/contract"
	"room-lab/infrastructure/api"
	"room-lab/infrastructure/gateway"
	"room-lab/infrastructure/search"
	"room-lab/internal"
	"room-lab/moderation"
	"room-lab/observability"
	"room-lab/repositories"
	"room-lab/runtime"
	"room-lab/runtime/workers"
	"room-lab/services"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := contract.SystemClock{}
	monitoring := observability.NewMonitoringManager(log)

	// 2. Text room store
	var repository contract.ITextRoomRepository
	var db *badger.DB
	switch config.StoreDriver {
	case internal.StoreFile:
		repository = repositories.NewTextRoomFileRepository(config.CorpseJSONPath, log, clock)
	default:
		db, err = badger.Open(badger.DefaultOptions(config.BadgerFilepath).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		repository = repositories.NewTextRoomRepository(db, log, clock)
	}

	// 3. Search index & moderation
	index, err := search.Open(config.BlugeFilepath, log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = index.Close()
	}()

	var moderator contract.IModerator
	if config.ModerationEnabled {
		m, err := buildModerator(config, charReplacement, log)
		if err != nil {
			return exitConfig, err
		}
		moderator = m
	}

	// 4. Gateways & coordinators
	gatewayCfg := func(namespace string) gateway.Config {
		return gateway.Config{
			Namespace:      namespace,
			SendBuffer:     config.ConnectionBuffer,
			MaxMessageSize: config.MaxMessageSize,
			AllowedOrigins: config.Origins(),
		}
	}
	lunchHub := gateway.NewHub(log, monitoring, gatewayCfg("lunch"))
	corpseHub := gateway.NewHub(log, monitoring, gatewayCfg("corpse"))

	lunchCoordinator := runtime.NewLunchCoordinator(log, lunchHub, clock, nil, runtime.LunchConfig{
		Duration:          config.LunchRoomDuration,
		ResolvedRetention: config.LunchResolvedRetention,
	})
	corpseCoordinator := runtime.NewCorpseCoordinator(log, repository, index, moderator, corpseHub, clock, runtime.CorpseConfig{
		MasterPassword: config.CorpseMasterPassword,
		EnforceLock:    config.CorpseEnforceLock,
		SearchLimit:    config.CorpseSearchLimit,
		PasswordChecks: config.CorpsePasswordChecks,
	})
	if err := corpseCoordinator.Load(ctx); err != nil {
		return exitRuntime, fmt.Errorf("text rooms loading failed: %w", err)
	}
	if config.CorpseMasterPassword == "" {
		log.Warn("No master password configured, backup and restore are disabled")
	}

	lunchHub.SetHandler(services.NewLunchService(log, lunchCoordinator, lunchHub))
	corpseHub.SetHandler(services.NewCorpseService(log, corpseCoordinator, corpseHub))

	monitoring.WatchRooms(
		func() int { rooms, _ := lunchCoordinator.Stats(); return rooms },
		func() int { rooms, _ := corpseCoordinator.Stats(); return rooms },
	)

	// 5. Background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewSweepWorker(log, lunchCoordinator, config.LunchSweepInterval),
		workers.NewAnnounceWorker(log, lunchCoordinator, config.LunchAnnounceInterval),
		workers.NewTelemetryWorker(log, config.MetricInterval, monitoring),
	)
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(workerCtx)
	}()

	// 6. HTTP server
	routerCfg := api.RouterConfig{
		Log:            log,
		Lunch:          lunchCoordinator,
		Corpse:         corpseCoordinator,
		LunchSocket:    lunchHub,
		CorpseSocket:   corpseHub,
		Monitoring:     monitoring,
		AllowedOrigins: config.Origins(),
	}
	if config.DebugInspector && db != nil {
		url := fmt.Sprintf("http://%s/debug/inspect", config.Address())
		log.Info("Debug Badger inspector available", "url", url)
		routerCfg.Inspector = internal.Inspector(db, repositories.TextRoomPrefix, repositories.InspectMapper, func() map[string]any {
			stats := monitoring.GetLatest()
			return map[string]any{"corpse_rooms": stats.CorpseRooms, "connections": stats.Connections}
		})
	}

	server := &http.Server{
		Addr:              config.Address(),
		Handler:           api.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", server.Addr, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-errChan:
		log.Error("Server failed", "error", err)
		code = exitRuntime
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn("HTTP shutdown incomplete", "error", shutdownErr)
	}
	lunchHub.Shutdown()
	corpseHub.Shutdown()
	stopWorkers()
	<-supDone
	log.Info("Program stopped cleanly")

	return code, err
}

func buildModerator(config internal.Config, charReplacement rune, log *slog.Logger) (*moderation.Moderator, error) {
	loader, dir := moderation.DefaultLoader(), "censored"
	if config.ModerationDir != "" {
		loader, dir = moderation.NewCensoredLoader(os.DirFS(config.ModerationDir)), "."
	}
	data, err := loader.LoadAll(dir)
	if err != nil {
		return nil, fmt.Errorf("censored words loading failed: %w", err)
	}
	log.Info("Moderation enabled", "languages", data.Languages, "words", len(data.Words))
	return moderation.NewModerator(data.Words, charReplacement, log)
}
