package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dare-escrow/config"
	httpHandler "dare-escrow/internal/adapter/http/handler"
	pgStorage "dare-escrow/internal/adapter/storage/postgres"
	redisStorage "dare-escrow/internal/adapter/storage/redis"
	"dare-escrow/internal/core/ports"
	"dare-escrow/internal/service"
	"dare-escrow/internal/sweeper"
	"dare-escrow/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting DareStake escrow service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	challengeRepo := pgStorage.NewChallengeRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	inviteStore := redisStorage.NewInviteStore(rdb)

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.Operator)

	var notifier ports.NotificationSink
	if cfg.Notifier.SinkURL != "" {
		notifier = service.NewWebhookNotifier(cfg.Notifier, &http.Client{Timeout: cfg.Notifier.Timeout}, log)
	} else {
		log.Warn().Msg("no notification sink configured, lifecycle events will be dropped")
		notifier = service.NopNotifier{}
	}

	escrowSvc := service.NewEscrowService(
		challengeRepo,
		accountRepo,
		ledgerRepo,
		transactor,
		inviteStore,
		notifier,
		log,
	)
	walletSvc := service.NewWalletService(accountRepo, ledgerRepo, transactor, log)

	// Expiration sweeper
	sweep := sweeper.New(escrowSvc, challengeRepo, cfg.Sweeper, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		EscrowSvc:      escrowSvc,
		WalletSvc:      walletSvc,
		TokenSvc:       tokenSvc,
		AccountRepo:    accountRepo,
		Sweeper:        sweep,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		OperatorCfg:    cfg.Operator,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, runCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := sweep.Run(runCtx)
		if runCtx.Err() != nil {
			return nil // clean shutdown
		}
		return fmt.Errorf("sweeper: %w", err)
	})

	g.Go(func() error {
		<-runCtx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Service stopped with error")
		os.Exit(1)
	}

	log.Info().Msg("Server exited")
}
