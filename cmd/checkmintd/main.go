package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/api/server"
	"github.com/checkmint/checkmint/internal/config"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/mintqueue"
	"github.com/checkmint/checkmint/internal/notifier"
	"github.com/checkmint/checkmint/internal/orchestrator"
	"github.com/checkmint/checkmint/internal/providers/ethereum"
	"github.com/checkmint/checkmint/internal/providers/luma"
	"github.com/checkmint/checkmint/internal/reconciler"
	"github.com/checkmint/checkmint/internal/resilience"
	"github.com/checkmint/checkmint/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "checkmintd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting checkmintd")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Connect to the chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err), zap.String("url", cfg.Ethereum.RPCURL))
	}
	ledger, err := ethereum.NewEVMLedger(ethClient, clock, ethereum.Config{
		ContractAddress: cfg.Ethereum.ContractAddress,
		SignerKey:       cfg.Ethereum.SignerKey,
		ChainID:         cfg.Ethereum.ChainID,
		Confirmations:   cfg.Ethereum.Confirmations,
		FinalityTimeout: cfg.Ethereum.FinalityTimeout,
		GasLimit:        cfg.Ethereum.GasLimit,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger", zap.Error(err))
	}
	defer ledger.Close()
	logger.InfoCtx(ctx, "Connected to chain",
		zap.Int64("chain_id", cfg.Ethereum.ChainID),
		zap.String("contract", cfg.Ethereum.ContractAddress),
	)

	// Connect to NATS for downstream notifications
	notify, err := notifier.NewJetStream(ctx, notifier.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), clock, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer notify.Close()

	// Shared circuit breaker for source API and chain calls
	breaker := resilience.NewBreaker(clock, resilience.Config{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		CoolDown:         cfg.Breaker.CoolDown,
		MaxEntries:       cfg.Breaker.MaxEntries,
	})
	runner := resilience.NewRunner(breaker, clock)

	var minSignerWei *big.Int
	if cfg.Ethereum.MinSignerWei != "" {
		minSignerWei, _ = new(big.Int).SetString(cfg.Ethereum.MinSignerWei, 10)
		if minSignerWei == nil {
			logger.FatalCtx(ctx, "Invalid ethereum.min_signer_wei", zap.String("value", cfg.Ethereum.MinSignerWei))
		}
	}

	// Mint queue
	queue := mintqueue.NewManager(mintqueue.Config{
		DrainInterval: cfg.Queue.DrainInterval,
		BatchSize:     cfg.Queue.BatchSize,
		ItemDelay:     cfg.Queue.ItemDelay,
		MaxAttempts:   cfg.Queue.MaxAttempts,
		MinSignerWei:  minSignerWei,
	}, dataStore, ledger, notify, runner, clock)

	// Source API reconciler
	httpClient := adapter.NewHTTPClient(cfg.Luma.HTTPTimeout, cfg.Luma.MaxRetries)
	clients := luma.NewClientFactory(httpClient, cfg.Luma.APIURL)
	rec := reconciler.New(reconciler.Config{
		MaxEventsPerRun:   cfg.Sync.MaxEventsPerRun,
		MaxCheckInsPerRun: cfg.Sync.MaxCheckInsPerRun,
		EventBatchSize:    cfg.Sync.EventBatchSize,
		CheckInBatchSize:  cfg.Sync.CheckInBatchSize,
		BatchDelay:        cfg.Sync.BatchDelay,
	}, dataStore, clients, queue, runner, clock)

	// Sync orchestrator
	orch := orchestrator.New(orchestrator.Config{
		EventsInterval:   cfg.Sync.EventsInterval,
		CheckInsInterval: cfg.Sync.CheckInsInterval,
		StaggerDelay:     cfg.Sync.StaggerDelay,
		MinSignerWei:     minSignerWei,
	}, dataStore, rec, queue, ledger, runner, clock)

	// Admin API server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		APIKeys:      cfg.Auth.APIKeys,
	}, dataStore, orch, queue)

	// Run the mint queue drain loop
	queueDone := make(chan struct{})
	go func() {
		defer close(queueDone)
		if err := queue.Run(ctx); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "mintqueue"))
		}
	}()

	// Start the sync loops
	if err := orch.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start sync loops", zap.Error(err))
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	orch.Stop()
	queue.Stop()
	cancel()

	select {
	case <-queueDone:
	case <-shutdownCtx.Done():
		logger.WarnCtx(shutdownCtx, "Mint queue did not stop in time")
	}

	logger.InfoCtx(shutdownCtx, "Shutdown complete")
}
