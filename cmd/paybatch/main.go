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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/paybatch/internal/adapter/csvio"
	httpAdapter "github.com/iho/paybatch/internal/adapter/http"
	"github.com/iho/paybatch/internal/adapter/http/handler"
	postgresRepo "github.com/iho/paybatch/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/paybatch/internal/adapter/repository/redis"
	"github.com/iho/paybatch/internal/infrastructure/config"
	"github.com/iho/paybatch/internal/infrastructure/eventpublisher"
	"github.com/iho/paybatch/internal/infrastructure/logger"
	"github.com/iho/paybatch/internal/infrastructure/metrics"
	"github.com/iho/paybatch/internal/infrastructure/postgres"
	"github.com/iho/paybatch/internal/infrastructure/redis"
	"github.com/iho/paybatch/internal/ledger"
	"github.com/iho/paybatch/internal/usecase"
)

func main() {
	// optional .env for local runs
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "paybatch transactions.csv",
		Short: "Batch CSV payment transaction processor",
		Long: `paybatch processes an ordered CSV of payment transactions
(deposit, withdrawal, dispute, resolve, chargeback) and writes the
final per-client account table to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(args[0], false)
		},
	}

	serveCmd := &cobra.Command{
		Use:           "serve transactions.csv",
		Short:         "Process a CSV and serve the result over HTTP",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(args[0], true)
		},
	}
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runProcess(inputPath string, serve bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	runID := postgresRepo.NewULIDGenerator().Generate()
	log = log.With().Str("run_id", runID).Logger()

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	processor := usecase.NewProcessorUseCase(usecase.ProcessorConfig{
		Ledger:  ledger.New(),
		Logger:  &log,
		Metrics: m,
	})

	start := time.Now()
	runErr := processor.ProcessAll(csvio.NewReader(input))
	elapsed := time.Since(start)
	m.RunDuration.Observe(elapsed.Seconds())

	if runErr != nil {
		m.FatalErrors.Inc()
		log.Error().Err(runErr).Msg("run aborted")

		// an undecodable record yields no table at all; a rejected
		// transaction still prints the state accumulated so far
		if errors.Is(runErr, usecase.ErrSourceFailed) {
			return runErr
		}
		if err := csvio.NewWriter(os.Stdout).WriteAccounts(processor.Accounts()); err != nil {
			log.Error().Err(err).Msg("write account table")
		}
		return runErr
	}

	stats := processor.Stats()
	log.Info().
		Int64("applied", stats.Applied).
		Int64("ignored", stats.Ignored).
		Int("accounts", stats.AccountsCreated).
		Int("locked", stats.AccountsLocked).
		Dur("elapsed", elapsed).
		Msg("run completed")

	if err := csvio.NewWriter(os.Stdout).WriteAccounts(processor.Accounts()); err != nil {
		return fmt.Errorf("write account table: %w", err)
	}

	ctx := context.Background()

	export, closeSinks, err := buildExport(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSinks()

	if err := export.Export(ctx, runID, processor.Accounts(), stats, elapsed); err != nil {
		m.ExportErrors.WithLabelValues("export").Inc()
		log.Error().Err(err).Msg("export failed")
	}

	if serve {
		return serveReport(cfg, log, processor, runID, registry)
	}

	return nil
}

// buildExport wires the optional write-only sinks from configuration.
func buildExport(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*usecase.ExportUseCase, func(), error) {
	var cleanups []func()
	closeAll := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	exportCfg := usecase.ExportConfig{
		IDGen:  postgresRepo.NewULIDGenerator(),
		Logger: &log,
	}

	if cfg.DatabaseURL != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			closeAll()
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		cleanups = append(cleanups, pool.Close)
		exportCfg.Snapshots = postgresRepo.NewSnapshotRepository(pool)
		log.Info().Msg("snapshot export enabled")
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		cleanups = append(cleanups, func() { client.Close() })
		exportCfg.Cache = redisRepo.NewBalanceCache(client)
		log.Info().Msg("balance cache export enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		cleanups = append(cleanups, func() { publisher.Close() })
		exportCfg.Publisher = publisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("event publishing enabled")
	} else {
		exportCfg.Publisher = eventpublisher.NewLogPublisher(log)
	}

	return usecase.NewExportUseCase(exportCfg), closeAll, nil
}

// serveReport exposes the finished run over HTTP until interrupted.
func serveReport(cfg *config.Config, log zerolog.Logger, processor *usecase.ProcessorUseCase, runID string, registry *prometheus.Registry) error {
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler: handler.NewReportHandler(processor, runID),
		Gatherer:      registry,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("serving report")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
