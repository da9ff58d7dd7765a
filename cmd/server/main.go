package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/httpapi"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/pipeline"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage/sqlite"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/tracker"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	repo    storage.Repository
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seo-engine-server",
		Short: "SEO content engine web server",
		Long: `Serves the content generation web app: research-backed drafts with
intent classification, E-E-A-T assessment and quality scoring.`,
		RunE: runServer,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	log.Info().Msg("Starting SEO content engine")

	repo, err = sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	limiter := ratelimit.NewDefaultLimiter()
	registry := pipeline.NewRegistry(cfg, limiter, log)
	pipe := pipeline.New(registry, log)

	var trk *tracker.SheetsTracker
	if cfg.Tracker.Enabled {
		trk, err = tracker.NewSheetsTracker(tracker.Config{
			Enabled:            cfg.Tracker.Enabled,
			SpreadsheetID:      cfg.Tracker.SpreadsheetID,
			SheetName:          cfg.Tracker.SheetName,
			CredentialsFile:    cfg.Tracker.CredentialsFile,
			ServiceAccountJSON: cfg.Tracker.ServiceAccountJSON,
		}, limiter, log)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create sheets tracker, runs will not be mirrored")
		} else if trk != nil {
			if err := trk.InitializeSheet(context.Background()); err != nil {
				log.Warn().Err(err).Msg("Failed to initialize tracking sheet")
			}
		}
	}

	// Retention cleanup keeps the run history bounded
	c := cron.New(cron.WithLogger(cronLogger{log}))
	maxAge, err := time.ParseDuration(cfg.Retention.MaxRunAge)
	if err != nil {
		return fmt.Errorf("invalid retention.max_run_age: %w", err)
	}
	_, err = c.AddFunc(cfg.Retention.CleanupCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		deleted, err := repo.DeleteRunsBefore(ctx, time.Now().Add(-maxAge))
		if err != nil {
			log.Error().Err(err).Msg("Retention cleanup failed")
			return
		}
		log.Info().Int64("deleted", deleted).Msg("Retention cleanup completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention cleanup: %w", err)
	}
	c.Start()
	log.Info().Str("cron", cfg.Retention.CleanupCron).Str("max_age", cfg.Retention.MaxRunAge).Msg("Retention cleanup scheduled")

	server := httpapi.New(cfg.Server, pipe, registry, repo, trk, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		c.Stop()
		return err
	case <-sigChan:
	}

	log.Info().Msg("Shutting down")
	c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// cronLogger adapts our logger for cron
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Msgf(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Msgf(msg, keysAndValues...)
}
