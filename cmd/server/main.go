// Command server runs the trading-discipline journal HTTP service.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tradecraft/journal/internal/config"
	"github.com/tradecraft/journal/internal/database"
	"github.com/tradecraft/journal/internal/modules/analysis"
	analysishandlers "github.com/tradecraft/journal/internal/modules/analysis/handlers"
	"github.com/tradecraft/journal/internal/modules/checklist"
	checklisthandlers "github.com/tradecraft/journal/internal/modules/checklist/handlers"
	"github.com/tradecraft/journal/internal/modules/tradelog"
	tradeloghandlers "github.com/tradecraft/journal/internal/modules/tradelog/handlers"
	"github.com/tradecraft/journal/internal/reliability"
	"github.com/tradecraft/journal/internal/reportcache"
	"github.com/tradecraft/journal/internal/scheduler"
	"github.com/tradecraft/journal/internal/server"
	"github.com/tradecraft/journal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting journal service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journalDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "journal.db"),
		Profile: database.ProfileJournal,
		Name:    "journal",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open journal database")
	}
	defer journalDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	if err := checklist.InitSchema(journalDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize checklist schema")
	}
	if err := analysis.InitSchema(journalDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize analysis schema")
	}
	if err := tradelog.InitSchema(journalDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize trade log schema")
	}
	if err := reportcache.InitSchema(cacheDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize report cache schema")
	}

	cache := reportcache.New(cacheDB.Conn(), log)

	checklistHandlers := checklisthandlers.NewHandlers(
		checklist.NewRepository(journalDB.Conn(), log), cache, log)
	analysisHandlers := analysishandlers.NewHandlers(
		analysis.NewRepository(journalDB.Conn(), log), cache, log)
	tradelogHandlers := tradeloghandlers.NewHandlers(
		tradelog.NewRepository(journalDB.Conn(), log), cache, log)

	databases := []*database.DB{journalDB, cacheDB}

	sched := scheduler.New(ctx, log)

	maintenance := reliability.NewMaintenanceService(databases, cfg.DataDir, log)
	if err := sched.Register("maintenance", cfg.MaintenanceCron, maintenance.Run); err != nil {
		log.Fatal().Err(err).Msg("Failed to register maintenance job")
	}

	if cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(ctx,
			cfg.Backup.Endpoint, cfg.Backup.Region, cfg.Backup.Bucket,
			cfg.Backup.AccessKeyID, cfg.Backup.SecretAccessKey, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 client")
		}

		backup := reliability.NewBackupService(
			s3Client, databases, cfg.DataDir, cfg.Backup.Prefix, cfg.Backup.Retention, log)
		if err := sched.Register("backup", cfg.BackupCron, backup.Run); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	} else {
		log.Info().Msg("Backups disabled, no bucket configured")
	}

	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		DataDir:   cfg.DataDir,
		JournalDB: journalDB,
		CacheDB:   cacheDB,
		Checklist: checklistHandlers,
		Analysis:  analysisHandlers,
		TradeLog:  tradelogHandlers,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Journal service stopped")
}
