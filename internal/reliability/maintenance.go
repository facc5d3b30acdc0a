package reliability

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/tradecraft/journal/internal/database"
)

// Disk space thresholds for the nightly check.
const (
	diskCriticalGB = 0.5
	diskWarningGB  = 5.0
)

// MaintenanceService runs the nightly database upkeep: WAL checkpoints,
// integrity checks and a disk space check on the data directory.
type MaintenanceService struct {
	databases []*database.DB
	dataDir   string
	log       zerolog.Logger
}

// NewMaintenanceService creates a maintenance service over the given
// databases.
func NewMaintenanceService(databases []*database.DB, dataDir string, log zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{
		databases: databases,
		dataDir:   dataDir,
		log:       log.With().Str("service", "maintenance").Logger(),
	}
}

// Run executes one maintenance pass.
func (s *MaintenanceService) Run(ctx context.Context) error {
	s.log.Info().Msg("Starting maintenance")
	startTime := time.Now()

	for _, db := range s.databases {
		s.log.Debug().Str("database", db.Name()).Msg("Running integrity check")
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("integrity check failed for %s: %w", db.Name(), err)
		}
	}

	for _, db := range s.databases {
		s.log.Debug().Str("database", db.Name()).Msg("Running WAL checkpoint")
		if err := db.WALCheckpoint("TRUNCATE"); err != nil {
			// Checkpoint pressure is recoverable, the next pass retries.
			s.log.Warn().Err(err).Str("database", db.Name()).Msg("WAL checkpoint failed")
		}
	}

	if err := s.checkDiskSpace(ctx); err != nil {
		return err
	}

	s.logDatabaseSizes()

	s.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Msg("Maintenance completed")

	return nil
}

// checkDiskSpace fails the run when free space in the data directory falls
// below the critical threshold.
func (s *MaintenanceService) checkDiskSpace(ctx context.Context) error {
	usage, err := disk.UsageWithContext(ctx, s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to stat filesystem: %w", err)
	}

	freeGB := float64(usage.Free) / 1e9
	s.log.Debug().Float64("free_gb", freeGB).Msg("Disk space check")

	if freeGB < diskCriticalGB {
		return fmt.Errorf("only %.2f GB free in %s", freeGB, s.dataDir)
	}
	if freeGB < diskWarningGB {
		s.log.Warn().Float64("free_gb", freeGB).Msg("Disk space running low")
	}

	return nil
}

// logDatabaseSizes records size metrics for growth monitoring.
func (s *MaintenanceService) logDatabaseSizes() {
	for _, db := range s.databases {
		stats, err := db.GetStats()
		if err != nil {
			s.log.Error().Err(err).Str("database", db.Name()).Msg("Failed to get stats")
			continue
		}

		s.log.Info().
			Str("database", db.Name()).
			Int64("size_bytes", stats.SizeBytes).
			Int64("wal_size_bytes", stats.WALSizeBytes).
			Msg("Database size")
	}
}
