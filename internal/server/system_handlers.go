package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/tradecraft/journal/internal/database"
)

// SystemHandlers serves the operational status endpoint
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	databases []*database.DB
	startTime time.Time
}

// NewSystemHandlers creates system handlers over the service databases
func NewSystemHandlers(log zerolog.Logger, dataDir string, databases ...*database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		dataDir:   dataDir,
		databases: databases,
		startTime: time.Now(),
	}
}

// DatabaseStatus is the per-database section of the status response
type DatabaseStatus struct {
	Name         string `json:"name"`
	SizeBytes    int64  `json:"sizeBytes"`
	WALSizeBytes int64  `json:"walSizeBytes"`
	PageCount    int64  `json:"pageCount"`
}

// SystemStatus is the full status response
type SystemStatus struct {
	Status        string           `json:"status"`
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Goroutines    int              `json:"goroutines"`
	CPUPercent    float64          `json:"cpuPercent"`
	MemoryPercent float64          `json:"memoryPercent"`
	DiskFreeBytes uint64           `json:"diskFreeBytes"`
	Databases     []DatabaseStatus `json:"databases"`
}

// HandleSystemStatus reports process, host and database health
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.systemStats()

	status := SystemStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Databases:     make([]DatabaseStatus, 0, len(h.databases)),
	}

	if usage, err := disk.UsageWithContext(r.Context(), h.dataDir); err == nil {
		status.DiskFreeBytes = usage.Free
	} else {
		h.log.Warn().Err(err).Msg("Failed to get disk usage")
	}

	for _, db := range h.databases {
		stats, err := db.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
			continue
		}
		status.Databases = append(status.Databases, DatabaseStatus{
			Name:         db.Name(),
			SizeBytes:    stats.SizeBytes,
			WALSizeBytes: stats.WALSizeBytes,
			PageCount:    stats.PageCount,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

// systemStats samples CPU and RAM usage. The short CPU interval keeps the
// endpoint responsive for dashboard polling.
func (h *SystemHandlers) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
