// Package reportcache stores computed trend reports in the cache database.
// Aggregation is a pure function of its inputs, so cached reports can be
// discarded or recomputed at any time without correctness concerns; entry
// writes simply invalidate the affected kind.
package reportcache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Entry kinds used as cache keys.
const (
	KindChecklist = "checklist"
	KindAnalysis  = "analysis"
	KindTradeLog  = "tradelog"
)

// InitSchema creates the trend report cache table if it does not exist.
func InitSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS trend_reports (
			user_id     TEXT NOT NULL,
			kind        TEXT NOT NULL,
			days        INTEGER NOT NULL,
			report_date TEXT NOT NULL,
			payload     BLOB NOT NULL,
			created_at  INTEGER NOT NULL,
			PRIMARY KEY (user_id, kind, days, report_date)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize report cache schema: %w", err)
	}
	return nil
}

// Cache is a msgpack-serialized store of trend reports keyed by
// (user, kind, window size, UTC report date).
type Cache struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// New creates a new report cache
func New(db *sql.DB, log zerolog.Logger) *Cache {
	return &Cache{
		db:  db,
		log: log.With().Str("component", "report_cache").Logger(),
		now: time.Now,
	}
}

// Get loads a cached report into out. Returns false when no report is
// cached for the key. Decode failures are treated as a miss, not an error:
// the caller recomputes and overwrites.
func (c *Cache) Get(userID, kind string, days int, reportDate string, out interface{}) (bool, error) {
	query := `
		SELECT payload FROM trend_reports
		WHERE user_id = ? AND kind = ? AND days = ? AND report_date = ?
	`
	var payload []byte
	err := c.db.QueryRow(query, userID, kind, days, reportDate).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query report cache: %w", err)
	}

	if err := msgpack.Unmarshal(payload, out); err != nil {
		c.log.Warn().Err(err).Str("kind", kind).Msg("Discarding undecodable cached report")
		return false, nil
	}

	return true, nil
}

// Put stores a report for the key, replacing any previous value.
func (c *Cache) Put(userID, kind string, days int, reportDate string, report interface{}) error {
	payload, err := msgpack.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO trend_reports
			(user_id, kind, days, report_date, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := c.db.Exec(query, userID, kind, days, reportDate, payload, c.now().Unix()); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	return nil
}

// Invalidate drops all cached reports of one kind for a user. Called on
// every entry write so reads never see a stale window.
func (c *Cache) Invalidate(userID, kind string) error {
	query := `DELETE FROM trend_reports WHERE user_id = ? AND kind = ?`
	if _, err := c.db.Exec(query, userID, kind); err != nil {
		return fmt.Errorf("failed to invalidate reports: %w", err)
	}
	return nil
}
