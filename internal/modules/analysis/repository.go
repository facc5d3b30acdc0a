package analysis

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InitSchema creates the analysis table if it does not exist.
func InitSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS analysis_entries (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			pair           TEXT NOT NULL DEFAULT '',
			trading_date   TEXT NOT NULL DEFAULT '',
			analysis_score REAL NOT NULL,
			payload        TEXT NOT NULL,
			created_at     INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analysis_user_created
			ON analysis_entries(user_id, created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize analysis schema: %w", err)
	}
	return nil
}

// Repository handles analysis entry persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// NewRepository creates a new analysis repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "analysis").Logger(),
		now: time.Now,
	}
}

// Create inserts a scored entry and returns it with id and creation time set.
func (r *Repository) Create(userID string, e Entry) (Entry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()

	payload, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal analysis entry: %w", err)
	}

	query := `
		INSERT INTO analysis_entries (id, user_id, pair, trading_date, analysis_score, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, e.ID, userID, e.Pair, e.TradingDate, e.AnalysisScore, string(payload), e.CreatedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create analysis entry: %w", err)
	}

	r.log.Info().
		Str("id", e.ID).
		Str("pair", e.Pair).
		Str("trading_date", e.TradingDate).
		Float64("analysis_score", e.AnalysisScore).
		Msg("Analysis entry created")

	return e, nil
}

// ListSince returns all of a user's entries created on or after since,
// in arbitrary order.
func (r *Repository) ListSince(userID string, since time.Time) ([]Entry, error) {
	query := `
		SELECT payload, created_at FROM analysis_entries
		WHERE user_id = ? AND created_at >= ?
	`
	return r.queryEntries(query, userID, since.Unix())
}

// ListRecent returns a user's most recent entries, newest first.
func (r *Repository) ListRecent(userID string, limit int) ([]Entry, error) {
	query := `
		SELECT payload, created_at FROM analysis_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.queryEntries(query, userID, limit)
}

func (r *Repository) queryEntries(query string, args ...interface{}) ([]Entry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var payload string
		var createdAt int64
		if err := rows.Scan(&payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis entry: %w", err)
		}

		var e Entry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis entry: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis entries: %w", err)
	}

	return entries, nil
}
