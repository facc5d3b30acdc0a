package checklist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InitSchema creates the checklist table if it does not exist.
// The full entry is stored as an opaque JSON payload; only the columns
// needed for filtering are broken out.
func InitSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS checklist_entries (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			trading_date TEXT NOT NULL DEFAULT '',
			score        REAL NOT NULL,
			payload      TEXT NOT NULL,
			created_at   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_checklist_user_created
			ON checklist_entries(user_id, created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize checklist schema: %w", err)
	}
	return nil
}

// Repository handles checklist entry persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// NewRepository creates a new checklist repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "checklist").Logger(),
		now: time.Now,
	}
}

// Create inserts a scored entry and returns it with id and creation time set.
func (r *Repository) Create(userID string, e Entry) (Entry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()

	payload, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal checklist entry: %w", err)
	}

	query := `
		INSERT INTO checklist_entries (id, user_id, trading_date, score, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, e.ID, userID, e.TradingDate, e.Score, string(payload), e.CreatedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create checklist entry: %w", err)
	}

	r.log.Info().
		Str("id", e.ID).
		Str("trading_date", e.TradingDate).
		Float64("score", e.Score).
		Msg("Checklist entry created")

	return e, nil
}

// ListSince returns all of a user's entries created on or after since,
// in arbitrary order (the aggregator does not depend on ordering).
func (r *Repository) ListSince(userID string, since time.Time) ([]Entry, error) {
	query := `
		SELECT payload, created_at FROM checklist_entries
		WHERE user_id = ? AND created_at >= ?
	`
	return r.queryEntries(query, userID, since.Unix())
}

// ListRecent returns a user's most recent entries, newest first.
func (r *Repository) ListRecent(userID string, limit int) ([]Entry, error) {
	query := `
		SELECT payload, created_at FROM checklist_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.queryEntries(query, userID, limit)
}

func (r *Repository) queryEntries(query string, args ...interface{}) ([]Entry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var payload string
		var createdAt int64
		if err := rows.Scan(&payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan checklist entry: %w", err)
		}

		var e Entry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checklist entry: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checklist entries: %w", err)
	}

	return entries, nil
}
