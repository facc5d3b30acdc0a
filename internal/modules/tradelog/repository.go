package tradelog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InitSchema creates the trade log table if it does not exist.
// The full entry is stored as an opaque JSON payload; only the columns
// needed for filtering are broken out.
func InitSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS trade_entries (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			trade_date    TEXT NOT NULL DEFAULT '',
			journal_score REAL NOT NULL,
			payload       TEXT NOT NULL,
			created_at    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trades_user_created
			ON trade_entries(user_id, created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize trade log schema: %w", err)
	}
	return nil
}

// Repository handles trade entry persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// NewRepository creates a new trade log repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "tradelog").Logger(),
		now: time.Now,
	}
}

// Create inserts a derived and scored trade and returns it with id and
// creation time set.
func (r *Repository) Create(userID string, e Entry) (Entry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()

	payload, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal trade entry: %w", err)
	}

	query := `
		INSERT INTO trade_entries (id, user_id, trade_date, journal_score, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, e.ID, userID, e.TradeDate, e.JournalScore, string(payload), e.CreatedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create trade entry: %w", err)
	}

	r.log.Info().
		Str("id", e.ID).
		Str("trade_date", e.TradeDate).
		Str("asset", e.Asset).
		Float64("journal_score", e.JournalScore).
		Msg("Trade entry created")

	return e, nil
}

// ListSince returns all of a user's trades created on or after since,
// in arbitrary order (the aggregator does not depend on ordering).
func (r *Repository) ListSince(userID string, since time.Time) ([]Entry, error) {
	query := `
		SELECT payload, created_at FROM trade_entries
		WHERE user_id = ? AND created_at >= ?
	`
	return r.queryEntries(query, userID, since.Unix())
}

// ListRecent returns a user's most recent trades, newest first.
func (r *Repository) ListRecent(userID string, limit int) ([]Entry, error) {
	query := `
		SELECT payload, created_at FROM trade_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.queryEntries(query, userID, limit)
}

func (r *Repository) queryEntries(query string, args ...interface{}) ([]Entry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var payload string
		var createdAt int64
		if err := rows.Scan(&payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade entry: %w", err)
		}

		var e Entry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trade entry: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade entries: %w", err)
	}

	return entries, nil
}
