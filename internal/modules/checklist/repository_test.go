package checklist

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file:checklist_repo_test?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(db))
	_, err = db.Exec("DELETE FROM checklist_entries")
	require.NoError(t, err)

	return db
}

func TestRepositoryCreateAndListSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db, zerolog.Nop())

	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	clock := base
	repo.now = func() time.Time { return clock }

	entry := Entry{
		SleptWell:   true,
		FollowPlan:  true,
		Signature:   "trader",
		TradingDate: "2024-06-10",
	}
	entry.Score = ScoreEntry(entry)

	created, err := repo.Create("user-1", entry)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, base, created.CreatedAt)
	assert.Equal(t, 25.0, created.Score)

	// Second entry a day later
	clock = base.AddDate(0, 0, 1)
	later := Entry{TradingDate: "2024-06-11"}
	later.Score = ScoreEntry(later)
	_, err = repo.Create("user-1", later)
	require.NoError(t, err)

	all, err := repo.ListSince("user-1", base)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Roundtrip preserves the scored payload
	found := false
	for _, e := range all {
		if e.ID == created.ID {
			found = true
			assert.True(t, e.SleptWell)
			assert.True(t, e.FollowPlan)
			assert.Equal(t, "trader", e.Signature)
			assert.Equal(t, 25.0, e.Score)
		}
	}
	assert.True(t, found)

	// Window cutoff excludes the first entry
	recent, err := repo.ListSince("user-1", base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "2024-06-11", recent[0].TradingDate)
}

func TestRepositoryIsolatesUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db, zerolog.Nop())

	e := Entry{TradingDate: "2024-06-10"}
	e.Score = ScoreEntry(e)
	_, err := repo.Create("user-a", e)
	require.NoError(t, err)

	other, err := repo.ListSince("user-b", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRepositoryListRecentOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db, zerolog.Nop())

	clock := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	for _, date := range []string{"2024-06-10", "2024-06-11", "2024-06-12"} {
		e := Entry{TradingDate: date}
		e.Score = ScoreEntry(e)
		_, err := repo.Create("user-1", e)
		require.NoError(t, err)
		clock = clock.AddDate(0, 0, 1)
	}

	recent, err := repo.ListRecent("user-1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-06-12", recent[0].TradingDate)
	assert.Equal(t, "2024-06-11", recent[1].TradingDate)
}
