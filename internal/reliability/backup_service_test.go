package reliability

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraft/journal/internal/database"
)

// mockObjectStore is a hand-written in-memory ObjectStore.
type mockObjectStore struct {
	objects map[string][]byte
	deleted []string
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{objects: make(map[string][]byte)}
}

func (m *mockObjectStore) Upload(_ context.Context, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *mockObjectStore) List(_ context.Context, prefix string) ([]types.Object, error) {
	var objects []types.Object
	for key, data := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			objects = append(objects, types.Object{
				Key:  aws.String(key),
				Size: aws.Int64(int64(len(data))),
			})
		}
	}
	return objects, nil
}

func (m *mockObjectStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockObjectStore) addBackup(svc *BackupService, stamp time.Time) {
	m.objects[svc.key("backup-"+stamp.Format(archiveStampFormat)+".tar.gz")] = []byte("archive")
}

func newBackupService(t *testing.T, store ObjectStore, retentionDays int, databases ...*database.DB) *BackupService {
	t.Helper()
	return NewBackupService(store, databases, t.TempDir(), "journal-backups", retentionDays, zerolog.Nop())
}

func TestCreateAndUpload(t *testing.T) {
	dir := t.TempDir()
	db, err := database.New(database.Config{
		Path:    dir + "/journal.db",
		Profile: database.ProfileJournal,
		Name:    "journal",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Conn().Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)
	_, err = db.Conn().Exec(`INSERT INTO notes (body) VALUES ('hello')`)
	require.NoError(t, err)

	store := newMockObjectStore()
	svc := newBackupService(t, store, 0, db)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 2, 30, 0, 0, time.UTC) }

	require.NoError(t, svc.CreateAndUpload(context.Background()))

	archive, ok := store.objects["journal-backups/backup-2024-06-10-023000.tar.gz"]
	require.True(t, ok, "archive not uploaded under expected key")

	names := tarEntryNames(t, archive)
	assert.Contains(t, names, "journal.db")
	assert.Contains(t, names, "backup-metadata.json")
}

func TestRotateOldBackupsKeepsMinimum(t *testing.T) {
	store := newMockObjectStore()
	svc := newBackupService(t, store, 7)

	now := time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// All three are far past retention but must survive the floor.
	for i := 0; i < 3; i++ {
		store.addBackup(svc, now.AddDate(0, 0, -30-i))
	}

	require.NoError(t, svc.RotateOldBackups(context.Background()))
	assert.Empty(t, store.deleted)
}

func TestRotateOldBackupsDeletesExpired(t *testing.T) {
	store := newMockObjectStore()
	svc := newBackupService(t, store, 7)

	now := time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// Three recent backups fill the floor, two stale ones should go.
	for i := 0; i < 3; i++ {
		store.addBackup(svc, now.AddDate(0, 0, -i))
	}
	store.addBackup(svc, now.AddDate(0, 0, -10))
	store.addBackup(svc, now.AddDate(0, 0, -20))

	require.NoError(t, svc.RotateOldBackups(context.Background()))

	assert.Len(t, store.deleted, 2)
	assert.Len(t, store.objects, 3)
}

func TestRotateOldBackupsZeroRetentionKeepsAll(t *testing.T) {
	store := newMockObjectStore()
	svc := newBackupService(t, store, 0)

	now := time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 6; i++ {
		store.addBackup(svc, now.AddDate(0, 0, -100-i))
	}

	require.NoError(t, svc.RotateOldBackups(context.Background()))
	assert.Empty(t, store.deleted)
}

func TestListBackupsSortsNewestFirstAndSkipsJunk(t *testing.T) {
	store := newMockObjectStore()
	svc := newBackupService(t, store, 7)

	now := time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)
	store.addBackup(svc, now.AddDate(0, 0, -2))
	store.addBackup(svc, now)
	store.addBackup(svc, now.AddDate(0, 0, -1))
	store.objects[svc.key("backup-garbage.tar.gz")] = []byte("junk")

	backups, err := svc.ListBackups(context.Background())
	require.NoError(t, err)

	require.Len(t, backups, 3)
	assert.True(t, backups[0].Timestamp.After(backups[1].Timestamp))
	assert.True(t, backups[1].Timestamp.After(backups[2].Timestamp))
}

func tarEntryNames(t *testing.T, archive []byte) []string {
	t.Helper()

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	require.NoError(t, err)
	defer gz.Close()

	var names []string
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, header.Name)
	}
	return names
}
