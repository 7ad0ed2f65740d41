package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// TestNewDB_CreatesDirectory verifies that NewDB creates the parent directory if missing.
func TestNewDB_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "registrations.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err, "NewDB should succeed even with nested non-existent directories")
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err, "Directory should exist after NewDB")
	require.True(t, info.IsDir(), "Should be a directory")

	// Windows doesn't support Unix permissions
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0700), info.Mode().Perm(), "Directory should have 0700 permissions")
	}
}

// TestNewDB_RunsMigrations verifies that NewDB runs migrations and creates the registrations table.
func TestNewDB_RunsMigrations(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "registrations.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err, "NewDB should succeed")
	defer db.Close()

	var tableName string
	err = db.conn.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='registrations'",
	).Scan(&tableName)
	require.NoError(t, err, "registrations table should exist after migrations")
	require.Equal(t, "registrations", tableName)
}

// TestNewDB_PreMigrationBackup verifies that a .bak file is created before
// migrations when an existing database file is present.
func TestNewDB_PreMigrationBackup(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "registrations.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err, "First NewDB should succeed")

	rec, err := domain.NewRecord(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), domain.CategoryTwoWheeler, "HeroX", 100)
	require.NoError(t, err)
	require.NoError(t, db1.RecordRepository().SaveBatch([]*domain.Record{rec}))
	require.NoError(t, db1.Close())

	// Open again - this should create a backup first.
	db2, err := NewDB(dbPath)
	require.NoError(t, err, "Second NewDB should succeed")
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err, "Backup file should exist after second NewDB")
	require.False(t, info.IsDir(), "Backup should be a file")
	require.Greater(t, info.Size(), int64(0), "Backup file should have content")
}

// TestNewDB_WALMode verifies that WAL mode is enabled via PRAGMA query.
func TestNewDB_WALMode(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "registrations.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	err = db.conn.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	require.Equal(t, "wal", mode)
}

// TestNewDB_MigrationsAreIdempotent verifies reopening an existing database succeeds.
func TestNewDB_MigrationsAreIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "registrations.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "reopening with no pending migrations should succeed")
	require.NoError(t, db2.Close())
}

// TestNewDB_SchemaRejectsBadRows verifies the CHECK constraints hold at the SQL level.
func TestNewDB_SchemaRejectsBadRows(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "registrations.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.conn.Exec(
		`INSERT INTO registrations (batch_id, date, category, manufacturer, count, created_at)
		 VALUES ('b', '2024-01-01', 'bus', 'HeroX', 10, 0)`)
	require.Error(t, err, "unknown category should violate CHECK constraint")

	_, err = db.conn.Exec(
		`INSERT INTO registrations (batch_id, date, category, manufacturer, count, created_at)
		 VALUES ('b', '2024-01-01', '2W', 'HeroX', -1, 0)`)
	require.Error(t, err, "negative count should violate CHECK constraint")
}
