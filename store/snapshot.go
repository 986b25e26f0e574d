package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dfcarvalho/barberdesk/constants"
	"github.com/dfcarvalho/barberdesk/util"
)

// SnapshotStore is the durable key-value slot each store persists its full
// collection into. One named slot per store.
type SnapshotStore interface {
	Load(ctx context.Context, name string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, name string, payload []byte) error
	Close() error
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	EnableWAL       bool
}

// DefaultDatabaseConfig returns sensible defaults for database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 5 * time.Minute,
		EnableWAL:       true,
	}
}

// SnapshotOptions configures snapshot store creation
type SnapshotOptions struct {
	BasePath string
	Config   DatabaseConfig
}

// DefaultSnapshotOptions returns sensible defaults for snapshot store creation
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{Config: DefaultDatabaseConfig()}
}

type sqliteSnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore opens (and if needed creates) the SQLite-backed snapshot
// database under BasePath/.data.
func NewSnapshotStore(opts SnapshotOptions) (SnapshotStore, error) {
	db, err := createSQLiteDatabaseWithPath(constants.SnapshotDatabaseName, opts.BasePath, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("could not create sqlite db: %w", err)
	}

	if err := createSnapshotsTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create snapshots table: %w", err)
	}

	return &sqliteSnapshotStore{db}, nil
}

func (s *sqliteSnapshotStore) Load(ctx context.Context, name string) ([]byte, bool, error) {
	query := `SELECT payload FROM snapshots WHERE name = ?`

	var payload []byte
	err := util.Retry(ctx, defaultRetryConfig, func() error {
		row := s.db.QueryRowContext(ctx, query, name)
		return row.Scan(&payload)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}

	return payload, true, nil
}

func (s *sqliteSnapshotStore) Save(ctx context.Context, name string, payload []byte) error {
	query := `INSERT INTO snapshots (name, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`

	err := util.Retry(ctx, defaultRetryConfig, func() error {
		_, execErr := s.db.ExecContext(ctx, query, name, payload, time.Now().UnixMilli())
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	return nil
}

func (s *sqliteSnapshotStore) Close() error {
	return s.db.Close()
}

func createSnapshotsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	);`

	_, err := db.Exec(query)
	return err
}

func createSQLiteDatabaseWithPath(name, basePath string, config DatabaseConfig) (*sql.DB, error) {
	var dir string
	if basePath != "" {
		dir = filepath.Join(basePath, constants.DefaultDataDir)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get working directory: %w", err)
		}
		dir = filepath.Join(wd, constants.DefaultDataDir)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return nil, fmt.Errorf("could not create data dir: %w", err)
		}
	}

	file := filepath.Join(dir, fmt.Sprintf("%s.db", name))

	dsn := fmt.Sprintf("file:%s", file)
	if config.EnableWAL {
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		dsn += "?journal_mode=WAL&busy_timeout=0&synchronous=FULL"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite db: %w", err)
	}

	// Single connection to prevent lock contention
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	return db, nil
}

// isSQLiteBusyError checks if an error is a SQLite BUSY error that should be retried
func isSQLiteBusyError(err error) bool {
	if err == nil {
		return false
	}
	errorStr := err.Error()
	return strings.Contains(errorStr, "database is locked") ||
		strings.Contains(errorStr, "SQLITE_BUSY")
}

// defaultRetryConfig provides the standard retry configuration for all SQLite operations
var defaultRetryConfig = util.RetryConfig{
	MaxRetries:      5,
	BaseDelay:       10 * time.Millisecond,
	MaxDelay:        1 * time.Second,
	ShouldRetryFunc: isSQLiteBusyError,
}

// snapshotEnvelope wraps a serialized collection together with its schema
// version so incompatible payloads can be rejected on load.
type snapshotEnvelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

func encodeSnapshot(items any) ([]byte, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot items: %w", err)
	}
	payload, err := json.Marshal(snapshotEnvelope{
		Version: constants.SnapshotSchemaVersion,
		Items:   raw,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot envelope: %w", err)
	}
	return payload, nil
}

func decodeSnapshot(payload []byte, items any) error {
	var env snapshotEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("failed to decode snapshot envelope: %w", err)
	}
	if env.Version != constants.SnapshotSchemaVersion {
		return fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	if err := json.Unmarshal(env.Items, items); err != nil {
		return fmt.Errorf("failed to decode snapshot items: %w", err)
	}
	return nil
}
