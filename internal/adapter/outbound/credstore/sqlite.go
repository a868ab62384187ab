package credstore

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quillpress/quillctl/internal/domain/credential"
	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// SQLiteStore implements credential.Store on a local sqlite database.
// The database holds a single credential row; Set and Clear are
// transactional so readers never observe a half-replaced pair.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	access  TEXT NOT NULL,
	refresh TEXT NOT NULL
);`

// OpenSQLiteStore opens (creating if needed) the credential database at the
// given path. The file is created with 0600 permissions.
func OpenSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create credential dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}
	// sqlite allows a single writer; a second connection would only queue
	// behind SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init credential schema: %w", err)
	}

	if err := os.Chmod(path, 0600); err != nil {
		logger.Warn("failed to set permissions on credential db", "error", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Get retrieves the stored credential pair.
func (s *SQLiteStore) Get() (credential.Pair, error) {
	var pair credential.Pair
	row := s.db.QueryRow(`SELECT access, refresh FROM credentials WHERE id = 1`)
	if err := row.Scan(&pair.Access, &pair.Refresh); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return credential.Pair{}, credential.ErrNoCredentials
		}
		return credential.Pair{}, fmt.Errorf("read credentials: %w", err)
	}
	return pair, nil
}

// Set replaces the stored pair.
func (s *SQLiteStore) Set(pair credential.Pair) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (id, access, refresh) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET access = excluded.access, refresh = excluded.refresh`,
		pair.Access, pair.Refresh)
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	s.logger.Debug("credentials saved")
	return nil
}

// Clear removes the stored pair. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	s.logger.Debug("credentials cleared")
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
