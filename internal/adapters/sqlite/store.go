// Package sqlite keeps crawl history in a local SQLite database so every
// crawled file keeps the same GUID across crawls.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.MetadataStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements MetadataStore
var _ ports.MetadataStore = (*Store)(nil)

// NewStore creates a store backed by the database at dbPath
func NewStore(dbPath string) *Store {
	if strings.HasPrefix(dbPath, "~") {
		home, _ := os.UserHomeDir()
		dbPath = filepath.Join(home, dbPath[1:])
	}
	return &Store{dbPath: dbPath, now: time.Now}
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Open creates the database and schema when missing
func (s *Store) Open(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	// WAL lets the TUI read while a crawl writes
	db, err := sql.Open("sqlite", s.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.ExecContext(ctx, `
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			guid TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			first_seen INTEGER NOT NULL,
			last_seen INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_files_name ON files(name);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Lookup returns the stored file for an absolute path, or nil when the path
// has never been crawled
func (s *Store) Lookup(ctx context.Context, path string) (*domain.StoredFile, error) {
	var f domain.StoredFile
	err := s.db.QueryRowContext(ctx, `
		SELECT guid, path, name, mtime, first_seen, last_seen
		FROM files WHERE path = ?
	`, path).Scan(&f.GUID, &f.Path, &f.Name, &f.Mtime, &f.FirstSeen, &f.LastSeen)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", path, err)
	}
	return &f, nil
}

// Search returns files whose name contains query, ignoring case
func (s *Store) Search(ctx context.Context, query string) ([]domain.StoredFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT guid, path, name, mtime, first_seen, last_seen
		FROM files
		WHERE instr(lower(name), lower(?)) > 0
		ORDER BY path
	`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search files: %w", err)
	}
	defer rows.Close()

	var files []domain.StoredFile
	for rows.Next() {
		var f domain.StoredFile
		if err := rows.Scan(&f.GUID, &f.Path, &f.Name, &f.Mtime, &f.FirstSeen, &f.LastSeen); err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// LastSync returns when Sync last completed, or the zero time
func (s *Store) LastSync(ctx context.Context) (time.Time, error) {
	var unix int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last sync: %w", err)
	}
	return time.Unix(unix, 0), nil
}

// DatabasePath returns the default database location for a root folder
func DatabasePath(root string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "pyxidust", hashRoot(root)+".db")
}

// hashRoot returns a short hash of the root path
func hashRoot(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8])
}
