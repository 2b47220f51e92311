// Package cache stores analysis results keyed by image content hash,
// so re-running a folder only sends unseen photographs to the analysis
// provider. Entries carry a schema version; rows written by an
// incompatible version are treated as missing.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// schemaVersion guards stored result payloads. Bump when the
// AnalysisResult wire format changes incompatibly.
const schemaVersion = 1

// Store is a SQLite-backed analysis result cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the cache database inside dataDir.
// If dataDir is empty, defaults to ~/.shashin/data.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shashin", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "analysis-cache.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.bootstrap(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// bootstrap creates the entries table when absent.
func (s *Store) bootstrap() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			hash       TEXT NOT NULL UNIQUE,
			file_name  TEXT NOT NULL,
			file_size  INTEGER NOT NULL,
			version    INTEGER NOT NULL,
			result     TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating entries table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached result for a content hash.
// Returns domain.ErrNotFound when absent, and domain.ErrCacheVersion
// when the row was written by an incompatible schema version.
func (s *Store) Get(hash string) (*domain.AnalysisResult, error) {
	var version int
	var payload string

	row := s.db.QueryRow("SELECT version, result FROM entries WHERE hash = ?", hash)
	if err := row.Scan(&version, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("querying cache entry: %w", err)
	}

	if version != schemaVersion {
		return nil, domain.ErrCacheVersion
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decoding cached result: %w", err)
	}
	return &result, nil
}

// Put stores (or replaces) the result for a content hash.
func (s *Store) Put(hash, fileName string, fileSize int64, result *domain.AnalysisResult) error {
	if hash == "" || result == nil {
		return domain.ErrInvalidInput
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (id, hash, file_name, file_size, version, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			file_name = excluded.file_name,
			file_size = excluded.file_size,
			version   = excluded.version,
			result    = excluded.result,
			created_at = excluded.created_at
	`, uuid.New().String(), hash, fileName, fileSize, schemaVersion, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len() (int, error) {
	var n int
	row := s.db.QueryRow("SELECT COUNT(*) FROM entries")
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}

// Clear removes all cached entries.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// HashFile returns the hex SHA-256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
