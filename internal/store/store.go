// Package store persists signing records using SQLite. The signing core
// itself keeps no state; the store exists so the CLI can show what was
// signed and re-print raw transactions for rebroadcast.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrRecordNotFound = errors.New("store: record not found")

// Store wraps the SQLite database holding signing records.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds store configuration.
type Config struct {
	DataDir string
}

// Record is one signed transaction.
type Record struct {
	ID        string
	Chain     string // chain symbol (BTC, ETH, ...)
	Network   string
	TxID      string
	Recipient string
	Amount    string // base units as decimal text, EVM values exceed int64
	Raw       string // hex or base58 transaction, chain convention
	CreatedAt time.Time
}

// Open opens (creating if needed) the database under cfg.DataDir.
func Open(cfg *Config) (*Store, error) {
	dataDir := expandPath(cfg.DataDir)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "klingsign.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS signings (
		id TEXT PRIMARY KEY,
		chain TEXT NOT NULL,
		network TEXT NOT NULL,
		txid TEXT NOT NULL,
		recipient TEXT,
		amount TEXT,
		raw TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_signings_txid ON signings(txid);
	CREATE INDEX IF NOT EXISTS idx_signings_chain ON signings(chain, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRecord inserts a signing record, assigning an id when empty.
func (s *Store) SaveRecord(r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO signings (id, chain, network, txid, recipient, amount, raw, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Chain, r.Network, r.TxID, r.Recipient, r.Amount, r.Raw, r.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// GetByTxID returns the record for a transaction id.
func (s *Store) GetByTxID(txid string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, chain, network, txid, recipient, amount, raw, created_at
		 FROM signings WHERE txid = ?`, txid)
	return scanRecord(row)
}

// ListRecent returns up to limit records, newest first, optionally
// filtered by chain symbol.
func (s *Store) ListRecent(chain string, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, chain, network, txid, recipient, amount, raw, created_at
		 FROM signings`
	args := []interface{}{}
	if chain != "" {
		query += ` WHERE chain = ?`
		args = append(args, chain)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	var createdAt int64
	err := row.Scan(&r.ID, &r.Chain, &r.Network, &r.TxID, &r.Recipient, &r.Amount, &r.Raw, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}
	r.CreatedAt = time.Unix(createdAt, 0)
	return &r, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
