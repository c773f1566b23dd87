// Package history records interpreter runs in a SQLite database.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/chazu/brainruck/vm"
)

// Run statuses.
const (
	StatusOK             = "ok"
	StatusInvalidProgram = "invalid-program"
	StatusTapeUnderflow  = "tape-underflow"
	StatusStepLimit      = "step-limit"
	StatusIOError        = "io-error"
)

// Run is one recorded execution.
type Run struct {
	ID          string
	Program     string // source path as given on the command line
	Digest      string // hex SHA-256 of the program bytes
	Status      string
	Steps       uint64
	OutputBytes int64
	StartedAt   time.Time
	Duration    time.Duration
}

// NewRun starts a record for program, stamping a fresh ID, the program
// digest and the current time.
func NewRun(path string, program []byte) Run {
	return Run{
		ID:        uuid.NewString(),
		Program:   path,
		Digest:    Digest(program),
		StartedAt: time.Now().UTC(),
	}
}

// Digest returns the hex SHA-256 of program.
func Digest(program []byte) string {
	sum := sha256.Sum256(program)
	return hex.EncodeToString(sum[:])
}

// StatusOf classifies a Run error.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, vm.ErrInvalidProgram):
		return StatusInvalidProgram
	case errors.Is(err, vm.ErrTapeUnderflow):
		return StatusTapeUnderflow
	case errors.Is(err, vm.ErrStepLimit):
		return StatusStepLimit
	default:
		return StatusIOError
	}
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the run log at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		program      TEXT NOT NULL,
		digest       TEXT NOT NULL,
		status       TEXT NOT NULL,
		steps        INTEGER NOT NULL,
		output_bytes INTEGER NOT NULL,
		started_at   INTEGER NOT NULL,
		duration_ns  INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record saves a run.
func (s *Store) Record(r Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO runs (id, program, digest, status, steps, output_bytes, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Program, r.Digest, r.Status, int64(r.Steps), r.OutputBytes,
		r.StartedAt.UnixNano(), int64(r.Duration),
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, program, digest, status, steps, output_bytes, started_at, duration_ns
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			steps             int64
			started, duration int64
		)
		if err := rows.Scan(&r.ID, &r.Program, &r.Digest, &r.Status, &steps, &r.OutputBytes, &started, &duration); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Steps = uint64(steps)
		r.StartedAt = time.Unix(0, started).UTC()
		r.Duration = time.Duration(duration)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
