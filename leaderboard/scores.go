package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/plus3/rowbreak/store"
)

// Scores stores submitted records.
type Scores interface {
	Add(ctx context.Context, r Record) error
	// Top returns at most limit records, highest score first. Equal scores
	// keep submission order.
	Top(ctx context.Context, limit int) ([]Record, error)
}

// MemoryScores keeps every record in memory.
type MemoryScores struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryScores() *MemoryScores {
	return &MemoryScores{}
}

func (m *MemoryScores) Add(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *MemoryScores) Top(ctx context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	ranked := Ranked(m.records)
	m.mu.RUnlock()

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// SQLiteScores keeps records in a SQLite table.
type SQLiteScores struct {
	db *sql.DB
}

// OpenSQLiteScores opens the database at path and creates the scores table
// when missing.
func OpenSQLiteScores(path string) (*SQLiteScores, error) {
	db, err := store.OpenDB(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS scores (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		score      INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS scores_rank ON scores (score DESC, id)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create scores index: %w", err)
	}
	return &SQLiteScores{db: db}, nil
}

func (s *SQLiteScores) Add(ctx context.Context, r Record) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO scores (name, score) VALUES (?, ?)`, r.Name, r.Score); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *SQLiteScores) Top(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, score FROM scores ORDER BY score DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, max(limit, 0))
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Name, &r.Score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteScores) Close() error {
	return s.db.Close()
}
