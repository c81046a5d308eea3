package metrics

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists dashboard counters in the metrics table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a MetricsStore backed by db.
func New(db *sql.DB) MetricsStore {
	return &store{db: db}
}

// Increment bumps the counter for key, creating it at one. Failures are
// logged; a lost dashboard tick never fails the caller.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment dashboard counter", "error", err, "key", key)
		return
	}
	log.Debug("Incremented dashboard counter", "key", key)
}

// GetAll returns every counter keyed by name.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
