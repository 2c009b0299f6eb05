// Package memory is an in-memory row source used by tests and seeded runs.
package memory

import (
	"context"
	"sync"

	"matumizi/internal/source"
)

type Store struct {
	mu   sync.Mutex
	rows []source.Row
}

var _ source.RowReader = (*Store)(nil)

func New(rows []source.Row) *Store {
	return &Store{rows: append([]source.Row(nil), rows...)}
}

func (s *Store) ReadRows(_ context.Context) ([]source.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]source.Row(nil), s.rows...), nil
}

// Append adds rows after construction; handy for building fixtures.
func (s *Store) Append(rows ...source.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}
