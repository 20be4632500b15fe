// Package memory implements the ledger substrate in process memory. It backs
// unit tests and local development; history grows per key exactly as a real
// substrate's change stream would.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"seguros/internal/ledger"
)

// Store is an in-memory substrate. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   map[string][]byte
	history map[string][]ledger.KeyModification
	private map[string]map[string][]byte
}

// New creates an empty in-memory substrate.
func New() *Store {
	return &Store{
		state:   make(map[string][]byte),
		history: make(map[string][]ledger.KeyModification),
		private: make(map[string]map[string][]byte),
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.state[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)

	s.state[key] = stored
	s.history[key] = append(s.history[key], ledger.KeyModification{
		TxID:      uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Value:     stored,
	})
	return nil
}

func (s *Store) History(_ context.Context, key string) (ledger.HistoryIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Snapshot so the iterator never observes writes committed after it was
	// opened.
	mods := make([]ledger.KeyModification, len(s.history[key]))
	copy(mods, s.history[key])
	return &iterator{mods: mods}, nil
}

func (s *Store) GetPrivate(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.private[collection][key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) PutPrivate(_ context.Context, collection, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.private[collection] == nil {
		s.private[collection] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.private[collection][key] = stored
	return nil
}

type iterator struct {
	mods []ledger.KeyModification
	pos  int
}

func (it *iterator) Next() (*ledger.KeyModification, error) {
	if it.pos >= len(it.mods) {
		return nil, nil
	}
	mod := it.mods[it.pos]
	it.pos++
	return &mod, nil
}

func (it *iterator) Close() error {
	return nil
}
