package store

import (
	"sync"

	"github.com/latoulicious/boosterbot/pkg/booster"
)

// MemoryStore keeps records in memory only. It is the store used by tests
// and by the bot when no persistence is configured.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*booster.PlayerRecord

	// FailLoad and FailSave, when set, are returned instead of doing the work
	FailLoad error
	FailSave error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*booster.PlayerRecord)}
}

// Load returns a copy of the stored record
func (m *MemoryStore) Load(userID string) (*booster.PlayerRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailLoad != nil {
		return nil, false, m.FailLoad
	}
	rec, ok := m.records[userID]
	if !ok {
		return nil, false, nil
	}
	return rec.Clone(), true, nil
}

// Save stores a copy of rec
func (m *MemoryStore) Save(userID string, rec *booster.PlayerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	m.records[userID] = rec.Clone()
	return nil
}

// Len returns the number of stored users
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
