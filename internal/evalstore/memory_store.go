package evalstore

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// MemoryStore is the NoneBackend store. Nothing outlives the process.
type MemoryStore struct {
	mu      sync.RWMutex
	evals   schema.EvaluationMap
	updated time.Time
}

var _ contract.EvaluationStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{evals: schema.EvaluationMap{}}
}

// Get returns the record for (period, taskID), or nil when it does not exist.
func (s *MemoryStore) Get(_ context.Context, period, taskID string) (*schema.TaskEvaluationData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.evals[schema.EvaluationKey(period, taskID)]
	if !ok {
		return nil, nil
	}
	clone := data.Clone()
	return &clone, nil
}

// Set replaces the record for (period, taskID).
func (s *MemoryStore) Set(_ context.Context, period, taskID string, data schema.TaskEvaluationData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals[schema.EvaluationKey(period, taskID)] = data.Clone()
	s.updated = time.Now()
	return nil
}

// LoadAll returns a copy of every record.
func (s *MemoryStore) LoadAll(_ context.Context) (schema.EvaluationMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evals.Clone(), nil
}

// SaveAll merges evals into the store.
func (s *MemoryStore) SaveAll(_ context.Context, evals schema.EvaluationMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range evals {
		s.evals[k] = v.Clone()
	}
	s.updated = time.Now()
	return nil
}

// GetStatus reports the number of records held.
func (s *MemoryStore) GetStatus() (schema.StoreStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return schema.StoreStatus{
		Backend:        string(schema.NoneBackend),
		Location:       "memory",
		Connected:      true,
		TotalEntries:   len(s.evals),
		LastUpdateTime: s.updated,
	}, nil
}

// Close drops every record.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals = schema.EvaluationMap{}
	return nil
}
