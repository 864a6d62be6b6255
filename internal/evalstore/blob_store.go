package evalstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// BlobStore keeps the whole evaluation map in one JSON file.
// Every write rewrites the file through a temp file and a rename.
type BlobStore struct {
	mu   sync.Mutex
	path string
}

var _ contract.EvaluationStore = &BlobStore{} // Compile-time check

// NewBlobStore returns a store backed by the JSON file at path.
// The file is created lazily on the first write.
func NewBlobStore(path string) *BlobStore {
	return &BlobStore{path: path}
}

// Get returns the record for (period, taskID), or nil when it does not exist.
func (s *BlobStore) Get(_ context.Context, period, taskID string) (*schema.TaskEvaluationData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evals, err := s.read()
	if err != nil {
		return nil, err
	}
	data, ok := evals[schema.EvaluationKey(period, taskID)]
	if !ok {
		return nil, nil
	}
	return &data, nil
}

// Set replaces the record for (period, taskID).
func (s *BlobStore) Set(_ context.Context, period, taskID string, data schema.TaskEvaluationData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	evals, err := s.read()
	if err != nil {
		return err
	}
	evals[schema.EvaluationKey(period, taskID)] = data.Clone()
	return s.write(evals)
}

// LoadAll returns every stored record.
func (s *BlobStore) LoadAll(_ context.Context) (schema.EvaluationMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// SaveAll merges evals into the file.
func (s *BlobStore) SaveAll(_ context.Context, evals schema.EvaluationMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	for k, v := range evals {
		current[k] = v.Clone()
	}
	return s.write(current)
}

// GetStatus reports the file location, record count and size.
func (s *BlobStore) GetStatus() (schema.StoreStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := schema.StoreStatus{
		Backend:   string(schema.BlobBackend),
		Location:  s.path,
		Connected: true,
	}

	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to stat blob file: %w", err)
	}

	evals, err := s.read()
	if err != nil {
		return status, err
	}
	status.TotalEntries = len(evals)
	status.LastUpdateTime = info.ModTime()
	status.SizeBytes = info.Size()
	return status, nil
}

// Close is a no-op; the file is not held open between calls.
func (s *BlobStore) Close() error {
	return nil
}

// read loads the file. A missing or empty file is an empty map.
func (s *BlobStore) read() (schema.EvaluationMap, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return schema.EvaluationMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob file %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return schema.EvaluationMap{}, nil
	}

	var evals schema.EvaluationMap
	if err := json.Unmarshal(raw, &evals); err != nil {
		return nil, fmt.Errorf("failed to parse blob file %s: %w", s.path, err)
	}
	if evals == nil {
		evals = schema.EvaluationMap{}
	}
	return evals, nil
}

func (s *BlobStore) write(evals schema.EvaluationMap) error {
	raw, err := json.MarshalIndent(evals, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode evaluations: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace blob file %s: %w", s.path, err)
	}
	return nil
}
