package evalstore

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &EvalStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// NewStore opens the store for the given backend. An empty path falls back
// to the default file location of the backend.
func NewStore(backend schema.StoreBackend, path string) (contract.EvaluationStore, error) {
	if path == "" {
		path = contract.GetStoreFilePath(backend)
	}
	switch backend {
	case schema.BlobBackend:
		return NewBlobStore(path), nil
	case schema.SQLiteBackend:
		return NewSQLiteStore(path)
	case schema.NoneBackend:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be blob, sqlite, or none", backend)
	}
}

// InitStores initializes the global manager with the configured store.
func InitStores(backend schema.StoreBackend, path string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewStore(backend, path)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize evaluation store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.evaluations = store
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.evaluations != nil {
			_ = Manager.evaluations.Close()
		}
	})
}

// ClearStore deletes everything persisted by the backend.
// For blob and SQLite it removes the file. For NoneBackend it does nothing.
func ClearStore(backend schema.StoreBackend, path string) error {
	switch backend {
	case schema.BlobBackend, schema.SQLiteBackend:
		if path == "" {
			return fmt.Errorf("path cannot be empty for %s backend", backend)
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove store file %s: %w", path, err)
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}
