// Package evalstore persists evaluation inputs to a local JSON blob or SQLite file.
package evalstore

import (
	"sync"

	"github.com/huangsam/appraise/internal/contract"
)

// EvalStoreManager owns the active EvaluationStore.
type EvalStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	evaluations  contract.EvaluationStore
}

var _ contract.StoreManager = &EvalStoreManager{} // Compile-time check

// GetEvaluationStore returns the active EvaluationStore.
func (mgr *EvalStoreManager) GetEvaluationStore() contract.EvaluationStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.evaluations
}
