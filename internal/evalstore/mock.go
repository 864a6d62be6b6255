package evalstore

import (
	"context"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetEvaluationStore implements the StoreManager interface.
func (m *MockStoreManager) GetEvaluationStore() contract.EvaluationStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.EvaluationStore)
	return store
}

// MockEvaluationStore is a mock implementation of EvaluationStore for testing.
type MockEvaluationStore struct {
	mock.Mock
}

var _ contract.EvaluationStore = &MockEvaluationStore{} // Compile-time check

// Get implements the EvaluationStore interface.
func (m *MockEvaluationStore) Get(ctx context.Context, period, taskID string) (*schema.TaskEvaluationData, error) {
	args := m.Called(ctx, period, taskID)
	data, _ := args.Get(0).(*schema.TaskEvaluationData)
	return data, args.Error(1)
}

// Set implements the EvaluationStore interface.
func (m *MockEvaluationStore) Set(ctx context.Context, period, taskID string, data schema.TaskEvaluationData) error {
	args := m.Called(ctx, period, taskID, data)
	return args.Error(0)
}

// LoadAll implements the EvaluationStore interface.
func (m *MockEvaluationStore) LoadAll(ctx context.Context) (schema.EvaluationMap, error) {
	args := m.Called(ctx)
	evals, _ := args.Get(0).(schema.EvaluationMap)
	return evals, args.Error(1)
}

// SaveAll implements the EvaluationStore interface.
func (m *MockEvaluationStore) SaveAll(ctx context.Context, evals schema.EvaluationMap) error {
	args := m.Called(ctx, evals)
	return args.Error(0)
}

// GetStatus implements the EvaluationStore interface.
func (m *MockEvaluationStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the EvaluationStore interface.
func (m *MockEvaluationStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
