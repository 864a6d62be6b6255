// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/appraise/schema"
)

// Sentinel errors for lookups against the roster and rule book.
var (
	ErrUnknownTask     = errors.New("unknown task")
	ErrUnknownAssignee = errors.New("unknown assignee")
	ErrUnknownMetric   = errors.New("unknown metric")
)

// StoreManager defines the interface for managing the evaluation store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetEvaluationStore() EvaluationStore
}

// EvaluationStore persists raw evaluation inputs keyed by (period, task).
// Get returns nil without error when the record does not exist.
type EvaluationStore interface {
	Get(ctx context.Context, period, taskID string) (*schema.TaskEvaluationData, error)
	Set(ctx context.Context, period, taskID string, data schema.TaskEvaluationData) error

	// LoadAll returns the whole persisted blob. An empty store yields an empty map.
	LoadAll(ctx context.Context) (schema.EvaluationMap, error)

	// SaveAll merges every entry of the map into the store.
	SaveAll(ctx context.Context, evals schema.EvaluationMap) error

	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// RosterSource supplies assignees and tasks. It is injected so the scoring
// engine never depends on where people and work items come from.
type RosterSource interface {
	Assignees() []schema.Assignee
	Tasks(period string) []schema.Task
}

// FeedbackClient turns an evaluation result into narrative feedback.
// It always returns a string; failures come back as a readable message.
type FeedbackClient interface {
	Review(ctx context.Context, result schema.EvaluationResult) string
}
