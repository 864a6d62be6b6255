package core

import (
	"context"
	"fmt"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/roster"
	"github.com/huangsam/appraise/schema"
)

// loadBook reads every stored record into a Book for the configured period.
func loadBook(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore) (*Book, error) {
	evals, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}
	return NewBook(cfg.Period, cfg.Rules, cfg.DefaultQualitative, evals), nil
}

// loadTaskBook reads the single record of task into a Book and seeds it when absent.
// The seeded record lives in memory only until a write persists it.
func loadTaskBook(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore, task schema.Task) (*Book, error) {
	data, err := store.Get(ctx, cfg.Period, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation for task %s: %w", task.ID, err)
	}
	evals := schema.EvaluationMap{}
	if data != nil {
		evals[schema.EvaluationKey(cfg.Period, task.ID)] = *data
	}
	book := NewBook(cfg.Period, cfg.Rules, cfg.DefaultQualitative, evals)
	book.Ensure(task)
	return book, nil
}

// GetTaskResult scores the configured task for the configured period.
func GetTaskResult(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore, src contract.RosterSource) (schema.TaskResult, error) {
	task, err := roster.FindTask(src, cfg.Period, cfg.TaskID)
	if err != nil {
		return schema.TaskResult{}, err
	}
	book, err := loadTaskBook(ctx, cfg, store, task)
	if err != nil {
		return schema.TaskResult{}, err
	}
	return schema.TaskResult{Task: task, Period: cfg.Period, Result: book.ScoreTask(task)}, nil
}

// GetAssigneeResult builds the comprehensive result of the configured assignee.
// Tasks without a stored record are scored from seeded defaults, as in GetTaskResult.
func GetAssigneeResult(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore, src contract.RosterSource) (schema.AssigneeResult, error) {
	assignee, err := roster.FindAssignee(src, cfg.AssigneeID)
	if err != nil {
		return schema.AssigneeResult{}, err
	}
	book, err := loadBook(ctx, cfg, store)
	if err != nil {
		return schema.AssigneeResult{}, err
	}
	return assigneeResult(book, src, assignee), nil
}

// GetRanking builds comprehensive results for every assignee and ranks them.
func GetRanking(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore, src contract.RosterSource) ([]schema.AssigneeResult, error) {
	book, err := loadBook(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	assignees := src.Assignees()
	results := make([]schema.AssigneeResult, 0, len(assignees))
	for _, a := range assignees {
		results = append(results, assigneeResult(book, src, a))
	}
	return algo.RankAssignees(results, cfg.Limit), nil
}

func assigneeResult(book *Book, src contract.RosterSource, assignee schema.Assignee) schema.AssigneeResult {
	tasks := roster.TasksFor(src, book.Period(), assignee.ID)
	book.Ensure(tasks...) // in memory only; reads never persist
	return schema.AssigneeResult{
		Assignee: assignee,
		Period:   book.Period(),
		Result:   book.Aggregate(tasks),
	}
}
