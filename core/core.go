// Package core has core logic for scoring, aggregation and ranking.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/outwriter"
	"github.com/huangsam/appraise/internal/parquet"
	"github.com/huangsam/appraise/internal/roster"
	"github.com/huangsam/appraise/schema"
)

// ExecutorFunc defines the function signature for the read-only scoring commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource) error

// ExecuteTaskScore scores one task and prints the result.
// It serves as the main entry point for 'score task'.
func ExecuteTaskScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource) error {
	start := time.Now()
	res, err := GetTaskResult(ctx, cfg, mgr.GetEvaluationStore(), src)
	if err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogScoreHeader(cfg, fmt.Sprintf("%s (%s)", res.Task.Name, res.Task.ID))
	}
	return outwriter.PrintTaskResult(res, cfg, time.Since(start))
}

// ExecuteAssigneeScore builds the comprehensive result of one assignee and prints it.
// It serves as the main entry point for 'score assignee'.
func ExecuteAssigneeScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource) error {
	start := time.Now()
	res, err := GetAssigneeResult(ctx, cfg, mgr.GetEvaluationStore(), src)
	if err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogScoreHeader(cfg, fmt.Sprintf("%s (%s)", res.Assignee.Name, res.Assignee.Department))
	}
	return outwriter.PrintAssigneeResult(res, cfg, time.Since(start))
}

// ExecuteRanking ranks every assignee of the roster and prints the ranking.
func ExecuteRanking(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource) error {
	start := time.Now()
	results, err := GetRanking(ctx, cfg, mgr.GetEvaluationStore(), src)
	if err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogScoreHeader(cfg, "all assignees")
	}
	return outwriter.PrintRanking(results, cfg, time.Since(start))
}

// ExecuteRankingExport writes the ranking to a Parquet file.
func ExecuteRankingExport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("an output file is required for parquet export")
	}
	results, err := GetRanking(ctx, cfg, mgr.GetEvaluationStore(), src)
	if err != nil {
		return err
	}
	rows := parquet.ConvertRanking(results)
	if err := parquet.WriteRankingParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write ranking: %w", err)
	}
	fmt.Printf("Exported %d ranked assignees to: %s\n", len(rows), outputFile)
	return nil
}

// ExecuteRules prints the active rule set of every task type.
func ExecuteRules(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintRules(cfg.Rules, cfg)
}

// ExecuteSetInput replaces one metric input of the configured task, persists the
// record and prints the new score.
func ExecuteSetInput(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource, metricID string, value float64) error {
	return updateTask(ctx, cfg, mgr, src, fmt.Sprintf("Set %s = %g", metricID, value), func(book *Book, task schema.Task) error {
		return book.SetInput(task, metricID, value)
	})
}

// ExecuteSetQualitative stores the qualitative score of the configured task.
// The score is clamped to [0, 100].
func ExecuteSetQualitative(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource, score float64) error {
	return updateTask(ctx, cfg, mgr, src, "Set qualitative score", func(book *Book, task schema.Task) error {
		book.SetQualitative(task, score)
		return nil
	})
}

// ExecuteSetOpinion stores the qualitative opinion of the configured task.
func ExecuteSetOpinion(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource, text string) error {
	return updateTask(ctx, cfg, mgr, src, "Set opinion", func(book *Book, task schema.Task) error {
		book.SetOpinion(task, text)
		return nil
	})
}

// ExecuteFeedback asks the feedback client about the configured task, or about the
// configured assignee when no task is selected, and prints the answer.
func ExecuteFeedback(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource, client contract.FeedbackClient) error {
	out, err := GetFeedbackSubject(ctx, cfg, mgr.GetEvaluationStore(), src)
	if err != nil {
		return err
	}
	out.Feedback = client.Review(ctx, out.Result)
	return outwriter.PrintFeedback(out, cfg)
}

// GetFeedbackSubject resolves the result feedback is asked for: a task result
// when a task is selected, otherwise the comprehensive result of the assignee.
func GetFeedbackSubject(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore, src contract.RosterSource) (outwriter.FeedbackOutput, error) {
	if cfg.TaskID != "" {
		res, err := GetTaskResult(ctx, cfg, store, src)
		if err != nil {
			return outwriter.FeedbackOutput{}, err
		}
		return outwriter.FeedbackOutput{Subject: res.Task.Name, Period: res.Period, Result: res.Result}, nil
	}
	if cfg.AssigneeID == "" {
		return outwriter.FeedbackOutput{}, fmt.Errorf("select a task or an assignee: %w", contract.ErrUnknownAssignee)
	}
	res, err := GetAssigneeResult(ctx, cfg, store, src)
	if err != nil {
		return outwriter.FeedbackOutput{}, err
	}
	return outwriter.FeedbackOutput{Subject: res.Assignee.Name, Period: res.Period, Result: res.Result}, nil
}

// UpdateTask applies fn to the record of the configured task and persists only that
// record. It returns the task and its new result.
func UpdateTask(ctx context.Context, cfg *contract.Config, store contract.EvaluationStore, src contract.RosterSource, fn func(*Book, schema.Task) error) (schema.TaskResult, error) {
	task, err := roster.FindTask(src, cfg.Period, cfg.TaskID)
	if err != nil {
		return schema.TaskResult{}, err
	}
	book, err := loadTaskBook(ctx, cfg, store, task)
	if err != nil {
		return schema.TaskResult{}, err
	}
	if err := fn(book, task); err != nil {
		return schema.TaskResult{}, err
	}
	if err := store.Set(ctx, cfg.Period, task.ID, *book.Data(task.ID)); err != nil {
		return schema.TaskResult{}, fmt.Errorf("failed to save evaluation for task %s: %w", task.ID, err)
	}
	return schema.TaskResult{Task: task, Period: cfg.Period, Result: book.ScoreTask(task)}, nil
}

func updateTask(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource, change string, fn func(*Book, schema.Task) error) error {
	start := time.Now()
	res, err := UpdateTask(ctx, cfg, mgr.GetEvaluationStore(), src, fn)
	if err != nil {
		return err
	}
	outwriter.LogUpdate(res.Period, res.Task, change)
	return outwriter.PrintTaskResult(res, cfg, time.Since(start))
}
