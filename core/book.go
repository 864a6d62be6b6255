package core

import (
	"fmt"
	"sync"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// Book is the in-memory evaluation map for one period. Records are created lazily
// with seeded defaults and every write goes through the embedded lock.
type Book struct {
	sync.RWMutex
	period      string
	rules       algo.RuleBook
	defaultQual float64
	evals       schema.EvaluationMap
}

// NewBook wraps an already-loaded evaluation map. The map is copied, so the caller
// keeps ownership of evals.
func NewBook(period string, rules algo.RuleBook, defaultQual float64, evals schema.EvaluationMap) *Book {
	if evals == nil {
		evals = schema.EvaluationMap{}
	}
	return &Book{
		period:      period,
		rules:       rules,
		defaultQual: schema.Clamp(defaultQual, schema.MinScore, schema.MaxScore),
		evals:       evals.Clone(),
	}
}

// Period returns the period the book writes to.
func (b *Book) Period() string {
	return b.period
}

// Rules returns the rule book used for seeding and scoring.
func (b *Book) Rules() algo.RuleBook {
	return b.rules
}

// Ensure seeds a record for every task that has none in this period and returns
// the ids of the tasks that were seeded.
func (b *Book) Ensure(tasks ...schema.Task) []string {
	b.Lock()
	defer b.Unlock()
	var seeded []string
	for _, task := range tasks {
		if b.ensureLocked(task) {
			seeded = append(seeded, task.ID)
		}
	}
	return seeded
}

func (b *Book) ensureLocked(task schema.Task) bool {
	key := schema.EvaluationKey(b.period, task.ID)
	if _, ok := b.evals[key]; ok {
		return false
	}
	b.evals[key] = schema.NewEvaluationData(b.rules.For(task.Type), b.defaultQual)
	return true
}

// SetInput replaces one metric input of a task. The metric must belong to the
// rule set of the task type.
func (b *Book) SetInput(task schema.Task, metricID string, value float64) error {
	if !hasMetric(b.rules.For(task.Type), metricID) {
		return fmt.Errorf("%s for task %s: %w", metricID, task.ID, contract.ErrUnknownMetric)
	}
	b.update(task, func(d *schema.TaskEvaluationData) {
		d.Metrics[metricID] = schema.MetricData{ConfigID: metricID, InputValue: value}
	})
	return nil
}

// SetQualitative stores the qualitative score clamped to [0, 100]. NaN stores 0.
func (b *Book) SetQualitative(task schema.Task, score float64) {
	b.update(task, func(d *schema.TaskEvaluationData) {
		d.QualitativeScore = schema.Clamp(score, schema.MinScore, schema.MaxScore)
	})
}

// SetOpinion stores the free-text qualitative opinion.
func (b *Book) SetOpinion(task schema.Task, text string) {
	b.update(task, func(d *schema.TaskEvaluationData) {
		d.QualitativeOpinion = text
	})
}

// update applies fn to a private copy of the record and swaps it in, so readers
// holding an earlier copy never observe a partial write.
func (b *Book) update(task schema.Task, fn func(*schema.TaskEvaluationData)) {
	b.Lock()
	defer b.Unlock()
	b.ensureLocked(task)
	key := schema.EvaluationKey(b.period, task.ID)
	rec := b.evals[key].Clone()
	if rec.Metrics == nil {
		rec.Metrics = map[string]schema.MetricData{}
	}
	fn(&rec)
	b.evals[key] = rec
}

// Data returns a copy of the record for a task, or nil when it does not exist.
func (b *Book) Data(taskID string) *schema.TaskEvaluationData {
	b.RLock()
	defer b.RUnlock()
	rec, ok := b.evals[schema.EvaluationKey(b.period, taskID)]
	if !ok {
		return nil
	}
	cp := rec.Clone()
	return &cp
}

// Snapshot returns a deep copy of every record, across all periods, for persistence.
func (b *Book) Snapshot() schema.EvaluationMap {
	b.RLock()
	defer b.RUnlock()
	return b.evals.Clone()
}

// ScoreTask scores a task against the current state of the book.
func (b *Book) ScoreTask(task schema.Task) schema.EvaluationResult {
	return algo.ScoreTask(task, b.Data(task.ID), b.rules)
}

// Aggregate builds the comprehensive result for a set of tasks in the book's period.
func (b *Book) Aggregate(tasks []schema.Task) schema.EvaluationResult {
	b.RLock()
	defer b.RUnlock()
	return algo.Aggregate(tasks, b.evals, b.period, b.rules)
}

func hasMetric(rules []schema.MetricRule, id string) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}
