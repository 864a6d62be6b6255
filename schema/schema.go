// Package schema has models, constants and helpers for all parts of appraise.
package schema

// MetricRule is one named, weighted scoring function applied to a raw metric input.
// The scoring function itself is selected by Kind so that rule sets stay data-describable.
type MetricRule struct {
	ID          string   `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Criteria    string   `json:"criteria" yaml:"criteria"`
	Weight      float64  `json:"weight" yaml:"weight"` // 0-100
	Kind        RuleKind `json:"kind" yaml:"kind"`
	Unit        string   `json:"unit" yaml:"unit"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
}

// Assignee is a person whose tasks are evaluated.
type Assignee struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Department string `json:"department" yaml:"department"`
}

// Task is a work item owned by one assignee. It is immutable within a period.
type Task struct {
	ID         string   `json:"id" yaml:"id"`
	AssigneeID string   `json:"assigneeId" yaml:"assignee"`
	Name       string   `json:"name" yaml:"name"`
	Type       TaskType `json:"type" yaml:"type"`
}

// MetricData is the raw input entered for one (task, metric) pair.
type MetricData struct {
	ConfigID   string  `json:"configId"`
	InputValue float64 `json:"inputValue"`
}

// TaskEvaluationData is the mutable record attached to one (period, task).
type TaskEvaluationData struct {
	Metrics            map[string]MetricData `json:"metrics"`
	QualitativeScore   float64               `json:"qualitativeScore"`
	QualitativeOpinion string                `json:"qualitativeOpinion"`
}

// EvaluationMap is the persisted blob, keyed by EvaluationKey(period, taskID).
type EvaluationMap map[string]TaskEvaluationData

// CalculatedMetric is a derived breakdown entry. It is never persisted.
type CalculatedMetric struct {
	Rule          MetricRule `json:"rule"`
	InputValue    float64    `json:"inputValue"`
	RawScore      float64    `json:"rawScore"`
	WeightedScore float64    `json:"weightedScore"`
}

// TaskSummary is the per-task line of a comprehensive result.
type TaskSummary struct {
	TaskID         string  `json:"taskId"`
	TaskName       string  `json:"taskName"`
	FinalScore     float64 `json:"finalScore"`
	QuantConverted float64 `json:"quantConverted"`
	QualConverted  float64 `json:"qualConverted"`
}

// EvaluationResult is a derived view over evaluation data, for one task or for
// all tasks of one assignee (comprehensive).
type EvaluationResult struct {
	QuantTotalWeighted float64            `json:"quantTotalWeighted"`
	QuantConverted     float64            `json:"quantConverted"`
	QualConverted      float64            `json:"qualConverted"`
	FinalScore         float64            `json:"finalScore"`
	Grade              Grade              `json:"grade"`
	Breakdown          []CalculatedMetric `json:"breakdown"`
	QualitativeOpinion string             `json:"qualitativeOpinion,omitempty"`
	IsComprehensive    bool               `json:"isComprehensive"`
	TaskSummaries      []TaskSummary      `json:"taskSummaries,omitempty"`
}

// AssigneeResult pairs an assignee with a comprehensive result for one period.
type AssigneeResult struct {
	Rank     int              `json:"rank"`
	Assignee Assignee         `json:"assignee"`
	Period   string           `json:"period"`
	Result   EvaluationResult `json:"result"`
}

// TaskResult pairs a task with its scored result for one period.
type TaskResult struct {
	Task   Task             `json:"task"`
	Period string           `json:"period"`
	Result EvaluationResult `json:"result"`
}
