package core

import (
	"math"
	"sync"
	"testing"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	planningTask = schema.Task{ID: "t1", AssigneeID: "user1", Name: "2025 new service planning", Type: schema.PlanningTask}
	devTask      = schema.Task{ID: "t3", AssigneeID: "user2", Name: "Payment system refactoring", Type: schema.DevelopmentTask}
)

func newTestBook(evals schema.EvaluationMap) *Book {
	return NewBook("2025-H1", algo.DefaultRuleBook(), schema.DefaultQualitativeScore, evals)
}

func TestBookEnsure(t *testing.T) {
	book := newTestBook(nil)
	assert.Nil(t, book.Data("t1"))

	seeded := book.Ensure(planningTask, devTask)
	assert.Equal(t, []string{"t1", "t3"}, seeded)

	data := book.Data("t1")
	require.NotNil(t, data)
	assert.Len(t, data.Metrics, 5)
	for id, m := range data.Metrics {
		assert.Equal(t, id, m.ConfigID)
		assert.Zero(t, m.InputValue)
	}
	assert.Equal(t, 80.0, data.QualitativeScore)
	assert.Empty(t, data.QualitativeOpinion)

	// Existing records are left alone
	book.SetQualitative(planningTask, 50)
	assert.Empty(t, book.Ensure(planningTask))
	assert.Equal(t, 50.0, book.Data("t1").QualitativeScore)
}

func TestBookDefaultQualitativeClamped(t *testing.T) {
	book := NewBook("2025-H1", algo.DefaultRuleBook(), 250, nil)
	book.Ensure(planningTask)
	assert.Equal(t, 100.0, book.Data("t1").QualitativeScore)
}

func TestBookSetInput(t *testing.T) {
	book := newTestBook(nil)
	require.NoError(t, book.SetInput(planningTask, "plan_specificity", 107.5))

	data := book.Data("t1")
	require.NotNil(t, data, "writes seed the record first")
	assert.Equal(t, schema.MetricData{ConfigID: "plan_specificity", InputValue: 107.5}, data.Metrics["plan_specificity"])
	assert.Len(t, data.Metrics, 5)

	err := book.SetInput(planningTask, "lines_of_code", 10)
	assert.ErrorIs(t, err, contract.ErrUnknownMetric)
}

func TestBookSetQualitative(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"in range", 85, 85},
		{"above max", 150, 100},
		{"below min", -5, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := newTestBook(nil)
			book.SetQualitative(planningTask, tt.input)
			assert.Equal(t, tt.expected, book.Data("t1").QualitativeScore)
		})
	}
}

func TestBookSetOpinion(t *testing.T) {
	book := newTestBook(nil)
	book.SetOpinion(planningTask, "Clear milestones")
	assert.Equal(t, "Clear milestones", book.Data("t1").QualitativeOpinion)
	assert.Equal(t, "Clear milestones", book.ScoreTask(planningTask).QualitativeOpinion)
}

func TestBookIsolation(t *testing.T) {
	evals := schema.EvaluationMap{
		"2025-H1-t1": schema.NewEvaluationData(algo.UnifiedRules(), 70),
	}
	book := newTestBook(evals)
	book.SetQualitative(planningTask, 10)
	assert.Equal(t, 70.0, evals["2025-H1-t1"].QualitativeScore, "input map is copied")

	snap := book.Snapshot()
	snap["2025-H1-t1"].Metrics["delay_days"] = schema.MetricData{ConfigID: "delay_days", InputValue: 99}
	assert.Zero(t, book.Data("t1").Metrics["delay_days"].InputValue, "snapshot is a deep copy")

	data := book.Data("t1")
	data.QualitativeScore = 1
	assert.Equal(t, 10.0, book.Data("t1").QualitativeScore, "data is a copy")
}

func TestBookPeriodsAreSeparate(t *testing.T) {
	evals := schema.EvaluationMap{"2024-H2-t1": schema.NewEvaluationData(algo.UnifiedRules(), 95)}
	book := newTestBook(evals)
	assert.Nil(t, book.Data("t1"))

	book.Ensure(planningTask)
	snap := book.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, 95.0, snap["2024-H2-t1"].QualitativeScore)
	assert.Equal(t, 80.0, snap["2025-H1-t1"].QualitativeScore)
}

func TestBookScoring(t *testing.T) {
	book := newTestBook(nil)
	assert.Equal(t, algo.ZeroResult(), book.ScoreTask(planningTask), "missing data scores zero")

	book.Ensure(planningTask)
	res := book.ScoreTask(planningTask)
	assert.InDelta(t, 60.0, res.QuantTotalWeighted, 1e-9)
	assert.InDelta(t, 66.0, res.FinalScore, 1e-9)
	assert.Equal(t, schema.GradeC, res.Grade)

	agg := book.Aggregate([]schema.Task{planningTask, devTask})
	assert.True(t, agg.IsComprehensive)
	assert.InDelta(t, 33.0, agg.FinalScore, 1e-9, "the unevaluated task counts as zero")
	assert.Len(t, agg.TaskSummaries, 2)
}

func TestBookConcurrentWrites(t *testing.T) {
	book := newTestBook(nil)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = book.SetInput(planningTask, "schedule_changes", float64(i))
			book.SetQualitative(devTask, float64(i))
			_ = book.ScoreTask(planningTask)
			_ = book.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Len(t, book.Snapshot(), 2)
	assert.Len(t, book.Data("t1").Metrics, 5)
}
