package algo

import (
	"testing"

	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	book := DefaultRuleBook()
	period := "2025-H1"
	tasks := []schema.Task{
		{ID: "t1", AssigneeID: "u1", Name: "New service plan", Type: schema.PlanningTask},
		{ID: "t2", AssigneeID: "u1", Name: "Ops improvement", Type: schema.PlanningTask},
		{ID: "t3", AssigneeID: "u1", Name: "Unscored work", Type: schema.DevelopmentTask},
	}

	t.Run("zero tasks", func(t *testing.T) {
		res := Aggregate(nil, schema.EvaluationMap{}, period, book)
		assert.Equal(t, 0.0, res.FinalScore)
		assert.Equal(t, schema.GradeC, res.Grade)
		assert.False(t, res.IsComprehensive)
		assert.Empty(t, res.TaskSummaries)
		assert.Empty(t, res.Breakdown)
	})

	t.Run("means of components", func(t *testing.T) {
		evals := schema.EvaluationMap{
			schema.EvaluationKey(period, "t1"): *evalData(100, "", map[string]float64{
				"start_compliance": 100, "deadline_compliance": 100,
			}),
			schema.EvaluationKey(period, "t2"): *evalData(60, "", map[string]float64{
				"plan_specificity": 200, "schedule_changes": 20, "delay_days": 100,
				"start_compliance": 50, "deadline_compliance": 50,
			}),
			// another period must not leak in
			schema.EvaluationKey("2025-H2", "t3"): *evalData(100, "", map[string]float64{
				"start_compliance": 100, "deadline_compliance": 100,
			}),
		}

		res := Aggregate(tasks, evals, period, book)
		require.Len(t, res.TaskSummaries, 3)
		assert.True(t, res.IsComprehensive)
		assert.Empty(t, res.Breakdown)
		assert.Equal(t, 0.0, res.QuantTotalWeighted)

		individual := make([]schema.EvaluationResult, len(tasks))
		quantSum, qualSum := 0.0, 0.0
		for i, task := range tasks {
			var data *schema.TaskEvaluationData
			if rec, ok := evals[schema.EvaluationKey(period, task.ID)]; ok {
				data = &rec
			}
			individual[i] = ScoreTask(task, data, book)
			quantSum += individual[i].QuantConverted
			qualSum += individual[i].QualConverted
		}

		assert.InDelta(t, quantSum/3, res.QuantConverted, 1e-9)
		assert.InDelta(t, qualSum/3, res.QualConverted, 1e-9)
		assert.InDelta(t, res.QuantConverted+res.QualConverted, res.FinalScore, 1e-9)
		assert.Equal(t, GradeFor(res.FinalScore), res.Grade)

		for i, s := range res.TaskSummaries {
			assert.Equal(t, tasks[i].ID, s.TaskID)
			assert.Equal(t, tasks[i].Name, s.TaskName)
			assert.InDelta(t, individual[i].FinalScore, s.FinalScore, 1e-9)
		}

		// t1: quant 100*0.7, qual 30; t2: quant 20*0.7, qual 18; t3: none
		assert.InDelta(t, (70.0+14.0+0)/3, res.QuantConverted, 1e-9)
		assert.InDelta(t, (30.0+18.0+0)/3, res.QualConverted, 1e-9)
		assert.Equal(t, 0.0, res.TaskSummaries[2].FinalScore)
	})
}
