package algo

import "github.com/huangsam/appraise/schema"

// Aggregate builds the comprehensive result for the tasks of one assignee in one period.
// The final score is the sum of the mean quantitative and mean qualitative components,
// in that order, so it never diverges from the per-component means by rounding.
func Aggregate(tasks []schema.Task, evals schema.EvaluationMap, period string, book RuleBook) schema.EvaluationResult {
	if len(tasks) == 0 {
		return ZeroResult()
	}

	summaries := make([]schema.TaskSummary, 0, len(tasks))
	quantSum, qualSum := 0.0, 0.0
	for _, task := range tasks {
		var data *schema.TaskEvaluationData
		if rec, ok := evals[schema.EvaluationKey(period, task.ID)]; ok {
			data = &rec
		}
		res := ScoreTask(task, data, book)
		quantSum += res.QuantConverted
		qualSum += res.QualConverted
		summaries = append(summaries, schema.TaskSummary{
			TaskID:         task.ID,
			TaskName:       task.Name,
			FinalScore:     res.FinalScore,
			QuantConverted: res.QuantConverted,
			QualConverted:  res.QualConverted,
		})
	}

	n := float64(len(tasks))
	quant := quantSum / n
	qual := qualSum / n
	final := quant + qual

	return schema.EvaluationResult{
		QuantConverted:  quant,
		QualConverted:   qual,
		FinalScore:      final,
		Grade:           GradeFor(final),
		Breakdown:       []schema.CalculatedMetric{},
		IsComprehensive: true,
		TaskSummaries:   summaries,
	}
}
