// Package algo holds the pure scoring, aggregation and ranking functions.
package algo

import "github.com/huangsam/appraise/schema"

// GradeFor maps a final score to a grade. Thresholds are inclusive lower bounds.
func GradeFor(final float64) schema.Grade {
	switch {
	case final >= 90:
		return schema.GradeS
	case final >= 80:
		return schema.GradeA
	case final >= 70:
		return schema.GradeB
	default:
		return schema.GradeC
	}
}

// ZeroResult is the result for a task without evaluation data, or an assignee without tasks.
func ZeroResult() schema.EvaluationResult {
	return schema.EvaluationResult{
		Grade:     schema.GradeC,
		Breakdown: []schema.CalculatedMetric{},
	}
}

// ScoreTask evaluates one task's data against the rule set of its type.
// A nil data pointer yields ZeroResult.
func ScoreTask(task schema.Task, data *schema.TaskEvaluationData, book RuleBook) schema.EvaluationResult {
	if data == nil {
		return ZeroResult()
	}

	rules := book.For(task.Type)
	breakdown := make([]schema.CalculatedMetric, 0, len(rules))
	total := 0.0
	for _, rule := range rules {
		input := 0.0
		if m, ok := data.Metrics[rule.ID]; ok {
			input = m.InputValue
		}
		raw := Evaluate(rule.Kind, input)
		weighted := raw * rule.Weight / 100
		total += weighted
		breakdown = append(breakdown, schema.CalculatedMetric{
			Rule:          rule,
			InputValue:    input,
			RawScore:      raw,
			WeightedScore: weighted,
		})
	}

	quant := total * schema.QuantRatio
	qual := data.QualitativeScore * schema.QualRatio
	final := quant + qual

	return schema.EvaluationResult{
		QuantTotalWeighted: total,
		QuantConverted:     quant,
		QualConverted:      qual,
		FinalScore:         final,
		Grade:              GradeFor(final),
		Breakdown:          breakdown,
		QualitativeOpinion: data.QualitativeOpinion,
	}
}
