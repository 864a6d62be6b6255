// Package feedback turns evaluation results into narrative feedback.
package feedback

import (
	"fmt"
	"strings"

	"github.com/huangsam/appraise/schema"
)

// BuildPrompt renders the instruction text sent to the generative model.
// Scores are printed with one decimal; the opinion block only appears when set.
func BuildPrompt(result schema.EvaluationResult) string {
	var b strings.Builder

	b.WriteString("You are a thorough and fair performance review expert.\n")
	b.WriteString("Below is the performance evaluation data of one employee. Based on it, write about 300 characters of overall feedback covering:\n\n")
	b.WriteString("1. A summary of the quantitative results (strengths and weaknesses)\n")
	b.WriteString("2. The qualitative evaluation and the evaluator's opinion\n")
	fmt.Fprintf(&b, "3. An interpretation of the current score (%.1f points)\n", result.FinalScore)
	b.WriteString("4. Concrete advice for improving performance\n\n")

	b.WriteString("[Evaluation data]\n")
	fmt.Fprintf(&b, "- Quantitative converted score (out of 70): %.1f\n", result.QuantConverted)
	fmt.Fprintf(&b, "- Qualitative converted score (out of 30): %.1f\n", result.QualConverted)
	fmt.Fprintf(&b, "- Final total: %.1f\n", result.FinalScore)

	if result.QualitativeOpinion != "" {
		fmt.Fprintf(&b, "\n[Evaluator opinion]\n%q\n", result.QualitativeOpinion)
	}

	if len(result.Breakdown) > 0 {
		b.WriteString("\n[Metric details]\n")
		for _, m := range result.Breakdown {
			fmt.Fprintf(&b, "- %s (%s): input %s%s, score %s (weighted: %s)\n",
				m.Rule.Name, m.Rule.Category,
				formatNumber(m.InputValue), m.Rule.Unit,
				formatNumber(m.RawScore), formatNumber(m.WeightedScore))
		}
	}

	if len(result.TaskSummaries) > 0 {
		b.WriteString("\n[Task summaries]\n")
		for _, s := range result.TaskSummaries {
			fmt.Fprintf(&b, "- %s: final %.1f (quant %.1f, qual %.1f)\n", s.TaskName, s.FinalScore, s.QuantConverted, s.QualConverted)
		}
	}
	return b.String()
}

// formatNumber prints whole numbers without decimals and everything else with up to two.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
