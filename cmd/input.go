package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/appraise/core"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/spf13/cobra"
)

// inputCmd groups the commands that write evaluation inputs.
var inputCmd = &cobra.Command{
	Use:   "input",
	Short: "Record metric inputs, qualitative scores and opinions.",
	Long: `Write evaluation inputs for one task (selected with --task) and print its new score.

Only the record of that task is written to the store. A task without a
stored record is seeded first (metric inputs 0, qualitative score 80).

Subcommands:
  set     - Store the raw input of one metric
  qual    - Store the qualitative score (clamped to 0-100)
  opinion - Store the evaluator opinion`,
}

// inputSetCmd stores one metric input.
var inputSetCmd = &cobra.Command{
	Use:   "set <metric-id> <value>",
	Short: "Store the raw input of one metric.",
	Long: `Replace the raw input of one metric of the selected task.

Metric ids: plan_specificity, schedule_changes, start_compliance,
deadline_compliance, delay_days.

Examples:
  # 107 planned days scores 90 on plan specificity
  appraise input set plan_specificity 107 --task t1

  # Two days of delay
  appraise input set delay_days 2 --task t3 --period 2025-H1`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		value, err := parseScoreArg(args[1])
		if err != nil {
			contract.LogFatal("Invalid metric value", err)
		}
		metricID := strings.ToLower(strings.TrimSpace(args[0]))
		if err := core.ExecuteSetInput(rootCtx, cfg, storeManager, rosterSource, metricID, value); err != nil {
			contract.LogFatal("Cannot set metric input", err)
		}
	},
}

// inputQualCmd stores the qualitative score.
var inputQualCmd = &cobra.Command{
	Use:   "qual <score>",
	Short: "Store the qualitative score of a task.",
	Long: `Store the evaluator score of the selected task. Values outside 0-100 are clamped.

Examples:
  appraise input qual 85 --task t1`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		score, err := parseScoreArg(args[0])
		if err != nil {
			contract.LogFatal("Invalid qualitative score", err)
		}
		if err := core.ExecuteSetQualitative(rootCtx, cfg, storeManager, rosterSource, score); err != nil {
			contract.LogFatal("Cannot set qualitative score", err)
		}
	},
}

// inputOpinionCmd stores the evaluator opinion.
var inputOpinionCmd = &cobra.Command{
	Use:   "opinion <text>",
	Short: "Store the evaluator opinion of a task.",
	Long: `Store free-text evaluator feedback. It is included in the AI feedback prompt.

Examples:
  appraise input opinion "Clear plan, delivered ahead of schedule" --task t1`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		if err := core.ExecuteSetOpinion(rootCtx, cfg, storeManager, rosterSource, text); err != nil {
			contract.LogFatal("Cannot set opinion", err)
		}
	},
}

// parseScoreArg parses a numeric positional argument.
func parseScoreArg(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
