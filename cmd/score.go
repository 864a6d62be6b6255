package cmd

import (
	"context"

	"github.com/huangsam/appraise/core"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd groups the single-subject score commands.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one task or one assignee.",
	Long: `Compute evaluation results from the stored inputs.

Tasks without stored inputs are scored with seeded defaults (every metric input 0,
qualitative score 80). Nothing is written to the store by these commands.

Subcommands:
  task     - Weighted breakdown and grade for one task
  assignee - Comprehensive result over every task of one assignee`,
}

// scoreTaskCmd scores one task.
var scoreTaskCmd = &cobra.Command{
	Use:   "task [task-id]",
	Short: "Show the weighted breakdown, final score and grade of one task.",
	Long: `Score a single task of the selected period.

The quantitative part is the weighted sum of the rule scores converted to 70%,
the qualitative part is the evaluator score converted to 30%.

Examples:
  # Score task t1 for the current period
  appraise score task t1

  # Score a task of another period as JSON
  appraise score task t3 --period 2025-H1 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: selectionSetupWrapper(false),
	Run: func(cmd *cobra.Command, _ []string) {
		if err := core.ExecuteTaskScore(scoreContext(cmd), cfg, storeManager, rosterSource); err != nil {
			contract.LogFatal("Cannot score task", err)
		}
	},
}

// scoreAssigneeCmd scores every task of one assignee.
var scoreAssigneeCmd = &cobra.Command{
	Use:   "assignee [assignee-id]",
	Short: "Show the comprehensive result of one assignee.",
	Long: `Average the task results of one assignee into a comprehensive evaluation.

Tasks that were never evaluated are scored from seeded defaults, exactly as
'score task' shows them. Nothing is written to the store.

Examples:
  # Comprehensive result for user1
  appraise score assignee user1

  # Write the result to an Excel workbook
  appraise score assignee user2 --output xlsx --output-file user2.xlsx`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: selectionSetupWrapper(true),
	Run: func(cmd *cobra.Command, _ []string) {
		if err := core.ExecuteAssigneeScore(scoreContext(cmd), cfg, storeManager, rosterSource); err != nil {
			contract.LogFatal("Cannot score assignee", err)
		}
	},
}

// selectionSetupWrapper runs sharedSetup and lets a positional argument select
// the assignee or the task.
func selectionSetupWrapper(assignee bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if len(args) == 1 {
			if assignee {
				cfg.AssigneeID = args[0]
			} else {
				cfg.TaskID = args[0]
			}
		}
		return nil
	}
}

func scoreContext(cmd *cobra.Command) context.Context {
	if noHeader, _ := cmd.Flags().GetBool("no-header"); noHeader {
		return core.WithSuppressHeader(rootCtx)
	}
	return rootCtx
}
