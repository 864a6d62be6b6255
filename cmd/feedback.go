package cmd

import (
	"github.com/huangsam/appraise/core"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/feedback"
	"github.com/spf13/cobra"
)

// feedbackCmd asks the AI backend to review a result.
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Generate AI feedback for a task or an assignee.",
	Long: `Send the evaluation result of the selected task (--task), or the comprehensive
result of the selected assignee (--assignee), to the feedback backend.

The Gemini backend reads its key from APPRAISE_GEMINI_API_KEY. Failures are
reported as a readable message instead of an error.

Examples:
  # Feedback on one task
  APPRAISE_GEMINI_API_KEY=... appraise feedback --task t1

  # Feedback on an assignee's whole period
  appraise feedback --assignee user2 --period 2025-H1`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFeedback(rootCtx, cfg, storeManager, rosterSource, feedback.New(cfg)); err != nil {
			contract.LogFatal("Cannot generate feedback", err)
		}
	},
}
